package docx

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/errors"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// ParseDocumentModel reads a DOCX document and builds its DocumentModel.
// The first row of every table is taken as its header.
func ParseDocumentModel(r io.ReaderAt, size int64) (DocumentModel, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return DocumentModel{}, errors.Newf("read document").Wrap(err)
	}

	var mdl DocumentModel

	// map the XML elements back to their wrappers so the body can be walked in order
	pMap := make(map[*wml.CT_P]document.Paragraph)
	for _, p := range doc.Paragraphs() {
		pMap[p.X()] = p
	}
	tMap := make(map[*wml.CT_Tbl]document.Table)
	for _, tbl := range doc.Tables() {
		tMap[tbl.X()] = tbl
	}

	body := doc.X().Body
	if body == nil {
		return mdl, nil
	}
	for _, bl := range body.EG_BlockLevelElts {
		for _, c := range bl.EG_ContentBlockContent {
			for _, cp := range c.P {
				if par, ok := pMap[cp]; ok {
					rp := convertParagraph(par)
					mdl.Blocks = append(mdl.Blocks, DocumentBlock{Paragraph: &rp})
				}
			}
			for _, ct := range c.Tbl {
				if tbl, ok := tMap[ct]; ok {
					rt := convertTable(tbl)
					mdl.Tables = append(mdl.Tables, rt)
					mdl.Blocks = append(mdl.Blocks, DocumentBlock{Table: rt})
				}
			}
		}
	}
	return mdl, nil
}

func convertRun(r document.Run) RenderRun {
	props := r.Properties()
	return RenderRun{
		Run:   r,
		Text:  r.Text(),
		Style: RunStyle{Bold: props.IsBold(), Italic: props.IsItalic()},
	}
}

func convertParagraph(p document.Paragraph) RenderParagraph {
	rp := RenderParagraph{Style: ParagraphStyle{Name: p.Style()}}
	if level, ok := strings.CutPrefix(rp.Style.Name, "Heading"); ok {
		if n, err := strconv.Atoi(level); err == nil && n >= 1 && n <= 6 {
			rp.Style.HeadingLevel = n
		}
	}
	for _, run := range p.Runs() {
		rp.Runs = append(rp.Runs, convertRun(run))
	}
	return rp
}

// convertTable resolves grid spans and vertical merges. A continued vertical
// merge is dropped from its row and counted on the master above it.
func convertTable(t document.Table) *RenderTable {
	rt := &RenderTable{}
	masters := make(map[int]*RenderTableCell) // grid column -> open vertical merge

	for i, row := range t.Rows() {
		rr := &RenderTableRow{Number: i + 1}
		grid := 0
		for _, cell := range row.Cells() {
			rc := &RenderTableCell{ColSpan: 1, RowSpan: 1}
			var vmerge *wml.CT_VMerge
			if pr := cell.X().TcPr; pr != nil {
				if pr.GridSpan != nil && pr.GridSpan.ValAttr > 1 {
					rc.ColSpan = int(pr.GridSpan.ValAttr)
				}
				vmerge = pr.VMerge
			}

			switch {
			case vmerge == nil:
				delete(masters, grid)
			case vmerge.ValAttr == wml.ST_MergeRestart:
				masters[grid] = rc
			default:
				if m := masters[grid]; m != nil {
					m.RowSpan++
					grid += rc.ColSpan
					continue
				}
			}

			for _, p := range cell.Paragraphs() {
				rc.Paragraphs = append(rc.Paragraphs, convertParagraph(p))
			}
			rr.Cells = append(rr.Cells, rc)
			grid += rc.ColSpan
		}
		rt.Rows = append(rt.Rows, rr)
	}
	if len(rt.Rows) > 0 {
		rt.HeaderRows = 1
	}
	return rt
}
