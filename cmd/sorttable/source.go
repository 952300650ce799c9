package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aerissecure/sorttable"
	"github.com/aerissecure/sorttable/docx"
	"github.com/aerissecure/sorttable/htmltable"
	"github.com/aerissecure/sorttable/xlsx"
	"github.com/olekukonko/errors"
)

// outcome is the format-independent part of a sort result.
type outcome struct {
	column    int
	direction sorttable.Direction
	typ       sorttable.TypeTag
	rows      int
	reversed  bool
	changed   bool
}

func outcomeOf[R any](res sorttable.Result[R], err error) (outcome, error) {
	return outcome{
		column:    res.Column,
		direction: res.Direction,
		typ:       res.Type,
		rows:      len(res.Rows),
		reversed:  res.Reversed,
		changed:   res.Changed,
	}, err
}

// source is one table of a loaded document.
type source interface {
	Activate(col int) (outcome, error)
	SortAs(col int, dir sorttable.Direction) (outcome, error)
	Headers() []string
	Rows() [][]string
	WriteHTML(w io.Writer) error
}

func load(path string, index int, opts sorttable.Options) (source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		m, err := xlsx.ParseWorkbookModel(f, info.Size())
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(m.Sheets) {
			return nil, errors.Newf("sheet %d of %d", index, len(m.Sheets)).Wrap(htmltable.ErrNoSortableTable)
		}
		s := &sheetSource{model: m}
		s.sorter = xlsx.NewSorter(&s.model.Sheets[index], opts)
		s.sheet = &s.model.Sheets[index]
		return s, nil
	case ".docx":
		m, err := docx.ParseDocumentModel(f, info.Size())
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(m.Tables) {
			return nil, errors.Newf("table %d of %d", index, len(m.Tables)).Wrap(htmltable.ErrNoSortableTable)
		}
		return &docSource{model: m, table: m.Tables[index], sorter: docx.NewSorter(m.Tables[index], opts)}, nil
	default:
		doc, err := htmltable.Load(f, opts)
		if err != nil {
			return nil, err
		}
		t, err := doc.Table(index)
		if err != nil {
			return nil, err
		}
		return &htmlSource{doc: doc, table: t}, nil
	}
}

type htmlSource struct {
	doc   *htmltable.Document
	table *htmltable.Table
}

func (s *htmlSource) Activate(col int) (outcome, error) { return outcomeOf(s.table.Activate(col)) }

func (s *htmlSource) SortAs(col int, dir sorttable.Direction) (outcome, error) {
	return outcomeOf(s.table.SortAs(col, dir))
}

func (s *htmlSource) Headers() []string           { return s.table.HeaderTexts() }
func (s *htmlSource) Rows() [][]string            { return s.table.Rows() }
func (s *htmlSource) WriteHTML(w io.Writer) error { return s.doc.Render(w) }

type sheetSource struct {
	model  xlsx.WorkbookModel
	sheet  *xlsx.RenderSheet
	sorter *xlsx.Sorter
}

func (s *sheetSource) Activate(col int) (outcome, error) { return outcomeOf(s.sorter.Activate(col)) }

func (s *sheetSource) SortAs(col int, dir sorttable.Direction) (outcome, error) {
	return outcomeOf(s.sorter.SortAs(col, dir))
}

func sheetRow(row *xlsx.RenderRow) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		if c != nil {
			out[i] = c.Value
		}
	}
	return out
}

func (s *sheetSource) Headers() []string {
	if s.sheet.HeaderRows == 0 || len(s.sheet.Rows) == 0 {
		return nil
	}
	return sheetRow(s.sheet.Rows[0])
}

func (s *sheetSource) Rows() [][]string {
	var out [][]string
	for _, row := range s.sheet.Rows[min(s.sheet.HeaderRows, len(s.sheet.Rows)):] {
		out = append(out, sheetRow(row))
	}
	return out
}

func (s *sheetSource) WriteHTML(w io.Writer) error {
	_, err := io.WriteString(w, xlsx.RenderWorkbookHTML(s.model))
	return err
}

type docSource struct {
	model  docx.DocumentModel
	table  *docx.RenderTable
	sorter *docx.Sorter
}

func (s *docSource) Activate(col int) (outcome, error) { return outcomeOf(s.sorter.Activate(col)) }

func (s *docSource) SortAs(col int, dir sorttable.Direction) (outcome, error) {
	return outcomeOf(s.sorter.SortAs(col, dir))
}

func docRow(row *docx.RenderTableRow) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		var paras []string
		for _, p := range c.Paragraphs {
			paras = append(paras, p.Text())
		}
		out[i] = strings.Join(paras, " ")
	}
	return out
}

func (s *docSource) Headers() []string {
	if s.table.HeaderRows == 0 || len(s.table.Rows) == 0 {
		return nil
	}
	return docRow(s.table.Rows[0])
}

func (s *docSource) Rows() [][]string {
	var out [][]string
	for _, row := range s.table.Rows[min(s.table.HeaderRows, len(s.table.Rows)):] {
		out = append(out, docRow(row))
	}
	return out
}

func (s *docSource) WriteHTML(w io.Writer) error {
	_, err := io.WriteString(w, docx.RenderDocumentHTML(s.model))
	return err
}
