package xlsx

import (
	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
)

// styleResolver looks up the font, fill and border records a cell style ID
// points at. Out-of-range IDs resolve to nil.
type styleResolver struct {
	wb *spreadsheet.Workbook
	ss *sml.StyleSheet
}

func newStyleResolver(wb *spreadsheet.Workbook) styleResolver {
	return styleResolver{wb: wb, ss: wb.StyleSheet.X()}
}

func (r styleResolver) xf(styleID uint32) *sml.CT_Xf {
	if r.ss == nil || r.ss.CellXfs == nil || int(styleID) >= len(r.ss.CellXfs.Xf) {
		return nil
	}
	return r.ss.CellXfs.Xf[styleID]
}

func (r styleResolver) font(styleID uint32) *sml.CT_Font {
	xf := r.xf(styleID)
	if xf == nil || xf.FontIdAttr == nil || r.ss.Fonts == nil {
		return nil
	}
	return at(r.ss.Fonts.Font, *xf.FontIdAttr)
}

func (r styleResolver) fill(styleID uint32) *sml.CT_Fill {
	xf := r.xf(styleID)
	if xf == nil || xf.FillIdAttr == nil || r.ss.Fills == nil {
		return nil
	}
	return at(r.ss.Fills.Fill, *xf.FillIdAttr)
}

func (r styleResolver) border(styleID uint32) *sml.CT_Border {
	xf := r.xf(styleID)
	if xf == nil || xf.BorderIdAttr == nil || r.ss.Borders == nil {
		return nil
	}
	return at(r.ss.Borders.Border, *xf.BorderIdAttr)
}

func at[T any](list []*T, idx uint32) *T {
	if int(idx) >= len(list) {
		return nil
	}
	return list[idx]
}

// themeColor resolves a theme color index (0-based) to an RGB hex string
// (e.g. "FFFFFF"), ignoring tint.
func (r styleResolver) themeColor(idx int) (string, bool) {
	themes := r.wb.Themes()
	if len(themes) == 0 || themes[0] == nil || themes[0].ThemeElements == nil {
		return "", false
	}
	cs := themes[0].ThemeElements.ClrScheme
	if cs == nil {
		return "", false
	}
	scheme := []*dml.CT_Color{
		cs.Dk1, cs.Lt1, cs.Dk2, cs.Lt2,
		cs.Accent1, cs.Accent2, cs.Accent3, cs.Accent4, cs.Accent5, cs.Accent6,
		cs.Hlink, cs.FolHlink,
	}
	if idx < 0 || idx >= len(scheme) || scheme[idx] == nil {
		return "", false
	}
	clr := scheme[idx]
	switch {
	case clr.SrgbClr != nil && clr.SrgbClr.ValAttr != "":
		return clr.SrgbClr.ValAttr, true
	case clr.SysClr != nil && clr.SysClr.LastClrAttr != nil:
		return *clr.SysClr.LastClrAttr, true
	}
	return "", false
}

// resolve builds the CellStyle for a style ID.
func (r styleResolver) resolve(styleID uint32) CellStyle {
	var st CellStyle
	if font := r.font(styleID); font != nil {
		if len(font.Name) > 0 {
			st.FontFamily = font.Name[0].ValAttr
		}
		if len(font.Sz) > 0 {
			st.FontSizePt = font.Sz[0].ValAttr
		}
		if len(font.Color) > 0 && font.Color[0].RgbAttr != nil {
			st.FontColor = normalizeColor(*font.Color[0].RgbAttr)
		}
	}
	if fill := r.fill(styleID); fill != nil && fill.PatternFill != nil && fill.PatternFill.FgColor != nil {
		fg := fill.PatternFill.FgColor
		if fg.RgbAttr != nil {
			st.BackgroundColor = normalizeColor(*fg.RgbAttr)
		} else if fg.ThemeAttr != nil {
			if hex, ok := r.themeColor(int(*fg.ThemeAttr)); ok {
				st.BackgroundColor = hex
			}
		}
	}
	if b := r.border(styleID); b != nil && b.Left != nil && b.Left.Color != nil && b.Left.Color.RgbAttr != nil {
		st.BorderColor = normalizeColor(*b.Left.Color.RgbAttr)
	}
	if xf := r.xf(styleID); xf != nil && xf.Alignment != nil {
		al := xf.Alignment
		st.HorizontalAlign = al.HorizontalAttr.String()
		switch al.VerticalAttr.String() {
		case "top":
			st.VerticalAlign = "top"
		case "center":
			st.VerticalAlign = "middle"
		default:
			st.VerticalAlign = "bottom"
		}
		if al.WrapTextAttr != nil {
			st.WrapText = *al.WrapTextAttr
		}
		if al.IndentAttr != nil {
			st.IndentPx = float64(*al.IndentAttr) * 8.0
		}
	}
	return st
}
