package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
)

// resolveFormat turns "auto" into "text" on a terminal and "html" otherwise.
func resolveFormat(format string, out *os.File) string {
	if format != "auto" {
		return format
	}
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return "text"
	}
	return "html"
}

// clip shortens every cell to width display columns. Zero leaves cells as they are.
func clip(cells []string, width int) []string {
	if width <= 0 {
		return cells
	}
	out := make([]string, len(cells))
	for i, c := range cells {
		if runewidth.StringWidth(c) > width {
			c = runewidth.Truncate(c, width, "…")
		}
		out[i] = c
	}
	return out
}

func writeText(w io.Writer, src source, width int) error {
	table := tablewriter.NewWriter(w)
	if headers := src.Headers(); len(headers) > 0 {
		table.Header(clip(headers, width))
	}
	for _, row := range src.Rows() {
		if err := table.Append(clip(row, width)); err != nil {
			return err
		}
	}
	return table.Render()
}
