package main

import (
	"fmt"
	"io"
	"strings"

	"bimillog/internal/grid"
	"bimillog/internal/model"
)

const cellWidth = 10

func visitCell(m *model.VisitMessage) string {
	return string(m.DecoType)
}

func messageCell(m *model.Message) string {
	return m.Anonymity + ":" + m.Content
}

// render writes every page of g as a text table. Empty cells print as dots.
func render[T grid.Placeable](w io.Writer, title string, g *grid.Grid[T], label func(*T) string) error {
	layout := g.Layout()
	if _, err := fmt.Fprintf(w, "%s: %d messages, %d pages of %dx%d\n", title, g.Len(), g.TotalPages(), layout.Columns, layout.Rows); err != nil {
		return err
	}

	for p := 0; p < g.TotalPages(); p++ {
		rows, err := g.Page(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\npage %d/%d\n", p+1, g.TotalPages())
		for _, row := range rows {
			cells := make([]string, len(row))
			for i, cell := range row {
				text := "."
				if cell != nil {
					text = label(cell)
				}
				cells[i] = pad(text)
			}
			if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " ")); err != nil {
				return err
			}
		}
	}

	if rejected := g.Rejected(); len(rejected) > 0 {
		fmt.Fprintf(w, "\n%d messages not shown\n", len(rejected))
	}
	return nil
}

// pad fits s into cellWidth runes.
func pad(s string) string {
	r := []rune(s)
	if len(r) > cellWidth {
		return string(r[:cellWidth-1]) + "…"
	}
	return s + strings.Repeat(" ", cellWidth-len(r))
}
