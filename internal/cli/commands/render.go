package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/periodica-labs/periodica/internal/cli/output"
)

// renderRows writes a tabular result in the renderer's effective mode:
// a bordered table for text, a pipe table for markdown. JSON mode is
// handled by callers, which encode the domain objects directly.
func renderRows(r *output.Renderer, header []string, rows [][]string) {
	if r.EffectiveMode() == output.ModeMarkdown {
		renderPipeTable(r, header, rows)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	t.Render()
}

func renderPipeTable(r *output.Renderer, header []string, rows [][]string) {
	w := r.Writer()

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(header, " | "))

	seps := make([]string, len(header))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, row := range rows {
		escaped := make([]string, len(row))
		for i, cell := range row {
			escaped[i] = strings.ReplaceAll(cell, "|", "\\|")
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(escaped, " | "))
	}
}
