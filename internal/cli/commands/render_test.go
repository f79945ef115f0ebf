package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	clitest "github.com/periodica-labs/periodica/internal/cli/testutil"
)

func TestRenderRowsMarkdown(t *testing.T) {
	tr := clitest.NewTestRendererMarkdown()

	renderRows(tr.Renderer, []string{"Symbol", "Name"}, [][]string{
		{"H", "Hydrogen"},
		{"Fe", "Iron"},
	})

	out := tr.Output()
	assert.Contains(t, out, "| Symbol | Name |")
	assert.Contains(t, out, "| --- | --- |")
	assert.Contains(t, out, "| Fe | Iron |")
	clitest.AssertNoANSI(t, out)
	clitest.AssertValidMarkdown(t, out)
}

func TestRenderRowsMarkdownEscapesPipes(t *testing.T) {
	tr := clitest.NewTestRendererMarkdown()

	renderRows(tr.Renderer, []string{"Equation"}, [][]string{
		{"A | B"},
	})

	assert.Contains(t, tr.Output(), `A \| B`)
}

func TestRenderRowsText(t *testing.T) {
	tr := clitest.NewTestRendererText()

	renderRows(tr.Renderer, []string{"Symbol", "Name"}, [][]string{
		{"W", "Tungsten"},
	})

	out := tr.Output()
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "Tungsten")
	// go-pretty draws box borders in text mode.
	assert.Contains(t, out, "─")
}
