package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/periodica-labs/periodica/internal/cli/testutil"
	"github.com/periodica-labs/periodica/internal/testutil"
	"github.com/periodica-labs/periodica/pkg/chem"
)

func fixtureElement(t *testing.T, symbol string) chem.Element {
	t.Helper()
	for _, e := range testutil.Elements() {
		if e.Symbol == symbol {
			return e
		}
	}
	t.Fatalf("fixture element %q not found", symbol)
	return chem.Element{}
}

func TestRenderElementSheetMarkdown(t *testing.T) {
	fe := fixtureElement(t, "Fe")
	tr := clitest.NewTestRendererMarkdown()

	renderElementSheet(tr.Renderer, &fe)

	out := tr.Output()
	assert.Contains(t, out, "# Iron (Fe), element 26")
	assert.Contains(t, out, "- **Category:** transition_metal")
	assert.Contains(t, out, "## Physical properties")
	// Iron was known before recorded history.
	assert.Contains(t, out, "- **Year:** Ancient")
	assert.Contains(t, out, "Rusting of iron")

	clitest.AssertNoANSI(t, out)
	clitest.AssertValidMarkdown(t, out)
}

func TestRenderElementSheetText(t *testing.T) {
	h := fixtureElement(t, "H")
	tr := clitest.NewTestRendererText()

	renderElementSheet(tr.Renderer, &h)

	out := tr.Output()
	assert.Contains(t, out, "Hydrogen (H), element 1")
	assert.Contains(t, out, "Melting point")
	assert.Contains(t, out, "1766")
	assert.Contains(t, out, "Henry Cavendish")
}

func TestRenderElementSheetNullsDash(t *testing.T) {
	// Helium has no recorded electron affinity in the fixture corpus.
	he := fixtureElement(t, "He")
	require.Nil(t, he.Structure.ElectronAffinity)

	tr := clitest.NewTestRendererMarkdown()
	renderElementSheet(tr.Renderer, &he)

	assert.Contains(t, tr.Output(), "- **Electron affinity:** —")
}

func TestRenderElementSheetRadioactive(t *testing.T) {
	u := fixtureElement(t, "U")
	tr := clitest.NewTestRendererMarkdown()

	renderElementSheet(tr.Renderer, &u)

	out := tr.Output()
	assert.Contains(t, out, "- **Radioactive:** yes")
	assert.Contains(t, out, "- **Half-life:**")
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "", joinInts(nil))
	assert.Equal(t, "2, 8, 1", joinInts([]int{2, 8, 1}))
	assert.Equal(t, "-1, 1", joinInts([]int{-1, 1}))
}
