package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlight_IdenticalInputs(t *testing.T) {
	text := "Line one\nLine two\nLine three"

	result := Highlight(text, text)

	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Modified)
}

func TestHighlight_EmptyInputs(t *testing.T) {
	result := Highlight("", "")

	assert.NotNil(t, result.Added)
	assert.NotNil(t, result.Removed)
	assert.NotNil(t, result.Modified)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Modified)
}

func TestHighlight_AddedLines(t *testing.T) {
	original := "Alpha\nBeta"
	tailored := "Alpha\nBeta\nGamma\nDelta"

	result := Highlight(original, tailored)

	assert.Equal(t, []string{"Gamma", "Delta"}, result.Added)
	assert.Empty(t, result.Removed)
}

func TestHighlight_RemovedLines(t *testing.T) {
	original := "Alpha\nBeta\nGamma"
	tailored := "Alpha"

	result := Highlight(original, tailored)

	assert.Empty(t, result.Added)
	assert.ElementsMatch(t, []string{"Beta", "Gamma"}, result.Removed)
}

func TestHighlight_ModifiedPairs(t *testing.T) {
	original := "Alpha\nBeta\nGamma"
	tailored := "Alpha\nDelta\nGamma"

	result := Highlight(original, tailored)

	// The changed index 1 shows up as an add, a remove, and a positional pair.
	assert.Equal(t, []string{"Delta"}, result.Added)
	assert.Equal(t, []string{"Beta"}, result.Removed)
	assert.Empty(t, result.Modified)
}

func TestHighlight_ModifiedRequiresBothPresent(t *testing.T) {
	// A line whose text appears in both versions but at a shifted position is
	// neither added nor removed; index pairs of such lines are reported as
	// modifications.
	original := "Header\nAlpha\nBeta"
	tailored := "Alpha\nBeta\nHeader"

	result := Highlight(original, tailored)

	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
	assert.Equal(t, []string{
		"Header → Alpha",
		"Alpha → Beta",
		"Beta → Header",
	}, result.Modified)
}

func TestHighlight_BlankLinesIgnored(t *testing.T) {
	original := "Alpha\n\nBeta"
	tailored := "Alpha\n\n\nBeta"

	result := Highlight(original, tailored)

	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
}

func TestHighlight_DuplicateAddedLinesKept(t *testing.T) {
	original := "Alpha"
	tailored := "Alpha\nNew\nNew"

	result := Highlight(original, tailored)

	assert.Equal(t, []string{"New", "New"}, result.Added)
}

func TestHighlight_PureFunction(t *testing.T) {
	original := "Alpha\nBeta"
	tailored := "Alpha\nGamma"

	first := Highlight(original, tailored)
	second := Highlight(original, tailored)

	assert.Equal(t, first, second)
}
