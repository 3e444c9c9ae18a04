package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"short", "x"}, {"much longer", "y"}}, 0)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
}

func TestRenderTable_TruncatesLongCells(t *testing.T) {
	out := RenderTable([]string{"V"}, [][]string{{strings.Repeat("a", 30)}}, 10)
	assert.Contains(t, out, strings.Repeat("a", 9)+"…")
	assert.NotContains(t, out, strings.Repeat("a", 10))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}, 0))
}
