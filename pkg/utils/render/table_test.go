package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var b strings.Builder
	err := Table(&b, []string{"licence", "nom"}, [][]string{
		{"12", "Bédard"},
		{"3"},
	})
	require.NoError(t, err)

	want := strings.Join([]string{
		"╭─────────┬────────╮",
		"│ licence │ nom    │",
		"├─────────┼────────┤",
		"│ 12      │ Bédard │",
		"│ 3       │        │",
		"╰─────────┴────────╯",
		"",
	}, "\n")
	assert.Equal(t, want, b.String())
}

func TestTable_NoRows(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Table(&b, []string{"a"}, nil))
	assert.Equal(t, "╭───╮\n│ a │\n├───┤\n╰───╯\n", b.String())
}

func TestTable_TooManyCells(t *testing.T) {
	var b strings.Builder
	err := Table(&b, []string{"a"}, [][]string{{"1", "2"}})
	assert.ErrorContains(t, err, "row has 2 cells but the table has 1 columns")
}
