package statements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatRow struct {
	code   string
	parent *string
}

func ptr(s string) *string { return &s }

func codes(rows []flatRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.code
	}
	return out
}

func buildFlat(rows []flatRow) []string {
	forest := BuildForest(rows,
		func(r flatRow) string { return r.code },
		func(r flatRow) *string { return r.parent },
	)
	return codes(Flatten(forest))
}

func TestBuildForest_ParentFollowedByDescendants(t *testing.T) {
	rows := []flatRow{
		{code: "1100", parent: ptr("1000")},
		{code: "2000"},
		{code: "1000"},
		{code: "1110", parent: ptr("1100")},
		{code: "1200", parent: ptr("1000")},
	}

	assert.Equal(t, []string{"1000", "1100", "1110", "1200", "2000"}, buildFlat(rows))
}

func TestBuildForest_MissingParentBecomesRoot(t *testing.T) {
	rows := []flatRow{
		{code: "1100", parent: ptr("9999")}, // parent not in the row set
		{code: "1000"},
	}

	assert.Equal(t, []string{"1000", "1100"}, buildFlat(rows))
}

func TestBuildForest_RootsAndSiblingsOrderedByCode(t *testing.T) {
	rows := []flatRow{
		{code: "3000"},
		{code: "1000"},
		{code: "1020", parent: ptr("1000")},
		{code: "1010", parent: ptr("1000")},
		{code: "2000"},
	}

	assert.Equal(t, []string{"1000", "1010", "1020", "2000", "3000"}, buildFlat(rows))
}

func TestBuildForest_NoAmountRollup(t *testing.T) {
	type amountRow struct {
		code   string
		parent *string
		amount int
	}
	rows := []amountRow{
		{code: "1000", amount: 5},
		{code: "1100", parent: ptr("1000"), amount: 7},
	}
	forest := BuildForest(rows,
		func(r amountRow) string { return r.code },
		func(r amountRow) *string { return r.parent },
	)

	require.Len(t, forest, 1)
	assert.Equal(t, 5, forest[0].Row.amount, "parent keeps its own figure")
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, 7, forest[0].Children[0].Row.amount)
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, Flatten(BuildForest(nil,
		func(r flatRow) string { return r.code },
		func(r flatRow) *string { return r.parent },
	)))
}
