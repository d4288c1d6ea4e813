package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchyResolver(t *testing.T) {
	resolver := NewHierarchyResolver([]HierarchyEdge{
		{ID: 1, ChildCode: "1100", ParentCode: "1000", Level: 1},
		{ID: 2, ChildCode: "1110", ParentCode: "1100", Level: 2},
	})

	t.Run("resolves child placement", func(t *testing.T) {
		p := resolver.Resolve("1100")
		require.NotNil(t, p.ParentCode)
		require.NotNil(t, p.Level)
		assert.Equal(t, "1000", *p.ParentCode)
		assert.Equal(t, 1, *p.Level)
	})

	t.Run("root has absent placement", func(t *testing.T) {
		p := resolver.Resolve("1000")
		assert.Nil(t, p.ParentCode)
		assert.Nil(t, p.Level)
	})

	t.Run("unknown code is a root", func(t *testing.T) {
		p := resolver.Resolve("9999")
		assert.Nil(t, p.ParentCode)
		assert.Nil(t, p.Level)
	})
}

func TestHierarchyResolver_DuplicateEdgesFirstWins(t *testing.T) {
	resolver := NewHierarchyResolver([]HierarchyEdge{
		{ID: 1, ChildCode: "1100", ParentCode: "1000", Level: 1},
		{ID: 2, ChildCode: "1100", ParentCode: "2000", Level: 3},
	})

	p := resolver.Resolve("1100")
	require.NotNil(t, p.ParentCode)
	assert.Equal(t, "1000", *p.ParentCode)
	assert.Equal(t, 1, *p.Level)
}

func TestHierarchyEdgeValidate(t *testing.T) {
	ctx := context.Background()

	valid := HierarchyEdge{ChildCode: "1100", ParentCode: "1000", Level: 1}
	require.NoError(t, valid.Validate(ctx))

	selfParent := HierarchyEdge{ChildCode: "1000", ParentCode: "1000", Level: 0}
	require.Error(t, selfParent.Validate(ctx))

	negativeLevel := HierarchyEdge{ChildCode: "1100", ParentCode: "1000", Level: -1}
	require.Error(t, negativeLevel.Validate(ctx))

	noChild := HierarchyEdge{ParentCode: "1000", Level: 1}
	require.Error(t, noChild.Validate(ctx))
}
