package pathtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shape(children map[string]*Node, order ...string) *Node {
	b := NewBranch(nil)
	for _, k := range order {
		b.Set(k, children[k])
	}
	return b
}

func TestAccepts_ExactAndMissing(t *testing.T) {
	root := shape(map[string]*Node{"name": NewLeaf(nil)}, "name")

	assert.True(t, root.Accepts(Path{"name"}))
	assert.False(t, root.Accepts(Path{"age"}))
	assert.False(t, root.Accepts(Path{"name", "first"}), "leaf is terminal")
}

func TestAccepts_BuiltinMemberOfLeaf(t *testing.T) {
	root := shape(map[string]*Node{"name": NewLeaf(nil)}, "name")

	assert.True(t, root.Accepts(Path{"name", "length"}))
	assert.False(t, root.Accepts(Path{"name", "length", "x"}))
	assert.False(t, root.Accepts(Path{"length"}), "only below a leaf")
}

func TestAccepts_ShapeChildIsTerminal(t *testing.T) {
	inner := shape(map[string]*Node{"b": NewLeaf(nil)}, "b")
	root := shape(map[string]*Node{"a": inner}, "a")

	assert.True(t, root.Accepts(Path{"a"}))
	assert.True(t, root.Accepts(Path{"a", "b"}))
	assert.False(t, root.Accepts(Path{"a", "b", "c"}))
}

func TestAccepts_Wildcard(t *testing.T) {
	elem := shape(map[string]*Node{"c": NewLeaf(nil)}, "c")
	list := NewBranch(nil)
	list.Set(Wildcard, elem)
	root := shape(map[string]*Node{"a": list}, "a")

	assert.True(t, root.Accepts(Path{"a", "2", "c"}))
	assert.True(t, root.Accepts(Path{"a", "anything", "c"}))
	assert.False(t, root.Accepts(Path{"a", "2", "d"}))
}

func TestAccepts_OpenAndComputed(t *testing.T) {
	root := shape(map[string]*Node{"data": NewOpen(nil)}, "data")

	assert.True(t, root.Accepts(Path{"data", "x", "y"}))
	assert.True(t, root.Accepts(Path{Computed}))
	assert.True(t, root.Accepts(Path{"data", Computed}))
}

func TestCovers(t *testing.T) {
	assert.True(t, Covers(Path{"a"}, Path{"a", "b", "c"}))
	assert.True(t, Covers(Path{"a", "b"}, Path{"a", "b"}))
	assert.False(t, Covers(Path{"a", "b"}, Path{"a"}))
	assert.True(t, Covers(Path{"a", Wildcard, "c"}, Path{"a", "2", "c"}))
	assert.True(t, Covers(Path{"a", "b"}, Path{"a", Computed}))
	assert.False(t, Covers(Path{"x"}, Path{"a"}))
}

func TestMerge_UnionOfAlternatives(t *testing.T) {
	left := shape(map[string]*Node{"a": NewLeaf(nil)}, "a")
	right := shape(map[string]*Node{"b": NewLeaf(nil)}, "b")

	merged := Merge(left, right)
	require.Equal(t, Branch, merged.Kind)
	assert.Equal(t, []string{"a", "b"}, merged.Keys())
	assert.Equal(t, 1, left.Len(), "inputs are not modified")

	assert.Equal(t, Open, Merge(left, NewOpen(nil)).Kind)
	assert.Equal(t, Branch, Merge(NewLeaf(nil), right).Kind)
	assert.Equal(t, Leaf, Merge(NewLeaf(nil), NewLeaf(nil)).Kind)
}

func TestEntries_SkipsWildcardPlaceholders(t *testing.T) {
	elem := shape(map[string]*Node{"c": NewLeaf(nil)}, "c")
	list := NewBranch(nil)
	list.Set(Wildcard, elem)
	root := shape(map[string]*Node{"name": NewLeaf(nil), "a": list}, "name", "a")

	var paths []string
	for _, e := range root.Entries() {
		paths = append(paths, e.Path.String())
	}
	assert.Equal(t, []string{"name", "a", "a.*.c"}, paths)
}

func TestPathAppend_DoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = "a"
	x := base.Append("x")
	y := base.Append("y")
	assert.Equal(t, "a.x", x.String())
	assert.Equal(t, "a.y", y.String())
}
