package postquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCNFHoistsOptIntoEnclosingAnd(t *testing.T) {
	t.Parallel()

	tree := MakeAnd([]*Node{
		MakeOpt(MakeTag("a")),
		MakeOpt(MakeTag("b")),
		MakeTag("c"),
	})

	got := tree.ToCNF()
	want := MakeAnd([]*Node{
		MakeOr([]*Node{MakeTag("a"), MakeTag("b")}),
		MakeTag("c"),
	})

	require.True(t, want.Equal(got))
	assert.Equal(t, "(and (or a b) c)", got.ToSexp())
}

func TestToCNFHoistsOptIntoEnclosingOr(t *testing.T) {
	t.Parallel()

	tree := MakeOr([]*Node{
		MakeOpt(MakeTag("a")),
		MakeTag("b"),
	})

	got := tree.ToCNF()
	want := MakeOr([]*Node{
		MakeOr([]*Node{MakeTag("a")}),
		MakeTag("b"),
	})

	require.True(t, want.Equal(got))
}

func TestToCNFBareOptBecomesSingletonOr(t *testing.T) {
	t.Parallel()

	got := MakeOpt(MakeTag("a")).ToCNF()
	want := MakeOr([]*Node{MakeTag("a")})
	assert.True(t, want.Equal(got))
}

func TestToCNFLeavesOptFreeTreesUnchanged(t *testing.T) {
	t.Parallel()

	tree := MakeAnd([]*Node{MakeTag("a"), MakeNot(MakeTag("b"))})
	got := tree.ToCNF()
	assert.True(t, tree.Equal(got))
}

func TestToCNFRemovesAllOptNodes(t *testing.T) {
	t.Parallel()

	tree := MakeAnd([]*Node{
		MakeOpt(MakeTag("a")),
		MakeOr([]*Node{MakeOpt(MakeTag("b")), MakeTag("c")}),
	})

	got := tree.ToCNF()
	assert.False(t, containsOpt(got))
}

func TestToCNFIsIdempotent(t *testing.T) {
	t.Parallel()

	tree := MakeAnd([]*Node{MakeOpt(MakeTag("a")), MakeOpt(MakeTag("b")), MakeTag("c")})
	once := tree.ToCNF()
	twice := once.ToCNF()
	assert.True(t, once.Equal(twice))
}

func TestToCNFHoistPreservesNonOptOrder(t *testing.T) {
	t.Parallel()

	tree := MakeAnd([]*Node{
		MakeTag("x"),
		MakeOpt(MakeTag("a")),
		MakeTag("y"),
		MakeOpt(MakeTag("b")),
		MakeTag("z"),
	})

	got := tree.ToCNF()
	want := MakeAnd([]*Node{
		MakeOr([]*Node{MakeTag("a"), MakeTag("b")}),
		MakeTag("x"),
		MakeTag("y"),
		MakeTag("z"),
	})
	require.True(t, want.Equal(got))
}

func containsOpt(n *Node) bool {
	if n.Kind() == KindOpt {
		return true
	}
	for _, c := range n.Children() {
		if containsOpt(c) {
			return true
		}
	}
	return false
}
