// Package vocabtrie implements an arena-based byte trie used to find the
// longest vocabulary entry that matches at a given position in the parser's
// input.
//
// The node pool is a single contiguous slice indexed by small integers
// rather than a tree of pointers, the same arena layout the teacher used
// for import-path segment lookups, here re-keyed on raw bytes so the parser
// can answer "which metatag name, if any, starts here" in one walk instead
// of sorting the vocabulary and trying each candidate in turn.
package vocabtrie

// nodeIndex is the index of a node inside the arena.
type nodeIndex int32

const root nodeIndex = 0

// arenaNode is the internal representation of a trie node stored in the arena.
type arenaNode struct {
	children map[byte]nodeIndex
	isEnd    bool
}

// Trie is a byte-keyed trie over a fixed vocabulary of names.
type Trie struct {
	nodes []arenaNode
}

// New returns an empty trie.
func New() *Trie {
	t := &Trie{nodes: make([]arenaNode, 0, 64)}
	t.newNode() // root, index 0
	return t
}

func (t *Trie) newNode() nodeIndex {
	idx := nodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, arenaNode{children: make(map[byte]nodeIndex)})
	return idx
}

// Insert adds name to the trie. Empty names are rejected by the caller
// (Vocabulary never constructs one), not here.
func (t *Trie) Insert(name string) {
	cur := root
	for i := 0; i < len(name); i++ {
		b := name[i]
		next, ok := t.nodes[cur].children[b]
		if !ok {
			next = t.newNode()
			t.nodes[cur].children[b] = next
		}
		cur = next
	}
	t.nodes[cur].isEnd = true
}

// LongestMatch finds the longest vocabulary entry that is a prefix of
// input[pos:], and reports the byte length of that match. ok is false if no
// vocabulary entry matches at pos at all.
func (t *Trie) LongestMatch(input []byte, pos int) (length int, ok bool) {
	cur := root
	best := -1

	for i := pos; i < len(input); i++ {
		next, exists := t.nodes[cur].children[input[i]]
		if !exists {
			break
		}
		cur = next
		if t.nodes[cur].isEnd {
			best = i - pos + 1
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

// Equal reports whether two tries contain the same set of names.
func (t *Trie) Equal(other *Trie) bool {
	if len(t.nodes) == 0 || len(other.nodes) == 0 {
		return len(t.nodes) == len(other.nodes)
	}
	return equalNodes(t, root, other, root)
}

func equalNodes(a *Trie, aIdx nodeIndex, b *Trie, bIdx nodeIndex) bool {
	na, nb := a.nodes[aIdx], b.nodes[bIdx]
	if na.isEnd != nb.isEnd || len(na.children) != len(nb.children) {
		return false
	}
	for key, childA := range na.children {
		childB, ok := nb.children[key]
		if !ok || !equalNodes(a, childA, b, childB) {
			return false
		}
	}
	return true
}
