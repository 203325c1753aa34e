package postquery

// ToCNF rewrites the tree rooted at n so that every Opt marker has been
// hoisted into an enclosing Or, leaving no Opt nodes anywhere in the
// result (the "opt-hoist" pass; the name follows the upstream source this
// was distilled from, which also calls a partial transform to_cnf — full
// conjunctive-disjunctive normalization, distributing Or over And and
// pushing Not inward, is explicitly not attempted here).
//
// The traversal is pre-order: a node is rewritten first, then the walk
// descends into its — possibly new — children. ToCNF returns a rebuilt
// tree rather than mutating n in place; this is the one place spec intent
// explicitly allows either shape, and returning a fresh tree avoids any
// aliasing surprise for a caller still holding n.
func (n *Node) ToCNF() *Node {
	if n == nil {
		return nil
	}
	rewritten := rewriteSelf(n)
	if len(rewritten.children) == 0 {
		return rewritten
	}
	children := make([]*Node, len(rewritten.children))
	for i, c := range rewritten.children {
		children[i] = c.ToCNF()
	}
	out := *rewritten
	out.children = children
	return &out
}

// rewriteSelf applies the per-node rewrite rule, without recursing.
func rewriteSelf(n *Node) *Node {
	switch n.kind {
	case KindOpt:
		// A bare Opt — root, or a Not/Opt operand — has no enclosing
		// And/Or to absorb it, so it becomes a one-element Or on its own.
		return MakeOr([]*Node{n.children[0]})

	case KindAnd, KindOr:
		if !hasOptChild(n.children) {
			return n
		}
		return hoistOpts(n)

	default:
		return n
	}
}

func hasOptChild(children []*Node) bool {
	for _, c := range children {
		if c.kind == KindOpt {
			return true
		}
	}
	return false
}

// hoistOpts partitions children into opt-children and non-opt-children —
// stably, opt-children first, non-opt order preserved among themselves —
// strips each opt-child's Opt wrapper, and collects the results into a
// single Or placed where the opt-children used to be: the final child
// list is [combined] ++ non_opts.
func hoistOpts(n *Node) *Node {
	optChildren := make([]*Node, 0, len(n.children))
	nonOptChildren := make([]*Node, 0, len(n.children))

	for _, c := range n.children {
		if c.kind == KindOpt {
			optChildren = append(optChildren, c.children[0])
		} else {
			nonOptChildren = append(nonOptChildren, c)
		}
	}

	combined := MakeOr(optChildren)
	newChildren := make([]*Node, 0, 1+len(nonOptChildren))
	newChildren = append(newChildren, combined)
	newChildren = append(newChildren, nonOptChildren...)

	return &Node{kind: n.kind, children: newChildren}
}
