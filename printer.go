package postquery

import "strings"

// ToInfix renders n in the canonical infix form that mirrors the input
// query syntax: "cat dog", "cat or dog", "-cat ~dog", "a (b or c) d", and
// so on. It is a total function — every well-formed tree has an infix
// rendering, there is no error return.
func (n *Node) ToInfix() string {
	switch n.kind {
	case KindAll:
		return ""
	case KindNone:
		return "none"
	case KindTag, KindWildcard:
		return n.text
	case KindMetatag:
		return formatMetatag(n)
	case KindNot:
		return "-" + n.infixChild(n.children[0])
	case KindOpt:
		return "~" + n.infixChild(n.children[0])
	case KindAnd:
		return n.joinInfix(n.children, " ")
	case KindOr:
		return n.joinInfix(n.children, " or ")
	default:
		return ""
	}
}

// infixChild renders a Not/Opt operand, parenthesizing it iff it has more
// than one direct child.
func (n *Node) infixChild(child *Node) string {
	if child.ChildCount() > 1 {
		return "(" + child.ToInfix() + ")"
	}
	return child.ToInfix()
}

// joinInfix renders an And/Or's children, parenthesizing each child that
// has more than one direct child, joined by sep.
func (n *Node) joinInfix(children []*Node, sep string) string {
	var b strings.Builder
	for i, c := range children {
		if i > 0 {
			b.WriteString(sep)
		}
		if c.ChildCount() > 1 {
			b.WriteByte('(')
			b.WriteString(c.ToInfix())
			b.WriteByte(')')
		} else {
			b.WriteString(c.ToInfix())
		}
	}
	return b.String()
}

// ToSexp renders n as an unambiguous s-expression, mainly intended for
// tests: structurally distinct trees always produce distinct s-expressions,
// and children are never re-parenthesized beyond the enclosing node's own
// parens.
func (n *Node) ToSexp() string {
	switch n.kind {
	case KindAll:
		return "all"
	case KindNone:
		return "none"
	case KindTag:
		return n.text
	case KindWildcard:
		return "(wildcard " + n.text + ")"
	case KindMetatag:
		return formatMetatag(n)
	case KindNot, KindOpt, KindAnd, KindOr:
		var b strings.Builder
		b.WriteByte('(')
		b.WriteString(n.kind.String())
		for _, c := range n.children {
			b.WriteByte(' ')
			b.WriteString(c.ToSexp())
		}
		b.WriteByte(')')
		return b.String()
	default:
		return "unknown"
	}
}

// formatMetatag renders a Metatag node as "name:value" or, when quoted,
// "name:\"value\"" with '"' and '\' escaped C-style. It is shared between
// ToInfix and ToSexp, which use the identical rendering for this kind.
func formatMetatag(n *Node) string {
	if !n.metaQuoted {
		return n.text + ":" + n.metaValue
	}
	var b strings.Builder
	b.WriteString(n.text)
	b.WriteString(":\"")
	for i := 0; i < len(n.metaValue); i++ {
		c := n.metaValue[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}
