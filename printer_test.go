package postquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInfixAndToSexpScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		node       *Node
		wantInfix  string
		wantSexp   string
	}{
		{
			name:      "all",
			node:      MakeAll(),
			wantInfix: "",
			wantSexp:  "all",
		},
		{
			name:      "none",
			node:      MakeNone(),
			wantInfix: "none",
			wantSexp:  "none",
		},
		{
			name:      "conjunction",
			node:      MakeAnd([]*Node{MakeTag("cat"), MakeTag("dog")}),
			wantInfix: "cat dog",
			wantSexp:  "(and cat dog)",
		},
		{
			name:      "disjunction",
			node:      MakeOr([]*Node{MakeTag("cat"), MakeTag("dog")}),
			wantInfix: "cat or dog",
			wantSexp:  "(or cat dog)",
		},
		{
			name:      "not and opt prefixes",
			node:      MakeAnd([]*Node{MakeNot(MakeTag("cat")), MakeOpt(MakeTag("dog")), MakeTag("cat")}),
			wantInfix: "-cat ~dog cat",
			wantSexp:  "(and (not cat) (opt dog) cat)",
		},
		{
			name: "nested or inside and is parenthesized",
			node: MakeAnd([]*Node{
				MakeTag("a"),
				MakeOr([]*Node{MakeTag("b"), MakeTag("c")}),
				MakeTag("d"),
			}),
			wantInfix: "a (b or c) d",
			wantSexp:  "(and a (or b c) d)",
		},
		{
			name:      "metatag unquoted",
			node:      MakeMetatag("order", "score", false),
			wantInfix: "order:score",
			wantSexp:  "order:score",
		},
		{
			name:      "metatag quoted",
			node:      MakeMetatag("user", "Space Name", false),
			wantInfix: `user:"Space Name"`,
			wantSexp:  `user:"Space Name"`,
		},
		{
			name:      "smiley tag",
			node:      MakeTag(":)"),
			wantInfix: ":)",
			wantSexp:  ":)",
		},
		{
			name:      "wildcard",
			node:      MakeWildcard("a*"),
			wantInfix: "a*",
			wantSexp:  "(wildcard a*)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantInfix, tc.node.ToInfix())
			assert.Equal(t, tc.wantSexp, tc.node.ToSexp())
		})
	}
}

func TestFormatMetatagEscapesQuotesAndBackslashes(t *testing.T) {
	t.Parallel()

	n := MakeMetatag("source", `she said "hi" \o/`, true)
	assert.Equal(t, `source:"she said \"hi\" \\o/"`, n.ToInfix())
}

func TestSingleChildCompositeIsNotParenthesized(t *testing.T) {
	t.Parallel()

	// A Not/Opt wrapping a single-child composite (e.g. a one-element And)
	// is never produced by the parser, but ToInfix must still follow the
	// stated rule: only >1-child composites get parenthesized.
	inner := MakeAnd([]*Node{MakeTag("a")})
	not := MakeNot(inner)
	assert.Equal(t, "-a", not.ToInfix())
}
