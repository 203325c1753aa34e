package postquery

import (
	"strings"

	"go.uber.org/zap"
)

// smileyExceptions are tokens ending in ')' that trailing-paren stripping
// must never touch, even inside an open group.
var smileyExceptions = map[string]struct{}{
	":)": {}, ":(": {}, ";)": {}, ";(": {}, ">:)": {}, ">:(": {},
}

// snapshot captures everything backtracking needs to restore: the cursor
// and the running open-paren count (spec.md §3.2).
type snapshot struct {
	pos            int
	unclosedParens int
}

// Parser turns an input byte string and a metatag vocabulary into an AST.
// It is a recursive-descent parser over a grammar that is ambiguous at the
// token level, so every production signals failure by returning a bool
// rather than panicking or erroring, and every caller that gets false back
// is expected to either try another alternative or propagate the failure —
// matching the value-snapshot backtracking style of the teacher's own
// buffer.transition() (fixer_v2/query/buffer.go), which returns
// (States, error) instead of throwing.
type Parser struct {
	input          []byte
	pos            int
	vocab          *Vocabulary
	unclosedParens int

	// fatalErr is set exactly once, when the parser runs out of input
	// entirely while a '(' is still open — the one failure mode that
	// ordinary backtracking cannot recover from (there is no more input
	// to retry with), so it short-circuits every production above it
	// instead of letting '(' degrade into a literal tag character.
	fatalErr error
}

// NewParser constructs a Parser over input using vocab for metatag lookup.
func NewParser(input []byte, vocab *Vocabulary) *Parser {
	return &Parser{input: input, vocab: vocab}
}

// Parse turns input into an AST using metatags as the recognized metatag
// vocabulary (spec.md §6.1, §6.3). An empty input, or one holding only
// whitespace, yields All. Parse does not special-case a nil input: it runs
// the grammar over it like an empty one, and skipping the call for an
// absent query is left to the caller, the same convention the upstream Ruby binding uses
// (lib/post_query.rb skips calling into the parser entirely on a nil
// query string rather than asking the parser to handle "absent").
func Parse(input []byte, metatags []string) (*Node, []Warning, error) {
	p := NewParser(input, NewVocabulary(metatags))
	return p.parseRoot()
}

func (p *Parser) mark() snapshot {
	return snapshot{pos: p.pos, unclosedParens: p.unclosedParens}
}

func (p *Parser) reset(s snapshot) {
	p.pos = s.pos
	p.unclosedParens = s.unclosedParens
}

func (p *Parser) atEOF() bool { return p.pos >= len(p.input) }

// skipWhitespace consumes and discards a run of Unicode whitespace
// (spec.md §4.1, §4.5.2).
func (p *Parser) skipWhitespace() {
	for !p.atEOF() {
		n := SpaceLenAt(p.input, p.pos)
		if n == 0 {
			return
		}
		p.pos += n
	}
}

// skipKeyword matches word (ASCII) at the current position followed by at
// least one Unicode whitespace character, and consumes both the word and
// the whitespace run that follows it. word is only recognized as a
// keyword when followed by whitespace — spec.md §4.5.1 — so "or" never
// accidentally eats into a tag like "order:asc", nor "and" into a longer
// word like "android".
func (p *Parser) skipKeyword(word string) bool {
	end := p.pos + len(word)
	if end > len(p.input) || string(p.input[p.pos:end]) != word {
		return false
	}
	if SpaceLenAt(p.input, end) == 0 {
		return false
	}
	p.pos = end
	p.skipWhitespace()
	return true
}

// parseRoot implements `root = { or_clause }` plus the top-level result
// rules of spec.md §4.5.5.
func (p *Parser) parseRoot() (*Node, []Warning, error) {
	p.skipWhitespace()

	var clauses []*Node
	for !p.atEOF() {
		snap := p.mark()
		clause, ok := p.parseOrClause()
		if !ok {
			p.reset(snap)
			break
		}
		clauses = append(clauses, clause)
		p.skipWhitespace()
	}

	if p.fatalErr != nil {
		logger.Debug("unclosed parenthesis", zap.Error(p.fatalErr))
		return MakeNone(), nil, p.fatalErr
	}

	if !p.atEOF() {
		warning := Warning{
			Parsed:    string(p.input[:p.pos]),
			Remaining: string(p.input[p.pos:]),
		}
		logger.Debug("soft parse error",
			zap.String("parsed", warning.Parsed),
			zap.String("remaining", warning.Remaining))
		return MakeNone(), []Warning{warning}, nil
	}

	switch len(clauses) {
	case 0:
		return MakeAll(), nil, nil
	case 1:
		return clauses[0], nil, nil
	default:
		return MakeAnd(clauses), nil, nil
	}
}

// parseOrClause implements `or_clause = and_clause [ "or" or_clause ]`.
func (p *Parser) parseOrClause() (*Node, bool) {
	left, ok := p.parseAndClause()
	if !ok {
		return nil, false
	}

	snap := p.mark()
	p.skipWhitespace()
	if p.skipKeyword("or") {
		right, ok := p.parseOrClause()
		if ok {
			return flatten(KindOr, left, right), true
		}
	}
	if p.fatalErr != nil {
		return nil, false
	}
	p.reset(snap)
	return left, true
}

// parseAndClause implements `and_clause = factor_list [ "and" and_clause ]`.
func (p *Parser) parseAndClause() (*Node, bool) {
	left, ok := p.parseFactorList()
	if !ok {
		return nil, false
	}

	snap := p.mark()
	p.skipWhitespace()
	if p.skipKeyword("and") {
		right, ok := p.parseAndClause()
		if ok {
			return flatten(KindAnd, left, right), true
		}
	}
	if p.fatalErr != nil {
		return nil, false
	}
	p.reset(snap)
	return left, true
}

// flatten combines left and right into a single node of kind, splicing in
// either operand's own children when it already has kind (so a chain of
// the same operator collapses into one n-ary node instead of nesting), and
// treating it as one opaque child otherwise.
func flatten(kind Kind, left, right *Node) *Node {
	children := make([]*Node, 0, left.ChildCount()+right.ChildCount()+2)
	for _, n := range []*Node{left, right} {
		if n.kind == kind {
			children = append(children, n.children...)
		} else {
			children = append(children, n)
		}
	}
	return &Node{kind: kind, children: children}
}

// parseFactorList implements `factor_list = factor { factor }`, eliding a
// single gathered factor to itself rather than wrapping it in a one-child
// And (spec.md §3.1: "the parser may elide a 1-child And to its child").
func (p *Parser) parseFactorList() (*Node, bool) {
	first, ok := p.parseFactor()
	if !ok {
		return nil, false
	}

	factors := []*Node{first}
	for {
		snap := p.mark()
		p.skipWhitespace()
		next, ok := p.parseFactor()
		if !ok {
			if p.fatalErr != nil {
				return nil, false
			}
			p.reset(snap)
			break
		}
		factors = append(factors, next)
	}

	if len(factors) == 1 {
		return factors[0], true
	}
	return MakeAnd(factors), true
}

// parseFactor implements `factor = "-" expr | "~" expr | expr`.
func (p *Parser) parseFactor() (*Node, bool) {
	if !p.atEOF() {
		switch p.input[p.pos] {
		case '-':
			return p.parsePrefixed(MakeNot)
		case '~':
			return p.parsePrefixed(MakeOpt)
		}
	}
	return p.parseExpr()
}

func (p *Parser) parsePrefixed(wrap func(*Node) *Node) (*Node, bool) {
	snap := p.mark()
	p.pos++ // consume '-' or '~'
	child, ok := p.parseExpr()
	if !ok {
		if p.fatalErr != nil {
			return nil, false
		}
		p.reset(snap)
		return nil, false
	}
	return wrap(child), true
}

// parseExpr implements `expr = "(" or_clause ")" | term`. The paren
// alternative is tried first; if it fails on an ordinary (non-EOF)
// mismatch, '(' falls through to term, where it is just another
// non-excluded tag-start byte.
func (p *Parser) parseExpr() (*Node, bool) {
	if !p.atEOF() && p.input[p.pos] == '(' {
		if node, ok := p.parseParenGroup(); ok {
			return node, true
		}
		if p.fatalErr != nil {
			return nil, false
		}
	}
	return p.parseTerm()
}

// parseParenGroup implements the "(" or_clause ")" alternative, including
// the fatal short-circuit for the one unrecoverable case: input runs out
// entirely while this group is still open. Any other mismatch (a
// different byte sits where ')' was expected) backtracks normally,
// leaving '(' free to be reinterpreted as ordinary tag text by the
// caller.
func (p *Parser) parseParenGroup() (*Node, bool) {
	snap := p.mark()
	p.pos++ // consume '('
	p.unclosedParens++
	p.skipWhitespace()

	inner, ok := p.parseOrClause()
	if !ok {
		if p.fatalErr == nil {
			p.reset(snap)
		}
		return nil, false
	}

	p.skipWhitespace()

	if p.atEOF() {
		p.fatalErr = &UnclosedParenError{Count: p.unclosedParens}
		return nil, false
	}
	if p.input[p.pos] != ')' {
		p.reset(snap)
		return nil, false
	}

	p.pos++
	p.unclosedParens--
	return inner, true
}

// parseTerm implements `term = metatag | tag | wildcard`. The metatag
// alternative is gated by a cheap structural check (does a vocabulary
// entry, matched longest-first, sit here followed by ':' and at least one
// more byte); once that gate holds, the term commits to metatag — if the
// value itself then fails to parse (an unterminated quote, a bad escape),
// the whole term fails rather than falling back to tag/wildcard, per
// spec.md §4.5.3's "hard parse failure" wording for those cases.
func (p *Parser) parseTerm() (*Node, bool) {
	if name, valueStart, ok := p.metatagGate(); ok {
		return p.parseMetatagFrom(name, valueStart)
	}
	return p.parseTagOrWildcard()
}

// metatagGate reports whether a vocabulary entry matches at the current
// position, immediately followed by ':' and at least one more byte. It
// consumes nothing.
func (p *Parser) metatagGate() (name string, valueStart int, ok bool) {
	length, matched := p.vocab.LongestMatch(p.input, p.pos)
	if !matched {
		return "", 0, false
	}
	colon := p.pos + length
	if colon >= len(p.input) || p.input[colon] != ':' {
		return "", 0, false
	}
	if colon+1 >= len(p.input) {
		// ':' is the last byte in the input: nothing for tag rejection
		// rule 3 to point at, so this is left for plain tag scanning.
		return "", 0, false
	}
	return string(p.input[p.pos:colon]), colon + 1, true
}

func (p *Parser) parseMetatagFrom(name string, valueStart int) (*Node, bool) {
	p.pos = valueStart
	value, quoted, ok := p.parseMetatagValue()
	if !ok {
		return nil, false
	}
	return MakeMetatag(name, value, quoted), true
}

// parseMetatagValue implements the value-string grammar of spec.md
// §4.5.3: quoted (delimited by the matching " or ', with \<quote>
// unescaping to a literal quote and any other \x a hard failure) or
// unquoted (runs until unescaped whitespace, with \<whitespace>
// unescaping and \<anything-else> preserved verbatim, backslash
// included — the documented compatibility quirk).
func (p *Parser) parseMetatagValue() (value string, quoted bool, ok bool) {
	if p.atEOF() {
		return "", false, false
	}
	switch p.input[p.pos] {
	case '"', '\'':
		return p.parseQuotedValue(p.input[p.pos])
	default:
		return p.parseUnquotedValue()
	}
}

func (p *Parser) parseQuotedValue(quote byte) (string, bool, bool) {
	p.pos++ // consume the opening quote
	var b strings.Builder
	for {
		if p.atEOF() {
			return "", false, false // EOF before the closing quote
		}
		c := p.input[p.pos]
		if c == quote {
			p.pos++
			return b.String(), true, true
		}
		if c == '\\' {
			if p.pos+1 >= len(p.input) {
				return "", false, false
			}
			next := p.input[p.pos+1]
			if next != quote {
				// any other \x inside quoted mode is a hard failure
				return "", false, false
			}
			b.WriteByte(quote)
			p.pos += 2
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
}

func (p *Parser) parseUnquotedValue() (string, bool, bool) {
	var b strings.Builder
	for !p.atEOF() {
		if SpaceLenAt(p.input, p.pos) > 0 {
			break
		}
		c := p.input[p.pos]
		if c == '\\' && p.pos+1 < len(p.input) {
			if n := SpaceLenAt(p.input, p.pos+1); n > 0 {
				b.Write(p.input[p.pos+1 : p.pos+1+n])
				p.pos += 1 + n
				continue
			}
			b.WriteByte('\\')
			b.WriteByte(p.input[p.pos+1])
			p.pos += 2
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
	return b.String(), false, true
}

// parseTagOrWildcard implements the shared Tag/Wildcard token scan of
// spec.md §4.5.3: a byte-run to the next whitespace, trailing unbalanced
// ')' stripping, and then a single classification (bare keyword reject,
// '*' present means Wildcard, otherwise Tag). Because term already tried
// metatag first and only reaches here on a gate miss, the "looks like a
// reserved metatag prefix" tag-rejection rule is already satisfied by
// construction and needs no separate check.
func (p *Parser) parseTagOrWildcard() (*Node, bool) {
	snap := p.mark()
	token, ok := p.scanTagToken()
	if !ok {
		p.reset(snap)
		return nil, false
	}
	if token == "and" || token == "or" {
		p.reset(snap)
		return nil, false
	}
	if strings.ContainsRune(token, '*') {
		return MakeWildcard(token), true
	}
	return MakeTag(token), true
}

func (p *Parser) scanTagToken() (string, bool) {
	if p.atEOF() {
		return "", false
	}
	switch p.input[p.pos] {
	case ')', '~', '-':
		return "", false
	}
	if SpaceLenAt(p.input, p.pos) > 0 {
		return "", false
	}

	start := p.pos
	for !p.atEOF() && SpaceLenAt(p.input, p.pos) == 0 {
		p.pos++
	}
	raw := string(p.input[start:p.pos])

	stripped := stripTrailingParens(raw, p.unclosedParens)
	p.pos -= len(raw) - len(stripped)
	return stripped, true
}

// stripTrailingParens implements spec.md §4.5.3's trailing-unbalanced-')'
// stripping: each round, stop if the token (as it stands, before this
// round's strip) is already a balanced parenthesis string or one of the
// hard-coded smiley exceptions; otherwise strip one ')' and spend one unit
// of the unclosed-paren budget. Stopping on "already balanced" — not
// "would become balanced after stripping" — is what leaves a self
// contained token like "(x)" alone while still reducing "c)" to "c" so the
// enclosing group's own ")" stays available to close it.
func stripTrailingParens(token string, unclosedParens int) string {
	budget := unclosedParens
	for budget > 0 && len(token) > 1 && token[len(token)-1] == ')' {
		if isBalancedParens(token) || isSmileyException(token) {
			break
		}
		token = token[:len(token)-1]
		budget--
	}
	return token
}

func isSmileyException(token string) bool {
	_, ok := smileyExceptions[token]
	return ok
}

// isBalancedParens reports whether s has as many '(' as ')', scanning
// left to right, never going negative.
func isBalancedParens(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
