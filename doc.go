/*
Package postquery implements a parser for booru-style tag search queries:
short, whitespace-separated boolean expressions over tags, wildcards, and
metatags, such as

	cat -dog ~rating:safe (order:score or order:favcount)

# Grammar

The grammar is a small recursive-descent, backtracking grammar over raw
bytes:

	root       = { or_clause } ;
	or_clause  = and_clause [ "or" or_clause ] ;
	and_clause = factor_list [ "and" and_clause ] ;
	factor_list= factor { factor } ;
	factor     = "-" expr | "~" expr | expr ;
	expr       = "(" or_clause ")" | term ;
	term       = metatag | tag | wildcard ;

"and" and "or" are keywords only when followed by whitespace, so they never
shadow a tag or metatag name that merely starts with those letters. Factors
juxtaposed with only whitespace between them are an implicit conjunction.

# AST

Parse produces a *Node, a single tagged-union value indexed by Kind rather
than one struct per node variant — see node.go. ToInfix and ToSexp render a
tree back out; ToCNF hoists every Opt ("~tag") marker into an enclosing Or,
the one tree rewrite the package performs.

# Errors

Parse distinguishes three outcomes, described in errors.go: a tree; None
with one or more Warning values describing what was left unparsed; or a
hard *UnclosedParenError when the input's parentheses never balance. There
is no separate "hard input error" case in the Go API — a nil or
otherwise invalid input is the caller's responsibility before calling
Parse.
*/
package postquery
