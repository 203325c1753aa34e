package postquery

// SpaceLenAt classifies a position in a UTF-8 byte stream: it returns the
// UTF-8 encoded length (1, 2, or 3) of a Unicode Zs-class whitespace code
// point starting at pos, or 0 if none starts there. Only the 17 code
// points below are recognized:
//
//	U+0020 U+00A0 U+1680 U+2000..U+200A U+202F U+205F U+3000
//
// This is the parser's hot path, so it dispatches on the leading byte
// directly instead of decoding a rune — the same technique the teacher's
// query lexer uses for its own byte-class dispatch (fixer_v2/query/
// internal.go), here specialized to 17 fixed byte patterns rather than a
// general state-transition table, since there is nothing to transition
// between: each of the 17 code points is recognized by one fixed byte
// sequence.
func SpaceLenAt(input []byte, pos int) int {
	if pos < 0 || pos >= len(input) {
		return 0
	}
	b0 := input[pos]

	switch {
	case b0 == 0x20: // U+0020 SPACE
		return 1

	case b0 == 0xC2:
		if peek(input, pos, 1) == 0xA0 { // U+00A0 NO-BREAK SPACE
			return 2
		}
		return 0

	case b0 == 0xE1:
		if peek(input, pos, 1) == 0x9A && peek(input, pos, 2) == 0x80 { // U+1680
			return 3
		}
		return 0

	case b0 == 0xE2:
		b1, b2 := peek(input, pos, 1), peek(input, pos, 2)
		switch {
		case b1 == 0x80 && b2 >= 0x80 && b2 <= 0x8A: // U+2000..U+200A
			return 3
		case b1 == 0x80 && b2 == 0xAF: // U+202F NARROW NO-BREAK SPACE
			return 3
		case b1 == 0x81 && b2 == 0x9F: // U+205F MEDIUM MATHEMATICAL SPACE
			return 3
		default:
			return 0
		}

	case b0 == 0xE3:
		if peek(input, pos, 1) == 0x80 && peek(input, pos, 2) == 0x80 { // U+3000
			return 3
		}
		return 0

	default:
		return 0
	}
}

// peek reads the byte at pos+offset, or 0 if that is past the end of input.
// Callers never need to distinguish "0 byte" from "out of range" here: 0x00
// never appears inside any of the fixed sequences SpaceLenAt matches.
func peek(input []byte, pos, offset int) byte {
	i := pos + offset
	if i >= len(input) {
		return 0
	}
	return input[i]
}

// unicodeSpaces is the decoded-code-point form of the same 17 positions,
// used by IsSpace for already-decoded runes. Metatag value construction
// (valueNeedsQuoting) uses SpaceLenAt on the bytes instead.
var unicodeSpaces = map[rune]struct{}{
	0x0020: {}, 0x00A0: {}, 0x1680: {},
	0x2000: {}, 0x2001: {}, 0x2002: {}, 0x2003: {}, 0x2004: {},
	0x2005: {}, 0x2006: {}, 0x2007: {}, 0x2008: {}, 0x2009: {}, 0x200A: {},
	0x202F: {}, 0x205F: {}, 0x3000: {},
}

// IsSpace reports whether r is one of the 17 recognized Zs-class code
// points.
func IsSpace(r rune) bool {
	_, ok := unicodeSpaces[r]
	return ok
}
