package lexer

import "github.com/oarkflow/retex/source"

// decodedChar is the result of reading one logical character from the
// input: the character itself, how many raw bytes it occupied, and whether
// any transformation (caret notation, CRLF folding) was applied while
// reading it.
type decodedChar struct {
	char        source.MaybeChar
	size        int
	transformed bool
}

func hexValue(ch byte) byte {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10
	default:
		return 0
	}
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// decodeCharAt reads a "logical" character starting at pos, applying the
// transformations TeX's input layer applies before any category-code
// dispatch happens: caret notation (^^xy hex form, falling back to the
// ^^X single-character form) and CRLF folding (a \r immediately followed by
// \n is read as a single logical \r, consuming both bytes). ok is false
// once pos is at or past the end of input.
func decodeCharAt(input []byte, pos int) (decodedChar, bool) {
	if pos >= len(input) {
		return decodedChar{}, false
	}

	ch := input[pos]

	if ch == '^' && pos+2 < len(input) && input[pos+1] == '^' {
		third := input[pos+2]

		// The two-hex-digit form (^^xy) takes precedence over the
		// single-character form (^^X) whenever both could match.
		if pos+3 < len(input) {
			hi, lo := third, input[pos+3]
			if isHexDigit(hi) && isHexDigit(lo) {
				decoded := (hexValue(hi) << 4) | hexValue(lo)
				return decodedChar{char: source.CharMaybeChar(rune(decoded)), size: 4, transformed: true}, true
			}
		}

		var decoded byte
		if third >= 64 {
			decoded = third - 64 // ^^A -> 1, ^^B -> 2, ...
		} else {
			decoded = third + 64 // ^^? -> 127, ...
		}
		return decodedChar{char: source.CharMaybeChar(rune(decoded)), size: 3, transformed: true}, true
	}

	if ch == '\r' && pos+1 < len(input) && input[pos+1] == '\n' {
		return decodedChar{char: source.CharMaybeChar('\r'), size: 2, transformed: true}, true
	}

	return decodedChar{char: source.CharMaybeChar(rune(ch)), size: 1, transformed: false}, true
}
