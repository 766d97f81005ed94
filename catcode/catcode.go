// Package catcode implements the TeX category-code table: the per-lexer,
// mutable mapping from character to its lexical role (escape, letter,
// comment, and so on).
package catcode

import "github.com/oarkflow/retex/source"

// Code classifies a character's lexical role. The sixteen values and their
// numeric order match plain TeX's category-code numbering.
type Code uint8

const (
	Escape       Code = 0  // \
	BeginGroup   Code = 1  // {
	EndGroup     Code = 2  // }
	MathShift    Code = 3  // $
	AlignmentTab Code = 4  // &
	EndOfLine    Code = 5  // end of line
	Parameter    Code = 6  // #
	Superscript  Code = 7  // ^
	Subscript    Code = 8  // _
	Ignored      Code = 9  // null, delete
	Space        Code = 10 // space, tab
	Letter       Code = 11 // a-z, A-Z
	Other        Code = 12 // everything else
	Active       Code = 13 // ~
	Comment      Code = 14 // %
	Invalid      Code = 15 // no character by default
)

// String renders a Code's name for diagnostics.
func (c Code) String() string {
	switch c {
	case Escape:
		return "Escape"
	case BeginGroup:
		return "BeginGroup"
	case EndGroup:
		return "EndGroup"
	case MathShift:
		return "MathShift"
	case AlignmentTab:
		return "AlignmentTab"
	case EndOfLine:
		return "EndOfLine"
	case Parameter:
		return "Parameter"
	case Superscript:
		return "Superscript"
	case Subscript:
		return "Subscript"
	case Ignored:
		return "Ignored"
	case Space:
		return "Space"
	case Letter:
		return "Letter"
	case Other:
		return "Other"
	case Active:
		return "Active"
	case Comment:
		return "Comment"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Table maps characters to category codes. Each Lexer owns its own Table;
// unlike the command identifier table, there is no shared/global instance.
type Table struct {
	codes map[source.MaybeChar]Code
}

// NewTable returns a Table pre-populated with the plain-TeX default
// category codes.
func NewTable() *Table {
	t := &Table{codes: make(map[source.MaybeChar]Code, 128)}

	t.codes[source.CharMaybeChar('\\')] = Escape
	t.codes[source.CharMaybeChar('{')] = BeginGroup
	t.codes[source.CharMaybeChar('}')] = EndGroup
	t.codes[source.CharMaybeChar('$')] = MathShift
	t.codes[source.CharMaybeChar('&')] = AlignmentTab
	t.codes[source.CharMaybeChar('\r')] = EndOfLine
	t.codes[source.CharMaybeChar('\n')] = EndOfLine
	t.codes[source.CharMaybeChar('#')] = Parameter
	t.codes[source.CharMaybeChar('^')] = Superscript
	t.codes[source.CharMaybeChar('_')] = Subscript
	t.codes[source.CharMaybeChar('\x00')] = Ignored
	t.codes[source.CharMaybeChar('\x7f')] = Ignored // DEL
	t.codes[source.CharMaybeChar(' ')] = Space
	t.codes[source.CharMaybeChar('\t')] = Space
	t.codes[source.CharMaybeChar('~')] = Active
	t.codes[source.CharMaybeChar('%')] = Comment

	for c := 'a'; c <= 'z'; c++ {
		t.codes[source.CharMaybeChar(c)] = Letter
	}
	for c := 'A'; c <= 'Z'; c++ {
		t.codes[source.CharMaybeChar(c)] = Letter
	}

	return t
}

// Get returns the category code of mc, defaulting to Other when no entry
// has been set.
func (t *Table) Get(mc source.MaybeChar) Code {
	if c, ok := t.codes[mc]; ok {
		return c
	}
	return Other
}

// Set overrides the category code of mc. Per the lexer's external
// interface, this takes effect for characters read after the call, never
// retroactively.
func (t *Table) Set(mc source.MaybeChar, code Code) {
	t.codes[mc] = code
}

// IsLetter reports whether mc has category code Letter.
func (t *Table) IsLetter(mc source.MaybeChar) bool {
	return t.Get(mc) == Letter
}

// IsSpace reports whether mc has category code Space.
func (t *Table) IsSpace(mc source.MaybeChar) bool {
	return t.Get(mc) == Space
}

// IsIgnored reports whether mc has category code Ignored.
func (t *Table) IsIgnored(mc source.MaybeChar) bool {
	return t.Get(mc) == Ignored
}

// IsSpaceOrIgnored reports whether mc has category code Space or Ignored.
func (t *Table) IsSpaceOrIgnored(mc source.MaybeChar) bool {
	switch t.Get(mc) {
	case Space, Ignored:
		return true
	default:
		return false
	}
}

// IsEscape reports whether mc has category code Escape.
func (t *Table) IsEscape(mc source.MaybeChar) bool {
	return t.Get(mc) == Escape
}

// IsEOL reports whether mc has category code EndOfLine.
func (t *Table) IsEOL(mc source.MaybeChar) bool {
	return t.Get(mc) == EndOfLine
}
