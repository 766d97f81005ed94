// Package token defines the Token record produced by the lexer: a kind, a
// bit-flag set, a source location and length, and a kind-dependent data
// payload.
package token

import (
	"fmt"

	"github.com/oarkflow/retex/ident"
	"github.com/oarkflow/retex/source"
)

// Kind classifies a Token.
type Kind uint8

const (
	Eof     Kind = iota // end of input
	Unknown             // a freshly reset, not-yet-lexed token

	ControlWord   // \command  (letters after backslash)
	ControlSymbol // \{        (single non-letter after backslash)
	BeginGroup    // {
	EndGroup      // }
	MathShift     // $
	AlignmentTab  // &
	Parameter     // #
	Superscript   // ^
	Subscript     // _
	Space         // a run of space-category characters
	Letter        // category code 11
	Other         // category code 12
	ActiveChar    // category code 13
	Paragraph     // \par inserted for a blank line
)

func (k Kind) String() string {
	switch k {
	case Eof:
		return "Eof"
	case Unknown:
		return "Unknown"
	case ControlWord:
		return "ControlWord"
	case ControlSymbol:
		return "ControlSymbol"
	case BeginGroup:
		return "BeginGroup"
	case EndGroup:
		return "EndGroup"
	case MathShift:
		return "MathShift"
	case AlignmentTab:
		return "AlignmentTab"
	case Parameter:
		return "Parameter"
	case Superscript:
		return "Superscript"
	case Subscript:
		return "Subscript"
	case Space:
		return "Space"
	case Letter:
		return "Letter"
	case Other:
		return "Other"
	case ActiveChar:
		return "ActiveChar"
	case Paragraph:
		return "Paragraph"
	default:
		return "Kind(?)"
	}
}

// Flags is a bit set of token-level flags.
type Flags uint8

const (
	FlagNone Flags = 0
	// FlagStartOfLine marks the first token lexed from a new source line
	// (and the very first token of the input).
	FlagStartOfLine Flags = 1 << 0
)

// Has reports whether all bits of f are set in flags.
func (flags Flags) Has(f Flags) bool {
	return flags&f == f
}

// Data carries the kind-dependent payload of a Token. Exactly one field is
// meaningful for any given Kind; Set/accessor methods on Token enforce that
// pairing at the construction boundary rather than leaving it to callers to
// get right.
type Data struct {
	kind Kind

	ch         rune
	paramIndex uint8 // 1..9, or 0 meaning "no digit" (Parameter with no index)
	hasParam   bool
	symbol     source.MaybeChar
	hasSymbol  bool
	commandID  *ident.ID
}

func dataNone() Data { return Data{kind: Unknown} }

func dataChar(kind Kind, ch rune) Data {
	if kind != Letter && kind != Other {
		panic(fmt.Sprintf("token: Char data attached to kind %v", kind))
	}
	return Data{kind: kind, ch: ch}
}

func dataParameterIndex(index uint8, has bool) Data {
	return Data{kind: Parameter, paramIndex: index, hasParam: has}
}

func dataSymbol(mc source.MaybeChar, has bool) Data {
	return Data{kind: ControlSymbol, symbol: mc, hasSymbol: has}
}

func dataCommandIdentifier(kind Kind, id *ident.ID) Data {
	if kind != ControlWord && kind != ActiveChar {
		panic(fmt.Sprintf("token: CommandIdentifier data attached to kind %v", kind))
	}
	return Data{kind: kind, commandID: id}
}

// Token is a single lexical unit: its kind, flags, source range, and
// kind-dependent payload. The same Token value is reused across calls to
// Lexer.Lex/Preprocessor.Lex to avoid per-token allocation; callers that
// need to keep a token must copy it.
type Token struct {
	kind     Kind
	flags    Flags
	location source.Location
	length   uint32
	data     Data
}

// Reset restores t to its freshly-constructed, not-yet-lexed state.
func (t *Token) Reset() {
	t.kind = Unknown
	t.flags = FlagNone
	t.location = source.InvalidLocation()
	t.length = 0
	t.data = dataNone()
}

// Kind returns the token's kind.
func (t *Token) Kind() Kind { return t.kind }

// SetKind sets the token's kind. Exported for the lexer package; ordinary
// consumers should treat Token as read-only.
func (t *Token) SetKind(k Kind) { t.kind = k }

// Is reports whether the token has kind k.
func (t *Token) Is(k Kind) bool { return t.kind == k }

// IsNot reports whether the token does not have kind k.
func (t *Token) IsNot(k Kind) bool { return t.kind != k }

// IsOneOf reports whether the token's kind is any of kinds.
func (t *Token) IsOneOf(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.kind == k {
			return true
		}
	}
	return false
}

// Location returns the token's start location.
func (t *Token) Location() source.Location { return t.location }

// SetLocation sets the token's start location.
func (t *Token) SetLocation(loc source.Location) { t.location = loc }

// EndLocation returns the location just past the token, or an invalid
// location if the token's start location is itself invalid.
func (t *Token) EndLocation() source.Location {
	if !t.location.IsValid() {
		return source.InvalidLocation()
	}
	return source.NewLocation(t.location.Offset() + t.length)
}

// Range returns the [Location, EndLocation) span of the token.
func (t *Token) Range() source.Range {
	return source.NewRange(t.Location(), t.EndLocation())
}

// Length returns the number of input bytes this token accounts for.
func (t *Token) Length() uint32 { return t.length }

// SetLength sets the token's byte length.
func (t *Token) SetLength(n uint32) { t.length = n }

// Flags returns the token's flag set.
func (t *Token) Flags() Flags { return t.flags }

// SetFlag sets f in the token's flag set.
func (t *Token) SetFlag(f Flags) { t.flags |= f }

// ClearFlag clears f from the token's flag set.
func (t *Token) ClearFlag(f Flags) { t.flags &^= f }

// HasFlag reports whether f is set.
func (t *Token) HasFlag(f Flags) bool { return t.flags.Has(f) }

// AtStartOfLine reports whether this token is the first one lexed from its
// source line.
func (t *Token) AtStartOfLine() bool { return t.HasFlag(FlagStartOfLine) }

// Char returns the decoded character of a Letter or Other token. It panics
// if the token is not one of those kinds, matching the kind/data invariant
// enforced everywhere else on Token.
func (t *Token) Char() rune {
	if t.kind != Letter && t.kind != Other {
		panic(fmt.Sprintf("token: Char() called on kind %v", t.kind))
	}
	return t.data.ch
}

// ParameterIndex returns the digit (1-9) following a Parameter token's #,
// or (0, false) if no digit followed.
func (t *Token) ParameterIndex() (uint8, bool) {
	if t.kind != Parameter {
		panic(fmt.Sprintf("token: ParameterIndex() called on kind %v", t.kind))
	}
	return t.data.paramIndex, t.data.hasParam
}

// Symbol returns the character of a ControlSymbol token, or (zero, false)
// if the escape character was the last byte of input.
func (t *Token) Symbol() (source.MaybeChar, bool) {
	if t.kind != ControlSymbol {
		panic(fmt.Sprintf("token: Symbol() called on kind %v", t.kind))
	}
	return t.data.symbol, t.data.hasSymbol
}

// CommandIdentifier returns the interned identifier of a ControlWord or
// ActiveChar token.
func (t *Token) CommandIdentifier() *ident.ID {
	if t.kind != ControlWord && t.kind != ActiveChar {
		panic(fmt.Sprintf("token: CommandIdentifier() called on kind %v", t.kind))
	}
	return t.data.commandID
}

// setData stores data on the token. It is unexported: only this package's
// lexer helpers (via the exported Set* constructors below) may populate a
// token's payload, which keeps the (kind, data variant) pairing invariant
// enforced at a single boundary.
func (t *Token) setData(d Data) {
	t.data = d
}

// SetNone clears the token's payload; valid for kinds carrying no data.
func (t *Token) SetNone() { t.setData(dataNone()) }

// SetChar attaches ch as the token's payload; t.Kind() must already be
// Letter or Other.
func (t *Token) SetChar(ch rune) { t.setData(dataChar(t.kind, ch)) }

// SetParameterIndex attaches an optional digit as the token's payload;
// t.Kind() must already be Parameter.
func (t *Token) SetParameterIndex(index uint8, has bool) {
	if t.kind != Parameter {
		panic(fmt.Sprintf("token: SetParameterIndex on kind %v", t.kind))
	}
	t.setData(dataParameterIndex(index, has))
}

// SetSymbol attaches an optional symbol character as the token's payload;
// t.Kind() must already be ControlSymbol.
func (t *Token) SetSymbol(mc source.MaybeChar, has bool) {
	if t.kind != ControlSymbol {
		panic(fmt.Sprintf("token: SetSymbol on kind %v", t.kind))
	}
	t.setData(dataSymbol(mc, has))
}

// SetCommandIdentifier attaches id as the token's payload; t.Kind() must
// already be ControlWord or ActiveChar.
func (t *Token) SetCommandIdentifier(id *ident.ID) {
	t.setData(dataCommandIdentifier(t.kind, id))
}
