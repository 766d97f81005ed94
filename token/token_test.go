package token

import (
	"testing"

	"github.com/oarkflow/retex/ident"
	"github.com/oarkflow/retex/source"
)

func TestTokenResetDefaults(t *testing.T) {
	var tok Token
	tok.Reset()

	if tok.Kind() != Unknown {
		t.Errorf("Kind() = %v, want Unknown", tok.Kind())
	}
	if tok.Location().IsValid() {
		t.Errorf("Location() should be invalid after Reset")
	}
	if tok.Length() != 0 {
		t.Errorf("Length() = %d, want 0", tok.Length())
	}
	if tok.HasFlag(FlagStartOfLine) {
		t.Errorf("fresh token should not have FlagStartOfLine")
	}
}

func TestTokenFlags(t *testing.T) {
	var tok Token
	tok.Reset()
	tok.SetFlag(FlagStartOfLine)
	if !tok.AtStartOfLine() {
		t.Fatalf("expected AtStartOfLine after SetFlag")
	}
	tok.ClearFlag(FlagStartOfLine)
	if tok.AtStartOfLine() {
		t.Fatalf("expected not AtStartOfLine after ClearFlag")
	}
}

func TestTokenIsPredicates(t *testing.T) {
	var tok Token
	tok.Reset()
	tok.SetKind(Letter)
	if !tok.Is(Letter) {
		t.Fatalf("Is(Letter) = false")
	}
	if tok.IsNot(Letter) {
		t.Fatalf("IsNot(Letter) = true")
	}
	if !tok.IsOneOf(Other, Letter, Space) {
		t.Fatalf("IsOneOf should match Letter")
	}
	if tok.IsOneOf(Other, Space) {
		t.Fatalf("IsOneOf should not match when Letter absent")
	}
}

func TestTokenLocationLengthRange(t *testing.T) {
	var tok Token
	tok.Reset()
	tok.SetLocation(source.NewLocation(10))
	tok.SetLength(3)

	if got := tok.EndLocation().Offset(); got != 13 {
		t.Fatalf("EndLocation().Offset() = %d, want 13", got)
	}
	r := tok.Range()
	if r.Start.Offset() != 10 || r.End.Offset() != 13 {
		t.Fatalf("Range() = %+v, want [10,13)", r)
	}
}

func TestTokenEndLocationInvalidWhenLocationInvalid(t *testing.T) {
	var tok Token
	tok.Reset()
	if tok.EndLocation().IsValid() {
		t.Fatalf("EndLocation() should be invalid when Location() is invalid")
	}
}

func TestTokenCharRoundTrip(t *testing.T) {
	var tok Token
	tok.Reset()
	tok.SetKind(Letter)
	tok.SetChar('x')
	if got := tok.Char(); got != 'x' {
		t.Fatalf("Char() = %q, want 'x'", got)
	}
}

func TestTokenCharPanicsOnWrongKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic calling Char() on a non Letter/Other token")
		}
	}()
	var tok Token
	tok.Reset()
	tok.SetKind(Space)
	_ = tok.Char()
}

func TestTokenParameterIndexRoundTrip(t *testing.T) {
	var tok Token
	tok.Reset()
	tok.SetKind(Parameter)
	tok.SetParameterIndex(2, true)
	idx, has := tok.ParameterIndex()
	if !has || idx != 2 {
		t.Fatalf("ParameterIndex() = %d, %v, want 2, true", idx, has)
	}

	tok.SetParameterIndex(0, false)
	idx, has = tok.ParameterIndex()
	if has {
		t.Fatalf("ParameterIndex() has = true, want false for a bare '#'")
	}
	_ = idx
}

func TestTokenSymbolRoundTrip(t *testing.T) {
	var tok Token
	tok.Reset()
	tok.SetKind(ControlSymbol)
	tok.SetSymbol(source.CharMaybeChar('{'), true)
	mc, has := tok.Symbol()
	if !has {
		t.Fatalf("Symbol() has = false, want true")
	}
	if ch, ok := mc.Char(); !ok || ch != '{' {
		t.Fatalf("Symbol() = %v, want '{'", mc)
	}

	tok.SetSymbol(source.MaybeChar(0), false)
	_, has = tok.Symbol()
	if has {
		t.Fatalf("Symbol() has = true, want false for control sequence at EOF")
	}
}

func TestTokenCommandIdentifierRoundTrip(t *testing.T) {
	tbl := ident.NewTable()
	id := tbl.Intern([]byte("hello"))

	var tok Token
	tok.Reset()
	tok.SetKind(ControlWord)
	tok.SetCommandIdentifier(id)

	if got := tok.CommandIdentifier(); got != id {
		t.Fatalf("CommandIdentifier() returned a different handle")
	}
}

func TestKindString(t *testing.T) {
	if Letter.String() != "Letter" {
		t.Fatalf("Letter.String() = %q", Letter.String())
	}
	if Eof.String() != "Eof" {
		t.Fatalf("Eof.String() = %q", Eof.String())
	}
}
