// Package lexer implements the TeX tokenizer: it turns a byte slice plus a
// category-code table into a stream of Tokens, one Lex call at a time.
package lexer

import (
	"unicode/utf8"

	"github.com/oarkflow/retex/catcode"
	"github.com/oarkflow/retex/ident"
	"github.com/oarkflow/retex/source"
	"github.com/oarkflow/retex/token"
)

// Lexer turns a byte slice into a stream of Tokens. A Lexer is single-use
// per input buffer; the Preprocessor creates one Lexer per file pushed onto
// its include stack.
type Lexer struct {
	input          []byte
	catcodes       *catcode.Table
	nextTokenStart int
	atStartOfLine  bool
	skipSpaces     bool
	idents         *ident.Table

	invalidByteHook func(source.MaybeChar, source.Location)
	trace           func(format string, args ...any)
}

// New returns a Lexer over input, interning command names into idents.
// Category codes start at the plain-TeX defaults; use SetCategoryCode to
// override them before lexing begins.
func New(input []byte, idents *ident.Table) *Lexer {
	return &Lexer{
		input:         input,
		catcodes:      catcode.NewTable(),
		atStartOfLine: true,
		skipSpaces:    true,
		idents:        idents,
	}
}

// SetCategoryCode overrides the category code of mc for all characters read
// after this call; it never affects a character already consumed.
func (l *Lexer) SetCategoryCode(mc source.MaybeChar, code catcode.Code) {
	l.catcodes.Set(mc, code)
}

// SetInvalidByteHook installs a callback invoked immediately before an
// Invalid-category byte is discarded. Passing nil (the default) makes
// invalid bytes silently discarded, matching the non-diagnostic lexer
// contract.
func (l *Lexer) SetInvalidByteHook(hook func(source.MaybeChar, source.Location)) {
	l.invalidByteHook = hook
}

// SetTrace installs a callback used to narrate lexer state transitions;
// intended for development use only and off (nil) by default.
func (l *Lexer) SetTrace(fn func(format string, args ...any)) {
	l.trace = fn
}

func (l *Lexer) tracef(format string, args ...any) {
	if l.trace != nil {
		l.trace(format, args...)
	}
}

func (l *Lexer) peekChar(pos int) (decodedChar, bool) {
	return decodeCharAt(l.input, pos)
}

func (l *Lexer) consumeChar(pos *int) int {
	if dc, ok := decodeCharAt(l.input, *pos); ok {
		*pos += dc.size
	}
	return *pos
}

// formToken sets kind/location/length on tok and clears its payload,
// advancing nextTokenStart to end.
func (l *Lexer) formToken(tok *token.Token, kind token.Kind, end int) {
	start := source.NewLocation(uint32(l.nextTokenStart))
	tok.SetKind(kind)
	tok.SetLocation(start)
	tok.SetLength(uint32(end - l.nextTokenStart))
	tok.SetNone()
	l.nextTokenStart = end
}

func (l *Lexer) formTokenWithChar(tok *token.Token, kind token.Kind, mc source.MaybeChar, end int) {
	start := source.NewLocation(uint32(l.nextTokenStart))
	tok.SetKind(kind)
	tok.SetLocation(start)
	tok.SetLength(uint32(end - l.nextTokenStart))
	ch, ok := mc.Char()
	if !ok {
		ch = utf8.RuneError
	}
	tok.SetChar(ch)
	l.nextTokenStart = end
}

// finishLine scans raw bytes (not by category code — this matches the
// reference TeX engine even when EOL characters have been remapped) until
// it passes a literal \r, \n, or \r\n pair, discarding everything up to and
// including it, then prepares lexer state for the next line.
func (l *Lexer) finishLine() {
	for l.nextTokenStart < len(l.input) {
		ch := l.input[l.nextTokenStart]
		l.nextTokenStart++

		if ch == '\r' {
			if l.nextTokenStart < len(l.input) && l.input[l.nextTokenStart] == '\n' {
				l.nextTokenStart++
			}
			break
		} else if ch == '\n' {
			break
		}
	}

	if l.nextTokenStart < len(l.input) {
		l.atStartOfLine = true
		l.skipSpaces = true
	}
}

// lexControlSequence reads the command name or symbol following an escape
// character.
func (l *Lexer) lexControlSequence(tok *token.Token, pos *int) {
	l.consumeChar(pos) // the escape character itself

	dc, ok := l.peekChar(*pos)
	if !ok {
		start := l.nextTokenStart
		tok.SetKind(token.ControlSymbol)
		tok.SetLocation(source.NewLocation(uint32(start)))
		tok.SetLength(uint32(*pos - start))
		tok.SetSymbol(source.MaybeChar(0), false)
		l.nextTokenStart = *pos
		return
	}

	if l.catcodes.IsLetter(dc.char) {
		l.consumeChar(pos)
		l.lexControlWordContinue(tok, pos, dc.char, dc.size, dc.transformed)
		return
	}

	l.consumeChar(pos)
	// Control symbol: a single non-letter character. A control space (an
	// escape followed by a space-category character) also switches the
	// lexer into space-skipping mode, same as after any control word.
	l.skipSpaces = l.catcodes.IsSpace(dc.char)

	start := l.nextTokenStart
	tok.SetKind(token.ControlSymbol)
	tok.SetLocation(source.NewLocation(uint32(start)))
	tok.SetLength(uint32(*pos - start))
	tok.SetSymbol(dc.char, true)
	l.nextTokenStart = *pos
}

// lexControlWordContinue reads the remaining letters of a control word
// after its first letter has already been consumed. Scanning starts as a
// zero-copy slice into the input; the instant any letter required a
// transformation (caret notation or CRLF folding) to decode, scanning
// switches to an owned buffer for the rest of the word, since the decoded
// bytes are no longer a contiguous slice of the original input.
func (l *Lexer) lexControlWordContinue(tok *token.Token, pos *int, firstCh source.MaybeChar, firstSize int, firstTransformed bool) {
	controlWordStart := *pos - firstSize

	var owned []byte
	if firstTransformed {
		owned = firstCh.EncodeUTF8(nil)
	}

	for owned == nil {
		dc, ok := l.peekChar(*pos)
		if !ok || !l.catcodes.IsLetter(dc.char) {
			break
		}
		if dc.transformed {
			owned = append(owned, l.input[controlWordStart:*pos]...)
			owned = dc.char.EncodeUTF8(owned)
		}
		l.consumeChar(pos)
	}

	if owned != nil {
		for {
			dc, ok := l.peekChar(*pos)
			if !ok || !l.catcodes.IsLetter(dc.char) {
				break
			}
			owned = dc.char.EncodeUTF8(owned)
			l.consumeChar(pos)
		}
	}

	var nameBytes []byte
	if owned != nil {
		nameBytes = owned
	} else {
		nameBytes = l.input[controlWordStart:*pos]
	}

	id := l.idents.Intern(nameBytes)
	start := l.nextTokenStart
	tok.SetKind(token.ControlWord)
	tok.SetLocation(source.NewLocation(uint32(start)))
	tok.SetLength(uint32(*pos - start))
	tok.SetCommandIdentifier(id)
	l.nextTokenStart = *pos

	l.skipSpaces = true
}

// lexParameterToken reads the optional digit following a '#'.
func (l *Lexer) lexParameterToken(tok *token.Token, pos *int) {
	l.consumeChar(pos)

	var index uint8
	var has bool
	if dc, ok := l.peekChar(*pos); ok {
		if ch, ok := dc.char.Char(); ok && ch >= '1' && ch <= '9' {
			index = uint8(ch - '0')
			has = true
			l.consumeChar(pos)
		}
	}

	start := l.nextTokenStart
	tok.SetKind(token.Parameter)
	tok.SetLocation(source.NewLocation(uint32(start)))
	tok.SetLength(uint32(*pos - start))
	tok.SetParameterIndex(index, has)
	l.nextTokenStart = *pos
}

// Lex reads the next token into tok, overwriting its previous contents.
func (l *Lexer) Lex(tok *token.Token) {
	tok.Reset()
	l.tracef("lex: start pos=%d skipSpaces=%v atStartOfLine=%v", l.nextTokenStart, l.skipSpaces, l.atStartOfLine)

	for {
		pos := l.nextTokenStart

		if l.skipSpaces {
			for {
				dc, ok := l.peekChar(pos)
				if !ok || !l.catcodes.IsSpaceOrIgnored(dc.char) {
					break
				}
				l.consumeChar(&pos)
			}
			l.skipSpaces = false
		}

		for {
			dc, ok := l.peekChar(pos)
			if !ok || !l.catcodes.IsIgnored(dc.char) {
				break
			}
			l.consumeChar(&pos)
		}

		l.nextTokenStart = pos

		if l.atStartOfLine {
			tok.SetFlag(token.FlagStartOfLine)
			l.atStartOfLine = false
		}

		pos = l.nextTokenStart
		dc, ok := l.peekChar(pos)
		if !ok {
			l.formToken(tok, token.Eof, pos)
			return
		}

		ch := dc.char
		code := l.catcodes.Get(ch)

		switch code {
		case catcode.Escape:
			l.lexControlSequence(tok, &pos)
			return

		case catcode.BeginGroup:
			l.formToken(tok, token.BeginGroup, l.consumeChar(&pos))
			return

		case catcode.EndGroup:
			l.formToken(tok, token.EndGroup, l.consumeChar(&pos))
			return

		case catcode.MathShift:
			l.formToken(tok, token.MathShift, l.consumeChar(&pos))
			return

		case catcode.AlignmentTab:
			l.formToken(tok, token.AlignmentTab, l.consumeChar(&pos))
			return

		case catcode.EndOfLine:
			kind := token.Space
			if tok.AtStartOfLine() {
				kind = token.Paragraph
			}
			l.formToken(tok, kind, l.consumeChar(&pos))

			if ch != source.CharMaybeChar('\r') && ch != source.CharMaybeChar('\n') {
				// The current character was remapped to EndOfLine by the
				// catcode table but is not literally \r or \n; finishLine
				// still scans raw bytes for the real line terminator,
				// matching the reference engine. Do not "fix" this.
				l.finishLine()
			} else {
				l.atStartOfLine = true
				l.skipSpaces = true
			}
			return

		case catcode.Parameter:
			l.lexParameterToken(tok, &pos)
			return

		case catcode.Superscript:
			l.formToken(tok, token.Superscript, l.consumeChar(&pos))
			return

		case catcode.Subscript:
			l.formToken(tok, token.Subscript, l.consumeChar(&pos))
			return

		case catcode.Ignored:
			// Unreachable: Ignored characters are skipped above, before
			// category dispatch ever sees them.
			panic("lexer: Ignored character reached dispatch")

		case catcode.Space:
			// Tentatively form a token at the first space so that, if we do
			// end up emitting one, it points at the run's first byte.
			l.formToken(tok, token.Space, l.consumeChar(&pos))

			emit := false
			for {
				next, ok := l.peekChar(pos)
				if !ok {
					break
				}
				if l.catcodes.IsSpace(next.char) {
					l.consumeChar(&pos)
					continue
				}
				emit = !l.catcodes.IsEOL(next.char)
				break
			}

			l.nextTokenStart = pos
			if !emit {
				continue
			}
			return

		case catcode.Letter:
			l.formTokenWithChar(tok, token.Letter, ch, l.consumeChar(&pos))
			return

		case catcode.Other:
			l.formTokenWithChar(tok, token.Other, ch, l.consumeChar(&pos))
			return

		case catcode.Active:
			name := ch.EncodeUTF8(nil)
			id := l.idents.Intern(name)
			end := l.consumeChar(&pos)
			start := l.nextTokenStart
			tok.SetKind(token.ActiveChar)
			tok.SetLocation(source.NewLocation(uint32(start)))
			tok.SetLength(uint32(end - start))
			tok.SetCommandIdentifier(id)
			l.nextTokenStart = end
			return

		case catcode.Comment:
			l.finishLine()
			continue

		case catcode.Invalid:
			if l.invalidByteHook != nil {
				l.invalidByteHook(ch, source.NewLocation(uint32(pos)))
			}
			l.consumeChar(&pos)
			l.nextTokenStart = pos
			continue

		default:
			panic("lexer: unknown category code")
		}
	}
}
