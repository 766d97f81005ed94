// Package retex is a lexical front end for TeX-family typesetting sources.
//
// Design goals:
//   - Faithful category-code/token model (16 category codes, control words
//     vs control symbols, caret-notation decoding, \r\n folding)
//   - Clang-style SourceManager: a single flat 32-bit offset space spanning
//     every loaded file, with O(log n) offset-to-file lookup
//   - Arena-interned command identifiers, comparable by pointer identity
//   - An include-stack Preprocessor shell chaining Lexers across file
//     boundaries
//
// Usage:
//
//	mgr := retex.NewManager()
//	pp := retex.NewPreprocessor(mgr)
//	if err := pp.EnterMainFile("doc.tex"); err != nil { ... }
//	var tok retex.Token
//	for pp.Lex(&tok) {
//		if tok.Kind() == retex.Eof {
//			break
//		}
//	}
package retex

import (
	"github.com/oarkflow/retex/catcode"
	"github.com/oarkflow/retex/diag"
	"github.com/oarkflow/retex/ident"
	"github.com/oarkflow/retex/lexer"
	"github.com/oarkflow/retex/preprocessor"
	"github.com/oarkflow/retex/source"
	"github.com/oarkflow/retex/token"
)

// Re-export core types so callers only import this package.
type (
	Manager      = source.Manager
	FileID       = source.FileID
	Buffer       = source.Buffer
	Location     = source.Location
	Range        = source.Range
	MaybeChar    = source.MaybeChar
	LoadError    = source.LoadError
	CategoryCode = catcode.Code
	CategoryTable = catcode.Table
	IdentTable   = ident.Table
	IdentID      = ident.ID
	Lexer        = lexer.Lexer
	Preprocessor = preprocessor.Preprocessor
	Token        = token.Token
	TokenKind    = token.Kind
	TokenFlags   = token.Flags
	DiagSink     = diag.Sink
)

// Token kinds, re-exported for callers that only import this package.
const (
	Eof           = token.Eof
	Unknown       = token.Unknown
	ControlWord   = token.ControlWord
	ControlSymbol = token.ControlSymbol
	BeginGroup    = token.BeginGroup
	EndGroup      = token.EndGroup
	MathShift     = token.MathShift
	AlignmentTab  = token.AlignmentTab
	Parameter     = token.Parameter
	Superscript   = token.Superscript
	Subscript     = token.Subscript
	Space         = token.Space
	Letter        = token.Letter
	Other         = token.Other
	ActiveChar    = token.ActiveChar
	Paragraph     = token.Paragraph
)

// Category codes, re-exported for callers that only import this package.
const (
	Escape       = catcode.Escape
	CatBeginGroup = catcode.BeginGroup
	CatEndGroup   = catcode.EndGroup
	CatMathShift  = catcode.MathShift
	CatAlignmentTab = catcode.AlignmentTab
	EndOfLine    = catcode.EndOfLine
	CatParameter = catcode.Parameter
	CatSuperscript = catcode.Superscript
	CatSubscript = catcode.Subscript
	Ignored      = catcode.Ignored
	CatSpace     = catcode.Space
	CatLetter    = catcode.Letter
	CatOther     = catcode.Other
	Active       = catcode.Active
	Comment      = catcode.Comment
	Invalid      = catcode.Invalid
)

// NewManager returns an empty source.Manager.
func NewManager() *Manager {
	return source.NewManager()
}

// NewCategoryTable returns a category code table pre-populated with the
// plain-TeX defaults.
func NewCategoryTable() *CategoryTable {
	return catcode.NewTable()
}

// NewIdentTable returns an empty command identifier table.
func NewIdentTable() *IdentTable {
	return ident.NewTable()
}

// NewLexer returns a Lexer reading input, interning command names into
// idents. Most callers should go through NewPreprocessor instead, which
// manages the Lexer/Manager/IdentTable wiring across \input boundaries.
func NewLexer(input []byte, idents *IdentTable) *Lexer {
	return lexer.New(input, idents)
}

// NewPreprocessor returns a Preprocessor reading files through mgr.
func NewPreprocessor(mgr *Manager) *Preprocessor {
	return preprocessor.New(mgr)
}

// NewDiagSink returns a diagnostic sink rendering positions against mgr.
func NewDiagSink(mgr *Manager, out diagWriter) *DiagSink {
	return diag.NewSink(mgr, out)
}

// diagWriter mirrors io.Writer without importing "io" into this facade's
// exported surface.
type diagWriter interface {
	Write(p []byte) (n int, err error)
}
