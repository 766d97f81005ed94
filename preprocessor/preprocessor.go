// Package preprocessor implements the include-stack shell around Lexer: it
// owns the shared command-identifier table and source manager, and chains
// lexers across \input-style file boundaries.
package preprocessor

import (
	"github.com/oarkflow/retex/ident"
	"github.com/oarkflow/retex/lexer"
	"github.com/oarkflow/retex/source"
	"github.com/oarkflow/retex/token"
)

// includeStackEntry is one active file in the include stack.
type includeStackEntry struct {
	lexer  *lexer.Lexer
	fileID source.FileID
}

// Preprocessor manages file inclusion on top of Lexer, following Clang's
// Preprocessor::EnterMainSourceFile approach. Unlike the original
// implementation this is based on, it needs no unsafe self-referential
// pointer trick: each Lexer here holds an ordinary Go reference to its
// buffer's bytes, and the include stack holds ordinary *Lexer pointers —
// Go's garbage collector keeps both alive for as long as anything
// references them, which is exactly the "stable-address storage" a
// borrow-checked language has to construct by hand.
type Preprocessor struct {
	manager      *source.Manager
	includeStack []includeStackEntry
	idents       *ident.Table
}

// New returns a Preprocessor reading files through manager.
func New(manager *source.Manager) *Preprocessor {
	return &Preprocessor{
		manager: manager,
		idents:  ident.NewTable(),
	}
}

// Identifiers returns the command identifier table shared by every lexer
// this preprocessor has pushed onto its include stack.
func (p *Preprocessor) Identifiers() *ident.Table {
	return p.idents
}

// EnterMainFile loads path as the bottom of the include stack. This is the
// entry point for starting lexing of a top-level document.
func (p *Preprocessor) EnterMainFile(path string) error {
	fileID, err := p.manager.LoadFile(path)
	if err != nil {
		return err
	}
	p.EnterFile(fileID)
	return nil
}

// EnterFile pushes a new Lexer for fileID onto the include stack, making it
// the active lexer. Does nothing if fileID is not a file the Manager knows
// about.
func (p *Preprocessor) EnterFile(fileID source.FileID) {
	entry, ok := p.manager.GetFile(fileID)
	if !ok {
		return
	}

	l := lexer.New(entry.Buffer.Data(), p.idents)
	p.includeStack = append(p.includeStack, includeStackEntry{lexer: l, fileID: fileID})
}

func (p *Preprocessor) currentLexer() *lexer.Lexer {
	if len(p.includeStack) == 0 {
		return nil
	}
	return p.includeStack[len(p.includeStack)-1].lexer
}

// ActiveLexer returns the lexer on top of the include stack, or nil if no
// file is active. Exposed so a driver can apply one-time configuration
// (category code overrides via config.Session.Apply, a trace hook, an
// invalid-byte hook) to the current file before its first token is read.
func (p *Preprocessor) ActiveLexer() *lexer.Lexer {
	return p.currentLexer()
}

// Lex reads the next token into tok from the top of the include stack. When
// the active lexer reaches Eof and it is not the bottom of the stack, that
// file is popped and lexing retries from the newly-exposed lexer — Eof is
// only returned to the caller from the bottom file, which is never popped,
// so later calls keep returning Eof. Reports false only when there is no
// active lexer at all (EnterMainFile/EnterFile was never called
// successfully).
func (p *Preprocessor) Lex(tok *token.Token) bool {
	for {
		active := p.currentLexer()
		if active == nil {
			return false
		}

		active.Lex(tok)

		if tok.Kind() != token.Eof {
			return true
		}

		if len(p.includeStack) == 1 {
			// Bottom of the stack: surface this Eof to the caller.
			return true
		}

		p.includeStack = p.includeStack[:len(p.includeStack)-1]
	}
}

// IncludeDepth returns the number of files currently active on the include
// stack. It never drops below 1 once EnterMainFile has succeeded: the
// bottom file stays active (repeatedly yielding Eof) rather than being
// popped, so callers can keep asking for tokens after the document ends.
func (p *Preprocessor) IncludeDepth() int {
	return len(p.includeStack)
}
