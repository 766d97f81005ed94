package preprocessor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/retex/source"
	"github.com/oarkflow/retex/token"
)

func writeTemp(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestEnterMainFileLexesThatFile(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.tex", "ab")

	mgr := source.NewManager()
	pp := New(mgr)
	require.NoError(t, pp.EnterMainFile(main))

	var tok token.Token
	require.True(t, pp.Lex(&tok))
	assert.Equal(t, token.Letter, tok.Kind())
	assert.Equal(t, byte('a'), byte(tok.Char()))

	require.True(t, pp.Lex(&tok))
	assert.Equal(t, token.Letter, tok.Kind())
	assert.Equal(t, byte('b'), byte(tok.Char()))

	require.True(t, pp.Lex(&tok))
	assert.Equal(t, token.Eof, tok.Kind())
}

func TestIncludeStackPopsOnEOF(t *testing.T) {
	dir := t.TempDir()
	inner := writeTemp(t, dir, "inner.tex", "xy")
	main := writeTemp(t, dir, "main.tex", "a")

	mgr := source.NewManager()
	pp := New(mgr)
	require.NoError(t, pp.EnterMainFile(main))

	innerID, err := mgr.LoadFile(inner)
	require.NoError(t, err)
	pp.EnterFile(innerID)
	assert.Equal(t, 2, pp.IncludeDepth())

	var tok token.Token

	// The included file's tokens come first: 'x', 'y', then that file's
	// Eof pops the stack and retries into the outer file's 'a', instead of
	// surfacing Eof to the caller.
	require.True(t, pp.Lex(&tok))
	assert.Equal(t, token.Letter, tok.Kind())
	assert.Equal(t, byte('x'), byte(tok.Char()))

	require.True(t, pp.Lex(&tok))
	assert.Equal(t, byte('y'), byte(tok.Char()))

	require.True(t, pp.Lex(&tok))
	assert.Equal(t, token.Letter, tok.Kind(), "inner file's Eof should be swallowed by the pop-and-retry policy")
	assert.Equal(t, byte('a'), byte(tok.Char()))
	assert.Equal(t, 1, pp.IncludeDepth(), "popping the inner file should leave only the bottom file active")

	require.True(t, pp.Lex(&tok))
	assert.Equal(t, token.Eof, tok.Kind(), "Eof only surfaces once the include stack is down to the bottom file")
}

func TestLexWithNoActiveFileReturnsFalse(t *testing.T) {
	mgr := source.NewManager()
	pp := New(mgr)

	var tok token.Token
	assert.False(t, pp.Lex(&tok), "Lex before EnterMainFile/EnterFile should report no active lexer")
}

func TestSharedIdentifierTableAcrossIncludes(t *testing.T) {
	dir := t.TempDir()
	inner := writeTemp(t, dir, "inner.tex", `\foo`)
	main := writeTemp(t, dir, "main.tex", `\foo`)

	mgr := source.NewManager()
	pp := New(mgr)
	require.NoError(t, pp.EnterMainFile(main))

	var outerTok token.Token
	require.True(t, pp.Lex(&outerTok))
	require.Equal(t, token.ControlWord, outerTok.Kind())
	outerID := outerTok.CommandIdentifier()

	innerID, err := mgr.LoadFile(inner)
	require.NoError(t, err)
	pp.EnterFile(innerID)

	var innerTok token.Token
	require.True(t, pp.Lex(&innerTok))
	require.Equal(t, token.ControlWord, innerTok.Kind())

	assert.Same(t, outerID, innerTok.CommandIdentifier(), "\\foo in two different files must intern to the same handle")
}
