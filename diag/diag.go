// Package diag renders source positions and snippets for diagnostics. This
// sits outside the lexer/preprocessor core: the lexer exposes an optional
// hook for invalid bytes (see lexer.Lexer.SetInvalidByteHook) and otherwise
// emits no diagnostics of its own, matching the rendering-is-out-of-scope
// boundary of the core lexical front end.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/oarkflow/retex/source"
)

// Sink collects and renders positioned diagnostic messages against a
// source.Manager.
type Sink struct {
	manager *source.Manager
	out     io.Writer
}

// NewSink returns a Sink writing rendered diagnostics to out.
func NewSink(manager *source.Manager, out io.Writer) *Sink {
	return &Sink{manager: manager, out: out}
}

// ReportAt writes a positioned diagnostic: the file/line/column of loc,
// followed by the formatted message and a caret-pointer snippet of the
// offending line.
func (s *Sink) ReportAt(loc source.Location, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	entry, _, ok := s.manager.FileFor(loc)
	if !ok {
		fmt.Fprintf(s.out, "<unknown location>: %s\n", msg)
		return
	}

	localOffset, _ := entry.LocationToOffset(loc)
	line, col, lineText := lineAndColumn(entry.Buffer.Data(), int(localOffset))

	fmt.Fprintf(s.out, "%s:%d:%d: %s\n", entry.Path, line, col, msg)
	fmt.Fprintf(s.out, "  %s\n", lineText)
	fmt.Fprintf(s.out, "  %s^\n", strings.Repeat(" ", caretColumn(lineText, col)))
}

// lineAndColumn finds the 1-based line and column of offset within data,
// along with the full text of that line (without its terminator).
func lineAndColumn(data []byte, offset int) (line, col int, lineText string) {
	line = 1
	lineStart := 0
	for i := 0; i < offset && i < len(data); i++ {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	lineEnd := len(data)
	for i := lineStart; i < len(data); i++ {
		if data[i] == '\n' {
			lineEnd = i
			break
		}
	}
	lineText = string(data[lineStart:lineEnd])

	// Column counts grapheme clusters, not bytes, so a caret under a
	// multi-byte or combining character still lands under the right glyph.
	col = 1
	gr := uniseg.NewGraphemes(string(data[lineStart:minInt(offset, lineEnd)]))
	for gr.Next() {
		col++
	}
	return line, col, lineText
}

// caretColumn returns how many rendered columns precede column col in
// lineText, accounting for wide/combining grapheme clusters the same way
// lineAndColumn does.
func caretColumn(lineText string, col int) int {
	width := 0
	gr := uniseg.NewGraphemes(lineText)
	count := 1
	for gr.Next() {
		if count >= col {
			break
		}
		width += gr.Width()
		count++
	}
	return width
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
