// Package config loads a lexing session's initial configuration: category
// code overrides and include-path roots, stored as YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oarkflow/retex/catcode"
	"github.com/oarkflow/retex/lexer"
	"github.com/oarkflow/retex/source"
)

// Session holds the configuration applied to a lexer before the first token
// is read from its bottom-of-stack file.
type Session struct {
	// CategoryCodes maps a single character to the category-code name that
	// should replace its default, e.g. {"|": "active"}.
	CategoryCodes map[string]string `yaml:"categoryCodes"`
	// IncludePaths lists include-path root directories. It is only loaded:
	// neither the core lexer/preprocessor packages nor cmd/retexlex search
	// these directories, and files are opened by the literal path given to
	// EnterMainFile/LoadFile.
	IncludePaths []string `yaml:"includePaths"`
}

var catcodeNames = map[string]catcode.Code{
	"escape":       catcode.Escape,
	"begingroup":   catcode.BeginGroup,
	"endgroup":     catcode.EndGroup,
	"mathshift":    catcode.MathShift,
	"alignmenttab": catcode.AlignmentTab,
	"endofline":    catcode.EndOfLine,
	"parameter":    catcode.Parameter,
	"superscript":  catcode.Superscript,
	"subscript":    catcode.Subscript,
	"ignored":      catcode.Ignored,
	"space":        catcode.Space,
	"letter":       catcode.Letter,
	"other":        catcode.Other,
	"active":       catcode.Active,
	"comment":      catcode.Comment,
	"invalid":      catcode.Invalid,
}

// Load reads and parses a Session from the YAML file at path.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return s, nil
}

// Apply pushes the session's category-code overrides onto l. Overrides take
// effect for characters the lexer reads after this call, never
// retroactively, matching the lexer's external mutation contract.
func (s Session) Apply(l *lexer.Lexer) error {
	for ch, name := range s.CategoryCodes {
		r := []rune(ch)
		if len(r) != 1 {
			return fmt.Errorf("config: categoryCodes key %q must be exactly one character", ch)
		}
		code, ok := catcodeNames[name]
		if !ok {
			return fmt.Errorf("config: unknown category code name %q for %q", name, ch)
		}
		l.SetCategoryCode(source.CharMaybeChar(r[0]), code)
	}
	return nil
}
