// Command retexlex drives the lexical front end over one or more files or
// globs, printing the resulting token stream. It exists to exercise
// Preprocessor/Lexer end to end the way a real TeX engine's front end
// would be invoked from a shell.
package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oarkflow/retex/config"
	"github.com/oarkflow/retex/preprocessor"
	"github.com/oarkflow/retex/source"
	"github.com/oarkflow/retex/token"
)

var (
	configPath string
	showFlags  bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "retexlex [files or globs...]",
		Short: "Lex TeX-family source files and print the resulting tokens",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}
	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "path to a YAML session config (category code overrides, include paths)")
	flags.BoolVar(&showFlags, "show-flags", false, "annotate tokens with their START_OF_LINE flag")
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(name)
	})

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	paths, err := expandArgs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("retexlex: no input files matched")
	}

	var session config.Session
	if configPath != "" {
		session, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, path := range paths {
		if err := lexOne(out, path, session); err != nil {
			return fmt.Errorf("retexlex: %s: %w", path, err)
		}
	}
	return nil
}

// expandArgs resolves each CLI argument as a doublestar glob against the
// working directory, returning the union of matched files in stable order.
func expandArgs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("retexlex: bad glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			// Not a glob pattern, or a glob with no matches: fall back to the
			// literal path so a plain filename still works.
			matches = []string{arg}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func lexOne(out outWriter, path string, session config.Session) error {
	mgr := source.NewManager()
	pp := preprocessor.New(mgr)
	if err := pp.EnterMainFile(path); err != nil {
		return err
	}
	if l := pp.ActiveLexer(); l != nil {
		if err := session.Apply(l); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "=== %s ===\n", path)

	var tok token.Token
	for {
		if !pp.Lex(&tok) {
			break
		}
		printToken(out, tok)
		if tok.Kind() == token.Eof {
			break
		}
	}
	return nil
}

func printToken(out outWriter, tok token.Token) {
	flag := ""
	if showFlags && tok.AtStartOfLine() {
		flag = " [start-of-line]"
	}
	switch tok.Kind() {
	case token.ControlWord, token.ActiveChar:
		fmt.Fprintf(out, "%-14s %s%s\n", tok.Kind(), tok.CommandIdentifier(), flag)
	case token.ControlSymbol:
		sym, has := tok.Symbol()
		if has {
			fmt.Fprintf(out, "%-14s %s%s\n", tok.Kind(), sym, flag)
		} else {
			fmt.Fprintf(out, "%-14s (eof)%s\n", tok.Kind(), flag)
		}
	case token.Letter, token.Other:
		fmt.Fprintf(out, "%-14s %q%s\n", tok.Kind(), tok.Char(), flag)
	case token.Parameter:
		if index, has := tok.ParameterIndex(); has {
			fmt.Fprintf(out, "%-14s #%d%s\n", tok.Kind(), index, flag)
		} else {
			fmt.Fprintf(out, "%-14s (no digit)%s\n", tok.Kind(), flag)
		}
	default:
		fmt.Fprintf(out, "%-14s%s\n", tok.Kind(), flag)
	}
}

// outWriter is the minimal surface main uses from cobra's OutOrStdout, kept
// narrow so lexOne/printToken stay test-friendly without importing cobra.
type outWriter interface {
	Write(p []byte) (n int, err error)
}
