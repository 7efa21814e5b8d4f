package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/moneta-lang/moneta/internal/lexer"
	"github.com/moneta-lang/moneta/internal/rates"
	"github.com/moneta-lang/moneta/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// fieldList is a comma-separated list of token fields to print, implemented
// directly against pflag's Value interface so repeated and comma-joined
// forms both accumulate. A field already in the list is not added twice.
type fieldList []string

var _ pflag.Value = (*fieldList)(nil)

func (f *fieldList) String() string { return strings.Join(*f, ",") }
func (f *fieldList) Type() string   { return "fields" }

func (f *fieldList) Set(s string) error {
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		switch field {
		case "kind", "literal", "pos":
			if !slices.Contains(*f, field) {
				*f = append(*f, field)
			}
		default:
			return fmt.Errorf("unknown token field %q (expected kind, literal or pos)", field)
		}
	}
	return nil
}

var showFields = fieldList{"kind", "literal"}

var lexCmd = &cobra.Command{
	Use:     "lex <program> [rate-table]",
	Aliases: []string{"tokens"},
	Short:   "Tokenize a moneta program",
	Long: `Tokenize (lex) a moneta program and print the resulting tokens.

The rate table is read first so currency names lex as curtype constants,
exactly as they would during a real run.

Examples:
  # Tokenize a program
  moneta lex budget.money

  # Print positions too
  moneta lex --show kind,literal,pos budget.money`,
	Args: cobra.RangeArgs(1, 2),
	RunE: lexProgram,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().Var(&showFields, "show", "token fields to print (kind, literal, pos)")
}

func lexProgram(cmd *cobra.Command, args []string) error {
	programPath := args[0]
	rateTablePath := defaultRatesPath
	if len(args) == 2 {
		rateTablePath = args[1]
	}

	// A missing rate table only means no curtype constants; lexing still
	// proceeds, matching a program that uses none.
	var names []string
	if tableText, err := os.ReadFile(rateTablePath); err == nil {
		if table, err := rates.Analyze(string(tableText)); err == nil {
			names = table.Names()
		}
	}

	programText, err := os.ReadFile(programPath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", programPath, err)
	}

	lex := lexer.New(source.New(string(programText)), lexer.WithCurrencyNames(names))
	count := 0
	for {
		tok, err := lex.NextToken()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return fmt.Errorf("lexing failed after %d token(s)", count)
		}
		printToken(tok)
		count++
		if tok.Kind == lexer.EOF {
			break
		}
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("---\nTotal tokens: %d\n", count)
	}
	return nil
}

func printToken(tok lexer.Token) {
	var parts []string
	for _, field := range showFields {
		switch field {
		case "kind":
			parts = append(parts, fmt.Sprintf("[%-12s]", tok.Kind))
		case "literal":
			parts = append(parts, fmt.Sprintf("%q", tok.Literal))
		case "pos":
			parts = append(parts, fmt.Sprintf("@%d:%d", tok.Pos.Line, tok.Pos.Column))
		}
	}
	fmt.Println(strings.Join(parts, " "))
}
