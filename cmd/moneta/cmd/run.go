package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/moneta-lang/moneta/internal/errors"
	"github.com/moneta-lang/moneta/internal/interp"
	"github.com/moneta-lang/moneta/internal/lexer"
	"github.com/moneta-lang/moneta/internal/parser"
	"github.com/moneta-lang/moneta/internal/rates"
	"github.com/moneta-lang/moneta/internal/source"
	"github.com/spf13/cobra"
)

// defaultRatesPath is consulted when no rate-table argument or flag is given.
const defaultRatesPath = "eurofxref.csv"

var (
	ratesPath string
	pretty    bool
)

var runCmd = &cobra.Command{
	Use:   "run <program> [rate-table]",
	Short: "Run a moneta program",
	Long: `Execute a moneta program against an exchange-rate table.

Examples:
  # Run a program with the default rate table (eurofxref.csv)
  moneta run budget.money

  # Run with an explicit rate table
  moneta run budget.money rates.csv

  # Render errors with a source-line caret
  moneta run --pretty budget.money`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&ratesPath, "rates", "", "path to the exchange-rate table (overrides the positional argument)")
	runCmd.Flags().BoolVar(&pretty, "pretty", false, "render errors with a source-line caret view")
	rootCmd.Flags().StringVar(&ratesPath, "rates", "", "path to the exchange-rate table (overrides the positional argument)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "render errors with a source-line caret view")
}

func runProgram(cmd *cobra.Command, args []string) error {
	programPath := args[0]
	rateTablePath := resolveRatesPath(args)

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "Program: %s\nRate table: %s\n", programPath, rateTablePath)
	}

	return executeProgram(programPath, rateTablePath, os.Stdout, os.Stdin)
}

// resolveRatesPath picks the rate-table path: the --rates flag wins, then
// the optional second positional argument, then the default.
func resolveRatesPath(args []string) string {
	if ratesPath != "" {
		return ratesPath
	}
	if len(args) == 2 {
		return args[1]
	}
	return defaultRatesPath
}

// executeProgram wires the whole pipeline: rate-table analysis, a program
// lexer parameterised with the discovered currency names, the parser, and
// the tree-walking interpreter. Any pipeline error is rendered to stderr in
// its one-line "<Kind>: Ln <l> Col <c> : <message>" form, or with a
// source-line caret view under --pretty.
func executeProgram(programPath, rateTablePath string, out io.Writer, in io.Reader) error {
	tableText, err := os.ReadFile(rateTablePath)
	if err != nil {
		return fmt.Errorf("failed to read rate table %s: %w", rateTablePath, err)
	}
	table, err := rates.Analyze(string(tableText))
	if err != nil {
		reportError(err, string(tableText))
		return fmt.Errorf("rate-table analysis failed")
	}

	programText, err := os.ReadFile(programPath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", programPath, err)
	}

	lex := lexer.New(source.New(string(programText)), lexer.WithCurrencyNames(table.Names()))
	p, err := parser.New(lex)
	if err != nil {
		reportError(err, string(programText))
		return fmt.Errorf("parsing failed")
	}
	program, err := p.ParseProgram()
	if err != nil {
		reportError(err, string(programText))
		return fmt.Errorf("parsing failed")
	}

	if err := interp.New(table, out, in).Run(program); err != nil {
		reportError(err, string(programText))
		return fmt.Errorf("execution failed")
	}
	return nil
}

func reportError(err error, src string) {
	if se, ok := err.(*errors.SourceError); ok && pretty {
		fmt.Fprintln(os.Stderr, se.Format(true, src))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
