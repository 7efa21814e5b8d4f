package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "moneta <program> [rate-table]",
	Short: "Interpreter for the moneta currency language",
	Long: `moneta is an interpreter for a small statically-typed language with a
first-class currency type.

Currency values carry an amount and a currency tag; arithmetic and
comparisons across tags go through an exchange-rate table, and a dedicated
transfer statement moves amounts between accounts:

  void main() {
      cur a = 100 USD;
      cur b = 0 PLN;
      from a -> 30 USD -> b;
      print(b);
  }

The rate table (default: eurofxref.csv) lists currency names and their
units-per-reference-unit rates.`,
	Version:       Version,
	Args:          cobra.RangeArgs(1, 2),
	RunE:          runProgram,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
