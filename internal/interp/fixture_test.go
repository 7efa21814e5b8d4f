package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/moneta-lang/moneta/internal/lexer"
	"github.com/moneta-lang/moneta/internal/parser"
	"github.com/moneta-lang/moneta/internal/rates"
	"github.com/moneta-lang/moneta/internal/source"
)

// TestProgramFixtures executes every program under testdata/programs against
// the repository's rate table. A sibling .out file pins the expected stdout;
// programs without one are snapshot-tested with go-snaps.
func TestProgramFixtures(t *testing.T) {
	tableText, err := os.ReadFile("../../testdata/eurofxref.csv")
	if err != nil {
		t.Fatalf("failed to read rate table: %v", err)
	}
	table, err := rates.Analyze(string(tableText))
	if err != nil {
		t.Fatalf("failed to analyze rate table: %v", err)
	}

	files, err := filepath.Glob("../../testdata/programs/*.money")
	if err != nil {
		t.Fatalf("failed to glob fixtures: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no fixture programs found")
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".money")
		t.Run(name, func(t *testing.T) {
			text, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("failed to read %s: %v", file, err)
			}

			lex := lexer.New(source.New(string(text)), lexer.WithCurrencyNames(table.Names()))
			p, err := parser.New(lex)
			if err != nil {
				t.Fatalf("lexer error in %s: %v", name, err)
			}
			program, err := p.ParseProgram()
			if err != nil {
				t.Fatalf("parse error in %s: %v", name, err)
			}

			var out bytes.Buffer
			if err := New(table, &out, strings.NewReader("")).Run(program); err != nil {
				t.Fatalf("runtime error in %s: %v", name, err)
			}

			outFile := strings.TrimSuffix(file, ".money") + ".out"
			if expected, err := os.ReadFile(outFile); err == nil {
				if out.String() != string(expected) {
					t.Errorf("output mismatch for %s:\nExpected:\n%s\nActual:\n%s",
						name, expected, out.String())
				}
				return
			}
			snaps.MatchSnapshot(t, out.String())
		})
	}
}
