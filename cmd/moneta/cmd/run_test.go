package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestResolveRatesPathDefault(t *testing.T) {
	ratesPath = ""
	if got := resolveRatesPath([]string{"prog.money"}); got != defaultRatesPath {
		t.Fatalf("expected default %q, got %q", defaultRatesPath, got)
	}
}

func TestResolveRatesPathPositional(t *testing.T) {
	ratesPath = ""
	if got := resolveRatesPath([]string{"prog.money", "table.csv"}); got != "table.csv" {
		t.Fatalf("expected positional path, got %q", got)
	}
}

func TestResolveRatesPathFlagWins(t *testing.T) {
	ratesPath = "flagged.csv"
	defer func() { ratesPath = "" }()
	if got := resolveRatesPath([]string{"prog.money", "table.csv"}); got != "flagged.csv" {
		t.Fatalf("expected the flag to win, got %q", got)
	}
}

func TestExecuteProgramEndToEnd(t *testing.T) {
	var out bytes.Buffer
	err := executeProgram(
		"../../../testdata/programs/hello.money",
		"../../../testdata/eurofxref.csv",
		&out, strings.NewReader(""),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "hi\n" {
		t.Fatalf("expected %q, got %q", "hi\n", out.String())
	}
}

func TestExecuteProgramMissingFile(t *testing.T) {
	var out bytes.Buffer
	err := executeProgram("no-such-file.money", "../../../testdata/eurofxref.csv", &out, strings.NewReader(""))
	if err == nil {
		t.Fatal("expected an error for a missing program file")
	}
}
