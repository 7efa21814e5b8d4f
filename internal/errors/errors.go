// Package errors formats moneta's three error kinds (lexical, syntactic,
// semantic) the way a compiler frontend reports diagnostics: one message,
// carrying a source position, rendered as a single line for the CLI.
package errors

import (
	"fmt"
	"strings"

	"github.com/moneta-lang/moneta/internal/source"
)

// Kind distinguishes the phase that raised an error.
type Kind int

const (
	Lexical Kind = iota
	Syntactic
	Semantic
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "Lexical"
	case Syntactic:
		return "Syntactic"
	case Semantic:
		return "Semantic"
	default:
		return "Error"
	}
}

// SourceError is a single diagnostic produced anywhere in the pipeline.
type SourceError struct {
	Kind    Kind
	Pos     source.Position
	Message string
}

func New(kind Kind, pos source.Position, format string, args ...any) *SourceError {
	return &SourceError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface with the one-line form
// "<Kind>: Ln <l> Col <c> : <message>".
func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: Ln %d Col %d : %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
}

// Format renders the error, optionally with a source-line-and-caret view
// for terminal output. The plain one-line form (color=false, src="") is
// what callers use by default.
func (e *SourceError) Format(color bool, src string) string {
	if src == "" {
		return e.Error()
	}

	var sb strings.Builder
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	lines := strings.Split(src, "\n")
	if e.Pos.Line >= 1 && e.Pos.Line <= len(lines) {
		line := lines[e.Pos.Line-1]
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(e.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
