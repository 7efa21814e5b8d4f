package errors

import (
	"strings"
	"testing"

	"github.com/moneta-lang/moneta/internal/source"
)

func TestOneLineForm(t *testing.T) {
	e := New(Semantic, source.Position{Line: 3, Column: 7}, "type mismatch: %s vs %s", "int", "str")
	want := "Semantic: Ln 3 Col 7 : type mismatch: int vs str"
	if e.Error() != want {
		t.Fatalf("expected %q, got %q", want, e.Error())
	}
}

func TestKindNames(t *testing.T) {
	cases := map[Kind]string{Lexical: "Lexical", Syntactic: "Syntactic", Semantic: "Semantic"}
	for kind, want := range cases {
		if kind.String() != want {
			t.Fatalf("expected %q, got %q", want, kind.String())
		}
	}
}

func TestFormatWithoutSourceIsOneLine(t *testing.T) {
	e := New(Lexical, source.Position{Line: 1, Column: 1}, "cannot match any token")
	if got := e.Format(false, ""); got != e.Error() {
		t.Fatalf("expected the plain one-line form, got %q", got)
	}
}

func TestFormatWithSourceAddsCaret(t *testing.T) {
	e := New(Syntactic, source.Position{Line: 2, Column: 5}, "expected ;")
	got := e.Format(false, "void main() {\n    int x = 1\n}")
	if !strings.Contains(got, "int x = 1") {
		t.Fatalf("expected the offending source line, got %q", got)
	}
	if !strings.Contains(got, "^") {
		t.Fatalf("expected a caret marker, got %q", got)
	}
}
