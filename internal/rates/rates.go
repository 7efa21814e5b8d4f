// Package rates parses a plain-text exchange-rate table (currency names on
// one line, their per-reference-unit rates on the next) by reusing the
// lexer rather than hand-splitting on commas.
package rates

import (
	"github.com/moneta-lang/moneta/internal/errors"
	"github.com/moneta-lang/moneta/internal/lexer"
	"github.com/moneta-lang/moneta/internal/source"
)

// Table is an insertion-ordered name -> rate mapping, used by the
// interpreter's currency runtime for cross-currency arithmetic.
type Table struct {
	names []string
	rates map[string]float64
}

// Names returns the currency names in the order they appeared in the table.
func (t *Table) Names() []string {
	return t.names
}

// Rate returns the units-per-reference-unit rate for name.
func (t *Table) Rate(name string) (float64, bool) {
	r, ok := t.rates[name]
	return r, ok
}

// analyser wraps a lexer over the rate-table text. Currency names are not
// known yet at this phase, so the lexer is built with an empty set and the
// names read here come out as plain identifiers.
type analyser struct {
	lex *lexer.Lexer
	cur lexer.Token
}

func newAnalyser(input string) (*analyser, error) {
	a := &analyser{lex: lexer.New(source.New(input))}
	if err := a.advance(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *analyser) advance() error {
	for {
		tok, err := a.lex.NextToken()
		if err != nil {
			return err
		}
		if tok.Kind == lexer.COMMENT {
			continue
		}
		a.cur = tok
		return nil
	}
}

// currencyTypes reads identifier, identifier, ... (each pair separated by a
// comma) until a non-identifier token is reached, returning the names in
// order.
func (a *analyser) currencyTypes() ([]string, error) {
	var names []string
	for a.cur.Kind == lexer.IDENT {
		names = append(names, a.cur.Literal)
		if err := a.advance(); err != nil {
			return nil, err
		}
		if a.cur.Kind != lexer.COMMA {
			break
		}
		if err := a.advance(); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// exchangeRates reads a comma-separated sequence of floats (integers are
// widened), each expected to be followed by a comma except optionally the
// last.
func (a *analyser) exchangeRates() ([]float64, error) {
	var values []float64
	for a.cur.Kind == lexer.FLOAT || a.cur.Kind == lexer.INT {
		values = append(values, numericValue(a.cur))
		if err := a.advance(); err != nil {
			return nil, err
		}
		if a.cur.Kind != lexer.COMMA {
			break
		}
		if err := a.advance(); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func numericValue(tok lexer.Token) float64 {
	if tok.Kind == lexer.INT {
		return float64(tok.IntVal)
	}
	return tok.FltVal
}

// Analyze parses input into a Table. Rates and types must have equal
// counts; otherwise Analyze fails.
func Analyze(input string) (*Table, error) {
	a, err := newAnalyser(input)
	if err != nil {
		return nil, err
	}

	names, err := a.currencyTypes()
	if err != nil {
		return nil, err
	}

	values, err := a.exchangeRates()
	if err != nil {
		return nil, err
	}

	if len(names) != len(values) {
		return nil, errors.New(errors.Semantic, source.Position{Line: 1, Column: 1},
			"exchange-rate table has %d currency name(s) but %d rate(s)", len(names), len(values))
	}

	t := &Table{names: names, rates: make(map[string]float64, len(names))}
	for i, name := range names {
		t.rates[name] = values[i]
	}
	return t, nil
}
