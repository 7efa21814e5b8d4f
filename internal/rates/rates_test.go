package rates

import "testing"

func TestAnalyzeBasicTable(t *testing.T) {
	tbl, err := Analyze("USD,PLN,GBP\n1.10,4.30,0.90\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tbl.Names(); len(got) != 3 || got[0] != "USD" || got[1] != "PLN" || got[2] != "GBP" {
		t.Fatalf("unexpected names: %v", got)
	}
	if r, ok := tbl.Rate("PLN"); !ok || r != 4.30 {
		t.Fatalf("expected PLN rate 4.30, got %v (%v)", r, ok)
	}
}

func TestAnalyzeMismatchedCounts(t *testing.T) {
	if _, err := Analyze("USD,PLN\n1.10\n"); err == nil {
		t.Fatal("expected error for mismatched name/rate counts")
	}
}

func TestAnalyzeIntegerRateWidened(t *testing.T) {
	tbl, err := Analyze("USD\n1\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r, _ := tbl.Rate("USD"); r != 1.0 {
		t.Fatalf("expected widened rate 1.0, got %v", r)
	}
}
