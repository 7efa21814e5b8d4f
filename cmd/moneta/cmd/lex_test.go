package cmd

import "testing"

func TestFieldListAccumulates(t *testing.T) {
	var f fieldList
	if err := f.Set("kind,literal"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Set("pos"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.String() != "kind,literal,pos" {
		t.Fatalf("unexpected fields: %q", f.String())
	}
}

func TestFieldListRejectsUnknownField(t *testing.T) {
	var f fieldList
	if err := f.Set("color"); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}
