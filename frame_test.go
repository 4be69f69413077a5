package fringe

import (
	"strings"
	"testing"
)

func TestFrameWriteCSV(t *testing.T) {
	f := &Frame{Columns: []string{"id", "symb", "eval"}}
	f.Append("1", "a", "0")
	f.Append("1", "b", "0")
	f.Append("2", "a", "1")

	var b strings.Builder
	if err := f.WriteCSV(&b); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "id,symb,eval\n1,a,0\n1,b,0\n2,a,1\n"
	if b.String() != want {
		t.Errorf("WriteCSV = %q, want %q", b.String(), want)
	}
}

func TestFrameWriteCSV_Quoting(t *testing.T) {
	f := &Frame{Columns: []string{"id", "symb"}}
	f.Append("1", "a,b")

	var b strings.Builder
	if err := f.WriteCSV(&b); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "id,symb\n1,\"a,b\"\n"
	if b.String() != want {
		t.Errorf("WriteCSV = %q, want %q", b.String(), want)
	}
}

func TestFrameWriteCSV_Ragged(t *testing.T) {
	f := &Frame{Columns: []string{"id", "symb"}}
	f.Append("1", "a")
	f.Append("2")

	var b strings.Builder
	err := f.WriteCSV(&b)
	if err == nil {
		t.Fatal("expected error for ragged record")
	}
	if got := err.Error(); !strings.Contains(got, "record 1 has 1 fields, want 2") {
		t.Errorf("error = %q, want the ragged record named", got)
	}
}

func TestFrameWriteCSV_NoRecords(t *testing.T) {
	f := &Frame{Columns: []string{"id", "symb"}}

	var b strings.Builder
	if err := f.WriteCSV(&b); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if b.String() != "id,symb\n" {
		t.Errorf("WriteCSV = %q, want header only", b.String())
	}
}
