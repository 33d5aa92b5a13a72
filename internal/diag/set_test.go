package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSet_FirstMessageWinsOnDuplicateKey(t *testing.T) {
	s := NewSet(10)
	first := Diagnostic{Line: 3, Column: 5, Category: UnknownCommand, Message: "from pass one"}
	second := Diagnostic{Line: 3, Column: 5, Category: UnknownCommand, Message: "from pass two"}

	if !s.Add(first) {
		t.Fatal("first insert should succeed")
	}
	if s.Add(second) {
		t.Error("duplicate key should be rejected")
	}
	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	if items[0].Message != "from pass one" {
		t.Errorf("message = %q; the first-registered message must win", items[0].Message)
	}
}

func TestSet_CapMarksTruncated(t *testing.T) {
	s := NewSet(3)
	for i := 0; i < 5; i++ {
		s.Add(Diagnostic{Line: i, Category: UnknownCommand})
	}
	if s.Len() != 3 {
		t.Errorf("len = %d, want 3", s.Len())
	}
	if !s.Truncated() {
		t.Error("set should be marked truncated after rejecting inserts at the cap")
	}
}

func TestSet_NotTruncatedAtExactCapacity(t *testing.T) {
	s := NewSet(3)
	for i := 0; i < 3; i++ {
		s.Add(Diagnostic{Line: i, Category: UnknownCommand})
	}
	if s.Truncated() {
		t.Error("filling exactly to the cap is not truncation")
	}
}

func TestSet_ItemsSorted(t *testing.T) {
	s := NewSet(10)
	s.Add(Diagnostic{Line: 5, Column: 0, Category: MissingImport})
	s.Add(Diagnostic{Line: 1, Column: 8, Category: UnknownCommand})
	s.Add(Diagnostic{Line: 1, Column: 2, Category: CallShapeError})
	s.Add(Diagnostic{Line: 1, Column: 2, Category: DeprecatedCommand})

	want := []Key{
		{Line: 1, Column: 2, Category: DeprecatedCommand},
		{Line: 1, Column: 2, Category: CallShapeError},
		{Line: 1, Column: 8, Category: UnknownCommand},
		{Line: 5, Column: 0, Category: MissingImport},
	}
	var got []Key
	for _, d := range s.Items() {
		got = append(got, d.Key())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestCategory_String(t *testing.T) {
	if UnknownCommand.String() != "unknown-command" {
		t.Errorf("UnknownCommand = %q", UnknownCommand.String())
	}
	if Category(99).String() != "unknown" {
		t.Errorf("out-of-range category should print as unknown")
	}
}
