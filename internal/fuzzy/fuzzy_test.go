package fuzzy

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"polySphere", "polySphere", 1},
		{"polySpere", "polySphere", 0.9}, // one deletion over 10 runes
		{"", "", 1},
		{"abc", "xyz", 0},
	}
	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSuggest_TypoOnKnownCommand(t *testing.T) {
	m := Default()
	candidates := []string{"polySphere", "polyCube", "polyCylinder"}

	got, ok := m.Suggest("polySpere", candidates)
	if !ok {
		t.Fatal("expected a suggestion for polySpere")
	}
	if got.Name != "polySphere" {
		t.Errorf("suggested %q, want polySphere", got.Name)
	}
	if got.Score < DefaultFloor {
		t.Errorf("score %v below floor", got.Score)
	}
}

func TestSuggest_ShortTokenNeverSuggests(t *testing.T) {
	m := Default()
	// "lx" is one edit from "ls", but trivial identifiers must not
	// produce suggestions.
	if _, ok := m.Suggest("lx", []string{"ls", "lsUI"}); ok {
		t.Error("expected no suggestion for a 2-rune token")
	}
}

func TestSuggest_FloorBoundary(t *testing.T) {
	m := Default()

	// One edit over 10 runes scores exactly 0.90: at the floor, accepted.
	if _, ok := m.Suggest("polySpher1", []string{"polySphere"}); !ok {
		t.Error("score exactly at the floor should be accepted")
	}

	// One edit over 9 runes scores 0.888...: just below, rejected.
	if _, ok := m.Suggest("polyCubes", []string{"polyCube"}); ok {
		t.Error("score just below the floor should be rejected")
	}
}

func TestSuggest_TieBreaking(t *testing.T) {
	m := New(0.5, 3)

	// Both candidates are one edit away; the one closer in length wins.
	got, ok := m.Suggest("jointt", []string{"joints", "joint"})
	if !ok {
		t.Fatal("expected a suggestion")
	}
	if got.Name != "joints" {
		t.Errorf("equal-score tie should prefer closest length, got %q", got.Name)
	}

	// Same score, same length: lexicographic order decides.
	got, ok = m.Suggest("renderx", []string{"renderb", "rendera"})
	if !ok {
		t.Fatal("expected a suggestion")
	}
	if got.Name != "rendera" {
		t.Errorf("full tie should prefer lexicographic order, got %q", got.Name)
	}
}

func TestSuggest_NoCandidates(t *testing.T) {
	m := Default()
	if _, ok := m.Suggest("polySpere", nil); ok {
		t.Error("no candidates should yield no suggestion")
	}
}
