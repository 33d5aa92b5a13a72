// Package patch relocates and applies externally proposed fix fragments in
// a live document whose line numbering may have drifted since the fragment
// was produced.
//
// The applier runs a two-mode state machine. The first fix applied in a
// session may trust the proposer's line hint; every later fix searches the
// whole document by content, because each accepted fix can change the line
// count and leave every subsequent hint off by an unknown offset.
package patch

import (
	"errors"
	"strings"
	"sync"

	"mayalint/internal/document"
)

// ErrNoCandidate is returned when no line qualifies as the fix's target.
// The caller must not apply the fix; the document is left unmodified.
var ErrNoCandidate = errors.New("patch: no line in the document matches the proposed fix")

// ErrEmptyOldText is returned for proposals with nothing to locate.
var ErrEmptyOldText = errors.New("patch: proposal has empty oldText")

// Proposal is a fix fragment from the suggestion engine. OldText is the
// fragment the proposer believes currently exists in the document; once a
// fix has already been applied, HintLine is no longer trusted.
type Proposal struct {
	HintLine *int   `json:"hintLine,omitempty"`
	OldText  string `json:"oldText"`
	NewText  string `json:"newText"`
}

// Applied is the outcome of a successful relocation: the full replacement
// line set plus the 0-based index of the first changed line.
type Applied struct {
	Lines []string
	Line  int
}

// candidate is a transient scoring record produced during search mode.
type candidate struct {
	line        int
	lengthDelta int
}

// Applier holds the per-document-session relocation state. It must be reset
// when the document is reloaded from disk or replaced wholesale.
type Applier struct {
	mu      sync.Mutex
	applied int
}

// NewApplier returns an applier in first-fix mode.
func NewApplier() *Applier { return &Applier{} }

// AppliedCount returns the number of fixes applied since the last reset.
func (a *Applier) AppliedCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.applied
}

// Reset returns the applier to first-fix mode.
func (a *Applier) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.applied = 0
}

// Apply locates the proposal's target line in the snapshot and replaces it
// with NewText, returning the rewritten lines and the changed index. The
// snapshot itself is never modified. On ErrNoCandidate nothing was applied.
func (a *Applier) Apply(snap document.Snapshot, p Proposal) (Applied, error) {
	if p.OldText == "" {
		return Applied{}, ErrEmptyOldText
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	target := -1
	if a.applied == 0 && p.HintLine != nil {
		if h := *p.HintLine; h >= 0 && h < len(snap.Lines) && strings.Contains(snap.Lines[h], p.OldText) {
			target = h
		}
	}
	if target < 0 {
		target = searchTarget(snap.Lines, p)
	}
	if target < 0 {
		return Applied{}, ErrNoCandidate
	}

	replacement := strings.Split(p.NewText, "\n")
	out := make([]string, 0, len(snap.Lines)+len(replacement)-1)
	out = append(out, snap.Lines[:target]...)
	out = append(out, replacement...)
	out = append(out, snap.Lines[target+1:]...)

	a.applied++
	return Applied{Lines: out, Line: target}, nil
}

// searchTarget scans every line for the best relocation candidate. A line
// qualifies only if it contains OldText and is not already identical to
// NewText, which guards against re-selecting an already-fixed line. Among
// qualifying lines the smallest |len(line) - len(OldText)| wins: the line
// differing from the fragment by the fewest extraneous characters is, in
// practice, the one still carrying the bug. Ties go to the lowest line
// number for determinism.
func searchTarget(lines []string, p Proposal) int {
	best := candidate{line: -1}
	for i, line := range lines {
		if line == p.NewText || !strings.Contains(line, p.OldText) {
			continue
		}
		delta := len(line) - len(p.OldText)
		if delta < 0 {
			delta = -delta
		}
		if best.line < 0 || delta < best.lengthDelta {
			best = candidate{line: i, lengthDelta: delta}
		}
	}
	return best.line
}
