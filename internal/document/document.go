// Package document models the text buffer the engine analyzes. The buffer is
// owned by the editing session; the engine only ever sees immutable
// snapshots and returns replacement text for the session to commit.
package document

import "strings"

// Document is an ordered sequence of lines plus a version counter that is
// bumped on every mutation. Results computed against an older version must
// be discarded by the caller.
type Document struct {
	lines   []string
	version uint64
}

// New creates a document at version 1 from raw text. An empty string yields
// a single empty line, matching how editors model an empty buffer.
func New(text string) *Document {
	return &Document{lines: splitLines(text), version: 1}
}

// Version returns the current version counter.
func (d *Document) Version() uint64 { return d.version }

// LineCount returns the number of lines in the buffer.
func (d *Document) LineCount() int { return len(d.lines) }

// Snapshot captures the current lines and version. The returned snapshot is
// immutable: its line slice is a copy.
func (d *Document) Snapshot() Snapshot {
	lines := make([]string, len(d.lines))
	copy(lines, d.lines)
	return Snapshot{Lines: lines, Version: d.version}
}

// SetText replaces the whole buffer and bumps the version.
func (d *Document) SetText(text string) {
	d.lines = splitLines(text)
	d.version++
}

// SetLines replaces the buffer with the given lines and bumps the version.
// The slice is copied.
func (d *Document) SetLines(lines []string) {
	d.lines = make([]string, len(lines))
	copy(d.lines, lines)
	d.version++
}

// Text returns the buffer joined with newlines.
func (d *Document) Text() string { return strings.Join(d.lines, "\n") }

// Snapshot is an immutable (lines, version) pair handed to analyses and to
// the patch relocator. Holders must not modify Lines.
type Snapshot struct {
	Lines   []string
	Version uint64
}

// Text returns the snapshot joined with newlines.
func (s Snapshot) Text() string { return strings.Join(s.Lines, "\n") }

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
