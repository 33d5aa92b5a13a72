// Package diffview produces the line-level add/remove partition shown to
// the user before a fix is accepted. The confidence figure is display-only:
// acceptance is always a separate, caller-triggered action.
package diffview

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"mayalint/internal/fuzzy"
)

// Line is one presented line with its 0-based position in the side it
// belongs to (old side for removals, new side for additions).
type Line struct {
	Number int
	Text   string
}

// Presentation is the before/after partition between the current text and
// the proposed text.
type Presentation struct {
	Removed []Line
	Added   []Line
	// Confidence is the similarity between the two texts, for display.
	// It never gates whether a patch is applied.
	Confidence float64
}

// Present computes the line partition between oldText and newText. The
// line-mode reduction keeps the diff aligned on line boundaries.
func Present(oldText, newText string) Presentation {
	p := Presentation{Confidence: fuzzy.Similarity(oldText, newText)}
	if oldText == newText {
		return p
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	oldLine, newLine := 0, 0
	for _, d := range diffs {
		for _, text := range splitDiffLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				p.Removed = append(p.Removed, Line{Number: oldLine, Text: text})
				oldLine++
			case diffmatchpatch.DiffInsert:
				p.Added = append(p.Added, Line{Number: newLine, Text: text})
				newLine++
			}
		}
	}
	return p
}

// splitDiffLines breaks a diff chunk into lines, dropping the trailing
// empty element a terminal newline produces.
func splitDiffLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
