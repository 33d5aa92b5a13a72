// Package passes implements the individual validation checks run by the
// aggregator. Each pass is a pure function over a document snapshot: no
// shared mutable state, no logging, safe to run concurrently with every
// other pass. Registration order decides message precedence when two passes
// report the same (line, column, category) key.
package passes

import (
	"fmt"

	"mayalint/internal/diag"
	"mayalint/internal/fuzzy"
	"mayalint/internal/knowledge"
)

// Mode selects which script dialect the document is written in.
type Mode int

const (
	// ModePython is the primary dialect (maya.cmds Python).
	ModePython Mode = iota
	// ModeMEL is the secondary dialect.
	ModeMEL
)

// String returns the mode's flag value.
func (m Mode) String() string {
	if m == ModeMEL {
		return "mel"
	}
	return "python"
}

// ParseMode maps a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "python", "py":
		return ModePython, nil
	case "mel":
		return ModeMEL, nil
	}
	return ModePython, fmt.Errorf("unknown language mode %q", s)
}

// Env carries the shared read-only collaborators a pass may consult.
type Env struct {
	KB    *knowledge.Base
	Fuzzy *fuzzy.Matcher
}

// Pass is one validation check. Run must be side-effect free.
type Pass struct {
	// Name identifies the pass in logs.
	Name string
	// Modes lists the dialects the pass applies to; empty means all.
	Modes []Mode
	// Run scans the whole document and returns its findings.
	Run func(lines []string, mode Mode, env *Env) []diag.Diagnostic
}

// AppliesTo reports whether the pass runs for the given mode.
func (p Pass) AppliesTo(mode Mode) bool {
	if len(p.Modes) == 0 {
		return true
	}
	for _, m := range p.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Default returns the standard pass set in registration order. The order is
// the deduplication precedence: when two passes emit the same key, the
// earlier pass's message wins.
func Default() []Pass {
	return []Pass{
		{Name: "missing-import", Modes: []Mode{ModePython}, Run: runMissingImport},
		{Name: "unknown-command", Run: runUnknownCommand},
		{Name: "deprecated-command", Run: runDeprecatedCommand},
		{Name: "call-shape", Modes: []Mode{ModePython}, Run: runCallShape},
		{Name: "mel-syntax", Modes: []Mode{ModeMEL}, Run: runMELSyntax},
	}
}
