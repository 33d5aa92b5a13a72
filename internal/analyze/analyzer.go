// Package analyze runs the validation pass set to a fixed point and manages
// the per-document analysis session: debounced background runs, version
// tagging, and stale-result discard.
package analyze

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mayalint/internal/diag"
	"mayalint/internal/document"
	"mayalint/internal/fuzzy"
	"mayalint/internal/knowledge"
	"mayalint/internal/passes"
)

const (
	// DefaultMaxDiagnostics caps one run's findings so cascading errors in
	// unfinished code do not overwhelm the user.
	DefaultMaxDiagnostics = 10

	// DefaultMaxSweeps bounds the fixed-point iteration. Pure passes
	// normally converge on the second sweep; the bound is a guard, not a
	// tuning knob.
	DefaultMaxSweeps = 8
)

// Options tunes a single analyzer.
type Options struct {
	MaxDiagnostics int
	MaxSweeps      int
}

func (o Options) withDefaults() Options {
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if o.MaxSweeps <= 0 {
		o.MaxSweeps = DefaultMaxSweeps
	}
	return o
}

// Result is one completed analysis, tagged with the document version it
// analyzed. Callers must discard results whose version no longer matches
// the live document.
type Result struct {
	Version     uint64
	Mode        passes.Mode
	Diagnostics []diag.Diagnostic
	// Truncated marks a run stopped by the diagnostic cap: more findings
	// may exist.
	Truncated bool
}

// Analyzer owns an immutable pass list plus the shared read-only
// environment. It is safe for concurrent use across documents.
type Analyzer struct {
	passes []passes.Pass
	env    *passes.Env
	opts   Options
}

// New creates an analyzer over the given pass set.
func New(passSet []passes.Pass, env *passes.Env, opts Options) *Analyzer {
	return &Analyzer{passes: passSet, env: env, opts: opts.withDefaults()}
}

// Default returns an analyzer wired to the standard pass set, the embedded
// knowledge base, and the default fuzzy matcher.
func Default() *Analyzer {
	return New(passes.Default(), &passes.Env{
		KB:    knowledge.Default(),
		Fuzzy: fuzzy.Default(),
	}, Options{})
}

// Run executes the pass set against the snapshot, repeating full sweeps
// until a sweep adds no new diagnostic or the cap is reached. Passes within
// one sweep run in parallel; their results merge in registration order, so
// output is deterministic and idempotent for an unchanged snapshot.
//
// Cancellation is cooperative: a cancelled context stops between sweeps and
// the partial result carries the analyzed version for the caller's staleness
// check.
func (a *Analyzer) Run(ctx context.Context, snap document.Snapshot, mode passes.Mode) Result {
	set := diag.NewSet(a.opts.MaxDiagnostics)

	var applicable []passes.Pass
	for _, p := range a.passes {
		if p.AppliesTo(mode) {
			applicable = append(applicable, p)
		}
	}

	for sweep := 0; sweep < a.opts.MaxSweeps && len(applicable) > 0; sweep++ {
		if ctx.Err() != nil {
			break
		}
		results := make([][]diag.Diagnostic, len(applicable))
		g, gctx := errgroup.WithContext(ctx)
		for i, p := range applicable {
			i, p := i, p
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				results[i] = p.Run(snap.Lines, mode, a.env)
				return nil
			})
		}
		_ = g.Wait()

		added := 0
		for _, ds := range results {
			added += set.AddAll(ds)
		}
		if added == 0 || set.Truncated() {
			break
		}
	}

	return Result{
		Version:     snap.Version,
		Mode:        mode,
		Diagnostics: set.Items(),
		Truncated:   set.Truncated(),
	}
}
