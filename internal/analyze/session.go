package analyze

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mayalint/internal/document"
	"mayalint/internal/logging"
	"mayalint/internal/passes"
	"mayalint/internal/patch"
)

// ErrSessionClosed is returned by operations on a closed session.
var ErrSessionClosed = errors.New("analyze: session is closed")

// DefaultDebounce is how long a session waits after an edit before starting
// a background run, so rapid keystrokes coalesce into one analysis.
const DefaultDebounce = 200 * time.Millisecond

// Session owns one document's analysis pipeline and patch state. Edits are
// debounced into background runs; a result is delivered only if its version
// still matches the document when the run finishes, so superseded runs are
// dropped silently rather than raced.
type Session struct {
	id       string
	analyzer *Analyzer
	mode     passes.Mode
	debounce time.Duration
	log      *zap.Logger

	mu        sync.Mutex
	doc       *document.Document
	applier   *patch.Applier
	timer     *time.Timer
	cancelRun context.CancelFunc
	closed    bool

	results chan Result
	wg      sync.WaitGroup
}

// NewSession creates a session for the given initial text and schedules its
// first analysis. Close must be called to release the pipeline.
func NewSession(a *Analyzer, mode passes.Mode, text string, debounce time.Duration) *Session {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	s := &Session{
		id:       uuid.NewString(),
		analyzer: a,
		mode:     mode,
		debounce: debounce,
		log:      logging.Analysis(),
		doc:      document.New(text),
		applier:  patch.NewApplier(),
		results:  make(chan Result, 1),
	}
	s.mu.Lock()
	s.schedule()
	s.mu.Unlock()
	s.log.Debug("session opened", zap.String("session", s.id), zap.Stringer("mode", mode))
	return s
}

// ID returns the session's correlation id used in logs.
func (s *Session) ID() string { return s.id }

// Mode returns the session's dialect.
func (s *Session) Mode() passes.Mode { return s.mode }

// Version returns the document's current version.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Version()
}

// Text returns the document's current text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Text()
}

// Results delivers analyses that were still fresh at delivery time. The
// channel holds at most the latest result and is closed by Close.
func (s *Session) Results() <-chan Result { return s.results }

// Update replaces the document text after an edit and schedules a debounced
// re-analysis. Any in-flight run is superseded.
func (s *Session) Update(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.doc.SetText(text)
	s.schedule()
}

// Reload replaces the document wholesale (e.g. re-read from disk). Unlike
// Update it also resets the patch applier to first-fix mode.
func (s *Session) Reload(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.doc.SetText(text)
	s.applier.Reset()
	s.schedule()
	s.log.Debug("session reloaded", zap.String("session", s.id), zap.Uint64("version", s.doc.Version()))
}

// AnalyzeNow runs a synchronous analysis against the current document,
// bypassing the debounce. Intended for one-shot callers like the CLI.
func (s *Session) AnalyzeNow(ctx context.Context) Result {
	s.mu.Lock()
	snap := s.doc.Snapshot()
	s.mu.Unlock()
	return s.analyzer.Run(ctx, snap, s.mode)
}

// ApplyFix relocates the proposal in the current document, commits the
// rewritten text on success, and schedules a re-analysis. On error the
// document is unchanged.
func (s *Session) ApplyFix(p patch.Proposal) (patch.Applied, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return patch.Applied{}, ErrSessionClosed
	}
	applied, err := s.applier.Apply(s.doc.Snapshot(), p)
	if err != nil {
		logging.Patch().Info("fix not applied",
			zap.String("session", s.id), zap.Error(err))
		return patch.Applied{}, err
	}
	s.doc.SetLines(applied.Lines)
	s.schedule()
	logging.Patch().Info("fix applied",
		zap.String("session", s.id),
		zap.Int("line", applied.Line),
		zap.Int("fixesApplied", s.applier.AppliedCount()),
		zap.Uint64("version", s.doc.Version()))
	return applied, nil
}

// Close cancels any in-flight run, waits for it to drain, and closes the
// results channel.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	if s.cancelRun != nil {
		s.cancelRun()
	}
	s.mu.Unlock()
	s.wg.Wait()
	close(s.results)
	s.log.Debug("session closed", zap.String("session", s.id))
}

// schedule arms the debounce timer, superseding any pending or in-flight
// run. Caller holds s.mu.
func (s *Session) schedule() {
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	if s.cancelRun != nil {
		s.cancelRun()
		s.cancelRun = nil
	}
	s.wg.Add(1)
	s.timer = time.AfterFunc(s.debounce, s.runOnce)
}

// runOnce executes one background analysis and delivers the result if it is
// still fresh. Cancellation is advisory: a superseded run may finish its
// computation but its output is discarded by the version check.
func (s *Session) runOnce() {
	defer s.wg.Done()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	snap := s.doc.Snapshot()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelRun = cancel
	s.mu.Unlock()

	res := s.analyzer.Run(ctx, snap, s.mode)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if res.Version != s.doc.Version() {
		s.log.Debug("discarding stale result",
			zap.String("session", s.id),
			zap.Uint64("analyzed", res.Version),
			zap.Uint64("current", s.doc.Version()))
		return
	}
	// Keep only the latest result: replace an undelivered one.
	select {
	case <-s.results:
	default:
	}
	s.results <- res
}
