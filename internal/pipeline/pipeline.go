// Package pipeline orchestrates extraction: it selects the remote or local
// path, assembles the artifact, tracks status, and writes the latest
// snapshot through the persistence port.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/docsieve/docsieve/internal/extractor"
	"github.com/docsieve/docsieve/internal/logger"
	"github.com/docsieve/docsieve/internal/store"
	"github.com/docsieve/docsieve/pkg/schema"
)

// SnapshotKey is the fixed persistence slot for the latest snapshot.
const SnapshotKey = "latest"

// ErrBusy is returned when Process is called while a prior extraction is
// still in flight. The persisted slot is single-writer; a concurrent run
// would race it.
var ErrBusy = errors.New("an extraction is already in flight")

// RemoteExtractor is the remote path.
type RemoteExtractor interface {
	Extract(ctx context.Context, prompt string) (extractor.Fields, error)
	Source() string
}

// LocalExtractor is the fallback path. It must be total.
type LocalExtractor interface {
	Extract(rawText string) extractor.Result
}

// Snapshot is the persisted {rawText, artifact} pair.
type Snapshot struct {
	RawText  string              `json:"rawText"`
	Artifact *extractor.Artifact `json:"artifact"`
}

// Pipeline coordinates one extraction at a time.
type Pipeline struct {
	remote RemoteExtractor
	local  LocalExtractor
	store  store.Store
	schema schema.Schema
	now    func() time.Time

	inFlight atomic.Bool
	mu       sync.RWMutex
	state    State
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStore sets the persistence port. Without it, snapshots are not
// persisted.
func WithStore(s store.Store) Option {
	return func(p *Pipeline) {
		p.store = s
	}
}

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New creates a pipeline around the two extractors.
func New(remote RemoteExtractor, local LocalExtractor, opts ...Option) *Pipeline {
	p := &Pipeline{
		remote: remote,
		local:  local,
		schema: schema.Document(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs one extraction over rawText. The remote path is attempted
// first; a missing credential or a remote failure falls back to the local
// extractor, which cannot fail. Context cancellation aborts the run without
// falling back. A second Process call while one is in flight returns
// ErrBusy immediately.
func (p *Pipeline) Process(ctx context.Context, rawText string) (extractor.Artifact, Status, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return extractor.Artifact{}, Status{}, ErrBusy
	}
	defer p.inFlight.Store(false)

	p.transition(func(s State) State { return s.startProcessing(rawText) })

	prompt := extractor.BuildPrompt(rawText, p.schema)

	var result extractor.Result
	var status Status
	remoteSucceeded := false

	fields, err := p.remote.Extract(ctx, prompt)
	switch {
	case err == nil:
		result = extractor.Result{Fields: fields, Source: p.remote.Source()}
		status = Status{Tone: ToneSuccess, Message: "Extraction completed using the remote service."}
		remoteSucceeded = true

	case errors.Is(err, extractor.ErrNoCredential):
		logger.Debug("no credential, using offline extractor")
		result = p.local.Extract(rawText)
		status = Status{Tone: ToneWarning, Message: "API key not provided; used offline extractor."}

	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		status = Status{Tone: ToneDanger, Message: "Extraction aborted before completion."}
		p.transition(func(s State) State { return s.abort(status) })
		return extractor.Artifact{}, status, err

	default:
		logger.Warn("remote extraction failed, falling back to local extractor", "error", err)
		result = p.local.Extract(rawText)
		status = Status{Tone: ToneWarning, Message: "Remote service unavailable; used local extractor with the latest document text."}
	}

	artifact := extractor.Artifact{
		Result:      result,
		RawText:     rawText,
		ProcessedAt: p.now().UTC(),
	}

	p.transition(func(s State) State {
		if remoteSucceeded {
			return s.completeWithRemote(artifact, status)
		}
		return s.completeWithFallback(artifact, status)
	})

	p.persist(ctx, Snapshot{RawText: rawText, Artifact: &artifact})

	return artifact, status, nil
}

// UpdateRawText records an edit to the document text and writes the
// snapshot through, keeping the persisted pair current between runs.
func (p *Pipeline) UpdateRawText(ctx context.Context, rawText string) {
	p.transition(func(s State) State { return s.withRawText(rawText) })

	p.mu.RLock()
	snapshot := Snapshot{RawText: p.state.RawText, Artifact: p.state.Artifact}
	p.mu.RUnlock()

	p.persist(ctx, snapshot)
}

// Snapshot returns the current state for rendering.
func (p *Pipeline) Snapshot() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// LoadLatest seeds the state from the persisted slot. Best-effort: a
// missing key or malformed value leaves the state untouched.
func (p *Pipeline) LoadLatest(ctx context.Context) bool {
	if p.store == nil {
		return false
	}

	snapshot, ok := LoadSnapshot(ctx, p.store)
	if !ok {
		return false
	}

	p.transition(func(s State) State {
		next := s.withRawText(snapshot.RawText)
		next.Artifact = snapshot.Artifact
		return next
	})
	return true
}

// LoadSnapshot reads the persisted {rawText, artifact} pair. Missing keys
// and malformed values are tolerated silently.
func LoadSnapshot(ctx context.Context, s store.Store) (Snapshot, bool) {
	value, ok, err := s.Get(ctx, SnapshotKey)
	if err != nil {
		logger.Debug("snapshot load failed", "error", err)
		return Snapshot{}, false
	}
	if !ok {
		return Snapshot{}, false
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(value), &snapshot); err != nil {
		logger.Debug("stored snapshot is malformed, ignoring", "error", err)
		return Snapshot{}, false
	}
	return snapshot, true
}

// persist writes the snapshot through the store. Failures are logged and
// swallowed: persistence must never block extraction.
func (p *Pipeline) persist(ctx context.Context, snapshot Snapshot) {
	if p.store == nil {
		return
	}

	value, err := json.Marshal(snapshot)
	if err != nil {
		logger.Warn("failed to serialize snapshot", "error", err)
		return
	}
	if err := p.store.Set(ctx, SnapshotKey, string(value)); err != nil {
		logger.Warn("failed to persist snapshot", "error", err)
	}
}

func (p *Pipeline) transition(fn func(State) State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = fn(p.state)
}
