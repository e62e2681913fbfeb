package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kyiku/shapefill/internal/geometry"
	"github.com/kyiku/shapefill/internal/history"
	"github.com/kyiku/shapefill/internal/model"
	"github.com/kyiku/shapefill/internal/placement"
	"github.com/kyiku/shapefill/internal/selection"
)

// Outcome describes what a click did.
type Outcome string

// Click outcomes
const (
	OutcomePlaced     Outcome = "placed"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeCanvasFull Outcome = "canvas_full"
)

// Notifier receives session events, e.g. to push them to a renderer.
type Notifier interface {
	ShapePlaced(sessionID string, result ClickResult)
	CanvasFull(sessionID string, result ClickResult)
	Reset(sessionID string)
}

// ClickResult is the outcome of a single click.
type ClickResult struct {
	Click    int // zero-based index of the click
	Kind     model.Kind
	Outcome  Outcome
	Entry    history.Entry // set when Outcome is OutcomePlaced
	Attempts int
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	ID      string
	Canvas  geometry.Canvas
	Policy  string
	Clicks  int
	Entries []history.Entry
	Counts  map[model.Kind]int
}

// Session is one canvas being filled. All mutations are serialized.
type Session struct {
	ID        string
	CreatedAt time.Time

	engine   *placement.Engine
	policy   selection.Policy
	notifier Notifier

	mu      sync.Mutex
	history *history.History
	clicks  int

	// notifyMu is taken before mu is released so events leave in history order.
	notifyMu sync.Mutex
}

// NewSession creates an empty session.
func NewSession(id string, engine *placement.Engine, policy selection.Policy) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		engine:    engine,
		policy:    policy,
		history:   history.New(),
	}
}

// SetNotifier sets the event receiver.
func (s *Session) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Click advances the click counter and places whatever the policy selects.
// A full canvas is reported through the result, not as an error.
func (s *Session) Click() (ClickResult, error) {
	s.mu.Lock()
	idx := s.clicks
	s.clicks++

	kind, ok := s.policy.Select(idx)
	if !ok {
		s.mu.Unlock()
		return ClickResult{Click: idx, Outcome: OutcomeSkipped}, nil
	}

	result, err := s.placeLocked(idx, kind)
	notifier := s.notifier
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	if err != nil {
		return result, err
	}
	s.notify(notifier, result)
	return result, nil
}

// Place places an explicit kind, bypassing the policy. It counts as a click.
// Unknown kinds fail with placement.ErrInvalidShapeKind and change nothing.
func (s *Session) Place(kind model.Kind) (ClickResult, error) {
	if !kind.Valid() {
		return ClickResult{}, fmt.Errorf("%w: %q", placement.ErrInvalidShapeKind, kind)
	}

	s.mu.Lock()
	idx := s.clicks
	s.clicks++

	result, err := s.placeLocked(idx, kind)
	notifier := s.notifier
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	if err != nil {
		return result, err
	}
	s.notify(notifier, result)
	return result, nil
}

func (s *Session) placeLocked(idx int, kind model.Kind) (ClickResult, error) {
	result := ClickResult{Click: idx, Kind: kind}

	p, err := s.engine.TryPlace(kind, s.history)
	if errors.Is(err, placement.ErrCanvasFull) {
		result.Outcome = OutcomeCanvasFull
		result.Attempts = p.Attempts
		return result, nil
	}
	if err != nil {
		return result, err
	}

	entry := history.Entry{Shape: p.Shape, Bounds: p.Bounds}
	s.history.Append(entry)

	result.Outcome = OutcomePlaced
	result.Entry = entry
	result.Attempts = p.Attempts
	return result, nil
}

func (s *Session) notify(n Notifier, result ClickResult) {
	if n == nil {
		return
	}
	switch result.Outcome {
	case OutcomePlaced:
		n.ShapePlaced(s.ID, result)
	case OutcomeCanvasFull:
		n.CanvasFull(s.ID, result)
	}
}

// Reset clears the history and restarts the click counter.
func (s *Session) Reset() {
	s.mu.Lock()
	s.history.Reset()
	s.clicks = 0
	notifier := s.notifier
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	if notifier != nil {
		notifier.Reset(s.ID)
	}
}

// Clicks returns the number of clicks since creation or the last reset.
func (s *Session) Clicks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clicks
}

// PlacedCount returns the number of placed shapes.
func (s *Session) PlacedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe calls fn with the current snapshot while holding the
// notification lock, so no event can be delivered between the snapshot
// and whatever fn registers.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	snap := s.snapshotLocked()
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	fn(snap)
}

// Dimensions returns the shape dimensions the session places with.
func (s *Session) Dimensions() model.Dimensions {
	return s.engine.Dimensions()
}

func (s *Session) snapshotLocked() Snapshot {
	counts := make(map[model.Kind]int, len(model.Kinds))
	for _, k := range model.Kinds {
		if n := s.history.CountByKind(k); n > 0 {
			counts[k] = n
		}
	}

	return Snapshot{
		ID:      s.ID,
		Canvas:  s.engine.Canvas(),
		Policy:  s.policy.Name(),
		Clicks:  s.clicks,
		Entries: s.history.Entries(),
		Counts:  counts,
	}
}

// RetryLimit returns the placement retry limit in effect.
func (s *Session) RetryLimit() int {
	return s.engine.RetryLimit()
}
