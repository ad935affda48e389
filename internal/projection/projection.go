// Package projection is the client-side view of a match: it previews a
// scorer's action with the same engine the server runs and gives way to the
// server's aggregate as soon as one arrives.
package projection

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/DhavalSuthar-24/livescore/internal/scoring"
)

// Projector holds the last confirmed aggregate and an optimistic view built
// on top of it.
type Projector struct {
	mu        sync.RWMutex
	engine    *scoring.Engine
	confirmed scoring.Match
	version   int64
	view      scoring.Match
	pending   []scoring.Action
}

// New starts a projection from an aggregate the server returned at version.
func New(engine *scoring.Engine, m scoring.Match, version int64) *Projector {
	if engine == nil {
		engine = scoring.NewEngine()
	}
	return &Projector{
		engine:    engine,
		confirmed: m.Clone(),
		version:   version,
		view:      m.Clone(),
	}
}

// Preview applies a on top of the current view. A rejected action leaves the
// view unchanged and returns the engine's error, so the client can refuse it
// without a round trip.
func (p *Projector) Preview(a scoring.Action) (scoring.Match, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, err := p.engine.Apply(p.view, a)
	if err != nil {
		return p.view.Clone(), err
	}
	p.view = next
	p.pending = append(p.pending, a)
	return next.Clone(), nil
}

// Reconcile replaces the view with the server's aggregate. Versions older
// than the confirmed one are ignored and reported as false; anything else
// discards every pending guess.
func (p *Projector) Reconcile(m scoring.Match, version int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if version < p.version {
		return false
	}
	p.confirmed = m.Clone()
	p.version = version
	p.view = m.Clone()
	p.pending = nil
	return true
}

// update is the subset of a match.updated payload the projection reads.
type update struct {
	Version int64 `json:"version"`
	scoring.Match
}

// ReconcileEvent decodes a match.updated payload and reconciles with it.
func (p *Projector) ReconcileEvent(data []byte) (bool, error) {
	var u update
	if err := json.Unmarshal(data, &u); err != nil {
		return false, fmt.Errorf("decode match update: %w", err)
	}
	if u.Version < 1 {
		return false, fmt.Errorf("decode match update: missing version")
	}
	return p.Reconcile(u.Match, u.Version), nil
}

// Rollback drops every optimistic guess, for example after the server
// rejected the action that produced them.
func (p *Projector) Rollback() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view = p.confirmed.Clone()
	p.pending = nil
}

// View returns the optimistic aggregate.
func (p *Projector) View() scoring.Match {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view.Clone()
}

// Confirmed returns the last authoritative aggregate and its version.
func (p *Projector) Confirmed() (scoring.Match, int64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.confirmed.Clone(), p.version
}

// Pending is the number of previewed actions not yet confirmed.
func (p *Projector) Pending() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.pending)
}
