package match

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryRepository keeps matches in process. Rows are stored as JSON so
// callers never share memory with the store, mirroring a JSONB round trip.
// It honours the same conditional-save contract as the gorm repository.
type MemoryRepository struct {
	mu     sync.Mutex
	rows   map[uint][]byte
	codes  map[string]uint
	nextID uint
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rows:  make(map[uint][]byte),
		codes: make(map[string]uint),
		now:   time.Now,
	}
}

func (r *MemoryRepository) CreateMatch(_ context.Context, match *Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.codes[match.MatchCode]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicate, match.MatchCode)
	}
	r.nextID++
	now := r.now().UTC()
	match.ID = r.nextID
	match.CreatedAt = now
	match.UpdatedAt = now
	match.Version = 1
	if err := r.put(match); err != nil {
		r.nextID--
		return err
	}
	r.codes[match.MatchCode] = match.ID
	return nil
}

func (r *MemoryRepository) GetMatchByID(_ context.Context, id uint) (*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *MemoryRepository) SaveMatch(_ context.Context, match *Match, expected int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.get(match.ID)
	if err != nil {
		return err
	}
	if stored.Version != expected {
		return fmt.Errorf("%w (match %d, expected version %d, stored %d)", ErrConflict, match.ID, expected, stored.Version)
	}
	stored.State = match.State
	stored.Status = match.State.Status
	stored.Version = expected + 1
	stored.UpdatedAt = r.now().UTC()
	if err := r.put(stored); err != nil {
		return err
	}
	match.Status = stored.Status
	match.Version = stored.Version
	match.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *MemoryRepository) get(id uint) (*Match, error) {
	raw, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	var m Match
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode match %d: %w", id, err)
	}
	return &m, nil
}

func (r *MemoryRepository) put(m *Match) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match %d: %w", m.ID, err)
	}
	r.rows[m.ID] = raw
	return nil
}
