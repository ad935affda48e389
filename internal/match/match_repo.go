package match

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// MatchRepository loads and stores match rows. SaveMatch is a conditional
// write: it succeeds only while the stored version still equals expected,
// and bumps the version by one.
type MatchRepository interface {
	CreateMatch(ctx context.Context, match *Match) error
	GetMatchByID(ctx context.Context, id uint) (*Match, error)
	SaveMatch(ctx context.Context, match *Match, expected int64) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// CreateMatch inserts a new match at version 1.
func (r *GormMatchRepository) CreateMatch(ctx context.Context, match *Match) error {
	match.Version = 1
	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicate, match.MatchCode)
		}
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

// GetMatchByID retrieves a match by ID
func (r *GormMatchRepository) GetMatchByID(ctx context.Context, id uint) (*Match, error) {
	var match Match
	if err := r.db.WithContext(ctx).First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load match %d: %w", id, err)
	}
	return &match, nil
}

// SaveMatch writes the aggregate document with a single UPDATE guarded by
// the version column, so partial writes are never visible and a concurrent
// commit turns into ErrConflict.
func (r *GormMatchRepository) SaveMatch(ctx context.Context, match *Match, expected int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next := Match{
			Status:  match.State.Status,
			Version: expected + 1,
			State:   match.State,
		}
		res := tx.Model(&Match{Model: gorm.Model{ID: match.ID}}).
			Where("version = ?", expected).
			Select("Status", "Version", "State", "UpdatedAt").
			Updates(&next)
		if res.Error != nil {
			return fmt.Errorf("save match %d: %w", match.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&Match{}).Where("id = ?", match.ID).Count(&count).Error; err != nil {
				return fmt.Errorf("save match %d: %w", match.ID, err)
			}
			if count == 0 {
				return ErrNotFound
			}
			return fmt.Errorf("%w (match %d, expected version %d)", ErrConflict, match.ID, expected)
		}
		match.Status = next.Status
		match.Version = next.Version
		match.UpdatedAt = next.UpdatedAt
		return nil
	})
}
