package match

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/livescore/internal/models"
	"github.com/DhavalSuthar-24/livescore/internal/scoring"
	"github.com/google/uuid"
)

// EventMatchUpdated is published to every participant after a commit.
const EventMatchUpdated = "match.updated"

// Publisher delivers an event on a user's channel. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, userID uint, event string, payload []byte) error
}

// Service is the consistency gate around the scoring engine: it authorizes
// the caller, checks the version the caller read, computes the transition,
// commits it conditionally and fans the result out.
type Service struct {
	repo      MatchRepository
	engine    *scoring.Engine
	publisher Publisher
	metrics   *Metrics
	logger    *slog.Logger
}

// NewService wires the gate. publisher and metrics may be nil.
func NewService(repo MatchRepository, engine *scoring.Engine, publisher Publisher, metrics *Metrics, logger *slog.Logger) *Service {
	if engine == nil {
		engine = scoring.NewEngine()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, engine: engine, publisher: publisher, metrics: metrics, logger: logger}
}

// Create sets up an upcoming match owned by userID.
func (s *Service) Create(ctx context.Context, userID uint, req CreateMatchRequest) (*Match, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	code := strings.TrimSpace(req.MatchCode)
	if code == "" {
		code = uuid.NewString()
	}
	state := scoring.Match{
		MatchCode:   code,
		Status:      scoring.StatusMatchUpcoming,
		StartTime:   req.StartTime.UTC(),
		Venue:       req.Venue,
		Overs:       req.Overs,
		TeamOne:     req.TeamOne.toTeam(),
		TeamTwo:     req.TeamTwo.toTeam(),
		BallHistory: []scoring.Ball{},
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}

	m := &Match{
		MatchCode:       code,
		CreatedByUserID: userID,
		Admins:          models.UserIDs(req.Admins).Normalize(),
		Scorers:         models.UserIDs(req.Scorers).Normalize(),
		Viewers:         models.UserIDs(req.Viewers).Normalize(),
		Status:          state.Status,
		State:           state,
	}
	if err := s.repo.CreateMatch(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("match created", "match_id", m.ID, "match_code", code, "user_id", userID)
	s.fanOut(ctx, m)
	return m, nil
}

// Get returns the match if userID participates in it.
func (s *Service) Get(ctx context.Context, userID, id uint) (*Match, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	m, err := s.repo.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.CanView(userID) {
		return nil, ErrForbidden
	}
	return m, nil
}

// Transition applies one action to match id on behalf of userID. expected,
// when set, is the version the caller last read; a stale value fails with
// ErrConflict before anything is computed. A failed transition leaves the
// stored match untouched.
func (s *Service) Transition(ctx context.Context, userID, id uint, expected *int64, action scoring.Action) (*Match, error) {
	start := time.Now()
	m, err := s.transition(ctx, userID, id, expected, action)
	s.metrics.observe(action.Name(), err, time.Since(start))

	if err != nil {
		attrs := []any{"match_id", id, "action", action.Name(), "user_id", userID, "error", err}
		if ball, ok := action.(scoring.ScoreBall); ok {
			attrs = append(attrs, "outcome", string(ball.Outcome), "extra_runs", ball.ExtraRuns)
		}
		if StatusFor(err) >= 500 {
			s.logger.ErrorContext(ctx, "match transition failed", attrs...)
		} else {
			s.logger.DebugContext(ctx, "match transition rejected", attrs...)
		}
		return nil, err
	}
	s.fanOut(ctx, m)
	return m, nil
}

func (s *Service) transition(ctx context.Context, userID, id uint, expected *int64, action scoring.Action) (*Match, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	m, err := s.repo.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.CanScore(userID) {
		return nil, ErrForbidden
	}
	if expected != nil && *expected != m.Version {
		return nil, fmt.Errorf("%w (read version %d, current %d)", ErrConflict, *expected, m.Version)
	}

	next, err := s.engine.Apply(m.State, action)
	if err != nil {
		return nil, err
	}
	read := m.Version
	m.State = next
	if err := s.repo.SaveMatch(ctx, m, read); err != nil {
		return nil, err
	}
	return m, nil
}

// fanOut pushes the committed aggregate to every participant's channel.
// Failures are counted and logged; they never fail the request.
func (s *Service) fanOut(ctx context.Context, m *Match) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(m.ToResponse())
	if err != nil {
		s.logger.ErrorContext(ctx, "encode match update", "match_id", m.ID, "error", err)
		return
	}
	for _, userID := range m.Participants() {
		if err := s.publisher.Publish(ctx, userID, EventMatchUpdated, payload); err != nil {
			s.metrics.fanoutFailed()
			s.logger.WarnContext(ctx, "match update not delivered",
				"user_id", userID, "match_id", m.ID, "event", EventMatchUpdated, "error", err)
		}
	}
}
