package match

import (
	"time"

	"github.com/DhavalSuthar-24/livescore/internal/models"
	"github.com/DhavalSuthar-24/livescore/internal/scoring"
	"gorm.io/gorm"
)

// Match is the persisted row. The whole scoring aggregate lives in one JSONB
// document so a transition commits as a single conditional UPDATE; Version
// is the optimistic-concurrency marker and grows by one per commit.
type Match struct {
	gorm.Model
	MatchCode       string              `gorm:"size:64;uniqueIndex;not null"`
	CreatedByUserID uint                `gorm:"not null;index"`
	Admins          models.UserIDs      `gorm:"type:jsonb"`
	Scorers         models.UserIDs      `gorm:"type:jsonb"`
	Viewers         models.UserIDs      `gorm:"type:jsonb"`
	Status          scoring.MatchStatus `gorm:"size:20;not null;index"`
	Version         int64               `gorm:"not null;default:1"`
	State           scoring.Match       `gorm:"type:jsonb;serializer:json;not null"`
}

// CanScore reports whether userID may submit transitions for this match.
func (m *Match) CanScore(userID uint) bool {
	return userID != 0 && (m.CreatedByUserID == userID || m.Admins.Contains(userID) || m.Scorers.Contains(userID))
}

// CanView reports whether userID may read this match.
func (m *Match) CanView(userID uint) bool {
	return m.CanScore(userID) || (userID != 0 && m.Viewers.Contains(userID))
}

// Participants lists every user who receives updates, creator first, without
// duplicates.
func (m *Match) Participants() []uint {
	all := append(models.UserIDs{m.CreatedByUserID}, m.Admins...)
	all = append(all, m.Scorers...)
	all = append(all, m.Viewers...)
	return all.Normalize()
}

// --- DTOs for requests ---

type PlayerRequest struct {
	Name      string `json:"name" binding:"required,max=80"`
	IsCaptain bool   `json:"is_captain"`
	IsKeeper  bool   `json:"is_keeper"`
}

type TeamRequest struct {
	Name    string          `json:"name" binding:"required,max=80"`
	Players []PlayerRequest `json:"players" binding:"required,min=2,dive"`
}

// CreateMatchRequest sets up an upcoming match. MatchCode defaults to a
// generated id.
type CreateMatchRequest struct {
	MatchCode string      `json:"match_code" binding:"omitempty,max=64"`
	Venue     string      `json:"venue" binding:"max=120"`
	StartTime time.Time   `json:"start_time"`
	Overs     int         `json:"overs" binding:"required,min=1,max=50"`
	TeamOne   TeamRequest `json:"team_one" binding:"required"`
	TeamTwo   TeamRequest `json:"team_two" binding:"required"`
	Admins    []uint      `json:"admins"`
	Scorers   []uint      `json:"scorers"`
	Viewers   []uint      `json:"viewers"`
}

func (t TeamRequest) toTeam() scoring.Team {
	players := make([]scoring.Player, len(t.Players))
	for i, p := range t.Players {
		players[i] = scoring.Player{Name: p.Name, IsCaptain: p.IsCaptain, IsKeeper: p.IsKeeper}
	}
	return scoring.Team{Name: t.Name, Players: players}
}

type TossRequest struct {
	Winner   string `json:"winner" binding:"required"`
	Decision string `json:"decision" binding:"required,oneof=bat bowl"`
	Version  *int64 `json:"version"`
}

type SelectPlayersRequest struct {
	Batsman1 string `json:"batsman1"`
	Batsman2 string `json:"batsman2"`
	Bowler   string `json:"bowler"`
	Striker  string `json:"striker" binding:"omitempty,oneof=batsman1 batsman2"`
	Version  *int64 `json:"version"`
}

// BallRequest is the ball signal. ExtraRuns is the runs the batsmen took off
// an extra and is ignored for other outcomes.
type BallRequest struct {
	Outcome   string `json:"outcome" binding:"required,ball_outcome"`
	ExtraRuns int    `json:"extraRuns" binding:"min=0,max=7"`
	Version   *int64 `json:"version"`
}

type UndoRequest struct {
	Version *int64 `json:"version"`
}

// --- Response ---

// MatchResponse is the wire form of the aggregate: the scoring document's
// fields at the top level plus the row's identity, permissions and version.
type MatchResponse struct {
	ID              uint      `json:"id"`
	Version         int64     `json:"version"`
	CreatedByUserID uint      `json:"created_by_user_id"`
	Admins          []uint    `json:"admins"`
	Scorers         []uint    `json:"scorers"`
	Viewers         []uint    `json:"viewers"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	scoring.Match
	Result *scoring.MatchResult `json:"result,omitempty"`
}

func (m *Match) ToResponse() MatchResponse {
	resp := MatchResponse{
		ID:              m.ID,
		Version:         m.Version,
		CreatedByUserID: m.CreatedByUserID,
		Admins:          nonNil(m.Admins),
		Scorers:         nonNil(m.Scorers),
		Viewers:         nonNil(m.Viewers),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Match:           m.State,
	}
	if r, ok := m.State.Result(); ok {
		resp.Result = &r
	}
	return resp
}

func nonNil(ids models.UserIDs) []uint {
	if ids == nil {
		return []uint{}
	}
	return ids
}
