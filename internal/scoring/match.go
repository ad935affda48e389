package scoring

import (
	"fmt"
	"time"
)

type MatchStatus string

const (
	StatusMatchUpcoming  MatchStatus = "upcoming"
	StatusMatchLive      MatchStatus = "live"
	StatusMatchCompleted MatchStatus = "completed"
)

// TossDecision is what the toss winner chose to do first.
type TossDecision string

const (
	TossBat  TossDecision = "bat"
	TossBowl TossDecision = "bowl"
)

// StrikerSlot names which selected batsman is on strike.
type StrikerSlot string

const (
	Batsman1 StrikerSlot = "batsman1"
	Batsman2 StrikerSlot = "batsman2"
)

func (s StrikerSlot) other() StrikerSlot {
	if s == Batsman2 {
		return Batsman1
	}
	return Batsman2
}

// Player carries batting and bowling figures for one match.
type Player struct {
	Name         string `json:"name"`
	RunsScored   int    `json:"runs_scored"`
	BallsPlayed  int    `json:"balls_played"`
	Fours        int    `json:"fours"`
	Sixes        int    `json:"sixes"`
	Wickets      int    `json:"wickets"`
	BallsBowled  int    `json:"balls_bowled"`
	RunsConceded int    `json:"runs_conceded"`
	Maidens      int    `json:"maidens"`
	IsCaptain    bool   `json:"is_captain"`
	IsKeeper     bool   `json:"is_keeper"`
	IsOut        bool   `json:"is_out"`
}

type Team struct {
	Name         string   `json:"name"`
	Players      []Player `json:"players"`
	TotalScore   int      `json:"total_score"`
	TotalWickets int      `json:"total_wickets"`
	TotalBalls   int      `json:"total_balls"` // legal deliveries only
	Extras       int      `json:"extras"`
}

// PlayerIndex returns the roster index of name, or -1.
func (t *Team) PlayerIndex(name string) int {
	if name == "" {
		return -1
	}
	for i := range t.Players {
		if t.Players[i].Name == name {
			return i
		}
	}
	return -1
}

// AllOut reports whether only one undismissed batsman remains.
func (t *Team) AllOut() bool {
	return t.TotalWickets >= len(t.Players)-1
}

// Overs renders legal balls in the usual "overs.balls" notation.
func (t *Team) Overs() string {
	return fmt.Sprintf("%d.%d", t.TotalBalls/6, t.TotalBalls%6)
}

// ScoringState is who is at the crease and how far the current over has got.
// An empty batsman or bowler name means the slot is waiting for a selection.
type ScoringState struct {
	SelectedBatsman1 string      `json:"selected_batsman1"`
	SelectedBatsman2 string      `json:"selected_batsman2"`
	SelectedBowler   string      `json:"selected_bowler"`
	PreviousBowler   string      `json:"previous_bowler"`
	CurrentStriker   StrikerSlot `json:"current_striker"`
	CurrentOver      []Outcome   `json:"current_over"`
	OutBatsmen       []string    `json:"out_batsmen"`
	CurrentInnings   int         `json:"current_innings"`
	ExtraRuns        int         `json:"extra_runs"`
}

// NewScoringState returns an empty state for the given innings.
func NewScoringState(innings int) *ScoringState {
	return &ScoringState{
		CurrentStriker: Batsman1,
		CurrentOver:    []Outcome{},
		OutBatsmen:     []string{},
		CurrentInnings: innings,
	}
}

// Striker returns the name of the batsman on strike.
func (s *ScoringState) Striker() string {
	return s.slot(s.CurrentStriker)
}

// NonStriker returns the name of the batsman at the other end.
func (s *ScoringState) NonStriker() string {
	return s.slot(s.CurrentStriker.other())
}

// Ready reports whether striker, non-striker and bowler are all selected.
func (s *ScoringState) Ready() bool {
	return s.SelectedBatsman1 != "" && s.SelectedBatsman2 != "" && s.SelectedBowler != ""
}

// LegalBallsInOver counts deliveries of the current over that count.
func (s *ScoringState) LegalBallsInOver() int {
	n := 0
	for _, o := range s.CurrentOver {
		if o.CountsAsBall() {
			n++
		}
	}
	return n
}

func (s *ScoringState) slot(slot StrikerSlot) string {
	if slot == Batsman2 {
		return s.SelectedBatsman2
	}
	return s.SelectedBatsman1
}

func (s *ScoringState) setSlot(slot StrikerSlot, name string) {
	if slot == Batsman2 {
		s.SelectedBatsman2 = name
		return
	}
	s.SelectedBatsman1 = name
}

func (s *ScoringState) clone() *ScoringState {
	if s == nil {
		return nil
	}
	c := *s
	c.CurrentOver = cloneSlice(s.CurrentOver)
	c.OutBatsmen = cloneSlice(s.OutBatsmen)
	return &c
}

// Snapshot is the match-level state immediately before a ball was applied.
type Snapshot struct {
	Status         MatchStatus   `json:"status"`
	BattingTeam    string        `json:"batting_team"`
	BowlingTeam    string        `json:"bowling_team"`
	CurrentInnings int           `json:"current_innings"`
	Target         *int          `json:"target"`
	ScoringState   *ScoringState `json:"scoring_state"`
}

// Ball is one entry of the append-only history. BallNumber is the 1-6 slot
// in the over: a legal delivery takes the slot it completes, and a wide or
// no-ball carries the slot still to be bowled, so it shares that number with
// the legal delivery that follows it.
type Ball struct {
	ID         string    `json:"id"`
	BallNumber int       `json:"ball_number"`
	OverNumber int       `json:"over_number"`
	Innings    int       `json:"innings"`
	Batsman    string    `json:"batsman"`
	Bowler     string    `json:"bowler"`
	Runs       int       `json:"runs"`
	ExtraRuns  int       `json:"extra_runs"`
	Outcome    Outcome   `json:"outcome"`
	IsExtra    bool      `json:"is_extra"`
	IsWicket   bool      `json:"is_wicket"`
	BowlerRuns int       `json:"bowler_runs"`
	Maiden     bool      `json:"maiden"`
	Before     *Snapshot `json:"before,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Match is the aggregate: both teams, the scoring state and the ball history.
type Match struct {
	MatchCode      string        `json:"match_code"`
	Status         MatchStatus   `json:"status"`
	StartTime      time.Time     `json:"start_time"`
	Venue          string        `json:"venue"`
	Overs          int           `json:"overs"`
	TeamOne        Team          `json:"team_one"`
	TeamTwo        Team          `json:"team_two"`
	TossWinner     string        `json:"toss_winner"`
	TossDecision   TossDecision  `json:"toss_decision"`
	BattingTeam    string        `json:"batting_team"`
	BowlingTeam    string        `json:"bowling_team"`
	Target         *int          `json:"target"`
	CurrentInnings int           `json:"current_innings"`
	ScoringState   *ScoringState `json:"scoring_state"`
	BallHistory    []Ball        `json:"ball_history"`
	CompletedAt    *time.Time    `json:"completed_at"`
}

// Clone returns a deep copy so transitions never alias the input.
func (m *Match) Clone() Match {
	c := *m
	c.TeamOne = cloneTeam(m.TeamOne)
	c.TeamTwo = cloneTeam(m.TeamTwo)
	c.ScoringState = m.ScoringState.clone()
	c.Target = cloneInt(m.Target)
	if m.CompletedAt != nil {
		at := *m.CompletedAt
		c.CompletedAt = &at
	}
	c.BallHistory = cloneSlice(m.BallHistory)
	for i, b := range c.BallHistory {
		if b.Before != nil {
			before := *b.Before
			before.Target = cloneInt(b.Before.Target)
			before.ScoringState = b.Before.ScoringState.clone()
			b.Before = &before
		}
		c.BallHistory[i] = b
	}
	return c
}

// Team returns the side with the given name, or nil.
func (m *Match) Team(name string) *Team {
	switch name {
	case "":
		return nil
	case m.TeamOne.Name:
		return &m.TeamOne
	case m.TeamTwo.Name:
		return &m.TeamTwo
	}
	return nil
}

// Sides resolves the batting and bowling teams by name.
func (m *Match) Sides() (batting, bowling *Team, err error) {
	batting = m.Team(m.BattingTeam)
	bowling = m.Team(m.BowlingTeam)
	if batting == nil || bowling == nil || batting == bowling {
		return nil, nil, invalid(ErrUnknownTeam, fmt.Sprintf("batting %q, bowling %q", m.BattingTeam, m.BowlingTeam))
	}
	return batting, bowling, nil
}

// LastBall returns the most recent history entry.
func (m *Match) LastBall() (Ball, bool) {
	if len(m.BallHistory) == 0 {
		return Ball{}, false
	}
	return m.BallHistory[len(m.BallHistory)-1], true
}

// Validate checks the setup-time invariants: distinct team names, unique
// player names per team, at least two players per side, positive overs.
func (m *Match) Validate() error {
	if m.Overs < 1 {
		return invalid(ErrInvalidMatchSetup, "overs must be at least 1")
	}
	if m.TeamOne.Name == "" || m.TeamTwo.Name == "" {
		return invalid(ErrInvalidMatchSetup, "both teams need a name")
	}
	if m.TeamOne.Name == m.TeamTwo.Name {
		return invalid(ErrInvalidMatchSetup, "team names must differ")
	}
	for _, t := range []*Team{&m.TeamOne, &m.TeamTwo} {
		if len(t.Players) < 2 {
			return invalid(ErrInvalidMatchSetup, fmt.Sprintf("team %q needs at least two players", t.Name))
		}
		seen := make(map[string]bool, len(t.Players))
		for _, p := range t.Players {
			if p.Name == "" {
				return invalid(ErrInvalidMatchSetup, fmt.Sprintf("team %q has a player without a name", t.Name))
			}
			if seen[p.Name] {
				return invalid(ErrInvalidMatchSetup, fmt.Sprintf("duplicate player %q in team %q", p.Name, t.Name))
			}
			seen[p.Name] = true
		}
	}
	return nil
}

func (m *Match) snapshot() *Snapshot {
	return &Snapshot{
		Status:         m.Status,
		BattingTeam:    m.BattingTeam,
		BowlingTeam:    m.BowlingTeam,
		CurrentInnings: m.CurrentInnings,
		Target:         cloneInt(m.Target),
		ScoringState:   m.ScoringState.clone(),
	}
}

func cloneTeam(t Team) Team {
	t.Players = cloneSlice(t.Players)
	return t
}

// cloneSlice copies s, keeping nil as nil.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
