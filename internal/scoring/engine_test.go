package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	n := 0
	return &Engine{
		Now: func() time.Time { return testTime },
		NewID: func() string {
			n++
			return fmt.Sprintf("ball-%d", n)
		},
	}
}

func newTestMatch(overs, players int) Match {
	team := func(name, prefix string) Team {
		ps := make([]Player, players)
		for i := range ps {
			ps[i] = Player{Name: fmt.Sprintf("%s%d", prefix, i+1)}
		}
		return Team{Name: name, Players: ps}
	}
	return Match{
		MatchCode:   "M1",
		Status:      StatusMatchUpcoming,
		Venue:       "Eden Park",
		Overs:       overs,
		TeamOne:     team("Lions", "L"),
		TeamTwo:     team("Tigers", "T"),
		BallHistory: []Ball{},
	}
}

// startMatch tosses for Lions to bat and puts L1 (on strike), L2 and T1 in.
func startMatch(t *testing.T, e *Engine, overs, players int) Match {
	t.Helper()
	m, err := e.Toss(newTestMatch(overs, players), "Lions", TossBat)
	require.NoError(t, err)
	return ready(t, e, m)
}

// ready fills any empty crease or bowling slot with the first eligible player.
func ready(t *testing.T, e *Engine, m Match) Match {
	t.Helper()
	s := m.ScoringState
	if s == nil || s.Ready() {
		return m
	}
	batting, bowling, err := m.Sides()
	require.NoError(t, err)

	var sel SelectPlayers
	for _, p := range batting.Players {
		if p.IsOut || p.Name == s.SelectedBatsman1 || p.Name == s.SelectedBatsman2 {
			continue
		}
		if s.SelectedBatsman1 == "" && sel.Batsman1 == "" {
			sel.Batsman1 = p.Name
		} else if s.SelectedBatsman2 == "" && sel.Batsman2 == "" {
			sel.Batsman2 = p.Name
		}
	}
	if s.SelectedBowler == "" {
		for _, p := range bowling.Players {
			if p.Name != s.PreviousBowler {
				sel.Bowler = p.Name
				break
			}
		}
	}
	next, err := e.SelectPlayers(m, sel)
	require.NoError(t, err)
	return next
}

type delivery struct {
	outcome Outcome
	extra   int
}

func balls(outcomes ...Outcome) []delivery {
	ds := make([]delivery, len(outcomes))
	for i, o := range outcomes {
		ds[i] = delivery{outcome: o}
	}
	return ds
}

func play(t *testing.T, e *Engine, m Match, ds ...delivery) Match {
	t.Helper()
	for i, d := range ds {
		require.Equal(t, StatusMatchLive, m.Status, "delivery %d", i)
		m = ready(t, e, m)
		var err error
		m, err = e.ApplyBall(m, d.outcome, d.extra)
		require.NoError(t, err, "delivery %d (%s+%d)", i, d.outcome, d.extra)
	}
	return m
}

func TestApplyBallRuns(t *testing.T) {
	e := testEngine()
	m := startMatch(t, e, 2, 4)

	m = play(t, e, m, balls(OutcomeFour, OutcomeOne)...)

	lions := m.Team("Lions")
	assert.Equal(t, 5, lions.TotalScore)
	assert.Equal(t, 2, lions.TotalBalls)
	assert.Equal(t, 0, lions.Extras)
	assert.Equal(t, 5, lions.Players[0].RunsScored)
	assert.Equal(t, 2, lions.Players[0].BallsPlayed)
	assert.Equal(t, 1, lions.Players[0].Fours)

	bowler := m.Team("Tigers").Players[0]
	assert.Equal(t, 5, bowler.RunsConceded)
	assert.Equal(t, 2, bowler.BallsBowled)

	assert.Equal(t, Batsman2, m.ScoringState.CurrentStriker)
	assert.Equal(t, []Outcome{OutcomeFour, OutcomeOne}, m.ScoringState.CurrentOver)
	require.Len(t, m.BallHistory, 2)
	assert.Equal(t, Ball{
		ID: "ball-2", BallNumber: 2, OverNumber: 1, Innings: 1,
		Batsman: "L1", Bowler: "T1", Runs: 1, Outcome: OutcomeOne, BowlerRuns: 1,
		Before: m.BallHistory[1].Before, Timestamp: testTime,
	}, m.BallHistory[1])
}

func TestApplyBallWide(t *testing.T) {
	e := testEngine()
	m := startMatch(t, e, 2, 4)
	lions := m.Team("Lions")
	lions.TotalScore, lions.TotalBalls = 10, 6

	next, err := e.ApplyBall(m, OutcomeWide, 2)
	require.NoError(t, err)

	lions = next.Team("Lions")
	assert.Equal(t, 13, lions.TotalScore)
	assert.Equal(t, 3, lions.Extras)
	assert.Equal(t, 6, lions.TotalBalls)
	assert.Equal(t, 0, lions.Players[0].RunsScored)
	assert.Equal(t, 0, lions.Players[0].BallsPlayed)

	bowler := next.Team("Tigers").Players[0]
	assert.Equal(t, 1, bowler.RunsConceded)
	assert.Equal(t, 0, bowler.BallsBowled)

	assert.Equal(t, Batsman1, next.ScoringState.CurrentStriker)
	assert.Equal(t, 2, next.ScoringState.ExtraRuns)
	last, _ := next.LastBall()
	assert.Equal(t, 3, last.Runs)
	assert.Equal(t, 2, last.ExtraRuns)
	assert.Equal(t, 1, last.BowlerRuns)
	assert.Equal(t, 1, last.BallNumber)
	assert.Equal(t, 2, last.OverNumber)
}

func TestApplyBallNoBall(t *testing.T) {
	e := testEngine()
	m := play(t, e, startMatch(t, e, 2, 4), delivery{OutcomeNoBall, 3})

	lions := m.Team("Lions")
	assert.Equal(t, 4, lions.TotalScore)
	assert.Equal(t, 1, lions.Extras)
	assert.Equal(t, 0, lions.TotalBalls)
	assert.Equal(t, 3, lions.Players[0].RunsScored)
	assert.Equal(t, 0, lions.Players[0].BallsPlayed)
	assert.Equal(t, 4, m.Team("Tigers").Players[0].RunsConceded)
	assert.Equal(t, Batsman2, m.ScoringState.CurrentStriker)
}

func TestApplyBallByes(t *testing.T) {
	e := testEngine()
	m := play(t, e, startMatch(t, e, 2, 4), delivery{OutcomeLegBye, 1}, delivery{OutcomeBye, 4})

	lions := m.Team("Lions")
	assert.Equal(t, 5, lions.TotalScore)
	assert.Equal(t, 5, lions.Extras)
	assert.Equal(t, 2, lions.TotalBalls)
	assert.Equal(t, 0, lions.Players[0].RunsScored+lions.Players[1].RunsScored)
	assert.Equal(t, 0, lions.Players[1].Fours)

	bowler := m.Team("Tigers").Players[0]
	assert.Equal(t, 0, bowler.RunsConceded)
	assert.Equal(t, 2, bowler.BallsBowled)
}

func TestApplyBallOverCompletion(t *testing.T) {
	e := testEngine()
	m := play(t, e, startMatch(t, e, 3, 4), balls(OutcomeDot, OutcomeDot, OutcomeDot, OutcomeDot, OutcomeDot, OutcomeDot)...)

	s := m.ScoringState
	assert.Empty(t, s.SelectedBowler)
	assert.Equal(t, "T1", s.PreviousBowler)
	assert.Empty(t, s.CurrentOver)
	assert.Equal(t, Batsman2, s.CurrentStriker)
	assert.Equal(t, 1, m.Team("Tigers").Players[0].Maidens)
	last, _ := m.LastBall()
	assert.True(t, last.Maiden)
	assert.Equal(t, 6, last.BallNumber)
	assert.Equal(t, 1, last.OverNumber)

	_, err := e.ApplyBall(m, OutcomeDot, 0)
	assert.ErrorIs(t, err, ErrSelectionPending)

	_, err = e.SelectPlayers(m, SelectPlayers{Bowler: "T1"})
	assert.ErrorIs(t, err, ErrConsecutiveOvers)

	m, err = e.SelectPlayers(m, SelectPlayers{Bowler: "T2"})
	require.NoError(t, err)
	m, err = e.ApplyBall(m, OutcomeOne, 0)
	require.NoError(t, err)
	last, _ = m.LastBall()
	assert.Equal(t, 2, last.OverNumber)
	assert.Equal(t, 1, last.BallNumber)
	assert.Equal(t, "L2", last.Batsman)
}

func TestApplyBallOverEndsWithSingle(t *testing.T) {
	e := testEngine()
	m := play(t, e, startMatch(t, e, 3, 4), balls(OutcomeDot, OutcomeDot, OutcomeDot, OutcomeDot, OutcomeDot, OutcomeOne)...)

	assert.Equal(t, Batsman1, m.ScoringState.CurrentStriker)
	assert.Equal(t, 0, m.Team("Tigers").Players[0].Maidens)
	last, _ := m.LastBall()
	assert.False(t, last.Maiden)
}

func TestApplyBallOverCompletionMixed(t *testing.T) {
	e := testEngine()
	m := startMatch(t, e, 3, 4)
	before := m.Team("Lions").TotalBalls

	m = play(t, e, m, balls(OutcomeOne, OutcomeFour, OutcomeWicket)...)
	require.False(t, m.ScoringState.Ready())
	var err error
	m, err = e.SelectPlayers(m, SelectPlayers{Batsman2: "L3"})
	require.NoError(t, err)
	m = play(t, e, m, balls(OutcomeSix, OutcomeTwo, OutcomeDot)...)

	lions := m.Team("Lions")
	assert.Equal(t, before+6, lions.TotalBalls)
	assert.Equal(t, 13, lions.TotalScore)
	assert.Equal(t, 1, lions.TotalWickets)

	s := m.ScoringState
	assert.Equal(t, "T1", s.PreviousBowler)
	assert.Empty(t, s.CurrentOver)
	assert.Empty(t, s.SelectedBowler)
	assert.Equal(t, 0, m.Team("Tigers").Players[0].Maidens)
	assert.Equal(t, 6, m.Team("Tigers").Players[0].BallsBowled)
}

func TestBallNumbersWithExtras(t *testing.T) {
	e := testEngine()
	m := play(t, e, startMatch(t, e, 3, 4),
		delivery{OutcomeWide, 0},
		delivery{OutcomeOne, 0},
		delivery{OutcomeDot, 0},
		delivery{OutcomeNoBall, 0},
		delivery{OutcomeDot, 0},
	)

	var numbers []int
	for _, b := range m.BallHistory {
		numbers = append(numbers, b.BallNumber)
		assert.Equal(t, 1, b.OverNumber)
	}
	assert.Equal(t, []int{1, 1, 2, 3, 3}, numbers)
}

func TestApplyBallWicket(t *testing.T) {
	e := testEngine()
	m := startMatch(t, e, 2, 4)

	m, err := e.ApplyBall(m, OutcomeWicket, 0)
	require.NoError(t, err)

	s := m.ScoringState
	assert.Empty(t, s.SelectedBatsman1)
	assert.Equal(t, "L2", s.SelectedBatsman2)
	assert.Equal(t, []string{"L1"}, s.OutBatsmen)
	assert.False(t, s.Ready())
	assert.True(t, m.Team("Lions").Players[0].IsOut)
	assert.Equal(t, 1, m.Team("Lions").TotalWickets)
	assert.Equal(t, 1, m.Team("Tigers").Players[0].Wickets)

	_, err = e.ApplyBall(m, OutcomeDot, 0)
	assert.ErrorIs(t, err, ErrSelectionPending)

	_, err = e.SelectPlayers(m, SelectPlayers{Batsman1: "L1"})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	m, err = e.SelectPlayers(m, SelectPlayers{Batsman1: "L3"})
	require.NoError(t, err)
	assert.Equal(t, "L3", m.ScoringState.Striker())
}

func TestAllOutEndsFirstInnings(t *testing.T) {
	e := testEngine()
	m := play(t, e, startMatch(t, e, 5, 3), balls(OutcomeFour, OutcomeWicket, OutcomeWicket)...)

	assert.Equal(t, StatusMatchLive, m.Status)
	assert.Equal(t, 2, m.CurrentInnings)
	require.NotNil(t, m.Target)
	assert.Equal(t, 5, *m.Target)
	assert.Equal(t, "Tigers", m.BattingTeam)
	assert.Equal(t, "Lions", m.BowlingTeam)
	assert.Equal(t, NewScoringState(2), m.ScoringState)

	_, err := e.ApplyBall(m, OutcomeDot, 0)
	assert.ErrorIs(t, err, ErrSelectionPending)
}

func TestOversEndFirstInnings(t *testing.T) {
	e := testEngine()
	m := startMatch(t, e, 1, 4)
	lions := m.Team("Lions")
	lions.TotalScore, lions.TotalBalls = 150, 5
	m.ScoringState.CurrentOver = []Outcome{OutcomeDot, OutcomeDot, OutcomeDot, OutcomeDot, OutcomeDot}

	m, err := e.ApplyBall(m, OutcomeDot, 0)
	require.NoError(t, err)

	require.NotNil(t, m.Target)
	assert.Equal(t, 151, *m.Target)
	assert.Equal(t, "Tigers", m.BattingTeam)
	assert.Equal(t, 2, m.CurrentInnings)
	assert.Equal(t, 2, m.ScoringState.CurrentInnings)
}

func TestChaseCompletesMatch(t *testing.T) {
	first := func(t *testing.T, e *Engine) Match {
		return play(t, e, startMatch(t, e, 5, 3), balls(OutcomeFour, OutcomeWicket, OutcomeWicket)...)
	}

	tests := []struct {
		name  string
		chase []Outcome
		want  MatchResult
	}{
		{
			name:  "target reached",
			chase: []Outcome{OutcomeFour, OutcomeOne},
			want:  MatchResult{Winner: "Tigers", Kind: WonByWickets, Margin: 2, Summary: "Tigers won by 2 wickets"},
		},
		{
			name:  "all out short",
			chase: []Outcome{OutcomeWicket, OutcomeWicket},
			want:  MatchResult{Winner: "Lions", Kind: WonByRuns, Margin: 4, Summary: "Lions won by 4 runs"},
		},
		{
			name:  "tie",
			chase: []Outcome{OutcomeFour, OutcomeWicket, OutcomeWicket},
			want:  MatchResult{Kind: Tied, Summary: "Match tied"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEngine()
			m := first(t, e)
			_, ok := m.Result()
			assert.False(t, ok)

			m = play(t, e, m, balls(tt.chase...)...)

			assert.Equal(t, StatusMatchCompleted, m.Status)
			assert.Nil(t, m.ScoringState)
			require.NotNil(t, m.CompletedAt)
			assert.Equal(t, testTime, *m.CompletedAt)
			got, ok := m.Result()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)

			_, err := e.ApplyBall(m, OutcomeDot, 0)
			assert.ErrorIs(t, err, ErrNotLive)
		})
	}
}

func TestApplyBallRejects(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name    string
		setup   func(m *Match)
		outcome Outcome
		extra   int
		want    error
	}{
		{name: "unknown outcome", outcome: "7", want: ErrUnknownOutcome},
		{name: "extra runs too high", outcome: OutcomeWide, extra: MaxExtraRuns + 1, want: ErrInvalidExtraRuns},
		{name: "negative extra runs", outcome: OutcomeBye, extra: -1, want: ErrInvalidExtraRuns},
		{
			name:    "not live",
			setup:   func(m *Match) { m.Status = StatusMatchUpcoming },
			outcome: OutcomeDot, want: ErrNotLive,
		},
		{
			name:    "no bowler",
			setup:   func(m *Match) { m.ScoringState.SelectedBowler = "" },
			outcome: OutcomeDot, want: ErrSelectionPending,
		},
		{
			name:    "no state",
			setup:   func(m *Match) { m.ScoringState = nil },
			outcome: OutcomeDot, want: ErrSelectionPending,
		},
		{
			name:    "all out",
			setup:   func(m *Match) { m.Team("Lions").TotalWickets = 3 },
			outcome: OutcomeDot, want: ErrAllOut,
		},
		{
			name:    "overs complete",
			setup:   func(m *Match) { m.Team("Lions").TotalBalls = 12 },
			outcome: OutcomeWide, want: ErrOversComplete,
		},
		{
			name: "target reached",
			setup: func(m *Match) {
				target := 20
				m.Target = &target
				m.CurrentInnings = 2
				m.Team("Lions").TotalScore = 20
			},
			outcome: OutcomeDot, want: ErrTargetReached,
		},
		{
			name:    "unknown batting team",
			setup:   func(m *Match) { m.BattingTeam = "Bears" },
			outcome: OutcomeDot, want: ErrUnknownTeam,
		},
		{
			name:    "striker not on roster",
			setup:   func(m *Match) { m.ScoringState.SelectedBatsman1 = "Nobody" },
			outcome: OutcomeDot, want: ErrInvalidSelection,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := startMatch(t, e, 2, 4)
			if tt.setup != nil {
				tt.setup(&m)
			}
			before := m.Clone()

			got, err := e.ApplyBall(m, tt.outcome, tt.extra)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidation(err))
			assert.Equal(t, before, got)
			assert.Equal(t, before, m)
		})
	}
}

func TestApplyBallDoesNotAliasInput(t *testing.T) {
	e := testEngine()
	m := play(t, e, startMatch(t, e, 2, 4), balls(OutcomeOne)...)
	before := m.Clone()

	_, err := e.ApplyBall(m, OutcomeWicket, 0)
	require.NoError(t, err)
	assert.Equal(t, before, m)
}

// scriptedInnings crosses an over boundary, an innings boundary and every
// kind of extra.
var scriptedInnings = []delivery{
	{OutcomeOne, 0}, {OutcomeFour, 0}, {OutcomeWicket, 0}, {OutcomeWide, 1}, {OutcomeNoBall, 2}, {OutcomeDot, 0}, {OutcomeTwo, 0},
	{OutcomeSix, 0}, {OutcomeBye, 1}, {OutcomeLegBye, 0}, {OutcomeDot, 0}, {OutcomeOne, 0}, {OutcomeThree, 0},
	{OutcomeFour, 0}, {OutcomeWicket, 0}, {OutcomeDot, 0}, {OutcomeWide, 4}, {OutcomeOne, 0},
}

func TestScoreConservation(t *testing.T) {
	e := testEngine()
	m := startMatch(t, e, 2, 4)

	for _, d := range scriptedInnings {
		innings := m.CurrentInnings
		batting := m.BattingTeam
		m = play(t, e, m, d)

		team := m.Team(batting)
		sum := team.Extras
		for _, p := range team.Players {
			sum += p.RunsScored
		}
		assert.Equal(t, team.TotalScore, sum, "after %s+%d", d.outcome, d.extra)

		fromHistory := 0
		for _, b := range m.BallHistory {
			if b.Innings == innings {
				fromHistory += b.Runs
			}
		}
		assert.Equal(t, team.TotalScore, fromHistory)
	}
	assert.Equal(t, 2, m.CurrentInnings)
	assert.Equal(t, 28, *m.Target)
}
