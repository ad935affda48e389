package projection

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DhavalSuthar-24/livescore/internal/match"
	"github.com/DhavalSuthar-24/livescore/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *scoring.Engine {
	return &scoring.Engine{
		Now:   func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) },
		NewID: func() string { return "ball" },
	}
}

func liveMatch(t *testing.T, e *scoring.Engine) scoring.Match {
	t.Helper()
	m := scoring.Match{
		MatchCode: "M1",
		Status:    scoring.StatusMatchUpcoming,
		Overs:     2,
		TeamOne: scoring.Team{Name: "Lions", Players: []scoring.Player{
			{Name: "L1"}, {Name: "L2"}, {Name: "L3"},
		}},
		TeamTwo: scoring.Team{Name: "Tigers", Players: []scoring.Player{
			{Name: "T1"}, {Name: "T2"}, {Name: "T3"},
		}},
		BallHistory: []scoring.Ball{},
	}
	for _, a := range []scoring.Action{
		scoring.Toss{Winner: "Lions", Decision: scoring.TossBat},
		scoring.SelectPlayers{Batsman1: "L1", Batsman2: "L2", Bowler: "T1"},
	} {
		var err error
		m, err = e.Apply(m, a)
		require.NoError(t, err)
	}
	return m
}

func TestPreviewMatchesServer(t *testing.T) {
	e := testEngine()
	start := liveMatch(t, e)
	p := New(e, start, 3)

	view, err := p.Preview(scoring.ScoreBall{Outcome: scoring.OutcomeFour})
	require.NoError(t, err)
	assert.Equal(t, 4, view.Team("Lions").TotalScore)
	assert.Equal(t, 1, p.Pending())

	server, err := e.Apply(start, scoring.ScoreBall{Outcome: scoring.OutcomeFour})
	require.NoError(t, err)
	assert.Equal(t, server, p.View())

	confirmed, version := p.Confirmed()
	assert.Equal(t, start, confirmed)
	assert.Equal(t, int64(3), version)
}

func TestPreviewRejected(t *testing.T) {
	e := testEngine()
	p := New(e, liveMatch(t, e), 3)
	before := p.View()

	_, err := p.Preview(scoring.ScoreBall{Outcome: "7"})
	assert.ErrorIs(t, err, scoring.ErrUnknownOutcome)
	assert.Equal(t, before, p.View())
	assert.Zero(t, p.Pending())
}

func TestReconcileOverwritesGuess(t *testing.T) {
	e := testEngine()
	start := liveMatch(t, e)
	p := New(e, start, 3)

	_, err := p.Preview(scoring.ScoreBall{Outcome: scoring.OutcomeSix})
	require.NoError(t, err)

	// Another scorer's ball won the race.
	server, err := e.Apply(start, scoring.ScoreBall{Outcome: scoring.OutcomeOne})
	require.NoError(t, err)
	assert.True(t, p.Reconcile(server, 4))

	view := p.View()
	assert.Equal(t, server, view)
	assert.Equal(t, 1, view.Team("Lions").TotalScore)
	assert.Zero(t, p.Pending())
}

func TestReconcileIgnoresOlderVersions(t *testing.T) {
	e := testEngine()
	start := liveMatch(t, e)
	later, err := e.Apply(start, scoring.ScoreBall{Outcome: scoring.OutcomeTwo})
	require.NoError(t, err)

	p := New(e, later, 4)
	assert.False(t, p.Reconcile(start, 3))
	assert.Equal(t, later, p.View())

	assert.True(t, p.Reconcile(later, 4), "same version is accepted")
}

func TestRollback(t *testing.T) {
	e := testEngine()
	start := liveMatch(t, e)
	p := New(e, start, 3)

	for _, o := range []scoring.Outcome{scoring.OutcomeOne, scoring.OutcomeWide} {
		_, err := p.Preview(scoring.ScoreBall{Outcome: o})
		require.NoError(t, err)
	}
	require.Equal(t, 2, p.Pending())

	p.Rollback()
	assert.Equal(t, start, p.View())
	assert.Zero(t, p.Pending())
}

func TestReconcileEvent(t *testing.T) {
	e := testEngine()
	start := liveMatch(t, e)
	p := New(e, start, 3)

	server, err := e.Apply(start, scoring.ScoreBall{Outcome: scoring.OutcomeNoBall, ExtraRuns: 1})
	require.NoError(t, err)
	row := match.Match{Version: 4, State: server}
	payload, err := json.Marshal(row.ToResponse())
	require.NoError(t, err)

	ok, err := p.ReconcileEvent(payload)
	require.NoError(t, err)
	assert.True(t, ok)
	_, version := p.Confirmed()
	assert.Equal(t, int64(4), version)
	view := p.View()
	assert.Equal(t, 2, view.Team("Lions").TotalScore)

	_, err = p.ReconcileEvent([]byte(`{"match_code":"M1"}`))
	assert.Error(t, err)
	_, err = p.ReconcileEvent([]byte(`not json`))
	assert.Error(t, err)
}
