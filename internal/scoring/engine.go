package scoring

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Engine computes match transitions. It holds no match state; the clock and
// id source are injectable so transitions are reproducible in tests.
type Engine struct {
	Now   func() time.Time
	NewID func() string
}

// NewEngine returns an Engine using the wall clock and random UUIDs.
func NewEngine() *Engine {
	return &Engine{Now: time.Now, NewID: uuid.NewString}
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now().UTC()
	}
	return e.Now().UTC()
}

func (e *Engine) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}

// ApplyBall scores one delivery and returns the next aggregate. On error the
// returned match is the input, unchanged.
func (e *Engine) ApplyBall(m Match, outcome Outcome, extraRuns int) (Match, error) {
	if m.Status != StatusMatchLive {
		return m, invalid(ErrNotLive, string(m.Status))
	}
	if m.ScoringState == nil || !m.ScoringState.Ready() {
		return m, invalid(ErrSelectionPending, "")
	}
	if !outcome.Valid() {
		return m, invalid(ErrUnknownOutcome, fmt.Sprintf("%q", string(outcome)))
	}
	if extraRuns < 0 || extraRuns > MaxExtraRuns {
		return m, invalid(ErrInvalidExtraRuns, fmt.Sprintf("%d not in 0..%d", extraRuns, MaxExtraRuns))
	}

	next := m.Clone()
	batting, bowling, err := next.Sides()
	if err != nil {
		return m, err
	}
	switch {
	case batting.AllOut():
		return m, invalid(ErrAllOut, batting.Name)
	case next.CurrentInnings == 2 && next.Target != nil && batting.TotalScore >= *next.Target:
		return m, invalid(ErrTargetReached, fmt.Sprintf("%d/%d", batting.TotalScore, *next.Target))
	case batting.TotalBalls >= next.Overs*6:
		return m, invalid(ErrOversComplete, batting.Overs())
	}

	res, err := Calculate(outcome, extraRuns)
	if err != nil {
		return m, err
	}

	state := next.ScoringState
	strikerName := state.Striker()
	bowlerName := state.SelectedBowler
	bi := batting.PlayerIndex(strikerName)
	if bi < 0 {
		return m, invalid(ErrInvalidSelection, fmt.Sprintf("striker %q is not in %q", strikerName, batting.Name))
	}
	wi := bowling.PlayerIndex(bowlerName)
	if wi < 0 {
		return m, invalid(ErrInvalidSelection, fmt.Sprintf("bowler %q is not in %q", bowlerName, bowling.Name))
	}

	extras := extrasFor(outcome, res.Runs)
	batting.TotalScore += res.Runs
	batting.Extras += extras
	if res.BallCounts {
		batting.TotalBalls++
	}

	batsman := &batting.Players[bi]
	if res.BallCounts {
		batsman.BallsPlayed++
	}
	// Only the no-ball penalty run is kept off a no-ball; the rest is the batsman's.
	batsman.RunsScored += res.Runs - extras
	if !res.IsExtra {
		switch res.Runs {
		case 4:
			batsman.Fours++
		case 6:
			batsman.Sixes++
		}
	}
	if res.IsWicket {
		batsman.IsOut = true
	}

	bowler := &bowling.Players[wi]
	charged := bowlerCharge(outcome, res.Runs, extraRuns)
	if res.BallCounts {
		bowler.BallsBowled++
	}
	bowler.RunsConceded += charged
	if res.IsWicket {
		bowler.Wickets++
	}

	ball := Ball{
		ID:         e.newID(),
		BallNumber: batting.TotalBalls%6 + 1,
		OverNumber: (batting.TotalBalls-boolInt(res.BallCounts))/6 + 1,
		Innings:    next.CurrentInnings,
		Batsman:    strikerName,
		Bowler:     bowlerName,
		Runs:       res.Runs,
		Outcome:    outcome,
		IsExtra:    res.IsExtra,
		IsWicket:   res.IsWicket,
		BowlerRuns: charged,
		Before:     m.snapshot(),
		Timestamp:  e.now(),
	}
	if res.BallCounts {
		ball.BallNumber = (batting.TotalBalls-1)%6 + 1
	}
	if res.IsExtra {
		ball.ExtraRuns = extraRuns
	}
	next.BallHistory = append(next.BallHistory, ball)

	state.CurrentOver = append(state.CurrentOver, outcome)
	state.ExtraRuns = ball.ExtraRuns

	if res.IsWicket {
		batting.TotalWickets++
		state.OutBatsmen = append(state.OutBatsmen, strikerName)
		state.setSlot(state.CurrentStriker, "")
	} else if res.ShouldRotateStrike {
		state.CurrentStriker = state.CurrentStriker.other()
	}

	oversDone := false
	if state.LegalBallsInOver() >= 6 {
		last := &next.BallHistory[len(next.BallHistory)-1]
		if isMaiden(next.BallHistory, len(state.CurrentOver), bowlerName) {
			bowler.Maidens++
			last.Maiden = true
		}
		state.PreviousBowler = state.SelectedBowler
		state.SelectedBowler = ""
		state.CurrentOver = []Outcome{}
		state.CurrentStriker = state.CurrentStriker.other()
		oversDone = batting.TotalBalls >= next.Overs*6
	}

	inningsOver := batting.AllOut() || oversDone ||
		(!res.IsWicket && next.CurrentInnings == 2 && next.Target != nil && batting.TotalScore >= *next.Target)
	if inningsOver {
		e.closeInnings(&next, batting)
	}
	return next, nil
}

// closeInnings either sets up the chase or finishes the match.
func (e *Engine) closeInnings(m *Match, batting *Team) {
	if m.CurrentInnings == 1 {
		target := batting.TotalScore + 1
		m.Target = &target
		m.BattingTeam, m.BowlingTeam = m.BowlingTeam, m.BattingTeam
		m.CurrentInnings = 2
		m.ScoringState = NewScoringState(2)
		return
	}
	at := e.now()
	m.Status = StatusMatchCompleted
	m.ScoringState = nil
	m.CompletedAt = &at
}

// extrasFor is the part of a delivery's runs credited to extras.
func extrasFor(outcome Outcome, runs int) int {
	switch outcome {
	case OutcomeWide, OutcomeBye, OutcomeLegBye:
		return runs
	case OutcomeNoBall:
		return 1
	}
	return 0
}

// bowlerCharge is what a delivery adds to the bowler's runs conceded. Wides
// charge the penalty only; byes and leg-byes charge nothing.
func bowlerCharge(outcome Outcome, runs, extraRuns int) int {
	switch outcome {
	case OutcomeWide:
		return runs - extraRuns
	case OutcomeBye, OutcomeLegBye:
		return 0
	}
	return runs
}

// isMaiden reports whether the last n deliveries were all bowled by bowler
// without conceding a run.
func isMaiden(history []Ball, n int, bowler string) bool {
	if n > len(history) {
		return false
	}
	for _, b := range history[len(history)-n:] {
		if b.Bowler != bowler || b.BowlerRuns != 0 {
			return false
		}
	}
	return true
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
