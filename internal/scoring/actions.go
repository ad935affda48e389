package scoring

import "fmt"

// Action is one of the scoring commands a client can submit: Toss,
// SelectPlayers, ScoreBall or UndoBall.
type Action interface {
	Name() string
	isAction()
}

type Toss struct {
	Winner   string       `json:"winner"`
	Decision TossDecision `json:"decision"`
}

// SelectPlayers fills the crease and bowling slots. Empty fields keep the
// current selection.
type SelectPlayers struct {
	Batsman1 string      `json:"batsman1"`
	Batsman2 string      `json:"batsman2"`
	Bowler   string      `json:"bowler"`
	Striker  StrikerSlot `json:"striker"`
}

type ScoreBall struct {
	Outcome   Outcome `json:"outcome"`
	ExtraRuns int     `json:"extraRuns"`
}

type UndoBall struct{}

func (Toss) Name() string          { return "toss" }
func (SelectPlayers) Name() string { return "select_players" }
func (ScoreBall) Name() string     { return "ball" }
func (UndoBall) Name() string      { return "undo" }

func (Toss) isAction()          {}
func (SelectPlayers) isAction() {}
func (ScoreBall) isAction()     {}
func (UndoBall) isAction()      {}

// Apply dispatches an action to the matching transition.
func (e *Engine) Apply(m Match, a Action) (Match, error) {
	switch a := a.(type) {
	case Toss:
		return e.Toss(m, a.Winner, a.Decision)
	case SelectPlayers:
		return e.SelectPlayers(m, a)
	case ScoreBall:
		return e.ApplyBall(m, a.Outcome, a.ExtraRuns)
	case UndoBall:
		return e.UndoLastBall(m)
	case nil:
		return m, invalid(ErrUnknownAction, "nil")
	}
	return m, invalid(ErrUnknownAction, fmt.Sprintf("%T", a))
}

// Toss records the toss and starts the first innings.
func (e *Engine) Toss(m Match, winner string, decision TossDecision) (Match, error) {
	if m.Status != StatusMatchUpcoming {
		return m, invalid(ErrNotUpcoming, string(m.Status))
	}
	if decision != TossBat && decision != TossBowl {
		return m, invalid(ErrInvalidDecision, string(decision))
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	if m.Team(winner) == nil {
		return m, invalid(ErrUnknownTeam, winner)
	}
	loser := m.TeamOne.Name
	if winner == loser {
		loser = m.TeamTwo.Name
	}

	next := m.Clone()
	next.TossWinner = winner
	next.TossDecision = decision
	next.BattingTeam, next.BowlingTeam = winner, loser
	if decision == TossBowl {
		next.BattingTeam, next.BowlingTeam = loser, winner
	}
	next.Status = StatusMatchLive
	next.CurrentInnings = 1
	next.Target = nil
	next.ScoringState = NewScoringState(1)
	if next.StartTime.IsZero() {
		next.StartTime = e.now()
	}
	return next, nil
}

// SelectPlayers applies a crease or bowling change. A new bowler may not be
// the one who bowled the previous over.
func (e *Engine) SelectPlayers(m Match, sel SelectPlayers) (Match, error) {
	if m.Status != StatusMatchLive || m.ScoringState == nil {
		return m, invalid(ErrNotLive, string(m.Status))
	}
	if sel.Striker != "" && sel.Striker != Batsman1 && sel.Striker != Batsman2 {
		return m, invalid(ErrInvalidSelection, fmt.Sprintf("striker must be %q or %q", Batsman1, Batsman2))
	}

	next := m.Clone()
	batting, bowling, err := next.Sides()
	if err != nil {
		return m, err
	}
	s := next.ScoringState
	if sel.Batsman1 != "" {
		s.SelectedBatsman1 = sel.Batsman1
	}
	if sel.Batsman2 != "" {
		s.SelectedBatsman2 = sel.Batsman2
	}
	if sel.Striker != "" {
		s.CurrentStriker = sel.Striker
	}

	for _, name := range []string{sel.Batsman1, sel.Batsman2} {
		if name == "" {
			continue
		}
		i := batting.PlayerIndex(name)
		if i < 0 {
			return m, invalid(ErrInvalidSelection, fmt.Sprintf("%q does not bat for %q", name, batting.Name))
		}
		if batting.Players[i].IsOut {
			return m, invalid(ErrInvalidSelection, fmt.Sprintf("%q is already out", name))
		}
	}
	if s.SelectedBatsman1 != "" && s.SelectedBatsman1 == s.SelectedBatsman2 {
		return m, invalid(ErrInvalidSelection, "batsmen must be different players")
	}

	if sel.Bowler != "" {
		if bowling.PlayerIndex(sel.Bowler) < 0 {
			return m, invalid(ErrInvalidSelection, fmt.Sprintf("%q does not bowl for %q", sel.Bowler, bowling.Name))
		}
		if sel.Bowler == s.PreviousBowler {
			return m, invalid(ErrConsecutiveOvers, sel.Bowler)
		}
		s.SelectedBowler = sel.Bowler
	}
	return next, nil
}
