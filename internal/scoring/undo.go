package scoring

import "fmt"

// UndoLastBall removes the most recent delivery and reverses everything it
// did. Entries recorded with a pre-ball snapshot restore strike, over and
// innings state exactly; older entries fall back to a best-effort rewind.
func (e *Engine) UndoLastBall(m Match) (Match, error) {
	last, ok := m.LastBall()
	if !ok {
		return m, invalid(ErrNoHistory, "")
	}

	next := m.Clone()
	battingName, bowlingName := next.BattingTeam, next.BowlingTeam
	if last.Before != nil {
		battingName, bowlingName = last.Before.BattingTeam, last.Before.BowlingTeam
	}
	batting, bowling := next.Team(battingName), next.Team(bowlingName)
	if batting == nil || bowling == nil {
		return m, invalid(ErrUnknownTeam, fmt.Sprintf("batting %q, bowling %q", battingName, bowlingName))
	}
	bi := batting.PlayerIndex(last.Batsman)
	if bi < 0 {
		return m, fmt.Errorf("%w: batsman %q in %q", ErrPlayerNotFound, last.Batsman, batting.Name)
	}
	wi := bowling.PlayerIndex(last.Bowler)
	if wi < 0 {
		return m, fmt.Errorf("%w: bowler %q in %q", ErrPlayerNotFound, last.Bowler, bowling.Name)
	}

	ballCounts := last.Outcome.CountsAsBall()
	extras := extrasFor(last.Outcome, last.Runs)

	batsman := &batting.Players[bi]
	if ballCounts {
		batsman.BallsPlayed = floor0(batsman.BallsPlayed - 1)
	}
	batsman.RunsScored = floor0(batsman.RunsScored - (last.Runs - extras))
	if !last.IsExtra {
		switch last.Runs {
		case 4:
			batsman.Fours = floor0(batsman.Fours - 1)
		case 6:
			batsman.Sixes = floor0(batsman.Sixes - 1)
		}
	}

	bowler := &bowling.Players[wi]
	if ballCounts {
		bowler.BallsBowled = floor0(bowler.BallsBowled - 1)
	}
	charged := last.BowlerRuns
	if last.Before == nil {
		// Entries without a snapshot never recorded the bowler's charge.
		charged = last.Runs
	}
	bowler.RunsConceded = floor0(bowler.RunsConceded - charged)
	if last.Maiden {
		bowler.Maidens = floor0(bowler.Maidens - 1)
	}

	if last.IsWicket {
		batsman.IsOut = false
		bowler.Wickets = floor0(bowler.Wickets - 1)
		batting.TotalWickets = floor0(batting.TotalWickets - 1)
	}
	batting.TotalScore = floor0(batting.TotalScore - last.Runs)
	batting.Extras = floor0(batting.Extras - extras)
	if ballCounts {
		batting.TotalBalls = floor0(batting.TotalBalls - 1)
	}

	if before := last.Before; before != nil {
		next.Status = before.Status
		next.BattingTeam = before.BattingTeam
		next.BowlingTeam = before.BowlingTeam
		next.CurrentInnings = before.CurrentInnings
		next.Target = cloneInt(before.Target)
		next.ScoringState = before.ScoringState.clone()
	} else {
		rewindState(next.ScoringState, last)
	}
	if next.Status != StatusMatchCompleted {
		next.CompletedAt = nil
	}
	next.BallHistory = next.BallHistory[:len(next.BallHistory)-1]
	return next, nil
}

// rewindState is the fallback for history entries without a snapshot. The
// striker is left where it is.
func rewindState(s *ScoringState, last Ball) {
	if s == nil {
		return
	}
	if n := len(s.CurrentOver); n > 0 {
		s.CurrentOver = s.CurrentOver[:n-1]
	}
	if !last.IsWicket || len(s.OutBatsmen) == 0 {
		return
	}
	name := s.OutBatsmen[len(s.OutBatsmen)-1]
	s.OutBatsmen = s.OutBatsmen[:len(s.OutBatsmen)-1]
	switch {
	case s.SelectedBatsman1 == "":
		s.SelectedBatsman1 = name
	case s.SelectedBatsman2 == "":
		s.SelectedBatsman2 = name
	}
}

func floor0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
