package scoring

import "fmt"

// Outcome is the raw signal a scorer sends for one delivery.
type Outcome string

const (
	OutcomeDot    Outcome = "0"
	OutcomeOne    Outcome = "1"
	OutcomeTwo    Outcome = "2"
	OutcomeThree  Outcome = "3"
	OutcomeFour   Outcome = "4"
	OutcomeFive   Outcome = "5"
	OutcomeSix    Outcome = "6"
	OutcomeWicket Outcome = "W"
	OutcomeWide   Outcome = "WD"
	OutcomeNoBall Outcome = "NB"
	OutcomeBye    Outcome = "B"
	OutcomeLegBye Outcome = "LB"
)

// Outcomes lists every accepted signal in display order.
var Outcomes = []Outcome{
	OutcomeDot, OutcomeOne, OutcomeTwo, OutcomeThree, OutcomeFour, OutcomeFive, OutcomeSix,
	OutcomeWicket, OutcomeWide, OutcomeNoBall, OutcomeBye, OutcomeLegBye,
}

// MaxExtraRuns caps the runs batsmen can take off an extra.
const MaxExtraRuns = 7

// Valid reports whether o is one of the known signals.
func (o Outcome) Valid() bool {
	for _, known := range Outcomes {
		if o == known {
			return true
		}
	}
	return false
}

// CountsAsBall reports whether a delivery with this outcome is a legal ball.
// Byes and leg-byes count; wides and no-balls don't.
func (o Outcome) CountsAsBall() bool {
	return o != OutcomeWide && o != OutcomeNoBall
}

// Result is the normalized effect of a single delivery.
type Result struct {
	Runs               int  `json:"runs"`
	IsWicket           bool `json:"is_wicket"`
	IsExtra            bool `json:"is_extra"`
	BallCounts         bool `json:"ball_counts"`
	ShouldRotateStrike bool `json:"should_rotate_strike"`
}

// Calculate maps an outcome and the runs the batsmen ran off an extra to a
// Result. extraRuns is ignored for non-extra outcomes.
func Calculate(outcome Outcome, extraRuns int) (Result, error) {
	switch outcome {
	case OutcomeDot:
		return Result{BallCounts: true}, nil
	case OutcomeOne, OutcomeThree, OutcomeFive:
		return Result{Runs: runValue(outcome), BallCounts: true, ShouldRotateStrike: true}, nil
	case OutcomeTwo, OutcomeFour, OutcomeSix:
		return Result{Runs: runValue(outcome), BallCounts: true}, nil
	case OutcomeWicket:
		return Result{IsWicket: true, BallCounts: true}, nil
	case OutcomeWide, OutcomeNoBall:
		return Result{
			Runs:               1 + extraRuns,
			IsExtra:            true,
			ShouldRotateStrike: extraRuns%2 == 1,
		}, nil
	case OutcomeBye, OutcomeLegBye:
		return Result{
			Runs:               extraRuns,
			IsExtra:            true,
			BallCounts:         true,
			ShouldRotateStrike: extraRuns%2 == 1,
		}, nil
	}
	return Result{}, invalid(ErrUnknownOutcome, fmt.Sprintf("%q", string(outcome)))
}

func runValue(o Outcome) int {
	return int(o[0] - '0')
}
