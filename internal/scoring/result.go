package scoring

import "fmt"

type ResultKind string

const (
	WonByRuns    ResultKind = "runs"
	WonByWickets ResultKind = "wickets"
	Tied         ResultKind = "tie"
)

// MatchResult describes how a completed match was decided.
type MatchResult struct {
	Winner  string     `json:"winner,omitempty"`
	Kind    ResultKind `json:"kind"`
	Margin  int        `json:"margin"`
	Summary string     `json:"summary"`
}

// Result decides a completed match. The second return is false while the
// match is still in play.
func (m *Match) Result() (MatchResult, bool) {
	if m.Status != StatusMatchCompleted || m.Target == nil {
		return MatchResult{}, false
	}
	chasing, defending, err := m.Sides()
	if err != nil {
		return MatchResult{}, false
	}
	target := *m.Target
	switch {
	case chasing.TotalScore >= target:
		margin := len(chasing.Players) - 1 - chasing.TotalWickets
		return MatchResult{
			Winner:  chasing.Name,
			Kind:    WonByWickets,
			Margin:  margin,
			Summary: fmt.Sprintf("%s won by %s", chasing.Name, plural(margin, "wicket")),
		}, true
	case chasing.TotalScore == target-1:
		return MatchResult{Kind: Tied, Summary: "Match tied"}, true
	}
	margin := target - 1 - chasing.TotalScore
	return MatchResult{
		Winner:  defending.Name,
		Kind:    WonByRuns,
		Margin:  margin,
		Summary: fmt.Sprintf("%s won by %s", defending.Name, plural(margin, "run")),
	}, true
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
