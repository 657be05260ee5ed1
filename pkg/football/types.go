// Package football holds the shared, immutable value types that the rest of
// the analytics core is built on: matches, league parameters, and outcome
// distributions. Nothing in this package performs I/O.
package football

import "strings"

// Match is a single finished-or-pending fixture. Goals are only meaningful
// when IsValidFixture() returns true; callers must not read HomeGoals/AwayGoals
// otherwise.
type Match struct {
	MatchID       string `json:"match_id"`
	LeagueID      uint32 `json:"league_id"`
	SeasonLabel   string `json:"season_label"`
	TimestampUTC  string `json:"timestamp_utc"`
	HomeTeamID    string `json:"home_team_id"`
	AwayTeamID    string `json:"away_team_id"`
	HomeGoals     int    `json:"home_goals"`
	AwayGoals     int    `json:"away_goals"`
	Finished      bool   `json:"finished"`
	Cancelled     bool   `json:"cancelled"`
	Awarded       bool   `json:"awarded"`
	ReasonLongKey string `json:"reason_long_key,omitempty"`
}

// IsValidFixture reports whether this match carries a trustworthy goal
// result: finished, not cancelled, not awarded, and not decided on penalties.
func (m Match) IsValidFixture() bool {
	return m.Finished && !m.Cancelled && !m.Awarded && !m.IsPenaltyDecided()
}

// IsPenaltyDecided reports whether the match reason flags a penalty shootout
// result, which is not reflected in HomeGoals/AwayGoals and must be excluded
// from goal-based fitting.
func (m Match) IsPenaltyDecided() bool {
	return strings.Contains(strings.ToLower(m.ReasonLongKey), "pen")
}

// LessByTimestampThenID orders two matches by (timestamp, match_id), the
// ordering the walk-forward backtester relies on.
func LessByTimestampThenID(a, b Match) bool {
	if a.TimestampUTC != b.TimestampUTC {
		return a.TimestampUTC < b.TimestampUTC
	}
	return a.MatchID < b.MatchID
}

// LeagueParams is the fitted or default parameter set for one league's
// outcome model.
type LeagueParams struct {
	LeagueID           uint32  `json:"league_id"`
	SampleMatches      int     `json:"sample_matches"`
	GoalsTotalBase     float64 `json:"goals_total_base"`
	HomeAdvGoals       float64 `json:"home_adv_goals"`
	DCRho              float64 `json:"dc_rho"`
	PrematchLogitScale float64 `json:"prematch_logit_scale"`
	PrematchDrawBias   float64 `json:"prematch_draw_bias"`
}

// DefaultLeagueParams returns the shrinkage target used whenever a league has
// too few samples to fit confidently.
func DefaultLeagueParams(leagueID uint32) LeagueParams {
	return LeagueParams{
		LeagueID:           leagueID,
		SampleMatches:      0,
		GoalsTotalBase:     2.60,
		HomeAdvGoals:       0.0,
		DCRho:              -0.10,
		PrematchLogitScale: 1.0,
		PrematchDrawBias:   0.0,
	}
}

// Outcome is the result class of a finished match from the home side's
// perspective.
type Outcome int

const (
	OutcomeHome Outcome = iota
	OutcomeDraw
	OutcomeAway
)

// ClassifyOutcome maps a final score to its Outcome.
func ClassifyOutcome(homeGoals, awayGoals int) Outcome {
	switch {
	case homeGoals > awayGoals:
		return OutcomeHome
	case homeGoals < awayGoals:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

// Prob3 is a home/draw/away probability triple.
type Prob3 struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// Uniform3 is the maximally uninformative outcome distribution.
func Uniform3() Prob3 {
	return Prob3{Home: 1.0 / 3, Draw: 1.0 / 3, Away: 1.0 / 3}
}

// At returns the probability assigned to the given outcome.
func (p Prob3) At(o Outcome) float64 {
	switch o {
	case OutcomeHome:
		return p.Home
	case OutcomeAway:
		return p.Away
	default:
		return p.Draw
	}
}

// Argmax returns the outcome with the highest probability.
func (p Prob3) Argmax() Outcome {
	best, bestP := OutcomeHome, p.Home
	if p.Draw > bestP {
		best, bestP = OutcomeDraw, p.Draw
	}
	if p.Away > bestP {
		best = OutcomeAway
	}
	return best
}

// OneHot returns the indicator triple for the realized outcome.
func OneHot(o Outcome) Prob3 {
	switch o {
	case OutcomeHome:
		return Prob3{Home: 1}
	case OutcomeAway:
		return Prob3{Away: 1}
	default:
		return Prob3{Draw: 1}
	}
}
