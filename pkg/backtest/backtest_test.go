package backtest

import (
	"fmt"
	"testing"

	"github.com/jhw/footy-analytics-core/pkg/football"
	"github.com/jhw/footy-analytics-core/pkg/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMatch(i, homeGoals, awayGoals int) football.Match {
	return football.Match{
		MatchID:      fmt.Sprintf("m%04d", i),
		LeagueID:     football.LeaguePremier,
		SeasonLabel:  "2324",
		TimestampUTC: fmt.Sprintf("2023-%02d-01T00:00:00Z", (i%12)+1),
		HomeGoals:    homeGoals,
		AwayGoals:    awayGoals,
		Finished:     true,
	}
}

func TestWalkForwardDependsOnlyOnPriorHistory(t *testing.T) {
	matches := make([]football.Match, 0, 60)
	for i := 0; i < 60; i++ {
		matches = append(matches, makeMatch(i, i%3, (i+2)%3))
	}

	predsFull := WalkForwardPredictions(football.LeaguePremier, matches)

	// Mutate the tail (index >= 30) and confirm prediction 29 is unchanged.
	mutated := append([]football.Match(nil), matches...)
	for i := 30; i < len(mutated); i++ {
		mutated[i].HomeGoals, mutated[i].AwayGoals = mutated[i].AwayGoals, mutated[i].HomeGoals
	}
	predsMutatedTail := WalkForwardPredictions(football.LeaguePremier, mutated)

	assert.Equal(t, predsFull[29].Raw, predsMutatedTail[29].Raw)
}

func TestTrainSplitIndexClampsToValidRange(t *testing.T) {
	assert.Equal(t, 0, TrainSplitIndex(0))
	assert.Equal(t, 1, TrainSplitIndex(1))
	assert.Equal(t, 1, TrainSplitIndex(2))
	idx := TrainSplitIndex(100)
	assert.Equal(t, 85, idx)
}

func TestRunSkipsLeagueBelowMinimumSamples(t *testing.T) {
	matches := []football.Match{makeMatch(0, 1, 0), makeMatch(1, 0, 1)}
	_, ok := Run(football.LeaguePremier, matches, 1200, 0.9)
	assert.False(t, ok)
}

func TestRunProducesGateableReport(t *testing.T) {
	matches := make([]football.Match, 0, 200)
	for i := 0; i < 200; i++ {
		matches = append(matches, makeMatch(i, i%4, (i+1)%4))
	}
	report, ok := Run(football.LeaguePremier, matches, 1200, 0.9)
	require.True(t, ok)
	assert.Equal(t, football.LeaguePremier, report.LeagueID)
	assert.Greater(t, report.Samples, 0)

	err := Gate(report, DefaultMinValidationGain, true)
	assert.NoError(t, err)
}

func TestGateRejectsInsufficientGainWithoutForce(t *testing.T) {
	report := LeagueReport{LeagueID: football.LeaguePremier, ValGain: 0.0, ValGainWeighted: 0.0}
	err := Gate(report, DefaultMinValidationGain, false)
	require.Error(t, err)
	var gateErr *GateError
	assert.ErrorAs(t, err, &gateErr)
}

func TestHighDrawSeriesPushesDrawProbabilityUp(t *testing.T) {
	highDraw := make([]football.Match, 0, 50)
	for i := 0; i < 50; i++ {
		highDraw = append(highDraw, makeMatch(i, 1, 1))
	}
	highDrawReport, ok := Run(football.LeaguePremier, highDraw, 1200, 0.9)
	require.True(t, ok)

	balanced := make([]football.Match, 0, 50)
	for i := 0; i < 50; i++ {
		balanced = append(balanced, makeMatch(i, i%4, (i+1)%4))
	}
	balancedReport, ok := Run(football.LeaguePremier, balanced, 1200, 0.9)
	require.True(t, ok)

	// A higher draw rate is matched by a more negative rho (DCTau(0,0) =
	// 1-lh*la*rho and DCTau(1,1) = 1-rho, so lower rho inflates the two
	// low-score draw cells that feed p_draw and shrinks (0,1) and (1,0)).
	assert.Less(t, highDrawReport.FittedParams.DCRho, balancedReport.FittedParams.DCRho)
	assert.LessOrEqual(t, highDrawReport.FittedParams.DCRho, 0.05)

	highDrawProbs := outcome.ProbsFromParams(
		highDrawReport.FittedParams.GoalsTotalBase,
		highDrawReport.FittedParams.HomeAdvGoals,
		highDrawReport.FittedParams.DCRho,
	)
	balancedProbs := outcome.ProbsFromParams(
		balancedReport.FittedParams.GoalsTotalBase,
		balancedReport.FittedParams.HomeAdvGoals,
		balancedReport.FittedParams.DCRho,
	)
	assert.Greater(t, highDrawProbs.Draw, balancedProbs.Draw)
}
