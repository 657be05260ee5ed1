// Package leagueparams fits per-league outcome-model parameters from a set
// of finished matches: total goals, home advantage, the Dixon-Coles rho, and
// the logistic calibration (scale, draw bias). Fitting is pure and
// deterministic given an input ordering and weight vector.
package leagueparams

import (
	"math"

	"github.com/jhw/footy-analytics-core/pkg/football"
	"github.com/jhw/footy-analytics-core/pkg/outcome"
)

// MinSampleSize is the sample count at which shrinkage toward the defaults
// fully relaxes.
const MinSampleSize = 200.0

// Compute fits LeagueParams for a single league from its (already
// league-filtered) finished matches. Invalid fixtures (unfinished, cancelled,
// awarded, or penalty-decided) are excluded before weighting.
func Compute(leagueID uint32, matches []football.Match) football.LeagueParams {
	filtered := make([]football.Match, 0, len(matches))
	for _, m := range matches {
		if m.LeagueID == leagueID && m.IsValidFixture() {
			filtered = append(filtered, m)
		}
	}

	out := football.DefaultLeagueParams(leagueID)
	out.SampleMatches = len(filtered)
	if len(filtered) == 0 {
		return out
	}

	weights := BuildRecencyWeights(filtered, DefaultHalfLifeMatches, DefaultSeasonDecay)

	var weightSum, totalGoalsW, homeMinusAwayW, drawW float64
	outcomes := make([]football.Outcome, len(filtered))
	for i, m := range filtered {
		w := weights[i]
		if w < 1e-9 {
			w = 1e-9
		}
		weightSum += w
		homeGoals, awayGoals := float64(m.HomeGoals), float64(m.AwayGoals)
		totalGoalsW += w * (homeGoals + awayGoals)
		homeMinusAwayW += w * (homeGoals - awayGoals)
		if m.HomeGoals == m.AwayGoals {
			drawW += w
		}
		outcomes[i] = football.ClassifyOutcome(m.HomeGoals, m.AwayGoals)
	}

	if weightSum > 0 {
		out.GoalsTotalBase = totalGoalsW / weightSum
		out.HomeAdvGoals = homeMinusAwayW / weightSum
	}

	shrink := clamp(float64(len(filtered))/MinSampleSize, 0, 1)
	defaults := football.DefaultLeagueParams(leagueID)
	out.GoalsTotalBase = (1-shrink)*defaults.GoalsTotalBase + shrink*out.GoalsTotalBase
	out.HomeAdvGoals = (1-shrink)*defaults.HomeAdvGoals + shrink*out.HomeAdvGoals

	drawRate := 0.25
	if weightSum > 0 {
		drawRate = clamp(drawW/weightSum, 0.05, 0.60)
	}
	out.DCRho = FitDCRhoToDrawRate(out.GoalsTotalBase, out.HomeAdvGoals, drawRate)

	base := outcome.ProbsFromParams(out.GoalsTotalBase, out.HomeAdvGoals, out.DCRho)
	baseSeries := make([]football.Prob3, len(outcomes))
	for i := range baseSeries {
		baseSeries[i] = base
	}
	scale, drawBias, _ := FitLogitCalibrationWeighted(baseSeries, outcomes, weights)
	out.PrematchLogitScale = scale
	out.PrematchDrawBias = drawBias

	return out
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// FitDCRhoToDrawRate grid-searches rho in [-0.25, 0.05] (step 0.01) to
// minimize the gap between the model's predicted draw probability and the
// target (weighted empirical) draw rate.
func FitDCRhoToDrawRate(goalsTotalBase, homeAdvGoals, targetDrawRate float64) float64 {
	bestRho := -0.10
	bestGap := math.Inf(1)
	for step := -25; step <= 5; step++ {
		rho := float64(step) / 100.0
		p := outcome.ProbsFromParams(goalsTotalBase, homeAdvGoals, rho)
		gap := math.Abs(p.Draw - targetDrawRate)
		if gap < bestGap {
			bestGap = gap
			bestRho = rho
		}
	}
	return bestRho
}

// FitLogitCalibrationWeighted grid-searches scale in [0.70, 1.30] (step
// 0.02) and drawBias in [-0.30, 0.30] (step 0.01) to minimize weighted log
// loss of the calibrated predictions against the realized outcomes.
func FitLogitCalibrationWeighted(basePreds []football.Prob3, actual []football.Outcome, weights []float64) (scale, drawBias, logLoss float64) {
	bestScale, bestBias := 1.0, 0.0
	bestLoss := math.Inf(1)

	for scaleStep := 35; scaleStep <= 65; scaleStep++ {
		s := float64(scaleStep) / 50.0
		for biasStep := -30; biasStep <= 30; biasStep++ {
			b := float64(biasStep) / 100.0
			loss := weightedLogLossForCalibration(basePreds, actual, weights, s, b)
			if loss < bestLoss {
				bestLoss = loss
				bestScale = s
				bestBias = b
			}
		}
	}
	return bestScale, bestBias, bestLoss
}

func weightedLogLossForCalibration(basePreds []football.Prob3, actual []football.Outcome, weights []float64, scale, drawBias float64) float64 {
	var weightSum, lossSum float64
	for i, base := range basePreds {
		calibrated := outcome.ApplyLogitCalibration(base, scale, drawBias)
		w := weights[i]
		weightSum += w
		pActual := calibrated.At(actual[i])
		if pActual < 1e-12 {
			pActual = 1e-12
		}
		lossSum += -w * math.Log(pActual)
	}
	if weightSum <= 0 {
		return math.Inf(1)
	}
	return lossSum / weightSum
}
