// Package backtest runs the walk-forward evaluation of the outcome model
// over a league's match history: cumulative parameter evolution, a
// train/validation split, calibration fitting on the training prefix only,
// and a validation gate before any fitted parameters are persisted.
package backtest

import (
	"math"
	"strconv"

	"github.com/jhw/footy-analytics-core/pkg/football"
	"github.com/jhw/footy-analytics-core/pkg/leagueparams"
	"github.com/jhw/footy-analytics-core/pkg/outcome"
)

// MinOutcomeSamples is the floor below which a league is skipped entirely.
const MinOutcomeSamples = 8

// DefaultMinValidationGain is the minimum log-loss improvement (unweighted
// and weighted) required before fitted parameters may be applied.
const DefaultMinValidationGain = 0.0005

// Prediction pairs a single match with its walk-forward (pre-match) raw
// prediction and its realized outcome.
type Prediction struct {
	Match  football.Match
	Raw    football.Prob3
	Actual football.Outcome
}

// cumulativeState tracks the running counters the walk-forward loop needs to
// derive cumulative league parameters before each prediction.
type cumulativeState struct {
	n             int
	draws         int
	totalGoals    float64
	homeMinusAway float64
}

func (s cumulativeState) params(leagueID uint32) football.LeagueParams {
	out := football.DefaultLeagueParams(leagueID)
	out.SampleMatches = s.n
	if s.n == 0 {
		return out
	}
	goalsTotalBase := s.totalGoals / float64(s.n)
	homeAdvGoals := s.homeMinusAway / float64(s.n)
	drawRate := clamp(float64(s.draws)/float64(s.n), 0.05, 0.60)

	shrink := clamp(float64(s.n)/leagueparams.MinSampleSize, 0, 1)
	defaults := football.DefaultLeagueParams(leagueID)
	out.GoalsTotalBase = (1-shrink)*defaults.GoalsTotalBase + shrink*goalsTotalBase
	out.HomeAdvGoals = (1-shrink)*defaults.HomeAdvGoals + shrink*homeAdvGoals
	out.DCRho = leagueparams.FitDCRhoToDrawRate(out.GoalsTotalBase, out.HomeAdvGoals, drawRate)
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

// WalkForwardPredictions produces one prediction per match, using only
// history strictly before that match's index. matches must already be
// ordered (timestamp, match_id) ascending.
func WalkForwardPredictions(leagueID uint32, matches []football.Match) []Prediction {
	preds := make([]Prediction, 0, len(matches))
	var state cumulativeState

	for _, m := range matches {
		params := state.params(leagueID)
		raw := outcome.ProbsFromParams(params.GoalsTotalBase, params.HomeAdvGoals, params.DCRho)

		var actual football.Outcome
		hasGoals := m.IsValidFixture()
		if hasGoals {
			actual = football.ClassifyOutcome(m.HomeGoals, m.AwayGoals)
		}
		preds = append(preds, Prediction{Match: m, Raw: raw, Actual: actual})

		if hasGoals {
			state.n++
			state.totalGoals += float64(m.HomeGoals + m.AwayGoals)
			state.homeMinusAway += float64(m.HomeGoals - m.AwayGoals)
			if m.HomeGoals == m.AwayGoals {
				state.draws++
			}
		}
	}
	return preds
}

// TrainSplitIndex returns round(0.85*n), clamped to [1, n-1]; it returns 0
// when n <= 1.
func TrainSplitIndex(n int) int {
	if n <= 1 {
		return 0
	}
	idx := int(math.Round(0.85 * float64(n)))
	if idx < 1 {
		idx = 1
	}
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}

// LeagueReport summarizes a completed walk-forward backtest for one league.
type LeagueReport struct {
	LeagueID        uint32
	Samples         int
	Raw             outcome.Metrics
	Calibrated      outcome.Metrics
	RawVal          outcome.Metrics
	CalibratedVal   outcome.Metrics
	ValGain         float64
	ValGainWeighted float64
	ECERaw          float64
	ECECalibrated   float64
	FitScale        float64
	FitDrawBias     float64
	FittedParams    football.LeagueParams
}

// Run executes a full walk-forward backtest for one league: predictions,
// train/validation split, calibration fit on the training prefix, metrics on
// both series, and the fitted league parameters (pre-gate).
func Run(leagueID uint32, matches []football.Match, halfLifeMatches, seasonDecay float64) (LeagueReport, bool) {
	validMatches := make([]football.Match, 0, len(matches))
	for _, m := range matches {
		if m.IsValidFixture() {
			validMatches = append(validMatches, m)
		}
	}
	if len(validMatches) < MinOutcomeSamples {
		return LeagueReport{}, false
	}

	preds := WalkForwardPredictions(leagueID, matches)
	// Keep only predictions for matches that resolved to an outcome; the
	// raw prediction for unfinished fixtures carries no ground truth.
	resolved := make([]Prediction, 0, len(preds))
	for _, p := range preds {
		if p.Match.IsValidFixture() {
			resolved = append(resolved, p)
		}
	}

	n := len(resolved)
	splitIdx := TrainSplitIndex(n)

	trainMatches := make([]football.Match, splitIdx)
	for i := 0; i < splitIdx; i++ {
		trainMatches[i] = resolved[i].Match
	}
	weights := leagueparams.BuildRecencyWeights(trainMatches, halfLifeMatches, seasonDecay)

	trainRaw := make([]football.Prob3, splitIdx)
	trainActual := make([]football.Outcome, splitIdx)
	for i := 0; i < splitIdx; i++ {
		trainRaw[i] = resolved[i].Raw
		trainActual[i] = resolved[i].Actual
	}
	scale, drawBias, _ := leagueparams.FitLogitCalibrationWeighted(trainRaw, trainActual, weights)

	allRaw := make([]football.Prob3, n)
	allCal := make([]football.Prob3, n)
	allActual := make([]football.Outcome, n)
	allWeights := leagueparams.BuildRecencyWeights(resolvedMatches(resolved), halfLifeMatches, seasonDecay)
	for i, p := range resolved {
		allRaw[i] = p.Raw
		allCal[i] = outcome.ApplyLogitCalibration(p.Raw, scale, drawBias)
		allActual[i] = p.Actual
	}

	valRaw := allRaw[splitIdx:]
	valCal := allCal[splitIdx:]
	valActual := allActual[splitIdx:]
	valWeights := allWeights[splitIdx:]

	rawMetrics := outcome.EvaluateProbs(allRaw, allActual)
	calMetrics := outcome.EvaluateProbs(allCal, allActual)
	rawValMetrics := outcome.EvaluateProbs(valRaw, valActual)
	calValMetrics := outcome.EvaluateProbs(valCal, valActual)

	rawValMetricsW := outcome.EvaluateProbsWeighted(valRaw, valActual, valWeights)
	calValMetricsW := outcome.EvaluateProbsWeighted(valCal, valActual, valWeights)

	params := leagueparams.Compute(leagueID, trainMatches)
	params.PrematchLogitScale = scale
	params.PrematchDrawBias = drawBias

	report := LeagueReport{
		LeagueID:        leagueID,
		Samples:         n,
		Raw:             rawMetrics,
		Calibrated:      calMetrics,
		RawVal:          rawValMetrics,
		CalibratedVal:   calValMetrics,
		ValGain:         rawValMetrics.LogLoss - calValMetrics.LogLoss,
		ValGainWeighted: rawValMetricsW.LogLoss - calValMetricsW.LogLoss,
		ECERaw:          outcome.ECE1X2(allRaw, allActual),
		ECECalibrated:   outcome.ECE1X2(allCal, allActual),
		FitScale:        scale,
		FitDrawBias:     drawBias,
		FittedParams:    params,
	}
	return report, true
}

func resolvedMatches(preds []Prediction) []football.Match {
	out := make([]football.Match, len(preds))
	for i, p := range preds {
		out[i] = p.Match
	}
	return out
}

// GateError explains why a fitted league's parameters were not applied.
type GateError struct {
	LeagueID        uint32
	ValGain         float64
	ValGainWeighted float64
	MinGain         float64
}

func (e *GateError) Error() string {
	return "validation gate failed for league " + strconv.Itoa(int(e.LeagueID)) +
		": val gain " + strconv.FormatFloat(e.ValGain, 'f', 4, 64) +
		", weighted val gain " + strconv.FormatFloat(e.ValGainWeighted, 'f', 4, 64) +
		" (min " + strconv.FormatFloat(e.MinGain, 'f', 4, 64) + ")"
}

// PassesGate reports whether both the unweighted and weighted validation
// log-loss gains clear minGain.
func (r LeagueReport) PassesGate(minGain float64) bool {
	return r.ValGain >= minGain && r.ValGainWeighted >= minGain
}

// Gate evaluates the validation gate for a report, returning a *GateError
// when the gate fails and forceApply is false.
func Gate(r LeagueReport, minGain float64, forceApply bool) error {
	if forceApply || r.PassesGate(minGain) {
		return nil
	}
	return &GateError{LeagueID: r.LeagueID, ValGain: r.ValGain, ValGainWeighted: r.ValGainWeighted, MinGain: minGain}
}
