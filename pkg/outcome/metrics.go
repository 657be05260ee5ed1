package outcome

import (
	"math"

	"github.com/jhw/footy-analytics-core/pkg/football"
)

const logLossFloor = 1e-12

// Metrics summarizes how a series of predictions performed against the
// realized outcomes.
type Metrics struct {
	Samples  int
	Brier    float64
	LogLoss  float64
	Accuracy float64
}

// EvaluateProbs scores an unweighted series of (prediction, realized)
// pairs.
func EvaluateProbs(preds []football.Prob3, actual []football.Outcome) Metrics {
	weights := make([]float64, len(preds))
	for i := range weights {
		weights[i] = 1.0
	}
	return evaluateWeighted(preds, actual, weights)
}

// EvaluateProbsWeighted scores a weighted series of (prediction, realized)
// pairs; weights should be non-negative per-match weights.
func EvaluateProbsWeighted(preds []football.Prob3, actual []football.Outcome, weights []float64) Metrics {
	return evaluateWeighted(preds, actual, weights)
}

func evaluateWeighted(preds []football.Prob3, actual []football.Outcome, weights []float64) Metrics {
	n := len(preds)
	if n == 0 {
		return Metrics{}
	}
	var weightSum, brierSum, logLossSum, correctW float64
	for i := 0; i < n; i++ {
		w := weights[i]
		weightSum += w

		pActual := preds[i].At(actual[i])
		if pActual < logLossFloor {
			pActual = logLossFloor
		}
		logLossSum += -w * math.Log(pActual)

		oneHot := football.OneHot(actual[i])
		brierSum += w * (sq(preds[i].Home-oneHot.Home) + sq(preds[i].Draw-oneHot.Draw) + sq(preds[i].Away-oneHot.Away))

		if preds[i].Argmax() == actual[i] {
			correctW += w
		}
	}
	if weightSum <= 0 {
		weightSum = 1e-9
	}
	return Metrics{
		Samples:  n,
		Brier:    brierSum / weightSum,
		LogLoss:  logLossSum / weightSum,
		Accuracy: correctW / weightSum,
	}
}

func sq(x float64) float64 { return x * x }

// CalibrationBin is one equal-width probability bucket used for expected
// calibration error.
type CalibrationBin struct {
	BucketStart float64
	BucketEnd   float64
	Count       int
	AvgPred     float64
	ActualRate  float64
}

// CalibrationBins buckets predicted probability mass for a single outcome
// class into numBins equal-width buckets over [0, 1].
func CalibrationBins(preds []float64, hits []bool, numBins int) []CalibrationBin {
	bins := make([]CalibrationBin, numBins)
	width := 1.0 / float64(numBins)
	for i := range bins {
		bins[i].BucketStart = float64(i) * width
		bins[i].BucketEnd = float64(i+1) * width
	}
	sums := make([]float64, numBins)
	hitCounts := make([]int, numBins)
	for i, p := range preds {
		idx := int(p / width)
		if idx >= numBins {
			idx = numBins - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx].Count++
		sums[idx] += p
		if hits[i] {
			hitCounts[idx]++
		}
	}
	for i := range bins {
		if bins[i].Count > 0 {
			bins[i].AvgPred = sums[i] / float64(bins[i].Count)
			bins[i].ActualRate = float64(hitCounts[i]) / float64(bins[i].Count)
		}
	}
	return bins
}

// ECE1X2 computes expected calibration error averaged over the three outcome
// classes, using 10 equal-width bins per class.
func ECE1X2(preds []football.Prob3, actual []football.Outcome) float64 {
	const numBins = 10
	classes := []football.Outcome{football.OutcomeHome, football.OutcomeDraw, football.OutcomeAway}
	var total float64
	for _, class := range classes {
		p := make([]float64, len(preds))
		hit := make([]bool, len(preds))
		for i := range preds {
			p[i] = preds[i].At(class)
			hit[i] = actual[i] == class
		}
		bins := CalibrationBins(p, hit, numBins)
		total += eceForBins(bins)
	}
	return total / float64(len(classes))
}

func eceForBins(bins []CalibrationBin) float64 {
	var totalCount int
	var weightedGap float64
	for _, b := range bins {
		if b.Count == 0 {
			continue
		}
		totalCount += b.Count
		weightedGap += float64(b.Count) * math.Abs(b.AvgPred-b.ActualRate)
	}
	if totalCount == 0 {
		return 0
	}
	return weightedGap / float64(totalCount)
}
