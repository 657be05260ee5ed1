package playerimpact

import "math"

const (
	samplesWeightFloor = 0.2
	samplesWeightCeil  = 1.0
	minutesWeightFloor = 0.4
	minutesWeightCeil  = 1.0
	minutesFullShare   = 900.0
	signalClamp        = 1.5
	stdFloor           = 1e-6
)

// TeamFeatures aggregates weighted player features for a team over a list of
// candidate player names. Names not found in the league model's entries
// don't contribute but still count toward "seen" unless empty after
// normalization.
func TeamFeatures(model LeagueModel, teamName string, candidateNames []string) TeamImpactFeatures {
	teamNorm := NormalizeName(teamName)
	byPlayer := make(map[string]Entry, len(model.Entries))
	for _, e := range model.Entries {
		if e.TeamNorm == teamNorm {
			byPlayer[e.PlayerNorm] = e
		}
	}

	var weightSum, priorSum, ratingSum, shotsSum, keyPassesSum, tackleSum, duelSum, cardsSum float64
	var seen, matched int

	for _, name := range candidateNames {
		playerNorm := NormalizeName(name)
		if playerNorm == "" {
			continue
		}
		seen++

		entry, ok := byPlayer[playerNorm]
		if !ok {
			continue
		}
		matched++

		minSamples := model.MinPlayerSamples
		if minSamples < 1 {
			minSamples = 1
		}
		samples := entry.Samples
		if samples < 1 {
			samples = 1
		}
		wSamples := clamp(float64(samples)/float64(minSamples), samplesWeightFloor, samplesWeightCeil)
		wMinutes := clamp(entry.Minutes/minutesFullShare, minutesWeightFloor, minutesWeightCeil)
		w := wSamples * wMinutes

		weightSum += w
		priorSum += w * entry.Prior
		ratingSum += w * entry.Rating
		shotsSum += w * entry.ShotsOnTarget
		keyPassesSum += w * entry.KeyPasses
		tackleSum += w * entry.TacklesInterceptions
		duelSum += w * entry.DuelWinRate
		cardsSum += w * entry.Cards
	}

	out := TeamImpactFeatures{}
	if seen > 0 {
		out.Coverage = float64(matched) / float64(seen)
	}
	if weightSum > 0 {
		out.Impact = priorSum / weightSum
		out.Rating = ratingSum / weightSum
		out.ShotsOnTarget = shotsSum / weightSum
		out.KeyPasses = keyPassesSum / weightSum
		out.TacklesInterceptions = tackleSum / weightSum
		out.DuelWinRate = duelSum / weightSum
		out.Cards = cardsSum / weightSum
	}
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

// ImpactSignal computes the bounded match-adjustment signal for a
// home-versus-away matchup. When the league model carries a v2 linear model
// with non-empty coefficients, the signal standardizes the seven feature
// differences and dots with the stored coefficients; otherwise it falls back
// to the scalar k * (home.Impact - away.Impact) form.
func ImpactSignal(model LeagueModel, home, away TeamImpactFeatures) float64 {
	if model.ModelV2 != nil && len(model.ModelV2.Coeffs) > 0 {
		return clampSignal(v2Signal(*model.ModelV2, home, away))
	}
	return clampSignal(model.KPlayerImpact * (home.Impact - away.Impact))
}

// v2Signal dots the model's coefficients against the standardized feature
// differences. A registry trained on a subset or superset of the seven
// features (e.g. mid-migration) still contributes whatever coefficients are
// present, up to the feature-diff vector's length; it does not fall back to
// the v1 scalar model just because the arity doesn't match exactly.
func v2Signal(m LinearModelV2, home, away TeamImpactFeatures) float64 {
	diffs := [7]float64{
		home.Impact - away.Impact,
		home.Rating - away.Rating,
		home.ShotsOnTarget - away.ShotsOnTarget,
		home.KeyPasses - away.KeyPasses,
		home.TacklesInterceptions - away.TacklesInterceptions,
		home.DuelWinRate - away.DuelWinRate,
		home.Cards - away.Cards,
	}
	var signal float64
	for i, c := range m.Coeffs {
		if i >= len(diffs) {
			break
		}
		signal += c * standardizedDiff(diffs[i], i, m)
	}
	return signal
}

func standardizedDiff(raw float64, idx int, m LinearModelV2) float64 {
	mean := 0.0
	if idx < len(m.FeatureMeans) {
		mean = m.FeatureMeans[idx]
	}
	std := 1.0
	if idx < len(m.FeatureStds) {
		std = m.FeatureStds[idx]
	}
	if std < stdFloor {
		std = stdFloor
	}
	return (raw - mean) / std
}

func clampSignal(s float64) float64 {
	return math.Max(-signalClamp, math.Min(signalClamp, s))
}
