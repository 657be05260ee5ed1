package leagueparams

import (
	"math"
	"strconv"

	"github.com/jhw/footy-analytics-core/pkg/football"
)

// DefaultHalfLifeMatches and DefaultSeasonDecay are the recency-weighting
// constants used when a caller doesn't override them via CLI flags.
const (
	DefaultHalfLifeMatches = 1200.0
	DefaultSeasonDecay     = 0.90

	weightFloor = 0.05
	weightCeil  = 1.0
)

// BuildRecencyWeights assigns each match a weight that decays exponentially
// with its distance (in matches) from the most recent match, further
// discounted per season gap. matches must already be ordered oldest-first.
func BuildRecencyWeights(matches []football.Match, halfLifeMatches, seasonDecay float64) []float64 {
	n := len(matches)
	if n == 0 {
		return nil
	}
	latestSeason := 0
	for _, m := range matches {
		if s := seasonKey(m); s > latestSeason {
			latestSeason = s
		}
	}
	if halfLifeMatches < 1.0 {
		halfLifeMatches = 1.0
	}
	lastIdx := n - 1
	weights := make([]float64, n)
	for i, m := range matches {
		age := float64(lastIdx - i)
		recency := math.Exp(-math.Ln2 * age / halfLifeMatches)
		deltaSeason := latestSeason - seasonKey(m)
		if deltaSeason < 0 {
			deltaSeason = 0
		}
		seasonW := math.Pow(seasonDecay, float64(deltaSeason))
		w := recency * seasonW
		weights[i] = clampWeight(w)
	}
	return weights
}

func clampWeight(w float64) float64 {
	if w < weightFloor {
		return weightFloor
	}
	if w > weightCeil {
		return weightCeil
	}
	return w
}

// seasonKey parses the leading four ASCII digits out of a season label or
// timestamp, falling back to the timestamp when SeasonLabel is empty. Used
// only to determine the season gap for recency weighting.
func seasonKey(m football.Match) int {
	src := m.SeasonLabel
	if src == "" {
		src = m.TimestampUTC
	}
	digits := make([]byte, 0, 4)
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
			if len(digits) == 4 {
				v, err := strconv.Atoi(string(digits))
				if err != nil {
					return 0
				}
				return v
			}
		} else if len(digits) > 0 {
			break
		}
	}
	return 0
}
