package ranking

import (
	"strconv"
	"strings"
)

// SourceStatRow is one raw (label, value) pair as it appears in an upstream
// per-player statistics section, before canonicalization.
type SourceStatRow struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	PerNinety bool   `json:"per_ninety"`
	IsPercent bool   `json:"is_percent"`
}

// ParseNumber strips a raw stat value down to its numeric content: keeps
// digits, '.', '-', drops thousands separators, and rejects empty or
// lone-dash placeholders used by upstream feeds for "no data".
func ParseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, false
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// qualityRank orders observation sources best-first: per-90 percentile,
// total percentile, per-90 raw, total raw.
func qualityRank(perNinety, isPercent bool) int {
	switch {
	case perNinety && isPercent:
		return 4
	case !perNinety && isPercent:
		return 3
	case perNinety && !isPercent:
		return 2
	default:
		return 1
	}
}

// selectBestObservation scans all source rows for a canonical stat's needles
// (excluding rows matching its exclude list) and keeps the highest-quality
// match.
func selectBestObservation(stat CanonStat, rows []SourceStatRow) (StatObs, bool) {
	spec, known := statNeedles[stat]
	if !known {
		return StatObs{}, false
	}

	bestRank := -1
	var best StatObs
	found := false

	for _, row := range rows {
		label := strings.ToLower(row.Label)
		matched := false
		for _, needle := range spec.needles {
			if strings.Contains(label, needle) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		excluded := false
		for _, ex := range spec.exclude {
			if strings.Contains(label, ex) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		value, ok := ParseNumber(row.Value)
		if !ok {
			continue
		}
		rank := qualityRank(row.PerNinety, row.IsPercent)
		if rank <= bestRank {
			continue
		}
		bestRank = rank
		v := value
		obs := StatObs{Source: sourceTierLabel(row.IsPercent)}
		if row.IsPercent {
			pct := clampPct(v)
			obs.Pct = &pct
		} else {
			obs.Raw = &v
		}
		best = obs
		found = true
	}
	return best, found
}

func sourceTierLabel(isPercent bool) string {
	if isPercent {
		return "pct"
	}
	return "raw"
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// CollectStatFeatures canonicalizes all source rows for one player into the
// fixed CanonStat feature map, then inserts derived stats.
func CollectStatFeatures(rows []SourceStatRow) map[CanonStat]StatObs {
	stats := make(map[CanonStat]StatObs, int(canonStatCount))
	for stat := range statNeedles {
		if obs, ok := selectBestObservation(stat, rows); ok {
			stats[stat] = obs
		}
	}
	insertDerivedStats(stats)
	return stats
}

// insertDerivedStats computes stats that aren't read directly from any
// source row but are derived from two already-collected raw stats.
func insertDerivedStats(stats map[CanonStat]StatObs) {
	if goals, ok := rawValue(stats, Goals); ok {
		if base, ok := rawValue(stats, XgNonPenalty); ok {
			delta := goals - base
			stats[FinishingDelta] = StatObs{Raw: &delta, Source: "raw"}
		} else if base, ok := rawValue(stats, Xg); ok {
			delta := goals - base
			stats[FinishingDelta] = StatObs{Raw: &delta, Source: "raw"}
		}
	}
	if xgot, ok := rawValue(stats, Xgot); ok {
		if xg, ok := rawValue(stats, Xg); ok {
			delta := xgot - xg
			stats[ShotPlacementDelta] = StatObs{Raw: &delta, Source: "raw"}
		}
	}
}

func rawValue(stats map[CanonStat]StatObs, stat CanonStat) (float64, bool) {
	obs, ok := stats[stat]
	if !ok || obs.Raw == nil {
		return 0, false
	}
	return *obs.Raw, true
}
