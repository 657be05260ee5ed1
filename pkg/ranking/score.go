package ranking

import (
	"math"
	"sort"
)

// pctToZ linearizes a 0-100 percentile into an approximate z-score. This is
// a design-level contract, not a statistical claim: tests only verify
// ordering, not exact values.
func pctToZ(pct float64) float64 {
	z := (pct - 50) / 15
	return clampZ(z)
}

func clampZ(z float64) float64 {
	if z < -3 {
		return -3
	}
	if z > 3 {
		return 3
	}
	return z
}

// roleDistribution holds the mean/stdev of a raw stat across players of one
// role, direction-signed.
type roleDistribution struct {
	mean  float64
	std   float64
	valid bool
}

// buildRoleDistributions computes per-(role, stat, direction) raw
// distributions from a set of player feature rows, keyed by CanonStat. A
// stat is left out of the map when fewer than 2 samples are available or
// stdev <= 1e-9.
func buildRoleDistributions(players []PlayerFeatures, role Role, specs []StatSpec) map[CanonStat]roleDistribution {
	out := make(map[CanonStat]roleDistribution, len(specs))
	for _, spec := range specs {
		var values []float64
		for _, p := range players {
			if p.Role != role {
				continue
			}
			obs, ok := p.Stats[spec.Stat]
			if !ok || obs.Raw == nil {
				continue
			}
			v := *obs.Raw
			if spec.Direction == LowerBetter {
				v = -v
			}
			values = append(values, v)
		}
		if len(values) < 2 {
			continue
		}
		mean, std := meanStd(values)
		if std <= 1e-9 {
			continue
		}
		out[spec.Stat] = roleDistribution{mean: mean, std: std, valid: true}
	}
	return out
}

func meanStd(values []float64) (mean, std float64) {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / n
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	std = math.Sqrt(sq / n)
	return
}

// compositeScore computes the weighted composite z-score for one player
// against one spec table, along with the contributing factors sorted by
// |weight*z| descending and truncated to MaxFactors.
func compositeScore(p PlayerFeatures, specs []StatSpec, dist map[CanonStat]roleDistribution) (score float64, factors []RankFactor) {
	var weightedSum, weightUsed, weightTotal float64
	var contributing []RankFactor

	for _, spec := range specs {
		weightTotal += spec.Weight
		obs, ok := p.Stats[spec.Stat]
		if !ok {
			continue
		}

		var z float64
		var source string
		switch {
		case obs.Pct != nil:
			signedPct := *obs.Pct
			z = pctToZ(signedPct)
			if spec.Direction == LowerBetter {
				z = -z
			}
			source = "pct"
		case obs.Raw != nil:
			d, known := dist[spec.Stat]
			if !known {
				continue
			}
			v := *obs.Raw
			if spec.Direction == LowerBetter {
				v = -v
			}
			z = (v - d.mean) / d.std
			source = "raw"
		default:
			continue
		}

		weightedSum += spec.Weight * z
		weightUsed += spec.Weight
		contributing = append(contributing, RankFactor{
			Label:  spec.Stat.Label(),
			Z:      z,
			Weight: spec.Weight,
			Raw:    obs.Raw,
			Pct:    obs.Pct,
			Source: source,
		})
	}

	if weightUsed <= 0 || weightTotal <= 0 {
		return math.Inf(-1), nil
	}
	coverage := weightUsed / weightTotal
	if coverage < CoverageFloor {
		return math.Inf(-1), nil
	}

	rawScore := weightedSum/weightUsed - (1-coverage)*CoveragePenalty

	sort.SliceStable(contributing, func(i, j int) bool {
		return math.Abs(contributing[i].Weight*contributing[i].Z) > math.Abs(contributing[j].Weight*contributing[j].Z)
	})
	if len(contributing) > MaxFactors {
		contributing = contributing[:MaxFactors]
	}

	return rawScore, contributing
}

// participationAdjustment derives rel in [0,1] from minutes or appearances
// and applies it to a raw composite score.
func participationAdjustment(rawScore, minutes, apps float64) float64 {
	if math.IsInf(rawScore, -1) {
		return rawScore
	}
	var rel float64
	switch {
	case minutes > 0:
		rel = math.Sqrt(clamp01(minutes / FullMinutes))
	case apps > 0:
		rel = math.Sqrt(clamp01(apps / FullAppearances))
	default:
		rel = 0
	}
	return rawScore*rel - (1-rel)*ParticipationPenalty
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// ScorePlayer computes the final attack and defense scores and factor lists
// for one player, given the role-wide raw distributions.
func ScorePlayer(p PlayerFeatures, attackDist, defenseDist map[CanonStat]roleDistribution) RankingEntry {
	attackRaw, attackFactors := compositeScore(p, AttackSpec(p.Role), attackDist)
	defenseRaw, defenseFactors := compositeScore(p, DefenseSpec(p.Role), defenseDist)

	attackScore := participationAdjustment(attackRaw, p.Minutes, p.Apps)
	defenseScore := participationAdjustment(defenseRaw, p.Minutes, p.Apps)

	return RankingEntry{
		Role:           p.Role,
		PlayerID:       p.PlayerID,
		PlayerName:     p.PlayerName,
		TeamID:         p.TeamID,
		TeamName:       p.TeamName,
		Club:           p.Club,
		AttackScore:    attackScore,
		DefenseScore:   defenseScore,
		Rating:         p.Rating,
		AttackFactors:  attackFactors,
		DefenseFactors: defenseFactors,
	}
}

// ComputeRankings builds the per-role raw distributions and scores every
// player, returning ranking entries in input order.
func ComputeRankings(players []PlayerFeatures) []RankingEntry {
	distByRole := make(map[Role]struct {
		attack  map[CanonStat]roleDistribution
		defense map[CanonStat]roleDistribution
	})
	for _, role := range []Role{RoleGoalkeeper, RoleDefender, RoleMidfielder, RoleAttacker} {
		distByRole[role] = struct {
			attack  map[CanonStat]roleDistribution
			defense map[CanonStat]roleDistribution
		}{
			attack:  buildRoleDistributions(players, role, AttackSpec(role)),
			defense: buildRoleDistributions(players, role, DefenseSpec(role)),
		}
	}

	entries := make([]RankingEntry, 0, len(players))
	for _, p := range players {
		d := distByRole[p.Role]
		entries = append(entries, ScorePlayer(p, d.attack, d.defense))
	}
	return entries
}
