package ranking

import (
	"math"
	"strings"
)

// Role is one of the four coarse playing positions the ranking engine groups
// players into.
type Role int

const (
	RoleGoalkeeper Role = iota
	RoleDefender
	RoleMidfielder
	RoleAttacker
)

func (r Role) String() string {
	switch r {
	case RoleGoalkeeper:
		return "Goalkeeper"
	case RoleDefender:
		return "Defender"
	case RoleMidfielder:
		return "Midfielder"
	case RoleAttacker:
		return "Attacker"
	default:
		return "Unknown"
	}
}

// ClassifyRole maps a free-text role string to a Role by case-insensitive
// keyword precedence: keeper first, then back/defender, then midfield, then
// attacker/forward/striker/wing. ok is false when nothing matches.
func ClassifyRole(text string) (role Role, ok bool) {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "keeper", "goalkeeper", "gk"):
		return RoleGoalkeeper, true
	case containsAny(lower, "back", "defender", "centre-back", "center-back", "cb", "fullback", "full-back"):
		return RoleDefender, true
	case containsAny(lower, "midfield", "midfielder", "mid"):
		return RoleMidfielder, true
	case containsAny(lower, "attacker", "forward", "striker", "wing"):
		return RoleAttacker, true
	default:
		return Role(0), false
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// StatObs is one observed value for a canonical stat: an optional raw value
// and an optional percentile (0-100), at most one of which need be present.
type StatObs struct {
	Raw    *float64
	Pct    *float64
	Source string // "raw" or "pct" quality tier that won selection
}

// PlayerFeatures is the canonicalized feature row for one player in one
// role, built from a set of heterogeneous source stat rows.
type PlayerFeatures struct {
	Role       Role
	PlayerID   string
	PlayerName string
	TeamID     string
	TeamName   string
	Club       string
	Minutes    float64
	Apps       float64
	Rating     *float64
	Stats      map[CanonStat]StatObs
}

// RankFactor explains one contributing spec entry to a composite score.
type RankFactor struct {
	Label  string
	Z      float64
	Weight float64
	Raw    *float64
	Pct    *float64
	Source string
}

// RankingEntry is the final output row for one player: attack and defense
// composite scores plus their explaining factors.
type RankingEntry struct {
	Role           Role
	PlayerID       string
	PlayerName     string
	TeamID         string
	TeamName       string
	Club           string
	AttackScore    float64
	DefenseScore   float64
	Rating         *float64
	AttackFactors  []RankFactor
	DefenseFactors []RankFactor
}

// Insufficient reports whether a composite score is the -Inf "insufficient
// coverage" sentinel.
func Insufficient(score float64) bool {
	return math.IsInf(score, -1)
}
