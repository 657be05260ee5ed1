package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestClassifyRolePrecedence(t *testing.T) {
	role, ok := ClassifyRole("Attacking Midfielder")
	require.True(t, ok)
	assert.Equal(t, RoleMidfielder, role)

	role, ok = ClassifyRole("Goalkeeper")
	require.True(t, ok)
	assert.Equal(t, RoleGoalkeeper, role)

	_, ok = ClassifyRole("Mascot")
	assert.False(t, ok)
}

func TestParseNumberRejectsPlaceholders(t *testing.T) {
	_, ok := ParseNumber("-")
	assert.False(t, ok)
	_, ok = ParseNumber("")
	assert.False(t, ok)

	v, ok := ParseNumber("1,234.5")
	require.True(t, ok)
	assert.InDelta(t, 1234.5, v, 1e-9)
}

func buildAttackerPool() []PlayerFeatures {
	makePlayer := func(id string, minutes float64, xgNonPenPct, goalsPct *float64) PlayerFeatures {
		stats := map[CanonStat]StatObs{}
		if xgNonPenPct != nil {
			stats[XgNonPenalty] = StatObs{Pct: xgNonPenPct, Source: "pct"}
		}
		if goalsPct != nil {
			stats[Goals] = StatObs{Pct: goalsPct, Source: "pct"}
			stats[Xa] = StatObs{Pct: goalsPct, Source: "pct"}
			stats[Assists] = StatObs{Pct: goalsPct, Source: "pct"}
		}
		return PlayerFeatures{
			Role:       RoleAttacker,
			PlayerID:   id,
			PlayerName: id,
			Minutes:    minutes,
			Stats:      stats,
		}
	}
	return []PlayerFeatures{
		makePlayer("A", 1500, f(85), f(80)),
		makePlayer("B", 300, f(80), f(75)),
		makePlayer("C", 90, nil, nil),
	}
}

func TestThreePlayerAttackerScenario(t *testing.T) {
	entries := ComputeRankings(buildAttackerPool())
	byID := map[string]RankingEntry{}
	for _, e := range entries {
		byID[e.PlayerID] = e
	}

	assert.Greater(t, byID["A"].AttackScore, byID["B"].AttackScore)
	assert.True(t, Insufficient(byID["C"].AttackScore))
}

func TestScoresAreFiniteOrNegativeInfinityNeverNaN(t *testing.T) {
	entries := ComputeRankings(buildAttackerPool())
	for _, e := range entries {
		assert.False(t, math.IsNaN(e.AttackScore))
		assert.False(t, math.IsNaN(e.DefenseScore))
		assert.True(t, !math.IsInf(e.AttackScore, 0) || math.IsInf(e.AttackScore, -1))
	}
}

func TestFactorsAreBoundedAndSorted(t *testing.T) {
	p := PlayerFeatures{
		Role:    RoleAttacker,
		Minutes: 2000,
		Stats: map[CanonStat]StatObs{
			Goals:             {Pct: f(95)},
			XgNonPenalty:      {Pct: f(55)},
			Assists:           {Pct: f(70)},
			Xa:                {Pct: f(65)},
			ShotsOnTarget:     {Pct: f(50)},
			TouchesInOppBox:   {Pct: f(50)},
			BigChancesCreated: {Pct: f(50)},
			Dribbles:          {Pct: f(50)},
			Rating:            {Pct: f(50)},
		},
	}
	entry := ScorePlayer(p, nil, nil)
	assert.LessOrEqual(t, len(entry.AttackFactors), MaxFactors)
	for i := 1; i < len(entry.AttackFactors); i++ {
		prev := math.Abs(entry.AttackFactors[i-1].Weight * entry.AttackFactors[i-1].Z)
		cur := math.Abs(entry.AttackFactors[i].Weight * entry.AttackFactors[i].Z)
		assert.GreaterOrEqual(t, prev, cur)
	}
}

func TestInsufficientHelper(t *testing.T) {
	assert.True(t, Insufficient(math.Inf(-1)))
	assert.False(t, Insufficient(0.0))
}
