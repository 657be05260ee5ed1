package playerimpact

import (
	"os"
	"testing"

	"github.com/jhw/footy-analytics-core/pkg/football"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNameIdempotent(t *testing.T) {
	once := football.NormalizeName("Sheffield & District F.C.")
	twice := football.NormalizeName(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, "sheffield_a_district_f_c", once)
}

func TestUseSharedPriorDefaultsTrue(t *testing.T) {
	os.Unsetenv("PLAYER_IMPACT_USE_SHARED_PRIOR")
	assert.True(t, UseSharedPriorEnabled())

	os.Setenv("PLAYER_IMPACT_USE_SHARED_PRIOR", "OFF")
	defer os.Unsetenv("PLAYER_IMPACT_USE_SHARED_PRIOR")
	assert.False(t, UseSharedPriorEnabled())
}

func TestTeamFeaturesWeightsBySamplesAndMinutes(t *testing.T) {
	model := LeagueModel{
		MinPlayerSamples: 10,
		Entries: []Entry{
			{TeamNorm: "arsenal", PlayerNorm: "saka", Prior: 0.8, Samples: 20, Minutes: 1800, Rating: 7.5},
			{TeamNorm: "arsenal", PlayerNorm: "martinelli", Prior: 0.2, Samples: 2, Minutes: 200, Rating: 6.5},
		},
	}
	features := TeamFeatures(model, "Arsenal", []string{"Saka", "Martinelli", ""})
	assert.Greater(t, features.Impact, 0.2)
	assert.InDelta(t, 1.0, features.Coverage, 1e-9)
}

func TestImpactSignalFallsBackToScalarWhenNoV2Model(t *testing.T) {
	model := LeagueModel{KPlayerImpact: 0.5}
	home := TeamImpactFeatures{Impact: 0.6}
	away := TeamImpactFeatures{Impact: 0.1}
	signal := ImpactSignal(model, home, away)
	assert.InDelta(t, 0.25, signal, 1e-9)
}

func TestImpactSignalUsesV2Coefficients(t *testing.T) {
	model := LeagueModel{
		ModelV2: &LinearModelV2{
			FeatureMeans: []float64{0, 0, 0, 0, 0, 0, 0},
			FeatureStds:  []float64{1, 1, 1, 1, 1, 1, 1},
			Coeffs:       []float64{1, 0, 0, 0, 0, 0, 0},
		},
	}
	home := TeamImpactFeatures{Impact: 1.0}
	away := TeamImpactFeatures{Impact: 0.0}
	signal := ImpactSignal(model, home, away)
	assert.InDelta(t, 1.0, signal, 1e-9)
}

func TestImpactSignalUsesPartialV2Coefficients(t *testing.T) {
	model := LeagueModel{
		KPlayerImpact: 9.0,
		ModelV2: &LinearModelV2{
			FeatureMeans: []float64{0, 0},
			FeatureStds:  []float64{1, 1},
			Coeffs:       []float64{1, 2},
		},
	}
	home := TeamImpactFeatures{Impact: 1.0, Rating: 0.2}
	away := TeamImpactFeatures{Impact: 0.0, Rating: 0.0}
	signal := ImpactSignal(model, home, away)
	assert.InDelta(t, 1.4, signal, 1e-9)
}

func TestImpactSignalClampsToRange(t *testing.T) {
	model := LeagueModel{KPlayerImpact: 100.0}
	home := TeamImpactFeatures{Impact: 10}
	away := TeamImpactFeatures{Impact: -10}
	signal := ImpactSignal(model, home, away)
	require.LessOrEqual(t, signal, signalClamp)
	assert.Equal(t, signalClamp, signal)
}
