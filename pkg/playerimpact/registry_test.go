package playerimpact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRegistryThenLoadFromFileRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	artifact := RegistryArtifact{
		Version:     1,
		GeneratedAt: "2026-01-01T00:00:00Z",
		Leagues: []LeagueModel{
			{LeagueID: 47, KPlayerImpact: 0.4, MinPlayerSamples: 10, Entries: []Entry{
				{TeamNorm: "arsenal", PlayerNorm: "saka", Prior: 0.8, Samples: 20, Minutes: 1800},
			}},
		},
	}
	require.NoError(t, SaveRegistry(path, artifact))

	reg, err := loadFromFile(path)
	require.NoError(t, err)
	require.Contains(t, reg.Leagues, uint32(47))
	assert.Equal(t, 0.4, reg.Leagues[47].KPlayerImpact)
}

func TestLoadRegistryPrefersOverridePathOverCache(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	require.NoError(t, SaveRegistry(filepath.Join(cacheHome, "footy-analytics-core", "player_impact_registry_v1.json"), RegistryArtifact{
		Leagues: []LeagueModel{{LeagueID: 98, KPlayerImpact: 0.1}},
	}))

	overridePath := filepath.Join(t.TempDir(), "override.json")
	require.NoError(t, SaveRegistry(overridePath, RegistryArtifact{
		Leagues: []LeagueModel{{LeagueID: 99, KPlayerImpact: 0.9}},
	}))

	os.Setenv(envArtifactPathOverride, overridePath)
	defer os.Unsetenv(envArtifactPathOverride)

	reg, err := LoadRegistry()
	require.NoError(t, err)
	require.Contains(t, reg.Leagues, uint32(99))
	assert.NotContains(t, reg.Leagues, uint32(98))
}

func TestLoadRegistryFallsBackToEmptyWhenNothingResolves(t *testing.T) {
	os.Setenv(envArtifactPathOverride, filepath.Join(t.TempDir(), "missing.json"))
	defer os.Unsetenv(envArtifactPathOverride)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	reg, err := LoadRegistry()
	require.NoError(t, err)
	assert.Empty(t, reg.Leagues)
}

func TestModelForLeagueFallsBackToSharedPrior(t *testing.T) {
	reg := &Registry{
		Leagues:     map[uint32]LeagueModel{},
		SharedPrior: &LeagueModel{LeagueID: 0, KPlayerImpact: 0.3},
	}
	os.Unsetenv(envUseSharedPrior)

	model, ok := reg.ModelForLeague(47)
	require.True(t, ok)
	assert.Equal(t, 0.3, model.KPlayerImpact)

	os.Setenv(envUseSharedPrior, "false")
	defer os.Unsetenv(envUseSharedPrior)
	_, ok = reg.ModelForLeague(47)
	assert.False(t, ok)
}
