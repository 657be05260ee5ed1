package playerimpact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jhw/footy-analytics-core/pkg/football"
)

const (
	envArtifactPathOverride = "PLAYER_IMPACT_ARTIFACT_PATH"
	envUseSharedPrior       = "PLAYER_IMPACT_USE_SHARED_PRIOR"
	bundledAssetPath        = "assets/player_impact_registry_v1.json"
	legacyV2AssetPath       = "assets/pl_player_impact_v2.json"
	legacyV1AssetPath       = "assets/pl_player_impact_v1.json"
)

// Registry is the loaded, read-only player-impact registry: a map from
// league ID to its model plus an optional shared-prior fallback.
type Registry struct {
	Leagues     map[uint32]LeagueModel
	SharedPrior *LeagueModel
}

// ModelForLeague returns the league's own model if present, else the shared
// prior when the opt-out env var allows it.
func (r *Registry) ModelForLeague(leagueID uint32) (LeagueModel, bool) {
	if m, ok := r.Leagues[leagueID]; ok {
		return m, true
	}
	return r.FallbackModel()
}

// FallbackModel returns the shared-prior model, honoring the
// PLAYER_IMPACT_USE_SHARED_PRIOR opt-out.
func (r *Registry) FallbackModel() (LeagueModel, bool) {
	if !UseSharedPriorEnabled() || r.SharedPrior == nil {
		return LeagueModel{}, false
	}
	return *r.SharedPrior, true
}

// UseSharedPriorEnabled reports whether the shared-prior fallback is
// enabled. Defaults to true unless PLAYER_IMPACT_USE_SHARED_PRIOR is one of
// "0", "false", "off", or "no" (case-insensitive, trimmed).
func UseSharedPriorEnabled() bool {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(envUseSharedPrior)))
	switch raw {
	case "0", "false", "off", "no":
		return false
	default:
		return true
	}
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// GlobalRegistry lazily loads and caches the process-wide registry singleton
// the first time it's requested.
func GlobalRegistry() *Registry {
	globalOnce.Do(func() {
		globalRegistry, _ = LoadRegistry()
	})
	return globalRegistry
}

// LoadRegistry resolves the registry through a single explicit pipeline:
// explicit override path -> default cache path -> bundled asset -> legacy
// single-league fallback assets.
func LoadRegistry() (*Registry, error) {
	if path := os.Getenv(envArtifactPathOverride); path != "" {
		if reg, err := loadFromFile(path); err == nil {
			return reg, nil
		}
	}
	if path := defaultRegistryCachePath(); path != "" {
		if reg, err := loadFromFile(path); err == nil {
			return reg, nil
		}
	}
	if reg, err := loadFromFile(bundledAssetPath); err == nil {
		return reg, nil
	}
	return fallbackRegistryFromLegacyAssets()
}

func defaultRegistryCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "footy-analytics-core", "player_impact_registry_v1.json")
}

func loadFromFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading player impact registry %s: %w", path, err)
	}
	var artifact RegistryArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("decoding player impact registry %s: %w", path, err)
	}
	return registryFromArtifact(artifact), nil
}

func registryFromArtifact(artifact RegistryArtifact) *Registry {
	reg := &Registry{Leagues: make(map[uint32]LeagueModel, len(artifact.Leagues))}
	for _, lm := range artifact.Leagues {
		reg.Leagues[lm.LeagueID] = lm
	}
	reg.SharedPrior = artifact.SharedPrior
	return reg
}

func fallbackRegistryFromLegacyAssets() (*Registry, error) {
	for _, path := range []string{legacyV2AssetPath, legacyV1AssetPath} {
		if reg, err := loadFromFile(path); err == nil {
			return reg, nil
		}
	}
	return &Registry{Leagues: map[uint32]LeagueModel{}}, nil
}

// SaveRegistry atomically writes the registry artifact (temp file + rename).
func SaveRegistry(path string, artifact RegistryArtifact) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating registry directory %s: %w", dir, err)
		}
	}
	raw, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling player impact registry: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing player impact registry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("swapping player impact registry: %w", err)
	}
	return nil
}

// NormalizeName re-exports football.NormalizeName for registry key
// construction so callers don't need to import both packages.
func NormalizeName(s string) string { return football.NormalizeName(s) }
