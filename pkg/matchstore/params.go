package matchstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhw/footy-analytics-core/pkg/football"
)

// ParamsCacheFileName is the on-disk name of the league parameters cache
// under the per-user cache directory.
const ParamsCacheFileName = "league_params.json"

// ParamsPath returns the default league-parameters cache path under
// os.UserCacheDir, or "" if the cache directory can't be resolved.
func ParamsPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "footy-analytics-core", ParamsCacheFileName)
}

// LoadCachedParams reads the league-parameters cache, returning an empty map
// (never an error) when the file is absent or unparseable — callers fall
// back to defaults per league. A record without prematch_logit_scale reads
// as scale 1.0; a missing prematch_draw_bias reads as 0.
func LoadCachedParams(path string) map[uint32]football.LeagueParams {
	if path == "" {
		return map[uint32]football.LeagueParams{}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return map[uint32]football.LeagueParams{}
	}
	var entries map[uint32]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return map[uint32]football.LeagueParams{}
	}
	out := make(map[uint32]football.LeagueParams, len(entries))
	for id, entry := range entries {
		p := football.LeagueParams{PrematchLogitScale: 1.0}
		if err := json.Unmarshal(entry, &p); err != nil {
			return map[uint32]football.LeagueParams{}
		}
		out[id] = p
	}
	return out
}

// SaveCachedParams atomically replaces the league-parameters cache file
// (write to temp, then rename).
func SaveCachedParams(path string, params map[uint32]football.LeagueParams) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating params cache directory %s: %w", dir, err)
		}
	}
	raw, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling league params: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing league params: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("swapping league params: %w", err)
	}
	return nil
}
