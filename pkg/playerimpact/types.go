// Package playerimpact loads the player-impact registry and computes a
// bounded match-adjustment signal from team-level aggregated player
// features. The registry is a read-only, load-once, process-wide resource.
package playerimpact

// FeatureNames is the fixed order of the seven features the linear model
// operates over.
var FeatureNames = [7]string{
	"impact_diff",
	"rating_diff",
	"shots_on_target_diff",
	"key_passes_diff",
	"tackles_interceptions_diff",
	"duel_win_rate_diff",
	"cards_diff",
}

// Entry is one (team, player) row in the registry.
type Entry struct {
	TeamNorm             string  `json:"team_norm"`
	PlayerNorm           string  `json:"player_norm"`
	Prior                float64 `json:"prior"`
	Samples              int     `json:"samples"`
	Minutes              float64 `json:"minutes"`
	Rating               float64 `json:"rating"`
	ShotsOnTarget        float64 `json:"shots_on_target"`
	KeyPasses            float64 `json:"key_passes"`
	TacklesInterceptions float64 `json:"tackles_interceptions"`
	DuelWinRate          float64 `json:"duel_win_rate"`
	Cards                float64 `json:"cards"`
}

// LinearModelV2 is the standardized linear combination over the seven team
// feature differences.
type LinearModelV2 struct {
	FeatureNames        []string  `json:"feature_names"`
	FeatureMeans        []float64 `json:"feature_means"`
	FeatureStds         []float64 `json:"feature_stds"`
	Coeffs              []float64 `json:"coeffs"`
	RecencyHalfLifeDays float64   `json:"recency_half_life_days"`
	L2                  float64   `json:"l2"`
	TrainLogLoss        float64   `json:"train_log_loss"`
	ValLogLoss          float64   `json:"val_log_loss"`
	BaselineValLogLoss  float64   `json:"baseline_val_log_loss"`
	TrainSamples        int       `json:"train_samples"`
	ValSamples          int       `json:"val_samples"`
}

// LeagueModel holds one league's impact model: the scalar fallback
// coefficient, the optional v2 linear model, and the raw entries.
type LeagueModel struct {
	LeagueID         uint32         `json:"league_id"`
	KPlayerImpact    float64        `json:"k_player_impact"`
	MinPlayerSamples int            `json:"min_player_samples"`
	ModelV2          *LinearModelV2 `json:"model_v2,omitempty"`
	Entries          []Entry        `json:"entries"`
}

// RegistryArtifact is the on-disk JSON shape of the registry.
type RegistryArtifact struct {
	Version     int           `json:"version"`
	GeneratedAt string        `json:"generated_at"`
	Source      string        `json:"source,omitempty"`
	Leagues     []LeagueModel `json:"leagues"`
	SharedPrior *LeagueModel  `json:"shared_prior,omitempty"`
}

// TeamImpactFeatures is the weighted aggregate of a team's candidate players
// over the seven underlying raw features, plus derived coverage.
type TeamImpactFeatures struct {
	Impact               float64
	Rating               float64
	ShotsOnTarget        float64
	KeyPasses            float64
	TacklesInterceptions float64
	DuelWinRate          float64
	Cards                float64
	Coverage             float64
}
