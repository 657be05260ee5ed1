// Command rank runs the role ranking engine and player-impact model over a
// cached player-data JSON file and prints one ranking table across all roles.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jhw/footy-analytics-core/pkg/football"
	"github.com/jhw/footy-analytics-core/pkg/playerimpact"
	"github.com/jhw/footy-analytics-core/pkg/ranking"
)

// playerRecord is the on-disk shape of one player's raw per-source stat
// rows, as handed off by the (out of scope) ingest/parsing layer.
type playerRecord struct {
	PlayerID   string                  `json:"player_id"`
	PlayerName string                  `json:"player_name"`
	TeamID     string                  `json:"team_id"`
	TeamName   string                  `json:"team_name"`
	Club       string                  `json:"club"`
	RoleText   string                  `json:"role_text"`
	Minutes    float64                 `json:"minutes"`
	Apps       float64                 `json:"apps"`
	Rating     *float64                `json:"rating,omitempty"`
	Stats      []ranking.SourceStatRow `json:"stats"`
}

func main() {
	_ = godotenv.Load()
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	var (
		playersPath string
		asJSON      bool
		homeTeam    string
		awayTeam    string
		leagueID    uint32
	)

	v := viper.New()
	v.SetEnvPrefix("FOOTY")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "rank",
		Short: "Compute role rankings from cached player data",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadPlayerRecords(playersPath)
			if err != nil {
				return fmt.Errorf("loading player data: %w", err)
			}

			var features []ranking.PlayerFeatures
			skipped := 0
			for _, rec := range records {
				if len(rec.Stats) == 0 {
					skipped++
					continue
				}
				role, ok := ranking.ClassifyRole(rec.RoleText)
				if !ok {
					skipped++
					continue
				}
				stats := ranking.CollectStatFeatures(rec.Stats)
				features = append(features, ranking.PlayerFeatures{
					Role:       role,
					PlayerID:   rec.PlayerID,
					PlayerName: rec.PlayerName,
					TeamID:     rec.TeamID,
					TeamName:   rec.TeamName,
					Club:       rec.Club,
					Minutes:    rec.Minutes,
					Apps:       rec.Apps,
					Rating:     rec.Rating,
					Stats:      stats,
				})
			}
			logger.Info("loaded players", "kept", len(features), "skipped", skipped)

			entries := ranking.ComputeRankings(features)
			sort.SliceStable(entries, func(i, j int) bool {
				return entries[i].AttackScore > entries[j].AttackScore
			})

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			printRankings(entries)

			if homeTeam != "" && awayTeam != "" {
				signal, ok := computeImpactSignal(leagueID, records, homeTeam, awayTeam)
				if !ok {
					logger.Warn("player impact registry unavailable or league not covered", "league_id", leagueID)
				} else {
					fmt.Printf("\nplayer-impact signal (%s vs %s): %+.4f\n", homeTeam, awayTeam, signal)
				}
			}
			return nil
		},
	}

	root.Flags().StringVar(&playersPath, "players", "fixtures/players.json", "path to cached player data JSON")
	root.Flags().BoolVar(&asJSON, "json", false, "emit full JSON output instead of a table")
	root.Flags().StringVar(&homeTeam, "home-team", "", "home team name; with --away-team, prints the player-impact signal")
	root.Flags().StringVar(&awayTeam, "away-team", "", "away team name; with --home-team, prints the player-impact signal")
	root.Flags().Uint32Var(&leagueID, "league-id", football.LeaguePremier, "league id to resolve the player-impact model for")
	_ = v.BindPFlags(root.Flags())

	if err := root.Execute(); err != nil {
		logger.Fatal("rank failed", "err", err)
	}
}

func loadPlayerRecords(path string) ([]playerRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var records []playerRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return records, nil
}

func printRankings(entries []ranking.RankingEntry) {
	fmt.Printf("%-20s %-10s %10s %10s\n", "Player", "Role", "Attack", "Defense")
	fmt.Printf("%-20s %-10s %10s %10s\n", "------", "----", "------", "-------")
	for _, e := range entries {
		attackStr := scoreString(e.AttackScore)
		defenseStr := scoreString(e.DefenseScore)
		fmt.Printf("%-20s %-10s %10s %10s\n", e.PlayerName, e.Role.String(), attackStr, defenseStr)
	}
}

func scoreString(score float64) string {
	if ranking.Insufficient(score) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", score)
}

// computeImpactSignal resolves the player-impact registry's model for
// leagueID, aggregates each side's candidate player names (drawn from the
// cached player records for the named team) into team-level features, and
// returns the bounded home-versus-away adjustment signal.
func computeImpactSignal(leagueID uint32, records []playerRecord, homeTeam, awayTeam string) (float64, bool) {
	registry := playerimpact.GlobalRegistry()
	if registry == nil {
		return 0, false
	}
	model, ok := registry.ModelForLeague(leagueID)
	if !ok {
		return 0, false
	}
	home := playerimpact.TeamFeatures(model, homeTeam, candidateNames(records, homeTeam))
	away := playerimpact.TeamFeatures(model, awayTeam, candidateNames(records, awayTeam))
	return playerimpact.ImpactSignal(model, home, away), true
}

func candidateNames(records []playerRecord, teamName string) []string {
	var names []string
	for _, rec := range records {
		if rec.TeamName == teamName {
			names = append(names, rec.PlayerName)
		}
	}
	return names
}
