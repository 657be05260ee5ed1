// Command backtest runs the walk-forward evaluation across a set of
// leagues, prints a per-league report, and applies the validation gate.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jhw/footy-analytics-core/pkg/backtest"
	"github.com/jhw/footy-analytics-core/pkg/football"
	"github.com/jhw/footy-analytics-core/pkg/leagueparams"
	"github.com/jhw/footy-analytics-core/pkg/matchstore"
)

func main() {
	_ = godotenv.Load()
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	var (
		dbPath          string
		leagueIDsFlag   string
		halfLife        float64
		seasonDecay     float64
		minValGain      float64
		apply           bool
		forceApply      bool
		paramsCachePath string
	)

	v := viper.New()
	v.SetEnvPrefix("FOOTY")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "backtest",
		Short: "Walk-forward backtest the outcome model across leagues",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := time.Now()

			leagueIDs := resolveLeagueIDs(leagueIDsFlag)
			store, err := matchstore.Open(ctx, dbPath)
			if err != nil {
				return fmt.Errorf("opening match store: %w", err)
			}
			defer store.Close()

			reports, updated, gateFailures, err := runAll(ctx, store, leagueIDs, halfLife, seasonDecay, minValGain, forceApply, logger)
			if err != nil {
				return err
			}
			printReport(reports)

			if apply && len(updated) > 0 {
				path := paramsCachePath
				if path == "" {
					path = matchstore.ParamsPath()
				}
				cached := matchstore.LoadCachedParams(path)
				for id, p := range updated {
					cached[id] = p
				}
				if err := matchstore.SaveCachedParams(path, cached); err != nil {
					return fmt.Errorf("saving league params: %w", err)
				}
				logger.Info("applied league params", "leagues", len(updated), "path", path)
			}

			logger.Info("backtest complete", "elapsed", humanize.RelTime(start, time.Now(), "", ""))
			if len(reports) == 0 {
				return fmt.Errorf("no league had enough samples to backtest")
			}
			if !forceApply && gateFailures > 0 {
				return fmt.Errorf("validation gate failed for %d league(s); rerun with --force-apply to override", gateFailures)
			}
			return nil
		},
	}

	root.Flags().StringVar(&dbPath, "db", "matches.sqlite", "path to the match store database")
	root.Flags().StringVar(&leagueIDsFlag, "league-ids", "", "comma-separated league ids (defaults to the full seven-league set)")
	root.Flags().Float64Var(&halfLife, "cal-half-life-matches", leagueparams.DefaultHalfLifeMatches, "recency half-life in matches")
	root.Flags().Float64Var(&seasonDecay, "cal-season-decay", leagueparams.DefaultSeasonDecay, "per-season recency decay factor")
	root.Flags().Float64Var(&minValGain, "min-val-gain", backtest.DefaultMinValidationGain, "minimum validation log-loss gain required to apply")
	root.Flags().BoolVar(&apply, "apply", false, "persist fitted parameters for leagues that pass the validation gate")
	root.Flags().BoolVar(&forceApply, "force-apply", false, "bypass the validation gate when applying")
	root.Flags().StringVar(&paramsCachePath, "params-path", "", "override the league parameters cache path")
	_ = v.BindPFlags(root.Flags())

	if err := root.Execute(); err != nil {
		logger.Fatal("backtest failed", "err", err)
	}
}

func resolveLeagueIDs(flagVal string) []uint32 {
	if strings.TrimSpace(flagVal) == "" {
		return football.DefaultLeagueIDs()
	}
	var out []uint32
	for _, part := range strings.FieldsFunc(flagVal, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	}) {
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			continue
		}
		out = append(out, uint32(n))
	}
	if len(out) == 0 {
		return football.DefaultLeagueIDs()
	}
	return out
}

func runAll(ctx context.Context, store *matchstore.Store, leagueIDs []uint32, halfLife, seasonDecay, minValGain float64, forceApply bool, logger *log.Logger) ([]backtest.LeagueReport, map[uint32]football.LeagueParams, int, error) {
	type result struct {
		report backtest.LeagueReport
		ok     bool
		err    error
	}
	resultsCh := make(chan result, len(leagueIDs))

	for _, id := range leagueIDs {
		go func(leagueID uint32) {
			matches, err := store.MatchesByLeague(ctx, leagueID)
			if err != nil {
				resultsCh <- result{err: fmt.Errorf("loading matches for league %d: %w", leagueID, err)}
				return
			}
			report, ok := backtest.Run(leagueID, matches, halfLife, seasonDecay)
			resultsCh <- result{report: report, ok: ok}
		}(id)
	}

	var reports []backtest.LeagueReport
	updated := map[uint32]football.LeagueParams{}
	gateFailures := 0
	for range leagueIDs {
		r := <-resultsCh
		if r.err != nil {
			logger.Warn("league backtest error", "err", r.err)
			continue
		}
		if !r.ok {
			continue
		}
		reports = append(reports, r.report)
		if err := backtest.Gate(r.report, minValGain, forceApply); err != nil {
			logger.Warn("validation gate failed", "league", r.report.LeagueID, "err", err)
			gateFailures++
			continue
		}
		updated[r.report.LeagueID] = r.report.FittedParams
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].LeagueID < reports[j].LeagueID })
	return reports, updated, gateFailures, nil
}

func printReport(reports []backtest.LeagueReport) {
	fmt.Printf("%-6s %8s %10s %10s %10s %10s %8s %8s\n",
		"League", "Samples", "RawLL", "CalLL", "ValGain", "ValGainW", "ECERaw", "ECECal")
	for _, r := range reports {
		fmt.Printf("%-6d %8d %10.4f %10.4f %10.4f %10.4f %8.4f %8.4f\n",
			r.LeagueID, r.Samples, r.Raw.LogLoss, r.Calibrated.LogLoss,
			r.ValGain, r.ValGainWeighted, r.ECERaw, r.ECECalibrated)
	}
}
