// Command ingest fetches football-data.co.uk CSV feeds for a set of leagues
// and seasons and upserts the normalized match rows into the match store.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/jhw/footy-analytics-core/pkg/football"
	"github.com/jhw/footy-analytics-core/pkg/matchstore"
)

type leagueFeed struct {
	code           string
	footballDataID string
}

var englandFeeds = []leagueFeed{
	{code: "ENG1", footballDataID: "E0"},
	{code: "ENG2", footballDataID: "E1"},
	{code: "ENG3", footballDataID: "E2"},
	{code: "ENG4", footballDataID: "E3"},
}

func main() {
	_ = godotenv.Load()
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	var (
		dbPath    string
		startYear int
		endYear   int
		rateLimit float64
	)

	v := viper.New()
	v.SetEnvPrefix("FOOTY")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch football-data.co.uk match feeds into the local match store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := matchstore.Open(ctx, dbPath)
			if err != nil {
				return fmt.Errorf("opening match store: %w", err)
			}
			defer store.Close()

			limiter := rate.NewLimiter(rate.Limit(rateLimit), 1)
			client := &http.Client{Timeout: 30 * time.Second}

			total := 0
			for _, feed := range englandFeeds {
				for year := startYear; year <= endYear; year++ {
					if err := limiter.Wait(ctx); err != nil {
						return fmt.Errorf("rate limiter wait: %w", err)
					}
					season := fmt.Sprintf("%02d%02d", year%100, (year+1)%100)
					matches, err := fetchSeason(ctx, client, feed, season)
					if err != nil {
						logger.Warn("season fetch failed", "league", feed.code, "season", season, "err", err)
						continue
					}
					if err := store.Upsert(ctx, matches); err != nil {
						return fmt.Errorf("upserting %s %s: %w", feed.code, season, err)
					}
					total += len(matches)
					logger.Info("ingested season", "league", feed.code, "season", season, "matches", len(matches))
				}
			}
			logger.Info("ingest complete", "total_matches", total)
			return nil
		},
	}

	root.Flags().StringVar(&dbPath, "db", "matches.sqlite", "path to the match store database")
	root.Flags().IntVar(&startYear, "start-year", time.Now().Year()-5, "first season start year")
	root.Flags().IntVar(&endYear, "end-year", time.Now().Year(), "last season start year")
	root.Flags().Float64Var(&rateLimit, "rate-limit", 1.0, "requests per second against the upstream feed")
	_ = v.BindPFlags(root.Flags())

	if err := root.Execute(); err != nil {
		logger.Fatal("ingest failed", "err", err)
	}
}

func fetchSeason(ctx context.Context, client *http.Client, feed leagueFeed, season string) ([]football.Match, error) {
	url := fmt.Sprintf("https://www.football-data.co.uk/mmz4281/%s/%s.csv", season, feed.footballDataID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "footy-analytics-core/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, url)
	}
	return parseCSV(resp.Body, feed.code, season)
}

func parseCSV(r io.Reader, leagueCode, season string) ([]football.Match, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV feed")
	}

	header := records[0]
	dateCol := findColumn(header, "Date")
	homeCol := findColumn(header, "HomeTeam")
	awayCol := findColumn(header, "AwayTeam")
	homeGoalsCol := findColumn(header, "FTHG")
	awayGoalsCol := findColumn(header, "FTAG")
	if dateCol == -1 || homeCol == -1 || awayCol == -1 || homeGoalsCol == -1 || awayGoalsCol == -1 {
		return nil, fmt.Errorf("required columns missing from CSV header")
	}

	var out []football.Match
	for _, row := range records[1:] {
		if maxOf(dateCol, homeCol, awayCol, homeGoalsCol, awayGoalsCol) >= len(row) {
			continue
		}
		dateStr := strings.TrimSpace(row[dateCol])
		date, err := parseDate(dateStr)
		if err != nil {
			continue
		}
		homeGoals, err1 := strconv.Atoi(strings.TrimSpace(row[homeGoalsCol]))
		awayGoals, err2 := strconv.Atoi(strings.TrimSpace(row[awayGoalsCol]))
		if err1 != nil || err2 != nil {
			continue
		}
		home := strings.TrimSpace(row[homeCol])
		away := strings.TrimSpace(row[awayCol])
		if home == "" || away == "" {
			continue
		}
		out = append(out, football.Match{
			MatchID:      uuid.NewSHA1(uuid.NameSpaceOID, []byte(leagueCode+season+date.Format("20060102")+home+away)).String(),
			LeagueID:     leagueIDForCode(leagueCode),
			SeasonLabel:  season,
			TimestampUTC: date.Format(time.RFC3339),
			HomeTeamID:   home,
			AwayTeamID:   away,
			HomeGoals:    homeGoals,
			AwayGoals:    awayGoals,
			Finished:     true,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no valid rows parsed")
	}
	return out, nil
}

func leagueIDForCode(code string) uint32 {
	if code == "ENG1" {
		return football.LeaguePremier
	}
	return 0
}

func parseDate(s string) (time.Time, error) {
	formats := []string{"02/01/06", "2/1/06", "02/01/2006", "2/1/2006"}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func findColumn(header []string, name string) int {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}

func maxOf(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
