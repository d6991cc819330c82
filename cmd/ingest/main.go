// Command ingest is the Dugout data ingestion and report CLI.
//
// Usage:
//
//	dugout-ingest seed pitching --db pitching_stats.db
//	dugout-ingest seed batting --db batting_stats.db
//	dugout-ingest seed fielding --db fielding_stats.db
//	dugout-ingest seed abilities --db ability_ratings.db
//	dugout-ingest rankings --role pitching --season 2024 --stat era --top 10
//	dugout-ingest leaderboard --role batting --season 2024 --bottom
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dugoutlab/dugout-data/internal/config"
	"github.com/dugoutlab/dugout-data/internal/db"
	"github.com/dugoutlab/dugout-data/internal/report"
	"github.com/dugoutlab/dugout-data/internal/seed"
	"github.com/dugoutlab/dugout-data/internal/stats"
	"github.com/dugoutlab/dugout-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env from repo root if present
	_ = godotenv.Load("../.env")
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "dugout-ingest",
		Short: "Dugout data ingestion and report CLI",
	}

	root.AddCommand(seedCmd())
	root.AddCommand(rankingsCmd())
	root.AddCommand(leaderboardCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed data from scraper SQLite databases",
	}
	cmd.AddCommand(seedStatsCmd("pitching", store.RolePitching, "pitching_stats.db"))
	cmd.AddCommand(seedStatsCmd("batting", store.RoleBatting, "batting_stats.db"))
	cmd.AddCommand(seedFieldingCmd())
	cmd.AddCommand(seedAbilitiesCmd())
	return cmd
}

func seedStatsCmd(use string, role store.Role, defaultDB string) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   use,
		Short: "Seed " + use + " season stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				result := seed.SeedStats(ctx, pool.Pool, dbPath, role, logger)
				logSeedResult(use+" seed", start, result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", defaultDB, "Path to the scraper SQLite database")
	return cmd
}

func seedFieldingCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "fielding",
		Short: "Seed fielding stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				result := seed.SeedFielding(ctx, pool.Pool, dbPath, logger)
				logSeedResult("fielding seed", start, result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "fielding_stats.db", "Path to the scraper SQLite database")
	return cmd
}

func seedAbilitiesCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "abilities",
		Short: "Seed scouted ability ratings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				result := seed.SeedRatings(ctx, pool.Pool, dbPath, logger)
				logSeedResult("abilities seed", start, result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "ability_ratings.db", "Path to the scraper SQLite database")
	return cmd
}

func logSeedResult(what string, start time.Time, result seed.SeedResult) {
	logger.Info(what+" finished",
		"duration", time.Since(start).Round(time.Second),
		"summary", result.Summary())
	for _, e := range result.Errors {
		logger.Error("seed error", "error", e)
	}
}

// --------------------------------------------------------------------------
// report commands
// --------------------------------------------------------------------------

func rankingsCmd() *cobra.Command {
	var roleName, statName string
	var season, top int
	var minIP, minPA float64
	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Print player rankings for one statistic",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				role := store.Role(roleName)
				if !role.Valid() {
					return fmt.Errorf("role must be 'pitching' or 'batting'")
				}
				recs, err := store.New(pool.Pool).SeasonRecords(ctx, role, season)
				if err != nil {
					return err
				}

				reg, _ := stats.ForRole(roleName)
				ascending := false
				if def, err := reg.Lookup(statName); err == nil {
					ascending = def.LowerIsBetter
				}

				var filter stats.Filter
				if role == store.RolePitching {
					filter = stats.PitchingEligibility{MinInnings: minIP}
				} else {
					filter = stats.BattingEligibility{MinPA: minPA}
				}

				entries := stats.Rank(recs, statName, ascending, top, filter)
				report.PrintRankings(os.Stdout, statName, entries)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&roleName, "role", "pitching", "Role (pitching, batting)")
	cmd.Flags().StringVar(&statName, "stat", "era", "Statistic name")
	cmd.Flags().IntVar(&season, "season", time.Now().Year(), "Season year")
	cmd.Flags().IntVar(&top, "top", 10, "Number of rows (0 = all)")
	cmd.Flags().Float64Var(&minIP, "min-ip", 0, "Minimum innings pitched")
	cmd.Flags().Float64Var(&minPA, "min-pa", 0, "Minimum plate appearances")
	return cmd
}

func leaderboardCmd() *cobra.Command {
	var roleName string
	var season int
	var bottom bool
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the team leaderboard summary across every statistic",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				role := store.Role(roleName)
				if !role.Valid() {
					return fmt.Errorf("role must be 'pitching' or 'batting'")
				}
				recs, err := store.New(pool.Pool).SeasonRecords(ctx, role, season)
				if err != nil {
					return err
				}

				reg, _ := stats.ForRole(roleName)
				metrics := stats.PitchingLeaderboard
				if role == store.RoleBatting {
					metrics = stats.BattingLeaderboard
				}

				items := stats.LeaderboardSummary(recs, reg, metrics, bottom)
				report.PrintLeaderboard(os.Stdout, items)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&roleName, "role", "pitching", "Role (pitching, batting)")
	cmd.Flags().IntVar(&season, "season", time.Now().Year(), "Season year")
	cmd.Flags().BoolVar(&bottom, "bottom", false, "Show bottom 3 instead of top 3")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// withPool handles config loading, DB connection, and context cancellation.
func withPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
