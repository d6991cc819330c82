package seed

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dugoutlab/dugout-data/internal/store"
)

// SeedStats ingests one role's season stats from a scraper SQLite database.
func SeedStats(ctx context.Context, pool *pgxpool.Pool, dbPath string, role store.Role, logger *slog.Logger) SeedResult {
	var result SeedResult

	db, err := openSource(dbPath)
	if err != nil {
		result.AddErrorf("open source: %v", err)
		return result
	}
	defer db.Close()

	logger.Info("Reading season stats...", "role", role, "source", dbPath)
	recs, err := readStats(db, role, result.AddError)
	if err != nil {
		result.AddErrorf("read %s stats: %v", role, err)
		return result
	}
	result.RowsRead = len(recs)

	for i, rec := range recs {
		if err := UpsertPlayerStats(ctx, pool, role, rec); err != nil {
			result.AddErrorf("upsert %s %d: %v", rec.Player, rec.Season, err)
		} else {
			result.StatsUpserted++
		}
		if (i+1)%50 == 0 {
			logger.Info("Season stats progress", "role", role, "processed", i+1)
		}
	}

	logger.Info("Season stats done", "role", role, "summary", result.Summary())
	return result
}

// SeedFielding ingests fielding rows from a scraper SQLite database.
func SeedFielding(ctx context.Context, pool *pgxpool.Pool, dbPath string, logger *slog.Logger) SeedResult {
	var result SeedResult

	db, err := openSource(dbPath)
	if err != nil {
		result.AddErrorf("open source: %v", err)
		return result
	}
	defer db.Close()

	logger.Info("Reading fielding stats...", "source", dbPath)
	recs, err := readFielding(db, result.AddError)
	if err != nil {
		result.AddErrorf("read fielding: %v", err)
		return result
	}
	result.RowsRead = len(recs)

	for _, rec := range recs {
		if err := UpsertFielding(ctx, pool, rec); err != nil {
			result.AddErrorf("upsert fielding %s %d: %v", rec.Player, rec.Season, err)
		} else {
			result.FieldingUpserted++
		}
	}

	logger.Info("Fielding done", "summary", result.Summary())
	return result
}

// SeedRatings ingests scouted ability ratings from a scraper SQLite database.
func SeedRatings(ctx context.Context, pool *pgxpool.Pool, dbPath string, logger *slog.Logger) SeedResult {
	var result SeedResult

	db, err := openSource(dbPath)
	if err != nil {
		result.AddErrorf("open source: %v", err)
		return result
	}
	defer db.Close()

	logger.Info("Reading ability ratings...", "source", dbPath)
	ratings, err := readRatings(db, result.AddError)
	if err != nil {
		result.AddErrorf("read ratings: %v", err)
		return result
	}
	result.RowsRead = len(ratings)

	for _, ar := range ratings {
		if err := UpsertAbilityRating(ctx, pool, ar); err != nil {
			result.AddErrorf("upsert rating %s %d: %v", ar.Player, ar.Season, err)
		} else {
			result.RatingsUpserted++
		}
	}

	logger.Info("Ratings done", "summary", result.Summary())
	return result
}
