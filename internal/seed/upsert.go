package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dugoutlab/dugout-data/internal/config"
	"github.com/dugoutlab/dugout-data/internal/store"
)

// Row identity includes the team: a player traded mid-season keeps one row
// per team, and re-seeding updates in place instead of duplicating.
const (
	upsertPlayerStatsSQL = `
		INSERT INTO ` + config.PlayerStatsTable + ` (
			player_name, team_name, role, season, image_file, stats
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (player_name, team_name, role, season) DO UPDATE SET
			image_file = EXCLUDED.image_file,
			stats = EXCLUDED.stats,
			updated_at = NOW()`

	upsertFieldingSQL = `
		INSERT INTO ` + config.FieldingStatsTable + ` (
			player_name, team_name, position, season, stats
		) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (player_name, team_name, position, season) DO UPDATE SET
			stats = EXCLUDED.stats,
			updated_at = NOW()`

	upsertAbilityRatingSQL = `
		INSERT INTO ` + config.AbilityRatingsTable + ` (
			player_name, team_name, season, ratings
		) VALUES ($1,$2,$3,$4)
		ON CONFLICT (player_name, team_name, season) DO UPDATE SET
			ratings = EXCLUDED.ratings,
			updated_at = NOW()`
)

// UpsertPlayerStats writes one season row to the player stats table.
func UpsertPlayerStats(ctx context.Context, pool *pgxpool.Pool, role store.Role, rec store.Record) error {
	stats, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("encode stats for %s: %w", rec.Player, err)
	}
	_, err = pool.Exec(ctx, upsertPlayerStatsSQL,
		rec.Player, rec.Team, string(role), rec.Season, rec.ImageFile, stats,
	)
	return err
}

// UpsertFielding writes one fielding row to the fielding stats table.
func UpsertFielding(ctx context.Context, pool *pgxpool.Pool, rec store.FieldingRecord) error {
	stats, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("encode fielding for %s: %w", rec.Player, err)
	}
	_, err = pool.Exec(ctx, upsertFieldingSQL,
		rec.Player, rec.Team, rec.Position, rec.Season, stats,
	)
	return err
}

// UpsertAbilityRating writes one scouted rating row to the ratings table.
func UpsertAbilityRating(ctx context.Context, pool *pgxpool.Pool, ar store.AbilityRating) error {
	ratings, err := json.Marshal(ar.Ratings)
	if err != nil {
		return fmt.Errorf("encode ratings for %s: %w", ar.Player, err)
	}
	_, err = pool.Exec(ctx, upsertAbilityRatingSQL,
		ar.Player, ar.Team, ar.Season, ratings,
	)
	return err
}
