package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads season row-sets through the pool's prepared statements.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SeasonRecords returns every (player, team) row for a role and season.
func (s *Store) SeasonRecords(ctx context.Context, role Role, season int) ([]Record, error) {
	rows, err := s.pool.Query(ctx, "player_stats_by_season", string(role), season)
	if err != nil {
		return nil, fmt.Errorf("query %s season %d: %w", role, season, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// PlayerRecords returns a player's rows across all seasons, oldest first.
func (s *Store) PlayerRecords(ctx context.Context, role Role, player string) ([]Record, error) {
	rows, err := s.pool.Query(ctx, "player_stats_by_player", string(role), player)
	if err != nil {
		return nil, fmt.Errorf("query %s player %q: %w", role, player, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Seasons returns the seasons present for a role, ascending.
func (s *Store) Seasons(ctx context.Context, role Role) ([]int, error) {
	rows, err := s.pool.Query(ctx, "seasons_for_role", string(role))
	if err != nil {
		return nil, fmt.Errorf("query seasons for %s: %w", role, err)
	}
	defer rows.Close()

	var seasons []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, y)
	}
	return seasons, rows.Err()
}

// FieldingRecord is one (player, team, position, season) fielding row.
type FieldingRecord struct {
	Player   string         `json:"player"`
	Team     string         `json:"team"`
	Position string         `json:"position"`
	Season   int            `json:"season"`
	Fields   map[string]any `json:"fields"`
}

// FieldingRecords returns a player's fielding rows across seasons.
func (s *Store) FieldingRecords(ctx context.Context, player string) ([]FieldingRecord, error) {
	rows, err := s.pool.Query(ctx, "fielding_by_player", player)
	if err != nil {
		return nil, fmt.Errorf("query fielding for %q: %w", player, err)
	}
	defer rows.Close()

	var out []FieldingRecord
	for rows.Next() {
		var rec FieldingRecord
		var raw []byte
		if err := rows.Scan(&rec.Player, &rec.Team, &rec.Position, &rec.Season, &raw); err != nil {
			return nil, fmt.Errorf("scan fielding row: %w", err)
		}
		if err := json.Unmarshal(raw, &rec.Fields); err != nil {
			return nil, fmt.Errorf("decode fielding stats: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// AbilityRating is one scouted ability-rating row.
type AbilityRating struct {
	Player  string         `json:"player"`
	Team    string         `json:"team"`
	Season  int            `json:"season"`
	Ratings map[string]any `json:"ratings"`
}

// AbilityRatings returns a player's scouted ratings across seasons.
func (s *Store) AbilityRatings(ctx context.Context, player string) ([]AbilityRating, error) {
	rows, err := s.pool.Query(ctx, "abilities_by_player", player)
	if err != nil {
		return nil, fmt.Errorf("query abilities for %q: %w", player, err)
	}
	defer rows.Close()

	var out []AbilityRating
	for rows.Next() {
		var ar AbilityRating
		var raw []byte
		if err := rows.Scan(&ar.Player, &ar.Team, &ar.Season, &raw); err != nil {
			return nil, fmt.Errorf("scan ability row: %w", err)
		}
		if err := json.Unmarshal(raw, &ar.Ratings); err != nil {
			return nil, fmt.Errorf("decode ratings: %w", err)
		}
		out = append(out, ar)
	}
	return out, rows.Err()
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows pgxRows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var rec Record
		var imageFile *string
		var raw []byte
		if err := rows.Scan(&rec.Player, &rec.Team, &rec.Season, &imageFile, &raw); err != nil {
			return nil, fmt.Errorf("scan player row: %w", err)
		}
		if imageFile != nil {
			rec.ImageFile = *imageFile
		}
		if err := json.Unmarshal(raw, &rec.Fields); err != nil {
			return nil, fmt.Errorf("decode stats: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// FilterTeams keeps only records whose team is in the given set. An empty
// set keeps everything.
func FilterTeams(recs []Record, teams []string) []Record {
	if len(teams) == 0 {
		return recs
	}
	want := make(map[string]bool, len(teams))
	for _, t := range teams {
		want[t] = true
	}
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if want[r.Team] {
			out = append(out, r)
		}
	}
	return out
}
