package seed

import (
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/dugoutlab/dugout-data/internal/store"
)

// The scraper writes one SQLite database per role, each with a single flat
// table. Identity columns are fixed; stat columns carry the scraper's
// Japanese headers and are renamed to canonical keys on the way in.
const (
	pitchingSourceTable = "pitching_stats"
	battingSourceTable  = "batting_stats"
	fieldingSourceTable = "fielding_stats"
	ratingsSourceTable  = "ability_ratings"
)

// pitchingColumns maps the scraper's pitching headers to canonical keys.
var pitchingColumns = map[string]string{
	"防御率": "era",
	// 投球回 carries the scoreboard's base-3 fractional notation ("143.2" is
	// 143 and two thirds); IP_ is the decimal column the scraper computes
	// with, so it is the only innings source here.
	"IP_": "ip",
	"登板":  "games",
	"先発":   "starts",
	"奪三振":  "so",
	"与四球":  "bb",
	"与死球":  "hbp",
	"被安打":  "hits_allowed",
	"被本率":  "hr9",
	"QS":   "qs",
	"HQS":  "hqs",
	"完投":   "cg",
	"完封":   "sho",
	"勝":    "wins",
	"セーブ":  "saves",
	"HP":   "holds",
	"暴投":   "wild_pitches",
	"許盗数": "sb_allowed",
	"被盗企": "sb_att_against",
	"打数":  "opp_ab",
}

// battingColumns maps the scraper's batting headers to canonical keys.
var battingColumns = map[string]string{
	"打率":   "avg",
	"出塁率":  "obp",
	"長打率":  "slg",
	"本塁打":  "hr",
	"打点":   "rbi",
	"得点":   "runs",
	"四球":   "bb",
	"三振":   "so",
	"盗塁":   "sb",
	"盗塁企画": "sb_att",
	"打席":   "pa",
	"打数":   "ab",
	"安打":   "hits",
	"犠飛":   "sf",
}

// bioColumns pass through under their source names for both roles.
var bioColumns = map[string]bool{
	"position": true,
	"hand":     true,
	"draft":    true,
	"birth":    true,
	"age":      true,
	"number":   true,
}

func columnsForRole(role store.Role) map[string]string {
	if role == store.RoleBatting {
		return battingColumns
	}
	return pitchingColumns
}

func sourceTableForRole(role store.Role) string {
	if role == store.RoleBatting {
		return battingSourceTable
	}
	return pitchingSourceTable
}

// openSource opens a scraper SQLite database read-only.
func openSource(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// readStats reads every row of a role's source table as canonical records.
// Rows without a player name, team, or parseable year are reported through
// onBadRow and skipped.
func readStats(db *sql.DB, role store.Role, onBadRow func(reason string)) ([]store.Record, error) {
	table := sourceTableForRole(role)
	rows, err := db.Query("SELECT * FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}
	rename := columnsForRole(role)

	var out []store.Record
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}

		rec := store.Record{Fields: map[string]any{}}
		for i, col := range cols {
			v := normalizeValue(values[i])
			if v == nil {
				continue
			}
			switch col {
			case "選手名", "player_name":
				rec.Player, _ = v.(string)
			case "team_name":
				rec.Team, _ = v.(string)
			case "year":
				rec.Season = asYear(v)
			case "filename":
				rec.ImageFile, _ = v.(string)
			default:
				if canonical, ok := rename[col]; ok {
					rec.Fields[canonical] = v
				} else if bioColumns[col] {
					rec.Fields[col] = v
				}
			}
		}

		switch {
		case rec.Player == "":
			onBadRow("missing player name")
		case rec.Team == "":
			onBadRow("missing team for " + rec.Player)
		case rec.Season == 0:
			onBadRow("missing year for " + rec.Player)
		default:
			out = append(out, rec)
		}
	}
	return out, rows.Err()
}

// readFielding reads every row of the fielding source table.
func readFielding(db *sql.DB, onBadRow func(reason string)) ([]store.FieldingRecord, error) {
	rows, err := db.Query("SELECT * FROM " + fieldingSourceTable)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", fieldingSourceTable, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", fieldingSourceTable, err)
	}

	var out []store.FieldingRecord
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", fieldingSourceTable, err)
		}

		rec := store.FieldingRecord{Fields: map[string]any{}}
		for i, col := range cols {
			v := normalizeValue(values[i])
			if v == nil {
				continue
			}
			switch col {
			case "選手名", "player_name":
				rec.Player, _ = v.(string)
			case "team_name":
				rec.Team, _ = v.(string)
			case "year":
				rec.Season = asYear(v)
			case "position", "守備位置":
				rec.Position, _ = v.(string)
			default:
				rec.Fields[col] = v
			}
		}
		if rec.Player == "" || rec.Season == 0 {
			onBadRow("incomplete fielding row")
			continue
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// readRatings reads every row of the scouted ability ratings source table.
func readRatings(db *sql.DB, onBadRow func(reason string)) ([]store.AbilityRating, error) {
	rows, err := db.Query("SELECT * FROM " + ratingsSourceTable)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", ratingsSourceTable, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", ratingsSourceTable, err)
	}

	var out []store.AbilityRating
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", ratingsSourceTable, err)
		}

		ar := store.AbilityRating{Ratings: map[string]any{}}
		for i, col := range cols {
			v := normalizeValue(values[i])
			if v == nil {
				continue
			}
			switch col {
			case "選手名", "player_name":
				ar.Player, _ = v.(string)
			case "team_name":
				ar.Team, _ = v.(string)
			case "year":
				ar.Season = asYear(v)
			default:
				ar.Ratings[col] = v
			}
		}
		if ar.Player == "" || ar.Season == 0 {
			onBadRow("incomplete rating row")
			continue
		}
		out = append(out, ar)
	}
	return out, rows.Err()
}

// normalizeValue converts SQLite driver values into JSON-friendly ones.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(t)
	default:
		return v
	}
}

// asYear coerces the year column, which the scraper stores inconsistently
// as integer, float, or text.
func asYear(v any) int {
	switch t := v.(type) {
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return int(f)
		}
	}
	return 0
}
