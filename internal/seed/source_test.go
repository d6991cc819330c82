package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout-data/internal/store"
)

// writeSourceDB creates a scraper-shaped SQLite file for tests.
func writeSourceDB(t *testing.T, ddl string, inserts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(ddl)
	require.NoError(t, err)
	for _, stmt := range inserts {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestReadStats_MapsScraperColumnsToCanonicalKeys(t *testing.T) {
	path := writeSourceDB(t,
		`CREATE TABLE pitching_stats (
			"選手名" TEXT, team_name TEXT, year TEXT, filename TEXT,
			"防御率" REAL, "IP_" REAL, "登板" INTEGER, "奪三振" INTEGER,
			position TEXT, "無関係" TEXT
		)`,
		`INSERT INTO pitching_stats VALUES
			('戸郷', 'giants', '2024.0', 'togo.png', 2.45, 170.2, 28, 156, '投手', 'junk')`,
	)

	db, err := openSource(path)
	require.NoError(t, err)
	defer db.Close()

	var badRows []string
	recs, err := readStats(db, store.RolePitching, func(r string) { badRows = append(badRows, r) })
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Empty(t, badRows)

	rec := recs[0]
	assert.Equal(t, "戸郷", rec.Player)
	assert.Equal(t, "giants", rec.Team)
	assert.Equal(t, 2024, rec.Season)
	assert.Equal(t, "togo.png", rec.ImageFile)

	era, ok := rec.Float("era")
	require.True(t, ok)
	assert.Equal(t, 2.45, era)
	ip, ok := rec.Float("ip")
	require.True(t, ok)
	assert.InDelta(t, 170.2, ip, 1e-9)
	games, ok := rec.Float("games")
	require.True(t, ok)
	assert.Equal(t, 28.0, games)
	so, ok := rec.Float("so")
	require.True(t, ok)
	assert.Equal(t, 156.0, so)

	// Bio columns pass through; unmapped scraper columns are dropped.
	assert.Equal(t, "投手", rec.Str("position"))
	assert.NotContains(t, rec.Fields, "無関係")
}

func TestReadStats_StealColumnsUseScraperHeaders(t *testing.T) {
	path := writeSourceDB(t,
		`CREATE TABLE pitching_stats (
			"選手名" TEXT, team_name TEXT, year INTEGER,
			"許盗数" INTEGER, "被盗企" INTEGER
		)`,
		`INSERT INTO pitching_stats VALUES ('山本', 'buffaloes', 2023, 4, 13)`,
	)

	db, err := openSource(path)
	require.NoError(t, err)
	defer db.Close()

	recs, err := readStats(db, store.RolePitching, func(string) {})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	allowed, ok := recs[0].Float("sb_allowed")
	require.True(t, ok)
	assert.Equal(t, 4.0, allowed)
	attempts, ok := recs[0].Float("sb_att_against")
	require.True(t, ok)
	assert.Equal(t, 13.0, attempts)
}

func TestReadStats_BattingStealAttemptsHeader(t *testing.T) {
	path := writeSourceDB(t,
		`CREATE TABLE batting_stats ("選手名" TEXT, team_name TEXT, year INTEGER, "盗塁" INTEGER, "盗塁企画" INTEGER)`,
		`INSERT INTO batting_stats VALUES ('近本', 'hanshin', 2023, 28, 34)`,
	)

	db, err := openSource(path)
	require.NoError(t, err)
	defer db.Close()

	recs, err := readStats(db, store.RoleBatting, func(string) {})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	att, ok := recs[0].Float("sb_att")
	require.True(t, ok)
	assert.Equal(t, 34.0, att)
}

func TestReadStats_InningsComeFromDecimalColumnOnly(t *testing.T) {
	// 投球回 is base-3 fractional notation, not a decimal; only IP_ may feed
	// innings-weighted aggregation.
	path := writeSourceDB(t,
		`CREATE TABLE pitching_stats ("選手名" TEXT, team_name TEXT, year INTEGER, "IP_" REAL, "投球回" TEXT)`,
		`INSERT INTO pitching_stats VALUES ('戸郷', 'giants', 2024, 143.667, '143.2')`,
	)

	db, err := openSource(path)
	require.NoError(t, err)
	defer db.Close()

	recs, err := readStats(db, store.RolePitching, func(string) {})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	ip, ok := recs[0].Float("ip")
	require.True(t, ok)
	assert.InDelta(t, 143.667, ip, 1e-9)
	assert.NotContains(t, recs[0].Fields, "投球回")
}

func TestReadStats_SkipsIncompleteRowsWithReason(t *testing.T) {
	path := writeSourceDB(t,
		`CREATE TABLE batting_stats ("選手名" TEXT, team_name TEXT, year INTEGER, "打率" REAL)`,
		`INSERT INTO batting_stats VALUES ('岡本', 'giants', 2024, 0.280)`,
		`INSERT INTO batting_stats VALUES ('', 'giants', 2024, 0.300)`,
		`INSERT INTO batting_stats VALUES ('無年度', 'giants', NULL, 0.250)`,
	)

	db, err := openSource(path)
	require.NoError(t, err)
	defer db.Close()

	var badRows []string
	recs, err := readStats(db, store.RoleBatting, func(r string) { badRows = append(badRows, r) })
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "岡本", recs[0].Player)
	assert.Len(t, badRows, 2)
}

func TestReadFielding(t *testing.T) {
	path := writeSourceDB(t,
		`CREATE TABLE fielding_stats ("選手名" TEXT, team_name TEXT, year INTEGER, position TEXT, errors INTEGER)`,
		`INSERT INTO fielding_stats VALUES ('岡本', 'giants', 2024, '三塁手', 7)`,
	)

	db, err := openSource(path)
	require.NoError(t, err)
	defer db.Close()

	recs, err := readFielding(db, func(string) {})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "三塁手", recs[0].Position)
	assert.EqualValues(t, int64(7), recs[0].Fields["errors"])
}

func TestAsYear(t *testing.T) {
	assert.Equal(t, 2024, asYear(int64(2024)))
	assert.Equal(t, 2024, asYear(2024.0))
	assert.Equal(t, 2024, asYear("2024"))
	assert.Equal(t, 2024, asYear("2024.0"))
	assert.Equal(t, 0, asYear("unknown"))
	assert.Equal(t, 0, asYear(nil))
}
