package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout-data/internal/store"
)

func season(year int, fields map[string]any) store.Record {
	return store.Record{Player: "okamoto", Team: "giants", Season: year, Fields: fields}
}

func TestBuild_SeasonsOldestFirstBioFromLatest(t *testing.T) {
	recs := []store.Record{
		season(2024, map[string]any{"position": "三塁手", "age": 28.0, "number": 25.0}),
		season(2022, map[string]any{"position": "一塁手", "age": 26.0, "number": 25.0}),
		season(2023, map[string]any{"position": "三塁手", "age": 27.0, "number": 25.0}),
	}

	s := Build("okamoto", recs)

	require.Len(t, s.Seasons, 3)
	assert.Equal(t, 2022, s.Seasons[0].Season)
	assert.Equal(t, 2024, s.Seasons[2].Season)
	assert.Equal(t, "三塁手", s.Bio.Position)
	assert.Equal(t, "28", s.Bio.Age)
	assert.Equal(t, "25", s.Bio.Number)
}

func TestBuild_ZeroishPlaceholdersReadUnknown(t *testing.T) {
	recs := []store.Record{
		season(2024, map[string]any{
			"position": "nan", "hand": "0", "draft": "", "birth": "0.0",
			"age": 0.0, "number": "NaN",
		}),
	}

	s := Build("okamoto", recs)
	assert.Equal(t, "unknown", s.Bio.Position)
	assert.Equal(t, "unknown", s.Bio.Hand)
	assert.Equal(t, "unknown", s.Bio.Draft)
	assert.Equal(t, "unknown", s.Bio.Birth)
	assert.Equal(t, "unknown", s.Bio.Age)
	assert.Equal(t, "unknown", s.Bio.Number)
}

func TestBuild_EmptyRecords(t *testing.T) {
	s := Build("nobody", nil)
	assert.Equal(t, "nobody", s.Player)
	assert.Empty(t, s.Seasons)
	assert.Empty(t, s.Bio.Position)
}

func TestLatestImageFile(t *testing.T) {
	recs := []store.Record{
		{Player: "p", Season: 2022, ImageFile: "old.png"},
		{Player: "p", Season: 2024, ImageFile: "new.png"},
		{Player: "p", Season: 2023, ImageFile: ""},
	}

	year, file := LatestImageFile(recs)
	assert.Equal(t, 2024, year)
	assert.Equal(t, "new.png", file)
}

func TestLatestImageFile_NoneAvailable(t *testing.T) {
	recs := []store.Record{{Player: "p", Season: 2024}}

	year, file := LatestImageFile(recs)
	assert.Equal(t, 0, year)
	assert.Equal(t, "", file)
}
