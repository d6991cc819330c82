// Package player assembles the player detail panel: latest-season
// biographical info and the career season rows.
package player

import (
	"sort"
	"strconv"

	"github.com/dugoutlab/dugout-data/internal/store"
)

// Bio is the latest-season biographical block. Fields the source data does
// not carry, or carries as zero/junk placeholders, read "unknown".
type Bio struct {
	Number   string `json:"number"`
	Position string `json:"position"`
	Hand     string `json:"hand"`
	Draft    string `json:"draft"`
	Birth    string `json:"birth"`
	Age      string `json:"age"`
}

// Summary is the player detail panel payload.
type Summary struct {
	Player  string         `json:"player"`
	Bio     Bio            `json:"bio"`
	Seasons []store.Record `json:"seasons"`
}

const unknown = "unknown"

// Build assembles a summary from a player's records. Seasons are returned
// oldest first; the bio comes from the most recent season.
func Build(name string, recs []store.Record) Summary {
	s := Summary{Player: name}
	if len(recs) == 0 {
		return s
	}

	sorted := make([]store.Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Season < sorted[j].Season })
	s.Seasons = sorted

	latest := sorted[len(sorted)-1]
	s.Bio = Bio{
		Number:   intField(latest, "number"),
		Position: strField(latest, "position"),
		Hand:     strField(latest, "hand"),
		Draft:    strField(latest, "draft"),
		Birth:    strField(latest, "birth"),
		Age:      intField(latest, "age"),
	}
	return s
}

// LatestImageFile returns the image filename from the most recent season
// that has one.
func LatestImageFile(recs []store.Record) (int, string) {
	season, file := 0, ""
	for _, rec := range recs {
		if rec.ImageFile != "" && rec.Season >= season {
			season, file = rec.Season, rec.ImageFile
		}
	}
	return season, file
}

// strField normalizes a bio string; zero-ish placeholders mean the scraper
// had no value.
func strField(rec store.Record, field string) string {
	v := rec.Str(field)
	switch v {
	case "", "0", "0.0", "nan", "NaN":
		return unknown
	}
	return v
}

// intField renders a numeric bio field (uniform number, age) as an integer
// string.
func intField(rec store.Record, field string) string {
	v, ok := rec.Float(field)
	if !ok || v == 0 {
		return unknown
	}
	return strconv.Itoa(int(v))
}
