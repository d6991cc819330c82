package stats

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/dugoutlab/dugout-data/internal/store"
)

// Filter is an eligibility predicate over a season row.
type Filter interface {
	Eligible(rec store.Record) bool
}

// PitchingEligibility holds the minimum-exposure thresholds for pitcher
// rankings. All bounds are conjunctive; a record missing any referenced
// field is ineligible (an absent workload cannot clear a threshold).
type PitchingEligibility struct {
	MinInnings float64
	MinGames   float64
	MinStarts  float64
	// MinRelief bounds the derived relief-appearance count |G - GS|.
	MinRelief float64
}

func (e PitchingEligibility) Eligible(rec store.Record) bool {
	ip, ok := rec.Float("ip")
	if !ok || ip < e.MinInnings {
		return false
	}
	games, ok := rec.Float("games")
	if !ok || games < e.MinGames {
		return false
	}
	starts, ok := rec.Float("starts")
	if !ok || starts < e.MinStarts {
		return false
	}
	return math.Abs(games-starts) >= e.MinRelief
}

// BattingEligibility holds the thresholds for batter rankings: minimum plate
// appearances, an age window, and a position whitelist (substring match
// against the roster position string, any match qualifies).
type BattingEligibility struct {
	MinPA     float64
	MinAge    float64
	MaxAge    float64
	Positions []string
}

func (e BattingEligibility) Eligible(rec store.Record) bool {
	pa, ok := rec.Float("pa")
	if !ok || pa < e.MinPA {
		return false
	}
	age, ok := rec.Float("age")
	if !ok || age < e.MinAge {
		return false
	}
	if e.MaxAge > 0 && age > e.MaxAge {
		return false
	}
	if len(e.Positions) == 0 {
		return true
	}
	pos := rec.Str("position")
	for _, p := range e.Positions {
		if p != "" && strings.Contains(pos, p) {
			return true
		}
	}
	return false
}

// Entry is one ranked row.
type Entry struct {
	Player string  `json:"player"`
	Team   string  `json:"team"`
	Season int     `json:"season"`
	Value  float64 `json:"value"`
}

// Rank filters records by eligibility, drops rows with an absent value for
// the statistic, sorts by value in the given direction, and truncates to
// topN (<= 0 means no truncation).
//
// Ties keep their input order: the sort is stable, matching the stable-sort
// semantics the views were built against.
func Rank(recs []store.Record, name string, ascending bool, topN int, filter Filter) []Entry {
	entries := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		if filter != nil && !filter.Eligible(rec) {
			continue
		}
		v, ok := Derive(rec, name)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Player: rec.Player,
			Team:   rec.Team,
			Season: rec.Season,
			Value:  v,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if ascending {
			return entries[i].Value < entries[j].Value
		}
		return entries[i].Value > entries[j].Value
	})

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// ScatterPoint is one player's paired metric values for the detail view.
type ScatterPoint struct {
	Player string  `json:"player"`
	Team   string  `json:"team"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Scatter returns (x, y) pairs for eligible players, dropping rows missing
// either side.
func Scatter(recs []store.Record, xStat, yStat string, filter Filter) []ScatterPoint {
	out := make([]ScatterPoint, 0, len(recs))
	for _, rec := range recs {
		if filter != nil && !filter.Eligible(rec) {
			continue
		}
		x, ok1 := Derive(rec, xStat)
		y, ok2 := Derive(rec, yStat)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, ScatterPoint{Player: rec.Player, Team: rec.Team, X: x, Y: y})
	}
	return out
}

// --------------------------------------------------------------------------
// Team leaderboard summary
// --------------------------------------------------------------------------

// LeaderboardEntry is one team's placing in a single-statistic leaderboard.
type LeaderboardEntry struct {
	Team  string  `json:"team"`
	Value float64 `json:"value"`
}

// LeaderboardItem is the outcome for one statistic in the batch: either the
// top/bottom placings, or a skip with its reason. Skips are observable, not
// silently absorbed.
type LeaderboardItem struct {
	Stat    string             `json:"stat"`
	Entries []LeaderboardEntry `json:"entries,omitempty"`
	Skipped bool               `json:"skipped,omitempty"`
	Reason  string             `json:"reason,omitempty"`
}

// leaderboardSize is how many teams each statistic's leaderboard shows.
const leaderboardSize = 3

// LeaderboardSummary independently aggregates each metric at team level and
// returns its top (or bottom) three teams. A metric whose aggregation fails
// is skipped with a reason; the rest of the batch completes.
//
// Values are rounded to 3 decimal places, the display convention for ratio
// statistics.
func LeaderboardSummary(recs []store.Record, reg Registry, metrics []string, bottom bool) []LeaderboardItem {
	items := make([]LeaderboardItem, 0, len(metrics))
	for _, m := range metrics {
		item := LeaderboardItem{Stat: m}

		aggs, err := Aggregate(recs, reg, m)
		if err != nil {
			item.Skipped = true
			item.Reason = skipReason(err)
			items = append(items, item)
			continue
		}
		if len(aggs) == 0 {
			item.Skipped = true
			item.Reason = "no eligible rows"
			items = append(items, item)
			continue
		}

		def := reg[m]
		entries := make([]LeaderboardEntry, 0, len(aggs))
		for _, a := range aggs {
			entries = append(entries, LeaderboardEntry{Team: a.Team, Value: Round3(a.Value)})
		}
		// "Top" means best, which is ascending for lower-is-better stats;
		// "bottom" inverts that.
		ascending := def.LowerIsBetter
		if bottom {
			ascending = !ascending
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if ascending {
				return entries[i].Value < entries[j].Value
			}
			return entries[i].Value > entries[j].Value
		})
		if len(entries) > leaderboardSize {
			entries = entries[:leaderboardSize]
		}
		item.Entries = entries
		items = append(items, item)
	}
	return items
}

func skipReason(err error) string {
	var mf *MissingFieldError
	if errors.As(err, &mf) {
		return "missing column: " + mf.Field
	}
	if errors.Is(err, ErrNoDefinition) {
		return "no stat definition"
	}
	return err.Error()
}

// Round3 rounds to 3 decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
