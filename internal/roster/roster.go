// Package roster builds roster-composition views for a single team and
// season: batting-direction counts, position counts, the age-by-position
// grid, and the pitcher age distribution split by throwing hand.
//
// Handedness and position come from the scraper as Japanese descriptor
// strings ("右投左打", "外野手（右）" etc); classification is by substring
// and leading glyph, normalized to English labels for the API.
package roster

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dugoutlab/dugout-data/internal/store"
)

// Normalized handedness labels.
const (
	BatsRight   = "right"
	BatsLeft    = "left"
	BatsSwitch  = "switch"
	ThrowsRight = "right"
	ThrowsLeft  = "left"
	Unknown     = "unknown"
)

// Position classes for the age grid.
const (
	ClassPitcher  = "pitcher"
	ClassCatcher  = "catcher"
	ClassInfield  = "infield"
	ClassOutfield = "outfield"
)

// fieldPositions is the display order for the eight field position glyphs.
var fieldPositions = []string{"捕", "一", "二", "三", "遊", "左", "中", "右"}

// BattingDirection classifies a handedness descriptor's batting side.
func BattingDirection(hand string) string {
	h := normalizeHand(hand)
	switch {
	case strings.Contains(h, "右打"):
		return BatsRight
	case strings.Contains(h, "左打"):
		return BatsLeft
	case strings.Contains(h, "両打"):
		return BatsSwitch
	}
	return Unknown
}

// ThrowingHand classifies a handedness descriptor's throwing side.
func ThrowingHand(hand string) string {
	h := normalizeHand(hand)
	switch {
	case strings.Contains(h, "左投"):
		return ThrowsLeft
	case strings.Contains(h, "右投"):
		return ThrowsRight
	}
	return Unknown
}

// throwBatCombos maps the six full throw/bat descriptors to API labels.
var throwBatCombos = []struct{ substr, label string }{
	{"右投右打", "right-right"},
	{"右投左打", "right-left"},
	{"右投両打", "right-switch"},
	{"左投右打", "left-right"},
	{"左投左打", "left-left"},
	{"左投両打", "left-switch"},
}

// ThrowBat classifies the full throw/bat combination.
func ThrowBat(hand string) string {
	h := normalizeHand(hand)
	for _, c := range throwBatCombos {
		if strings.Contains(h, c.substr) {
			return c.label
		}
	}
	return Unknown
}

// PositionClass buckets a position string by its leading glyph; empty when
// the glyph is not a known position.
func PositionClass(position string) string {
	if position == "" {
		return ""
	}
	lead := string([]rune(position)[0])
	switch {
	case lead == "投":
		return ClassPitcher
	case lead == "捕":
		return ClassCatcher
	case strings.Contains("一二三遊", lead):
		return ClassInfield
	case strings.Contains("左中右", lead):
		return ClassOutfield
	}
	return ""
}

func normalizeHand(hand string) string {
	return strings.NewReplacer(" ", "", "　", "").Replace(strings.TrimSpace(hand))
}

// ageGroup buckets ages; 35 and up share one bucket.
func ageGroup(age int) string {
	if age <= 34 {
		return strconv.Itoa(age)
	}
	return "35+"
}

// --------------------------------------------------------------------------
// Batting composition
// --------------------------------------------------------------------------

// PositionCount is one position glyph's player count.
type PositionCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// GridPlayer is one cell entry in the age-by-position grid.
type GridPlayer struct {
	Player string `json:"player"`
	Bats   string `json:"bats"`
}

// GridCell is one (age group, position class) cell.
type GridCell struct {
	AgeGroup      string       `json:"age_group"`
	PositionClass string       `json:"position_class"`
	Players       []GridPlayer `json:"players"`
}

// BattingComposition is the batter roster view for one team and season.
type BattingComposition struct {
	Directions    map[string]int  `json:"directions"`
	MainPositions []PositionCount `json:"main_positions"`
	AgeGrid       []GridCell      `json:"age_grid"`
}

// Batting builds the batter composition from a team's season records. Only
// rows whose handedness mentions a batting side are counted, matching the
// source views.
func Batting(recs []store.Record) BattingComposition {
	comp := BattingComposition{Directions: map[string]int{}}

	var kept []store.Record
	for _, rec := range recs {
		hand := rec.Str("hand")
		if hand == "" || !strings.Contains(hand, "打") {
			continue
		}
		kept = append(kept, rec)
		comp.Directions[BattingDirection(hand)]++
	}

	// Main position: leading glyph, counted over the fixed eight positions.
	posCounts := map[string]int{}
	for _, rec := range kept {
		pos := rec.Str("position")
		if pos == "" {
			continue
		}
		posCounts[string([]rune(pos)[0])]++
	}
	for _, p := range fieldPositions {
		comp.MainPositions = append(comp.MainPositions, PositionCount{Position: p, Count: posCounts[p]})
	}

	// Age x position-class grid.
	cells := map[[2]string][]GridPlayer{}
	for _, rec := range kept {
		class := PositionClass(rec.Str("position"))
		if class == "" {
			continue
		}
		age, ok := rec.Float("age")
		if !ok {
			age = 0
		}
		key := [2]string{ageGroup(int(age)), class}
		cells[key] = append(cells[key], GridPlayer{
			Player: rec.Player,
			Bats:   BattingDirection(rec.Str("hand")),
		})
	}
	for key, players := range cells {
		comp.AgeGrid = append(comp.AgeGrid, GridCell{
			AgeGroup:      key[0],
			PositionClass: key[1],
			Players:       players,
		})
	}
	sort.Slice(comp.AgeGrid, func(i, j int) bool {
		if comp.AgeGrid[i].AgeGroup != comp.AgeGrid[j].AgeGroup {
			return comp.AgeGrid[i].AgeGroup < comp.AgeGrid[j].AgeGroup
		}
		return comp.AgeGrid[i].PositionClass < comp.AgeGrid[j].PositionClass
	})
	return comp
}

// --------------------------------------------------------------------------
// Pitching composition
// --------------------------------------------------------------------------

// AgeBucket is one age's pitcher counts split by throwing hand.
type AgeBucket struct {
	Age     int      `json:"age"`
	Left    int      `json:"left"`
	Right   int      `json:"right"`
	Players []string `json:"players"`
}

// PitchingComposition is the pitcher roster view for one team and season.
type PitchingComposition struct {
	Ages     []AgeBucket    `json:"ages"`
	LeftPct  float64        `json:"left_pct"`
	RightPct float64        `json:"right_pct"`
	ThrowBat map[string]int `json:"throw_bat"`
}

// Ages outside this window are clipped into it for the distribution.
const (
	minPitcherAge = 18
	maxPitcherAge = 43
)

// Pitching builds the pitcher age distribution from a team's season records.
// Rows missing position, age, or handedness are dropped; only pitchers with
// a classified throwing hand are counted.
func Pitching(recs []store.Record) PitchingComposition {
	comp := PitchingComposition{ThrowBat: map[string]int{}}
	buckets := map[int]*AgeBucket{}
	left, right := 0, 0

	for _, rec := range recs {
		pos := rec.Str("position")
		hand := rec.Str("hand")
		age, ok := rec.Float("age")
		if pos == "" || hand == "" || !ok || !strings.Contains(pos, "投") {
			continue
		}
		throws := ThrowingHand(hand)
		if throws == Unknown {
			continue
		}
		a := int(age)
		if a < minPitcherAge {
			a = minPitcherAge
		}
		if a > maxPitcherAge {
			a = maxPitcherAge
		}
		b, exists := buckets[a]
		if !exists {
			b = &AgeBucket{Age: a}
			buckets[a] = b
		}
		if throws == ThrowsLeft {
			b.Left++
			left++
		} else {
			b.Right++
			right++
		}
		b.Players = append(b.Players, rec.Player)
		comp.ThrowBat[ThrowBat(hand)]++
	}

	if len(buckets) > 0 {
		lo, hi := maxPitcherAge, minPitcherAge
		for a := range buckets {
			if a < lo {
				lo = a
			}
			if a > hi {
				hi = a
			}
		}
		// Fill the span so the distribution has no gaps.
		for a := lo; a <= hi; a++ {
			if b, exists := buckets[a]; exists {
				comp.Ages = append(comp.Ages, *b)
			} else {
				comp.Ages = append(comp.Ages, AgeBucket{Age: a})
			}
		}
	}

	if total := left + right; total > 0 {
		comp.LeftPct = round1(float64(left) / float64(total) * 100)
		comp.RightPct = round1(float64(right) / float64(total) * 100)
	}
	return comp
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
