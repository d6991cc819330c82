package stats

import (
	"math"

	"github.com/dugoutlab/dugout-data/internal/store"
)

// Formula computes a derived statistic from a record's base fields. Formulas
// are pure: each call recomputes from base fields and nothing is cached or
// mutated.
type Formula func(rec store.Record) (float64, bool)

// formulas maps derived statistic names to their fixed formulas. A derived
// statistic is always recomputed from base fields, never read from a stored
// column, because re-grouping needs the components.
var formulas = map[string]Formula{
	// OPS is OBP + SLG of the stored rates, matching the source data's
	// convention rather than the total-bases construction.
	"ops": func(rec store.Record) (float64, bool) {
		obp, ok1 := rec.Float("obp")
		slg, ok2 := rec.Float("slg")
		if !ok1 || !ok2 {
			return 0, false
		}
		return obp + slg, true
	},

	// Three-true-outcomes rate: (BB + SO + HR) / PA.
	"tto_rate": func(rec store.Record) (float64, bool) {
		bb, ok1 := rec.Float("bb")
		so, ok2 := rec.Float("so")
		hr, ok3 := rec.Float("hr")
		pa, ok4 := rec.Float("pa")
		if !ok1 || !ok2 || !ok3 || !ok4 || pa == 0 {
			return 0, false
		}
		return (bb + so + hr) / pa, true
	},

	// Batting average on balls in play: (H - HR) / (AB - SO - HR + SF).
	// Sacrifice flies default to zero when absent; that is a deliberate
	// per-formula convention, not a blanket default.
	"babip": func(rec store.Record) (float64, bool) {
		den, ok := deriveBIP(rec)
		if !ok || den == 0 {
			return 0, false
		}
		h, ok1 := rec.Float("hits")
		hr, _ := rec.Float("hr")
		if !ok1 {
			return 0, false
		}
		return (h - hr) / den, true
	},

	// Balls in play, the natural denominator for babip.
	"bip": func(rec store.Record) (float64, bool) {
		return deriveBIP(rec)
	},

	// Batter strikeout rate: SO / PA.
	"k_rate": func(rec store.Record) (float64, bool) {
		so, ok1 := rec.Float("so")
		pa, ok2 := rec.Float("pa")
		if !ok1 || !ok2 || pa == 0 {
			return 0, false
		}
		return so / pa, true
	},

	// Stolen-base success rate: SB / attempts.
	"sb_rate": func(rec store.Record) (float64, bool) {
		sb, ok1 := rec.Float("sb")
		att, ok2 := rec.Float("sb_att")
		if !ok1 || !ok2 || att == 0 {
			return 0, false
		}
		return sb / att, true
	},

	// Relief appearances: |G - GS|, used by the ranking eligibility filter.
	"relief": func(rec store.Record) (float64, bool) {
		g, ok1 := rec.Float("games")
		gs, ok2 := rec.Float("starts")
		if !ok1 || !ok2 {
			return 0, false
		}
		return math.Abs(g - gs), true
	},

	// Batting average recomputed from counts.
	"avg": func(rec store.Record) (float64, bool) {
		h, ok1 := rec.Float("hits")
		ab, ok2 := rec.Float("ab")
		if !ok1 || !ok2 || ab == 0 {
			return 0, false
		}
		return h / ab, true
	},
}

func deriveBIP(rec store.Record) (float64, bool) {
	ab, ok1 := rec.Float("ab")
	so, ok2 := rec.Float("so")
	hr, ok3 := rec.Float("hr")
	if !ok1 || !ok2 || !ok3 {
		return 0, false
	}
	sf, ok := rec.Float("sf")
	if !ok {
		sf = 0
	}
	return ab - so - hr + sf, true
}

// Derive returns the named statistic for a record: a derived formula when one
// exists, otherwise the raw coerced column. Absence propagates; a missing
// required base field never defaults to zero.
func Derive(rec store.Record, name string) (float64, bool) {
	if f, ok := formulas[name]; ok {
		return f(rec)
	}
	return rec.Float(name)
}
