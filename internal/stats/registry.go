// Package stats implements the statistic registry, derivation of rate
// statistics from counting columns, team-level re-aggregation, and ranking.
//
// The registry is the single source of truth for how a statistic combines
// across players. Rate statistics are always recombined from numerator and
// denominator sums; averaging the per-player rates is exactly the bug this
// package exists to prevent.
package stats

// Kind tags how a statistic aggregates across a team's rows.
type Kind int

const (
	// KindSum adds the base field across rows; absent values contribute
	// nothing.
	KindSum Kind = iota
	// KindRateOfCounts rebuilds a ratio from counting columns:
	// scale * sum(numerator fields) / sum(denominator).
	KindRateOfCounts
	// KindRateFromRate reconstructs each row's numerator from a stored or
	// derived rate (rate * denominator / scale) before summing.
	KindRateFromRate
	// KindSumDiff sums two fields separately per team and subtracts.
	KindSumDiff
	// KindMean is the explicit fallback: arithmetic mean of present values.
	KindMean
)

// Definition is one registry entry.
type Definition struct {
	Name string
	Kind Kind

	// KindSum / KindMean: source field (Name when empty).
	Field string
	// KindRateOfCounts: numerator counting fields, summed together.
	// KindSumDiff: exactly two fields, A then B, result A-B.
	Num []string
	// Rate field for KindRateFromRate; may name a derived statistic.
	Rate string
	// Denominator field for the two rate kinds; may name a derived statistic.
	Den string
	// Scale for rate kinds: value = Scale * sumNum / sumDen. Per-nine-inning
	// rates use 9; plain ratios use 1.
	Scale float64

	LowerIsBetter bool
}

// BaseFields returns every field a row must expose for this definition.
func (d Definition) BaseFields() []string {
	switch d.Kind {
	case KindSum, KindMean:
		return []string{d.sourceField()}
	case KindRateOfCounts:
		return append(append([]string{}, d.Num...), d.Den)
	case KindRateFromRate:
		return []string{d.Rate, d.Den}
	case KindSumDiff:
		return append([]string{}, d.Num...)
	}
	return nil
}

func (d Definition) sourceField() string {
	if d.Field != "" {
		return d.Field
	}
	return d.Name
}

// Registry maps statistic name to its definition.
type Registry map[string]Definition

// Lookup returns the definition for name, or ErrNoDefinition.
func (r Registry) Lookup(name string) (Definition, error) {
	d, ok := r[name]
	if !ok {
		return Definition{}, ErrNoDefinition
	}
	return d, nil
}

// Names returns the registered statistic names in registration order of the
// role's metric list.
func (r Registry) Names() []string {
	out := make([]string, 0, len(r))
	for name := range r {
		out = append(out, name)
	}
	return out
}

// Pitching is the registry for pitcher season statistics.
var Pitching = Registry{
	"era":       {Name: "era", Kind: KindRateFromRate, Rate: "era", Den: "ip", Scale: 9, LowerIsBetter: true},
	"hr9":       {Name: "hr9", Kind: KindRateFromRate, Rate: "hr9", Den: "ip", Scale: 9, LowerIsBetter: true},
	"whip":      {Name: "whip", Kind: KindRateOfCounts, Num: []string{"hits_allowed", "bb"}, Den: "ip", Scale: 1, LowerIsBetter: true},
	"k9":        {Name: "k9", Kind: KindRateOfCounts, Num: []string{"so"}, Den: "ip", Scale: 9},
	"bb9":       {Name: "bb9", Kind: KindRateOfCounts, Num: []string{"bb"}, Den: "ip", Scale: 9, LowerIsBetter: true},
	"qs_rate":   {Name: "qs_rate", Kind: KindRateOfCounts, Num: []string{"qs"}, Den: "starts", Scale: 1},
	"hqs_rate":  {Name: "hqs_rate", Kind: KindRateOfCounts, Num: []string{"hqs"}, Den: "starts", Scale: 1},
	"kbb":       {Name: "kbb", Kind: KindRateOfCounts, Num: []string{"so"}, Den: "bb", Scale: 1},
	"oba":       {Name: "oba", Kind: KindRateOfCounts, Num: []string{"hits_allowed"}, Den: "opp_ab", Scale: 1, LowerIsBetter: true},
	"steal_rate": {Name: "steal_rate", Kind: KindRateOfCounts, Num: []string{"sb_allowed"}, Den: "sb_att_against", Scale: 1, LowerIsBetter: true},

	"so":           {Name: "so", Kind: KindSum},
	"bb":           {Name: "bb", Kind: KindSum, LowerIsBetter: true},
	"hbp":          {Name: "hbp", Kind: KindSum, LowerIsBetter: true},
	"hits_allowed": {Name: "hits_allowed", Kind: KindSum, LowerIsBetter: true},
	"sho":          {Name: "sho", Kind: KindSum},
	"cg":           {Name: "cg", Kind: KindSum},
	"wins":         {Name: "wins", Kind: KindSum},
	"saves":        {Name: "saves", Kind: KindSum},
	"holds":        {Name: "holds", Kind: KindSum},
	"wild_pitches": {Name: "wild_pitches", Kind: KindSum, LowerIsBetter: true},

	"wins_minus_saves": {Name: "wins_minus_saves", Kind: KindSumDiff, Num: []string{"wins", "saves"}},
}

// PitchingLeaderboard is the fixed metric order for the pitching team
// leaderboard summary.
var PitchingLeaderboard = []string{
	"era", "so", "bb", "hits_allowed", "hr9", "whip", "k9", "bb9", "qs_rate",
	"kbb", "oba", "hqs_rate", "sho", "cg", "hbp", "steal_rate", "wins_minus_saves",
}

// Batting is the registry for batter season statistics.
var Batting = Registry{
	"avg":      {Name: "avg", Kind: KindRateOfCounts, Num: []string{"hits"}, Den: "ab", Scale: 1},
	"obp":      {Name: "obp", Kind: KindRateFromRate, Rate: "obp", Den: "ab", Scale: 1},
	"slg":      {Name: "slg", Kind: KindRateFromRate, Rate: "slg", Den: "ab", Scale: 1},
	"ops":      {Name: "ops", Kind: KindRateFromRate, Rate: "ops", Den: "ab", Scale: 1},
	"tto_rate": {Name: "tto_rate", Kind: KindRateFromRate, Rate: "tto_rate", Den: "pa", Scale: 1},
	"k_rate":   {Name: "k_rate", Kind: KindRateFromRate, Rate: "k_rate", Den: "pa", Scale: 1, LowerIsBetter: true},
	"babip":    {Name: "babip", Kind: KindRateFromRate, Rate: "babip", Den: "bip", Scale: 1},
	"sb_rate":  {Name: "sb_rate", Kind: KindRateOfCounts, Num: []string{"sb"}, Den: "sb_att", Scale: 1},

	"hr":   {Name: "hr", Kind: KindSum},
	"rbi":  {Name: "rbi", Kind: KindSum},
	"runs": {Name: "runs", Kind: KindSum},
	"sb":   {Name: "sb", Kind: KindSum},
	"bb":   {Name: "bb", Kind: KindSum},
	"so":   {Name: "so", Kind: KindSum, LowerIsBetter: true},
}

// BattingLeaderboard is the fixed metric order for the batting team
// leaderboard summary.
var BattingLeaderboard = []string{
	"avg", "obp", "slg", "ops", "hr", "rbi", "runs", "sb", "bb", "so", "tto_rate",
}

// ForRole returns the registry for a role name ("pitching" or "batting").
func ForRole(role string) (Registry, bool) {
	switch role {
	case "pitching":
		return Pitching, true
	case "batting":
		return Batting, true
	}
	return nil, false
}
