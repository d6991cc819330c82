package stats

import (
	"log/slog"

	"github.com/dugoutlab/dugout-data/internal/store"
)

// TeamAggregate is one team's recombined value for a statistic, plus the
// summed denominator that produced it (zero for counting stats).
type TeamAggregate struct {
	Team        string  `json:"team"`
	Value       float64 `json:"value"`
	Denominator float64 `json:"denominator,omitempty"`
}

// Aggregate groups records by team and recombines them into one value per
// team using the registry's method for the statistic.
//
// Teams with zero contributing rows do not appear in the result, and a team
// whose denominator sums to zero is excluded rather than reported as
// infinity.
func Aggregate(recs []store.Record, reg Registry, name string) (map[string]TeamAggregate, error) {
	def, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	return aggregateDef(recs, def)
}

// AggregateWithFallback behaves like Aggregate but degrades a registry miss
// to a simple mean of the raw column, logging the degradation. Mis-aggregating
// silently is the one thing this package must never do.
func AggregateWithFallback(recs []store.Record, reg Registry, name string, logger *slog.Logger) (map[string]TeamAggregate, error) {
	def, err := reg.Lookup(name)
	if err != nil {
		logger.Warn("no stat definition; degrading to simple mean", "stat", name)
		def = Definition{Name: name, Kind: KindMean}
	}
	return aggregateDef(recs, def)
}

func aggregateDef(recs []store.Record, def Definition) (map[string]TeamAggregate, error) {
	if err := checkFields(recs, def); err != nil {
		return nil, err
	}

	switch def.Kind {
	case KindSum:
		return aggSum(recs, def.sourceField()), nil
	case KindMean:
		return aggMean(recs, def.sourceField()), nil
	case KindSumDiff:
		return aggSumDiff(recs, def.Num[0], def.Num[1]), nil
	case KindRateOfCounts:
		return aggRateOfCounts(recs, def), nil
	case KindRateFromRate:
		return aggRateFromRate(recs, def), nil
	}
	return nil, ErrNoDefinition
}

// checkFields verifies each required base field is present on at least one
// row. A field absent from the whole row-set means the view was asked for a
// column the role's data does not carry.
func checkFields(recs []store.Record, def Definition) error {
	for _, field := range def.BaseFields() {
		found := false
		for _, rec := range recs {
			if _, ok := Derive(rec, field); ok {
				found = true
				break
			}
		}
		if !found {
			return &MissingFieldError{Stat: def.Name, Field: field}
		}
	}
	return nil
}

func aggSum(recs []store.Record, field string) map[string]TeamAggregate {
	out := make(map[string]TeamAggregate)
	for _, rec := range recs {
		v, ok := Derive(rec, field)
		if !ok {
			continue
		}
		agg := out[rec.Team]
		agg.Team = rec.Team
		agg.Value += v
		out[rec.Team] = agg
	}
	return out
}

func aggMean(recs []store.Record, field string) map[string]TeamAggregate {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range recs {
		v, ok := Derive(rec, field)
		if !ok {
			continue
		}
		sums[rec.Team] += v
		counts[rec.Team]++
	}
	out := make(map[string]TeamAggregate, len(sums))
	for team, sum := range sums {
		out[team] = TeamAggregate{Team: team, Value: sum / float64(counts[team])}
	}
	return out
}

// aggSumDiff sums both fields separately per team and subtracts; the
// difference is never averaged. A row carrying only one side still
// contributes that side: each sum skips absent values independently, the
// same rule plain sums follow.
func aggSumDiff(recs []store.Record, a, b string) map[string]TeamAggregate {
	out := make(map[string]TeamAggregate)
	for _, rec := range recs {
		av, ok1 := Derive(rec, a)
		bv, ok2 := Derive(rec, b)
		if !ok1 && !ok2 {
			continue
		}
		agg := out[rec.Team]
		agg.Team = rec.Team
		if ok1 {
			agg.Value += av
		}
		if ok2 {
			agg.Value -= bv
		}
		out[rec.Team] = agg
	}
	return out
}

type ratioSums struct{ num, den float64 }

func aggRateOfCounts(recs []store.Record, def Definition) map[string]TeamAggregate {
	sums := make(map[string]ratioSums)
	for _, rec := range recs {
		den, ok := Derive(rec, def.Den)
		if !ok {
			continue
		}
		num := 0.0
		complete := true
		for _, f := range def.Num {
			v, ok := Derive(rec, f)
			if !ok {
				complete = false
				break
			}
			num += v
		}
		// Row-level dropna on the pair: a record missing any side
		// contributes to neither sum.
		if !complete {
			continue
		}
		p := sums[rec.Team]
		p.num += num
		p.den += den
		sums[rec.Team] = p
	}
	return ratios(sums, def.Scale)
}

// aggRateFromRate reconstructs each row's numerator-equivalent quantity as
// rate * denominator / scale before summing. Summing the rate directly is
// the average-of-averages bug.
func aggRateFromRate(recs []store.Record, def Definition) map[string]TeamAggregate {
	sums := make(map[string]ratioSums)
	for _, rec := range recs {
		rate, ok1 := Derive(rec, def.Rate)
		den, ok2 := Derive(rec, def.Den)
		if !ok1 || !ok2 {
			continue
		}
		p := sums[rec.Team]
		p.num += rate * den / def.Scale
		p.den += den
		sums[rec.Team] = p
	}
	return ratios(sums, def.Scale)
}

// ratios finalizes ratio aggregation. A team whose denominator summed to
// zero has an undefined ratio and is dropped here.
func ratios(sums map[string]ratioSums, scale float64) map[string]TeamAggregate {
	out := make(map[string]TeamAggregate, len(sums))
	for team, p := range sums {
		if p.den == 0 {
			continue
		}
		out[team] = TeamAggregate{
			Team:        team,
			Value:       scale * p.num / p.den,
			Denominator: p.den,
		}
	}
	return out
}
