package cluster

import "github.com/dugoutlab/dugout-data/internal/store"

// Archetype labels.
const (
	ArchetypePower       = "power"
	ArchetypeAce         = "ace"
	ArchetypeFinesse     = "finesse"
	ArchetypeHittable    = "hittable"
	ArchetypeReplacement = "replacement-level"
	ArchetypeBalanced    = "balanced"

	ArchetypeBestOverall  = "best-overall"
	ArchetypeLeadoff      = "leadoff"
	ArchetypeEmptyAverage = "empty-average"
	ArchetypeSlugger      = "slugger"
	ArchetypeHighK        = "high-strikeout"
)

// Rule matches a centroid's z-scores to an archetype. Rules are evaluated in
// order; the numeric thresholds are heuristic tuning pending domain-owner
// validation, which is why they live in these tables rather than inline.
type Rule struct {
	Label string
	Match func(z map[string]float64) bool
}

// PitcherRules is the ordered rule list for pitcher clusters; first match
// wins, and a cluster matching nothing is balanced.
var PitcherRules = []Rule{
	{ArchetypePower, func(z map[string]float64) bool { return z["k9"] > 0.5 && z["bb9"] > 0.2 }},
	{ArchetypeAce, func(z map[string]float64) bool { return z["bb9"] < -0.5 && z["k9"] > 0.5 }},
	{ArchetypeFinesse, func(z map[string]float64) bool { return z["whip"] < -0.5 && z["bb9"] < -0.3 }},
	{ArchetypeHittable, func(z map[string]float64) bool { return z["oba"] > 0.5 }},
	{ArchetypeReplacement, func(z map[string]float64) bool { return z["era"] > 0.7 }},
}

// Batter labeling runs in passes with a uniqueness constraint: each pass's
// labels are claimed at most once, in cluster order, and a claimed label is
// never reassigned to a later cluster. Leftover clusters are balanced.
var (
	// Pass 1: elite archetypes.
	BatterElitePass = []Rule{
		{ArchetypeBestOverall, func(z map[string]float64) bool { return z["slg"] > 0.8 && z["obp"] > 0.8 }},
		{ArchetypeLeadoff, func(z map[string]float64) bool { return z["obp"] > 0.8 }},
	}
	// Pass 2: specialist archetypes.
	BatterSpecialistPass = []Rule{
		{ArchetypeEmptyAverage, func(z map[string]float64) bool { return z["avg"] > 0.5 && z["obp"] < 0 }},
		{ArchetypeSlugger, func(z map[string]float64) bool { return z["hr"] > 0.5 && z["k_rate"] > 0.5 }},
		{ArchetypeHighK, func(z map[string]float64) bool { return z["k_rate"] > 0.3 }},
	}
)

func labelArchetypes(centroids []Centroid, role store.Role) {
	if role == store.RolePitching {
		labelPitchers(centroids)
		return
	}
	labelBatters(centroids)
}

func labelPitchers(centroids []Centroid) {
	for i := range centroids {
		centroids[i].Archetype = ArchetypeBalanced
		for _, rule := range PitcherRules {
			if rule.Match(centroids[i].Z) {
				centroids[i].Archetype = rule.Label
				break
			}
		}
	}
}

// labelBatters allocates labels pass by pass. Within a pass, each cluster
// takes the first unclaimed rule it matches; a rule whose label is already
// claimed is skipped rather than reassigned, so a later cluster can fall
// through to a weaker rule in the same pass.
func labelBatters(centroids []Centroid) {
	claimed := make(map[string]bool)

	for _, pass := range [][]Rule{BatterElitePass, BatterSpecialistPass} {
		for i := range centroids {
			if centroids[i].Archetype != "" {
				continue
			}
			for _, rule := range pass {
				if claimed[rule.Label] {
					continue
				}
				if rule.Match(centroids[i].Z) {
					centroids[i].Archetype = rule.Label
					claimed[rule.Label] = true
					break
				}
			}
		}
	}

	// Pass 3: everything still unlabeled is balanced.
	for i := range centroids {
		if centroids[i].Archetype == "" {
			centroids[i].Archetype = ArchetypeBalanced
		}
	}
}
