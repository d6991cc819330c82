package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dugoutlab/dugout-data/internal/store"
)

func centroidWithZ(cluster int, z map[string]float64) Centroid {
	return Centroid{Cluster: cluster, Z: z}
}

func TestLabelPitchers_FirstMatchWins(t *testing.T) {
	// Matches both power (k9>0.5, bb9>0.2) and replacement (era>0.7);
	// the earlier rule takes it.
	cs := []Centroid{
		centroidWithZ(0, map[string]float64{"k9": 1.0, "bb9": 0.5, "era": 1.0}),
	}

	labelArchetypes(cs, store.RolePitching)
	assert.Equal(t, ArchetypePower, cs[0].Archetype)
}

func TestLabelPitchers_Ace(t *testing.T) {
	cs := []Centroid{
		centroidWithZ(0, map[string]float64{"k9": 1.2, "bb9": -1.0}),
	}

	labelArchetypes(cs, store.RolePitching)
	assert.Equal(t, ArchetypeAce, cs[0].Archetype)
}

func TestLabelPitchers_NoRuleMatchIsBalanced(t *testing.T) {
	cs := []Centroid{
		centroidWithZ(0, map[string]float64{"k9": 0, "bb9": 0, "whip": 0, "oba": 0, "era": 0}),
	}

	labelArchetypes(cs, store.RolePitching)
	assert.Equal(t, ArchetypeBalanced, cs[0].Archetype)
}

func TestLabelPitchers_EachRule(t *testing.T) {
	cases := []struct {
		z    map[string]float64
		want string
	}{
		{map[string]float64{"whip": -1.0, "bb9": -0.5}, ArchetypeFinesse},
		{map[string]float64{"oba": 0.8}, ArchetypeHittable},
		{map[string]float64{"era": 1.5}, ArchetypeReplacement},
	}
	for _, tc := range cases {
		cs := []Centroid{centroidWithZ(0, tc.z)}
		labelArchetypes(cs, store.RolePitching)
		assert.Equal(t, tc.want, cs[0].Archetype)
	}
}

func TestLabelBatters_LabelsClaimedAtMostOnce(t *testing.T) {
	// Two clusters both profile as leadoff; only the first claims the
	// label, the second falls through to balanced.
	cs := []Centroid{
		centroidWithZ(0, map[string]float64{"obp": 1.0, "slg": 0.2}),
		centroidWithZ(1, map[string]float64{"obp": 0.9, "slg": 0.1}),
	}

	labelArchetypes(cs, store.RoleBatting)
	assert.Equal(t, ArchetypeLeadoff, cs[0].Archetype)
	assert.Equal(t, ArchetypeBalanced, cs[1].Archetype)
}

func TestLabelBatters_ClaimedLabelLetsLaterClusterFallThrough(t *testing.T) {
	// Both clusters match slugger; the second falls through to the weaker
	// high-strikeout rule within the same pass.
	cs := []Centroid{
		centroidWithZ(0, map[string]float64{"hr": 1.0, "k_rate": 1.0}),
		centroidWithZ(1, map[string]float64{"hr": 0.8, "k_rate": 0.9}),
	}

	labelArchetypes(cs, store.RoleBatting)
	assert.Equal(t, ArchetypeSlugger, cs[0].Archetype)
	assert.Equal(t, ArchetypeHighK, cs[1].Archetype)
}

func TestLabelBatters_ElitePassRunsBeforeSpecialistPass(t *testing.T) {
	// The second cluster matches a specialist rule, the first an elite
	// rule; pass ordering labels the elite cluster regardless of index.
	cs := []Centroid{
		centroidWithZ(0, map[string]float64{"hr": 1.0, "k_rate": 1.0}),
		centroidWithZ(1, map[string]float64{"slg": 1.0, "obp": 1.0}),
	}

	labelArchetypes(cs, store.RoleBatting)
	assert.Equal(t, ArchetypeBestOverall, cs[1].Archetype)
	assert.Equal(t, ArchetypeSlugger, cs[0].Archetype)
}

func TestLabelBatters_BestOverallBeatsLeadoff(t *testing.T) {
	// High OBP alone is leadoff; high OBP with high SLG is best-overall.
	cs := []Centroid{
		centroidWithZ(0, map[string]float64{"obp": 1.0, "slg": 1.0}),
	}

	labelArchetypes(cs, store.RoleBatting)
	assert.Equal(t, ArchetypeBestOverall, cs[0].Archetype)
}

func TestLabelBatters_EmptyAverage(t *testing.T) {
	cs := []Centroid{
		centroidWithZ(0, map[string]float64{"avg": 0.8, "obp": -0.2}),
	}

	labelArchetypes(cs, store.RoleBatting)
	assert.Equal(t, ArchetypeEmptyAverage, cs[0].Archetype)
}
