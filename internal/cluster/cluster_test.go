package cluster

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout-data/internal/stats"
	"github.com/dugoutlab/dugout-data/internal/store"
)

// pitcherRec builds a complete pitcher feature row. oba is stored directly;
// the rate features come from base counting fields so derivation is
// exercised too.
func pitcherRec(player string, era, k9, bb9, whip, hr9, oba float64) store.Record {
	return store.Record{
		Player: player,
		Team:   "giants",
		Season: 2024,
		Fields: map[string]any{
			"era": era, "k9": k9, "bb9": bb9, "whip": whip, "hr9": hr9, "oba": oba,
		},
	}
}

// syntheticPitchers builds two well-separated groups: dominant arms and
// hittable ones.
func syntheticPitchers(n int) []store.Record {
	recs := make([]store.Record, 0, n)
	for i := 0; i < n/2; i++ {
		jitter := float64(i) * 0.01
		recs = append(recs, pitcherRec(
			fmt.Sprintf("good%d", i),
			1.8+jitter, 10.5+jitter, 1.9+jitter, 0.92+jitter, 0.4+jitter, 0.190+jitter,
		))
	}
	for i := 0; i < n-n/2; i++ {
		jitter := float64(i) * 0.01
		recs = append(recs, pitcherRec(
			fmt.Sprintf("bad%d", i),
			5.9+jitter, 5.2+jitter, 4.4+jitter, 1.61+jitter, 1.5+jitter, 0.310+jitter,
		))
	}
	return recs
}

func TestPerplexity(t *testing.T) {
	assert.Equal(t, 5.0, Perplexity(2))
	assert.Equal(t, 5.0, Perplexity(15))
	assert.Equal(t, 6.0, Perplexity(18))
	assert.Equal(t, 30.0, Perplexity(90))
	assert.Equal(t, 30.0, Perplexity(1000))
}

func TestRun_FewerThanTwoCompleteRowsIsInsufficient(t *testing.T) {
	recs := []store.Record{
		pitcherRec("only", 3.0, 8.0, 2.5, 1.2, 0.9, 0.240),
		// Incomplete vector: missing oba, dropped row-wise.
		{Player: "partial", Team: "giants", Season: 2024, Fields: map[string]any{
			"era": 3.5, "k9": 7.0, "bb9": 3.0, "whip": 1.3, "hr9": 1.0,
		}},
	}

	_, err := Run(context.Background(), recs, store.RolePitching, 3, 42)
	var insufficient *stats.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Needed)
	assert.Equal(t, 1, insufficient.Got)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, syntheticPitchers(12), store.RolePitching, 2, 42)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_PipelineInvariants(t *testing.T) {
	recs := syntheticPitchers(14)

	result, err := Run(context.Background(), recs, store.RolePitching, 2, 42)
	require.NoError(t, err)

	// Every complete row gets an assignment with a valid cluster id and a
	// non-empty archetype.
	require.Len(t, result.Assignments, 14)
	for _, a := range result.Assignments {
		assert.GreaterOrEqual(t, a.Cluster, 0)
		assert.Less(t, a.Cluster, result.K)
		assert.NotEmpty(t, a.Archetype)
		assert.NotEmpty(t, a.Player)
	}

	// Centroid sizes add up to the population; empty clusters are omitted.
	require.NotEmpty(t, result.Centroids)
	assert.LessOrEqual(t, len(result.Centroids), result.K)
	total := 0
	for _, c := range result.Centroids {
		total += c.Size
		assert.NotEmpty(t, c.Archetype)
		for _, f := range PitcherFeatures {
			assert.Contains(t, c.Means, f)
			assert.Contains(t, c.Z, f)
		}
	}
	assert.Equal(t, 14, total)
}

func TestRun_CentroidsAverageOriginalFeatures(t *testing.T) {
	recs := syntheticPitchers(14)

	result, err := Run(context.Background(), recs, store.RolePitching, 2, 42)
	require.NoError(t, err)

	// Centroid means live in the original feature space: every mean must
	// lie within the observed range of that feature.
	for _, c := range result.Centroids {
		assert.GreaterOrEqual(t, c.Means["era"], 1.8)
		assert.LessOrEqual(t, c.Means["era"], 6.0)
		assert.GreaterOrEqual(t, c.Means["oba"], 0.190)
		assert.LessOrEqual(t, c.Means["oba"], 0.320)
	}
}

func TestRun_SameSeedSameResult(t *testing.T) {
	recs := syntheticPitchers(14)

	first, err := Run(context.Background(), recs, store.RolePitching, 2, 42)
	require.NoError(t, err)
	second, err := Run(context.Background(), recs, store.RolePitching, 2, 42)
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Centroids, second.Centroids)
}

func TestRun_ConcurrentRunsStayDeterministic(t *testing.T) {
	recs := syntheticPitchers(14)

	baseline, err := Run(context.Background(), recs, store.RolePitching, 2, 42)
	require.NoError(t, err)

	const workers = 4
	results := make([]*Result, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Run(context.Background(), recs, store.RolePitching, 2, 42)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, baseline.Assignments, results[i].Assignments)
	}
}

func TestRun_ClampsKToPopulation(t *testing.T) {
	recs := syntheticPitchers(4)

	result, err := Run(context.Background(), recs, store.RolePitching, 6, 42)
	require.NoError(t, err)
	assert.Equal(t, 4, result.K)
}

func TestStandardize_ZeroVarianceColumnMapsToZero(t *testing.T) {
	matrix := [][]float64{
		{1.0, 7.0},
		{2.0, 7.0},
		{3.0, 7.0},
	}

	out := standardize(matrix)
	for i := range out {
		assert.Equal(t, 0.0, out[i][1])
	}
	assert.Less(t, out[0][0], 0.0)
	assert.Greater(t, out[2][0], 0.0)
}

func TestZScoreCentroids(t *testing.T) {
	cs := []Centroid{
		{Cluster: 0, Means: map[string]float64{"era": 2.0}},
		{Cluster: 1, Means: map[string]float64{"era": 4.0}},
	}

	zScoreCentroids(cs, []string{"era"})
	assert.Less(t, cs[0].Z["era"], 0.0)
	assert.Greater(t, cs[1].Z["era"], 0.0)
	assert.InDelta(t, -cs[1].Z["era"], cs[0].Z["era"], 1e-9)
}
