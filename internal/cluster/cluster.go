// Package cluster discovers player archetypes: it standardizes a role-specific
// feature set, projects it to two dimensions with t-SNE, partitions the
// embedding with k-means, and classifies each cluster's centroid into a
// human-readable archetype.
package cluster

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/danaugrs/go-tsne/tsne"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/dugoutlab/dugout-data/internal/stats"
	"github.com/dugoutlab/dugout-data/internal/store"
)

// PitcherFeatures is the clustering feature vector for pitchers.
var PitcherFeatures = []string{"era", "k9", "bb9", "whip", "hr9", "oba"}

// BatterFeatures is the clustering feature vector for batters.
var BatterFeatures = []string{"avg", "obp", "slg", "hr", "k_rate", "sb"}

// FeaturesForRole returns the feature vector for a role.
func FeaturesForRole(role store.Role) []string {
	if role == store.RolePitching {
		return PitcherFeatures
	}
	return BatterFeatures
}

// Assignment is one player's clustering outcome: embedding coordinates,
// cluster id in [0, k), and the cluster's archetype label.
type Assignment struct {
	Player    string  `json:"player"`
	Team      string  `json:"team"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Cluster   int     `json:"cluster"`
	Archetype string  `json:"archetype"`
}

// Centroid is one cluster's mean of each original feature across members,
// plus the z-scored copy (standardized across the centroid set, not across
// players) used for archetype classification.
type Centroid struct {
	Cluster   int                `json:"cluster"`
	Size      int                `json:"size"`
	Means     map[string]float64 `json:"means"`
	Z         map[string]float64 `json:"z"`
	Archetype string             `json:"archetype"`
}

// Result is one clustering run.
type Result struct {
	Role        store.Role   `json:"role"`
	K           int          `json:"k"`
	Features    []string     `json:"features"`
	Assignments []Assignment `json:"assignments"`
	Centroids   []Centroid   `json:"centroids"`
}

// Perplexity derives the embedding neighborhood size from the population:
// min(30, max(5, n/3)). The embedding requires the neighborhood parameter to
// stay sensible for small populations.
func Perplexity(n int) float64 {
	p := n / 3
	if p < 5 {
		p = 5
	}
	if p > 30 {
		p = 30
	}
	return float64(p)
}

const (
	tsneLearningRate = 300
	tsneIterations   = 300
)

// The embedding and the partitioner both draw from the process-wide
// math/rand source, so seeded runs must not overlap: a concurrent run
// advancing the stream mid-pipeline would change the outcome for a given
// seed.
var seededRun sync.Mutex

// Run executes the full pipeline for a role. k is clamped to the population
// size; fewer than 2 complete feature vectors aborts with
// InsufficientDataError. seed makes the embedding and partitioning
// reproducible for identical input; the random stages of concurrent calls
// are serialized so the reproducibility holds under load.
//
// The embedding is the only multi-second stage, so ctx is checked once just
// before it as the cooperative cancellation point.
func Run(ctx context.Context, recs []store.Record, role store.Role, k int, seed int64) (*Result, error) {
	features := FeaturesForRole(role)

	// Stage 1: select and clean. Clustering needs complete vectors, so any
	// row missing any feature is dropped (row-wise).
	var members []store.Record
	var matrix [][]float64
	for _, rec := range recs {
		vec := make([]float64, len(features))
		complete := true
		for i, f := range features {
			v, ok := stats.Derive(rec, f)
			if !ok {
				complete = false
				break
			}
			vec[i] = v
		}
		if complete {
			members = append(members, rec)
			matrix = append(matrix, vec)
		}
	}

	// Stage 2: minimum-population guard.
	n := len(matrix)
	if n < 2 {
		return nil, &stats.InsufficientDataError{Needed: 2, Got: n}
	}
	if k > n {
		k = n
	}

	// Stage 3: nonlinear 2-D embedding of the standardized features.
	seededRun.Lock()
	if err := ctx.Err(); err != nil {
		seededRun.Unlock()
		return nil, err
	}
	rand.Seed(seed)
	std := standardize(matrix)
	t := tsne.NewTSNE(2, Perplexity(n), tsneLearningRate, tsneIterations, false)
	embedding := t.EmbedData(mat.NewDense(n, len(features), flatten(std)), nil)

	// Stage 4: partition the embedding, not the original feature space.
	obs := make(clusters.Observations, n)
	for i := 0; i < n; i++ {
		obs[i] = observation{
			row:    i,
			coords: clusters.Coordinates{embedding.At(i, 0), embedding.At(i, 1)},
		}
	}
	km := kmeans.New()
	partition, err := km.Partition(obs, k)
	seededRun.Unlock()
	if err != nil {
		return nil, fmt.Errorf("partition embedding: %w", err)
	}

	// Stage 5: centroids over the ORIGINAL feature values of each cluster's
	// members; the embedding coordinates are display-only.
	assignments := make([]Assignment, n)
	var centroids []Centroid
	for ci, cl := range partition {
		if len(cl.Observations) == 0 {
			continue
		}
		means := make(map[string]float64, len(features))
		for fi, f := range features {
			sum := 0.0
			for _, o := range cl.Observations {
				sum += matrix[o.(observation).row][fi]
			}
			means[f] = sum / float64(len(cl.Observations))
		}
		centroids = append(centroids, Centroid{
			Cluster: ci,
			Size:    len(cl.Observations),
			Means:   means,
		})
		for _, o := range cl.Observations {
			row := o.(observation).row
			assignments[row] = Assignment{
				Player:  members[row].Player,
				Team:    members[row].Team,
				X:       embedding.At(row, 0),
				Y:       embedding.At(row, 1),
				Cluster: ci,
			}
		}
	}

	// Stage 6: archetype labeling over the centroid table's own z-scores.
	zScoreCentroids(centroids, features)
	labelArchetypes(centroids, role)

	labels := make(map[int]string, len(centroids))
	for _, c := range centroids {
		labels[c.Cluster] = c.Archetype
	}
	for i := range assignments {
		assignments[i].Archetype = labels[assignments[i].Cluster]
	}

	return &Result{
		Role:        role,
		K:           k,
		Features:    features,
		Assignments: assignments,
		Centroids:   centroids,
	}, nil
}

// observation carries the source row index through partitioning.
type observation struct {
	row    int
	coords clusters.Coordinates
}

func (o observation) Coordinates() clusters.Coordinates { return o.coords }
func (o observation) Distance(p clusters.Coordinates) float64 {
	return o.coords.Distance(p)
}

// standardize z-scores each column across rows. A zero-variance column maps
// to zeros.
func standardize(matrix [][]float64) [][]float64 {
	if len(matrix) == 0 {
		return nil
	}
	cols := len(matrix[0])
	out := make([][]float64, len(matrix))
	for i := range out {
		out[i] = make([]float64, cols)
	}
	col := make([]float64, len(matrix))
	for j := 0; j < cols; j++ {
		for i := range matrix {
			col[i] = matrix[i][j]
		}
		mean, sd := stat.MeanStdDev(col, nil)
		for i := range matrix {
			if sd > 0 {
				out[i][j] = (matrix[i][j] - mean) / sd
			}
		}
	}
	return out
}

// zScoreCentroids standardizes each feature across the centroid set itself.
func zScoreCentroids(centroids []Centroid, features []string) {
	vals := make([]float64, len(centroids))
	for _, f := range features {
		for i, c := range centroids {
			vals[i] = c.Means[f]
		}
		mean, sd := stat.MeanStdDev(vals[:len(centroids)], nil)
		for i := range centroids {
			if centroids[i].Z == nil {
				centroids[i].Z = make(map[string]float64, len(features))
			}
			if sd > 0 {
				centroids[i].Z[f] = (centroids[i].Means[f] - mean) / sd
			} else {
				centroids[i].Z[f] = 0
			}
		}
	}
}

func flatten(matrix [][]float64) []float64 {
	if len(matrix) == 0 {
		return nil
	}
	out := make([]float64, 0, len(matrix)*len(matrix[0]))
	for _, row := range matrix {
		out = append(out, row...)
	}
	return out
}
