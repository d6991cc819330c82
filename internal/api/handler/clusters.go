package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dugoutlab/dugout-data/internal/api/respond"
	"github.com/dugoutlab/dugout-data/internal/cache"
	"github.com/dugoutlab/dugout-data/internal/cluster"
	"github.com/dugoutlab/dugout-data/internal/stats"
	"github.com/dugoutlab/dugout-data/internal/store"
)

const (
	minClusters = 2
	maxClusters = 6

	// defaultSeed fixes the embedding and partition so repeated requests
	// return the same archetype map.
	defaultSeed = 42
)

// GetClusters runs the archetype clustering pipeline over a season.
// @Summary Archetype clusters
// @Description Embeds eligible players with t-SNE, partitions the embedding with k-means, and labels each cluster with a baseball archetype from its centroid profile.
// @Tags clusters
// @Produce json
// @Param role path string true "Role: pitching or batting"
// @Param season query int true "Season year"
// @Param k query int false "Cluster count, 2 to 6 (default 4)"
// @Param seed query int false "Random seed (default 42)"
// @Param league query string false "League filter: central or pacific"
// @Param teams query string false "Comma-separated team IDs"
// @Param min_ip query number false "Minimum innings pitched (pitching)"
// @Param min_pa query number false "Minimum plate appearances (batting)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/clusters/{role} [get]
func (h *Handler) GetClusters(w http.ResponseWriter, r *http.Request) {
	role, ok := parseRole(chi.URLParam(r, "role"))
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "role must be 'pitching' or 'batting'")
		return
	}
	filters, problem := parseSeasonFilters(r)
	if problem != "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", problem)
		return
	}
	k := queryInt(r, "k", 4)
	if k < minClusters || k > maxClusters {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM",
			"k must be between "+strconv.Itoa(minClusters)+" and "+strconv.Itoa(maxClusters))
		return
	}
	seed := int64(queryInt(r, "seed", defaultSeed))

	key := "clusters:" + string(role) + ":" + r.URL.RawQuery
	h.serveComputed(w, r, key, cache.TTLCluster, func() (any, error) {
		recs, err := h.loadSeason(r, role, filters)
		if err != nil {
			return nil, err
		}
		recs = filterEligible(recs, eligibilityFromQuery(r, role))

		result, err := cluster.Run(r.Context(), recs, role, k, seed)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"role":     role,
			"season":   filters.Season,
			"k":        k,
			"seed":     seed,
			"features": cluster.FeaturesForRole(role),
			"result":   result,
		}, nil
	})
}

func filterEligible(recs []store.Record, filter stats.Filter) []store.Record {
	out := make([]store.Record, 0, len(recs))
	for _, rec := range recs {
		if filter.Eligible(rec) {
			out = append(out, rec)
		}
	}
	return out
}
