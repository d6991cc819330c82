package handler

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/dugoutlab/dugout-data/internal/api/respond"
	"github.com/dugoutlab/dugout-data/internal/cache"
	"github.com/dugoutlab/dugout-data/internal/config"
	"github.com/dugoutlab/dugout-data/internal/stats"
	"github.com/dugoutlab/dugout-data/internal/store"
)

// teamComparisonEntry is one team's weighted aggregate for the comparison
// bar view.
type teamComparisonEntry struct {
	Team        string  `json:"team"`
	Value       float64 `json:"value"`
	Denominator float64 `json:"denominator,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// GetTeamComparison aggregates one statistic across teams with proper
// denominator weighting.
// @Summary Team comparison
// @Description Aggregates a statistic per team. Rate statistics are recombined from summed numerators and denominators, never averaged.
// @Tags teams
// @Produce json
// @Param role path string true "Role: pitching or batting"
// @Param season query int true "Season year"
// @Param stat query string true "Statistic name"
// @Param league query string false "League filter: central or pacific"
// @Param teams query string false "Comma-separated team IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/teams/compare/{role} [get]
func (h *Handler) GetTeamComparison(w http.ResponseWriter, r *http.Request) {
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
	statName := r.URL.Query().Get("stat")
	if statName == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "stat query parameter is required")
		return
	}

	reg, _ := stats.ForRole(string(role))

	key := "teams:compare:" + string(role) + ":" + r.URL.RawQuery
	h.serveComputed(w, r, key, cache.TTLView, func() (any, error) {
		recs, err := h.loadSeason(r, role, filters)
		if err != nil {
			return nil, err
		}
		agg, err := stats.AggregateWithFallback(recs, reg, statName, slog.Default())
		if err != nil {
			return nil, err
		}

		def, _ := reg.Lookup(statName)
		out := make([]teamComparisonEntry, 0, len(agg))
		for team, a := range agg {
			out = append(out, teamComparisonEntry{
				Team:        team,
				Value:       stats.Round3(a.Value),
				Denominator: a.Denominator,
				Color:       config.TeamRegistry[team].Color,
			})
		}
		sort.Slice(out, func(i, j int) bool {
			if def.LowerIsBetter {
				return out[i].Value < out[j].Value
			}
			return out[i].Value > out[j].Value
		})
		return map[string]any{
			"role":   role,
			"season": filters.Season,
			"stat":   statName,
			"teams":  out,
			"count":  len(out),
		}, nil
	})
}

// GetTeamLeaderboard computes the top-or-bottom-3 summary across every
// statistic in the role's metric list.
// @Summary Team leaderboard summary
// @Description Batch leaderboard over the role's full metric list. Statistics that cannot be computed are reported as skipped with a reason; they never abort the batch.
// @Tags teams
// @Produce json
// @Param role path string true "Role: pitching or batting"
// @Param season query int true "Season year"
// @Param bottom query bool false "Return bottom 3 instead of top 3"
// @Param league query string false "League filter: central or pacific"
// @Param teams query string false "Comma-separated team IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/teams/leaderboard/{role} [get]
func (h *Handler) GetTeamLeaderboard(w http.ResponseWriter, r *http.Request) {
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
	bottom := r.URL.Query().Get("bottom") == "true"

	reg, _ := stats.ForRole(string(role))
	metrics := stats.PitchingLeaderboard
	if role == store.RoleBatting {
		metrics = stats.BattingLeaderboard
	}

	key := "teams:leaderboard:" + string(role) + ":" + r.URL.RawQuery
	h.serveComputed(w, r, key, cache.TTLView, func() (any, error) {
		recs, err := h.loadSeason(r, role, filters)
		if err != nil {
			return nil, err
		}
		items := stats.LeaderboardSummary(recs, reg, metrics, bottom)
		return map[string]any{
			"role":   role,
			"season": filters.Season,
			"bottom": bottom,
			"items":  items,
			"count":  len(items),
		}, nil
	})
}
