package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dugoutlab/dugout-data/internal/api/respond"
	"github.com/dugoutlab/dugout-data/internal/cache"
	"github.com/dugoutlab/dugout-data/internal/stats"
	"github.com/dugoutlab/dugout-data/internal/store"
)

// eligibilityFromQuery builds the role's eligibility filter from query
// parameters. Zero thresholds admit everyone with a present value.
func eligibilityFromQuery(r *http.Request, role store.Role) stats.Filter {
	if role == store.RolePitching {
		return stats.PitchingEligibility{
			MinInnings: queryFloat(r, "min_ip", 0),
			MinGames:   queryFloat(r, "min_games", 0),
			MinStarts:  queryFloat(r, "min_starts", 0),
			MinRelief:  queryFloat(r, "min_relief", 0),
		}
	}
	var positions []string
	if raw := r.URL.Query().Get("positions"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				positions = append(positions, trimmed)
			}
		}
	}
	return stats.BattingEligibility{
		MinPA:     queryFloat(r, "min_pa", 0),
		MinAge:    queryFloat(r, "min_age", 0),
		MaxAge:    queryFloat(r, "max_age", 0),
		Positions: positions,
	}
}

// GetRankings ranks eligible players on one statistic.
// @Summary Player rankings
// @Description Ranks eligible players for a season on a registered or derived statistic. Direction defaults to the statistic's natural ordering.
// @Tags rankings
// @Produce json
// @Param role path string true "Role: pitching or batting"
// @Param season query int true "Season year"
// @Param stat query string true "Statistic name"
// @Param top query int false "Number of rows to return (default 10, 0 = all)"
// @Param order query string false "Sort order: asc, desc, or auto (default)"
// @Param league query string false "League filter: central or pacific"
// @Param teams query string false "Comma-separated team IDs"
// @Param min_ip query number false "Minimum innings pitched (pitching)"
// @Param min_pa query number false "Minimum plate appearances (batting)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/rankings/{role} [get]
func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
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
	order := r.URL.Query().Get("order")
	if order != "" && order != "asc" && order != "desc" && order != "auto" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "order must be 'asc', 'desc', or 'auto'")
		return
	}
	topN := queryInt(r, "top", 10)

	reg, _ := stats.ForRole(string(role))

	key := "rankings:" + string(role) + ":" + r.URL.RawQuery
	h.serveComputed(w, r, key, cache.TTLView, func() (any, error) {
		recs, err := h.loadSeason(r, role, filters)
		if err != nil {
			return nil, err
		}

		// auto order follows the registry when the statistic is
		// registered; derived-only statistics default to descending.
		ascending := false
		if def, err := reg.Lookup(statName); err == nil {
			ascending = def.LowerIsBetter
		}
		switch order {
		case "asc":
			ascending = true
		case "desc":
			ascending = false
		}

		entries := stats.Rank(recs, statName, ascending, topN, eligibilityFromQuery(r, role))
		return map[string]any{
			"role":      role,
			"season":    filters.Season,
			"stat":      statName,
			"ascending": ascending,
			"entries":   entries,
			"count":     len(entries),
		}, nil
	})
}

// GetScatter returns paired metric values per eligible player.
// @Summary Scatter view
// @Description Returns (x, y) metric pairs for eligible players; rows missing either metric are dropped.
// @Tags rankings
// @Produce json
// @Param role path string true "Role: pitching or batting"
// @Param season query int true "Season year"
// @Param x query string true "X-axis statistic"
// @Param y query string true "Y-axis statistic"
// @Param league query string false "League filter: central or pacific"
// @Param teams query string false "Comma-separated team IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/scatter/{role} [get]
func (h *Handler) GetScatter(w http.ResponseWriter, r *http.Request) {
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
	xStat := r.URL.Query().Get("x")
	yStat := r.URL.Query().Get("y")
	if xStat == "" || yStat == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "x and y query parameters are required")
		return
	}

	key := "scatter:" + string(role) + ":" + r.URL.RawQuery
	h.serveComputed(w, r, key, cache.TTLView, func() (any, error) {
		recs, err := h.loadSeason(r, role, filters)
		if err != nil {
			return nil, err
		}
		points := stats.Scatter(recs, xStat, yStat, eligibilityFromQuery(r, role))
		return map[string]any{
			"role":   role,
			"season": filters.Season,
			"x":      xStat,
			"y":      yStat,
			"points": points,
			"count":  len(points),
		}, nil
	})
}
