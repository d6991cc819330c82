package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dugoutlab/dugout-data/internal/api/respond"
	"github.com/dugoutlab/dugout-data/internal/cache"
	"github.com/dugoutlab/dugout-data/internal/config"
	"github.com/dugoutlab/dugout-data/internal/roster"
	"github.com/dugoutlab/dugout-data/internal/store"
)

// GetRosterComposition builds the roster composition view for one team:
// batting direction splits, main positions, the age/position grid, and the
// pitching-staff age and handedness breakdown.
// @Summary Roster composition
// @Description Returns batting and pitching roster composition for one team and season.
// @Tags roster
// @Produce json
// @Param team path string true "Team ID"
// @Param season query int true "Season year"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/roster/{team} [get]
func (h *Handler) GetRosterComposition(w http.ResponseWriter, r *http.Request) {
	team := chi.URLParam(r, "team")
	if _, ok := config.TeamRegistry[team]; !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "unknown team")
		return
	}
	seasonParam := r.URL.Query().Get("season")
	season, err := strconv.Atoi(seasonParam)
	if seasonParam == "" || err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "season query parameter is required")
		return
	}

	key := "roster:" + team + ":" + seasonParam
	h.serveComputed(w, r, key, cache.TTLView, func() (any, error) {
		batters, err := h.store.SeasonRecords(r.Context(), store.RoleBatting, season)
		if err != nil {
			return nil, err
		}
		pitchers, err := h.store.SeasonRecords(r.Context(), store.RolePitching, season)
		if err != nil {
			return nil, err
		}
		teamFilter := []string{team}
		batters = store.FilterTeams(batters, teamFilter)
		pitchers = store.FilterTeams(pitchers, teamFilter)

		return map[string]any{
			"team":     team,
			"season":   season,
			"color":    config.TeamRegistry[team].Color,
			"league":   config.TeamRegistry[team].League,
			"batting":  roster.Batting(batters),
			"pitching": roster.Pitching(pitchers),
		}, nil
	})
}
