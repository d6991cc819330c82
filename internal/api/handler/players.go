package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dugoutlab/dugout-data/internal/api/respond"
	"github.com/dugoutlab/dugout-data/internal/assets"
	"github.com/dugoutlab/dugout-data/internal/cache"
	"github.com/dugoutlab/dugout-data/internal/player"
	"github.com/dugoutlab/dugout-data/internal/store"
)

// GetPlayerSummary assembles the player detail panel: bio from the most
// recent season, career season rows, fielding rows, scouted ratings, and
// the portrait path when one exists on disk.
// @Summary Player summary
// @Description Returns bio, career season stats, fielding, ability ratings, and portrait availability for one player.
// @Tags players
// @Produce json
// @Param name path string true "Player name"
// @Param role query string false "Role to read stats from: pitching or batting (default: whichever has rows)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/players/{name}/summary [get]
func (h *Handler) GetPlayerSummary(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "player name is required")
		return
	}
	roleParam := r.URL.Query().Get("role")
	if roleParam != "" {
		if _, ok := parseRole(roleParam); !ok {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "role must be 'pitching' or 'batting'")
			return
		}
	}

	key := "players:summary:" + name + ":" + roleParam
	h.serveComputed(w, r, key, cache.TTLView, func() (any, error) {
		role := store.Role(roleParam)
		var recs []store.Record
		var err error
		if roleParam != "" {
			recs, err = h.store.PlayerRecords(r.Context(), role, name)
		} else {
			// No role given: pitching rows win, batting is the fallback.
			role = store.RolePitching
			recs, err = h.store.PlayerRecords(r.Context(), role, name)
			if err == nil && len(recs) == 0 {
				role = store.RoleBatting
				recs, err = h.store.PlayerRecords(r.Context(), role, name)
			}
		}
		if err != nil {
			return nil, err
		}

		summary := player.Build(name, recs)

		fielding, err := h.store.FieldingRecords(r.Context(), name)
		if err != nil {
			return nil, err
		}
		abilities, err := h.store.AbilityRatings(r.Context(), name)
		if err != nil {
			return nil, err
		}

		portrait := ""
		if season, file := player.LatestImageFile(recs); file != "" {
			if path, ok := assets.PortraitPath(h.cfg.ImageDir, season, file); ok {
				portrait = path
			}
		}

		return map[string]any{
			"player":    name,
			"role":      role,
			"summary":   summary,
			"fielding":  fielding,
			"abilities": abilities,
			"portrait":  portrait,
			"found":     len(recs) > 0,
		}, nil
	})
}
