package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/dugoutlab/dugout-data/internal/api/respond"
	"github.com/dugoutlab/dugout-data/internal/cache"
	"github.com/dugoutlab/dugout-data/internal/config"
	"github.com/dugoutlab/dugout-data/internal/stats"
	"github.com/dugoutlab/dugout-data/internal/store"
)

// GetSeasons lists the seasons present in the data, for populating the
// season selector.
// @Summary List available seasons
// @Description Returns the seasons with data, per role or combined.
// @Tags meta
// @Produce json
// @Param role query string false "Role filter: pitching or batting"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/meta/seasons [get]
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	roleParam := r.URL.Query().Get("role")
	roles := []store.Role{store.RolePitching, store.RoleBatting}
	if roleParam != "" {
		role, ok := parseRole(roleParam)
		if !ok {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "role must be 'pitching' or 'batting'")
			return
		}
		roles = []store.Role{role}
	}

	key := "meta:seasons:" + roleParam
	h.serveComputed(w, r, key, cache.TTLMeta, func() (any, error) {
		seen := map[int]bool{}
		for _, role := range roles {
			seasons, err := h.store.Seasons(r.Context(), role)
			if err != nil {
				return nil, err
			}
			for _, s := range seasons {
				seen[s] = true
			}
		}
		out := make([]int, 0, len(seen))
		for s := range seen {
			out = append(out, s)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(out)))
		return map[string]any{"seasons": out, "count": len(out)}, nil
	})
}

// teamInfo is one entry of the team metadata listing.
type teamInfo struct {
	ID     string `json:"id"`
	Color  string `json:"color"`
	League string `json:"league"`
}

// GetTeams lists the twelve franchises with display color and league.
// @Summary List teams
// @Tags meta
// @Produce json
// @Param league query string false "Filter by league: central or pacific"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/meta/teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	league := r.URL.Query().Get("league")
	if league != "" && league != config.LeagueCentral && league != config.LeaguePacific {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "league must be 'central' or 'pacific'")
		return
	}

	key := "meta:teams:" + league
	h.serveComputed(w, r, key, cache.TTLMeta, func() (any, error) {
		out := make([]teamInfo, 0, len(config.TeamRegistry))
		for id, t := range config.TeamRegistry {
			if league != "" && t.League != league {
				continue
			}
			out = append(out, teamInfo{ID: id, Color: t.Color, League: t.League})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].League != out[j].League {
				return out[i].League < out[j].League
			}
			return out[i].ID < out[j].ID
		})
		return map[string]any{"teams": out, "count": len(out)}, nil
	})
}

// statDefinition is the public shape of one registry entry.
type statDefinition struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	LowerIsBetter bool   `json:"lower_is_better"`
}

var kindNames = map[stats.Kind]string{
	stats.KindSum:          "sum",
	stats.KindRateOfCounts: "rate_of_counts",
	stats.KindRateFromRate: "rate_from_rate",
	stats.KindSumDiff:      "sum_diff",
	stats.KindMean:         "mean",
}

// GetStatDefinitions lists the registered statistics for a role, in the
// order the team views use.
// @Summary List stat definitions
// @Description Returns every registered statistic with its aggregation kind and ranking direction.
// @Tags meta
// @Produce json
// @Param role query string true "Role: pitching or batting"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/stats/definitions [get]
func (h *Handler) GetStatDefinitions(w http.ResponseWriter, r *http.Request) {
	roleParam := r.URL.Query().Get("role")
	role, ok := parseRole(roleParam)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "role must be 'pitching' or 'batting'")
		return
	}
	reg, _ := stats.ForRole(string(role))

	metrics := stats.PitchingLeaderboard
	if role == store.RoleBatting {
		metrics = stats.BattingLeaderboard
	}

	key := "stats:definitions:" + string(role)
	h.serveComputed(w, r, key, cache.TTLMeta, func() (any, error) {
		out := make([]statDefinition, 0, len(metrics))
		for _, name := range metrics {
			def, err := reg.Lookup(name)
			if err != nil {
				return nil, fmt.Errorf("definitions for %s: %w", name, err)
			}
			out = append(out, statDefinition{
				Name:          def.Name,
				Kind:          kindNames[def.Kind],
				LowerIsBetter: def.LowerIsBetter,
			})
		}
		return map[string]any{"role": role, "definitions": out, "count": len(out)}, nil
	})
}
