// Package handler provides HTTP handlers for all API endpoints. Handlers
// load season row-sets through the store, run the stats/cluster/roster
// engines over the immutable snapshot, and serve the computed result through
// the TTL/ETag cache.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dugoutlab/dugout-data/internal/api/respond"
	"github.com/dugoutlab/dugout-data/internal/cache"
	"github.com/dugoutlab/dugout-data/internal/config"
	"github.com/dugoutlab/dugout-data/internal/stats"
	"github.com/dugoutlab/dugout-data/internal/store"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool  *pgxpool.Pool
	cache *cache.Cache
	cfg   *config.Config
	store *store.Store
}

// New creates a Handler with shared dependencies.
func New(pool *pgxpool.Pool, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		pool:  pool,
		cache: c,
		cfg:   cfg,
		store: store.New(pool),
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"name":    "Dugout Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	var n int
	err := h.pool.QueryRow(r.Context(), "health_check").Scan(&n)
	if err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Shared helpers
// --------------------------------------------------------------------------

// serveComputed runs compute, caches the JSON result under key, and writes
// it with ETag/TTL headers. Compute errors are translated to the error
// envelope; errors local to one view never touch other cached views.
func (h *Handler) serveComputed(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, compute func() (any, error)) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	result, err := compute()
	if err != nil {
		writeComputeError(w, err)
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODING_FAILED", "Failed to encode response")
		return
	}
	etag := h.cache.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

func writeComputeError(w http.ResponseWriter, err error) {
	var mf *stats.MissingFieldError
	var insufficient *stats.InsufficientDataError
	switch {
	case errors.As(err, &mf):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "MISSING_COLUMN",
			"A required column is missing for this view", mf.Error())
	case errors.As(err, &insufficient):
		respond.WriteErrorDetail(w, http.StatusNotFound, "INSUFFICIENT_DATA",
			"Not enough rows for this view", insufficient.Error())
	case errors.Is(err, stats.ErrNoDefinition):
		respond.WriteError(w, http.StatusNotFound, "NO_DEFINITION",
			"No stat definition registered for this statistic")
	default:
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "COMPUTE_FAILED",
			"View computation failed", err.Error())
	}
}

// parseRole validates the {role} path segment.
func parseRole(raw string) (store.Role, bool) {
	role := store.Role(raw)
	return role, role.Valid()
}

// seasonFilters are the UI-driven selection parameters shared by every
// season-scoped view.
type seasonFilters struct {
	Season int
	League string
	Teams  []string
}

func parseSeasonFilters(r *http.Request) (seasonFilters, string) {
	q := r.URL.Query()
	f := seasonFilters{}

	s := q.Get("season")
	if s == "" {
		return f, "season query parameter is required"
	}
	season, err := strconv.Atoi(s)
	if err != nil {
		return f, "season must be an integer"
	}
	f.Season = season

	if league := q.Get("league"); league != "" {
		if league != config.LeagueCentral && league != config.LeaguePacific {
			return f, "league must be 'central' or 'pacific'"
		}
		f.League = league
	}
	if teams := q.Get("teams"); teams != "" {
		for _, t := range strings.Split(teams, ",") {
			if trimmed := strings.TrimSpace(t); trimmed != "" {
				f.Teams = append(f.Teams, trimmed)
			}
		}
	}
	return f, ""
}

// loadSeason fetches the snapshot for a role and season and applies the
// team/league selection.
func (h *Handler) loadSeason(r *http.Request, role store.Role, f seasonFilters) ([]store.Record, error) {
	recs, err := h.store.SeasonRecords(r.Context(), role, f.Season)
	if err != nil {
		return nil, err
	}
	teams := f.Teams
	if len(teams) == 0 && f.League != "" {
		teams = config.LeagueTeams(f.League)
	}
	return store.FilterTeams(recs, teams), nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	if v := r.URL.Query().Get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
