package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout-data/internal/stats"
	"github.com/dugoutlab/dugout-data/internal/store"
)

func TestParseRole(t *testing.T) {
	role, ok := parseRole("pitching")
	require.True(t, ok)
	assert.Equal(t, store.RolePitching, role)

	_, ok = parseRole("fielding")
	assert.False(t, ok)

	_, ok = parseRole("")
	assert.False(t, ok)
}

func TestParseSeasonFilters_SeasonRequired(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/rankings/pitching", nil)

	_, problem := parseSeasonFilters(r)
	assert.NotEmpty(t, problem)
}

func TestParseSeasonFilters_SeasonMustBeInteger(t *testing.T) {
	r := httptest.NewRequest("GET", "/?season=twentytwentyfour", nil)

	_, problem := parseSeasonFilters(r)
	assert.NotEmpty(t, problem)
}

func TestParseSeasonFilters_LeagueValidated(t *testing.T) {
	r := httptest.NewRequest("GET", "/?season=2024&league=atlantic", nil)

	_, problem := parseSeasonFilters(r)
	assert.NotEmpty(t, problem)
}

func TestParseSeasonFilters_Full(t *testing.T) {
	r := httptest.NewRequest("GET", "/?season=2024&league=central&teams=giants,%20hanshin,", nil)

	f, problem := parseSeasonFilters(r)
	require.Empty(t, problem)
	assert.Equal(t, 2024, f.Season)
	assert.Equal(t, "central", f.League)
	assert.Equal(t, []string{"giants", "hanshin"}, f.Teams)
}

func TestQueryHelpers(t *testing.T) {
	r := httptest.NewRequest("GET", "/?top=5&min_ip=40.5&junk=abc", nil)

	assert.Equal(t, 5, queryInt(r, "top", 10))
	assert.Equal(t, 10, queryInt(r, "missing", 10))
	assert.Equal(t, 10, queryInt(r, "junk", 10))
	assert.Equal(t, 40.5, queryFloat(r, "min_ip", 0))
	assert.Equal(t, 0.0, queryFloat(r, "missing", 0))
}

func TestEligibilityFromQuery_RoleSpecific(t *testing.T) {
	r := httptest.NewRequest("GET", "/?min_ip=50&min_pa=100&positions=二,遊", nil)

	pf := eligibilityFromQuery(r, store.RolePitching)
	pitching, ok := pf.(stats.PitchingEligibility)
	require.True(t, ok)
	assert.Equal(t, 50.0, pitching.MinInnings)

	bf := eligibilityFromQuery(r, store.RoleBatting)
	batting, ok := bf.(stats.BattingEligibility)
	require.True(t, ok)
	assert.Equal(t, 100.0, batting.MinPA)
	assert.Equal(t, []string{"二", "遊"}, batting.Positions)
}
