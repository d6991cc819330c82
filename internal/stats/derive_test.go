package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout-data/internal/store"
)

// rec builds a season row for tests.
func rec(player, team string, season int, fields map[string]any) store.Record {
	return store.Record{Player: player, Team: team, Season: season, Fields: fields}
}

func TestDerive_RawFieldFallback(t *testing.T) {
	r := rec("sawamura", "giants", 2024, map[string]any{"era": 2.45})

	v, ok := Derive(r, "era")
	require.True(t, ok)
	assert.Equal(t, 2.45, v)
}

func TestDerive_StringValuesCoerce(t *testing.T) {
	r := rec("sawamura", "giants", 2024, map[string]any{"era": "3.15"})

	v, ok := Derive(r, "era")
	require.True(t, ok)
	assert.Equal(t, 3.15, v)
}

func TestDerive_AbsentFieldIsAbsentNotZero(t *testing.T) {
	r := rec("sawamura", "giants", 2024, map[string]any{})

	_, ok := Derive(r, "era")
	assert.False(t, ok)
}

func TestDerive_OPS(t *testing.T) {
	r := rec("okamoto", "giants", 2024, map[string]any{"obp": 0.400, "slg": 0.550})

	v, ok := Derive(r, "ops")
	require.True(t, ok)
	assert.InDelta(t, 0.950, v, 1e-9)
}

func TestDerive_OPSMissingComponentPropagates(t *testing.T) {
	r := rec("okamoto", "giants", 2024, map[string]any{"obp": 0.400})

	_, ok := Derive(r, "ops")
	assert.False(t, ok)
}

func TestDerive_ThreeTrueOutcomesRate(t *testing.T) {
	r := rec("okamoto", "giants", 2024, map[string]any{
		"bb": 60.0, "so": 120.0, "hr": 30.0, "pa": 600.0,
	})

	v, ok := Derive(r, "tto_rate")
	require.True(t, ok)
	assert.InDelta(t, 0.35, v, 1e-9)
}

func TestDerive_StrikeoutRate(t *testing.T) {
	r := rec("okamoto", "giants", 2024, map[string]any{"so": 150.0, "pa": 500.0})

	v, ok := Derive(r, "k_rate")
	require.True(t, ok)
	assert.InDelta(t, 0.30, v, 1e-9)
}

func TestDerive_BABIPMissingSacFliesDefaultsToZero(t *testing.T) {
	// bip = ab - so - hr + sf; with sf absent the formula treats it as 0.
	r := rec("okamoto", "giants", 2024, map[string]any{
		"hits": 150.0, "hr": 30.0, "ab": 500.0, "so": 100.0,
	})

	v, ok := Derive(r, "babip")
	require.True(t, ok)
	// (150-30) / (500-100-30+0)
	assert.InDelta(t, 120.0/370.0, v, 1e-9)
}

func TestDerive_BABIPWithSacFlies(t *testing.T) {
	r := rec("okamoto", "giants", 2024, map[string]any{
		"hits": 150.0, "hr": 30.0, "ab": 500.0, "so": 100.0, "sf": 5.0,
	})

	v, ok := Derive(r, "babip")
	require.True(t, ok)
	assert.InDelta(t, 120.0/375.0, v, 1e-9)
}

func TestDerive_ReliefAppearances(t *testing.T) {
	r := rec("sawamura", "giants", 2024, map[string]any{"games": 50.0, "starts": 2.0})

	v, ok := Derive(r, "relief")
	require.True(t, ok)
	assert.Equal(t, 48.0, v)
}

func TestDerive_BattingAverageFromCounts(t *testing.T) {
	r := rec("okamoto", "giants", 2024, map[string]any{"hits": 150.0, "ab": 500.0})

	v, ok := Derive(r, "avg")
	require.True(t, ok)
	assert.InDelta(t, 0.300, v, 1e-9)
}

func TestDerive_DoesNotMutateRecord(t *testing.T) {
	fields := map[string]any{"obp": 0.400, "slg": 0.550}
	r := rec("okamoto", "giants", 2024, fields)

	_, _ = Derive(r, "ops")

	assert.Len(t, fields, 2)
	assert.NotContains(t, fields, "ops")
}
