package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float", 3.15, 3.15, true},
		{"int64", int64(42), 42, true},
		{"numeric string", "2.45", 2.45, true},
		{"integer string", "120", 120, true},
		{"dash placeholder", "-", 0, false},
		{"empty string", "", 0, false},
		{"nan string", "NaN", 0, false},
		{"nan float", math.NaN(), 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Coerce(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestRecordFloat_AbsentIsNotZero(t *testing.T) {
	r := Record{Fields: map[string]any{"era": 0.0}}

	v, ok := r.Float("era")
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = r.Float("whip")
	assert.False(t, ok)
}

func TestRecordStr(t *testing.T) {
	r := Record{Fields: map[string]any{"hand": "右投左打", "age": 28.0}}

	assert.Equal(t, "右投左打", r.Str("hand"))
	assert.Equal(t, "", r.Str("age"))
	assert.Equal(t, "", r.Str("missing"))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RolePitching.Valid())
	assert.True(t, RoleBatting.Valid())
	assert.False(t, Role("fielding").Valid())
}

func TestFilterTeams(t *testing.T) {
	recs := []Record{
		{Player: "a", Team: "giants"},
		{Player: "b", Team: "hanshin"},
		{Player: "c", Team: "giants"},
	}

	out := FilterTeams(recs, []string{"giants"})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Player)
	assert.Equal(t, "c", out[1].Player)

	assert.Len(t, FilterTeams(recs, nil), 3)
}
