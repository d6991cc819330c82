// Package store loads player season row-sets from Postgres into in-memory
// records. Each API interaction computes over an immutable snapshot of these
// rows; nothing here is mutated after loading.
package store

import "strconv"

// Role selects the pitching or batting row-set.
type Role string

const (
	RolePitching Role = "pitching"
	RoleBatting  Role = "batting"
)

// Valid reports whether r names a known role.
func (r Role) Valid() bool {
	return r == RolePitching || r == RoleBatting
}

// Record is one (player, team, season) row. Stat and biographical columns
// live in Fields under canonical keys; values arrive from the scraper in
// mixed types, so access goes through numeric coercion.
type Record struct {
	Player    string         `json:"player"`
	Team      string         `json:"team"`
	Season    int            `json:"season"`
	ImageFile string         `json:"image_file,omitempty"`
	Fields    map[string]any `json:"fields"`
}

// Float returns the named field coerced to a number. ok is false when the
// field is missing or not parseable; callers treat that as absent, never as
// zero.
func (r Record) Float(field string) (float64, bool) {
	v, exists := r.Fields[field]
	if !exists {
		return 0, false
	}
	return Coerce(v)
}

// Str returns the named field as a string, or "" when missing.
func (r Record) Str(field string) string {
	v, exists := r.Fields[field]
	if !exists || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Coerce normalizes a raw column value to a float64.
//
// Source data mixes numbers, numeric strings, and junk ("-", ""); anything
// that does not parse is absent, not zero.
func Coerce(val any) (float64, bool) {
	if val == nil {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		if v != v { // NaN from upstream
			return 0, false
		}
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil && f == f {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}
