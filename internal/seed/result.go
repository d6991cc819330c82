// Package seed ingests the scraper's SQLite databases into Postgres.
package seed

import "fmt"

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	RowsRead         int
	StatsUpserted    int
	FieldingUpserted int
	RatingsUpserted  int
	Errors           []string
}

// Add merges another SeedResult into this one.
func (r *SeedResult) Add(other SeedResult) {
	r.RowsRead += other.RowsRead
	r.StatsUpserted += other.StatsUpserted
	r.FieldingUpserted += other.FieldingUpserted
	r.RatingsUpserted += other.RatingsUpserted
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError records an error message.
func (r *SeedResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"rows=%d stats=%d fielding=%d ratings=%d errors=%d",
		r.RowsRead, r.StatsUpserted, r.FieldingUpserted,
		r.RatingsUpserted, len(r.Errors),
	)
}
