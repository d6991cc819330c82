package stats

import (
	"errors"
	"fmt"
)

// ErrNoDefinition signals a registry lookup miss. This is a configuration
// error: every statistic surfaced in a comparison or leaderboard view must be
// registered. Callers either fail the view or take the explicit logged
// simple-mean degradation in AggregateWithFallback.
var ErrNoDefinition = errors.New("no stat definition")

// MissingFieldError reports that a required base field is absent from the
// entire row-set. It aborts only the affected view or batch item.
type MissingFieldError struct {
	Stat  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("stat %q: base field %q missing from row-set", e.Stat, e.Field)
}

// InsufficientDataError reports fewer rows than a statistical operation
// needs. Surfaced as an informational message, never a crash.
type InsufficientDataError struct {
	Needed int
	Got    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need %d rows, have %d", e.Needed, e.Got)
}
