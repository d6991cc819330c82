package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A mid-season trade produces two rows for the same player and season, one
// per team. The conflict keys must carry team_name or the second team's row
// would overwrite the first.
func TestUpsertConflictKeysIncludeTeam(t *testing.T) {
	assert.Contains(t, upsertPlayerStatsSQL,
		"ON CONFLICT (player_name, team_name, role, season)")
	assert.Contains(t, upsertFieldingSQL,
		"ON CONFLICT (player_name, team_name, position, season)")
	assert.Contains(t, upsertAbilityRatingSQL,
		"ON CONFLICT (player_name, team_name, season)")
}
