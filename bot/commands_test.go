package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every handler reads i.Member, which Discord only sends for guild
// interactions. A command reachable from a DM would panic the handler.
func TestCommandDefinitions_GuildOnly(t *testing.T) {
	commands := commandDefinitions()
	require.NotEmpty(t, commands)

	for _, cmd := range commands {
		require.NotNil(t, cmd.DMPermission, "command %s must declare DM permission", cmd.Name)
		assert.False(t, *cmd.DMPermission, "command %s must be guild-only", cmd.Name)
	}
}

func TestCommandDefinitions_Names(t *testing.T) {
	var names []string
	for _, cmd := range commandDefinitions() {
		names = append(names, cmd.Name)
	}

	assert.ElementsMatch(t, []string{"roll", "leaderboards", "stats", "setchannel", "help"}, names)
}
