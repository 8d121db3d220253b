package leaderboard

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"rollf/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOverviewEmbed(t *testing.T) {
	today := []*entities.LeaderboardEntry{
		{Rank: 1, Username: "alice", Score: 97},
		{Rank: 1, Username: "bob", Score: 97},
		{Rank: 3, Username: "carol", Score: 12},
	}
	resetAt := time.Unix(1735689600, 0)

	embed := buildOverviewEmbed(today, nil, resetAt)

	assert.Equal(t, fmt.Sprintf("Today's board resets <t:%d:R>", resetAt.Unix()), embed.Description)
	require.Len(t, embed.Fields, 2)

	todayTable := embed.Fields[0].Value
	assert.Contains(t, todayTable, "1   alice")
	assert.Contains(t, todayTable, "1   bob")
	assert.Contains(t, todayTable, "3   carol")

	assert.Contains(t, embed.Fields[1].Value, "No data.")
}

func TestScoreTable_Empty(t *testing.T) {
	assert.Equal(t, "```No rolls today.```", scoreTable(nil, "ROLL", "No rolls today."))
}

func TestScoreTable_TrimsLongNames(t *testing.T) {
	entries := []*entities.LeaderboardEntry{
		{Rank: 1, Username: strings.Repeat("x", 20), Score: 50},
	}

	table := scoreTable(entries, "ROLL", "No rolls today.")
	assert.Contains(t, table, strings.Repeat("x", 15)+"…")
	assert.NotContains(t, table, strings.Repeat("x", 16))
}
