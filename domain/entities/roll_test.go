package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserRoll(t *testing.T) {
	rolledAt := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	roll, err := NewUserRoll(123456, "testuser", 57, rolledAt)
	require.NoError(t, err)

	assert.Equal(t, int64(123456), roll.ActorID)
	assert.Equal(t, "testuser", roll.Username)
	assert.Equal(t, 57, roll.Value)
	assert.Equal(t, ActorTypeUser, roll.ActorType)
	assert.False(t, roll.IsBot())
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), roll.RolledOn)
}

func TestNewUserRoll_Validation(t *testing.T) {
	rolledAt := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		actorID  int64
		username string
		value    int
		rolledAt time.Time
	}{
		{"zero actor id", 0, "testuser", 50, rolledAt},
		{"negative actor id", -5, "testuser", 50, rolledAt},
		{"empty username", 123, "", 50, rolledAt},
		{"value below minimum", 123, "testuser", 0, rolledAt},
		{"value above maximum", 123, "testuser", 101, rolledAt},
		{"zero time", 123, "testuser", 50, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUserRoll(tt.actorID, tt.username, tt.value, tt.rolledAt)
			assert.Error(t, err)
		})
	}
}

func TestNewBotRoll(t *testing.T) {
	rolledAt := time.Date(2024, 3, 15, 7, 12, 0, 0, time.UTC)

	roll, err := NewBotRoll("RollF", 100, rolledAt)
	require.NoError(t, err)

	assert.Equal(t, BotActorID, roll.ActorID)
	assert.Equal(t, ActorTypeBot, roll.ActorType)
	assert.True(t, roll.IsBot())
	assert.Equal(t, 100, roll.Value)
}

func TestRollValueBounds(t *testing.T) {
	rolledAt := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	for _, v := range []int{MinRollValue, MaxRollValue} {
		_, err := NewUserRoll(123, "testuser", v, rolledAt)
		assert.NoError(t, err, "value %d should be accepted", v)
	}
}
