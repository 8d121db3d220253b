package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserError(t *testing.T) {
	err := NewUserError("Pick a channel for daily rolls", "setchannel called without a channel option")

	assert.Equal(t, "Pick a channel for daily rolls", err.UserMessage)
	assert.Equal(t, "setchannel called without a channel option", err.LogMessage)
	assert.True(t, err.Ephemeral)
	assert.NoError(t, err.Err)
	assert.Equal(t, "setchannel called without a channel option", err.Error())
}

func TestNewSystemError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewSystemError(cause, "Error beginning transaction")

	assert.Equal(t, "❌ Something went wrong. Please try again later.", err.UserMessage)
	assert.Equal(t, "Error beginning transaction", err.LogMessage)
	assert.True(t, err.Ephemeral)
	assert.Equal(t, "Error beginning transaction: connection refused", err.Error())
}

func TestBotError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewSystemError(cause, "Error beginning transaction")

	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("handling roll: %w", err)
	var botErr *BotError
	require.ErrorAs(t, wrapped, &botErr)
	assert.Equal(t, "Error beginning transaction", botErr.LogMessage)
}
