package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleAndClaim(t *testing.T) {
	var loop Loop

	token := loop.Schedule()
	require.NotEqual(t, None, token)
	assert.True(t, loop.Pending())

	assert.True(t, loop.Claim(token))
	assert.False(t, loop.Pending())
	assert.False(t, loop.Claim(token), "a token can only be claimed once")
}

func TestScheduleReplacesPending(t *testing.T) {
	var loop Loop

	first := loop.Schedule()
	second := loop.Schedule()

	assert.NotEqual(t, first, second)
	assert.False(t, loop.Claim(first))
	assert.True(t, loop.Claim(second))
}

func TestCancelDropsPending(t *testing.T) {
	var loop Loop

	token := loop.Schedule()
	loop.Cancel()

	assert.False(t, loop.Pending())
	assert.False(t, loop.Claim(token))
}

func TestClaimNone(t *testing.T) {
	var loop Loop
	assert.False(t, loop.Claim(None))
}
