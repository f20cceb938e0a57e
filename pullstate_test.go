package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPullState(t *testing.T) {
	state, err := NewPullState(t.TempDir())
	require.NoError(t, err)

	last, err := state.LastPull("https://app.phraselab.com", 42)
	require.NoError(t, err)
	require.Nil(t, last)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, state.SetLastPull("https://app.phraselab.com", 42, now))

	last, err = state.LastPull("https://app.phraselab.com", 42)
	require.NoError(t, err)
	require.NotNil(t, last)
	require.Equal(t, now, *last)

	// Other projects keep their own bookkeeping
	last, err = state.LastPull("https://app.phraselab.com", 7)
	require.NoError(t, err)
	require.Nil(t, last)
}
