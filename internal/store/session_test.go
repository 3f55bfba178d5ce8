package store

import (
	"os"
	"testing"
	"time"

	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Lifecycle(t *testing.T) {
	c := testConfig(t)

	_, ok, err := LoadSession(c)
	require.NoError(t, err)
	assert.False(t, ok)

	want := model.NewSession("alice", 1234, time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC))
	require.NoError(t, SaveSession(c, want))

	got, ok, err := LoadSession(c)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, ClearSession(c))
	_, ok, err = LoadSession(c)
	require.NoError(t, err)
	assert.False(t, ok)

	// clearing twice is fine
	assert.NoError(t, ClearSession(c))
}

func TestSession_GarbageFileIsLoggedOut(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, os.WriteFile(c.SessionPath(), []byte(":::\n- not a session"), 0600))

	_, ok, err := LoadSession(c)
	require.NoError(t, err)
	assert.False(t, ok)
}
