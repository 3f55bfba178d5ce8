package store

import (
	"os"
	"testing"

	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) model.Config {
	t.Helper()
	c := model.DefaultConfig()
	c.DataDir = t.TempDir()
	return c
}

func TestDirectory_LoadAllEmpty(t *testing.T) {
	d := NewDirectory(testConfig(t), nil)
	assert.Empty(t, d.LoadAll())
}

func TestDirectory_SaveAndLoad(t *testing.T) {
	d := NewDirectory(testConfig(t), nil)
	accounts := []model.Account{
		{Username: "alice", Credential: "hashed_pass_1"},
		{Username: "bob", Credential: "hashed_pass_2"},
	}

	require.NoError(t, d.SaveAll(accounts))
	assert.Equal(t, accounts, d.LoadAll())
}

func TestDirectory_CorruptedFile(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, os.WriteFile(c.UsersPath(), []byte("{invalid"), 0644))

	assert.Empty(t, NewDirectory(c, nil).LoadAll())
}

func TestDirectory_ReadsLegacyPasswordKey(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, os.WriteFile(c.UsersPath(), []byte(`[{"username": "alice", "password": "h"}]`), 0644))

	accounts := NewDirectory(c, nil).LoadAll()
	assert.Equal(t, []model.Account{{Username: "alice", Credential: "h"}}, accounts)
}

func TestDirectory_DoesNotEnforceUniqueness(t *testing.T) {
	d := NewDirectory(testConfig(t), nil)
	dup := []model.Account{{Username: "alice", Credential: "1"}, {Username: "alice", Credential: "2"}}

	require.NoError(t, d.SaveAll(dup))
	assert.Len(t, d.LoadAll(), 2)

	found, ok := FindByUsername(d.LoadAll(), "alice")
	require.True(t, ok)
	assert.Equal(t, "1", found.Credential, "first match wins")
}

func TestFindByUsername(t *testing.T) {
	accounts := []model.Account{
		{Username: "alice", Credential: "pass1"},
		{Username: "bob", Credential: "pass2"},
	}

	found, ok := FindByUsername(accounts, "bob")
	assert.True(t, ok)
	assert.Equal(t, "pass2", found.Credential)

	_, ok = FindByUsername(accounts, "charlie")
	assert.False(t, ok)

	_, ok = FindByUsername(accounts, "Alice")
	assert.False(t, ok, "lookup is case-sensitive")

	_, ok = FindByUsername(nil, "alice")
	assert.False(t, ok)
}
