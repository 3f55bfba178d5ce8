package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatFile_LoadMissingFile(t *testing.T) {
	f := NewFlatFile(filepath.Join(t.TempDir(), "missing.json"), nil)

	docs := f.Load()
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestFlatFile_LoadCorruptFile(t *testing.T) {
	for name, content := range map[string]string{
		"garbage":   "{ not json",
		"truncated": `[{"id": "a", "title": "x"`,
		"object":    `{"id": "a"}`,
		"numbers":   `[1, 2, 3]`,
		"empty":     ``,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "todos.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			docs := NewFlatFile(path, nil).Load()
			assert.Empty(t, docs)
		})
	}
}

func TestFlatFile_LoadSkipsNullEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(path, []byte(`[null, {"id": "a"}]`), 0644))

	docs := NewFlatFile(path, nil).Load()
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0]["id"])
}

func TestFlatFile_SaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "todos.json")
	f := NewFlatFile(path, nil)

	require.NoError(t, f.Save([]model.Document{{"id": "a"}, {"id": "b"}}))

	docs := f.Load()
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0]["id"])
	assert.Equal(t, "b", docs[1]["id"])

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestFlatFile_SaveOverwrites(t *testing.T) {
	f := NewFlatFile(filepath.Join(t.TempDir(), "todos.json"), nil)

	require.NoError(t, f.Save([]model.Document{{"id": "a"}, {"id": "b"}}))
	require.NoError(t, f.Save([]model.Document{{"id": "c"}}))

	docs := f.Load()
	require.Len(t, docs, 1)
	assert.Equal(t, "c", docs[0]["id"])
}

func TestFlatFile_SaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, NewFlatFile(path, nil).Save(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFlatFile_SaveFailsWhenParentIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewFlatFile(filepath.Join(blocker, "todos.json"), nil).Save([]model.Document{{"id": "a"}})
	assert.Error(t, err)
}

func TestLoadJson_TypedSlice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, SaveJson(path, []model.Account{{Username: "alice", Credential: "pw"}}))

	var accounts []model.Account
	require.NoError(t, LoadJson(path, &accounts))
	assert.Equal(t, []model.Account{{Username: "alice", Credential: "pw"}}, accounts)
}

func TestLoadJson_ReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))

	var accounts []model.Account
	assert.Error(t, LoadJson(path, &accounts))
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
}
