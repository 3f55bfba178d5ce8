package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMetadata(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"todos.json", "users.json", model.SessionFile, "todos.json.tmp", filepath.Join("archive", "old.json")} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("[]"), 0644))
	}
	mtime := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "todos.json"), mtime, mtime))

	meta, err := GenerateMetadata(dir, []string{model.SessionFile, model.MetadataFile})
	require.NoError(t, err)

	assert.Len(t, meta, 3)
	assert.Contains(t, meta, "users.json")
	assert.Contains(t, meta, "archive/old.json")
	assert.Equal(t, "2025-02-03T04:05:06Z", meta["todos.json"])
}

func TestSaveAndLoadMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", model.MetadataFile)
	meta := map[string]string{"todos.json": "2025-02-03T04:05:06Z"}

	require.NoError(t, SaveMetadata(path, meta))
	loaded, err := LoadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, meta, loaded)
}

func TestLoadMetadata_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	meta, err := LoadMetadata(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, meta)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = LoadMetadata(bad)
	assert.Error(t, err)
}

func TestDetectChanges(t *testing.T) {
	local := map[string]string{
		"same.json":        "2025-01-01T00:00:00Z",
		"jitter.json":      "2025-01-01T00:00:01Z",
		"local-newer.json": "2025-01-02T00:00:00Z",
		"s3-newer.json":    "2025-01-01T00:00:00Z",
		"local-only.json":  "2025-01-01T00:00:00Z",
		"bad-time.json":    "yesterday",
	}
	remote := map[string]string{
		"same.json":        "2025-01-01T00:00:00Z",
		"jitter.json":      "2025-01-01T00:00:00Z",
		"local-newer.json": "2025-01-01T00:00:00Z",
		"s3-newer.json":    "2025-01-03T00:00:00Z",
		"s3-only.json":     "2025-01-01T00:00:00Z",
		"bad-time.json":    "2025-01-01T00:00:00Z",
	}

	assert.Equal(t, []string{"local-newer.json", "local-only.json"}, DetectChanges(local, remote, SourceLocal))
	assert.Equal(t, []string{"s3-newer.json", "s3-only.json"}, DetectChanges(local, remote, SourceRemote))
	assert.Empty(t, DetectChanges(local, local, SourceLocal))
}
