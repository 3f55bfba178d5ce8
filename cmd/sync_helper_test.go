package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func (b *fakeBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[aws.ToString(in.Key)] = data
	b.puts++
	return &s3.PutObjectOutput{}, nil
}

func (b *fakeBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func syncTestConfig(t *testing.T) model.Config {
	t.Helper()
	c := model.DefaultConfig()
	c.DataDir = t.TempDir()
	c.Sync.Enable = true
	c.Sync.Bucket = "bucket"
	return c
}

func TestSyncDataDir_PushThenPull(t *testing.T) {
	ctx := context.Background()
	bucket := &fakeBucket{objects: make(map[string][]byte)}

	laptop := syncTestConfig(t)
	require.NoError(t, os.WriteFile(laptop.TasksPath(), []byte(`[{"id":"a"}]`), 0644))
	require.NoError(t, os.WriteFile(laptop.UsersPath(), []byte(`[]`), 0644))
	require.NoError(t, os.WriteFile(laptop.SessionPath(), []byte("username: alice\n"), 0600))

	require.NoError(t, syncDataDir(ctx, bucket, laptop, "push"))
	assert.Contains(t, bucket.objects, "todo-cli/todos.json")
	assert.Contains(t, bucket.objects, "todo-cli/users.json")
	assert.Contains(t, bucket.objects, "todo-cli/"+model.MetadataFile)
	assert.NotContains(t, bucket.objects, "todo-cli/"+model.SessionFile)

	desktop := syncTestConfig(t)
	require.NoError(t, syncDataDir(ctx, bucket, desktop, "pull"))

	data, err := os.ReadFile(desktop.TasksPath())
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(data))
	_, err = os.Stat(desktop.MetadataPath())
	assert.NoError(t, err)

	// pulled files carry the remote mtimes, so nothing is pending
	puts := bucket.puts
	require.NoError(t, syncDataDir(ctx, bucket, desktop, "push"))
	assert.Equal(t, puts, bucket.puts)
}

func TestSyncDataDir_UnknownDirection(t *testing.T) {
	bucket := &fakeBucket{objects: make(map[string][]byte)}
	err := syncDataDir(context.Background(), bucket, syncTestConfig(t), "both")
	assert.ErrorContains(t, err, "unknown sync direction")
}
