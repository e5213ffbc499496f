package artifact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	env := map[string]string{
		"ARTIFACT_S3_ENDPOINT": "localhost:9000",
		"MINIO_ROOT_USER":      "root",
		"MINIO_ROOT_PASSWORD":  "secret",
		"ARTIFACT_S3_USE_SSL":  "true",
		"ARTIFACT_S3_PREFIX":   "/runs/",
	}
	cfg := ConfigFromEnv(func(k string) string { return env[k] })

	assert.Equal(t, "localhost:9000", cfg.Endpoint)
	assert.Equal(t, "root", cfg.AccessKey)
	assert.Equal(t, "secret", cfg.SecretKey)
	assert.True(t, cfg.UseSSL)
	assert.Empty(t, cfg.Bucket)

	merged := S3Config{Bucket: "mine"}.Merge(cfg)
	assert.Equal(t, "mine", merged.Bucket)
	assert.Equal(t, "root", merged.AccessKey)
}

func TestNewS3PublisherValidation(t *testing.T) {
	_, err := NewS3Publisher(S3Config{AccessKey: "a", SecretKey: "b"})
	assert.Error(t, err)

	_, err = NewS3Publisher(S3Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)

	p, err := NewS3Publisher(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBucket, p.Bucket())
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "results.json", ObjectKey("", "", "/tmp/out/results.json"))
	assert.Equal(t, "runs/2026/a.json", ObjectKey("/runs/", "2026/a.json", "x"))
	assert.Equal(t, "runs/x.csv", ObjectKey("runs", " ", "dir/x.csv"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", ContentType("a.JSON"))
	assert.Equal(t, "application/x-ndjson", ContentType("a.jsonl"))
	assert.Equal(t, "text/csv", ContentType("stats.csv"))
	assert.Equal(t, "application/octet-stream", ContentType("blob"))
}

func TestPublish(t *testing.T) {
	var mu sync.Mutex
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.Method+" "+r.URL.Path)
		mu.Unlock()
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(local, []byte("[]\n"), 0o644))

	p, err := NewS3Publisher(S3Config{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "a",
		SecretKey: "b",
		Bucket:    "datasets",
		Prefix:    "runs",
	})
	require.NoError(t, err)

	key, err := p.Publish(context.Background(), local, "")
	require.NoError(t, err)
	assert.Equal(t, "runs/results.json", key)

	_, err = p.Publish(context.Background(), local, "again.json")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, requests, 3, "bucket is checked once: %v", requests)
	assert.True(t, strings.HasPrefix(requests[0], "HEAD /datasets"), requests[0])
	assert.Equal(t, "PUT /datasets/runs/results.json", requests[1])
	assert.Equal(t, "PUT /datasets/runs/again.json", requests[2])
}
