package github

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, routes map[string]string) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var mu sync.Mutex
	var seen []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r)
		mu.Unlock()
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestBranchAPIURL(t *testing.T) {
	got, err := BranchAPIURL("https://github.com/jenkinsci/jenkins/tree/stable-2.346", "")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/repos/jenkinsci/jenkins/branches/stable-2.346", got)

	got, err = BranchAPIURL("https://github.com/o/r/tree/release/1.x\n", "http://localhost:9/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9/repos/o/r/branches/release/1.x", got)

	for _, bad := range []string{"https://github.com/o", "https://github.com/o/r", "https://github.com/o/r/tree/", "://"} {
		_, err := BranchAPIURL(bad, "")
		assert.Error(t, err, bad)
	}
}

func TestJavaFiles(t *testing.T) {
	srv, seen := newTestServer(t, map[string]string{
		"/repos/o/r/branches/main": `{"commit":{"sha":"abc123"}}`,
		"/repos/o/r/git/trees/abc123": `{"tree":[
			{"path":"src/A.java","type":"blob","url":"u1"},
			{"path":"src","type":"tree","url":"u2"},
			{"path":"README.md","type":"blob","url":"u3"},
			{"path":"src/B.java","type":"blob","url":"u4"}
		]}`,
	})

	c := New(Options{BaseURL: srv.URL, Token: "secret"})
	files, err := c.JavaFiles(context.Background(), srv.URL+"/repos/o/r/branches/main")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "src/A.java", files[0].Path)
	assert.Equal(t, "u4", files[1].URL)

	reqs := *seen
	require.Len(t, reqs, 2)
	assert.Equal(t, "token secret", reqs[0].Header.Get("Authorization"))
	assert.Equal(t, DefaultUserAgent, reqs[0].Header.Get("User-Agent"))
	assert.Equal(t, "1", reqs[1].URL.Query().Get("recursive"))
}

func TestJavaFilesRejectsNonBranchURL(t *testing.T) {
	c := New(Options{})
	_, err := c.JavaFiles(context.Background(), "https://api.github.com/repos/o/r")
	assert.Error(t, err)
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *mapCache) Get(url string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[url]
	return v, ok, nil
}

func (m *mapCache) Put(url string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[url] = content
	return nil
}

func TestBlobSourceUsesCache(t *testing.T) {
	src := "class A {\n  void f() {}\n}\n"
	encoded := base64.StdEncoding.EncodeToString([]byte(src))
	// GitHub wraps base64 content at 60 columns.
	wrapped := encoded[:10] + `\n` + encoded[10:]

	srv, seen := newTestServer(t, map[string]string{
		"/repos/o/r/git/blobs/1": `{"content":"` + wrapped + `","encoding":"base64"}`,
	})
	cache := &mapCache{data: map[string][]byte{}}
	c := New(Options{BaseURL: srv.URL, Cache: cache})

	url := srv.URL + "/repos/o/r/git/blobs/1"
	got, err := c.BlobSource(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, src, got)

	got, err = c.BlobSource(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, src, got)
	assert.Len(t, *seen, 1, "second read should come from the cache")
	assert.Equal(t, src, string(cache.data[url]))
}

func TestBlobSourceBadEncoding(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/b": `{"content":"x","encoding":"utf-8"}`,
	})
	c := New(Options{BaseURL: srv.URL})
	_, err := c.BlobSource(context.Background(), srv.URL+"/b")
	assert.Error(t, err)
}

func TestStatusError(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	c := New(Options{BaseURL: srv.URL})

	_, err := c.Releases(context.Background(), "o/r")
	var se *StatusError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, se.Body, "Not Found")
}

func TestSearchJavaRepos(t *testing.T) {
	srv, seen := newTestServer(t, map[string]string{
		"/search/repositories": `{"total_count":2,"items":[
			{"full_name":"a/one","stargazers_count":20000,"forks_count":9000},
			{"full_name":"b/two","stargazers_count":15000,"forks_count":100}
		]}`,
	})
	c := New(Options{BaseURL: srv.URL})
	res, err := c.SearchJavaRepos(context.Background(), 10000, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, []string{"a/one", "b/two"}, res.RepoNames())

	q := (*seen)[0].URL.Query()
	assert.Equal(t, "language:Java stars:>10000", q.Get("q"))
	assert.Equal(t, "forks", q.Get("sort"))
	assert.Equal(t, "desc", q.Get("order"))
	assert.Equal(t, "100", q.Get("per_page"))
}

func TestActivityEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/repos/o/r/commits": `[{"node_id":"C1","sha":"s1","commit":{"message":"Migrate to java11"}}]`,
		"/repos/o/r/issues": `[
			{"number":1,"title":"Upgrade","body":null},
			{"number":2,"title":"PR","body":"x","pull_request":{"url":"p"}},
			{"number":3,"title":"Bug","body":"details"}
		]`,
		"/repos/o/r/releases": `[{"tag_name":"v1","body":null},{"tag_name":"v2","body":"notes"}]`,
	})
	c := New(Options{BaseURL: srv.URL})
	ctx := context.Background()

	commits, err := c.Commits(ctx, "o/r")
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "Migrate to java11", commits[0].Message)
	assert.Equal(t, "C1", commits[0].NodeID)

	issues, prs, err := c.Issues(ctx, "o/r")
	require.NoError(t, err)
	assert.Equal(t, 1, prs)
	require.Len(t, issues, 2)
	assert.Nil(t, issues[0].Body)
	assert.Equal(t, 3, issues[1].Number)

	releases, err := c.Releases(ctx, "o/r")
	require.NoError(t, err)
	require.Len(t, releases, 2)
	assert.Nil(t, releases[0].Body)
	assert.Equal(t, "notes", *releases[1].Body)
}

func TestLimiterHonorsContext(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"/repos/o/r/releases": `[]`})
	c := New(Options{BaseURL: srv.URL, Interval: time.Hour})

	_, err := c.Releases(context.Background(), "o/r")
	require.NoError(t, err, "first request uses the initial token")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Releases(ctx, "o/r")
	assert.Error(t, err, "second request should not wait an hour")
}

func TestJavaFilesTruncatedTree(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/repos/o/r/branches/main":    `{"commit":{"sha":"abc123"}}`,
		"/repos/o/r/git/trees/abc123": `{"tree":[{"path":"src/A.java","type":"blob","url":"u1"}],"truncated":true}`,
	})

	c := New(Options{BaseURL: srv.URL})
	files, err := c.JavaFiles(context.Background(), srv.URL+"/repos/o/r/branches/main")
	require.ErrorIs(t, err, ErrTreeTruncated)
	require.Len(t, files, 1)
	assert.Equal(t, "src/A.java", files[0].Path)
}
