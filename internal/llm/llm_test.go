package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationPrompt(t *testing.T) {
	msgs := MigrationPrompt("void f() {\n}\n")
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "behavior.Change any syntax")
	assert.Equal(t, RoleUser, msgs[1].Role)
	assert.Equal(t,
		"Migrate the following Java 8 method (encapsulated within the <Java> and </Java> tags) to Java 11.\n\n<Java>\nvoid f() {\n}\n</Java>",
		msgs[1].Content)
}

func TestExtractJavaCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced", "Here you go:\n```java\nvoid f() {}\n```\nDone.", "void f() {}\n"},
		{"first fence wins", "```java\na();\n```\n```java\nb();\n```", "a();\n"},
		{"no fence", "  void f() {}\n", "void f() {}"},
		{"unclosed fence", "```java\nvoid f() {}", "void f() {}"},
		{"other language fence", "```kotlin\nfun f() {}\n```", "```kotlin\nfun f() {}\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJavaCode(tt.in))
		})
	}
}

func TestMistralClientComplete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"` + "```java\\nvoid g() {}\\n```" + `"}}]}`))
	}))
	defer srv.Close()

	c := NewMistralClient("key", "", srv.URL, 0)
	out, err := c.Complete(context.Background(), MigrationPrompt("void f() {}"))
	require.NoError(t, err)
	assert.Equal(t, "void g() {}\n", ExtractJavaCode(out))

	assert.Equal(t, DefaultMistralModel, got.Model)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	assert.Equal(t, float32(0), got.Temperature)
	assert.Len(t, got.Messages, 2)
	assert.Equal(t, "Mistral:codestral-latest", c.Name())
}

func TestMistralClientErrors(t *testing.T) {
	status := http.StatusTooManyRequests
	body := `{"message":"slow down"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewMistralClient("key", "m", srv.URL, 10)
	_, err := c.Complete(context.Background(), nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.True(t, Retryable(err))

	status, body = http.StatusOK, `{"choices":[]}`
	_, err = c.Complete(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestFakeClient(t *testing.T) {
	f := NewFakeClient("first")
	ctx := context.Background()

	out, err := f.Complete(ctx, MigrationPrompt("x"))
	require.NoError(t, err)
	assert.Equal(t, "first", out)

	f.FailNext(errors.New("boom"))
	_, err = f.Complete(ctx, nil)
	assert.EqualError(t, err, "boom")

	out, err = f.Complete(ctx, []Message{{Role: RoleUser, Content: "void f() {}"}})
	require.NoError(t, err)
	assert.Equal(t, "void f() {}", ExtractJavaCode(out))
	assert.Len(t, f.Calls(), 3)
}

func TestRetry(t *testing.T) {
	f := NewFakeClient("ok")
	f.FailNext(&APIError{StatusCode: 503})
	c := &retrying{next: f, attempts: 2, backoff: time.Millisecond}

	out, err := c.Complete(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Len(t, f.Calls(), 2)

	f.FailNext(&APIError{StatusCode: 400})
	_, err = c.Complete(context.Background(), nil)
	require.Error(t, err)
	assert.Len(t, f.Calls(), 3, "client errors are not retried")
}

func TestRateLimitSpacing(t *testing.T) {
	c := Wrap(NewFakeClient(), RateLimit(20))
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.Complete(ctx, nil)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, Config{Provider: "fake"})
	require.NoError(t, err)
	assert.Equal(t, "FakeLLM", c.Name())

	_, err = New(ctx, Config{Provider: "mistral"})
	assert.Error(t, err)

	_, err = New(ctx, Config{Provider: "openai", APIKey: "k"})
	assert.Error(t, err)

	c, err = New(ctx, Config{Provider: "Mistral", APIKey: "k", Model: "codestral-2501", RPS: 1, Retries: 2})
	require.NoError(t, err)
	assert.Equal(t, "Mistral:codestral-2501", c.Name())
}
