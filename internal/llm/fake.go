package llm

import (
	"context"
	"sync"
)

// FakeClient answers from a script for offline runs and tests. With no
// script it echoes the last user message inside a java fence.
type FakeClient struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     [][]Message
}

func NewFakeClient(responses ...string) *FakeClient {
	return &FakeClient{responses: responses}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// FailNext queues err as the result of the next call.
func (f *FakeClient) FailNext(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
}

// Calls returns the conversations received so far.
func (f *FakeClient) Calls() [][]Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]Message(nil), f.calls...)
}

func (f *FakeClient) Complete(ctx context.Context, messages []Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, messages)

	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return "", err
	}
	if len(f.responses) > 0 {
		r := f.responses[0]
		f.responses = f.responses[1:]
		return r, nil
	}

	var last string
	for _, m := range messages {
		if m.Role == RoleUser {
			last = m.Content
		}
	}
	return "```java\n" + last + "\n```", nil
}
