package llm

import (
	"context"
	"errors"
	"net"
	"time"

	"golang.org/x/time/rate"
)

// Middleware decorates a Client.
type Middleware func(Client) Client

// Wrap applies middlewares in left-to-right order:
// Wrap(inner, A, B) is A(B(inner)).
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// RateLimit spaces requests to at most rps per second. rps <= 0 disables it.
func RateLimit(rps float64) Middleware {
	return func(next Client) Client {
		if rps <= 0 {
			return next
		}
		return &rateLimited{next: next, rl: rate.NewLimiter(rate.Limit(rps), 1)}
	}
}

type rateLimited struct {
	next Client
	rl   *rate.Limiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error { return c.next.Close() }
func (c *rateLimited) Complete(ctx context.Context, messages []Message) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}
	return c.next.Complete(ctx, messages)
}

// Retry repeats a call up to attempts extra times when the failure is a
// rate limit, a server error or a network error.
func Retry(attempts int) Middleware {
	return func(next Client) Client {
		if attempts <= 0 {
			return next
		}
		return &retrying{next: next, attempts: attempts, backoff: 500 * time.Millisecond}
	}
}

type retrying struct {
	next     Client
	attempts int
	backoff  time.Duration
}

func (c *retrying) Name() string { return c.next.Name() }
func (c *retrying) Close() error { return c.next.Close() }
func (c *retrying) Complete(ctx context.Context, messages []Message) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.attempts; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(c.backoff << (attempt - 1))
			select {
			case <-ctx.Done():
				t.Stop()
				return "", ctx.Err()
			case <-t.C:
			}
		}
		out, err := c.next.Complete(ctx, messages)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !Retryable(err) {
			break
		}
	}
	return "", lastErr
}

// Retryable reports whether err is worth another attempt.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, ErrEmptyResponse)
}
