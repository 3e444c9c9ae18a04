package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const retryBackoff = 250 * time.Millisecond

// withRetry runs fn up to 1+maxRetries times under a single deadline.
// Fatal errors and context expiry stop the loop early.
func withRetry(ctx context.Context, timeout time.Duration, maxRetries int, fn func(context.Context) (*ToolResult, error)) (*ToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastErr error
	attempts := 1 + maxRetries
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(time.Duration(i) * retryBackoff):
			}
		}
		if ctx.Err() != nil {
			break
		}
		res, err := fn(ctx)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if isFatal(err) {
			return nil, err
		}
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(lastErr, ErrUnavailable):
		return nil, lastErr
	case maxRetries == 0:
		return nil, lastErr
	default:
		return nil, fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr)
	}
}
