package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// RetryFunc is called before each retry with the zero-based retry number,
// the error that caused it and the delay about to be waited.
type RetryFunc func(retry int, err error, delay time.Duration)

// Executor re-runs an external tool invocation while its failures are
// classified as transient. An Executor is immutable and safe for concurrent
// use by the build workers.
type Executor struct {
	classifier pumlicons.ErrorClassifier
	strategy   pumlicons.BackoffStrategy
	onRetry    RetryFunc
}

// NewExecutor panics if classifier or strategy is nil.
func NewExecutor(classifier pumlicons.ErrorClassifier, strategy pumlicons.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// Default is the executor the build uses for the Java tools: two retries of
// transient JVM failures.
func Default() *Executor {
	return NewExecutor(NewToolErrorClassifier(),
		NewExponentialBackoff(2, WithInitialDelay(250*time.Millisecond), WithMaxDelay(5*time.Second)))
}

// WithOnRetry returns a copy of e that reports every retry to fn.
func (e *Executor) WithOnRetry(fn RetryFunc) *Executor {
	clone := *e
	clone.onRetry = fn
	return &clone
}

// Run calls op until it succeeds, fails with a fatal error, or the strategy
// runs out of retries. A fatal error is returned unchanged; an exhausted
// transient error is wrapped with the attempt count.
func (e *Executor) Run(ctx context.Context, op func(ctx context.Context) error) error {
	limit := e.strategy.MaxAttempts()
	for retry := 0; ; retry++ {
		err := op(ctx)
		if err == nil || !e.classifier.IsTransient(err) {
			return err
		}
		if limit >= 0 && retry >= limit {
			return fmt.Errorf("gave up after %d attempts: %w", retry+1, err)
		}

		delay := e.strategy.NextDelay(retry)
		if e.onRetry != nil {
			e.onRetry(retry, err, delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// Value runs op through e and returns its result.
func Value[T any](ctx context.Context, e *Executor, op func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := e.Run(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err == nil {
			out = v
		}
		return err
	})
	return out, err
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
