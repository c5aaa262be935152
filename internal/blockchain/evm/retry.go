// internal/blockchain/evm/retry.go
package evm

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const defaultInitialInterval = 200 * time.Millisecond

// RetryPolicy bounds retries of transient node failures. The zero value makes exactly one attempt.
type RetryPolicy struct {
	Retries         int
	MaxElapsed      time.Duration
	InitialInterval time.Duration
}

func (p RetryPolicy) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = defaultInitialInterval
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	b.MaxInterval = b.InitialInterval * 10
	return b
}

// retry runs op until it succeeds, fails permanently, or the policy is exhausted.
func retry[T any](ctx context.Context, p RetryPolicy, logger *zap.Logger, method string, op func() (T, error)) (T, error) {
	operation := func() (T, error) {
		res, err := op()
		if err != nil && !IsRetryableError(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}

	notify := func(err error, next time.Duration) {
		logger.Debug("Retrying RPC request",
			zap.String("method", method),
			zap.Error(err),
			zap.Duration("backoff", next))
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(p.newBackOff()),
		backoff.WithMaxTries(uint(p.Retries + 1)),
		backoff.WithNotify(notify),
	}
	if p.MaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(p.MaxElapsed))
	}

	res, err := backoff.Retry(ctx, operation, opts...)
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}
	return res, err
}
