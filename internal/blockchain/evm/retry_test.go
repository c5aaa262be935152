package evm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type rpcCodeError struct {
	code int
}

func (e rpcCodeError) Error() string  { return fmt.Sprintf("rpc error %d", e.code) }
func (e rpcCodeError) ErrorCode() int { return e.code }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"http 503", rpc.HTTPError{StatusCode: 503, Status: "503 Service Unavailable"}, true},
		{"http 429", rpc.HTTPError{StatusCode: 429}, true},
		{"http 400", rpc.HTTPError{StatusCode: 400}, false},
		{"limit exceeded", rpcCodeError{code: -32005}, true},
		{"reverted", rpcCodeError{code: -32000}, false},
		{"eof", fmt.Errorf("post: %w", io.EOF), true},
		{"connection refused", errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), true},
		{"cancelled", context.Canceled, false},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), false},
		{"other", errors.New("invalid argument"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err))
		})
	}
}

func TestRetryRecoversFromTransientErrors(t *testing.T) {
	attempts := 0
	policy := RetryPolicy{Retries: 3, InitialInterval: time.Millisecond}

	got, err := retry(context.Background(), policy, zap.NewNop(), "eth_call", func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", rpc.HTTPError{StatusCode: 502}
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, attempts)
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	attempts := 0
	cause := errors.New("execution reverted")

	_, err := retry(context.Background(), RetryPolicy{Retries: 5, InitialInterval: time.Millisecond}, zap.NewNop(), "eth_call",
		func() (int, error) {
			attempts++
			return 0, cause
		})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, attempts)
}

func TestRetryHonoursMaxTries(t *testing.T) {
	attempts := 0

	_, err := retry(context.Background(), RetryPolicy{Retries: 2, InitialInterval: time.Millisecond}, zap.NewNop(), "eth_getBalance",
		func() (int, error) {
			attempts++
			return 0, io.ErrUnexpectedEOF
		})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestZeroPolicyMakesSingleAttempt(t *testing.T) {
	attempts := 0

	_, err := retry(context.Background(), RetryPolicy{}, zap.NewNop(), "eth_getBalance", func() (int, error) {
		attempts++
		return 0, io.EOF
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}
