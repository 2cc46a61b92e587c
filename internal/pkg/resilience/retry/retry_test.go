package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Init(logger.WithLevel("error"))
}

func fast(opts ...Option) Retry {
	return New(append([]Option{WithDelay(time.Millisecond), WithMaxDelay(2 * time.Millisecond)}, opts...)...)
}

func TestRetry_Execute(t *testing.T) {
	t.Run("successful operation", func(t *testing.T) {
		calls := 0

		err := fast().Execute(t.Context(), func() error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retry until success", func(t *testing.T) {
		calls := 0

		err := fast(WithAttempts(3)).Execute(t.Context(), func() error {
			calls++
			if calls < 2 {
				return errors.New("temporary error")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("retry exhausted returns last error", func(t *testing.T) {
		calls := 0
		expectedErr := errors.New("persistent error")

		err := fast(WithAttempts(3), WithName("history sync")).Execute(t.Context(), func() error {
			calls++
			return expectedErr
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("unrecoverable stops immediately", func(t *testing.T) {
		calls := 0
		expectedErr := errors.New("not found")

		err := fast(WithAttempts(5)).Execute(t.Context(), func() error {
			calls++
			return Unrecoverable(expectedErr)
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		calls := 0

		err := New(WithAttempts(10), WithDelay(50*time.Millisecond)).Execute(ctx, func() error {
			calls++
			cancel()
			return errors.New("fails")
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
