package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mrmateussiilva/petstory/config"
	"github.com/mrmateussiilva/petstory/internal/retry"
	"github.com/stretchr/testify/assert"
)

func fastConfig() config.RetryConfig {
	return config.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestBackoff_GrowsAndCaps(t *testing.T) {
	cfg := config.RetryConfig{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}

	assert.Equal(t, 100*time.Millisecond, retry.Backoff(cfg, 0))
	assert.Equal(t, 400*time.Millisecond, retry.Backoff(cfg, 2))
	assert.Equal(t, time.Second, retry.Backoff(cfg, 6))
}

func TestBackoff_JitterStaysInBand(t *testing.T) {
	cfg := config.RetryConfig{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second, Jitter: true}

	for i := 0; i < 50; i++ {
		d := retry.Backoff(cfg, 1)
		assert.GreaterOrEqual(t, d, 170*time.Millisecond)
		assert.LessOrEqual(t, d, 230*time.Millisecond)
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastConfig(), "test", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	expected := errors.New("still down")
	calls := 0
	err := retry.Do(context.Background(), fastConfig(), "test", func(ctx context.Context) error {
		calls++
		return expected
	})

	assert.ErrorIs(t, err, expected)
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	expected := errors.New("bad request")
	calls := 0
	err := retry.Do(context.Background(), fastConfig(), "test", func(ctx context.Context) error {
		calls++
		return retry.Permanent(expected)
	})

	assert.Equal(t, expected, err)
	assert.Equal(t, 1, calls)
}

func TestWithDefaults(t *testing.T) {
	cfg := retry.WithDefaults(config.RetryConfig{})

	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.BaseDelay)
	assert.Equal(t, 10*time.Second, cfg.MaxDelay)
}
