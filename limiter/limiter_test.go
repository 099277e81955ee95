package limiter_test

import (
	"context"
	"testing"
	"time"

	"cratedig/limiter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBurstWithinQuota(t *testing.T) {
	lim := limiter.New(3, 300*time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, lim.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond,
		"calls within the quota should not wait")
}

func TestDelaysBeyondQuota(t *testing.T) {
	// 2 per 200ms window; the third call needs a token that refills at
	// t=100ms, so four back-to-back calls take at least ~200ms.
	lim := limiter.New(2, 200*time.Millisecond)

	start := time.Now()
	for i := 0; i < 4; i++ {
		require.NoError(t, lim.Wait(context.Background()))
	}
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond,
		"calls beyond the quota should be delayed into later windows")
}

func TestWaitHonorsContext(t *testing.T) {
	lim := limiter.New(1, time.Hour)
	require.NoError(t, lim.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, lim.Wait(ctx), "an exhausted limiter should fail when ctx expires")
}
