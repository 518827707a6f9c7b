package ratelimit

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestNew_AllowsBurst(t *testing.T) {
	l := New("test", 5)

	assert.Equal(t, "test", l.Name())
	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(), "request %d within burst should be allowed", i)
	}
	assert.False(t, l.Allow(), "request beyond burst should be denied")
}

func TestNewEvery_SinglePermitBurst(t *testing.T) {
	l := NewEvery("pacing", time.Hour)

	assert.True(t, l.Allow(), "first request should pass without waiting")
	assert.False(t, l.Allow(), "second request should be paced")
}

func TestWait_CancelledContext(t *testing.T) {
	l := NewEvery("pacing", time.Hour)
	assert.True(t, l.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "rate limit wait for pacing"))
}
