package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChatRateLimiter_PerSecond(t *testing.T) {
	t.Parallel()
	cl := NewChatRateLimiter(2, 100, 50*time.Millisecond)

	ok, _ := cl.AllowChat("p1")
	assert.True(t, ok)
	ok, _ = cl.AllowChat("p1")
	assert.True(t, ok)

	// Third message within the same second trips the limit
	ok, reason := cl.AllowChat("p1")
	assert.False(t, ok)
	assert.Equal(t, "Chat rate limit exceeded", reason)

	// Still blocked while cooling down
	ok, _ = cl.AllowChat("p1")
	assert.False(t, ok)

	// Allowed again after the cooldown and the second window pass
	time.Sleep(1100 * time.Millisecond)
	ok, _ = cl.AllowChat("p1")
	assert.True(t, ok)
}

func TestChatRateLimiter_PerClient(t *testing.T) {
	t.Parallel()
	cl := NewChatRateLimiter(1, 100, time.Second)

	ok, _ := cl.AllowChat("p1")
	assert.True(t, ok)
	ok, _ = cl.AllowChat("p1")
	assert.False(t, ok)

	// Limits are tracked per client
	ok, _ = cl.AllowChat("p2")
	assert.True(t, ok)
}

func TestChatRateLimiter_RemoveClient(t *testing.T) {
	t.Parallel()
	cl := NewChatRateLimiter(1, 100, time.Minute)

	ok, _ := cl.AllowChat("p1")
	assert.True(t, ok)
	ok, _ = cl.AllowChat("p1")
	assert.False(t, ok)

	// Removal wipes the record, so a fresh connection starts clean
	cl.RemoveClient("p1")
	ok, _ = cl.AllowChat("p1")
	assert.True(t, ok)
}
