package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetThenGet(t *testing.T) {
	ctx := context.Background()
	c := NewLocal()

	c.Set(ctx, "k", "v", time.Minute)

	val, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestGetMissing(t *testing.T) {
	c := NewLocal()

	_, ok := c.Get(context.Background(), "absent")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewLocal()

	c.Set(ctx, "k", "v", 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok, "expired entry must not be returned")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c := NewLocal()

	c.Set(ctx, "k", "v", time.Minute)
	c.Delete(ctx, "k")

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestNonPositiveTTLIgnored(t *testing.T) {
	ctx := context.Background()
	c := NewLocal()

	c.Set(ctx, "k", "v", 0)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewLocal()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	c.SetJSON(ctx, "k", payload{Name: "ahri", Count: 3}, time.Minute)

	var got payload
	require.True(t, c.GetJSON(ctx, "k", &got))
	assert.Equal(t, payload{Name: "ahri", Count: 3}, got)
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewLocal()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c.Set(ctx, "shared", "v", time.Minute)
				c.Get(ctx, "shared")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	val, ok := c.Get(ctx, "shared")
	require.True(t, ok)
	assert.Equal(t, "v", val)
}
