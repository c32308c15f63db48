package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	client, err := New(ctx, mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	var missing []int
	found, err := GetJSON(ctx, client, "roles:person:1", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, client, "roles:person:1", []int{1, 103}, time.Minute))
	var got []int
	found, err = GetJSON(ctx, client, "roles:person:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{1, 103}, got)

	mr.FastForward(2 * time.Minute)
	found, err = GetJSON(ctx, client, "roles:person:1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err := New(context.Background(), addr)
	assert.Error(t, err)
}

var _ redis.Cmdable = (*redis.Client)(nil)
