package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightdoor/realty-ai-platform/internal/leads"
)

func newTestCache(t *testing.T) (*HistoryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewHistoryCache(client, time.Hour), mr
}

func TestHistoryCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	turns := []leads.Turn{
		{Sender: leads.SenderUser, Message: "hi", Timestamp: time.Now().UTC().Truncate(time.Second)},
		{Sender: leads.SenderBot, Message: "hello!", Timestamp: time.Now().UTC().Truncate(time.Second)},
	}

	require.NoError(t, cache.Save(ctx, "lead-1", turns))

	got, err := cache.Load(ctx, "lead-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, leads.SenderUser, got[0].Sender)
	assert.Equal(t, "hello!", got[1].Message)
}

func TestHistoryCache_MissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t)

	got, err := cache.Load(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHistoryCache_SetsTTL(t *testing.T) {
	cache, mr := newTestCache(t)

	require.NoError(t, cache.Save(context.Background(), "lead-1", []leads.Turn{{Sender: leads.SenderUser, Message: "hi"}}))
	assert.Greater(t, mr.TTL(historyKey("lead-1")), time.Duration(0))

	mr.FastForward(2 * time.Hour)
	got, err := cache.Load(context.Background(), "lead-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHistoryCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "lead-1", []leads.Turn{{Sender: leads.SenderUser, Message: "hi"}}))
	require.NoError(t, cache.Invalidate(ctx, "lead-1"))

	got, err := cache.Load(ctx, "lead-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHistoryCache_NilClientIsInert(t *testing.T) {
	cache := NewHistoryCache(nil, 0)
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "lead-1", []leads.Turn{{Sender: leads.SenderUser, Message: "hi"}}))
	got, err := cache.Load(ctx, "lead-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
