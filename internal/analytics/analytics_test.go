package analytics

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRecorder(t *testing.T, capacity int64) *Recorder {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRecorder(rdb, capacity, zap.NewNop())
}

func TestRecord_NewestFirst(t *testing.T) {
	r := newTestRecorder(t, 100)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := r.Record(ctx, Event{Type: "pageview", Path: fmt.Sprintf("/recetas/%d", i)})
		require.NoError(t, err)
	}

	events, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "/recetas/2", events[0].Path)
	assert.Equal(t, "/recetas/0", events[2].Path)
}

func TestRecord_TrimsToCapacity(t *testing.T) {
	r := newTestRecorder(t, 5)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		err := r.Record(ctx, Event{Type: "pageview", Path: fmt.Sprintf("/p/%d", i)})
		require.NoError(t, err)
	}

	events, err := r.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, "/p/7", events[0].Path)
	assert.Equal(t, "/p/3", events[4].Path)
}

func TestRecord_StampsMissingTimestamp(t *testing.T) {
	r := newTestRecorder(t, 10)
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, Event{Type: "search"}))

	events, err := r.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestRecent_SkipsMalformedEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	r := NewRecorder(rdb, 10, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, Event{Type: "pageview", Path: "/foro"}))
	_, err := rdb.LPush(ctx, eventsKey, "{not json").Result()
	require.NoError(t, err)

	events, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "/foro", events[0].Path)
}
