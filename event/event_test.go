package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingSink struct{ err error }

func (f failingSink) Publish(context.Context, []Event) error { return f.err }

func TestNewAssignsDistinctIDs(t *testing.T) {
	now := time.Unix(1700000000, 0)
	a := New(AskCreated, 1, now, nil)
	b := New(AskCreated, 1, now, nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, AskCreated, a.Kind)
	assert.Equal(t, uint64(1), a.TokenID)
}

func TestFilter(t *testing.T) {
	now := time.Now()
	events := []Event{
		New(BidCreated, 0, now, nil),
		New(BidFinalized, 0, now, nil),
		New(BidShareUpdated, 0, now, nil),
		New(BidCreated, 1, now, nil),
	}
	got := Filter(events, BidCreated)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[1].TokenID)
	assert.Empty(t, Filter(events, AskRemoved))
}

func TestRecorderSlidingWindow(t *testing.T) {
	r := NewRecorder(3)
	ctx := context.Background()
	now := time.Now()

	for i := uint64(0); i < 1000; i++ {
		require.NoError(t, r.Publish(ctx, []Event{New(BidCreated, i, now, nil)}))
	}

	got := r.Events()
	require.Len(t, got, 3)
	assert.Equal(t, []uint64{997, 998, 999}, []uint64{got[0].TokenID, got[1].TokenID, got[2].TokenID})
	assert.Less(t, cap(r.events), 100, "backing array stays near the limit")

	since, next := r.Since(998)
	require.Len(t, since, 2)
	assert.Equal(t, uint64(998), since[0].TokenID)
	assert.Equal(t, 1000, next)
}

func TestRecorderLimit(t *testing.T) {
	r := NewRecorder(2)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, r.Publish(ctx, []Event{New(AskCreated, 1, now, nil)}))
	require.NoError(t, r.Publish(ctx, []Event{New(AskCreated, 2, now, nil), New(AskCreated, 3, now, nil)}))

	got := r.Events()
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[0].TokenID)
	assert.Equal(t, uint64(3), got[1].TokenID)

	since, next := r.Since(2)
	require.Len(t, since, 1)
	assert.Equal(t, uint64(3), since[0].TokenID)
	assert.Equal(t, 3, next)

	since, next = r.Since(0)
	assert.Len(t, since, 2, "dropped positions start from the oldest retained")
	assert.Equal(t, 3, next)

	since, next = r.Since(10)
	assert.Empty(t, since)
	assert.Equal(t, 3, next)

	r.Reset()
	assert.Empty(t, r.Events())
	require.NoError(t, r.Publish(ctx, []Event{New(AskCreated, 4, now, nil)}))
	since, next = r.Since(3)
	require.Len(t, since, 1)
	assert.Equal(t, uint64(4), since[0].TokenID)
	assert.Equal(t, 4, next)
}

func TestMultiJoinsErrors(t *testing.T) {
	rec := NewRecorder(0)
	boom := errors.New("boom")
	sink := Multi(rec, NewLogSink(zap.NewNop()), failingSink{err: boom}, Discard)

	err := sink.Publish(context.Background(), []Event{New(Transfer, 9, time.Now(), nil)})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, rec.Events(), 1)
}
