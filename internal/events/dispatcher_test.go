package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatcher_PublishReachesAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var got []int64
	d.Subscribe(EventMessageQueued, func(ctx context.Context, e Event) error {
		got = append(got, e.UserID)
		return nil
	})
	d.Subscribe(EventMessageQueued, func(ctx context.Context, e Event) error {
		got = append(got, e.UserID*10)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventMessageQueued, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 70}, got)
}

func TestDispatcher_HandlerFailureDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	called := false
	d.Subscribe(EventAnswerSent, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventAnswerSent, func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventAnswerSent})
	assert.True(t, called)
}

func TestDispatcher_NoSubscribersIsFine(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventQueueCleared}))
}
