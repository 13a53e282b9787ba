package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribedHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	ctx := context.Background()

	var calls []EventType
	d.Subscribe(EventTaskCreated, func(_ context.Context, e Event) error {
		calls = append(calls, e.Type)
		return nil
	})
	d.Subscribe(EventTaskCreated, func(_ context.Context, e Event) error {
		calls = append(calls, e.Type)
		return nil
	})
	d.Subscribe(EventMessagePosted, func(_ context.Context, e Event) error {
		calls = append(calls, e.Type)
		return nil
	})

	require.NoError(t, d.Publish(ctx, Event{Type: EventTaskCreated}))
	assert.Equal(t, []EventType{EventTaskCreated, EventTaskCreated}, calls)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventSessionStarted}))
}

func TestHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var secondCalled bool
	d.Subscribe(EventEmployeeAdded, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventEmployeeAdded, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventEmployeeAdded}))
	assert.True(t, secondCalled)
}
