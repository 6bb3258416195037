package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesAllHandlersDespiteErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var first, second bool
	dispatcher.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		first = true
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		second = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated})
	require.NoError(t, err)
	assert.True(t, first)
	assert.True(t, second)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated})
	assert.NoError(t, err)
}
