package broadcast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"halfearth/internal/broadcast"
)

func TestSubscribeReceivesPublishedMessages(t *testing.T) {
	bus := broadcast.New[int]()
	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	bus.Publish(7)

	select {
	case v := <-ch:
		assert.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published message")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := broadcast.New[string]()
	ch, unsubscribe := bus.Subscribe()
	require.Equal(t, 1, bus.SubscriberCount())

	unsubscribe()
	require.Equal(t, 0, bus.SubscriberCount())

	_, ok := <-ch
	assert.False(t, ok)
}

func TestPublishDropsForSlowSubscriberInsteadOfBlocking(t *testing.T) {
	bus := broadcast.New[int]()
	_, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}
