package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(NotificationTopic("u1"))
	defer cleanup()
	other, cleanupOther := hub.Subscribe(NotificationTopic("u2"))
	defer cleanupOther()

	hub.Publish(NotificationTopic("u1"), Event{Name: EventNotification, Data: "hello"})

	select {
	case ev := <-ch:
		assert.Equal(t, "notifications:u1", ev.Topic)
		assert.Equal(t, EventNotification, ev.Name)
		assert.Equal(t, "hello", ev.Data)
	default:
		t.Fatal("expected an event for u1")
	}

	select {
	case ev := <-other:
		t.Fatalf("unexpected event for u2: %+v", ev)
	default:
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe(AuthTopic("u1"))
	_, cleanup2 := hub.Subscribe(AuthTopic("u1"))
	require.Equal(t, 2, hub.SubscriberCount(AuthTopic("u1")))
	require.Equal(t, 2, hub.TotalSubscribers())

	cleanup()
	cleanup()
	assert.Equal(t, 1, hub.SubscriberCount(AuthTopic("u1")))

	cleanup2()
	assert.Equal(t, 0, hub.SubscriberCount(AuthTopic("u1")))
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestHub_PublishDoesNotBlockOnFullChannel(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("t")
	defer cleanup()

	for i := 0; i < 50; i++ {
		hub.Publish("t", Event{Name: "tick"})
	}
}

func TestHub_PublishToMany(t *testing.T) {
	hub := NewHub()
	a, cleanupA := hub.Subscribe("a")
	defer cleanupA()
	b, cleanupB := hub.Subscribe("b")
	defer cleanupB()

	hub.PublishToMany([]string{"a", "b"}, Event{Name: "x"})

	assert.Equal(t, "a", (<-a).Topic)
	assert.Equal(t, "b", (<-b).Topic)
}
