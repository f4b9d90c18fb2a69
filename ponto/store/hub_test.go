package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frigotec.com/frigotec/ponto/model"
)

func TestHubDeliversToUserSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe("u1")
	defer cancel1()
	ch2, cancel2 := hub.Subscribe("u1")
	defer cancel2()
	other, cancelOther := hub.Subscribe("u2")
	defer cancelOther()

	ev := model.ClockEvent{UserID: "u1", Type: model.EventEntry, Timestamp: time.Now()}
	hub.Publish(ev)

	assert.Equal(t, ev, <-ch1)
	assert.Equal(t, ev, <-ch2)

	select {
	case got := <-other:
		t.Fatalf("u2 subscriber received %v", got)
	default:
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("u1")
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic or deliver.
	hub.Publish(model.ClockEvent{UserID: "u1", Type: model.EventExit})

	// Double cancel is harmless.
	cancel()
}

func TestHubSkipsFullSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("u1")
	defer cancel()

	// Fill the buffer without reading; further publishes are dropped
	// for this subscriber instead of blocking the write path.
	for i := 0; i < 20; i++ {
		hub.Publish(model.ClockEvent{UserID: "u1", Type: model.EventEntry})
	}

	drained := 0
	for {
		select {
		case <-ch:
			drained++
			continue
		default:
		}
		break
	}
	assert.Equal(t, 8, drained)
}
