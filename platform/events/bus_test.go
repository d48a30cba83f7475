package events

import (
	"context"
	"testing"
	"time"
)

type quoteCreatedStub struct {
	BaseEvent
}

func (quoteCreatedStub) EventName() string { return "quote.created" }

func TestInMemoryBusDeliversToSubscribedHandlers(t *testing.T) {
	bus := NewInMemoryBus(nil)

	received := make(chan string, 1)
	bus.Subscribe("quote.created", HandlerFunc(func(ctx context.Context, event Event) error {
		received <- event.EventName()
		return nil
	}))

	bus.Publish(context.Background(), quoteCreatedStub{BaseEvent: NewBaseEvent()})

	select {
	case name := <-received:
		if name != "quote.created" {
			t.Fatalf("unexpected event name %q", name)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never received the event")
	}
}

func TestInMemoryBusIgnoresUnrelatedEventNames(t *testing.T) {
	bus := NewInMemoryBus(nil)

	received := make(chan string, 1)
	bus.Subscribe("quote.status_changed", HandlerFunc(func(ctx context.Context, event Event) error {
		received <- event.EventName()
		return nil
	}))

	bus.Publish(context.Background(), quoteCreatedStub{BaseEvent: NewBaseEvent()})

	select {
	case name := <-received:
		t.Fatalf("handler for another event received %q", name)
	case <-time.After(50 * time.Millisecond):
	}
}
