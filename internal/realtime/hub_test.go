package realtime

import (
	"testing"
	"time"
)

func TestHubFanout(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe(1, 10)
	defer cancel1()
	ch2, cancel2 := hub.Subscribe(1, 11)
	defer cancel2()
	other, cancelOther := hub.Subscribe(2, 20)
	defer cancelOther()

	event := Event{Table: "posts", Action: "insert", FamilyID: 1, RowID: 5, ActorProfileID: 10}
	hub.Publish(event)

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case got := <-ch:
			if got != event {
				t.Errorf("received %+v, want %+v", got, event)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}

	select {
	case got := <-other:
		t.Errorf("family 2 subscriber received family 1 event: %+v", got)
	default:
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe(1, 10)
	if got := hub.SubscriberCount(1); got != 1 {
		t.Fatalf("SubscriberCount() = %d, want 1", got)
	}

	cancel()
	if got := hub.SubscriberCount(1); got != 0 {
		t.Errorf("SubscriberCount() after cancel = %d, want 0", got)
	}

	// Publishing to an empty room is a no-op
	hub.Publish(Event{Table: "posts", Action: "insert", FamilyID: 1})
}

func TestHubDropsWhenSubscriberStalls(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(1, 10)
	defer cancel()

	// Overfill the buffer; Publish must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(Event{Table: "messages", Action: "insert", FamilyID: 1, RowID: int64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a stalled subscriber")
	}

	// The buffered prefix is still delivered in order
	first := <-ch
	if first.RowID != 0 {
		t.Errorf("first buffered event RowID = %d, want 0", first.RowID)
	}
}
