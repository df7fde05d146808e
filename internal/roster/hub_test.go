package roster

import (
	"testing"
	"time"

	"github.com/lancer-lens/booking-api/internal/models"
)

func snapshotOf(userIDs ...string) []models.Booking {
	var out []models.Booking
	for _, id := range userIDs {
		out = append(out, models.Booking{UserID: id})
	}
	return out
}

func receive(t *testing.T, ch <-chan []models.Booking) []models.Booking {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestSubscribeReceivesCurrentSnapshot(t *testing.T) {
	h := New()
	h.Publish(snapshotOf("alice", "bob"))

	ch, cancel := h.Subscribe()
	defer cancel()

	snap := receive(t, ch)
	if len(snap) != 2 {
		t.Fatalf("expected the retained snapshot on subscribe, got %d entries", len(snap))
	}
}

func TestPublishReplacesUnconsumedSnapshot(t *testing.T) {
	h := New()
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(snapshotOf("stale"))
	h.Publish(snapshotOf("fresh-1", "fresh-2"))

	snap := receive(t, ch)
	if len(snap) != 2 || snap[0].UserID != "fresh-1" {
		t.Fatalf("expected only the newest snapshot, got %+v", snap)
	}

	select {
	case extra := <-ch:
		if extra != nil {
			t.Fatalf("stale snapshot was queued instead of replaced: %+v", extra)
		}
	default:
	}
}

func TestFanOutToMultipleSubscribers(t *testing.T) {
	// An admin delete on one client must reach every other connected
	// client without them taking any action of their own.
	h := New()
	ch1, cancel1 := h.Subscribe()
	defer cancel1()
	ch2, cancel2 := h.Subscribe()
	defer cancel2()

	h.Publish(snapshotOf("a", "b", "c"))
	receive(t, ch1)
	receive(t, ch2)

	// Record "b" deleted; both clients get the shrunken roster.
	h.Publish(snapshotOf("a", "c"))
	for _, ch := range []<-chan []models.Booking{ch1, ch2} {
		snap := receive(t, ch)
		if len(snap) != 2 {
			t.Fatalf("expected 2 entries after delete, got %d", len(snap))
		}
		for _, b := range snap {
			if b.UserID == "b" {
				t.Error("deleted record still present in published snapshot")
			}
		}
	}
}

func TestCancelIsIdempotentAndDetaches(t *testing.T) {
	h := New()
	_, cancel := h.Subscribe()

	cancel()
	cancel() // must be safe to call again

	if n := h.Subscribers(); n != 0 {
		t.Fatalf("expected 0 subscribers after cancel, got %d", n)
	}

	// A publish after cancel must not panic or deliver anywhere.
	h.Publish(snapshotOf("x"))
}

func TestCancelledSubscriberStopsReceiving(t *testing.T) {
	h := New()
	ch, cancel := h.Subscribe()
	cancel()

	h.Publish(snapshotOf("x"))
	if snap, ok := <-ch; ok {
		t.Fatalf("expected closed channel after cancel, got %+v", snap)
	}
}
