package alert

import (
	"context"
	"testing"
	"time"

	"campusbank.org/internal/bank"
)

func TestFanOut(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := s.Subscribe(ctx)
	second := s.Subscribe(ctx)

	sent := bank.Alert{Account: "CB-2024-001", Kind: bank.KindDeposit, Amount: 100_00}
	s.Publish(sent)

	for _, ch := range []<-chan bank.Alert{first, second} {
		select {
		case got := <-ch:
			if got.Account != sent.Account || got.Kind != sent.Kind {
				t.Fatalf("got %+v, want %+v", got, sent)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the alert")
		}
	}
}

func TestSubscriberChannelClosesOnCancel(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Subscribe(ctx)
	cancel()

	select {
	case _, open := <-ch:
		if open {
			t.Fatal("expected closed channel after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	// Publishing after the subscriber left must not block or panic.
	s.Publish(bank.Alert{Account: "CB-2024-001"})
}

// A subscriber that never drains its buffer must not block Publish.
func TestSlowSubscriberDropped(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			s.Publish(bank.Alert{Account: "CB-2024-001", Amount: bank.Money(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}
