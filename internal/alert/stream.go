// Package alert fans transaction-alert signals out to subscribers
// (SSE clients, the teller session). Delivery is best-effort: slow
// subscribers are skipped rather than blocking the ledger operation
// that produced the signal.
package alert

import (
	"context"
	"sync"

	"campusbank.org/internal/bank"
)

// Stream implements bank.AlertSink with a subscriber fan-out.
type Stream struct {
	mu   sync.RWMutex
	subs map[int]chan bank.Alert
	next int
}

func New() *Stream {
	return &Stream{subs: make(map[int]chan bank.Alert)}
}

// Subscribe registers a subscriber and returns a channel which will
// receive alerts. The channel is closed when the context ends.
func (s *Stream) Subscribe(ctx context.Context) <-chan bank.Alert {
	ch := make(chan bank.Alert, 16)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// Publish fans the alert out to all subscribers without blocking.
func (s *Stream) Publish(a bank.Alert) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- a:
		default:
			// Drop when the subscriber is slow.
		}
	}
}
