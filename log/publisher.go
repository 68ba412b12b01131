package log

import (
	"sync"
	"sync/atomic"
)

// Publisher is an [io.Writer] that keeps the newest log entry for each
// [Subscription].
//
// Handlers write one entry per call, so each Write replaces the entry held
// by every subscription. Readers that poll once per tick see only the newest
// entry and never block a writer. Safe for concurrent use.
//
// Create instances with [NewPublisher].
type Publisher struct {
	subscribers []*Subscription
	mu          sync.Mutex
	closed      bool
}

// NewPublisher creates an empty [Publisher].
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Write stores a copy of b as the newest entry of every subscription. Writes
// after [Publisher.Close] are dropped. Write always returns len(b), nil.
func (p *Publisher) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || len(p.subscribers) == 0 {
		return len(b), nil
	}

	entry := make([]byte, len(b))
	copy(entry, b)

	for _, sub := range p.subscribers {
		sub.latest.Store(&entry)
	}

	return len(b), nil
}

// Subscribe registers a new [Subscription]. It holds no entry until the next
// Write.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := &Subscription{}
	if !p.closed {
		p.subscribers = append(p.subscribers, sub)
	}

	return sub
}

// Close stops delivery to all subscriptions. Entries not yet read stay
// readable. Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.subscribers = nil

	return nil
}

// Subscription holds the newest entry written to a [Publisher].
type Subscription struct {
	latest atomic.Pointer[[]byte]
}

// Latest returns the newest entry written since the previous call, or
// ok=false if nothing new was written. Callers must not modify the returned
// slice.
func (s *Subscription) Latest() (entry []byte, ok bool) {
	p := s.latest.Swap(nil)
	if p == nil {
		return nil, false
	}

	return *p, true
}
