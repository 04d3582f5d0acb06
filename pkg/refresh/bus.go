// Package refresh implements the process-wide invalidation bus. Any
// transactional write publishes a payload-free signal; every aggregation that
// rendered a snapshot recomputes from scratch when signalled. Coarse on
// purpose: there is no incremental update path.
package refresh

import "sync"

// Handler is invoked synchronously on every publish.
type Handler func()

// Bus is an injectable publish/subscribe signal channel. It carries no
// payload and keeps no backlog: a subscriber registered after a publish does
// not see that publish. The zero value is not usable; call NewBus.
type Bus struct {
	mu   sync.Mutex
	next int
	subs []subscription
}

type subscription struct {
	id int
	fn Handler
}

// NewBus creates an empty bus. One instance per process in production;
// tests create isolated instances.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns an unsubscribe function. Handlers run
// in registration order. Unsubscribing is idempotent.
func (b *Bus) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish wakes every current subscriber synchronously, in registration
// order. Handlers registered or removed by a running handler take effect on
// the next publish.
func (b *Bus) Publish() {
	b.mu.Lock()
	snapshot := make([]subscription, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		s.fn()
	}
}

// Len reports the current subscriber count.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
