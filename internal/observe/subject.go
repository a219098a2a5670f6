// Package observe provides the broadcast primitive the core publishes its
// state through: a Subject keeps the latest value and replays it to every
// new subscriber immediately, then forwards subsequent values.
package observe

import "sync"

// SUBSCRIBER_BUFFER bounds how far a subscriber may lag before old values
// are conflated away in favor of newer ones.
const SUBSCRIBER_BUFFER = 16

// Subject is a broadcast channel with replay-of-latest semantics. The zero
// value is not usable; construct with NewSubject.
type Subject[T any] struct {
	mu     sync.Mutex
	latest T
	primed bool
	subs   map[int]chan T
	nextID int
}

func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{subs: make(map[int]chan T)}
}

// Publish records v as the latest value and delivers it to every current
// subscriber. A subscriber whose buffer is full loses its oldest pending
// value, never the newest.
func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = v
	s.primed = true
	for _, ch := range s.subs {
		deliver(ch, v)
	}
}

func deliver[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		// Buffer full: conflate by dropping the oldest pending value.
		select {
		case <-ch:
		default:
		}
	}
}

// Subscribe registers a new subscriber. If a value has ever been published
// it is waiting on the returned channel before Subscribe returns. The
// cancel func unregisters the subscriber and closes the channel; calling it
// more than once is safe.
func (s *Subject[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, SUBSCRIBER_BUFFER)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	if s.primed {
		ch <- s.latest
	}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
	return ch, cancel
}

// Latest returns the most recently published value, if any.
func (s *Subject[T]) Latest() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.primed
}

// Subscribers reports how many subscribers are currently registered.
func (s *Subject[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
