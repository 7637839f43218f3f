package tuner

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Subscription delivers published states. C holds at most one pending
// State: a newer state replaces an unread one, and the publisher never
// blocks. C is not closed; receivers should also select on Done.
type Subscription struct {
	C <-chan State

	ch     chan State
	done   chan struct{}
	closed atomic.Bool
	once   sync.Once
	owner  *subscribers
}

// Done is closed when the subscription is closed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close stops delivery. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.closed.Store(true)
		s.owner.remove(s)
		close(s.done)
	})
}

func (s *Subscription) offer(st State) {
	if s.closed.Load() {
		return
	}
	select {
	case s.ch <- st:
		return
	default:
	}
	// Drop the stale value and retry once; a concurrent reader may have
	// taken it in between.
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- st:
	default:
	}
}

// subscribers is a copy-on-write list: publishers load it without locking,
// writers serialise on mu and swap in a new slice.
type subscribers struct {
	mu   sync.Mutex
	list atomic.Pointer[[]*Subscription]
}

func (s *subscribers) add() *Subscription {
	ch := make(chan State, 1)
	sub := &Subscription{C: ch, ch: ch, done: make(chan struct{}), owner: s}

	s.mu.Lock()
	defer s.mu.Unlock()

	var next []*Subscription
	if cur := s.list.Load(); cur != nil {
		next = slices.Clone(*cur)
	}
	next = append(next, sub)
	s.list.Store(&next)

	return sub
}

func (s *subscribers) remove(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.list.Load()
	if cur == nil {
		return
	}
	next := slices.DeleteFunc(slices.Clone(*cur), func(x *Subscription) bool {
		return x == sub
	})
	s.list.Store(&next)
}

func (s *subscribers) publish(st State) {
	cur := s.list.Load()
	if cur == nil {
		return
	}
	for _, sub := range *cur {
		sub.offer(st)
	}
}

func (s *subscribers) count() int {
	if cur := s.list.Load(); cur != nil {
		return len(*cur)
	}
	return 0
}
