package browser

// subscribers is an ordered callback list. Callbacks run synchronously in
// subscription order on the caller's goroutine.
type subscribers[T any] struct {
	seq  int
	subs []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// add registers fn and returns a function that removes it again.
func (s *subscribers[T]) add(fn func(T)) func() {
	s.seq++
	id := s.seq
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *subscribers[T]) notify(v T) {
	// Copy so a callback may unsubscribe itself.
	subs := append([]subscriber[T](nil), s.subs...)
	for _, sub := range subs {
		sub.fn(v)
	}
}
