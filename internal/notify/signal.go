// Package notify provides a synchronous broadcast primitive with a terminal
// closed state.
//
// A Signal delivers payloads to its observers in registration order. Once
// closed it keeps the closing payload and hands it to anyone who registers
// later, so late observers of a finished event never miss it:
//
//	done := notify.New[bool]()
//	done.Close(true)
//	done.Observe(func(finished bool) { ... }) // called immediately with true
//
// Signals are single-threaded. Observers may register, remove or send on the
// same signal while being notified; changes take effect for the next delivery.
package notify

type observer[T any] struct {
	key string
	fn  func(T)
}

type Signal[T any] struct {
	observers []observer[T]
	closed    bool
	payload   T
}

func New[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Observe registers an anonymous observer. It cannot be removed.
func (s *Signal[T]) Observe(fn func(T)) {
	if s.closed {
		fn(s.payload)
		return
	}
	s.observers = append(s.observers, observer[T]{fn: fn})
}

// ObserveKey registers fn under key, replacing any observer already using it
// without calling the old one.
func (s *Signal[T]) ObserveKey(key string, fn func(T)) {
	if s.closed {
		fn(s.payload)
		return
	}
	for i := range s.observers {
		if s.observers[i].key == key && key != "" {
			s.observers[i].fn = fn
			return
		}
	}
	s.observers = append(s.observers, observer[T]{key: key, fn: fn})
}

// Remove drops the observer registered under key, if any.
func (s *Signal[T]) Remove(key string) {
	if key == "" {
		return
	}
	for i := range s.observers {
		if s.observers[i].key == key {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// Send delivers p to every current observer. It does nothing once closed.
func (s *Signal[T]) Send(p T) {
	if s.closed {
		return
	}
	s.deliver(p)
}

// Close delivers p like Send, then freezes it for observers that register
// later. Further Send and Close calls are ignored.
func (s *Signal[T]) Close(p T) {
	if s.closed {
		return
	}
	s.closed = true
	s.payload = p
	observers := s.observers
	s.observers = nil
	for _, o := range observers {
		o.fn(p)
	}
}

// Closed returns the frozen payload and whether the signal has closed.
func (s *Signal[T]) Closed() (T, bool) {
	return s.payload, s.closed
}

func (s *Signal[T]) Len() int {
	return len(s.observers)
}

func (s *Signal[T]) deliver(p T) {
	snapshot := make([]observer[T], len(s.observers))
	copy(snapshot, s.observers)
	for _, o := range snapshot {
		o.fn(p)
	}
}
