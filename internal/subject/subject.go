// Package subject provides the default in-process implementation of the
// observer-multiplexing publish/subscribe sink spec.md §1 treats as an
// external collaborator.
package subject

import (
	"sync"

	"github.com/prometheus-community/scrapeinput/internal/scrapeevent"
)

// Subject fans out published events to every currently subscribed
// observer. Safe for concurrent Publish/Subscribe/Close from multiple
// scrape tasks (spec.md §5: "the subject (external) is expected to be
// safe for concurrent publication").
type Subject struct {
	mu        sync.RWMutex
	observers map[int]func(scrapeevent.Event)
	nextID    int
	closed    bool
}

// New returns an empty Subject.
func New() *Subject {
	return &Subject{observers: make(map[int]func(scrapeevent.Event))}
}

// Publish delivers ev to every currently subscribed observer. A no-op
// after Close.
func (s *Subject) Publish(ev scrapeevent.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	for _, observe := range s.observers {
		observe(ev)
	}
}

// Subscribe registers observer and returns a cancel function that removes
// it. Calling cancel more than once is a no-op.
func (s *Subject) Subscribe(observer func(scrapeevent.Event)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = observer
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// Close removes every observer and marks the subject inert. Idempotent,
// per spec.md §4.6's "shutdown is idempotent" requirement.
func (s *Subject) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.observers = make(map[int]func(scrapeevent.Event))
}

var _ scrapeevent.Subject = (*Subject)(nil)
