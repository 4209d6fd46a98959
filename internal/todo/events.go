package todo

// EventKind says what changed in the store.
type EventKind string

const (
	EventAdded       EventKind = "added"
	EventUpdated     EventKind = "updated"
	EventToggled     EventKind = "toggled"
	EventDeleted     EventKind = "deleted"
	EventCleared     EventKind = "cleared"
	EventViewChanged EventKind = "view_changed"
)

// Event is delivered to listeners after a change has been applied.
type Event struct {
	Kind EventKind
	// TaskIDs lists the affected tasks. Empty for view changes.
	TaskIDs []string
	// PersistErr is the save failure for this mutation, if any.
	PersistErr error
}

// Listener receives store events. It is called without the store lock held,
// so it may read from the store.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, fn: l})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(e Event) {
	s.subMu.Lock()
	subs := append([]subscription(nil), s.subs...)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(e)
	}
}
