package core

// EventKind is the closed set of events an Observer may be notified of,
// per the spec's "polymorphic observer" design note.
type EventKind uint8

const (
	EventNewVariable EventKind = iota
	EventAssign
	EventUnassign
	EventWatch
	EventUnwatch
	EventNewClause
	EventDeleteClause
	EventConflict
	EventDone
)

// Event is a read-only snapshot handed to an Observer. Not every field is
// meaningful for every Kind; see the Kind-specific comments below.
type Event struct {
	Kind EventKind

	Var     int          // EventNewVariable
	Literal Literal       // EventAssign, EventUnassign
	Level   int           // EventAssign
	Clause  ClauseHandle  // EventWatch, EventUnwatch, EventNewClause, EventDeleteClause, EventConflict
	Status  Status        // EventDone
}

// Observer receives solver events. It must never mutate solver state; the
// solver only ever hands it plain values. With a nil Observer, notify
// returns without making a call; the Event value is still built at each
// call site.
type Observer interface {
	Notify(Event)
}

func (s *Solver) notify(e Event) {
	if s.observer != nil {
		s.observer.Notify(e)
	}
}
