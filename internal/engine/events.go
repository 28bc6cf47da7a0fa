package engine

// Event is a notable occurrence in the world, positioned for presentation.
type Event struct {
	Round  uint64  `json:"round" db:"round"`
	Kind   int     `json:"kind" db:"kind"` // Index into the universe event table
	Name   string  `json:"name" db:"name"`
	X      float64 `json:"x" db:"x"`
	Y      float64 `json:"y" db:"y"`
	Detail string  `json:"detail" db:"detail"`
}

// EventSink consumes events as they fire.
type EventSink interface {
	RecordEvent(Event)
}

// EventsSince returns the retained events fired after the given round.
func (s *Simulation) EventsSince(round uint64) []Event {
	i := len(s.Events)
	for i > 0 && s.Events[i-1].Round > round {
		i--
	}
	return append([]Event(nil), s.Events[i:]...)
}
