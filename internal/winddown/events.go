package winddown

import (
	"time"

	"github.com/alexanderramin/restwell/internal/domain"
)

// EventType defines the kind of Engine event.
type EventType string

const (
	EventTick        EventType = "tick"
	EventPhase       EventType = "phase"
	EventStateChange EventType = "state_change"
	EventCompleted   EventType = "completed"
)

// Event is an Engine update for observers. Snapshot is taken at the moment
// the event was emitted.
type Event struct {
	Type     EventType
	Activity domain.ActivityKey
	Snapshot Snapshot
	At       time.Time
}

// Snapshot is the read model rendered by progress reporters.
type Snapshot struct {
	Activity        domain.Activity
	Remaining       int
	Clock           string
	Running         bool
	Status          domain.RunStatus
	Completed       []domain.ActivityKey
	ProgressPercent int
	FullyComplete   bool

	// Breathing is true when the breathing activity is selected. The phase
	// fields are only meaningful then.
	Breathing    bool
	Phase        domain.BreathPhase
	PhaseSeconds int
	PhaseLabel   string
	Scale        float64
}

// IsCompleted reports whether key is in the completed set.
func (s Snapshot) IsCompleted(key domain.ActivityKey) bool {
	for _, k := range s.Completed {
		if k == key {
			return true
		}
	}
	return false
}
