package domain

import (
	"fmt"
	"math"
)

// WindDownSession is the mutable state behind one wind-down screen mount.
// It holds no timers; callers deliver Tick and PhaseTick once per second.
type WindDownSession struct {
	active    ActivityKey
	remaining int
	running   bool
	completed map[ActivityKey]bool
	breathing BreathingCycle
}

// NewWindDownSession returns a fresh session on the breathing activity with
// nothing completed.
func NewWindDownSession() *WindDownSession {
	first := activityCatalog[0]
	return &WindDownSession{
		active:    first.Key,
		remaining: first.DurationSeconds,
		completed: make(map[ActivityKey]bool, len(activityCatalog)),
		breathing: NewBreathingCycle(),
	}
}

// ActiveKey returns the key of the selected activity.
func (s *WindDownSession) ActiveKey() ActivityKey { return s.active }

// Active returns the catalog entry of the selected activity.
func (s *WindDownSession) Active() Activity {
	return activityCatalog[activityIndex(s.active)]
}

func (s *WindDownSession) Remaining() int { return s.remaining }
func (s *WindDownSession) Running() bool  { return s.running }

// Breathing returns the phase state. ok is false when breathing is not the
// active activity, in which case the phase state carries no meaning.
func (s *WindDownSession) Breathing() (cycle BreathingCycle, ok bool) {
	return s.breathing, s.active == ActivityBreathing
}

// SwitchActivity selects key, stops the countdown and rewinds it to the
// activity's full duration. Phase state is reinitialized. An out-of-registry
// key leaves the session untouched.
func (s *WindDownSession) SwitchActivity(key ActivityKey) error {
	a, err := LookupActivity(key)
	if err != nil {
		return fmt.Errorf("switching activity: %w", err)
	}
	s.active = a.Key
	s.running = false
	s.remaining = a.DurationSeconds
	s.breathing = NewBreathingCycle()
	return nil
}

// ToggleRun starts or pauses the countdown. Starting a finished countdown
// is refused with ErrSessionAlreadyComplete and changes nothing.
func (s *WindDownSession) ToggleRun() error {
	if !s.running && s.remaining == 0 {
		return ErrSessionAlreadyComplete
	}
	s.running = !s.running
	return nil
}

// Reset stops the countdown and rewinds it. Completed activities are kept
// for the lifetime of the session.
func (s *WindDownSession) Reset() {
	s.running = false
	s.remaining = s.Active().DurationSeconds
}

// Tick advances the countdown by one second. It returns true when this tick
// finished the active activity. Outside Running it does nothing.
func (s *WindDownSession) Tick() bool {
	if !s.running || s.remaining <= 0 {
		return false
	}
	s.remaining--
	if s.remaining > 0 {
		return false
	}
	s.running = false
	s.completed[s.active] = true
	return true
}

// PhaseTick advances the breathing ring by one second. It only has effect
// while running on the breathing activity and returns true when the phase
// changed.
func (s *WindDownSession) PhaseTick() bool {
	if !s.running || s.active != ActivityBreathing {
		return false
	}
	before := s.breathing.Phase
	s.breathing.Advance()
	return s.breathing.Phase != before
}

// ProgressPercent is the elapsed share of the active countdown, 0..100.
func (s *WindDownSession) ProgressPercent() int {
	return progressPercent(s.Active().DurationSeconds, s.remaining)
}

func progressPercent(total, remaining int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(total-remaining) / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// IsCompleted reports whether key finished at least once in this session.
func (s *WindDownSession) IsCompleted(key ActivityKey) bool {
	return s.completed[key]
}

// Completed returns the finished activities in registry order.
func (s *WindDownSession) Completed() []ActivityKey {
	out := make([]ActivityKey, 0, len(s.completed))
	for _, a := range activityCatalog {
		if s.completed[a.Key] {
			out = append(out, a.Key)
		}
	}
	return out
}

func (s *WindDownSession) CompletedCount() int { return len(s.completed) }

// IsFullyComplete reports whether every registry activity has finished.
func (s *WindDownSession) IsFullyComplete() bool {
	return len(s.completed) == len(activityCatalog)
}

// Status derives the run state of the active activity.
func (s *WindDownSession) Status() RunStatus {
	switch {
	case s.running:
		return RunRunning
	case s.remaining == 0:
		return RunCompleted
	case s.remaining == s.Active().DurationSeconds:
		return RunIdle
	default:
		return RunPaused
	}
}

// Clock returns the remaining time formatted as M:SS.
func (s *WindDownSession) Clock() string {
	return FormatClock(s.remaining)
}

// FormatClock renders seconds as unpadded minutes and two-digit seconds,
// e.g. 4:00 or 0:09.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
