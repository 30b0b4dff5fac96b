package domain

// PhaseSeconds is the length of every step of the box-breathing ring.
const PhaseSeconds = 4

var phaseRing = [...]BreathPhase{PhaseInhale, PhaseHold1, PhaseExhale, PhaseHold2}

// BreathingCycle is the free-running 4x4s breathing sub-rhythm.
// SecondsRemaining always stays within [1, PhaseSeconds].
type BreathingCycle struct {
	Phase            BreathPhase
	SecondsRemaining int
}

// NewBreathingCycle returns a cycle positioned at {inhale, 4}.
func NewBreathingCycle() BreathingCycle {
	return BreathingCycle{Phase: PhaseInhale, SecondsRemaining: PhaseSeconds}
}

// Advance moves the cycle forward by one second. When the current step
// runs out the next phase of the ring starts at PhaseSeconds.
func (c *BreathingCycle) Advance() {
	if c.SecondsRemaining > 1 {
		c.SecondsRemaining--
		return
	}
	c.Phase = NextPhase(c.Phase)
	c.SecondsRemaining = PhaseSeconds
}

// NextPhase returns the successor of p on the ring. Unknown phases restart
// at inhale.
func NextPhase(p BreathPhase) BreathPhase {
	for i, ph := range phaseRing {
		if ph == p {
			return phaseRing[(i+1)%len(phaseRing)]
		}
	}
	return PhaseInhale
}

// PhaseLabel is the instruction shown inside the breathing ring.
func PhaseLabel(p BreathPhase) string {
	switch p {
	case PhaseInhale:
		return "Breathe In"
	case PhaseExhale:
		return "Breathe Out"
	default:
		return "Hold"
	}
}

// BreathingScale is the visual scale of the breathing ring.
func BreathingScale(p BreathPhase, running bool) float64 {
	if !running {
		return 1.0
	}
	switch p {
	case PhaseInhale:
		return 1.1
	case PhaseExhale:
		return 0.9
	default:
		return 1.0
	}
}
