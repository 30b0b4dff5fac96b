package domain

type ActivityKey string

const (
	ActivityBreathing  ActivityKey = "breathing"
	ActivityJournaling ActivityKey = "journaling"
	ActivityMeditation ActivityKey = "meditation"
)

// RunStatus is the per-activity-run state derived from a WindDownSession.
type RunStatus string

const (
	RunIdle      RunStatus = "idle"
	RunRunning   RunStatus = "running"
	RunPaused    RunStatus = "paused"
	RunCompleted RunStatus = "completed"
)

type BreathPhase string

const (
	PhaseInhale BreathPhase = "inhale"
	PhaseHold1  BreathPhase = "hold1"
	PhaseExhale BreathPhase = "exhale"
	PhaseHold2  BreathPhase = "hold2"
)

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// SleepQuality is the subjective 0..4 rating recorded in the diary.
type SleepQuality int

const (
	QualityPoor SleepQuality = iota
	QualityFair
	QualityGood
	QualityVeryGood
	QualityExcellent
)

var qualityLabels = [...]string{"Poor", "Fair", "Good", "Very Good", "Excellent"}

// Valid reports whether q is within the 0..4 scale.
func (q SleepQuality) Valid() bool {
	return q >= QualityPoor && q <= QualityExcellent
}

// Label returns the display label, or "Unknown" for out-of-range values.
func (q SleepQuality) Label() string {
	if !q.Valid() {
		return "Unknown"
	}
	return qualityLabels[q]
}
