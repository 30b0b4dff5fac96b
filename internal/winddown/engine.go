package winddown

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/restwell/internal/domain"
)

// ErrEngineClosed is returned by intents issued after Close.
var ErrEngineClosed = errors.New("wind-down engine closed")

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Transitions log at debug level,
// completions at info.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithInterval overrides the tick interval. One interval is one second of
// session time; tests and demos shrink it.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// Engine drives a WindDownSession from a Clock. It owns two repeating
// tasks: the countdown, armed while running, and the breathing phase timer,
// armed while running on breathing. Every transition disarms both before
// arming again, and callbacks carrying a stale generation are dropped.
type Engine struct {
	mu        sync.Mutex
	clock     Clock
	interval  time.Duration
	logger    *slog.Logger
	session   *domain.WindDownSession
	gen       uint64
	countdown Timer
	phase     Timer
	events    []chan Event
	closed    bool
}

// NewEngine returns an idle Engine on the breathing activity.
func NewEngine(clock Clock, opts ...Option) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	e := &Engine{
		clock:    clock,
		interval: time.Second,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		session:  domain.NewWindDownSession(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers an observer channel. Sends never block; a full
// channel misses events, so observers should render from the carried
// Snapshot rather than count events.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		close(ch)
		return ch
	}
	e.events = append(e.events, ch)
	return ch
}

// SwitchActivity selects key and rewinds it. Unknown keys change nothing.
func (e *Engine) SwitchActivity(key domain.ActivityKey) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	if err := e.session.SwitchActivity(key); err != nil {
		e.logger.Error("wind-down switch rejected", "activity", key, "error", err)
		return err
	}
	e.rearmLocked()
	e.logger.Debug("wind-down activity switched", "activity", key)
	e.emitLocked(EventStateChange)
	return nil
}

// ToggleRun starts or pauses the active activity.
func (e *Engine) ToggleRun() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	if err := e.session.ToggleRun(); err != nil {
		return err
	}
	e.rearmLocked()
	e.logger.Debug("wind-down run toggled",
		"activity", e.session.ActiveKey(),
		"running", e.session.Running(),
		"remaining", e.session.Remaining())
	e.emitLocked(EventStateChange)
	return nil
}

// Reset stops the countdown and rewinds the active activity.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	e.session.Reset()
	e.rearmLocked()
	e.logger.Debug("wind-down reset", "activity", e.session.ActiveKey())
	e.emitLocked(EventStateChange)
	return nil
}

// Snapshot returns the current read model.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Close disarms both timers and closes every subscriber channel. Further
// intents return ErrEngineClosed. Close is idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.disarmLocked()
	e.gen++
	events := e.events
	e.events = nil
	e.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// rearmLocked cancels both tasks and arms the ones the current state
// calls for under a fresh generation.
func (e *Engine) rearmLocked() {
	e.disarmLocked()
	e.gen++
	if !e.session.Running() {
		return
	}
	gen := e.gen
	e.countdown = e.clock.Every(e.interval, func() { e.onCountdown(gen) })
	if _, breathing := e.session.Breathing(); breathing {
		e.phase = e.clock.Every(e.interval, func() { e.onPhase(gen) })
	}
}

func (e *Engine) disarmLocked() {
	if e.countdown != nil {
		e.countdown.Stop()
		e.countdown = nil
	}
	if e.phase != nil {
		e.phase.Stop()
		e.phase = nil
	}
}

func (e *Engine) onCountdown(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || gen != e.gen {
		return
	}
	finished := e.session.Tick()
	e.emitLocked(EventTick)
	if !finished {
		return
	}
	e.rearmLocked()
	e.logger.Info("wind-down activity completed",
		"activity", e.session.ActiveKey(),
		"completed", len(e.session.Completed()),
		"fully_complete", e.session.IsFullyComplete())
	e.emitLocked(EventCompleted)
	e.emitLocked(EventStateChange)
}

func (e *Engine) onPhase(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || gen != e.gen {
		return
	}
	if e.session.PhaseTick() {
		e.emitLocked(EventPhase)
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	s := e.session
	cycle, breathing := s.Breathing()
	snap := Snapshot{
		Activity:        s.Active(),
		Remaining:       s.Remaining(),
		Clock:           s.Clock(),
		Running:         s.Running(),
		Status:          s.Status(),
		Completed:       s.Completed(),
		ProgressPercent: s.ProgressPercent(),
		FullyComplete:   s.IsFullyComplete(),
		Breathing:       breathing,
		Scale:           1.0,
	}
	if breathing {
		snap.Phase = cycle.Phase
		snap.PhaseSeconds = cycle.SecondsRemaining
		snap.PhaseLabel = domain.PhaseLabel(cycle.Phase)
		snap.Scale = domain.BreathingScale(cycle.Phase, s.Running())
	}
	return snap
}

func (e *Engine) emitLocked(t EventType) {
	if len(e.events) == 0 {
		return
	}
	ev := Event{
		Type:     t,
		Activity: e.session.ActiveKey(),
		Snapshot: e.snapshotLocked(),
		At:       e.clock.Now(),
	}
	for _, ch := range e.events {
		select {
		case ch <- ev:
		default:
		}
	}
}
