package winddown

import (
	"sort"
	"sync"
	"time"
)

// Timer is a repeating task armed on a Clock.
type Timer interface {
	// Stop cancels future firings. It does not wait for a callback that is
	// already running.
	Stop()
}

// Clock arms repeating tasks. Implementations call fn once per interval on
// their own goroutine until the returned Timer is stopped.
type Clock interface {
	Now() time.Time
	Every(interval time.Duration, fn func()) Timer
}

// SystemClock is the wall clock backed by time.Ticker.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Every(interval time.Duration, fn func()) Timer {
	t := &tickerTimer{stopCh: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.stopCh:
				return
			case <-ticker.C:
				// Stop may race with a pending tick; prefer stopping.
				select {
				case <-t.stopCh:
					return
				default:
				}
				fn()
			}
		}
	}()
	return t
}

type tickerTimer struct {
	once   sync.Once
	stopCh chan struct{}
}

func (t *tickerTimer) Stop() {
	t.once.Do(func() { close(t.stopCh) })
}

// ManualClock is a Clock driven by Advance. Callbacks run synchronously on
// the goroutine calling Advance, in due-time order.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

// NewManualClock returns a ManualClock positioned at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		interval = time.Second
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{
		clock:    c,
		interval: interval,
		next:     c.now.Add(interval),
		fn:       fn,
		seq:      c.seq,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due
// along the way. Timers armed by a callback are honoured within the same
// Advance call.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		t := c.nextDueLocked(target)
		if t == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = t.next
		t.next = t.next.Add(t.interval)
		fn := t.fn
		c.mu.Unlock()

		fn()
	}
}

// ActiveTimers reports how many timers are currently armed.
func (c *ManualClock) ActiveTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *ManualClock) nextDueLocked(target time.Time) *manualTimer {
	due := make([]*manualTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if !t.next.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next.Equal(due[j].next) {
			return due[i].seq < due[j].seq
		}
		return due[i].next.Before(due[j].next)
	})
	return due[0]
}

func (c *ManualClock) remove(t *manualTimer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, cur := range c.timers {
		if cur == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

type manualTimer struct {
	clock    *ManualClock
	interval time.Duration
	next     time.Time
	fn       func()
	seq      int
}

func (t *manualTimer) Stop() {
	t.clock.remove(t)
}
