package auction

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// TickInterval is how often a running countdown re-evaluates the clock.
const TickInterval = time.Second

// Countdown tracks the time left until an auction's end time. Once started
// it ticks every TickInterval, reporting the remaining time, and fires
// onExpire once when the end is reached.
//
// Callbacks run on the countdown goroutine and must not call Stop.
type Countdown struct {
	clock    clockwork.Clock
	end      time.Time
	onTick   func(remaining time.Duration)
	onExpire func()

	mu      sync.Mutex
	expired bool
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewCountdown creates a stopped countdown to end. Either callback may be nil.
func NewCountdown(clock clockwork.Clock, end time.Time, onTick func(time.Duration), onExpire func()) *Countdown {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Countdown{
		clock:    clock,
		end:      end,
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// Start launches the ticker. Calling Start on a running or finished
// countdown does nothing.
func (c *Countdown) Start() {
	c.mu.Lock()
	if c.running || c.expired {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	stop, done := c.stop, c.done
	c.mu.Unlock()

	ticker := c.clock.NewTicker(TickInterval)
	go c.run(ticker, stop, done)
}

// Stop halts the ticker and waits for the goroutine to exit. It is safe to
// call more than once.
func (c *Countdown) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	stop, done := c.stop, c.done
	c.mu.Unlock()

	close(stop)
	<-done
}

// Remaining is the time left, never negative.
func (c *Countdown) Remaining() time.Duration {
	rem := c.end.Sub(c.clock.Now())
	if rem < 0 {
		return 0
	}
	return rem
}

// Expired reports whether the end time has been reached, even if the
// ticker has not observed it yet.
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	expired := c.expired
	c.mu.Unlock()
	return expired || !c.clock.Now().Before(c.end)
}

// Label renders the remaining time for display.
func (c *Countdown) Label() string {
	if c.Expired() {
		return ExpiredLabel
	}
	return FormatRemaining(c.Remaining())
}

func (c *Countdown) run(ticker clockwork.Ticker, stop, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	if c.tick() {
		return
	}
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			if c.tick() {
				return
			}
		}
	}
}

// tick reports whether the countdown has finished.
func (c *Countdown) tick() bool {
	rem := c.end.Sub(c.clock.Now())
	if rem > 0 {
		if c.onTick != nil {
			c.onTick(rem)
		}
		return false
	}

	c.mu.Lock()
	c.expired = true
	c.mu.Unlock()

	if c.onExpire != nil {
		c.onExpire()
	}
	return true
}
