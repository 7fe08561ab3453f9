package domain

import "time"

// DefaultTickInterval is the period between ticks while running
const DefaultTickInterval = time.Second

type ClockState string

const (
	ClockStateStopped ClockState = "stopped"
	ClockStateRunning ClockState = "running"
)

// ClockOptions configures a Clock
type ClockOptions struct {
	// Default is the packed duration used at creation and on Reset
	Default PackedTime
	// TickInterval is the running period; zero means DefaultTickInterval
	TickInterval time.Duration
	// StopAtZero clamps remaining at zero and stops the clock there.
	// Left off, the clock keeps counting into negative values.
	StopAtZero bool
}

// Clock owns the remaining countdown value and the running flag.
// It does not schedule itself: the host calls Tick once per Interval
// while Running reports true.
type Clock struct {
	remaining    int64
	interval     time.Duration // 0 when stopped
	def          PackedTime
	tickInterval time.Duration
	stopAtZero   bool
}

// NewClock creates a stopped clock holding the default duration
func NewClock(opts ClockOptions) *Clock {
	tick := opts.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	return &Clock{
		remaining:    PackedToSeconds(opts.Default),
		def:          opts.Default,
		tickInterval: tick,
		stopAtZero:   opts.StopAtZero,
	}
}

// State returns the current clock state
func (c *Clock) State() ClockState {
	if c.interval == 0 {
		return ClockStateStopped
	}
	return ClockStateRunning
}

// Running reports whether the clock is armed
func (c *Clock) Running() bool {
	return c.interval != 0
}

// Interval returns the running period, or 0 when stopped
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// TickInterval returns the period used when the clock is started
func (c *Clock) TickInterval() time.Duration {
	return c.tickInterval
}

// Remaining returns the remaining seconds
func (c *Clock) Remaining() int64 {
	return c.remaining
}

// Default returns the packed default duration
func (c *Clock) Default() PackedTime {
	return c.def
}

// DefaultSeconds returns the default duration in seconds
func (c *Clock) DefaultSeconds() int64 {
	return PackedToSeconds(c.def)
}

// Start arms the clock at the tick interval
func (c *Clock) Start() {
	c.interval = c.tickInterval
}

// Stop disarms the clock
func (c *Clock) Stop() {
	c.interval = 0
}

// Reset stops the clock and restores the default duration
func (c *Clock) Reset() {
	c.Stop()
	c.remaining = c.DefaultSeconds()
}

// SetRemaining overwrites the remaining seconds
func (c *Clock) SetRemaining(seconds int64) {
	c.remaining = seconds
}

// Tick decrements remaining by one second. It does nothing while stopped,
// and with StopAtZero it stops the clock instead of passing zero.
// It reports whether remaining changed.
func (c *Clock) Tick() bool {
	if !c.Running() {
		return false
	}
	if c.stopAtZero && c.remaining <= 0 {
		c.remaining = 0
		c.Stop()
		return false
	}
	c.remaining--
	if c.stopAtZero && c.remaining <= 0 {
		c.remaining = 0
		c.Stop()
	}
	return true
}
