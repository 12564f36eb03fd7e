// Package playback drives a cursor over a materialized trace: manual
// stepping, seeking and timed auto-advance all reduce to index moves
// over the step sequence, which is what makes backward scrubbing free.
package playback

import (
	"math"
	"time"

	"github.com/Aryan-jain07/path-weaver/pkg/trace"
)

// baseInterval is the auto-advance period at 1x speed.
const baseInterval = 800 * time.Millisecond

// speedLevels are the selectable playback multipliers, slowest first.
var speedLevels = []float64{0.25, 0.5, 1, 2, 4}

// Controller owns the playback position for one trace. It is a plain
// state machine: the caller supplies the clock by invoking Advance on
// its own ticks. Not safe for concurrent use.
type Controller struct {
	tr      *trace.Trace
	idx     int
	playing bool
	speed   int // index into speedLevels
}

// NewController starts at the first step, paused, at 1x.
func NewController(tr *trace.Trace) *Controller {
	return &Controller{tr: tr, speed: 2}
}

// Len returns the number of steps.
func (c *Controller) Len() int { return c.tr.Len() }

// Index returns the current position.
func (c *Controller) Index() int { return c.idx }

// Current returns the step under the cursor, or false for an empty
// trace.
func (c *Controller) Current() (trace.Step, bool) {
	return c.tr.At(c.idx)
}

// Done reports whether the cursor sits on the final step.
func (c *Controller) Done() bool {
	return c.tr.Len() == 0 || c.idx >= c.tr.Len()-1
}

// StepForward moves one step ahead and reports whether it moved.
// Reaching the end pauses playback.
func (c *Controller) StepForward() bool {
	if c.Done() {
		c.playing = false
		return false
	}
	c.idx++
	if c.Done() {
		c.playing = false
	}
	return true
}

// StepBack moves one step back and reports whether it moved.
func (c *Controller) StepBack() bool {
	if c.idx == 0 {
		return false
	}
	c.idx--
	return true
}

// Seek clamps i into range and returns the resulting index.
func (c *Controller) Seek(i int) int {
	switch {
	case c.tr.Len() == 0:
		c.idx = 0
	case i < 0:
		c.idx = 0
	case i >= c.tr.Len():
		c.idx = c.tr.Len() - 1
	default:
		c.idx = i
	}
	return c.idx
}

// Rewind seeks to the first step and pauses.
func (c *Controller) Rewind() {
	c.idx = 0
	c.playing = false
}

// End seeks to the final step and pauses.
func (c *Controller) End() {
	c.Seek(c.tr.Len() - 1)
	c.playing = false
}

// Play starts auto-advance; on a finished trace it restarts from the
// beginning.
func (c *Controller) Play() {
	if c.tr.Len() == 0 {
		return
	}
	if c.Done() {
		c.idx = 0
	}
	c.playing = true
}

// Pause stops auto-advance.
func (c *Controller) Pause() { c.playing = false }

// TogglePlay flips between playing and paused.
func (c *Controller) TogglePlay() {
	if c.playing {
		c.Pause()
	} else {
		c.Play()
	}
}

// Playing reports whether auto-advance is active.
func (c *Controller) Playing() bool { return c.playing }

// Advance is the tick handler: when playing it moves one step forward.
// It reports whether another tick should be scheduled.
func (c *Controller) Advance() bool {
	if !c.playing {
		return false
	}
	c.StepForward()
	return c.playing
}

// SpeedUp selects the next faster multiplier.
func (c *Controller) SpeedUp() {
	if c.speed < len(speedLevels)-1 {
		c.speed++
	}
}

// SlowDown selects the next slower multiplier.
func (c *Controller) SlowDown() {
	if c.speed > 0 {
		c.speed--
	}
}

// SetSpeed selects the level closest to mult, so a configured value
// like 1.5 lands on a real level instead of an arbitrary interval.
// Non-positive values are ignored.
func (c *Controller) SetSpeed(mult float64) {
	if mult <= 0 {
		return
	}
	best := 0
	for i, lv := range speedLevels {
		if math.Abs(lv-mult) < math.Abs(speedLevels[best]-mult) {
			best = i
		}
	}
	c.speed = best
}

// Speed returns the current multiplier.
func (c *Controller) Speed() float64 { return speedLevels[c.speed] }

// Interval returns the auto-advance period at the current speed.
func (c *Controller) Interval() time.Duration {
	return time.Duration(float64(baseInterval) / c.Speed())
}

// Progress returns completion in [0, 1]; an empty trace counts as
// complete.
func (c *Controller) Progress() float64 {
	if c.tr.Len() <= 1 {
		return 1
	}
	return float64(c.idx) / float64(c.tr.Len()-1)
}
