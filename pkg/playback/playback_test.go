package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryan-jain07/path-weaver/pkg/trace"
)

func sampleTrace(n int) *trace.Trace {
	tr := &trace.Trace{Algorithm: "dijkstra", Source: "a"}
	for i := 0; i < n; i++ {
		tr.Steps = append(tr.Steps, trace.SelectNode{Frame: trace.Frame{Line: i}})
	}
	return tr
}

func TestStepping(t *testing.T) {
	c := NewController(sampleTrace(3))

	assert.Equal(t, 0, c.Index())
	assert.False(t, c.StepBack(), "cannot step back from the start")

	assert.True(t, c.StepForward())
	assert.True(t, c.StepForward())
	assert.Equal(t, 2, c.Index())
	assert.True(t, c.Done())
	assert.False(t, c.StepForward(), "cannot step past the end")

	assert.True(t, c.StepBack())
	assert.Equal(t, 1, c.Index())
}

func TestSeekClamps(t *testing.T) {
	c := NewController(sampleTrace(5))

	assert.Equal(t, 3, c.Seek(3))
	assert.Equal(t, 4, c.Seek(99))
	assert.Equal(t, 0, c.Seek(-7))

	c.End()
	assert.Equal(t, 4, c.Index())
	c.Rewind()
	assert.Equal(t, 0, c.Index())
}

func TestPlayPause(t *testing.T) {
	c := NewController(sampleTrace(3))

	assert.False(t, c.Playing())
	assert.False(t, c.Advance(), "paused controller schedules no ticks")

	c.Play()
	require.True(t, c.Playing())
	assert.True(t, c.Advance())
	assert.Equal(t, 1, c.Index())

	// The tick that lands on the final step pauses playback.
	assert.False(t, c.Advance())
	assert.Equal(t, 2, c.Index())
	assert.False(t, c.Playing())

	// Playing again from the end restarts.
	c.Play()
	assert.Equal(t, 0, c.Index())

	c.TogglePlay()
	assert.False(t, c.Playing())
}

func TestSpeedLevels(t *testing.T) {
	c := NewController(sampleTrace(2))

	assert.InDelta(t, 1.0, c.Speed(), 1e-9)
	assert.Equal(t, 800*time.Millisecond, c.Interval())

	c.SpeedUp()
	c.SpeedUp()
	assert.InDelta(t, 4.0, c.Speed(), 1e-9)
	c.SpeedUp()
	assert.InDelta(t, 4.0, c.Speed(), 1e-9, "fastest level clamps")
	assert.Equal(t, 200*time.Millisecond, c.Interval())

	for i := 0; i < 10; i++ {
		c.SlowDown()
	}
	assert.InDelta(t, 0.25, c.Speed(), 1e-9, "slowest level clamps")
}

func TestSetSpeed(t *testing.T) {
	c := NewController(sampleTrace(2))

	c.SetSpeed(2)
	assert.InDelta(t, 2.0, c.Speed(), 1e-9)

	c.SetSpeed(0.3)
	assert.InDelta(t, 0.25, c.Speed(), 1e-9, "snaps to the nearest level")

	c.SetSpeed(0)
	assert.InDelta(t, 0.25, c.Speed(), 1e-9, "non-positive values are ignored")

	c.SetSpeed(100)
	assert.InDelta(t, 4.0, c.Speed(), 1e-9)
}

func TestEmptyTrace(t *testing.T) {
	c := NewController(&trace.Trace{})

	_, ok := c.Current()
	assert.False(t, ok)
	assert.True(t, c.Done())
	assert.False(t, c.StepForward())
	assert.Equal(t, 0, c.Seek(3))
	assert.InDelta(t, 1.0, c.Progress(), 1e-9)

	c.Play()
	assert.False(t, c.Playing(), "nothing to play")
}

func TestProgress(t *testing.T) {
	c := NewController(sampleTrace(5))
	assert.InDelta(t, 0, c.Progress(), 1e-9)
	c.Seek(2)
	assert.InDelta(t, 0.5, c.Progress(), 1e-9)
	c.End()
	assert.InDelta(t, 1, c.Progress(), 1e-9)
}
