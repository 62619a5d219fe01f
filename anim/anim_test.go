// SPDX-License-Identifier: Unlicense OR MIT

package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestPlayCompletesOnFrame(t *testing.T) {
	var tl Timeline
	a := New(&tl, 100*time.Millisecond)
	var got []float32
	tr := a.FromTo(0, 200, func(v float32) { got = append(got, v) })

	finished := 0
	a.OnFinish(func() { finished++ })
	assert.Zero(t, a.Target())
	a.Play(1)
	assert.True(t, a.Running())
	assert.Equal(t, float32(1), a.Target())
	assert.Empty(t, got, "runs start on the next frame")
	assert.Zero(t, finished)

	require.True(t, tl.Frame(at(0)))
	assert.Equal(t, []float32{0}, got)
	require.True(t, tl.Frame(at(50)))
	assert.InDelta(t, 100, tr.Value(), 0.01)
	assert.False(t, tl.Frame(at(100)))
	assert.Equal(t, float32(200), tr.Value())
	assert.Equal(t, 1, finished)
	assert.False(t, a.Running())

	// The finish function is single shot.
	a.Play(0)
	for ms := 100; tl.Frame(at(ms)); ms += 16 {
	}
	assert.Equal(t, 1, finished)
	assert.Equal(t, float32(0), tr.Value())
}

func TestSeekInterruptsRun(t *testing.T) {
	var tl Timeline
	a := New(&tl, 100*time.Millisecond)
	tr := a.FromTo(10, 20, nil)
	finished := false
	a.OnFinish(func() { finished = true })
	a.Play(1)
	tl.Frame(at(0))
	a.Seek(0.5)
	assert.False(t, a.Running())
	assert.False(t, tl.Frame(at(200)))
	assert.False(t, finished)
	assert.Equal(t, float32(15), tr.Value())
}

func TestFinishIsSynchronous(t *testing.T) {
	var tl Timeline
	a := New(&tl, time.Second)
	tr := a.FromTo(0, 1, nil)
	finished := false
	a.OnFinish(func() { finished = true })
	a.Finish(1)
	assert.True(t, finished)
	assert.Equal(t, float32(1), tr.Value())
	assert.False(t, tl.Active())
}

func TestProgress(t *testing.T) {
	var tl Timeline
	a := New(&tl, 200*time.Millisecond)
	a.Easing = Decelerate
	tr := a.FromTo(0, 100, nil)
	a.ProgressStart()
	a.ProgressStep(0.3)
	assert.InDelta(t, 30, tr.Value(), 0.001)
	a.ProgressStep(1.7)
	assert.Equal(t, float32(100), tr.Value(), "positions are clamped")

	a.ProgressStep(0.98)
	done := false
	a.OnFinish(func() { done = true })
	a.ProgressEnd(1, 200*time.Millisecond)
	tl.Frame(at(0))
	assert.True(t, done, "almost complete runs finish on the next frame")

	a.ProgressStep(0.5)
	done = false
	a.OnFinish(func() { done = true })
	a.ProgressEnd(0, 100*time.Millisecond)
	tl.Frame(at(0))
	tl.Frame(at(50))
	assert.False(t, done)
	assert.Less(t, tr.Value(), float32(50))
	tl.Frame(at(100))
	assert.True(t, done)
	assert.Zero(t, tr.Value())
}

func TestZeroDuration(t *testing.T) {
	var tl Timeline
	a := New(&tl, 0)
	tr := a.FromTo(0, 5, nil)
	done := false
	a.OnFinish(func() { done = true })
	a.Play(1)
	assert.False(t, done)
	assert.False(t, tl.Frame(at(0)))
	assert.True(t, done)
	assert.Equal(t, float32(5), tr.Value())
}

func TestFinishStartsNewRun(t *testing.T) {
	var tl Timeline
	a := New(&tl, 10*time.Millisecond)
	a.FromTo(0, 1, nil)
	b := New(&tl, 10*time.Millisecond)
	b.FromTo(0, 1, nil)
	a.OnFinish(func() { b.Play(1) })
	a.Play(1)
	tl.Frame(at(0))
	assert.True(t, tl.Frame(at(10)), "b started from a's callback")
	assert.True(t, b.Running())
	tl.Frame(at(11))
	assert.False(t, tl.Frame(at(21)))
	assert.Equal(t, float32(1), b.Pos())
}

func TestDestroy(t *testing.T) {
	var tl Timeline
	a := New(&tl, 10*time.Millisecond)
	calls := 0
	a.FromTo(0, 1, func(float32) { calls++ })
	a.OnFinish(func() { t.Fatal("finish after destroy") })
	a.Play(1)
	a.Destroy()
	assert.False(t, tl.Frame(at(0)))
	assert.Zero(t, calls)
}

func TestAfter(t *testing.T) {
	var tl Timeline
	var fired []string
	tl.After(100*time.Millisecond, func() { fired = append(fired, "a") })
	stop := tl.After(50*time.Millisecond, func() { fired = append(fired, "b") })
	tl.After(0, func() { fired = append(fired, "c") })

	assert.True(t, tl.Active())
	tl.Frame(at(0))
	assert.Equal(t, []string{"c"}, fired)
	stop()
	stop()
	tl.Frame(at(60))
	assert.Equal(t, []string{"c"}, fired)
	assert.False(t, tl.Frame(at(100)))
	assert.Equal(t, []string{"c", "a"}, fired)
	assert.Equal(t, at(100), tl.Now())
}

func TestCubicBezier(t *testing.T) {
	ease := CubicBezier(0.25, 0.1, 0.25, 1)
	assert.Zero(t, ease(0))
	assert.Equal(t, float32(1), ease(1))
	assert.Equal(t, float32(1), ease(2))
	// Reference values of CSS "ease".
	assert.InDelta(t, 0.8024, ease(0.5), 0.002)
	assert.InDelta(t, 0.0949, ease(0.1), 0.002)

	lin := CubicBezier(0, 0, 1, 1)
	for _, x := range []float32{0.1, 0.33, 0.5, 0.9} {
		assert.InDelta(t, x, lin(x), 1e-3)
	}

	prev := float32(0)
	for i := 1; i <= 100; i++ {
		v := Decelerate(float32(i) / 100)
		assert.GreaterOrEqual(t, v, prev, "monotonic")
		prev = v
	}
	assert.Greater(t, Decelerate(0.5), float32(0.5))
	assert.Less(t, Accelerate(0.25), float32(0.25))
}
