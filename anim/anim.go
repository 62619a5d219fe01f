// SPDX-License-Identifier: Unlicense OR MIT

package anim

import (
	"time"

	"golang.org/x/exp/constraints"
)

// Animation moves a position between 0 and 1 and applies it to a set
// of tracks. Position 0 puts every track at its From value, position 1
// at its To value.
//
// Runs started by Play begin on the next frame of the Timeline. A run
// interrupted by Seek, Stop or another Play never reports completion.
type Animation struct {
	// Duration of a run between positions 0 and 1.
	Duration time.Duration
	// Easing shapes runs toward position 1, EasingReverse runs
	// toward position 0. Nil curves mean Linear.
	Easing        Curve
	EasingReverse Curve

	tl     *Timeline
	tracks []*Track
	pos    float32

	running bool
	// start is zero until the first frame of a run.
	start    time.Time
	from, to float32
	dur      time.Duration
	curve    Curve
	onFinish func()
}

// Track is a value animated between From and To.
type Track struct {
	From, To float32
	// Set receives the value of the track whenever it changes.
	Set   func(v float32)
	value float32
}

// New returns an animation driven by tl, at position 0.
func New(tl *Timeline, d time.Duration) *Animation {
	return &Animation{tl: tl, Duration: d}
}

// FromTo adds a track to the animation. The track is not applied until
// the position changes.
func (a *Animation) FromTo(from, to float32, set func(v float32)) *Track {
	t := &Track{From: from, To: to, Set: set}
	t.value = t.at(a.pos)
	a.tracks = append(a.tracks, t)
	return t
}

// Value returns the value last applied to the track.
func (t *Track) Value() float32 {
	return t.value
}

func (t *Track) at(pos float32) float32 {
	return t.From + (t.To-t.From)*pos
}

func (t *Track) apply(pos float32) {
	t.value = t.at(pos)
	if t.Set != nil {
		t.Set(t.value)
	}
}

// Pos returns the current position.
func (a *Animation) Pos() float32 {
	return a.pos
}

// Running reports whether a run is in progress.
func (a *Animation) Running() bool {
	return a.running
}

// Target returns the position the current run moves to, or the current
// position if no run is in progress.
func (a *Animation) Target() float32 {
	if a.running {
		return a.to
	}
	return a.pos
}

// OnFinish sets the function called once when the current or next run
// completes. It replaces any previously set function.
func (a *Animation) OnFinish(fn func()) *Animation {
	a.onFinish = fn
	return a
}

// Seek stops any run and moves to pos.
func (a *Animation) Seek(pos float32) {
	a.Stop()
	a.seek(pos)
}

func (a *Animation) seek(pos float32) {
	a.pos = clamp(pos, 0, 1)
	for _, t := range a.tracks {
		t.apply(a.pos)
	}
}

// Apply re-applies the current position to every track, typically
// after their ranges changed.
func (a *Animation) Apply() {
	a.seek(a.pos)
}

// Play runs from the current position to the position to, using the
// full Duration.
func (a *Animation) Play(to float32) {
	a.PlayFor(to, a.Duration)
}

// PlayFor is like Play with an explicit duration.
func (a *Animation) PlayFor(to float32, d time.Duration) {
	a.running = true
	a.start = time.Time{}
	a.from = a.pos
	a.to = clamp(to, 0, 1)
	a.dur = d
	a.curve = a.Easing
	if a.to < a.from {
		a.curve = a.EasingReverse
	}
	if a.curve == nil {
		a.curve = Linear
	}
	a.tl.add(a)
}

// Finish moves to the position to and runs the finish function
// immediately.
func (a *Animation) Finish(to float32) {
	a.Seek(to)
	a.finish()
}

// ProgressStart stops any run in preparation for scrubbing with
// ProgressStep.
func (a *Animation) ProgressStart() {
	a.Stop()
}

// ProgressStep moves to pos without easing.
func (a *Animation) ProgressStep(pos float32) {
	a.seek(pos)
}

// ProgressEnd runs from the current position to the position to in
// the duration d. Runs that are almost complete finish on the next
// frame.
func (a *Animation) ProgressEnd(to float32, d time.Duration) {
	if abs(to-a.pos) < 0.05 {
		d = 0
	}
	a.PlayFor(to, d)
}

// Stop interrupts any run, leaving the position unchanged.
func (a *Animation) Stop() {
	if !a.running {
		return
	}
	a.running = false
	a.tl.remove(a)
}

// Destroy stops the animation and drops its tracks and finish
// function.
func (a *Animation) Destroy() {
	a.Stop()
	a.tracks = nil
	a.onFinish = nil
}

// advance moves a run to now and reports whether it completed.
func (a *Animation) advance(now time.Time) bool {
	if a.start.IsZero() {
		a.start = now
	}
	elapsed := now.Sub(a.start)
	if a.dur <= 0 || elapsed >= a.dur {
		a.running = false
		a.seek(a.to)
		return true
	}
	t := float32(elapsed) / float32(a.dur)
	a.seek(a.from + (a.to-a.from)*a.curve(t))
	return false
}

func (a *Animation) finish() {
	fn := a.onFinish
	a.onFinish = nil
	if fn != nil {
		fn()
	}
}

func clamp[T constraints.Float](v, lo, hi T) T {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

func abs[T constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
