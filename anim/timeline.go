// SPDX-License-Identifier: Unlicense OR MIT

/*
Package anim implements frame driven animations.

A Timeline is the frame clock of an application. The event loop calls
Frame with the current time for every frame it draws, and keeps drawing
frames while Frame reports that animations are running. Completion
callbacks run from within Frame, so that animated state changes happen
on the event loop like every other state change.

Timelines and animations are not safe for concurrent use.
*/
package anim

import (
	"time"
)

// Timeline advances animations and timers.
type Timeline struct {
	now     time.Time
	running []*Animation
	timers  []*timer
}

type timer struct {
	// due is zero until the timer is scheduled by a frame.
	due     time.Time
	delay   time.Duration
	fn      func()
	stopped bool
}

// Now returns the time of the most recent frame.
func (tl *Timeline) Now() time.Time {
	return tl.now
}

// Active reports whether an animation or timer awaits a frame.
func (tl *Timeline) Active() bool {
	return len(tl.running) > 0 || len(tl.timers) > 0
}

// Frame advances every running animation and timer to now, and runs
// the callbacks of those that completed. It reports whether another
// frame is needed.
func (tl *Timeline) Frame(now time.Time) bool {
	tl.now = now
	tl.fireTimers(now)
	running := append([]*Animation(nil), tl.running...)
	for _, a := range running {
		if !a.running {
			continue
		}
		if a.advance(now) {
			tl.remove(a)
			a.finish()
		}
	}
	return tl.Active()
}

func (tl *Timeline) fireTimers(now time.Time) {
	timers := append([]*timer(nil), tl.timers...)
	for _, t := range timers {
		if t.due.IsZero() {
			t.due = now.Add(t.delay)
		}
		if t.stopped || now.Before(t.due) {
			continue
		}
		t.stopped = true
		tl.removeTimer(t)
		t.fn()
	}
}

// After runs fn on the first frame at least d after the next frame.
// The returned function cancels fn if it has not run yet.
func (tl *Timeline) After(d time.Duration, fn func()) (stop func()) {
	t := &timer{delay: d, fn: fn}
	tl.timers = append(tl.timers, t)
	return func() {
		if !t.stopped {
			t.stopped = true
			tl.removeTimer(t)
		}
	}
}

func (tl *Timeline) removeTimer(t *timer) {
	for i, t2 := range tl.timers {
		if t2 == t {
			tl.timers = append(tl.timers[:i:i], tl.timers[i+1:]...)
			return
		}
	}
}

func (tl *Timeline) add(a *Animation) {
	for _, a2 := range tl.running {
		if a2 == a {
			return
		}
	}
	tl.running = append(tl.running, a)
}

func (tl *Timeline) remove(a *Animation) {
	for i, a2 := range tl.running {
		if a2 == a {
			tl.running = append(tl.running[:i:i], tl.running[i+1:]...)
			return
		}
	}
}
