// SPDX-License-Identifier: Unlicense OR MIT

// Package fling estimates the release velocity of a pointer drag.
package fling

import (
	"math"
	"time"
)

// Extrapolation computes a 1-dimensional velocity estimate
// for a set of timestamped points using the least squares
// fit of a line through the most recent samples.
type Extrapolation struct {
	// Index of the next sample.
	idx     int
	samples [historySize]sample
	count   int
}

// Estimate is the result of a velocity estimation.
type Estimate struct {
	// Velocity is the estimated velocity in units per second.
	Velocity float32
	// Distance is the distance covered by the samples used in
	// the estimate.
	Distance float32
}

type sample struct {
	t time.Duration
	v float32
}

const (
	historySize = 20
	maxAge      = 100 * time.Millisecond
	// Pointers that paused longer than this before release have no
	// velocity.
	maxSampleGap = 40 * time.Millisecond
)

// Sample adds a sample to the estimation. Samples must be added in
// increasing time order.
func (e *Extrapolation) Sample(t time.Duration, v float32) {
	e.samples[e.idx] = sample{t: t, v: v}
	e.idx = (e.idx + 1) % historySize
	if e.count < historySize {
		e.count++
	}
}

// Reset discards all samples.
func (e *Extrapolation) Reset() {
	*e = Extrapolation{}
}

// Estimate the velocity from the samples added since the last Reset.
func (e *Extrapolation) Estimate() Estimate {
	window := e.window()
	if len(window) < 2 {
		return Estimate{}
	}
	first, last := window[0], window[len(window)-1]
	est := Estimate{Distance: last.v - first.v}
	slope, ok := linearFit(window)
	if !ok {
		return est
	}
	// Slope is in units per nanosecond.
	est.Velocity = float32(slope * float64(time.Second))
	return est
}

// window returns the recent samples in time order, stopping at the
// first gap or sample older than maxAge.
func (e *Extrapolation) window() []sample {
	var rev []sample
	var newest, prev time.Duration
	for i := 0; i < e.count; i++ {
		idx := (e.idx - 1 - i + historySize) % historySize
		s := e.samples[idx]
		if i == 0 {
			newest, prev = s.t, s.t
		}
		if newest-s.t > maxAge || prev-s.t > maxSampleGap {
			break
		}
		rev = append(rev, s)
		prev = s.t
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// linearFit returns the slope of the least squares line through
// the samples.
func linearFit(samples []sample) (float64, bool) {
	n := float64(len(samples))
	var mt, mv float64
	for _, s := range samples {
		mt += float64(s.t)
		mv += float64(s.v)
	}
	mt /= n
	mv /= n
	var num, den float64
	for _, s := range samples {
		dt := float64(s.t) - mt
		num += dt * (float64(s.v) - mv)
		den += dt * dt
	}
	if den == 0 || math.IsNaN(num) {
		return 0, false
	}
	return num / den, true
}
