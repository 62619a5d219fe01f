// SPDX-License-Identifier: Unlicense OR MIT

package menu

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/splitpane/splitmenu/anim"
)

// Type animates a menu between closed and open. Positions are the
// openness of the menu, 0 when closed and 1 when open.
//
// A Type calls done exactly once per SetOpen or SetProgressEnd:
// synchronously for instant transitions, from a Timeline frame
// otherwise. A later request supersedes an unfinished one, whose done
// is never called.
type Type interface {
	SetOpen(open, animated bool, done func(open bool))
	// SetProgressStart prepares for scrubbing with SetProgressStep.
	SetProgressStart(wasOpen bool)
	SetProgressStep(pos float32)
	// SetProgressEnd completes a scrub. The menu ends up open if it
	// was opening and complete is set, or if it was closing and
	// complete is not. Faster swipes finish faster.
	SetProgressEnd(complete bool, pos, velocity float32, done func(open bool))
	// Resize adapts to a change of the menu width or side.
	Resize()
	Destroy()
}

// Kind names a built-in Type.
type Kind string

const (
	// KindReveal slides the content aside to reveal the static menu
	// underneath.
	KindReveal Kind = "reveal"
	// KindOverlay slides the menu over the content and fades in the
	// backdrop.
	KindOverlay Kind = "overlay"
	// KindPush slides both the menu and the content.
	KindPush Kind = "push"
)

// ErrUnknownType is returned for Kinds without a Type.
var ErrUnknownType = errors.New("menu: unknown type")

// Animation defaults.
const (
	DefaultDuration = 280 * time.Millisecond
	backdropClosed  = 0.01
	backdropOpen    = 0.35
)

// track is an animated property as a function of the signed menu
// width.
type track struct {
	closed, open func(x float32) float32
	set          func(v float32)
	t            *anim.Track
	// shown is the value last passed to set.
	shown float32
}

func (tr *track) show(v float32) {
	tr.shown = v
	tr.set(v)
}

var kinds = map[Kind]func(h Host) []*track{
	KindReveal: func(h Host) []*track {
		return []*track{contentTrack(h)}
	},
	KindOverlay: func(h Host) []*track {
		return []*track{menuTrack(h), backdropTrack(h)}
	},
	KindPush: func(h Host) []*track {
		return []*track{menuTrack(h), contentTrack(h)}
	},
}

// Kinds returns the names of the built-in types.
func Kinds() []Kind {
	ks := maps.Keys(kinds)
	slices.Sort(ks)
	return ks
}

func contentTrack(h Host) *track {
	return &track{
		closed: func(float32) float32 { return 0 },
		open:   func(x float32) float32 { return x },
		set:    h.Content().Translate,
	}
}

func menuTrack(h Host) *track {
	return &track{
		closed: func(x float32) float32 { return -x },
		open:   func(float32) float32 { return 0 },
		set:    h.Menu().Translate,
	}
}

func backdropTrack(h Host) *track {
	return &track{
		closed: func(float32) float32 { return backdropClosed },
		open:   func(float32) float32 { return backdropOpen },
		set:    h.Backdrop().SetOpacity,
	}
}

// transition implements every Kind as a set of tracks on one
// animation.
type transition struct {
	host    Host
	tl      *anim.Timeline
	isRight func() bool
	anim    *anim.Animation
	tracks  []*track
	// x is the width of the menu, negative on the right side.
	x float32
	// opening is set by SetProgressStart.
	opening bool
	// scrubbing is set between SetProgressStart and the end of the
	// swipe.
	scrubbing bool
	// stale is set while the tracks run on a temporary range.
	stale    bool
	retarget *anim.Animation
}

func newType(k Kind, h Host, tl *anim.Timeline, d time.Duration, isRight func() bool) (*transition, error) {
	mk, ok := kinds[k]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, k)
	}
	t := &transition{
		host:    h,
		tl:      tl,
		isRight: isRight,
		anim:    anim.New(tl, d),
		tracks:  mk(h),
	}
	t.anim.Easing = anim.Decelerate
	t.anim.EasingReverse = anim.Accelerate
	t.x = t.extent()
	for _, tr := range t.tracks {
		tr.shown = tr.closed(t.x)
		tr.t = t.anim.FromTo(tr.closed(t.x), tr.open(t.x), tr.show)
	}
	return t, nil
}

func (t *transition) extent() float32 {
	w := t.host.Width()
	if t.isRight() {
		return -w
	}
	return w
}

func (t *transition) SetOpen(open, animated bool, done func(open bool)) {
	t.scrubbing = false
	t.settle()
	t.onFinish(open, done)
	if !animated {
		t.anim.Finish(position(open))
		return
	}
	t.anim.Play(position(open))
}

func (t *transition) SetProgressStart(wasOpen bool) {
	t.settle()
	t.opening = !wasOpen
	t.scrubbing = true
	t.anim.ProgressStart()
}

func (t *transition) SetProgressStep(pos float32) {
	t.anim.ProgressStep(pos)
}

func (t *transition) SetProgressEnd(complete bool, pos, velocity float32, done func(open bool)) {
	t.scrubbing = false
	open := t.opening == complete
	factor := 1 - min(abs(velocity)/4, 0.7)
	d := time.Duration(float32(t.anim.Duration) * factor)
	t.anim.ProgressStep(pos)
	t.onFinish(open, done)
	t.anim.ProgressEnd(position(open), d)
}

func (t *transition) onFinish(open bool, done func(bool)) {
	t.anim.OnFinish(func() {
		if t.stale {
			t.rebase()
		}
		done(open)
	})
}

// Resize recomputes the menu width. An open menu at rest slides to the
// new width, and a running animation continues from its current
// values toward the new target. During a swipe the tracks jump to the
// new range so they keep following the pointer.
func (t *transition) Resize() {
	x := t.extent()
	if x == t.x {
		return
	}
	t.x = x
	switch {
	case t.scrubbing:
		t.rebase()
	case t.anim.Running():
		t.retargetRun()
	case t.anim.Pos() == 1:
		t.slide()
	default:
		t.rebase()
	}
}

// retargetRun bends the range of the running animation so that its
// current position maps to the current values.
func (t *transition) retargetRun() {
	p, target := t.anim.Pos(), t.anim.Target()
	for _, tr := range t.tracks {
		cur := tr.shown
		tr.t.From, tr.t.To = tr.closed(t.x), tr.open(t.x)
		switch {
		case target == 1 && p < 1:
			tr.t.From = (cur - tr.t.To*p) / (1 - p)
		case target == 0 && p > 0:
			tr.t.To = (cur - tr.t.From*(1-p)) / p
		}
	}
	t.stale = true
}

// slide animates an open menu from its current values to the new
// width, and rebases the closed to open range when done.
func (t *transition) slide() {
	if t.retarget != nil {
		t.retarget.Destroy()
	}
	r := anim.New(t.tl, t.anim.Duration)
	r.Easing = anim.Decelerate
	for _, tr := range t.tracks {
		r.FromTo(tr.shown, tr.open(t.x), tr.show)
	}
	r.OnFinish(func() {
		t.retarget = nil
		t.rebase()
	})
	t.retarget = r
	r.Play(1)
}

// settle completes any resize adaptation instantly.
func (t *transition) settle() {
	if t.retarget != nil {
		t.retarget.Destroy()
		t.retarget = nil
		t.rebase()
	}
	if t.stale {
		t.rebase()
	}
}

func (t *transition) rebase() {
	t.stale = false
	for _, tr := range t.tracks {
		tr.t.From, tr.t.To = tr.closed(t.x), tr.open(t.x)
	}
	t.anim.Apply()
}

func (t *transition) Destroy() {
	if t.retarget != nil {
		t.retarget.Destroy()
		t.retarget = nil
	}
	t.anim.Destroy()
}

func position(open bool) float32 {
	if open {
		return 1
	}
	return 0
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
