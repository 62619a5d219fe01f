// SPDX-License-Identifier: Unlicense OR MIT

package menu

import (
	"github.com/splitpane/splitmenu/gesture"
	"github.com/splitpane/splitmenu/io/pointer"
)

// swipeGesture opens and closes a menu by horizontal swipes. It works
// in reading direction coordinates: under RTL, horizontal motion is
// mirrored before it reaches the menu.
type swipeGesture struct {
	m         *Menu
	g         *gesture.Gesture
	s         gesture.Swipe
	listening bool
	// active is set while the swipe drives the menu.
	active bool
	step   float32
}

// Release velocity in pixels per millisecond beyond which a swipe
// completes regardless of its distance.
const completeVelocity = 0.2

func newSwipeGesture(m *Menu, arb *gesture.Arbiter, slop float32) (*swipeGesture, error) {
	g, err := arb.NewGesture(gesture.Options{
		Name:          gesture.NameMenuSwipe,
		Priority:      gesture.PriorityMenuSwipe,
		DisableScroll: true,
	})
	if err != nil {
		return nil, err
	}
	sg := &swipeGesture{m: m, g: g}
	sg.s.Slop = slop
	sg.s.CanStart = sg.canStart
	return sg, nil
}

func (sg *swipeGesture) listen() {
	if sg.listening {
		return
	}
	sg.listening = true
	sg.m.logger.Debug().Msg("swipe listen")
}

func (sg *swipeGesture) unlisten() {
	if !sg.listening {
		return
	}
	sg.listening = false
	sg.m.logger.Debug().Msg("swipe unlisten")
	if e, ok := sg.s.Stop(sg.g); ok {
		sg.handle(e)
	}
}

func (sg *swipeGesture) destroy() {
	sg.unlisten()
	sg.active = false
	sg.g.Destroy()
}

func (sg *swipeGesture) event(e pointer.Event) {
	if !sg.listening {
		return
	}
	if se, ok := sg.s.Update(sg.g, e); ok {
		sg.handle(se)
	}
}

// canStart reports whether a press at pos may start a swipe. Closed
// menus only open from near their edge.
func (sg *swipeGesture) canStart(pos pointer.Point) bool {
	m := sg.m
	if !m.CanSwipe() {
		return false
	}
	if m.open {
		return true
	}
	if m.IsRightSide() {
		return pos.X >= m.host.Viewport()-m.maxEdgeStart
	}
	return pos.X <= m.maxEdgeStart
}

func (sg *swipeGesture) handle(e gesture.SwipeEvent) {
	m := sg.m
	dir := float32(1)
	if m.host.RTL() {
		dir = -1
	}
	delta := e.Delta * dir
	switch e.Kind {
	case gesture.SwipeStart:
		// A transition may have started since the press.
		if !m.CanSwipe() {
			sg.s.Stop(sg.g)
			return
		}
		if err := m.SwipeBeforeStart(); err != nil {
			sg.s.Stop(sg.g)
			return
		}
		sg.active = true
		m.SwipeStart()
		sg.step = sg.position(delta)
		m.SwipeProgress(sg.step)
	case gesture.SwipeMove:
		if !sg.active {
			return
		}
		sg.step = sg.position(delta)
		m.SwipeProgress(sg.step)
	case gesture.SwipeEnd:
		if !sg.active {
			return
		}
		sg.active = false
		v := e.Velocity * dir
		sg.step = sg.position(delta)
		z := abs(m.host.Width() / 2)
		rightward := v >= 0 && (v > completeVelocity || delta > z)
		leftward := v <= 0 && (v < -completeVelocity || delta < -z)
		m.SwipeEnd(rightward, leftward, sg.step, v)
	case gesture.SwipeCancel:
		if !sg.active {
			return
		}
		sg.active = false
		// Neither verdict completes, so the menu returns to its
		// committed state.
		m.SwipeEnd(false, false, sg.step, 0)
	}
}

// position maps the distance travelled since the press to the
// openness of the menu.
func (sg *swipeGesture) position(delta float32) float32 {
	m := sg.m
	w := m.host.Width()
	lo, hi := float32(0), w
	if m.flip() {
		lo, hi = -w, 0
	}
	var start, z float32
	switch {
	case m.flip() && m.open:
		start, z = lo, lo
	case m.flip():
		start, z = hi, lo
	case m.open:
		start, z = hi, hi
	default:
		start, z = lo, hi
	}
	if z == 0 {
		return 0
	}
	return clamp(start+delta, lo, hi) / z
}

func clamp(v, lo, hi float32) float32 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
