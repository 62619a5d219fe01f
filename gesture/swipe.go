// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"github.com/splitpane/splitmenu/internal/fling"
	"github.com/splitpane/splitmenu/io/pointer"
)

// Swipe detects horizontal swipes of a single pointer. Input is claimed
// through a Gesture: a press starts a pending claim, and horizontal
// travel beyond the slop captures it. Vertical travel beyond the slop
// abandons the claim so a scroller underneath can take over.
type Swipe struct {
	// Slop is the horizontal distance in pixels a pointer travels
	// before the swipe captures input. Zero means DefaultSlop.
	Slop float32
	// CanStart, if set, filters the positions a swipe may start from.
	CanStart func(pos pointer.Point) bool

	state     SwipeState
	pid       pointer.ID
	start     pointer.Point
	estimator fling.Extrapolation
}

// SwipeEvent reports the progress of a swipe.
type SwipeEvent struct {
	Kind     SwipeKind
	Position pointer.Point
	// Delta is the horizontal distance from the press position.
	Delta float32
	// Velocity is the horizontal release velocity in pixels per
	// millisecond. It is set for SwipeEnd only.
	Velocity float32
}

type SwipeKind uint8

type SwipeState uint8

// DefaultSlop is the default capture distance of a Swipe.
const DefaultSlop = 10

const (
	// SwipeStart is reported when the swipe captures input.
	SwipeStart SwipeKind = iota
	// SwipeMove is reported for every move after SwipeStart.
	SwipeMove
	// SwipeEnd is reported when the pointer is released.
	SwipeEnd
	// SwipeCancel is reported when the system cancels the pointer
	// or the swipe is stopped.
	SwipeCancel
)

const (
	// StateIdle is the default swipe state.
	StateIdle SwipeState = iota
	// StatePending is reported while a pressed pointer has not
	// yet traveled far enough to capture.
	StatePending
	// StateSwiping is reported while the swipe holds the capture.
	StateSwiping
)

// State reports the swipe state.
func (s *Swipe) State() SwipeState {
	return s.state
}

// Update processes a pointer event and reports the resulting swipe
// event, if any.
func (s *Swipe) Update(g *Gesture, e pointer.Event) (SwipeEvent, bool) {
	switch e.Kind {
	case pointer.Press:
		if s.state != StateIdle {
			break
		}
		if !e.Primary() {
			break
		}
		if s.CanStart != nil && !s.CanStart(e.Position) {
			break
		}
		if ok, _ := g.Start(); !ok {
			break
		}
		s.state = StatePending
		s.pid = e.PointerID
		s.start = e.Position
		s.estimator.Reset()
		s.estimator.Sample(e.Time, e.Position.X)
	case pointer.Move, pointer.Drag:
		if s.state == StateIdle || s.pid != e.PointerID {
			break
		}
		s.estimator.Sample(e.Time, e.Position.X)
		delta := e.Position.X - s.start.X
		if s.state == StateSwiping {
			return SwipeEvent{Kind: SwipeMove, Position: e.Position, Delta: delta}, true
		}
		slop := s.slop()
		dx, dy := s.start.Travel(e.Position)
		switch {
		case dy > slop && dy > dx:
			s.reset(g)
		case dx > slop:
			if ok, _ := g.Capture(); !ok {
				// The losing claim is already dropped.
				s.state = StateIdle
				break
			}
			s.state = StateSwiping
			return SwipeEvent{Kind: SwipeStart, Position: e.Position, Delta: delta}, true
		}
	case pointer.Release:
		if s.state == StateIdle || s.pid != e.PointerID {
			break
		}
		swiping := s.state == StateSwiping
		s.estimator.Sample(e.Time, e.Position.X)
		est := s.estimator.Estimate()
		s.reset(g)
		if swiping {
			return SwipeEvent{
				Kind:     SwipeEnd,
				Position: e.Position,
				Delta:    e.Position.X - s.start.X,
				Velocity: est.Velocity / float32(time.Second/time.Millisecond),
			}, true
		}
	case pointer.Cancel:
		return s.Stop(g)
	}
	return SwipeEvent{}, false
}

// Stop abandons the current interaction and releases its claim. It
// reports SwipeCancel if the swipe held the capture.
func (s *Swipe) Stop(g *Gesture) (SwipeEvent, bool) {
	swiping := s.state == StateSwiping
	if s.state != StateIdle {
		s.reset(g)
	}
	if swiping {
		return SwipeEvent{Kind: SwipeCancel, Position: s.start}, true
	}
	return SwipeEvent{}, false
}

func (s *Swipe) reset(g *Gesture) {
	s.state = StateIdle
	g.Release()
}

func (s *Swipe) slop() float32 {
	if s.Slop > 0 {
		return s.Slop
	}
	return DefaultSlop
}

func (k SwipeKind) String() string {
	switch k {
	case SwipeStart:
		return "SwipeStart"
	case SwipeMove:
		return "SwipeMove"
	case SwipeEnd:
		return "SwipeEnd"
	case SwipeCancel:
		return "SwipeCancel"
	default:
		panic("invalid SwipeKind")
	}
}

func (s SwipeState) String() string {
	switch s {
	case StateIdle:
		return "StateIdle"
	case StatePending:
		return "StatePending"
	case StateSwiping:
		return "StateSwiping"
	default:
		panic("unreachable")
	}
}
