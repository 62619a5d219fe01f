// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pointer describes the raw pointer input consumed by the
swipe recognizers.

Platform glue converts native mouse and touch input into Events and
feeds them to a menu with Menu.Event. Positions are in window pixels,
with the origin in the top left corner and the axes extending right
and down. Under right-to-left layouts positions are not mirrored; menus
mirror horizontal travel themselves.
*/
package pointer

import (
	"strings"
	"time"
)

// Event is a pointer event.
type Event struct {
	Kind   Kind
	Source Source
	// PointerID tells apart simultaneous touches. A swipe follows the
	// pointer that pressed until its Release or Cancel.
	PointerID ID
	// Time is a monotonic timestamp with an arbitrary base. Release
	// velocities are derived from it.
	Time time.Duration
	// Buttons held during a mouse event.
	Buttons  Buttons
	Position Point
}

// Point is a position in window pixels.
type Point struct {
	X, Y float32
}

type ID uint16

// Kind of an Event.
type Kind uint8

// Source of an Event.
type Source uint8

// Buttons is a set of mouse buttons.
type Buttons uint8

const (
	// Press of a pointer.
	Press Kind = iota
	// Move of a pointer without buttons held.
	Move
	// Drag of a pressed pointer.
	Drag
	// Release of a pointer.
	Release
	// Cancel is sent when the system takes the pointer away, for
	// example when the window loses focus mid swipe.
	Cancel
)

const (
	Mouse Source = iota
	Touch
)

const (
	// ButtonPrimary is the left button for a right-handed user.
	ButtonPrimary Buttons = 1 << iota
	ButtonSecondary
	ButtonTertiary
)

var buttonNames = [...]string{"ButtonPrimary", "ButtonSecondary", "ButtonTertiary"}

// Primary reports whether the event comes from a touch or from a mouse
// with its primary button held. Only primary pointers swipe.
func (e Event) Primary() bool {
	return e.Source == Touch || e.Buttons.Contain(ButtonPrimary)
}

// Travel returns the absolute horizontal and vertical distances from
// p to q.
func (p Point) Travel(q Point) (dx, dy float32) {
	dx, dy = q.X-p.X, q.Y-p.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx, dy
}

func (k Kind) String() string {
	switch k {
	case Press:
		return "Press"
	case Move:
		return "Move"
	case Drag:
		return "Drag"
	case Release:
		return "Release"
	case Cancel:
		return "Cancel"
	default:
		panic("invalid Kind")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	default:
		panic("invalid Source")
	}
}

// Contain reports whether b holds all of buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var names []string
	for i, name := range buttonNames {
		if b.Contain(1 << i) {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}
