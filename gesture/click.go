// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"github.com/splitpane/splitmenu/io/pointer"
)

// Click detects clicks: a press and release of a primary pointer that
// did not travel beyond the slop in between. Clicks do not claim input
// from the Arbiter, and a pointer that travels far enough to swipe is
// no longer a click.
type Click struct {
	// Slop is the distance in pixels a pressed pointer may travel
	// and still click. Zero means DefaultSlop.
	Slop float32

	pressed bool
	pid     pointer.ID
	start   pointer.Point
}

// ClickEvent represents a click action, either a TypePress for the
// beginning of a click or a TypeClick for a completed click.
type ClickEvent struct {
	Type     ClickType
	Position pointer.Point
	Source   pointer.Source
}

type ClickType uint8

const (
	// TypePress is reported for the first pointer press.
	TypePress ClickType = iota
	// TypeClick is reported when a click action is complete.
	TypeClick
)

// Pressed reports whether a pointer is pressed and may still click.
func (c *Click) Pressed() bool {
	return c.pressed
}

// Update processes a pointer event and reports the resulting click
// event, if any.
func (c *Click) Update(e pointer.Event) (ClickEvent, bool) {
	switch e.Kind {
	case pointer.Press:
		if c.pressed || !e.Primary() {
			break
		}
		c.pressed = true
		c.pid = e.PointerID
		c.start = e.Position
		return ClickEvent{Type: TypePress, Position: e.Position, Source: e.Source}, true
	case pointer.Drag, pointer.Move:
		if !c.pressed || e.PointerID != c.pid {
			break
		}
		slop := c.Slop
		if slop <= 0 {
			slop = DefaultSlop
		}
		if dx, dy := c.start.Travel(e.Position); dx > slop || dy > slop {
			c.pressed = false
		}
	case pointer.Release:
		if !c.pressed || e.PointerID != c.pid {
			break
		}
		c.pressed = false
		return ClickEvent{Type: TypeClick, Position: e.Position, Source: e.Source}, true
	case pointer.Cancel:
		c.pressed = false
	}
	return ClickEvent{}, false
}

func (ct ClickType) String() string {
	switch ct {
	case TypePress:
		return "TypePress"
	case TypeClick:
		return "TypeClick"
	default:
		panic("invalid ClickType")
	}
}
