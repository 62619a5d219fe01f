// SPDX-License-Identifier: Unlicense OR MIT

package menu

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Controller tracks the menus of an application. At most one menu per
// side is enabled at a time.
type Controller struct {
	Logger zerolog.Logger

	menus []*Menu
}

// Register adds m to the controller. Menus register themselves when
// created with a Controller.
func (c *Controller) Register(m *Menu) error {
	for _, m2 := range c.menus {
		if m2 == m {
			return nil
		}
		if m2.id == m.id {
			return fmt.Errorf("menu: duplicate id %q", m.id)
		}
	}
	c.menus = append(c.menus, m)
	return nil
}

// Unregister removes m from the controller.
func (c *Controller) Unregister(m *Menu) {
	for i, m2 := range c.menus {
		if m2 == m {
			c.menus = append(c.menus[:i:i], c.menus[i+1:]...)
			return
		}
	}
}

// Menus returns the registered menus in registration order.
func (c *Controller) Menus() []*Menu {
	return append([]*Menu(nil), c.menus...)
}

// Get returns the menu with the given id, or nil.
func (c *Controller) Get(id string) *Menu {
	for _, m := range c.menus {
		if m.id == id {
			return m
		}
	}
	return nil
}

// EnabledOnSide returns an enabled menu other than except attached
// to the right edge, if right is set, or to the left edge.
func (c *Controller) EnabledOnSide(right bool, except *Menu) *Menu {
	for _, m := range c.menus {
		if m != except && m.enabled && m.IsRightSide() == right {
			return m
		}
	}
	return nil
}

// SetActive disables the other menus on the side of m.
func (c *Controller) SetActive(m *Menu) {
	right := m.IsRightSide()
	for _, m2 := range c.Menus() {
		if m2 != m && m2.enabled && m2.IsRightSide() == right {
			c.Logger.Debug().Str("menu", m2.id).Str("active", m.id).Msg("disabling menu")
			m2.Enable(false)
		}
	}
}

// Open opens the menu with the given id, closing any other open menu
// instantly. It resolves to false if no such menu is registered or a
// menu is animating.
func (c *Controller) Open(id string) <-chan bool {
	m := c.Get(id)
	if m == nil || c.IsAnimating() {
		return resolved(false)
	}
	if open := c.openMenu(); open != nil && open != m {
		open.SetOpen(false, false)
	}
	return m.Open()
}

// Close closes whichever menu is open. It resolves to false once the
// menu closed, or right away if none is open.
func (c *Controller) Close() <-chan bool {
	if m := c.openMenu(); m != nil {
		return m.Close()
	}
	return resolved(false)
}

// Toggle opens the menu with the given id if it is closed, and closes
// it if it is open.
func (c *Controller) Toggle(id string) <-chan bool {
	m := c.Get(id)
	if m == nil {
		return resolved(false)
	}
	if m.open {
		return m.Close()
	}
	return c.Open(id)
}

// IsOpen reports whether any menu is open.
func (c *Controller) IsOpen() bool {
	return c.openMenu() != nil
}

// IsAnimating reports whether any menu is animating.
func (c *Controller) IsAnimating() bool {
	for _, m := range c.menus {
		if m.animating {
			return true
		}
	}
	return false
}

func (c *Controller) openMenu() *Menu {
	for _, m := range c.menus {
		if m.open {
			return m
		}
	}
	return nil
}

func resolved(v bool) <-chan bool {
	res := make(chan bool, 1)
	res <- v
	return res
}
