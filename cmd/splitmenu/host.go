// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"sync/atomic"

	"golang.org/x/exp/slices"

	"github.com/splitpane/splitmenu/menu"
)

// cellPx is the width of a terminal cell in the pixel units menus
// work in.
const cellPx = 8

// menuCells is the width of a menu in cells.
const menuCells = 28

// screen is the terminal window.
type screen struct {
	cols, rows int
	rtl        bool
}

// element is a drawable region of the screen.
type element struct {
	x       float32
	opacity float32
	classes map[string]bool
	clicks  []*func()
}

func newElement() *element {
	return &element{classes: make(map[string]bool)}
}

func (e *element) Translate(x float32) { e.x = x }
func (e *element) SetOpacity(o float32) { e.opacity = o }
func (e *element) SetClass(name string, on bool) { e.classes[name] = on }
func (e *element) hasClass(name string) bool { return e.classes[name] }
func (e *element) offset() int { return int(e.x / cellPx) }

func (e *element) OnClick(fn func()) func() {
	p := &fn
	e.clicks = append(e.clicks, p)
	return func() {
		for i, p2 := range e.clicks {
			if p2 == p {
				e.clicks = append(e.clicks[:i:i], e.clicks[i+1:]...)
				return
			}
		}
	}
}

func (e *element) click() {
	for _, fn := range slices.Clone(e.clicks) {
		(*fn)()
	}
}

// host adapts a menu panel of the screen to menu.Host. Menus share the
// content and backdrop.
type host struct {
	screen            *screen
	panel             *element
	content, backdrop *element
	layouts           int
}

func (h *host) Width() float32 { return menuCells * cellPx }
func (h *host) Viewport() float32 { return float32(h.screen.cols * cellPx) }
func (h *host) RTL() bool { return h.screen.rtl }
func (h *host) Layout() { h.layouts++ }
func (h *host) Menu() menu.Element { return h.panel }
func (h *host) Content() menu.Element { return h.content }
func (h *host) Backdrop() menu.Element { return h.backdrop }

// field is a search field standing in for a native text input.
type field struct {
	focused atomic.Bool
}

func (f *field) FocusedTextInput() bool { return f.focused.Load() }
func (f *field) Blur() { f.focused.Store(false) }
