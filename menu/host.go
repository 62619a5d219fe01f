// SPDX-License-Identifier: Unlicense OR MIT

package menu

// Host is the view a menu animates. Widths are in pixels.
type Host interface {
	// Width returns the rendered width of the menu.
	Width() float32
	// Viewport returns the width of the window the menu lives in.
	Viewport() float32
	// RTL reports whether the reading direction is right to left.
	RTL() bool
	// Layout forces a synchronous layout pass.
	Layout()
	// Menu is the menu panel.
	Menu() Element
	// Content is the main content beside the menu.
	Content() Element
	// Backdrop covers the content while the menu is open.
	Backdrop() Element
}

// Element is a visual node of a Host.
type Element interface {
	// Translate moves the element horizontally by x pixels from its
	// layout position.
	Translate(x float32)
	SetOpacity(o float32)
	SetClass(name string, on bool)
	// OnClick calls fn for clicks on the element, before its
	// descendants see them. The returned function removes fn.
	OnClick(fn func()) (remove func())
}

// FocusDismisser removes focus from text inputs, which hides the
// virtual keyboard.
type FocusDismisser interface {
	DismissActiveFocus()
}

// Element classes set by menus.
const (
	ClassShowMenu     = "show-menu"
	ClassShowBackdrop = "show-backdrop"
	ClassContentOpen  = "menu-content-open"
	ClassEnabled      = "menu-enabled"
	// ClassTypePrefix is followed by the Kind of the menu.
	ClassTypePrefix = "menu-type-"
)
