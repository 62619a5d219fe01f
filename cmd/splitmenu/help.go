// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainUsage = `The splitmenu command runs a terminal demo of side menus.

Usage:

	splitmenu [flags]

The demo shows a navigation menu on the start side and a tools menu on
the end side. Drag from the edge of the window with the mouse to swipe
a menu open, or use the keys:

	m	toggle the navigation menu
	t	toggle the tools menu
	e	enable or disable the navigation menu
	s	enable or disable swiping the navigation menu
	p	show the navigation menu as a split pane
	r	switch the reading direction
	b	block or unblock menu swipes
	/	focus the search field
	esc	hide the keyboard; the search field loses focus shortly after
	q	quit

Flags:

	-config file
		read the menu configuration from the TOML file.
	-mode mode
		override the platform mode (ios, md, wp).
	-type type
		override the menu type (reveal, overlay, push).
	-log file
		append logs to file. The level is read from SPLITMENU_LOG_LEVEL.

Spans of menu transitions are exported to OTEL_EXPORTER_OTLP_ENDPOINT
when set, and logged at debug level otherwise.
`
