// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/splitpane/splitmenu/config"
	"github.com/splitpane/splitmenu/menu"
)

type testApp struct {
	*model
	t   *testing.T
	now time.Time
}

func newTestApp(t *testing.T, cfg config.Config) *testApp {
	t.Helper()
	m, err := newModel(cfg, zerolog.Nop(), noop.NewTracerProvider().Tracer("test"))
	require.NoError(t, err)
	t.Cleanup(m.destroy)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return &testApp{model: m, t: t, now: time.Unix(1000, 0)}
}

func (a *testApp) press(key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := a.Update(msg)
	return cmd
}

// settle delivers frames until no animation is left.
func (a *testApp) settle() {
	a.t.Helper()
	for i := 0; a.tl.Active(); i++ {
		require.Less(a.t, i, 50, "animations did not settle")
		a.now = a.now.Add(100 * time.Millisecond)
		a.Update(frameMsg(a.now))
	}
}

func (a *testApp) mouse(action tea.MouseAction, col int) {
	a.Update(tea.MouseMsg{X: col, Y: 5, Action: action, Button: tea.MouseButtonLeft})
}

func TestToggleKeys(t *testing.T) {
	a := newTestApp(t, config.Default())
	assert.Equal(t, menu.KindOverlay, a.nav.Kind())

	a.press("m")
	assert.True(t, a.nav.IsAnimating())
	a.settle()
	assert.True(t, a.nav.IsOpen())
	assert.Equal(t, "nav opened", a.status)
	assert.Contains(t, a.View(), "NAV")

	// Another menu opens only once the first is closed.
	a.press("t")
	a.settle()
	assert.False(t, a.nav.IsOpen())
	assert.True(t, a.tools.IsOpen())

	a.press("t")
	a.settle()
	assert.False(t, a.ctrl.IsOpen())
	assert.Equal(t, "tools closed", a.status)
}

func TestQuit(t *testing.T) {
	a := newTestApp(t, config.Default())
	for _, key := range []string{"q", "ctrl+c"} {
		cmd := a.press(key)
		require.NotNil(t, cmd, key)
		assert.Equal(t, tea.QuitMsg{}, cmd(), key)
	}
}

func TestInstantConfig(t *testing.T) {
	cfg, err := config.Parse(`
mode = "ios"
animate = false
`)
	require.NoError(t, err)
	a := newTestApp(t, cfg)
	assert.Equal(t, menu.KindReveal, a.nav.Kind())

	a.press("m")
	a.settle()
	assert.True(t, a.nav.IsOpen())
	assert.Equal(t, menuCells, a.content.offset())
}

func TestPaneKey(t *testing.T) {
	a := newTestApp(t, config.Default())
	a.press("p")
	assert.True(t, a.nav.IsPane())
	assert.False(t, a.nav.CanOpen())

	a.press("m")
	a.settle()
	assert.False(t, a.nav.IsOpen())
	assert.Contains(t, a.View(), "NAV")
}

func TestEnableKey(t *testing.T) {
	a := newTestApp(t, config.Default())
	a.press("m")
	a.settle()
	require.True(t, a.nav.IsOpen())

	a.press("e")
	assert.False(t, a.nav.IsEnabled())
	assert.False(t, a.nav.IsOpen())
	assert.False(t, a.navEl.hasClass(menu.ClassShowMenu))
}

func TestSwipeAndDismiss(t *testing.T) {
	a := newTestApp(t, config.Default())

	a.mouse(tea.MouseActionPress, 0)
	for col := 2; col <= 20; col += 2 {
		a.mouse(tea.MouseActionMotion, col)
	}
	assert.Equal(t, menu.StateSwipingUncommitted, a.nav.State())
	a.mouse(tea.MouseActionRelease, 20)
	a.settle()
	require.True(t, a.nav.IsOpen())
	assert.True(t, a.backdrop.hasClass(menu.ClassShowBackdrop))

	// A click beside the menu lands on the backdrop.
	a.mouse(tea.MouseActionPress, 60)
	a.mouse(tea.MouseActionRelease, 60)
	a.settle()
	assert.False(t, a.nav.IsOpen())
	assert.False(t, a.backdrop.hasClass(menu.ClassShowBackdrop))
}

func TestClickInsideMenu(t *testing.T) {
	a := newTestApp(t, config.Default())
	a.press("m")
	a.settle()

	a.mouse(tea.MouseActionPress, 5)
	a.mouse(tea.MouseActionRelease, 5)
	a.settle()
	assert.True(t, a.nav.IsOpen())
}

func TestBlockKey(t *testing.T) {
	a := newTestApp(t, config.Default())
	a.press("b")
	require.True(t, a.blocker.Blocked())

	a.mouse(tea.MouseActionPress, 0)
	for col := 2; col <= 20; col += 2 {
		a.mouse(tea.MouseActionMotion, col)
	}
	a.mouse(tea.MouseActionRelease, 20)
	a.settle()
	assert.False(t, a.nav.IsOpen())

	a.press("b")
	assert.False(t, a.blocker.Blocked())
}

func TestRTLKey(t *testing.T) {
	a := newTestApp(t, config.Default())
	a.press("r")
	assert.True(t, a.nav.IsRightSide())
	assert.False(t, a.tools.IsRightSide())

	// Swipes now open the nav menu from the right edge.
	a.mouse(tea.MouseActionPress, 99)
	for col := 97; col >= 79; col -= 2 {
		a.mouse(tea.MouseActionMotion, col)
	}
	a.mouse(tea.MouseActionRelease, 79)
	a.settle()
	assert.True(t, a.nav.IsOpen())
	assert.False(t, a.tools.IsOpen())
}

func TestToggleDismissesKeyboard(t *testing.T) {
	a := newTestApp(t, config.Default())
	a.press("/")
	require.True(t, a.kb.IsOpen())

	cmd := a.toggle("nav")
	assert.False(t, a.kb.IsOpen())
	require.NotNil(t, cmd)
	assert.Equal(t, keyboardMsg{}, cmd())

	a.Update(keyboardMsg{})
	assert.Equal(t, "keyboard closed", a.status)

	// Without focus there is nothing to wait for.
	a.settle()
	assert.Nil(t, a.toggle("nav"))
}

func TestFrameTicking(t *testing.T) {
	a := newTestApp(t, config.Default())
	assert.Nil(t, a.tick())

	a.press("m")
	assert.True(t, a.ticking)
	assert.Nil(t, a.tick(), "one frame pending at a time")
	a.settle()
	assert.False(t, a.ticking)
}

func TestEscapeHidesKeyboard(t *testing.T) {
	a := newTestApp(t, config.Default())
	a.press("/")
	a.press("esc")
	assert.True(t, a.kb.IsOpen(), "blur is debounced")
	assert.True(t, a.ticking)
	a.settle()
	assert.False(t, a.kb.IsOpen())

	// Focusing again before the debounce ends keeps the focus.
	a.press("/")
	a.press("esc")
	a.press("/")
	a.settle()
	assert.True(t, a.kb.IsOpen())
}
