// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/splitpane/splitmenu/anim"
	"github.com/splitpane/splitmenu/config"
	"github.com/splitpane/splitmenu/gesture"
	"github.com/splitpane/splitmenu/io/keyboard"
	"github.com/splitpane/splitmenu/io/pointer"
	"github.com/splitpane/splitmenu/menu"
)

const frameInterval = time.Second / 60

type frameMsg time.Time

type keyboardMsg struct {
	err error
}

// model is the demo application.
type model struct {
	cfg    config.Config
	logger zerolog.Logger
	start  time.Time

	screen   *screen
	content  *element
	backdrop *element
	field    *field

	arb     *gesture.Arbiter
	blocker *gesture.Blocker
	tl      *anim.Timeline
	ctrl    *menu.Controller
	kb      *keyboard.Keyboard

	nav, tools     *menu.Menu
	navEl, toolsEl *element

	clicks  gesture.Click
	ticking bool
	status  string
}

func newModel(cfg config.Config, logger zerolog.Logger, tracer oteltrace.Tracer) (*model, error) {
	m := &model{
		cfg:      cfg,
		logger:   logger,
		start:    time.Now(),
		screen:   &screen{cols: 80, rows: 24},
		content:  newElement(),
		backdrop: newElement(),
		field:    new(field),
		arb:      &gesture.Arbiter{Logger: logger},
		tl:       new(anim.Timeline),
		ctrl:     &menu.Controller{Logger: logger},
		navEl:    newElement(),
		toolsEl:  newElement(),
	}
	m.blocker = m.arb.NewBlocker(gesture.BlockAll)
	m.kb = keyboard.New(m.field, m.tl, logger)
	m.clicks.Slop = cfg.SwipeSlop

	opts := menu.Options{
		Type:         menu.Kind(cfg.ResolvedMenuType()),
		Duration:     cfg.Duration.Duration,
		Instant:      !cfg.Animate,
		MaxEdgeStart: cfg.MaxEdgeStart,
		SwipeSlop:    cfg.SwipeSlop,
		Controller:   m.ctrl,
		Focus:        m.kb,
		Logger:       logger,
		Tracer:       tracer,
	}
	var err error
	opts.ID, opts.Side = "nav", menu.Start
	m.nav, err = menu.New(m.arb, m.tl, m.host(m.navEl), opts)
	if err != nil {
		return nil, err
	}
	opts.ID, opts.Side = "tools", menu.End
	m.tools, err = menu.New(m.arb, m.tl, m.host(m.toolsEl), opts)
	if err != nil {
		m.nav.Destroy()
		return nil, err
	}
	for _, mn := range []*menu.Menu{m.nav, m.tools} {
		id := mn.ID()
		mn.Opened().Subscribe(func(bool) { m.status = id + " opened" })
		mn.Closed().Subscribe(func(bool) { m.status = id + " closed" })
	}
	m.status = fmt.Sprintf("%s mode, %s menus", cfg.Mode, cfg.ResolvedMenuType())
	return m, nil
}

func (m *model) host(panel *element) *host {
	return &host{
		screen:   m.screen,
		panel:    panel,
		content:  m.content,
		backdrop: m.backdrop,
	}
}

func (m *model) destroy() {
	m.nav.Destroy()
	m.tools.Destroy()
	m.blocker.Destroy()
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.screen.cols, m.screen.rows = msg.Width, msg.Height
		m.nav.Resize()
		m.tools.Resize()
	case tea.KeyMsg:
		cmd, quit := m.key(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		m.mouse(msg)
	case frameMsg:
		m.ticking = false
		m.tl.Frame(time.Time(msg))
	case keyboardMsg:
		if msg.err != nil {
			m.status = "keyboard: " + msg.err.Error()
		} else {
			m.status = "keyboard closed"
		}
	}
	cmds = append(cmds, m.tick())
	return m, tea.Batch(cmds...)
}

// tick schedules the next frame while animations run.
func (m *model) tick() tea.Cmd {
	if m.ticking || !m.tl.Active() {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *model) key(msg tea.KeyMsg) (cmd tea.Cmd, quit bool) {
	switch msg.String() {
	case "q", "ctrl+c":
		return nil, true
	case "m":
		return m.toggle("nav"), false
	case "t":
		return m.toggle("tools"), false
	case "e":
		m.nav.Enable(!m.nav.IsEnabled())
		m.status = fmt.Sprintf("nav enabled: %v", m.nav.IsEnabled())
	case "s":
		m.nav.SwipeEnable(!m.nav.IsSwipeEnabled())
		m.status = fmt.Sprintf("nav swipe: %v", m.nav.IsSwipeEnabled())
	case "p":
		m.nav.SetPane(!m.nav.IsPane())
		m.status = fmt.Sprintf("nav pane: %v", m.nav.IsPane())
	case "r":
		m.screen.rtl = !m.screen.rtl
		m.nav.Resize()
		m.tools.Resize()
		m.status = fmt.Sprintf("rtl: %v", m.screen.rtl)
	case "b":
		var err error
		if m.blocker.Blocked() {
			err = m.blocker.Unblock()
		} else {
			err = m.blocker.Block()
		}
		if err != nil {
			m.logger.Error().Err(err).Msg("blocker")
		}
		m.status = fmt.Sprintf("swipes blocked: %v", m.blocker.Blocked())
	case "/":
		m.field.focused.Store(true)
		m.kb.Shown()
		m.status = "search focused"
	case "esc":
		// Stands in for the platform hiding its keyboard.
		m.kb.Hidden()
		m.status = "keyboard hidden"
	}
	return nil, false
}

// toggle toggles a menu. Opening a menu dismisses the search field;
// the returned command reports when the keyboard is gone.
func (m *model) toggle(id string) tea.Cmd {
	focused := m.kb.IsOpen()
	m.ctrl.Toggle(id)
	if !focused {
		return nil
	}
	kb, opts := m.kb, keyboard.PollOptions{
		Interval:  m.cfg.Keyboard.PollInterval.Duration,
		MaxChecks: m.cfg.Keyboard.MaxChecks,
	}
	return func() tea.Msg {
		return keyboardMsg{err: kb.WaitClosed(context.Background(), opts)}
	}
}

func (m *model) mouse(msg tea.MouseMsg) {
	e := pointer.Event{
		Source: pointer.Mouse,
		Time:   time.Since(m.start),
		Position: pointer.Point{
			X: float32(msg.X*cellPx + cellPx/2),
			Y: float32(msg.Y*cellPx + cellPx/2),
		},
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		e.Kind = pointer.Press
		e.Buttons = pointer.ButtonPrimary
	case tea.MouseActionMotion:
		e.Kind = pointer.Move
		if msg.Button == tea.MouseButtonLeft {
			e.Kind = pointer.Drag
			e.Buttons = pointer.ButtonPrimary
		}
	case tea.MouseActionRelease:
		e.Kind = pointer.Release
	default:
		return
	}
	m.nav.Event(e)
	m.tools.Event(e)
	if ce, ok := m.clicks.Update(e); ok && ce.Type == gesture.TypeClick {
		m.click(msg.X)
	}
}

// click dispatches a click at column x to the content or backdrop,
// unless it hits the open menu.
func (m *model) click(x int) {
	for _, mn := range []*menu.Menu{m.nav, m.tools} {
		if !mn.IsOpen() {
			continue
		}
		inside := x < menuCells
		if mn.IsRightSide() {
			inside = x >= m.screen.cols-menuCells
		}
		if inside {
			return
		}
	}
	if m.backdrop.hasClass(menu.ClassShowBackdrop) {
		m.backdrop.click()
		return
	}
	m.content.click()
}

var (
	contentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	menuStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24"))
	menuTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Background(lipgloss.Color("24"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styles        = []lipgloss.Style{contentStyle, dimStyle, menuStyle, menuTitle}
	contentSample = []string{
		"splitmenu",
		"",
		"Swipe from the left or right edge to open a menu.",
		"Press m or t to toggle the menus, q to quit.",
	}
)

const (
	styleContent uint8 = iota
	styleDim
	styleMenu
	styleTitle
)

type cell struct {
	r     rune
	style uint8
}

// grid is a frame of the screen being composed.
type grid [][]cell

func newGrid(cols, rows int) grid {
	g := make(grid, rows)
	for y := range g {
		g[y] = make([]cell, cols)
		for x := range g[y] {
			g[y][x] = cell{r: ' '}
		}
	}
	return g
}

func (g grid) text(x, y int, s string, style uint8) {
	if y < 0 || y >= len(g) {
		return
	}
	for _, r := range s {
		if x >= 0 && x < len(g[y]) {
			g[y][x] = cell{r: r, style: style}
		}
		x++
	}
}

func (g grid) fill(x0, x1 int, style uint8) {
	for y := range g {
		for x := max(x0, 0); x < min(x1, len(g[y])); x++ {
			g[y][x] = cell{r: ' ', style: style}
		}
	}
}

func (g grid) String() string {
	var b strings.Builder
	for y, row := range g {
		if y > 0 {
			b.WriteByte('\n')
		}
		for i := 0; i < len(row); {
			j := i
			var run strings.Builder
			for ; j < len(row) && row[j].style == row[i].style; j++ {
				run.WriteRune(row[j].r)
			}
			b.WriteString(styles[row[i].style].Render(run.String()))
			i = j
		}
	}
	return b.String()
}

func (m *model) View() string {
	cols, rows := m.screen.cols, m.screen.rows-1
	if cols <= 0 || rows <= 0 {
		return ""
	}
	g := newGrid(cols, rows)
	reveal := m.nav.Kind() == menu.KindReveal
	if reveal {
		m.drawMenus(g)
	}
	m.drawContent(g)
	if !reveal {
		m.drawMenus(g)
	}
	return g.String() + "\n" + statusStyle.Render(m.statusLine())
}

func (m *model) drawContent(g grid) {
	x0 := m.content.offset()
	if m.nav.IsPane() {
		if m.nav.IsRightSide() {
			x0 -= menuCells
		} else {
			x0 += menuCells
		}
	}
	style := styleContent
	if m.backdrop.hasClass(menu.ClassShowBackdrop) && m.backdrop.opacity > 0.2 {
		style = styleDim
	}
	cols := len(g[0])
	g.fill(x0, x0+cols, style)
	for i, line := range contentSample {
		g.text(x0+2, i+1, line, style)
	}
	search := "[ search ]"
	if m.field.FocusedTextInput() {
		search = "[ search_ ]"
	}
	g.text(x0+2, len(contentSample)+2, search, style)
}

func (m *model) drawMenus(g grid) {
	for _, p := range []struct {
		m  *menu.Menu
		el *element
	}{{m.nav, m.navEl}, {m.tools, m.toolsEl}} {
		if !p.el.hasClass(menu.ClassShowMenu) && !p.m.IsPane() {
			continue
		}
		x0 := p.el.offset()
		if p.m.IsRightSide() {
			x0 += len(g[0]) - menuCells
		}
		g.fill(x0, x0+menuCells, styleMenu)
		g.text(x0+2, 1, strings.ToUpper(p.m.ID()), styleTitle)
		for i, item := range []string{"Inbox", "Starred", "Archive", "Settings"} {
			g.text(x0+2, i+3, item, styleMenu)
		}
	}
}

func (m *model) statusLine() string {
	state := func(mn *menu.Menu) string {
		return strings.TrimPrefix(mn.State().String(), "State")
	}
	return fmt.Sprintf(" nav: %s  tools: %s  | %s", state(m.nav), state(m.tools), m.status)
}
