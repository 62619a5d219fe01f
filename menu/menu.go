// SPDX-License-Identifier: Unlicense OR MIT

/*
Package menu implements side menus that open and close with animated
transitions, driven by programmatic requests or by swipes.

A Menu is a small state machine. It is closed or open while at rest,
and animating in between. Requests made while it animates are not
queued: they resolve right away to the current state. Swipes scrub the
transition and commit it when the pointer is released.

Menus share the gesture.Arbiter of the application with every other
gesture, so a menu swipe never runs at the same time as a competing
drag. A Controller keeps track of the menus of an application and
makes sure only one menu per side is enabled.

Menus, their Types and the anim.Timeline driving them must be used from
a single goroutine, usually the one running the event loop.
*/
package menu

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/splitpane/splitmenu/anim"
	"github.com/splitpane/splitmenu/gesture"
	"github.com/splitpane/splitmenu/internal/log"
	"github.com/splitpane/splitmenu/io/event"
	"github.com/splitpane/splitmenu/io/pointer"
)

// Options configure a Menu.
type Options struct {
	// ID identifies the menu in its Controller. A random id is used
	// if empty.
	ID   string
	Side Side
	// Type selects the transition. KindOverlay is used if empty.
	Type Kind
	// Disabled creates the menu disabled. Menus are also created
	// disabled when another enabled menu occupies their side.
	Disabled      bool
	SwipeDisabled bool
	// Duration of a full transition. Zero means DefaultDuration.
	Duration time.Duration
	// Instant disables animations.
	Instant bool
	// MaxEdgeStart is the distance in pixels from the edge of the
	// window within which a swipe may open the menu. Zero means
	// DefaultMaxEdgeStart.
	MaxEdgeStart float32
	// SwipeSlop is passed to the swipe recognizer.
	SwipeSlop float32

	Controller *Controller
	Focus      FocusDismisser
	Logger     zerolog.Logger
	// Tracer records a span per transition. The global otel tracer
	// is used if nil.
	Tracer trace.Tracer
}

// Menu is a side menu.
type Menu struct {
	id           string
	side         Side
	kind         Kind
	host         Host
	typ          Type
	ctrl         *Controller
	focus        FocusDismisser
	logger       zerolog.Logger
	tracer       trace.Tracer
	swipe        *swipeGesture
	maxEdgeStart float32

	open         bool
	animating    bool
	swiping      bool
	target       bool
	enabled      bool
	swipeEnabled bool
	pane         bool
	destroyed    bool

	removeClicks []func()
	pending      []chan bool
	span         trace.Span

	opened  event.Feed[bool]
	closed  event.Feed[bool]
	dragged event.Feed[float32]
}

// State of a Menu.
type State uint8

const (
	StateClosed State = iota
	StateOpen
	StateAnimatingToOpen
	StateAnimatingToClosed
	// StateSwipingUncommitted is reported while a swipe scrubs the
	// transition.
	StateSwipingUncommitted
)

// DefaultMaxEdgeStart is the default of Options.MaxEdgeStart.
const DefaultMaxEdgeStart = 50

var (
	// ErrCannotSwipe is returned by SwipeBeforeStart when the menu
	// cannot be swiped.
	ErrCannotSwipe = errors.New("menu: cannot swipe")
	// ErrNotAnimating is returned by swipe methods called outside a
	// swipe.
	ErrNotAnimating = errors.New("menu: not animating")
)

const tracerName = "github.com/splitpane/splitmenu/menu"

// New creates a menu animating host. Its swipe gesture is registered
// with arb, and its animations run on tl.
func New(arb *gesture.Arbiter, tl *anim.Timeline, host Host, opts Options) (*Menu, error) {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Type == "" {
		opts.Type = KindOverlay
	}
	if opts.Duration == 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Instant {
		opts.Duration = 0
	}
	if opts.MaxEdgeStart == 0 {
		opts.MaxEdgeStart = DefaultMaxEdgeStart
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(tracerName)
	}
	m := &Menu{
		id:           opts.ID,
		side:         opts.Side,
		kind:         opts.Type,
		host:         host,
		ctrl:         opts.Controller,
		focus:        opts.Focus,
		tracer:       opts.Tracer,
		maxEdgeStart: opts.MaxEdgeStart,
		swipeEnabled: !opts.SwipeDisabled,
	}
	m.logger = opts.Logger.With().Str("menu", m.id).Stringer("side", m.side).Logger()
	typ, err := newType(opts.Type, host, tl, opts.Duration, m.IsRightSide)
	if err != nil {
		return nil, err
	}
	m.typ = typ
	m.swipe, err = newSwipeGesture(m, arb, opts.SwipeSlop)
	if err != nil {
		typ.Destroy()
		return nil, err
	}
	host.Menu().SetClass(ClassTypePrefix+string(m.kind), true)

	enabled := !opts.Disabled
	if enabled && m.ctrl != nil {
		enabled = m.ctrl.EnabledOnSide(m.IsRightSide(), nil) == nil
	}
	if m.ctrl != nil {
		if err := m.ctrl.Register(m); err != nil {
			m.swipe.destroy()
			typ.Destroy()
			return nil, err
		}
	}
	m.Enable(enabled)
	return m, nil
}

func (m *Menu) ID() string { return m.id }
func (m *Menu) Side() Side { return m.side }
func (m *Menu) Kind() Kind { return m.kind }

// IsRightSide reports whether the menu is attached to the right edge
// of the window.
func (m *Menu) IsRightSide() bool {
	return m.side.IsRight(m.host.RTL())
}

// IsOpen reports the committed state of the menu. It is only
// meaningful while the menu is not animating.
func (m *Menu) IsOpen() bool { return m.open }

func (m *Menu) IsAnimating() bool { return m.animating }

func (m *Menu) IsEnabled() bool { return m.enabled }

func (m *Menu) IsSwipeEnabled() bool { return m.swipeEnabled }

// State returns the current state.
func (m *Menu) State() State {
	switch {
	case m.swiping:
		return StateSwipingUncommitted
	case m.animating && m.target:
		return StateAnimatingToOpen
	case m.animating:
		return StateAnimatingToClosed
	case m.open:
		return StateOpen
	default:
		return StateClosed
	}
}

// Opened notifies the completion of every transition to open.
func (m *Menu) Opened() *event.Feed[bool] { return &m.opened }

// Closed notifies the completion of every transition to closed.
func (m *Menu) Closed() *event.Feed[bool] { return &m.closed }

// Dragged notifies the openness of the menu during swipes.
func (m *Menu) Dragged() *event.Feed[float32] { return &m.dragged }

// CanOpen reports whether the menu is enabled and not part of a split
// pane.
func (m *Menu) CanOpen() bool {
	return m.enabled && !m.pane && !m.destroyed
}

// CanSwipe reports whether a swipe may start.
func (m *Menu) CanSwipe() bool {
	return m.swipeEnabled && !m.animating && m.CanOpen()
}

// Open is short for SetOpen(true, true).
func (m *Menu) Open() <-chan bool { return m.SetOpen(true, true) }

// Close is short for SetOpen(false, true).
func (m *Menu) Close() <-chan bool { return m.SetOpen(false, true) }

// Toggle opens a closed menu and closes an open menu.
func (m *Menu) Toggle() <-chan bool { return m.SetOpen(!m.open, true) }

// SetOpen requests a transition to the open or closed state. The
// returned channel receives the state of the menu once the transition
// settles.
//
// Requests for the current state, requests made while animating and
// requests to a menu that cannot open resolve immediately to the
// current state.
func (m *Menu) SetOpen(open, animated bool) <-chan bool {
	res := make(chan bool, 1)
	if open == m.open || !m.CanOpen() || m.animating {
		res <- m.open
		return res
	}
	m.before("request")
	m.target = open
	m.pending = append(m.pending, res)
	m.typ.SetOpen(open, animated, m.after)
	return res
}

// SwipeBeforeStart prepares a swipe. It fails unless CanSwipe.
func (m *Menu) SwipeBeforeStart() error {
	if !log.Assert(&m.logger, m.CanSwipe(), "menu cannot swipe") {
		return ErrCannotSwipe
	}
	m.before("swipe")
	m.target = m.open
	return nil
}

// SwipeStart starts scrubbing the transition.
func (m *Menu) SwipeStart() error {
	if !m.assertAnimating() {
		return ErrNotAnimating
	}
	m.swiping = true
	m.typ.SetProgressStart(m.open)
	return nil
}

// SwipeProgress moves the menu to the openness pos, in [0, 1].
func (m *Menu) SwipeProgress(pos float32) error {
	if !m.assertAnimating() {
		return ErrNotAnimating
	}
	m.typ.SetProgressStep(pos)
	if m.dragged.Observed() {
		m.dragged.Emit(pos)
	}
	return nil
}

// SwipeEnd commits a swipe released at the openness pos with velocity
// in pixels per millisecond. completeLeft is the verdict of the swipe
// recognizer for a drag toward the right, away from the left edge, and
// completeRight for a drag toward the left. The menu picks the verdict
// matching its side and reading direction.
func (m *Menu) SwipeEnd(completeLeft, completeRight bool, pos, velocity float32) error {
	if !m.assertAnimating() {
		return ErrNotAnimating
	}
	if !m.swiping {
		m.typ.SetProgressStart(m.open)
	}
	opening := !m.open
	flip := m.flip()
	var complete bool
	switch {
	case opening && flip, !opening && !flip:
		complete = completeRight
	default:
		complete = completeLeft
	}
	m.swiping = false
	m.target = opening == complete
	m.logger.Debug().Bool("complete", complete).Float32("velocity", velocity).Msg("swipe end")
	m.typ.SetProgressEnd(complete, pos, velocity, m.after)
	return nil
}

// flip reports whether the menu is attached to the trailing edge of
// the reading direction.
func (m *Menu) flip() bool {
	return m.IsRightSide() != m.host.RTL()
}

func (m *Menu) assertAnimating() bool {
	return log.Assert(&m.logger, m.animating, "menu is not animating")
}

func (m *Menu) before(source string) {
	log.Assert(&m.logger, !m.animating, "transition started while animating")
	m.host.Menu().SetClass(ClassShowMenu, true)
	m.host.Backdrop().SetClass(ClassShowBackdrop, true)
	m.host.Layout()
	if m.focus != nil {
		m.focus.DismissActiveFocus()
	}
	m.animating = true
	m.startSpan(source)
}

func (m *Menu) after(open bool) {
	log.Assert(&m.logger, m.animating, "transition ended while not animating")
	m.open = open
	m.animating = false
	m.swiping = false
	m.unlistenClicks()
	if open {
		m.host.Content().SetClass(ClassContentOpen, true)
		m.removeClicks = append(m.removeClicks,
			m.host.Content().OnClick(m.dismiss),
			m.host.Backdrop().OnClick(m.dismiss),
		)
	} else {
		m.host.Content().SetClass(ClassContentOpen, false)
		m.host.Menu().SetClass(ClassShowMenu, false)
		m.host.Backdrop().SetClass(ClassShowBackdrop, false)
	}
	m.endSpan(open)
	m.resolve()
	m.logger.Debug().Bool("open", open).Msg("transition settled")
	if open {
		m.opened.Emit(true)
	} else {
		m.closed.Emit(true)
	}
}

// dismiss closes the menu on clicks outside of it.
func (m *Menu) dismiss() {
	if m.ctrl != nil {
		m.ctrl.Close()
		return
	}
	m.Close()
}

func (m *Menu) unlistenClicks() {
	for _, remove := range m.removeClicks {
		remove()
	}
	m.removeClicks = nil
}

func (m *Menu) resolve() {
	pending := m.pending
	m.pending = nil
	for _, res := range pending {
		res <- m.open
	}
}

// forceClose closes the menu without animation, interrupting any
// transition in progress.
func (m *Menu) forceClose() {
	if !log.Assert(&m.logger, m.open || m.animating, "menu cannot be closed") {
		return
	}
	if !m.animating {
		m.startSpan("force")
	}
	m.animating = true
	m.swiping = false
	m.target = false
	m.typ.SetOpen(false, false, m.after)
}

// Enable enables or disables the menu. Disabling an open menu closes
// it instantly. Enabling a menu disables the other menus on its side.
func (m *Menu) Enable(enable bool) {
	m.enabled = enable
	m.host.Menu().SetClass(ClassEnabled, enable)
	m.updateState()
}

// SwipeEnable enables or disables opening and closing by swipes.
func (m *Menu) SwipeEnable(enable bool) {
	m.swipeEnabled = enable
	m.updateState()
}

// SetPane reports whether the menu is shown as a pane of a split view,
// where it cannot open or close.
func (m *Menu) SetPane(pane bool) {
	m.pane = pane
	m.updateState()
}

// IsPane reports the value of the last SetPane.
func (m *Menu) IsPane() bool { return m.pane }

func (m *Menu) updateState() {
	if m.destroyed {
		return
	}
	canOpen := m.CanOpen()
	if canOpen && m.swipeEnabled {
		m.swipe.listen()
	} else {
		m.swipe.unlisten()
	}
	if !canOpen && (m.open || m.animating) {
		m.forceClose()
	}
	if m.enabled && m.ctrl != nil {
		m.ctrl.SetActive(m)
	}
}

// Resize adapts the menu to a change of its width or of the reading
// direction.
func (m *Menu) Resize() {
	if m.destroyed {
		return
	}
	m.typ.Resize()
}

// Event feeds a pointer event to the swipe gesture of the menu.
func (m *Menu) Event(e pointer.Event) {
	if m.destroyed {
		return
	}
	m.swipe.event(e)
}

// Destroy unregisters the menu and releases its resources. Pending
// SetOpen results resolve to the current state.
func (m *Menu) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	if m.ctrl != nil {
		m.ctrl.Unregister(m)
	}
	m.swipe.destroy()
	m.unlistenClicks()
	m.typ.Destroy()
	m.animating = false
	m.swiping = false
	if m.span != nil {
		m.span.SetAttributes(attribute.Bool("menu.destroyed", true))
		m.endSpan(m.open)
	}
	m.resolve()
}

func (m *Menu) startSpan(source string) {
	_, m.span = m.tracer.Start(context.Background(), "menu.transition",
		trace.WithAttributes(
			attribute.String("menu.id", m.id),
			attribute.String("menu.side", m.side.String()),
			attribute.String("menu.source", source),
		),
	)
}

func (m *Menu) endSpan(open bool) {
	if m.span == nil {
		return
	}
	m.span.SetAttributes(attribute.Bool("menu.open", open))
	m.span.End()
	m.span = nil
}

func (s State) String() string {
	switch s {
	case StateClosed:
		return "StateClosed"
	case StateOpen:
		return "StateOpen"
	case StateAnimatingToOpen:
		return "StateAnimatingToOpen"
	case StateAnimatingToClosed:
		return "StateAnimatingToClosed"
	case StateSwipingUncommitted:
		return "StateSwipingUncommitted"
	default:
		panic("invalid State")
	}
}
