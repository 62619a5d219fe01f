// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture arbitrates pointer input between competing gestures
and implements the swipe gesture used by menus.

Every gesture registers with the application's Arbiter through a
Gesture handle. A gesture asks for input with Start when a pointer goes
down, and claims it exclusively with Capture once it recognizes its
motion. Only the strongest pending claim captures; everybody else must
ask again on the next interaction. Blockers suppress named gestures and
scrolling while a surface, such as a modal, owns all input.
*/
package gesture

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/splitpane/splitmenu/internal/log"
)

// Options configure a Gesture.
type Options struct {
	// Name identifies the kind of gesture. Blockers disable gestures
	// by name. Required.
	Name string
	// Priority of the gesture's claims.
	Priority Priority
	// DisableScroll makes the gesture disable scrolling while it holds
	// the capture.
	DisableScroll bool
}

// BlockerOptions configure a Blocker.
type BlockerOptions struct {
	// Disable lists the gesture names to suppress.
	Disable []string
	// DisableScroll suppresses scrolling as well.
	DisableScroll bool
}

// BlockAll suppresses menu swipes and scrolling.
var BlockAll = BlockerOptions{
	Disable:       []string{NameMenuSwipe},
	DisableScroll: true,
}

// ErrDestroyed is returned by handles used after Destroy.
var ErrDestroyed = errors.New("gesture: handle was destroyed")

// Gesture is a registered gesture. Its methods claim and release
// input on behalf of one recognizer.
type Gesture struct {
	name          string
	id            ID
	priority      Priority
	disableScroll bool

	arb            *Arbiter
	logger         *zerolog.Logger
	scrollDisabled bool
}

// Blocker suppresses gestures and scrolling while blocked.
type Blocker struct {
	id            ID
	disable       []string
	disableScroll bool
	blocked       bool

	arb    *Arbiter
	logger *zerolog.Logger
}

// NewGesture registers a gesture with a.
func (a *Arbiter) NewGesture(opts Options) (*Gesture, error) {
	id, err := a.Register(opts.Name, opts.Priority, opts.DisableScroll)
	if err != nil {
		return nil, err
	}
	return &Gesture{
		name:          opts.Name,
		id:            id,
		priority:      opts.Priority,
		disableScroll: opts.DisableScroll,
		arb:           a,
		logger:        &a.Logger,
	}, nil
}

// NewBlocker returns an unblocked Blocker.
func (a *Arbiter) NewBlocker(opts BlockerOptions) *Blocker {
	return &Blocker{
		id:            newID(),
		disable:       append([]string(nil), opts.Disable...),
		disableScroll: opts.DisableScroll,
		arb:           a,
		logger:        &a.Logger,
	}
}

func (g *Gesture) ID() ID { return g.id }
func (g *Gesture) Name() string { return g.name }
func (g *Gesture) Priority() Priority { return g.priority }

func (g *Gesture) alive() bool {
	return log.Assert(g.logger, g.arb != nil, "gesture was destroyed")
}

// CanStart reports whether the gesture may start.
func (g *Gesture) CanStart() (bool, error) {
	if !g.alive() {
		return false, ErrDestroyed
	}
	return g.arb.CanStart(g.name), nil
}

// Start requests input for the gesture.
func (g *Gesture) Start() (bool, error) {
	if !g.alive() {
		return false, ErrDestroyed
	}
	return g.arb.Start(g.name, g.id, g.priority), nil
}

// Capture claims exclusive input for the gesture, disabling scrolling
// if the gesture was configured to.
func (g *Gesture) Capture() (bool, error) {
	if !g.alive() {
		return false, ErrDestroyed
	}
	captured := g.arb.Capture(g.name, g.id, g.priority)
	if captured && g.disableScroll {
		g.arb.DisableScroll(g.id)
		g.scrollDisabled = true
	}
	return captured, nil
}

// Release gives up any claim or capture held by the gesture.
func (g *Gesture) Release() error {
	if !g.alive() {
		return ErrDestroyed
	}
	g.arb.Release(g.id)
	if g.scrollDisabled {
		g.arb.EnableScroll(g.id)
		g.scrollDisabled = false
	}
	return nil
}

// Destroy releases the gesture and detaches it from its Arbiter.
// Destroying a destroyed gesture does nothing.
func (g *Gesture) Destroy() error {
	if g.arb == nil {
		return nil
	}
	if err := g.Release(); err != nil {
		return err
	}
	g.arb = nil
	return nil
}

func (b *Blocker) ID() ID { return b.id }

// Blocked reports whether Block is in effect.
func (b *Blocker) Blocked() bool {
	return b.blocked
}

func (b *Blocker) alive() bool {
	return log.Assert(b.logger, b.arb != nil, "blocker was destroyed")
}

// Block suppresses the configured gestures and scrolling.
func (b *Blocker) Block() error {
	if !b.alive() {
		return ErrDestroyed
	}
	for _, name := range b.disable {
		b.arb.DisableGesture(name, b.id)
	}
	if b.disableScroll {
		b.arb.DisableScroll(b.id)
	}
	b.blocked = true
	return nil
}

// Unblock lifts the suppression. Unblocking an unblocked Blocker
// is a no-op.
func (b *Blocker) Unblock() error {
	if !b.alive() {
		return ErrDestroyed
	}
	for _, name := range b.disable {
		b.arb.EnableGesture(name, b.id)
	}
	if b.disableScroll {
		b.arb.EnableScroll(b.id)
	}
	b.blocked = false
	return nil
}

// Destroy unblocks and detaches the Blocker from its Arbiter.
// Destroying a destroyed Blocker does nothing.
func (b *Blocker) Destroy() error {
	if b.arb == nil {
		return nil
	}
	if err := b.Unblock(); err != nil {
		return err
	}
	b.arb = nil
	return nil
}
