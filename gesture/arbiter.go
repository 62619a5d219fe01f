// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Arbiter decides which of several competing gestures owns pointer
// input. At most one gesture holds the capture at a time, and gestures
// and scrolling can be suppressed by any number of Blockers.
//
// An application shares one Arbiter between all its gestures; mutual
// exclusion does not hold across Arbiters. The zero value is ready to
// use. Arbiter is safe for concurrent use.
type Arbiter struct {
	// Logger receives diagnostics about misused handles.
	Logger zerolog.Logger

	mu sync.Mutex
	// pending tracks started but unresolved claims.
	pending map[ID]claim
	// seq orders claims by their first Start.
	seq uint64
	// disabled maps gesture names to the blockers suppressing them.
	disabled map[string]map[ID]struct{}
	// scroll is the set of ids that disabled scrolling.
	scroll   map[ID]struct{}
	captured ID
}

// ID identifies a registered gesture or blocker. IDs are unique within
// the process and never reused. The zero ID is never assigned.
type ID uint64

// Priority orders competing gestures. Higher values win.
type Priority int

type claim struct {
	priority Priority
	seq      uint64
}

// Priority tiers. They carry no meaning beyond their value.
const (
	PriorityMinimum      Priority = -10000
	PriorityVeryLow      Priority = -20
	PriorityLow          Priority = -10
	PriorityNormal       Priority = 0
	PriorityHigh         Priority = 10
	PriorityVeryHigh     Priority = 20
	PriorityVeryVeryHigh Priority = 30

	PriorityMenuSwipe = PriorityHigh
)

// NameMenuSwipe is the gesture name of menu swipes.
const NameMenuSwipe = "menu-swipe"

// ErrEmptyName is returned when registering a gesture without a name.
var ErrEmptyName = errors.New("gesture: empty gesture name")

var lastID atomic.Uint64

func newID() ID {
	return ID(lastID.Add(1))
}

// Register allocates an id for the gesture name.
func (a *Arbiter) Register(name string, priority Priority, disableScroll bool) (ID, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	id := newID()
	a.Logger.Debug().Str("gesture", name).Uint64("id", uint64(id)).
		Int("priority", int(priority)).Bool("disable_scroll", disableScroll).
		Msg("register")
	return id, nil
}

func (a *Arbiter) init() {
	if a.pending == nil {
		a.pending = make(map[ID]claim)
		a.disabled = make(map[string]map[ID]struct{})
		a.scroll = make(map[ID]struct{})
	}
}

// Start records a pending claim for id. It fails if a gesture is
// captured or name is disabled, in which case any stale claim of id is
// dropped.
func (a *Arbiter) Start(name string, id ID, priority Priority) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.start(name, id, priority)
}

func (a *Arbiter) start(name string, id ID, priority Priority) bool {
	a.init()
	if !a.canStart(name) {
		delete(a.pending, id)
		return false
	}
	c, ok := a.pending[id]
	if !ok {
		a.seq++
		c.seq = a.seq
	}
	c.priority = priority
	a.pending[id] = c
	return true
}

// Capture starts id and grants it exclusive input if its claim wins
// among the pending claims. The winner is the claim with the highest
// priority; equal priorities go to the claim started first. Capturing
// discards every other pending claim. A losing claim is dropped and may
// be requested again later.
func (a *Arbiter) Capture(name string, id ID, priority Priority) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.start(name, id, priority) {
		return false
	}
	if a.winner() != id {
		delete(a.pending, id)
		return false
	}
	a.captured = id
	clear(a.pending)
	return true
}

// winner returns the id of the strongest pending claim. Claims below
// PriorityMinimum never win.
func (a *Arbiter) winner() ID {
	var best ID
	var bestClaim claim
	for id, c := range a.pending {
		if best == 0 || c.priority > bestClaim.priority ||
			c.priority == bestClaim.priority && c.seq < bestClaim.seq {
			best, bestClaim = id, c
		}
	}
	if bestClaim.priority < PriorityMinimum {
		return 0
	}
	return best
}

// Release drops any claim or capture held by id.
func (a *Arbiter) Release(id ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.pending, id)
	if a.captured != 0 && a.captured == id {
		a.captured = 0
	}
}

// DisableGesture adds id to the blockers of the gesture name.
func (a *Arbiter) DisableGesture(name string, id ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.init()
	set, ok := a.disabled[name]
	if !ok {
		set = make(map[ID]struct{})
		a.disabled[name] = set
	}
	set[id] = struct{}{}
}

// EnableGesture removes id from the blockers of the gesture name.
func (a *Arbiter) EnableGesture(name string, id ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if set, ok := a.disabled[name]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(a.disabled, name)
		}
	}
}

// DisableScroll adds id to the set of scroll disablers.
func (a *Arbiter) DisableScroll(id ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.init()
	a.scroll[id] = struct{}{}
}

// EnableScroll removes id from the set of scroll disablers.
func (a *Arbiter) EnableScroll(id ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.scroll, id)
}

// CanStart reports whether a gesture called name may start.
func (a *Arbiter) CanStart(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canStart(name)
}

func (a *Arbiter) canStart(name string) bool {
	return a.captured == 0 && !a.isDisabled(name)
}

// IsCaptured reports whether any gesture holds the capture.
func (a *Arbiter) IsCaptured() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.captured != 0
}

// Captured returns the id holding the capture, if any.
func (a *Arbiter) Captured() (ID, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.captured, a.captured != 0
}

// IsScrollDisabled reports whether at least one id disabled scrolling.
func (a *Arbiter) IsScrollDisabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.scroll) > 0
}

// IsDisabled reports whether the gesture name is blocked.
func (a *Arbiter) IsDisabled(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isDisabled(name)
}

func (a *Arbiter) isDisabled(name string) bool {
	return len(a.disabled[name]) > 0
}

// Pending returns the ids with pending claims, in start order.
func (a *Arbiter) Pending() []ID {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := maps.Keys(a.pending)
	slices.SortFunc(ids, func(x, y ID) int {
		sx, sy := a.pending[x].seq, a.pending[y].seq
		switch {
		case sx < sy:
			return -1
		case sx > sy:
			return 1
		}
		return 0
	})
	return ids
}
