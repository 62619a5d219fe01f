// SPDX-License-Identifier: Unlicense OR MIT

/*
Package keyboard tracks the virtual keyboard of touch platforms.

Menus dismiss the focused text input before they animate, so that the
keyboard does not cover the menu. Platforms that report keyboard
changes call Hidden and Shown; WaitClosed falls back to polling on
platforms that do not.
*/
package keyboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitpane/splitmenu/anim"
)

// Platform is the native text input state.
type Platform interface {
	// FocusedTextInput reports whether a text input has focus, which
	// opens the virtual keyboard.
	FocusedTextInput() bool
	// Blur removes focus from the focused element.
	Blur()
}

// PollOptions bound the polling of WaitClosed.
type PollOptions struct {
	Interval  time.Duration
	MaxChecks int
}

// Keyboard reports and dismisses the virtual keyboard. Hidden and
// Shown must be called from the goroutine driving the Timeline; the
// other methods are safe for concurrent use if the Platform's are.
type Keyboard struct {
	platform Platform
	tl       *anim.Timeline
	logger   zerolog.Logger

	mu sync.Mutex
	// hidden is closed and replaced by every Hidden call.
	hidden chan struct{}
	// stopBlur cancels the blur scheduled by Hidden.
	stopBlur func()
}

// ErrPollExhausted is returned by WaitClosed when the keyboard stayed
// open for every poll.
var ErrPollExhausted = errors.New("keyboard: still open after polling")

// DefaultPoll is the polling used when WaitClosed is given zero
// options.
var DefaultPoll = PollOptions{
	Interval:  150 * time.Millisecond,
	MaxChecks: 100,
}

// HideDebounce is the delay between a Hidden notification and the blur
// of a text input that kept focus.
const HideDebounce = 80 * time.Millisecond

// New returns a Keyboard for p. Blurs after Hidden are debounced on tl;
// a nil tl blurs right away.
func New(p Platform, tl *anim.Timeline, logger zerolog.Logger) *Keyboard {
	return &Keyboard{
		platform: p,
		tl:       tl,
		logger:   logger,
		hidden:   make(chan struct{}),
	}
}

// IsOpen reports whether the virtual keyboard is open.
func (k *Keyboard) IsOpen() bool {
	return k.platform.FocusedTextInput()
}

// DismissActiveFocus blurs the focused text input, if any.
func (k *Keyboard) DismissActiveFocus() {
	if !k.platform.FocusedTextInput() {
		return
	}
	k.logger.Debug().Msg("dismissing text input focus")
	k.platform.Blur()
}

// Hidden notifies waiters that the platform hid the keyboard. A text
// input still focused HideDebounce later is blurred, unless Shown is
// called first.
func (k *Keyboard) Hidden() {
	k.mu.Lock()
	close(k.hidden)
	k.hidden = make(chan struct{})
	k.cancelBlur()
	if k.tl == nil {
		k.mu.Unlock()
		k.DismissActiveFocus()
		return
	}
	k.stopBlur = k.tl.After(HideDebounce, func() {
		k.mu.Lock()
		k.stopBlur = nil
		k.mu.Unlock()
		k.DismissActiveFocus()
	})
	k.mu.Unlock()
}

// Shown notifies that the platform showed the keyboard, which cancels
// a pending blur.
func (k *Keyboard) Shown() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.cancelBlur()
}

func (k *Keyboard) cancelBlur() {
	if k.stopBlur != nil {
		k.stopBlur()
		k.stopBlur = nil
	}
}

// WaitClosed blocks until the keyboard is closed. It returns when a
// Hidden notification arrives, when polling finds the keyboard closed,
// or with ErrPollExhausted after opts.MaxChecks polls. Zero fields of
// opts take their value from DefaultPoll.
func (k *Keyboard) WaitClosed(ctx context.Context, opts PollOptions) error {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPoll.Interval
	}
	if opts.MaxChecks <= 0 {
		opts.MaxChecks = DefaultPoll.MaxChecks
	}
	k.mu.Lock()
	hidden := k.hidden
	k.mu.Unlock()
	if !k.IsOpen() {
		return nil
	}
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()
	for checks := 0; ; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-hidden:
			return nil
		case <-ticker.C:
			if !k.IsOpen() {
				return nil
			}
			checks++
			if checks >= opts.MaxChecks {
				k.logger.Warn().Int("checks", checks).Msg("keyboard did not close")
				return ErrPollExhausted
			}
		}
	}
}
