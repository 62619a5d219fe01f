// SPDX-License-Identifier: Unlicense OR MIT

package keyboard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitpane/splitmenu/anim"
)

type platform struct {
	focused atomic.Bool
	blurs   atomic.Int32
}

func (p *platform) FocusedTextInput() bool { return p.focused.Load() }

func (p *platform) Blur() {
	p.blurs.Add(1)
	p.focused.Store(false)
}

var fast = PollOptions{Interval: time.Millisecond, MaxChecks: 5}

func TestDismissActiveFocus(t *testing.T) {
	p := new(platform)
	k := New(p, nil, zerolog.Nop())
	k.DismissActiveFocus()
	assert.Zero(t, p.blurs.Load(), "nothing focused")

	p.focused.Store(true)
	assert.True(t, k.IsOpen())
	k.DismissActiveFocus()
	assert.Equal(t, int32(1), p.blurs.Load())
	assert.False(t, k.IsOpen())
}

func TestWaitClosedImmediately(t *testing.T) {
	k := New(new(platform), nil, zerolog.Nop())
	require.NoError(t, k.WaitClosed(context.Background(), fast))
}

func TestWaitClosedPollExhausted(t *testing.T) {
	p := new(platform)
	p.focused.Store(true)
	k := New(p, nil, zerolog.Nop())
	err := k.WaitClosed(context.Background(), fast)
	assert.ErrorIs(t, err, ErrPollExhausted)
}

func TestWaitClosedPolling(t *testing.T) {
	p := new(platform)
	p.focused.Store(true)
	k := New(p, nil, zerolog.Nop())
	go func() {
		time.Sleep(2 * time.Millisecond)
		p.focused.Store(false)
	}()
	opts := PollOptions{Interval: time.Millisecond, MaxChecks: 10000}
	require.NoError(t, k.WaitClosed(context.Background(), opts))
}

func TestWaitClosedHidden(t *testing.T) {
	p := new(platform)
	p.focused.Store(true)
	k := New(p, nil, zerolog.Nop())
	done := make(chan error, 1)
	go func() {
		done <- k.WaitClosed(context.Background(), PollOptions{Interval: time.Hour, MaxChecks: 1})
	}()
	// Notify until the waiter has picked up a channel.
	for {
		k.Hidden()
		select {
		case err := <-done:
			require.NoError(t, err)
			return
		case <-time.After(time.Millisecond):
		}
	}
}

func TestWaitClosedContext(t *testing.T) {
	p := new(platform)
	p.focused.Store(true)
	k := New(p, nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := k.WaitClosed(ctx, PollOptions{Interval: time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHiddenBlursAfterDebounce(t *testing.T) {
	p := new(platform)
	p.focused.Store(true)
	var tl anim.Timeline
	k := New(p, &tl, zerolog.Nop())

	k.Hidden()
	start := time.Unix(0, 0)
	tl.Frame(start)
	tl.Frame(start.Add(HideDebounce / 2))
	assert.True(t, k.IsOpen(), "debounced")
	tl.Frame(start.Add(HideDebounce))
	assert.False(t, k.IsOpen())
	assert.Equal(t, int32(1), p.blurs.Load())
	assert.False(t, tl.Active())
}

func TestShownCancelsBlur(t *testing.T) {
	p := new(platform)
	p.focused.Store(true)
	var tl anim.Timeline
	k := New(p, &tl, zerolog.Nop())

	k.Hidden()
	start := time.Unix(0, 0)
	tl.Frame(start)
	k.Shown()
	assert.False(t, tl.Active())
	tl.Frame(start.Add(time.Second))
	assert.True(t, k.IsOpen())
	assert.Zero(t, p.blurs.Load())

	// Repeated notifications keep a single pending blur.
	k.Hidden()
	k.Hidden()
	tl.Frame(start.Add(2 * time.Second))
	tl.Frame(start.Add(3 * time.Second))
	assert.Equal(t, int32(1), p.blurs.Load())
}

func TestHiddenWithoutTimeline(t *testing.T) {
	p := new(platform)
	p.focused.Store(true)
	k := New(p, nil, zerolog.Nop())
	k.Hidden()
	assert.False(t, k.IsOpen())
	k.Shown()
	assert.Equal(t, int32(1), p.blurs.Load())
}
