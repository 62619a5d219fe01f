// SPDX-License-Identifier: Unlicense OR MIT

package menu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/splitpane/splitmenu/anim"
	"github.com/splitpane/splitmenu/gesture"
	"github.com/splitpane/splitmenu/io/pointer"
)

type element struct {
	x       float32
	xs      []float32
	opacity float32
	classes map[string]bool
	clicks  map[int]func()
	next    int
}

func (e *element) Translate(x float32) {
	e.x = x
	e.xs = append(e.xs, x)
}

func (e *element) SetOpacity(o float32) { e.opacity = o }

func (e *element) SetClass(name string, on bool) {
	if e.classes == nil {
		e.classes = make(map[string]bool)
	}
	e.classes[name] = on
}

func (e *element) OnClick(fn func()) func() {
	if e.clicks == nil {
		e.clicks = make(map[int]func())
	}
	id := e.next
	e.next++
	e.clicks[id] = fn
	return func() { delete(e.clicks, id) }
}

func (e *element) click() {
	var fns []func()
	for _, fn := range e.clicks {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}

type host struct {
	width, viewport float32
	rtl             bool
	layouts         int

	menu, content, backdrop element
}

func newHost() *host {
	return &host{width: 200, viewport: 800}
}

func (h *host) Width() float32 { return h.width }
func (h *host) Viewport() float32 { return h.viewport }
func (h *host) RTL() bool { return h.rtl }
func (h *host) Layout() { h.layouts++ }
func (h *host) Menu() Element { return &h.menu }
func (h *host) Content() Element { return &h.content }
func (h *host) Backdrop() Element { return &h.backdrop }

type focus struct {
	dismissed int
}

func (f *focus) DismissActiveFocus() { f.dismissed++ }

// fixture is a menu with the collaborators it was created with.
type fixture struct {
	*Menu
	h   *host
	tl  *anim.Timeline
	arb *gesture.Arbiter
	fd  *focus

	opens, closes int
}

func newFixture(t *testing.T, h *host, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		h:   h,
		tl:  new(anim.Timeline),
		arb: new(gesture.Arbiter),
		fd:  new(focus),
	}
	opts.Focus = f.fd
	m, err := New(f.arb, f.tl, h, opts)
	require.NoError(t, err)
	f.Menu = m
	m.Opened().Subscribe(func(bool) { f.opens++ })
	m.Closed().Subscribe(func(bool) { f.closes++ })
	t.Cleanup(m.Destroy)
	return f
}

var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

// settle runs frames until the timeline is idle, starting at ms.
func (f *fixture) settle(t *testing.T, ms int) int {
	t.Helper()
	for i := 0; i < 100; i++ {
		if !f.tl.Frame(at(ms)) {
			return ms
		}
		ms += 16
	}
	t.Fatal("timeline did not settle")
	return ms
}

// result returns the value of a SetOpen result, failing if it is not
// available yet.
func result(t *testing.T, res <-chan bool) bool {
	t.Helper()
	select {
	case v := <-res:
		return v
	default:
		t.Fatal("result is not available")
		return false
	}
}

func pending(res <-chan bool) bool {
	return len(res) == 0
}

func touch(k pointer.Kind, ms int, x, y float32) pointer.Event {
	return pointer.Event{
		Kind:     k,
		Source:   pointer.Touch,
		Time:     time.Duration(ms) * time.Millisecond,
		Position: pointer.Point{X: x, Y: y},
	}
}
