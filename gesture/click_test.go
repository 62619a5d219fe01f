// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splitpane/splitmenu/io/pointer"
)

func clicks(c *Click, evs ...pointer.Event) []ClickType {
	var types []ClickType
	for _, e := range evs {
		if ce, ok := c.Update(e); ok {
			types = append(types, ce.Type)
		}
	}
	return types
}

func TestClick(t *testing.T) {
	for _, tc := range []struct {
		name string
		evs  []pointer.Event
		want []ClickType
	}{
		{
			name: "tap",
			evs: []pointer.Event{
				touch(pointer.Press, 0, 100, 100),
				touch(pointer.Release, 50, 100, 100),
			},
			want: []ClickType{TypePress, TypeClick},
		},
		{
			name: "jitter within slop",
			evs: []pointer.Event{
				touch(pointer.Press, 0, 100, 100),
				touch(pointer.Drag, 16, 106, 96),
				touch(pointer.Release, 32, 106, 96),
			},
			want: []ClickType{TypePress, TypeClick},
		},
		{
			name: "drag",
			evs: []pointer.Event{
				touch(pointer.Press, 0, 100, 100),
				touch(pointer.Drag, 16, 130, 100),
				touch(pointer.Drag, 32, 100, 100),
				touch(pointer.Release, 48, 100, 100),
			},
			want: []ClickType{TypePress},
		},
		{
			name: "cancel",
			evs: []pointer.Event{
				touch(pointer.Press, 0, 100, 100),
				touch(pointer.Cancel, 16, 100, 100),
				touch(pointer.Release, 32, 100, 100),
			},
			want: []ClickType{TypePress},
		},
		{
			name: "secondary button",
			evs: []pointer.Event{
				{Kind: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonSecondary},
				{Kind: pointer.Release, Source: pointer.Mouse},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var c Click
			assert.Equal(t, tc.want, clicks(&c, tc.evs...))
			assert.False(t, c.Pressed())
		})
	}
}

func TestClickSlop(t *testing.T) {
	c := Click{Slop: 40}
	got := clicks(&c,
		touch(pointer.Press, 0, 100, 100),
		touch(pointer.Drag, 16, 130, 100),
		touch(pointer.Release, 32, 130, 100),
	)
	assert.Equal(t, []ClickType{TypePress, TypeClick}, got)
}

func TestClickOtherPointer(t *testing.T) {
	var c Click
	press := touch(pointer.Press, 0, 100, 100)
	other := touch(pointer.Release, 16, 300, 100)
	other.PointerID = 1
	assert.Equal(t, []ClickType{TypePress}, clicks(&c, press, other))
	assert.True(t, c.Pressed())
}
