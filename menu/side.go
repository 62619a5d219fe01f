// SPDX-License-Identifier: Unlicense OR MIT

package menu

import "fmt"

// Side is the edge of the window a menu is attached to. Start and End
// follow the reading direction.
type Side uint8

const (
	Start Side = iota
	End
	Left
	Right
)

// IsRight reports whether s resolves to the right edge when the
// reading direction is rtl.
func (s Side) IsRight(rtl bool) bool {
	switch s {
	case Right:
		return true
	case Start:
		return rtl
	case End:
		return !rtl
	default:
		return false
	}
}

// ParseSide parses the String form of a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "start", "":
		return Start, nil
	case "end":
		return End, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("menu: unknown side %q", s)
}

func (s Side) String() string {
	switch s {
	case Start:
		return "start"
	case End:
		return "end"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		panic("invalid Side")
	}
}
