package button

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPolarity is returned by ParsePolarity for unknown names.
var ErrInvalidPolarity = errors.New("button: invalid polarity")

// Polarity maps a raw line level to the logical pressed state.
type Polarity int

const (
	// PressedOnHigh treats a high line as pressed.
	PressedOnHigh Polarity = iota
	// PressedOnLow treats a low line as pressed (typical with a pull-up).
	PressedOnLow
)

// Pressed returns the logical pressed state for a raw level.
func (p Polarity) Pressed(level bool) bool {
	if p == PressedOnLow {
		return !level
	}
	return level
}

func (p Polarity) String() string {
	switch p {
	case PressedOnHigh:
		return "pressed-on-high"
	case PressedOnLow:
		return "pressed-on-low"
	default:
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
}

// ParsePolarity accepts "pressed-on-high" or "pressed-on-low".
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pressed-on-high":
		return PressedOnHigh, nil
	case "pressed-on-low":
		return PressedOnLow, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolarity, s)
	}
}
