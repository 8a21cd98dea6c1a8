// Package gpio provides GPIO lines backed by the Linux GPIO character device.
// Inputs implement hw.InputLine and outputs implement hw.OutputLine; tests use
// the fakes in package hw instead.
package gpio

import (
	"fmt"
	"strings"
)

// DefaultChip is the GPIO chip on a Raspberry Pi.
const DefaultChip = "gpiochip0"

// Bias selects the internal resistor on an input line.
type Bias string

const (
	BiasNone     Bias = "none"
	BiasPullUp   Bias = "pull-up"
	BiasPullDown Bias = "pull-down"
)

// ParseBias accepts "none", "pull-up" or "pull-down". Empty means none.
func ParseBias(s string) (Bias, error) {
	switch b := Bias(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BiasNone, nil
	case BiasNone, BiasPullUp, BiasPullDown:
		return b, nil
	default:
		return "", fmt.Errorf("invalid bias %q (want none, pull-up or pull-down)", s)
	}
}
