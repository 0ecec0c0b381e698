package durationx

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration indicates a timeout string durationx.Parse could not
// interpret as seconds, a suffixed duration, or an infinity literal.
var ErrInvalidDuration = errors.New("durationx: invalid duration")

// infinite are the literal tokens meaning "no limit" (case-insensitive).
var infinite = map[string]bool{"inf": true, "infinite": true, "infinity": true}

// Parse interprets s as a CLI timeout. An empty string or an infinity
// literal both mean "no limit", returned as a zero Duration, matching
// Options.Timeout's own zero-means-unlimited convention.
func Parse(s string) (time.Duration, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" || infinite[trimmed] {
		return 0, nil
	}

	if seconds, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return durationFromSeconds(seconds)
	}

	unit := trimmed[len(trimmed)-1:]
	mult, ok := unitMultiplier(unit)
	if !ok {
		return 0, ErrInvalidDuration
	}
	n, err := strconv.ParseFloat(trimmed[:len(trimmed)-1], 64)
	if err != nil {
		return 0, ErrInvalidDuration
	}

	return durationFromSeconds(n * mult)
}

func unitMultiplier(unit string) (float64, bool) {
	switch unit {
	case "s":
		return 1, true
	case "m":
		return 60, true
	case "h":
		return 3600, true
	default:
		return 0, false
	}
}

func durationFromSeconds(seconds float64) (time.Duration, error) {
	if seconds < 0 {
		return 0, ErrInvalidDuration
	}

	return time.Duration(seconds * float64(time.Second)), nil
}
