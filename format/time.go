// Relative time formatting, loosely based on go-humanize's times.go.

package format

import (
	"fmt"
	"time"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
)

// Time renders a timestamp the way feeds show post ages: "just now",
// "30s ago", "3w ago". Anything older than a month falls back to an
// absolute date.
func Time(then time.Time) string {
	now := time.Now().UTC()
	then = then.UTC()

	diff := now.Sub(then)
	label := "ago"
	if then.After(now) {
		diff = then.Sub(now)
		label = "from now"
	}

	switch {
	case diff < time.Second:
		return "just now"
	case diff < time.Minute:
		return unit(diff/time.Second, "s", label)
	case diff < time.Hour:
		return unit(diff/time.Minute, "m", label)
	case diff < day:
		return unit(diff/time.Hour, "h", label)
	case diff < week:
		return unit(diff/day, "d", label)
	case diff < month:
		return unit(diff/week, "w", label)
	}

	return then.Local().Format("Jan 2 2006")
}

func unit(n time.Duration, suffix, label string) string {
	return fmt.Sprintf("%d%s %s", n, suffix, label)
}
