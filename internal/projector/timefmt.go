package projector

import (
	"fmt"
	"math"
	"time"
)

// DelayThreshold is how late an estimate may run before a flight counts as delayed.
const DelayThreshold = 15 * time.Minute

// Duration is a whole-minute span split for display.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// String renders "2h 5m", or just "45m" under an hour.
func (d Duration) String() string {
	if d.Hours == 0 {
		return fmt.Sprintf("%dm", d.Minutes)
	}
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

// FormatDuration splits totalMinutes into hours and minutes.
func FormatDuration(totalMinutes int) Duration {
	return Duration{
		Hours:   totalMinutes / 60,
		Minutes: totalMinutes % 60,
	}
}

// MinutesBetween is the absolute difference in whole minutes, truncated.
func MinutesBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(diff / time.Minute)
}

// IsDelayed reports whether estimated runs more than DelayThreshold past scheduled.
func IsDelayed(scheduled, estimated time.Time) bool {
	return estimated.Sub(scheduled) > DelayThreshold
}

// RelativeTime phrases t relative to now, e.g. "25m ago", "in 3h", "2d ago".
func RelativeTime(t, now time.Time) string {
	diffMinutes := int(math.Floor(t.Sub(now).Minutes()))

	if diffMinutes < 0 {
		abs := -diffMinutes
		switch {
		case abs < 60:
			return fmt.Sprintf("%dm ago", abs)
		case abs < 1440:
			return fmt.Sprintf("%dh ago", abs/60)
		default:
			return fmt.Sprintf("%dd ago", abs/1440)
		}
	}

	switch {
	case diffMinutes < 60:
		return fmt.Sprintf("in %dm", diffMinutes)
	case diffMinutes < 1440:
		return fmt.Sprintf("in %dh", diffMinutes/60)
	default:
		return fmt.Sprintf("in %dd", diffMinutes/1440)
	}
}

// FormatDate renders a short date such as "Mon, Jan 1".
func FormatDate(t time.Time) string {
	return t.Format("Mon, Jan 2")
}

// FormatClock renders a 24h wall clock time such as "09:05".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
