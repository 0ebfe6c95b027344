package timekeeper

import "fmt"

// FormatSeconds renders signed seconds as m:ss with a leading minus when negative.
func FormatSeconds(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%d:%02d", sign, seconds/60, seconds%60)
}

// FormatTick renders the time left in, or past, the interval described by result.
func FormatTick(result TickResult) string {
	return FormatSeconds(result.Seconds())
}

// FormatStatus renders a one-line summary such as "Work · round 2 · 12:34".
func FormatStatus(result TickResult) string {
	return fmt.Sprintf("%s · round %d · %s", result.Phase.Label(), result.Round, FormatTick(result))
}
