package timeline

import (
	"fmt"
	"math"
)

// FormatDuration renders non-negative seconds compactly: "45s", "1m30s",
// "2h5m". Components are truncated, never rounded.
func FormatDuration(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", int(seconds))
	case seconds < 3600:
		return fmt.Sprintf("%dm%ds", int(seconds/60), int(math.Mod(seconds, 60)))
	default:
		return fmt.Sprintf("%dh%dm", int(seconds/3600), int(math.Mod(seconds, 3600)/60))
	}
}

// FormatDelta renders a signed duration such as "+2m0s" or "-1m10s".
// Zero has no sign.
func FormatDelta(seconds float64) string {
	switch {
	case seconds > 0:
		return "+" + FormatDuration(seconds)
	case seconds < 0:
		return "-" + FormatDuration(-seconds)
	default:
		return FormatDuration(0)
	}
}
