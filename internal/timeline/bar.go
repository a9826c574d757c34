package timeline

import "strings"

const (
	GlyphQueued  = "░"
	GlyphRunning = "█"
)

// RenderBar draws a job as a queued segment followed by a running segment,
// scaled so that maxSeconds spans the full width. The result is always
// exactly width runes; a zero scale yields a blank bar.
func RenderBar(queueSeconds, runSeconds, maxSeconds float64, width int) string {
	if width <= 0 {
		return ""
	}
	if maxSeconds == 0 {
		return strings.Repeat(" ", width)
	}

	total := clamp(int((queueSeconds+runSeconds)/maxSeconds*float64(width)), 0, width)
	queued := clamp(int(queueSeconds/maxSeconds*float64(width)), 0, total)
	running := total - queued

	var b strings.Builder
	b.WriteString(strings.Repeat(GlyphQueued, queued))
	b.WriteString(strings.Repeat(GlyphRunning, running))
	b.WriteString(strings.Repeat(" ", width-total))
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
