// Package render lays out fixed-width text reports for workflow runs.
// Renderers are pure: the same input always produces the same bytes.
package render

import (
	"strings"

	"github.com/Cloudsky01/gh-timeline/internal/timeline"
)

const DefaultWidth = 120

// Legend explains the bar glyphs.
var Legend = "Legend: " + timeline.GlyphRunning + " running  " + timeline.GlyphQueued + " queued"

type Options struct {
	// Width is the length of the horizontal rules framing a report
	Width int
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

func rule(ch string, n int) string {
	return strings.Repeat(ch, n)
}

// banner frames title between two "=" rules.
func banner(title string, width int) []string {
	return []string{rule("=", width), title, rule("=", width)}
}
