package render

import (
	"fmt"

	"github.com/Cloudsky01/gh-timeline/internal/timeline"
)

// Insight turns the aggregate deltas of a diff into a few lines of text:
// how build time moved, whether queueing moved with it, and whether the
// wall clock followed the build time.
func Insight(res DiffResult) []string {
	var lines []string

	switch {
	case res.RunDelta < -SameThreshold:
		lines = append(lines, fmt.Sprintf("  Run 2 saved %s in actual build time across all jobs.", timeline.FormatDuration(-res.RunDelta)))
	case res.RunDelta > SameThreshold:
		lines = append(lines, fmt.Sprintf("  Run 2 spent %s MORE in actual build time across all jobs.", timeline.FormatDuration(res.RunDelta)))
	default:
		lines = append(lines, "  Actual build times are roughly the same.")
	}

	switch {
	case res.QueueDelta > SameThreshold:
		lines = append(lines, fmt.Sprintf("  BUT Run 2 had %s MORE queue wait time.", timeline.FormatDuration(res.QueueDelta)))
	case res.QueueDelta < -SameThreshold:
		lines = append(lines, fmt.Sprintf("  AND Run 2 had %s LESS queue wait time.", timeline.FormatDuration(-res.QueueDelta)))
	}

	wall := res.WallDelta()
	switch {
	case wall > 0 && res.RunDelta < 0:
		lines = append(lines, "", "  Despite faster builds, wall clock time increased due to runner queue delays!")
	case wall < 0 && res.RunDelta < 0:
		lines = append(lines, "", "  Build time savings translated to faster wall clock time.")
	}

	return lines
}
