package timeline

import (
	"fmt"
	"strings"

	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

// SparkLevels holds the density glyphs, blank first.
var SparkLevels = []rune(" ▁▂▃▄▅▆▇█")

// RenderSparkline shows how many jobs were running across the time span of
// jobs, one glyph per equal time bucket. Only jobs with both a start and a
// completion count. Density is relative to the number of counted jobs, so a
// full block means every job was running in that bucket.
func RenderSparkline(jobs []models.Job, width int) string {
	if width <= 0 {
		return ""
	}

	var timed []models.Job
	for _, j := range jobs {
		if j.HasTiming() {
			timed = append(timed, j)
		}
	}
	if len(timed) == 0 {
		return strings.Repeat(" ", width)
	}

	start := timed[0].CreatedAt
	end := *timed[0].CompletedAt
	for _, j := range timed[1:] {
		if j.CreatedAt.Before(start) {
			start = j.CreatedAt
		}
		if j.CompletedAt.After(end) {
			end = *j.CompletedAt
		}
	}
	span := end.Sub(start).Seconds()
	if span == 0 {
		return strings.Repeat(string(SparkLevels[len(SparkLevels)-1]), width)
	}

	bucket := span / float64(width)
	top := len(SparkLevels) - 1
	out := make([]rune, width)
	for i := range out {
		bucketStart := float64(i) * bucket
		bucketEnd := bucketStart + bucket

		running := 0
		for _, j := range timed {
			started := j.StartedAt.Sub(start).Seconds()
			completed := j.CompletedAt.Sub(start).Seconds()
			if started < bucketEnd && completed > bucketStart {
				running++
			}
		}

		if running == 0 {
			out[i] = SparkLevels[0]
			continue
		}
		level := clamp(int(float64(running)/float64(len(timed))*float64(top)), 1, top)
		out[i] = SparkLevels[level]
	}
	return string(out)
}

// SparklineAxis labels a sparkline of the given width with its start,
// midpoint and end offsets.
func SparklineAxis(seconds float64, width int) string {
	side := width / 5
	mid := width - 2*side
	return center("0", side) + center(FormatDuration(seconds/2), mid) + fmt.Sprintf("%*s", side, FormatDuration(seconds))
}

// center pads s to width runes, putting the odd space on the right.
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
