package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Cloudsky01/gh-timeline/internal/timeline"
	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

const historySparklineWidth = 40

// RunStats are the per-run aggregates shown in history and comparison views.
// Only completed jobs contribute.
type RunStats struct {
	Wall     float64
	Build    float64
	Queue    float64
	MaxQueue float64
	Jobs     []models.Job
}

// Stats reduces a run to its aggregates. ok is false when no job completed.
func Stats(run models.WorkflowRun) (stats RunStats, ok bool) {
	jobs := run.CompletedJobs()
	if len(jobs) == 0 {
		return RunStats{}, false
	}
	_, _, stats.Wall = models.Span(jobs)
	for i, j := range jobs {
		stats.Build += j.RunSeconds()
		stats.Queue += j.QueueSeconds()
		if i == 0 || j.QueueSeconds() > stats.MaxQueue {
			stats.MaxQueue = j.QueueSeconds()
		}
	}
	stats.Jobs = jobs
	return stats, true
}

// History renders one row per run, oldest first. Runs without completed
// jobs are left out.
func History(runs []models.WorkflowRun, opts Options) string {
	width := opts.width()

	sorted := make([]models.WorkflowRun, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt.Before(sorted[b].CreatedAt)
	})

	lines := banner("RUN HISTORY (oldest to newest)", width)
	lines = append(lines,
		"",
		fmt.Sprintf("%-12s | %7s | %7s | %7s | Activity", "Run ID", "Wall", "Build", "Queue"),
		rule("-", width),
	)

	for _, run := range sorted {
		stats, ok := Stats(run)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-12d | %7s | %7s | %7s | %s",
			run.ID,
			timeline.FormatDuration(stats.Wall),
			timeline.FormatDuration(stats.Build),
			timeline.FormatDuration(stats.Queue),
			timeline.RenderSparkline(stats.Jobs, historySparklineWidth),
		))
	}

	lines = append(lines,
		rule("-", width),
		"",
		"Activity: Height shows parallel job count over time ("+string(timeline.SparkLevels[1:])+")",
		"          Low blocks at start = queue delay; sustained height = good parallelism",
	)
	return strings.Join(lines, "\n")
}
