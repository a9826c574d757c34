package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Cloudsky01/gh-timeline/internal/timeline"
	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

const (
	singleNameWidth      = 40
	singleBarWidth       = 20
	singleSparklineWidth = 50
)

// SingleRun renders the per-job timeline of one run, longest job first,
// followed by aggregate timings, an activity sparkline and the critical path.
func SingleRun(run models.WorkflowRun, opts Options) string {
	if len(run.Jobs) == 0 {
		return "No jobs found"
	}

	jobs := run.TimedJobs()
	if len(jobs) == 0 {
		return "No completed jobs with timing info"
	}

	_, _, wall := models.Span(jobs)
	if wall == 0 {
		return "All jobs completed instantly"
	}

	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].TotalSeconds() > jobs[b].TotalSeconds()
	})

	width := opts.width()
	conclusion := run.Conclusion
	if conclusion == "" {
		conclusion = "in progress"
	}

	var lines []string
	lines = append(lines,
		rule("=", width),
		fmt.Sprintf("Workflow: %s (Run #%d)", run.Name, run.ID),
		fmt.Sprintf("Status: %s / %s", run.Status, conclusion),
		rule("=", width),
		"",
	)

	maxTotal := jobs[0].TotalSeconds()
	for _, j := range jobs[1:] {
		maxTotal = max(maxTotal, j.TotalSeconds())
	}

	lines = append(lines,
		fmt.Sprintf("%-*s %-*s %7s %7s %7s", singleNameWidth, "Job", singleBarWidth+2, "Timeline", "Queue", "Run", "Total"),
		rule("-", width),
	)

	var sumQueue, sumRun, maxQueue float64
	for i, j := range jobs {
		name := timeline.Truncate(timeline.NormalizeJobName(j.Name), singleNameWidth-2)
		bar := timeline.RenderBar(j.QueueSeconds(), j.RunSeconds(), maxTotal, singleBarWidth)
		lines = append(lines, fmt.Sprintf("%-*s %s  %7s %7s %7s",
			singleNameWidth, name, bar,
			timeline.FormatDuration(j.QueueSeconds()),
			timeline.FormatDuration(j.RunSeconds()),
			timeline.FormatDuration(j.TotalSeconds()),
		))

		sumQueue += j.QueueSeconds()
		sumRun += j.RunSeconds()
		if i == 0 || j.QueueSeconds() > maxQueue {
			maxQueue = j.QueueSeconds()
		}
	}
	lines = append(lines, rule("-", width))

	lines = append(lines,
		"",
		fmt.Sprintf("Wall clock: %10s    Sum of run times: %10s", timeline.FormatDuration(wall), timeline.FormatDuration(sumRun)),
		fmt.Sprintf("Max queue:  %10s    Sum of queue times: %10s", timeline.FormatDuration(maxQueue), timeline.FormatDuration(sumQueue)),
		"",
		"Activity:   "+timeline.RenderSparkline(jobs, singleSparklineWidth),
		strings.Repeat(" ", 12)+timeline.SparklineAxis(wall, singleSparklineWidth),
	)

	last := criticalJob(jobs)
	lines = append(lines,
		"",
		fmt.Sprintf("Critical path: %s (queue %s, run %s)",
			timeline.NormalizeJobName(last.Name),
			timeline.FormatDuration(last.QueueSeconds()),
			timeline.FormatDuration(last.RunSeconds()),
		),
		"",
		Legend,
	)

	return strings.Join(lines, "\n")
}

// criticalJob is the job that finished last; the first one wins a tie.
// jobs must be non-empty and completed.
func criticalJob(jobs []models.Job) models.Job {
	last := jobs[0]
	for _, j := range jobs[1:] {
		if j.CompletedAt.After(*last.CompletedAt) {
			last = j
		}
	}
	return last
}
