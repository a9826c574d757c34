package render

import (
	"fmt"
	"strings"

	"github.com/Cloudsky01/gh-timeline/internal/timeline"
	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

// Comparison summarizes several runs grouped by workflow name, keeping the
// order in which each workflow first appears.
func Comparison(runs []models.WorkflowRun, opts Options) string {
	lines := banner("WORKFLOW RUN COMPARISON", opts.width())

	var order []string
	byWorkflow := make(map[string][]models.WorkflowRun)
	for _, run := range runs {
		if _, seen := byWorkflow[run.Name]; !seen {
			order = append(order, run.Name)
		}
		byWorkflow[run.Name] = append(byWorkflow[run.Name], run)
	}

	for _, name := range order {
		lines = append(lines, "", "Workflow: "+name, rule("-", 60))
		for _, run := range byWorkflow[name] {
			stats, ok := Stats(run)
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("  Run #%d: %s total, %s max queue",
				run.ID, timeline.FormatDuration(stats.Wall), timeline.FormatDuration(stats.MaxQueue)))
		}
	}

	return strings.Join(lines, "\n")
}
