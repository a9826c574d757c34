package render

import (
	"fmt"
	"strings"

	"github.com/Cloudsky01/gh-timeline/internal/timeline"
	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

const listRuleWidth = 90

// RunList tabulates runs with hints for feeding their ids back into the
// other views of repo.
func RunList(runs []models.RunSummary, repo string) string {
	if len(runs) == 0 {
		return "No runs found"
	}

	lines := []string{
		fmt.Sprintf("%-12s %-40s %-12s %s", "Run ID", "Workflow", "Status", "Created"),
		rule("-", listRuleWidth),
	}
	for _, run := range runs {
		lines = append(lines, fmt.Sprintf("%-12d %-40s %-12s %s",
			run.ID,
			timeline.Truncate(run.Name, 38),
			run.DisplayStatus(),
			run.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		))
	}
	lines = append(lines,
		rule("-", listRuleWidth),
		"",
		"Use these run IDs with:",
		"  timeline <run_id> --repo "+repo,
		"  timeline <run1> --diff <run2> --repo "+repo,
		"  timeline --history <run1> <run2> ... --repo "+repo,
	)
	return strings.Join(lines, "\n")
}
