package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

// ErrNoRuns is returned when a selector matches no workflow runs.
var ErrNoRuns = errors.New("no workflow runs found")

// FetchRun loads a run together with its jobs. Jobs the API returned
// without a creation time are dated at the run's creation.
func FetchRun(ctx context.Context, src Source, runID int64) (*models.WorkflowRun, error) {
	run, err := src.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	jobs, err := src.ListJobs(ctx, runID)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].CreatedAt.IsZero() {
			jobs[i].CreatedAt = run.CreatedAt
		}
	}
	run.Jobs = jobs
	return run, nil
}

// Selector picks runs by pull request, branch or commit, in that order of
// precedence. The zero value selects nothing.
type Selector struct {
	PR     int
	Branch string
	Commit string
}

func (s Selector) IsZero() bool {
	return s.PR == 0 && s.Branch == "" && s.Commit == ""
}

func (s Selector) String() string {
	switch {
	case s.PR > 0:
		return fmt.Sprintf("PR #%d", s.PR)
	case s.Branch != "":
		return "branch " + s.Branch
	case s.Commit != "":
		return "commit " + s.Commit
	default:
		return "no selector"
	}
}

// ListRunsFor lists the runs a selector matches. Branch queries return the
// newest limit runs; pull requests resolve to their head commit first.
func ListRunsFor(ctx context.Context, src Source, sel Selector, limit int) ([]models.RunSummary, error) {
	var filter RunsFilter
	switch {
	case sel.PR > 0:
		sha, err := src.PullHeadSHA(ctx, sel.PR)
		if err != nil {
			return nil, err
		}
		filter.HeadSHA = sha
	case sel.Branch != "":
		filter.Branch = sel.Branch
		filter.PerPage = limit
	case sel.Commit != "":
		filter.HeadSHA = sel.Commit
	default:
		return nil, fmt.Errorf("no run selector given")
	}
	return src.ListRuns(ctx, filter)
}

// RunIDsFor is ListRunsFor reduced to run ids; an empty match is ErrNoRuns.
func RunIDsFor(ctx context.Context, src Source, sel Selector, limit int) ([]int64, error) {
	runs, err := ListRunsFor(ctx, src, sel, limit)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoRuns, sel)
	}
	ids := make([]int64, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return ids, nil
}

// ListDefaultBranchRuns lists recent runs on main, falling back to master
// when main has none.
func ListDefaultBranchRuns(ctx context.Context, src Source, limit int) ([]models.RunSummary, error) {
	runs, err := src.ListRuns(ctx, RunsFilter{Branch: "main", PerPage: limit})
	if err != nil {
		return nil, err
	}
	if len(runs) > 0 {
		return runs, nil
	}
	return src.ListRuns(ctx, RunsFilter{Branch: "master", PerPage: limit})
}
