package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Cloudsky01/gh-timeline/internal/config"
	"github.com/Cloudsky01/gh-timeline/internal/github"
	"github.com/Cloudsky01/gh-timeline/internal/picker"
	"github.com/Cloudsky01/gh-timeline/internal/progress"
	"github.com/Cloudsky01/gh-timeline/internal/render"
	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

var (
	errNoRunSelected   = errors.New("no run selected: pass a run ID, --pr, --branch, --commit or --pick")
	errNoHistoryRunIDs = errors.New("no run IDs provided for --history. Use with --branch or --pr, or provide run IDs")
	errNotInteractive  = errors.New("--pick needs an interactive terminal")
)

// isInteractive and pickRun are replaced in tests.
var (
	isInteractive = func() bool { return progress.IsTerminal(os.Stdin) }
	pickRun       = picker.PickRun
)

// app carries what every mode needs once the repository is known.
type app struct {
	cfg      *config.Config
	repo     string
	src      github.Source
	out      io.Writer
	reporter *progress.Reporter
	usage    func() error
}

func (a *app) renderOptions() render.Options {
	return render.Options{Width: a.cfg.Width}
}

// run dispatches to a mode: list, then history, then the run views.
func (a *app) run(ctx context.Context, o options, ids []int64) error {
	sel := github.Selector{PR: o.pr, Branch: o.branch, Commit: o.commit}

	if o.list {
		return a.list(ctx, sel)
	}
	if o.history {
		return a.history(ctx, sel, ids)
	}

	ids, err := a.selectRuns(ctx, sel, ids, o.pick)
	if err != nil {
		return err
	}

	runs := make([]models.WorkflowRun, 0, len(ids))
	for _, id := range ids {
		run, err := a.fetch(ctx, id, fmt.Sprintf("Fetching run #%d", id))
		if err != nil {
			return err
		}
		runs = append(runs, *run)
	}

	switch {
	case o.diff > 0:
		other, err := a.fetch(ctx, o.diff, fmt.Sprintf("Fetching comparison run #%d", o.diff))
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, render.Diff(runs[0], *other, a.renderOptions()))
	case o.compare || len(runs) > 1:
		fmt.Fprintln(a.out, render.Comparison(runs, a.renderOptions()))
		fmt.Fprintln(a.out)
		for _, run := range runs {
			fmt.Fprintln(a.out, render.SingleRun(run, a.renderOptions()))
			fmt.Fprintln(a.out)
		}
	default:
		fmt.Fprintln(a.out, render.SingleRun(runs[0], a.renderOptions()))
	}
	return nil
}

// selectRuns turns the arguments into the run ids to display. A branch
// contributes only its newest run; pull requests and commits contribute
// every run.
func (a *app) selectRuns(ctx context.Context, sel github.Selector, ids []int64, pick bool) ([]int64, error) {
	switch {
	case len(ids) > 0:
		return ids, nil
	case pick:
		id, err := a.pick(ctx, sel)
		if err != nil {
			return nil, err
		}
		return []int64{id}, nil
	case !sel.IsZero():
		limit := a.cfg.Limit
		if sel.PR == 0 && sel.Branch != "" {
			limit = 1
		}
		found, err := github.RunIDsFor(ctx, a.src, sel, limit)
		if err != nil {
			return nil, err
		}
		if sel.PR == 0 && sel.Branch != "" {
			found = found[:1]
		}
		return found, nil
	default:
		if a.usage != nil {
			_ = a.usage()
		}
		return nil, errNoRunSelected
	}
}

func (a *app) pick(ctx context.Context, sel github.Selector) (int64, error) {
	if !isInteractive() {
		return 0, errNotInteractive
	}

	var runs []models.RunSummary
	var err error
	if sel.IsZero() {
		runs, err = github.ListDefaultBranchRuns(ctx, a.src, a.cfg.Limit)
	} else {
		runs, err = github.ListRunsFor(ctx, a.src, sel, a.cfg.Limit)
	}
	if err != nil {
		return 0, err
	}
	if len(runs) == 0 {
		return 0, fmt.Errorf("%w in %s", github.ErrNoRuns, a.repo)
	}
	return pickRun(fmt.Sprintf("Select a run in %s", a.repo), runs)
}

func (a *app) fetch(ctx context.Context, id int64, message string) (*models.WorkflowRun, error) {
	var run *models.WorkflowRun
	err := a.reporter.Run(ctx, message, func(ctx context.Context) error {
		var err error
		run, err = github.FetchRun(ctx, a.src, id)
		return err
	})
	if err != nil {
		// An interrupted fetch may still be running and owns run.
		return nil, err
	}
	return run, nil
}

// branchFirst drops the other selectors when a branch is given; listing
// and history prefer the branch over a pull request.
func branchFirst(sel github.Selector) github.Selector {
	if sel.Branch != "" {
		return github.Selector{Branch: sel.Branch}
	}
	return sel
}

func (a *app) list(ctx context.Context, sel github.Selector) error {
	sel = branchFirst(sel)

	var header string
	var runs []models.RunSummary
	var err error
	switch {
	case sel.Branch != "":
		header = fmt.Sprintf("Recent runs for branch '%s':", sel.Branch)
		runs, err = github.ListRunsFor(ctx, a.src, sel, a.cfg.Limit)
	case sel.PR > 0:
		var sha string
		sha, err = a.src.PullHeadSHA(ctx, sel.PR)
		if err != nil {
			return err
		}
		header = fmt.Sprintf("Runs for PR #%d (head: %s):", sel.PR, shortSHA(sha))
		runs, err = a.src.ListRuns(ctx, github.RunsFilter{HeadSHA: sha})
	case sel.Commit != "":
		header = fmt.Sprintf("Runs for commit %s:", shortSHA(sel.Commit))
		runs, err = github.ListRunsFor(ctx, a.src, sel, a.cfg.Limit)
	default:
		header = "Recent runs:"
		runs, err = github.ListDefaultBranchRuns(ctx, a.src, a.cfg.Limit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n\n", header)
	fmt.Fprintln(a.out, render.RunList(runs, a.repo))
	return nil
}

func (a *app) history(ctx context.Context, sel github.Selector, ids []int64) error {
	if len(ids) == 0 {
		sel = branchFirst(sel)
		if sel.IsZero() {
			return errNoHistoryRunIDs
		}
		found, err := github.RunIDsFor(ctx, a.src, sel, a.cfg.Limit)
		if err != nil {
			return err
		}
		ids = found
	}

	runs := make([]models.WorkflowRun, 0, len(ids))
	for _, id := range ids {
		run, err := a.fetch(ctx, id, fmt.Sprintf("Fetching run #%d", id))
		if err != nil {
			return err
		}
		runs = append(runs, *run)
	}

	fmt.Fprintln(a.out, render.History(runs, a.renderOptions()))
	return nil
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
