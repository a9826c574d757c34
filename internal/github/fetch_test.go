package github

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

type fakeSource struct {
	runs    map[int64]*models.WorkflowRun
	jobs    map[int64][]models.Job
	listed  map[string][]models.RunSummary
	heads   map[int]string
	filters []RunsFilter
}

func (f *fakeSource) GetRun(ctx context.Context, runID int64) (*models.WorkflowRun, error) {
	r, ok := f.runs[runID]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeSource) ListJobs(ctx context.Context, runID int64) ([]models.Job, error) {
	return append([]models.Job(nil), f.jobs[runID]...), nil
}

func (f *fakeSource) ListRuns(ctx context.Context, filter RunsFilter) ([]models.RunSummary, error) {
	f.filters = append(f.filters, filter)
	return f.listed[filter.Branch+filter.HeadSHA], nil
}

func (f *fakeSource) PullHeadSHA(ctx context.Context, pr int) (string, error) {
	sha, ok := f.heads[pr]
	if !ok {
		return "", errors.New("no such pull request")
	}
	return sha, nil
}

func TestFetchRunDatesUndatedJobs(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	jobCreated := created.Add(time.Minute)
	src := &fakeSource{
		runs: map[int64]*models.WorkflowRun{1: {ID: 1, Name: "CI", CreatedAt: created}},
		jobs: map[int64][]models.Job{1: {
			{Name: "dated", CreatedAt: jobCreated},
			{Name: "undated"},
		}},
	}

	run, err := FetchRun(context.Background(), src, 1)
	if err != nil {
		t.Fatalf("FetchRun() error = %v", err)
	}
	if len(run.Jobs) != 2 {
		t.Fatalf("got %d jobs", len(run.Jobs))
	}
	if !run.Jobs[0].CreatedAt.Equal(jobCreated) {
		t.Errorf("dated job changed to %v", run.Jobs[0].CreatedAt)
	}
	if !run.Jobs[1].CreatedAt.Equal(created) {
		t.Errorf("undated job = %v, want run creation %v", run.Jobs[1].CreatedAt, created)
	}
}

func TestSelectorString(t *testing.T) {
	tests := []struct {
		sel  Selector
		want string
	}{
		{Selector{PR: 12, Branch: "main"}, "PR #12"},
		{Selector{Branch: "main"}, "branch main"},
		{Selector{Commit: "abc"}, "commit abc"},
		{Selector{}, "no selector"},
	}
	for _, tt := range tests {
		if got := tt.sel.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if !(Selector{}).IsZero() {
		t.Error("zero selector should report IsZero")
	}
}

func TestRunIDsFor(t *testing.T) {
	src := &fakeSource{
		heads: map[int]string{7: "sha7"},
		listed: map[string][]models.RunSummary{
			"sha7": {{ID: 70}, {ID: 71}},
			"main": {{ID: 1}},
		},
	}

	ids, err := RunIDsFor(context.Background(), src, Selector{PR: 7}, 10)
	if err != nil {
		t.Fatalf("RunIDsFor() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != 70 || ids[1] != 71 {
		t.Errorf("ids = %v", ids)
	}

	if _, err := RunIDsFor(context.Background(), src, Selector{Branch: "main"}, 5); err != nil {
		t.Fatalf("branch selector error = %v", err)
	}
	last := src.filters[len(src.filters)-1]
	if last.Branch != "main" || last.PerPage != 5 {
		t.Errorf("branch filter = %+v", last)
	}

	_, err = RunIDsFor(context.Background(), src, Selector{Commit: "nothing"}, 10)
	if !errors.Is(err, ErrNoRuns) {
		t.Errorf("expected ErrNoRuns, got %v", err)
	}

	if _, err := RunIDsFor(context.Background(), src, Selector{}, 10); err == nil {
		t.Error("expected error for empty selector")
	}
}

func TestListDefaultBranchRuns(t *testing.T) {
	src := &fakeSource{listed: map[string][]models.RunSummary{"master": {{ID: 9}}}}

	runs, err := ListDefaultBranchRuns(context.Background(), src, 10)
	if err != nil {
		t.Fatalf("ListDefaultBranchRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].ID != 9 {
		t.Errorf("runs = %+v", runs)
	}
	if len(src.filters) != 2 || src.filters[0].Branch != "main" || src.filters[1].Branch != "master" {
		t.Errorf("filters = %+v", src.filters)
	}
}

func TestResolveRepository(t *testing.T) {
	origCurrent, origDetect := currentRepository, detectRepository
	t.Cleanup(func() { currentRepository, detectRepository = origCurrent, origDetect })

	fail := func() (string, error) { return "", errors.New("none") }

	tests := []struct {
		name     string
		explicit string
		current  func() (string, error)
		detect   func() (string, error)
		want     string
		wantErr  error
	}{
		{
			name:     "explicit wins",
			explicit: "a/b",
			current:  func() (string, error) { return "c/d", nil },
			detect:   fail,
			want:     "a/b",
		},
		{
			name:    "gh context",
			current: func() (string, error) { return "c/d", nil },
			detect:  func() (string, error) { return "e/f", nil },
			want:    "c/d",
		},
		{
			name:    "git config fallback",
			current: fail,
			detect:  func() (string, error) { return "e/f", nil },
			want:    "e/f",
		},
		{
			name:    "nothing found",
			current: fail,
			detect:  fail,
			wantErr: ErrNoRepository,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			currentRepository, detectRepository = tt.current, tt.detect
			got, err := ResolveRepository(tt.explicit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveRepository() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := ResolveRepository("not-a-repo"); err == nil {
		t.Error("expected validation error")
	}
}

func TestClientIntegration(t *testing.T) {
	repo := os.Getenv("TIMELINE_INTEGRATION_REPO")
	if repo == "" {
		t.Skip("set TIMELINE_INTEGRATION_REPO=owner/repo to run against the live API")
	}
	if err := CheckGitHubCLI(); err != nil {
		t.Skip(err.Error())
	}

	c := NewClient(repo, NewCLITransport())
	runs, err := ListDefaultBranchRuns(context.Background(), c, 1)
	if err != nil {
		t.Fatalf("ListDefaultBranchRuns() error = %v", err)
	}
	if len(runs) == 0 {
		t.Skip("repository has no runs on its default branch")
	}
	if _, err := FetchRun(context.Background(), c, runs[0].ID); err != nil {
		t.Fatalf("FetchRun() error = %v", err)
	}
}
