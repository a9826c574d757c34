package github

import (
	"context"
	"fmt"
	"time"

	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

const DefaultTimeout = 30 * time.Second

// jobsPageSize is the largest page the jobs endpoint serves.
const jobsPageSize = 100

// Source is the read-only view of the CI provider the renderers need.
type Source interface {
	GetRun(ctx context.Context, runID int64) (*models.WorkflowRun, error)
	ListJobs(ctx context.Context, runID int64) ([]models.Job, error)
	ListRuns(ctx context.Context, filter RunsFilter) ([]models.RunSummary, error)
	PullHeadSHA(ctx context.Context, pr int) (string, error)
}

// Transport performs a GET against the GitHub REST API and decodes the JSON
// response into v. path is relative to the API root.
type Transport interface {
	Get(ctx context.Context, path string, v any) error
}

// Client reads workflow data for one repository.
type Client struct {
	repo      string
	timeout   time.Duration
	transport Transport
}

func NewClient(repo string, transport Transport) *Client {
	return NewClientWithTimeout(repo, transport, DefaultTimeout)
}

func NewClientWithTimeout(repo string, transport Transport, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		repo:      repo,
		timeout:   timeout,
		transport: transport,
	}
}

func (c *Client) GetRepository() string {
	return c.repo
}

func (c *Client) GetTimeout() time.Duration {
	return c.timeout
}

func (c *Client) repoPath(path string) string {
	return fmt.Sprintf("repos/%s/%s", c.repo, path)
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.transport.Get(ctx, c.repoPath(path), v); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("request for %s timed out after %v", path, c.timeout)
		}
		return err
	}
	return nil
}

func (c *Client) GetRun(ctx context.Context, runID int64) (*models.WorkflowRun, error) {
	var run apiRun
	if err := c.get(ctx, fmt.Sprintf("actions/runs/%d", runID), &run); err != nil {
		return nil, fmt.Errorf("get run %d: %w", runID, err)
	}
	out := run.toModel()
	return &out, nil
}

// ListJobs returns every job of the run in API order, following pagination.
func (c *Client) ListJobs(ctx context.Context, runID int64) ([]models.Job, error) {
	var jobs []models.Job
	for page := 1; ; page++ {
		filter := JobsFilter{PerPage: jobsPageSize, Page: page}
		var resp jobsResponse
		path := fmt.Sprintf("actions/runs/%d/jobs%s", runID, filter.QueryString())
		if err := c.get(ctx, path, &resp); err != nil {
			return nil, fmt.Errorf("list jobs for run %d: %w", runID, err)
		}
		for _, j := range resp.Jobs {
			jobs = append(jobs, j.toModel())
		}
		if len(resp.Jobs) < jobsPageSize || (resp.TotalCount > 0 && len(jobs) >= resp.TotalCount) {
			return jobs, nil
		}
	}
}

func (c *Client) ListRuns(ctx context.Context, filter RunsFilter) ([]models.RunSummary, error) {
	var resp runsResponse
	if err := c.get(ctx, "actions/runs"+filter.QueryString(), &resp); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	runs := make([]models.RunSummary, 0, len(resp.Runs))
	for _, r := range resp.Runs {
		runs = append(runs, r.toSummary())
	}
	return runs, nil
}

func (c *Client) PullHeadSHA(ctx context.Context, pr int) (string, error) {
	var resp pullResponse
	if err := c.get(ctx, fmt.Sprintf("pulls/%d", pr), &resp); err != nil {
		return "", fmt.Errorf("get pull request #%d: %w", pr, err)
	}
	if resp.Head.SHA == "" {
		return "", fmt.Errorf("pull request #%d has no head commit", pr)
	}
	return resp.Head.SHA, nil
}
