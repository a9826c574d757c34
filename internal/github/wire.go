package github

import (
	"time"

	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

// Wire formats of the GitHub REST API. They never leave this package.

type apiRun struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	Conclusion   string     `json:"conclusion"`
	HeadBranch   string     `json:"head_branch"`
	HeadSHA      string     `json:"head_sha"`
	CreatedAt    time.Time  `json:"created_at"`
	RunStartedAt *time.Time `json:"run_started_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type apiJob struct {
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Conclusion  string     `json:"conclusion"`
	CreatedAt   *time.Time `json:"created_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type runsResponse struct {
	TotalCount int      `json:"total_count"`
	Runs       []apiRun `json:"workflow_runs"`
}

type jobsResponse struct {
	TotalCount int      `json:"total_count"`
	Jobs       []apiJob `json:"jobs"`
}

type pullResponse struct {
	Head struct {
		SHA string `json:"sha"`
	} `json:"head"`
}

func (r apiRun) toModel() models.WorkflowRun {
	return models.WorkflowRun{
		ID:         r.ID,
		Name:       r.Name,
		Status:     r.Status,
		Conclusion: r.Conclusion,
		CreatedAt:  r.CreatedAt,
		StartedAt:  r.RunStartedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (r apiRun) toSummary() models.RunSummary {
	return models.RunSummary{
		ID:         r.ID,
		Name:       r.Name,
		Status:     r.Status,
		Conclusion: r.Conclusion,
		CreatedAt:  r.CreatedAt,
		HeadBranch: r.HeadBranch,
		HeadSHA:    r.HeadSHA,
	}
}

// toModel leaves CreatedAt zero when the API omitted it; FetchRun fills it
// from the run.
func (j apiJob) toModel() models.Job {
	job := models.Job{
		Name:        j.Name,
		Status:      j.Status,
		Conclusion:  j.Conclusion,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
	}
	if j.CreatedAt != nil {
		job.CreatedAt = *j.CreatedAt
	}
	return job
}
