package models

import "time"

// Status values reported for runs and jobs
const (
	StatusQueued     = "queued"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusWaiting    = "waiting"
	StatusRequested  = "requested"
	StatusPending    = "pending"
)

// Conclusion values reported once a run or job completes
const (
	ConclusionSuccess   = "success"
	ConclusionFailure   = "failure"
	ConclusionCancelled = "cancelled"
	ConclusionSkipped   = "skipped"
	ConclusionTimedOut  = "timed_out"
	ConclusionNeutral   = "neutral"
)

// Job is a single job of a workflow run. StartedAt and CompletedAt are nil
// until the job reaches that phase.
type Job struct {
	Name        string
	Status      string
	Conclusion  string
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// QueueSeconds is the time between creation and pickup by a runner
func (j Job) QueueSeconds() float64 {
	if j.StartedAt == nil {
		return 0
	}
	return j.StartedAt.Sub(j.CreatedAt).Seconds()
}

// RunSeconds is the time the job spent executing
func (j Job) RunSeconds() float64 {
	if j.StartedAt == nil || j.CompletedAt == nil {
		return 0
	}
	return j.CompletedAt.Sub(*j.StartedAt).Seconds()
}

// TotalSeconds is queue plus run time
func (j Job) TotalSeconds() float64 {
	if j.CompletedAt == nil {
		return 0
	}
	return j.CompletedAt.Sub(j.CreatedAt).Seconds()
}

// HasTiming reports whether the job has both a start and a completion time
func (j Job) HasTiming() bool {
	return j.StartedAt != nil && j.CompletedAt != nil
}

func (j Job) IsCompleted() bool {
	return j.CompletedAt != nil
}

// WorkflowRun is one execution of a workflow together with its jobs
type WorkflowRun struct {
	ID         int64
	Name       string
	Status     string
	Conclusion string
	CreatedAt  time.Time
	StartedAt  *time.Time
	UpdatedAt  time.Time
	Jobs       []Job
}

// TimedJobs returns the jobs that both started and completed, in run order
func (r WorkflowRun) TimedJobs() []Job {
	var jobs []Job
	for _, j := range r.Jobs {
		if j.HasTiming() {
			jobs = append(jobs, j)
		}
	}
	return jobs
}

// CompletedJobs returns the jobs with a completion time, in run order
func (r WorkflowRun) CompletedJobs() []Job {
	var jobs []Job
	for _, j := range r.Jobs {
		if j.IsCompleted() {
			jobs = append(jobs, j)
		}
	}
	return jobs
}

// RunSummary is a row of a runs listing
type RunSummary struct {
	ID         int64
	Name       string
	Status     string
	Conclusion string
	CreatedAt  time.Time
	HeadBranch string
	HeadSHA    string
}

// DisplayStatus prefers the conclusion and falls back to the status
func (r RunSummary) DisplayStatus() string {
	if r.Conclusion != "" {
		return r.Conclusion
	}
	return r.Status
}

// Span returns the earliest creation, the latest completion and the seconds
// between them. Jobs without a completion time are ignored; an empty set
// yields zero values.
func Span(jobs []Job) (time.Time, time.Time, float64) {
	var start, end time.Time
	found := false
	for _, j := range jobs {
		if j.CompletedAt == nil {
			continue
		}
		if !found || j.CreatedAt.Before(start) {
			start = j.CreatedAt
		}
		if !found || j.CompletedAt.After(end) {
			end = *j.CompletedAt
		}
		found = true
	}
	if !found {
		return time.Time{}, time.Time{}, 0
	}
	return start, end, end.Sub(start).Seconds()
}
