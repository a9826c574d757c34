package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func at(sec int) *time.Time {
	ts := t0.Add(time.Duration(sec) * time.Second)
	return &ts
}

func job(name string, created, started, completed int) models.Job {
	return models.Job{
		Name:        name,
		Status:      models.StatusCompleted,
		Conclusion:  models.ConclusionSuccess,
		CreatedAt:   *at(created),
		StartedAt:   at(started),
		CompletedAt: at(completed),
	}
}

func run(id int64, name string, created int, jobs ...models.Job) models.WorkflowRun {
	return models.WorkflowRun{
		ID:         id,
		Name:       name,
		Status:     models.StatusCompleted,
		Conclusion: models.ConclusionSuccess,
		CreatedAt:  *at(created),
		Jobs:       jobs,
	}
}

func lineWithPrefix(t *testing.T, out, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	t.Fatalf("no line starting with %q in:\n%s", prefix, out)
	return ""
}

func TestSingleRun(t *testing.T) {
	r := run(42, "CI", 0,
		job("lint", 0, 10, 70),
		job("CI / build (ubuntu-22.04, gcc)", 0, 30, 150),
		models.Job{Name: "pending", Status: models.StatusQueued, CreatedAt: t0},
	)

	out := SingleRun(r, Options{Width: 80})
	lines := strings.Split(out, "\n")

	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, strings.Repeat("=", 80), lines[0])
	assert.Equal(t, "Workflow: CI (Run #42)", lines[1])
	assert.Equal(t, "Status: completed / success", lines[2])

	gcc := lineWithPrefix(t, out, "gcc ")
	assert.Equal(t,
		"gcc"+strings.Repeat(" ", 37)+" "+strings.Repeat("░", 4)+strings.Repeat("█", 16)+"      30s    2m0s   2m30s",
		gcc)

	lint := lineWithPrefix(t, out, "lint ")
	assert.Contains(t, lint, "░"+strings.Repeat("█", 8)+strings.Repeat(" ", 11))

	assert.Less(t, strings.Index(out, gcc), strings.Index(out, lint), "longest job first")
	assert.NotContains(t, out, "pending")

	assert.Contains(t, out, "Wall clock:      2m30s    Sum of run times:       3m0s")
	assert.Contains(t, out, "Max queue:         30s    Sum of queue times:        40s")
	assert.Contains(t, out, "Critical path: gcc (queue 30s, run 2m0s)")
	assert.True(t, strings.HasSuffix(out, Legend))
}

func TestSingleRunIsDeterministic(t *testing.T) {
	r := run(1, "CI", 0, job("a", 0, 5, 60), job("b", 0, 5, 60), job("c", 3, 4, 90))
	assert.Equal(t, SingleRun(r, Options{}), SingleRun(r, Options{}))
}

func TestSingleRunDegenerate(t *testing.T) {
	tests := []struct {
		name string
		run  models.WorkflowRun
		want string
	}{
		{
			name: "no jobs",
			run:  run(1, "CI", 0),
			want: "No jobs found",
		},
		{
			name: "nothing timed",
			run:  run(1, "CI", 0, models.Job{Name: "queued", CreatedAt: t0}),
			want: "No completed jobs with timing info",
		},
		{
			name: "zero wall clock",
			run:  run(1, "CI", 0, job("instant", 0, 0, 0)),
			want: "All jobs completed instantly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SingleRun(tt.run, Options{}))
		})
	}
}

func TestCriticalJobTieKeepsFirst(t *testing.T) {
	jobs := []models.Job{job("first", 0, 1, 50), job("second", 0, 2, 50)}
	assert.Equal(t, "first", criticalJob(jobs).Name)
}

func TestStats(t *testing.T) {
	stats, ok := Stats(run(1, "CI", 0, job("a", 0, 30, 150), job("b", 10, 15, 60)))
	require.True(t, ok)
	assert.Equal(t, 150.0, stats.Wall)
	assert.Equal(t, 165.0, stats.Build)
	assert.Equal(t, 35.0, stats.Queue)
	assert.Equal(t, 30.0, stats.MaxQueue)

	_, ok = Stats(run(2, "CI", 0, models.Job{Name: "queued", CreatedAt: t0}))
	assert.False(t, ok)
}

func TestHistory(t *testing.T) {
	runs := []models.WorkflowRun{
		run(300, "CI", 200, job("a", 200, 210, 260)),
		run(100, "CI", 0, job("a", 0, 30, 150)),
		run(200, "CI", 100, models.Job{Name: "a", CreatedAt: *at(100)}),
	}

	out := History(runs, Options{})

	assert.Contains(t, out, "RUN HISTORY (oldest to newest)")
	first := lineWithPrefix(t, out, "100 ")
	last := lineWithPrefix(t, out, "300 ")
	assert.Less(t, strings.Index(out, first), strings.Index(out, last))
	assert.NotContains(t, out, "200          |", "run without completed jobs is skipped")

	assert.True(t, strings.HasPrefix(first, "100          |   2m30s |    2m0s |     30s | "), "row %q", first)
	assert.Contains(t, out, "Activity: Height shows parallel job count over time (▁▂▃▄▅▆▇█)")

	// input order is untouched
	assert.Equal(t, int64(300), runs[0].ID)
}

func TestComputeDiff(t *testing.T) {
	baseline := run(1, "CI", 0,
		job("build", 0, 30, 150),
		job("lint", 0, 5, 65),
		job("docs", 0, 10, 100),
	)
	compared := run(2, "CI", 0,
		job("build", 0, 30, 80),
		job("lint", 0, 5, 95),
		job("extra", 0, 0, 60),
	)

	res := ComputeDiff(baseline, compared)

	require.Len(t, res.Rows, 4)
	names := []string{res.Rows[0].Name, res.Rows[1].Name, res.Rows[2].Name, res.Rows[3].Name}
	assert.Equal(t, []string{"build", "docs", "extra", "lint"}, names)

	build := res.Rows[0]
	assert.True(t, build.Matched())
	assert.Equal(t, -70.0, build.RunDelta())
	assert.Equal(t, "-1m10s", build.DeltaTag())

	lint := res.Rows[3]
	assert.Equal(t, 30.0, lint.RunDelta())
	assert.Equal(t, "~same", lint.DeltaTag())

	assert.Nil(t, res.Rows[1].Compared)
	assert.Nil(t, res.Rows[2].Baseline)

	assert.Equal(t, -40.0, res.RunDelta)
	assert.Equal(t, 0.0, res.QueueDelta)
	assert.Equal(t, 150.0, res.Scale)
	assert.Equal(t, 150.0, res.BaselineWall)
	assert.Equal(t, 95.0, res.ComparedWall)
}

func TestComputeDiffLaterDuplicateWins(t *testing.T) {
	baseline := run(1, "CI", 0,
		job("build (ubuntu-22.04, gcc)", 0, 0, 10),
		job("build (ubuntu-24.04, gcc)", 0, 0, 500),
	)
	compared := run(2, "CI", 0, job("gcc", 0, 0, 500))

	res := ComputeDiff(baseline, compared)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 0.0, res.Rows[0].RunDelta())
}

func TestComputeDiffEmpty(t *testing.T) {
	res := ComputeDiff(run(1, "CI", 0), run(2, "CI", 0))
	assert.Empty(t, res.Rows)
	assert.Equal(t, 1.0, res.Scale)
}

func TestDiff(t *testing.T) {
	baseline := run(1, "CI", 0, job("build", 0, 30, 150), job("docs", 0, 10, 100))
	compared := run(2, "CI", 0, job("build", 0, 30, 80))

	out := Diff(baseline, compared, Options{})

	assert.Contains(t, out, "COMPARING: Run #1 vs #2")
	build := lineWithPrefix(t, out, "build ")
	assert.True(t, strings.HasSuffix(build, "-1m10s"), "row %q", build)

	docs := lineWithPrefix(t, out, "docs ")
	assert.True(t, strings.HasSuffix(docs, "(missing)"), "row %q", docs)

	wall := lineWithPrefix(t, out, "Wall clock:")
	assert.True(t, strings.HasSuffix(wall, "-1m10s"), "row %q", wall)

	assert.Contains(t, out, "KEY INSIGHT:\n  Run 2 saved 1m10s in actual build time across all jobs.\n\n  Build time savings translated to faster wall clock time.")
	assert.NotContains(t, out, "queue wait time")
}

func TestDiffJobMissingFromBaseline(t *testing.T) {
	baseline := run(1, "CI", 0, job("build", 0, 30, 150))
	compared := run(2, "CI", 0, job("build", 0, 30, 150), job("lint", 0, 5, 20))

	out := Diff(baseline, compared, Options{})

	lint := lineWithPrefix(t, out, "lint ")
	require.Greater(t, len(lint), diffNameWidth+1)
	assert.True(t, strings.HasPrefix(lint[diffNameWidth+1:], "(missing)"), "row %q", lint)
	assert.True(t, strings.HasSuffix(lint, " 20s"), "row %q", lint)
	assert.Equal(t, 1, strings.Count(lint, "(missing)"))
}

func TestInsight(t *testing.T) {
	tests := []struct {
		name string
		res  DiffResult
		want []string
	}{
		{
			name: "unchanged",
			res:  DiffResult{RunDelta: 30, QueueDelta: -10},
			want: []string{"  Actual build times are roughly the same."},
		},
		{
			name: "slower build with more queueing",
			res:  DiffResult{RunDelta: 120, QueueDelta: 90, BaselineWall: 100, ComparedWall: 300},
			want: []string{
				"  Run 2 spent 2m0s MORE in actual build time across all jobs.",
				"  BUT Run 2 had 1m30s MORE queue wait time.",
			},
		},
		{
			name: "faster build lost to queueing",
			res:  DiffResult{RunDelta: -90, QueueDelta: 300, BaselineWall: 100, ComparedWall: 200},
			want: []string{
				"  Run 2 saved 1m30s in actual build time across all jobs.",
				"  BUT Run 2 had 5m0s MORE queue wait time.",
				"",
				"  Despite faster builds, wall clock time increased due to runner queue delays!",
			},
		},
		{
			name: "less queueing",
			res:  DiffResult{QueueDelta: -61},
			want: []string{
				"  Actual build times are roughly the same.",
				"  AND Run 2 had 1m1s LESS queue wait time.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Insight(tt.res))
		})
	}
}

func TestComparison(t *testing.T) {
	runs := []models.WorkflowRun{
		run(1, "CI", 0, job("a", 0, 30, 150)),
		run(2, "Deploy", 0, job("a", 0, 5, 20)),
		run(3, "CI", 0, job("a", 0, 90, 100)),
		run(4, "CI", 0),
	}

	out := Comparison(runs, Options{Width: 60})

	assert.Contains(t, out, "WORKFLOW RUN COMPARISON")
	assert.Less(t, strings.Index(out, "Workflow: CI"), strings.Index(out, "Workflow: Deploy"))
	assert.Contains(t, out, "  Run #1: 2m30s total, 30s max queue")
	assert.Contains(t, out, "  Run #3: 1m40s total, 1m30s max queue")
	assert.Contains(t, out, "  Run #2: 20s total, 5s max queue")
	assert.NotContains(t, out, "Run #4")
}

func TestRunList(t *testing.T) {
	assert.Equal(t, "No runs found", RunList(nil, "o/r"))

	runs := []models.RunSummary{
		{ID: 7, Name: "CI", Status: models.StatusInProgress, CreatedAt: t0},
		{ID: 8, Name: "Deploy", Status: models.StatusCompleted, Conclusion: models.ConclusionFailure, CreatedAt: *at(60)},
	}
	out := RunList(runs, "o/r")

	assert.Contains(t, out, "7            CI"+strings.Repeat(" ", 39)+"in_progress  2024-05-01 10:00:00")
	assert.Contains(t, out, "failure      2024-05-01 10:01:00")
	assert.Contains(t, out, "  timeline <run1> --diff <run2> --repo o/r")
}
