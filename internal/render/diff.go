package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Cloudsky01/gh-timeline/internal/timeline"
	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

const (
	diffNameWidth = 28
	diffBarWidth  = 16

	// SameThreshold is the run-time change, in seconds, below which a job
	// is considered unchanged.
	SameThreshold = 60.0
)

// DiffRow pairs the jobs sharing a normalized name. Either side may be nil.
type DiffRow struct {
	Name     string
	Baseline *models.Job
	Compared *models.Job
}

// Matched reports whether the job exists in both runs.
func (r DiffRow) Matched() bool {
	return r.Baseline != nil && r.Compared != nil
}

// RunDelta is the change in run time from baseline to compared.
func (r DiffRow) RunDelta() float64 {
	if !r.Matched() {
		return 0
	}
	return r.Compared.RunSeconds() - r.Baseline.RunSeconds()
}

func (r DiffRow) QueueDelta() float64 {
	if !r.Matched() {
		return 0
	}
	return r.Compared.QueueSeconds() - r.Baseline.QueueSeconds()
}

// DeltaTag is "~same" for changes under SameThreshold, otherwise the signed
// run-time change.
func (r DiffRow) DeltaTag() string {
	d := r.RunDelta()
	if math.Abs(d) < SameThreshold {
		return "~same"
	}
	return timeline.FormatDelta(d)
}

// DiffResult holds everything needed to lay out a comparison of two runs.
type DiffResult struct {
	Baseline models.WorkflowRun
	Compared models.WorkflowRun
	Rows     []DiffRow

	// Scale is the longest total duration of any listed job
	Scale float64

	// RunDelta and QueueDelta sum the changes over jobs present in both runs
	RunDelta   float64
	QueueDelta float64

	BaselineWall float64
	ComparedWall float64

	BaselineRunSum   float64
	ComparedRunSum   float64
	BaselineQueueSum float64
	ComparedQueueSum float64
}

func (d DiffResult) WallDelta() float64 {
	return d.ComparedWall - d.BaselineWall
}

// ComputeDiff matches completed jobs of two runs by normalized name. When
// two jobs of one run normalize to the same name, the later one wins.
func ComputeDiff(baseline, compared models.WorkflowRun) DiffResult {
	res := DiffResult{Baseline: baseline, Compared: compared}

	left := jobsByName(baseline)
	right := jobsByName(compared)

	names := make([]string, 0, len(left)+len(right))
	for name := range left {
		names = append(names, name)
	}
	for name := range right {
		if _, ok := left[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		row := DiffRow{Name: name, Baseline: left[name], Compared: right[name]}
		if row.Baseline != nil {
			res.Scale = max(res.Scale, row.Baseline.TotalSeconds())
		}
		if row.Compared != nil {
			res.Scale = max(res.Scale, row.Compared.TotalSeconds())
		}
		res.RunDelta += row.RunDelta()
		res.QueueDelta += row.QueueDelta()
		res.Rows = append(res.Rows, row)
	}
	if len(res.Rows) == 0 {
		res.Scale = 1
	}

	for _, j := range left {
		res.BaselineRunSum += j.RunSeconds()
		res.BaselineQueueSum += j.QueueSeconds()
	}
	for _, j := range right {
		res.ComparedRunSum += j.RunSeconds()
		res.ComparedQueueSum += j.QueueSeconds()
	}

	_, _, res.BaselineWall = models.Span(baseline.Jobs)
	_, _, res.ComparedWall = models.Span(compared.Jobs)
	return res
}

func jobsByName(run models.WorkflowRun) map[string]*models.Job {
	byName := make(map[string]*models.Job)
	for _, j := range run.CompletedJobs() {
		byName[timeline.NormalizeJobName(j.Name)] = &j
	}
	return byName
}

// Diff renders baseline and compared side by side with per-job and
// aggregate deltas and a short narrative of what changed.
func Diff(baseline, compared models.WorkflowRun, opts Options) string {
	res := ComputeDiff(baseline, compared)
	width := opts.width()
	side := diffBarWidth + 7

	lines := banner(fmt.Sprintf("COMPARING: Run #%d vs #%d", baseline.ID, compared.ID), width)
	lines = append(lines,
		"",
		fmt.Sprintf("%-*s %-*s %-*s %10s", diffNameWidth, "Job", diffBarWidth+8, "Run 1", diffBarWidth+8, "Run 2", "Delta"),
		rule("-", width),
	)

	for _, row := range res.Rows {
		name := timeline.Truncate(row.Name, diffNameWidth-2)
		switch {
		case row.Matched():
			lines = append(lines, fmt.Sprintf("%-*s %s  %-*s %10s",
				diffNameWidth, name, diffCell(row.Baseline, res.Scale), side, diffCell(row.Compared, res.Scale), row.DeltaTag()))
		case row.Baseline != nil:
			lines = append(lines, fmt.Sprintf("%-*s %s  %s",
				diffNameWidth, name, diffCell(row.Baseline, res.Scale), "(missing)"))
		default:
			lines = append(lines, fmt.Sprintf("%-*s %-*s  %s",
				diffNameWidth, name, side, "(missing)", diffCell(row.Compared, res.Scale)))
		}
	}
	lines = append(lines, rule("-", width), "")

	total := func(label string, a, b, delta float64) string {
		return fmt.Sprintf("%-*s %*s  %*s  %10s", diffNameWidth, label,
			side, timeline.FormatDuration(a), side, timeline.FormatDuration(b), timeline.FormatDelta(delta))
	}
	lines = append(lines,
		total("Wall clock:", res.BaselineWall, res.ComparedWall, res.WallDelta()),
		total("Sum of run times:", res.BaselineRunSum, res.ComparedRunSum, res.RunDelta),
		total("Sum of queue times:", res.BaselineQueueSum, res.ComparedQueueSum, res.QueueDelta),
		"",
		rule("=", width),
		"KEY INSIGHT:",
	)
	lines = append(lines, Insight(res)...)
	lines = append(lines, rule("=", width), "", Legend)

	return strings.Join(lines, "\n")
}

// diffCell is a bar plus the job's total duration, diffBarWidth+7 runes wide.
func diffCell(j *models.Job, scale float64) string {
	return fmt.Sprintf("%s %6s",
		timeline.RenderBar(j.QueueSeconds(), j.RunSeconds(), scale, diffBarWidth),
		timeline.FormatDuration(j.TotalSeconds()))
}
