// Package picker lets the user choose a workflow run interactively.
package picker

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/Cloudsky01/gh-timeline/internal/timeline"
	"github.com/Cloudsky01/gh-timeline/pkg/models"
)

// ErrNothingToPick is returned when there are no runs to choose from.
var ErrNothingToPick = errors.New("no runs to choose from")

// Label is the option text shown for a run.
func Label(run models.RunSummary) string {
	return fmt.Sprintf("#%d  %-30s  %-11s  %s",
		run.ID,
		timeline.Truncate(run.Name, 30),
		run.DisplayStatus(),
		run.CreatedAt.UTC().Format("2006-01-02 15:04"),
	)
}

// Options builds one select option per run, keyed by run id.
func Options(runs []models.RunSummary) []huh.Option[int64] {
	options := make([]huh.Option[int64], len(runs))
	for i, run := range runs {
		options[i] = huh.NewOption(Label(run), run.ID)
	}
	return options
}

// PickRun asks the user to select one of runs and returns its id.
func PickRun(title string, runs []models.RunSummary) (int64, error) {
	if len(runs) == 0 {
		return 0, ErrNothingToPick
	}

	selected := runs[0].ID
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title(title).
				Description("Type to filter, enter to confirm.").
				Options(Options(runs)...).
				Filtering(true).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return 0, err
	}
	return selected, nil
}
