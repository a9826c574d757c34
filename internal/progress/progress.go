// Package progress reports long-running fetches on stderr. Terminals get
// an animated spinner; anything else gets one plain line per step.
package progress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/Cloudsky01/gh-timeline/internal/theme"
)

// ErrInterrupted is returned when the user aborts a step with ctrl+c.
var ErrInterrupted = errors.New("interrupted")

type Reporter struct {
	out         io.Writer
	interactive bool
}

// New reports to out, animating only when out is a terminal.
func New(out *os.File) *Reporter {
	return &Reporter{out: out, interactive: IsTerminal(out)}
}

// NewPlain never animates.
func NewPlain(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run calls fn while showing message. The context handed to fn is
// cancelled if the user interrupts the spinner.
func (r *Reporter) Run(ctx context.Context, message string, fn func(ctx context.Context) error) error {
	if !r.interactive {
		fmt.Fprintf(r.out, "%s...\n", message)
		return fn(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(r.out), tea.WithContext(ctx))

	go func() {
		err := fn(ctx)
		p.Send(spinnerCompleteMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}

	sm, ok := final.(spinnerModel)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	if !sm.done {
		return ErrInterrupted
	}
	return sm.err
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerCompleteMsg struct {
	err error
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Current.Spinner
	return spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case spinnerCompleteMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	t := theme.Current
	if m.done {
		if m.err == nil {
			return t.Success.Render(t.Icons.Success+" "+m.message) + "\n"
		}
		return t.ErrorLine(m.message+" failed") + "\n"
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), t.Muted.Render(m.message+"..."))
}
