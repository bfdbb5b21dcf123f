package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	log "github.com/chmouel/lazyscm/internal/log"
)

type progressDoneMsg struct {
	err error
}

// progressModel shows a spinner and a title until the operation it tracks
// reports completion.
type progressModel struct {
	spinner spinner.Model
	title   string
	done    bool
	err     error
}

func newProgressModel(title string, frames spinner.Spinner) progressModel {
	s := spinner.New()
	s.Spinner = frames
	return progressModel{spinner: s, title: title}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// runProgress runs fn while a spinner is shown. The spinner stops when fn
// returns; fn is never interrupted by the indicator.
func runProgress(ctx context.Context, title string, frames spinner.Spinner, fn func(ctx context.Context) error, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(newProgressModel(title, frames), opts...)
	errCh := make(chan error, 1)
	go func() {
		err := fn(ctx)
		errCh <- err
		p.Send(progressDoneMsg{err: err})
	}()
	if _, err := p.Run(); err != nil {
		log.Printf("ui: progress indicator for %q: %v", title, err)
	}
	return <-errCh
}
