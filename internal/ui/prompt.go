package ui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"
)

// ErrDismissed is returned by a Prompter when the user backs out.
var ErrDismissed = errors.New("prompt dismissed")

// Prompter asks the user questions.
type Prompter interface {
	Input(ctx context.Context, opts InputOptions) (string, error)
	Select(ctx context.Context, title, placeholder string, labels []string) (int, error)
}

// HuhPrompter asks questions with huh forms. Accessible mode reads plain
// lines, for input that is not a terminal.
type HuhPrompter struct {
	In         io.Reader
	Out        io.Writer
	Accessible bool
}

func (p HuhPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).WithAccessible(p.Accessible)
	if p.In != nil {
		form = form.WithInput(p.In)
	}
	if p.Out != nil {
		form = form.WithOutput(p.Out)
	}
	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return ErrDismissed
	}
	return err
}

// Input implements Prompter.
func (p HuhPrompter) Input(ctx context.Context, opts InputOptions) (string, error) {
	value := opts.Value
	title := opts.Prompt
	if title == "" {
		title = opts.Title
	}
	field := huh.NewInput().
		Title(title).
		Placeholder(opts.Placeholder).
		Value(&value)
	if err := p.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

// Select implements Prompter.
func (p HuhPrompter) Select(ctx context.Context, title, placeholder string, labels []string) (int, error) {
	options := make([]huh.Option[int], 0, len(labels))
	for i, label := range labels {
		options = append(options, huh.NewOption(label, i))
	}
	choice := -1
	field := huh.NewSelect[int]().
		Title(title).
		Description(placeholder).
		Options(options...).
		Value(&choice)
	if err := p.run(ctx, field); err != nil {
		return -1, err
	}
	return choice, nil
}
