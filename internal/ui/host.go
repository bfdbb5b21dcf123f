// Package ui defines the host surface actions talk to and a terminal
// implementation of it.
package ui

import (
	"context"

	"github.com/chmouel/lazyscm/internal/models"
)

// MessageOptions control how a notice is shown.
type MessageOptions struct {
	Modal bool
}

// InputOptions configure a text prompt.
type InputOptions struct {
	Title          string
	Prompt         string
	Placeholder    string
	Value          string
	IgnoreFocusOut bool
}

// PickItem is one entry of a pick list.
type PickItem struct {
	Label       string
	Description string
	Detail      string
}

// PickOptions configure a pick list.
type PickOptions struct {
	Title          string
	Placeholder    string
	IgnoreFocusOut bool
}

// Output is the persistent diagnostic panel.
type Output interface {
	Appendln(line string)
	Show()
}

// Host is everything actions need from the user interface. Every prompt
// returns false as its second value when the user dismisses it.
type Host interface {
	ShowInformation(ctx context.Context, message string, items ...string) (string, bool)
	ShowWarning(ctx context.Context, message string, opts MessageOptions, items ...string) (string, bool)
	ShowError(ctx context.Context, message string, items ...string) (string, bool)
	InputBox(ctx context.Context, opts InputOptions) (string, bool)
	QuickPick(ctx context.Context, items []PickItem, opts PickOptions) (int, bool)
	Output() Output
	WithProgress(ctx context.Context, title string, fn func(ctx context.Context) error) error
	OpenFile(ctx context.Context, ref models.Reference) error
	OpenDiff(ctx context.Context, left, right models.Reference, title string) error
	FocusedPath() string
}
