package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	log "github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/models"
	"github.com/chmouel/lazyscm/internal/theme"
)

// ErrNoContent is returned when a view is requested with no repository open.
var ErrNoContent = errors.New("no repository is open to read content from")

// Content reads file versions for display.
type Content interface {
	Read(ctx context.Context, ref models.Reference) ([]byte, error)
	Diff(ctx context.Context, left, right models.Reference, title string) (string, error)
}

// TerminalOptions configure a Terminal.
type TerminalOptions struct {
	In          io.Reader
	Out         io.Writer
	Theme       string
	Pager       string
	Interactive bool
	Width       int
	Icons       bool
	LogLines    int
	Prompter    Prompter
}

// Terminal is the Host used by the lazyscm binary.
type Terminal struct {
	mu sync.RWMutex

	in          io.Reader
	out         io.Writer
	styles      Styles
	prompter    Prompter
	pager       string
	interactive bool
	width       int
	spinner     spinner.Spinner
	content     Content
	focused     string
	output      *LogOutput
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec
}

// TerminalWidth returns the width of f, or 0 when it is not a terminal.
func TerminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd())) //nolint:gosec
	if err != nil {
		return 0
	}
	return w
}

// NewTerminal builds a terminal host.
func NewTerminal(opts TerminalOptions) *Terminal {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.LogLines <= 0 {
		opts.LogLines = 200
	}
	t := &Terminal{
		in:          opts.In,
		out:         opts.Out,
		styles:      NewStyles(theme.Get(opts.Theme), !opts.Interactive),
		prompter:    opts.Prompter,
		pager:       opts.Pager,
		interactive: opts.Interactive,
		width:       opts.Width,
		spinner:     spinner.Line,
	}
	if opts.Icons {
		t.spinner = spinner.Dot
	}
	if t.prompter == nil {
		t.prompter = HuhPrompter{In: opts.In, Out: opts.Out, Accessible: !opts.Interactive}
	}
	t.output = NewLogOutput(t.page, opts.LogLines)
	return t
}

// SetContent sets the provider backing OpenFile and OpenDiff.
func (t *Terminal) SetContent(c Content) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.content = c
}

// SetFocused sets the path actions fall back to when given no arguments.
func (t *Terminal) SetFocused(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.focused = path
}

// FocusedPath implements Host.
func (t *Terminal) FocusedPath() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.focused
}

func (t *Terminal) notice(ctx context.Context, sev Severity, message string, modal bool, items []string) (string, bool) {
	fmt.Fprintln(t.out, t.styles.Notice(sev, message, t.width, modal))
	if len(items) == 0 {
		return "", false
	}
	idx, err := t.prompter.Select(ctx, "Choose an action", "", items)
	if err != nil || idx < 0 || idx >= len(items) {
		return "", false
	}
	return items[idx], true
}

// ShowInformation implements Host.
func (t *Terminal) ShowInformation(ctx context.Context, message string, items ...string) (string, bool) {
	return t.notice(ctx, SeverityInfo, message, false, items)
}

// ShowWarning implements Host.
func (t *Terminal) ShowWarning(ctx context.Context, message string, opts MessageOptions, items ...string) (string, bool) {
	return t.notice(ctx, SeverityWarning, message, opts.Modal, items)
}

// ShowError implements Host.
func (t *Terminal) ShowError(ctx context.Context, message string, items ...string) (string, bool) {
	return t.notice(ctx, SeverityError, message, false, items)
}

// InputBox implements Host.
func (t *Terminal) InputBox(ctx context.Context, opts InputOptions) (string, bool) {
	value, err := t.prompter.Input(ctx, opts)
	if err != nil {
		if !errors.Is(err, ErrDismissed) {
			log.Printf("ui: input %q: %v", opts.Prompt, err)
		}
		return "", false
	}
	return value, true
}

// QuickPick implements Host.
func (t *Terminal) QuickPick(ctx context.Context, items []PickItem, opts PickOptions) (int, bool) {
	if len(items) == 0 {
		return -1, false
	}
	labels := make([]string, 0, len(items))
	for _, item := range items {
		label := item.Label
		if item.Description != "" {
			label += "  " + t.styles.Muted(item.Description)
		}
		if item.Detail != "" {
			label += "  " + t.styles.Muted("["+item.Detail+"]")
		}
		labels = append(labels, label)
	}
	title := opts.Title
	if title == "" {
		title = opts.Placeholder
	}
	idx, err := t.prompter.Select(ctx, title, opts.Placeholder, labels)
	if err != nil || idx < 0 || idx >= len(items) {
		if err != nil && !errors.Is(err, ErrDismissed) {
			log.Printf("ui: pick %q: %v", title, err)
		}
		return -1, false
	}
	return idx, true
}

// Output implements Host.
func (t *Terminal) Output() Output {
	return t.output
}

// WithProgress implements Host. Interactive terminals get a spinner; others
// a start line.
func (t *Terminal) WithProgress(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	if !t.interactive {
		fmt.Fprintln(t.out, t.styles.Muted(title))
		return fn(ctx)
	}
	return runProgress(ctx, title, t.spinner, fn,
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(t.out),
	)
}

func (t *Terminal) source() (Content, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.content == nil {
		return nil, ErrNoContent
	}
	return t.content, nil
}

// OpenFile implements Host.
func (t *Terminal) OpenFile(ctx context.Context, ref models.Reference) error {
	c, err := t.source()
	if err != nil {
		return err
	}
	data, err := c.Read(ctx, ref)
	if err != nil {
		return err
	}
	header := t.styles.Accent("=== " + ref.String() + " ===")
	t.page(header + "\n" + string(data))
	return nil
}

// OpenDiff implements Host.
func (t *Terminal) OpenDiff(ctx context.Context, left, right models.Reference, title string) error {
	c, err := t.source()
	if err != nil {
		return err
	}
	text, err := c.Diff(ctx, left, right, title)
	if err != nil {
		return err
	}
	t.page(text)
	return nil
}

// page shows text through the pager on interactive terminals and writes it
// straight out otherwise.
func (t *Terminal) page(text string) {
	if !t.interactive {
		fmt.Fprint(t.out, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(t.out)
		}
		return
	}

	pager := PagerCommand(t.pager)
	// #nosec G204 -- pager is user-configured and trusted
	cmd := exec.Command("sh", "-c", pager)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = t.out
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), PagerEnv(pager)...)
	if err := cmd.Run(); err != nil {
		log.Printf("ui: pager %q: %v", pager, err)
		fmt.Fprint(t.out, text)
	}
}

var _ Host = (*Terminal)(nil)
