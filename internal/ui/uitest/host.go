// Package uitest provides a scripted ui.Host that records what it shows.
package uitest

import (
	"context"
	"sync"

	"github.com/chmouel/lazyscm/internal/models"
	"github.com/chmouel/lazyscm/internal/ui"
)

// Message is one notice shown through the host.
type Message struct {
	Severity string
	Text     string
	Modal    bool
	Items    []string
}

// Opened is one view the host was asked to show.
type Opened struct {
	Left  *models.Reference
	Right models.Reference
	Title string
}

// Answer scripts the response to one prompt.
type Answer struct {
	Text   string
	Index  int
	Choice string
	OK     bool
}

// Output records appended lines and Show calls.
type Output struct {
	mu    sync.Mutex
	Lines []string
	Shown int
}

// Appendln implements ui.Output.
func (o *Output) Appendln(line string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Lines = append(o.Lines, line)
}

// Show implements ui.Output.
func (o *Output) Show() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Shown++
}

// Host answers prompts from queues and records everything else. An empty
// queue answers as a dismissal.
type Host struct {
	mu sync.Mutex

	Focused string

	Inputs   []Answer
	Picks    []Answer
	Choices  []Answer
	Messages []Message
	Prompts  []ui.InputOptions
	PickSets [][]ui.PickItem
	Opened   []Opened
	Progress []string

	OpenErr error
	Out     Output
}

// New returns an empty host.
func New() *Host {
	return &Host{}
}

// Input queues a text answer.
func (h *Host) Input(text string) *Host {
	h.Inputs = append(h.Inputs, Answer{Text: text, OK: true})
	return h
}

// Pick queues a pick-list answer.
func (h *Host) Pick(index int) *Host {
	h.Picks = append(h.Picks, Answer{Index: index, OK: true})
	return h
}

// Choose queues the item chosen on the next notice.
func (h *Host) Choose(item string) *Host {
	h.Choices = append(h.Choices, Answer{Choice: item, OK: true})
	return h
}

// Dismiss queues a dismissal on the next notice.
func (h *Host) Dismiss() *Host {
	h.Choices = append(h.Choices, Answer{})
	return h
}

// Severities returns the severity of each recorded notice.
func (h *Host) Severities() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, m := range h.Messages {
		out = append(out, m.Severity)
	}
	return out
}

// Count returns how many notices of severity were shown.
func (h *Host) Count(severity string) int {
	n := 0
	for _, s := range h.Severities() {
		if s == severity {
			n++
		}
	}
	return n
}

func (h *Host) notice(m Message) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Messages = append(h.Messages, m)
	if len(m.Items) == 0 || len(h.Choices) == 0 {
		return "", false
	}
	next := h.Choices[0]
	h.Choices = h.Choices[1:]
	return next.Choice, next.OK
}

// ShowInformation implements ui.Host.
func (h *Host) ShowInformation(_ context.Context, message string, items ...string) (string, bool) {
	return h.notice(Message{Severity: "info", Text: message, Items: items})
}

// ShowWarning implements ui.Host.
func (h *Host) ShowWarning(_ context.Context, message string, opts ui.MessageOptions, items ...string) (string, bool) {
	return h.notice(Message{Severity: "warning", Text: message, Modal: opts.Modal, Items: items})
}

// ShowError implements ui.Host.
func (h *Host) ShowError(_ context.Context, message string, items ...string) (string, bool) {
	return h.notice(Message{Severity: "error", Text: message, Items: items})
}

// InputBox implements ui.Host.
func (h *Host) InputBox(_ context.Context, opts ui.InputOptions) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Prompts = append(h.Prompts, opts)
	if len(h.Inputs) == 0 {
		return "", false
	}
	next := h.Inputs[0]
	h.Inputs = h.Inputs[1:]
	return next.Text, next.OK
}

// QuickPick implements ui.Host.
func (h *Host) QuickPick(_ context.Context, items []ui.PickItem, _ ui.PickOptions) (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.PickSets = append(h.PickSets, items)
	if len(h.Picks) == 0 {
		return -1, false
	}
	next := h.Picks[0]
	h.Picks = h.Picks[1:]
	return next.Index, next.OK
}

// Output implements ui.Host.
func (h *Host) Output() ui.Output {
	return &h.Out
}

// WithProgress implements ui.Host.
func (h *Host) WithProgress(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	h.mu.Lock()
	h.Progress = append(h.Progress, title)
	h.mu.Unlock()
	return fn(ctx)
}

// OpenFile implements ui.Host.
func (h *Host) OpenFile(_ context.Context, ref models.Reference) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.OpenErr != nil {
		return h.OpenErr
	}
	h.Opened = append(h.Opened, Opened{Right: ref})
	return nil
}

// OpenDiff implements ui.Host.
func (h *Host) OpenDiff(_ context.Context, left, right models.Reference, title string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.OpenErr != nil {
		return h.OpenErr
	}
	h.Opened = append(h.Opened, Opened{Left: &left, Right: right, Title: title})
	return nil
}

// FocusedPath implements ui.Host.
func (h *Host) FocusedPath() string {
	return h.Focused
}

var _ ui.Host = (*Host)(nil)
