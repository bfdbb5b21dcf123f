package ui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/chmouel/lazyscm/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	inputs  []string
	selects []int
	err     error

	inputOpts []InputOptions
	labels    [][]string
}

func (f *fakePrompter) Input(_ context.Context, opts InputOptions) (string, error) {
	f.inputOpts = append(f.inputOpts, opts)
	if f.err != nil {
		return "", f.err
	}
	if len(f.inputs) == 0 {
		return "", ErrDismissed
	}
	v := f.inputs[0]
	f.inputs = f.inputs[1:]
	return v, nil
}

func (f *fakePrompter) Select(_ context.Context, _, _ string, labels []string) (int, error) {
	f.labels = append(f.labels, labels)
	if f.err != nil {
		return -1, f.err
	}
	if len(f.selects) == 0 {
		return -1, ErrDismissed
	}
	v := f.selects[0]
	f.selects = f.selects[1:]
	return v, nil
}

type fakeContent struct {
	data map[string]string
	diff string
	err  error
}

func (f fakeContent) Read(_ context.Context, ref models.Reference) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.data[ref.String()]), nil
}

func (f fakeContent) Diff(_ context.Context, left, right models.Reference, title string) (string, error) {
	return "=== " + title + " ===\n" + left.String() + " -> " + right.String() + "\n" + f.diff, f.err
}

func newTestTerminal(p *fakePrompter) (*Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	return NewTerminal(TerminalOptions{In: &bytes.Buffer{}, Out: &out, Prompter: p, Width: 60}), &out
}

func TestNoticeWithoutItems(t *testing.T) {
	p := &fakePrompter{}
	term, out := newTestTerminal(p)

	choice, ok := term.ShowInformation(context.Background(), "There are no changes to commit.")

	assert.False(t, ok)
	assert.Empty(t, choice)
	assert.Equal(t, "info: There are no changes to commit.\n", out.String())
	assert.Empty(t, p.labels)
}

func TestNoticeWithItems(t *testing.T) {
	p := &fakePrompter{selects: []int{0}}
	term, out := newTestTerminal(p)

	choice, ok := term.ShowError(context.Background(), "Operation failed: boom", "Open Log")

	assert.True(t, ok)
	assert.Equal(t, "Open Log", choice)
	assert.Contains(t, out.String(), "error: Operation failed: boom")
	assert.Equal(t, [][]string{{"Open Log"}}, p.labels)
}

func TestNoticeDismissed(t *testing.T) {
	p := &fakePrompter{}
	term, _ := newTestTerminal(p)

	_, ok := term.ShowWarning(context.Background(), "Discard?", MessageOptions{Modal: true}, "Discard Changes")
	assert.False(t, ok)
}

func TestNoticeWraps(t *testing.T) {
	term, out := newTestTerminal(&fakePrompter{})
	long := "Can't push refs to remote. Try running 'Pull' first to integrate your changes with the upstream branch."

	term.ShowWarning(context.Background(), long, MessageOptions{})

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	assert.Greater(t, len(lines), 1)
	assert.True(t, bytes.HasPrefix(lines[1], []byte("         ")))
}

func TestInputBox(t *testing.T) {
	p := &fakePrompter{inputs: []string{"feature"}}
	term, _ := newTestTerminal(p)

	v, ok := term.InputBox(context.Background(), InputOptions{Prompt: "Branch name", Value: "x"})
	assert.True(t, ok)
	assert.Equal(t, "feature", v)
	assert.Equal(t, "x", p.inputOpts[0].Value)

	_, ok = term.InputBox(context.Background(), InputOptions{})
	assert.False(t, ok)
}

func TestInputBoxError(t *testing.T) {
	p := &fakePrompter{err: errors.New("tty gone")}
	term, _ := newTestTerminal(p)

	_, ok := term.InputBox(context.Background(), InputOptions{})
	assert.False(t, ok)
}

func TestQuickPick(t *testing.T) {
	p := &fakePrompter{selects: []int{1}}
	term, _ := newTestTerminal(p)

	idx, ok := term.QuickPick(context.Background(), []PickItem{
		{Label: "main", Description: "01234567"},
		{Label: "v1", Description: "Tag at 89abcdef"},
	}, PickOptions{Title: "Checkout"})

	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []string{"main  01234567", "v1  Tag at 89abcdef"}, p.labels[0])

	_, ok = term.QuickPick(context.Background(), nil, PickOptions{})
	assert.False(t, ok)
}

func TestQuickPickRendersDetail(t *testing.T) {
	p := &fakePrompter{selects: []int{0}}
	term, _ := newTestTerminal(p)

	_, ok := term.QuickPick(context.Background(), []PickItem{
		{Label: "Commit", Description: "commit", Detail: "recently used"},
		{Label: "Pull", Detail: "recently used"},
	}, PickOptions{})

	assert.True(t, ok)
	assert.Equal(t, []string{"Commit  commit  [recently used]", "Pull  [recently used]"}, p.labels[0])
}

func TestQuickPickOutOfRange(t *testing.T) {
	p := &fakePrompter{selects: []int{5}}
	term, _ := newTestTerminal(p)

	_, ok := term.QuickPick(context.Background(), []PickItem{{Label: "a"}}, PickOptions{})
	assert.False(t, ok)
}

func TestOpenFileWritesContent(t *testing.T) {
	term, out := newTestTerminal(&fakePrompter{})
	term.SetContent(fakeContent{data: map[string]string{"file:a.txt": "hello"}})

	require.NoError(t, term.OpenFile(context.Background(), models.WorkingRef("a.txt")))
	assert.Equal(t, "=== file:a.txt ===\nhello\n", out.String())
}

func TestOpenDiff(t *testing.T) {
	term, out := newTestTerminal(&fakePrompter{})
	term.SetContent(fakeContent{diff: "-old\n+new\n"})

	require.NoError(t, term.OpenDiff(context.Background(), models.HistoricalRef("a.txt", "."), models.WorkingRef("a.txt"), "a.txt (Working Folder)"))
	assert.Contains(t, out.String(), "=== a.txt (Working Folder) ===")
	assert.Contains(t, out.String(), "git:a.txt@. -> file:a.txt")
}

func TestOpenWithoutContent(t *testing.T) {
	term, _ := newTestTerminal(&fakePrompter{})

	assert.ErrorIs(t, term.OpenFile(context.Background(), models.WorkingRef("a.txt")), ErrNoContent)
	assert.ErrorIs(t, term.OpenDiff(context.Background(), models.WorkingRef("a"), models.WorkingRef("b"), ""), ErrNoContent)
}

func TestOpenFileReadError(t *testing.T) {
	term, _ := newTestTerminal(&fakePrompter{})
	term.SetContent(fakeContent{err: errors.New("bad revision")})

	assert.EqualError(t, term.OpenFile(context.Background(), models.HistoricalRef("a.txt", ".")), "bad revision")
}

func TestWithProgressNonInteractive(t *testing.T) {
	term, out := newTestTerminal(&fakePrompter{})

	err := term.WithProgress(context.Background(), "Pulling...", func(context.Context) error {
		return errors.New("diverged")
	})

	assert.EqualError(t, err, "diverged")
	assert.Equal(t, "Pulling...\n", out.String())
}

func TestFocusedPath(t *testing.T) {
	term, _ := newTestTerminal(&fakePrompter{})
	assert.Empty(t, term.FocusedPath())
	term.SetFocused("a.txt")
	assert.Equal(t, "a.txt", term.FocusedPath())
}

func TestOutputShowPagesLog(t *testing.T) {
	term, out := newTestTerminal(&fakePrompter{})

	term.Output().Appendln("[push] git push failed")
	term.Output().Show()

	assert.Contains(t, out.String(), "output: [push] git push failed")
	assert.Equal(t, []string{"[push] git push failed"}, term.output.Entries())
}
