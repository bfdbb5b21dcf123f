package dispatch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chmouel/lazyscm/internal/git"
	"github.com/stretchr/testify/assert"
)

type diagOnly struct{ text string }

func (e diagOnly) Error() string      { return "handler failed" }
func (e diagOnly) Diagnostic() string { return e.text }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "cancelled", err: ErrCancelled, want: ""},
		{name: "wrapped cancel", err: fmt.Errorf("commit: %w", ErrCancelled), want: ""},
		{
			name: "known code",
			err:  &git.Error{Command: "checkout", Code: git.ErrorCodeDirtyWorkTree, Stderr: "error: Your local changes would be overwritten"},
			want: "Please clean your repository working tree before checkout.",
		},
		{
			name: "wrapped known code",
			err:  fmt.Errorf("push: %w", &git.Error{Command: "push", Code: git.ErrorCodePushRejected}),
			want: "Can't push refs to remote. Try running 'Pull' first to integrate your changes.",
		},
		{
			name: "unknown code falls back to hint",
			err:  &git.Error{Command: "pull", Code: git.ErrorCodeRemoteConnectionError, Stderr: "\nfatal: unable to access 'https://x/': Could not resolve host\n"},
			want: "Operation failed: unable to access 'https://x/': Could not resolve host",
		},
		{
			name: "unclassified git error",
			err:  &git.Error{Command: "merge", Stderr: "  \nerror: something odd\nmore"},
			want: "Operation failed: something odd",
		},
		{name: "empty diagnostic", err: diagOnly{text: ""}, want: ""},
		{name: "whitespace diagnostic", err: diagOnly{text: " \n\t\n"}, want: ""},
		{name: "plain error", err: errors.New("disk full"), want: "Operation failed: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "\n\n  \n", want: ""},
		{in: "fatal: bad revision", want: "bad revision"},
		{in: "remote: error: denied", want: "denied"},
		{in: "Hint: try again", want: "try again"},
		{in: "error:\nwarning: second line", want: "second line"},
		{in: "plain text\nfatal: later", want: "plain text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Hint(tt.in), "input %q", tt.in)
	}
}
