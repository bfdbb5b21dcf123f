package dispatch

import (
	"errors"
	"strings"
)

// ErrCancelled marks an action the user abandoned by dismissing a prompt.
// It is never reported.
var ErrCancelled = errors.New("cancelled by user")

// OpenLogItem is the affordance offered with every failure notice.
const OpenLogItem = "Open Log"

// UnavailableMessage is shown when an action needs a repository and none is bound.
const UnavailableMessage = "This action is unavailable: no repository is open in the workspace."

// coded is implemented by failures that carry a machine code.
type coded interface {
	ErrorCode() string
}

// diagnosed is implemented by failures that carry raw diagnostic text.
type diagnosed interface {
	Diagnostic() string
}

var codeMessages = map[string]string{
	"DirtyWorkTree":               "Please clean your repository working tree before checkout.",
	"PushRejected":                "Can't push refs to remote. Try running 'Pull' first to integrate your changes.",
	"Conflict":                    "There are merge conflicts. Resolve them before committing.",
	"NoUserNameConfigured":        "Make sure you configure your 'user.name' and 'user.email' in git.",
	"NoUserEmailConfigured":       "Make sure you configure your 'user.name' and 'user.email' in git.",
	"NoRemoteRepositorySpecified": "Your repository has no remotes configured to push to.",
	"NoUpstreamBranch":            "The current branch has no upstream branch.",
	"AuthenticationFailed":        "Authentication failed with the remote repository.",
	"RepositoryIsLocked":          "Another git process is running in this repository. Try again when it is done.",
	"BranchAlreadyExists":         "A branch with this name already exists.",
	"InvalidBranchName":           "This is not a valid branch name.",
	"GitNotFound":                 "Git was not found. Install it or set git_path in the configuration.",
}

var noisePrefixes = []string{"error:", "fatal:", "warning:", "hint:", "remote:"}

// Classify returns the user-facing message for err, or "" when there is
// nothing worth showing.
func Classify(err error) string {
	if err == nil || errors.Is(err, ErrCancelled) {
		return ""
	}

	var c coded
	if errors.As(err, &c) {
		if msg, ok := codeMessages[c.ErrorCode()]; ok {
			return msg
		}
	}

	var text string
	var d diagnosed
	if errors.As(err, &d) {
		text = d.Diagnostic()
	} else {
		text = err.Error()
	}
	if hint := Hint(text); hint != "" {
		return "Operation failed: " + hint
	}
	return ""
}

// Hint reduces raw diagnostic text to its first meaningful line.
func Hint(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for stripped := true; stripped; {
			stripped = false
			lower := strings.ToLower(line)
			for _, prefix := range noisePrefixes {
				if strings.HasPrefix(lower, prefix) {
					line = strings.TrimSpace(line[len(prefix):])
					stripped = true
				}
			}
		}
		if line != "" {
			return line
		}
	}
	return ""
}
