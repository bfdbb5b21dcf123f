package git

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// ErrorCode is the stable machine code of a recognised git failure.
type ErrorCode string

// Recognised failure codes.
const (
	ErrorCodeNone                        ErrorCode = ""
	ErrorCodeGitNotFound                 ErrorCode = "GitNotFound"
	ErrorCodeNotAGitRepository           ErrorCode = "NotAGitRepository"
	ErrorCodeRepositoryNotFound          ErrorCode = "RepositoryNotFound"
	ErrorCodeRepositoryIsLocked          ErrorCode = "RepositoryIsLocked"
	ErrorCodeDirtyWorkTree               ErrorCode = "DirtyWorkTree"
	ErrorCodeConflict                    ErrorCode = "Conflict"
	ErrorCodePushRejected                ErrorCode = "PushRejected"
	ErrorCodeNoUserNameConfigured        ErrorCode = "NoUserNameConfigured"
	ErrorCodeNoUserEmailConfigured       ErrorCode = "NoUserEmailConfigured"
	ErrorCodeNoRemoteRepositorySpecified ErrorCode = "NoRemoteRepositorySpecified"
	ErrorCodeRemoteConnectionError       ErrorCode = "RemoteConnectionError"
	ErrorCodeAuthenticationFailed        ErrorCode = "AuthenticationFailed"
	ErrorCodeBranchAlreadyExists         ErrorCode = "BranchAlreadyExists"
	ErrorCodeInvalidBranchName           ErrorCode = "InvalidBranchName"
	ErrorCodeNoUpstreamBranch            ErrorCode = "NoUpstreamBranch"
)

// Error is a failed git invocation.
type Error struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Code     ErrorCode
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Command)
	if e.ExitCode != 0 {
		msg = fmt.Sprintf("%s (exit %d)", msg, e.ExitCode)
	}
	if e.Code != ErrorCodeNone {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorCode returns the machine code, empty when unrecognised.
func (e *Error) ErrorCode() string { return string(e.Code) }

// Diagnostic returns the raw text git printed on failure.
func (e *Error) Diagnostic() string {
	if strings.TrimSpace(e.Stderr) != "" {
		return e.Stderr
	}
	return e.Stdout
}

// IsErrorCode reports whether err is a git error carrying code.
func IsErrorCode(err error, code ErrorCode) bool {
	var gitErr *Error
	return errors.As(err, &gitErr) && gitErr.Code == code
}

var stderrCodes = []struct {
	re   *regexp.Regexp
	code ErrorCode
}{
	{regexp.MustCompile(`Another git process seems to be running in this repository|If no other git process is currently running`), ErrorCodeRepositoryIsLocked},
	{regexp.MustCompile(`(?i)authentication failed`), ErrorCodeAuthenticationFailed},
	{regexp.MustCompile(`(?i)not a git repository`), ErrorCodeNotAGitRepository},
	{regexp.MustCompile(`(?i)repository '.+' not found|Repository not found`), ErrorCodeRepositoryNotFound},
	{regexp.MustCompile(`(?i)a branch named '.+' already exists`), ErrorCodeBranchAlreadyExists},
	{regexp.MustCompile(`'.+' is not a valid branch name`), ErrorCodeInvalidBranchName},
	{regexp.MustCompile(`Please,? commit your changes or stash them|Your local changes to the following files would be overwritten`), ErrorCodeDirtyWorkTree},
	{regexp.MustCompile(`CONFLICT|Automatic merge failed|fix conflicts and then commit|you need to resolve your current index first|Committing is not possible because you have unmerged files`), ErrorCodeConflict},
	{regexp.MustCompile(`! \[rejected\]|\[rejected\]|failed to push some refs`), ErrorCodePushRejected},
	{regexp.MustCompile(`unable to auto-detect email address`), ErrorCodeNoUserEmailConfigured},
	{regexp.MustCompile(`Please tell me who you are`), ErrorCodeNoUserNameConfigured},
	{regexp.MustCompile(`No configured push destination|does not appear to be a git repository`), ErrorCodeNoRemoteRepositorySpecified},
	{regexp.MustCompile(`has no upstream branch|There is no tracking information for the current branch`), ErrorCodeNoUpstreamBranch},
	{regexp.MustCompile(`Could not read from remote repository|unable to access|Could not resolve host`), ErrorCodeRemoteConnectionError},
}

func classifyStderr(stderr string) ErrorCode {
	for _, entry := range stderrCodes {
		if entry.re.MatchString(stderr) {
			return entry.code
		}
	}
	return ErrorCodeNone
}

func newError(command string, err error, stdout, stderr string) *Error {
	gitErr := &Error{
		Command: command,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		gitErr.ExitCode = exitErr.ExitCode()
		gitErr.Code = classifyStderr(stderr)
	case errors.Is(err, exec.ErrNotFound):
		gitErr.Code = ErrorCodeGitNotFound
	}
	return gitErr
}
