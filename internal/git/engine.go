// Package git implements the version-control engine on top of the git CLI.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	log "github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/models"
)

// LookupPath is used to find executables in PATH. Tests replace it to avoid
// depending on system binaries being installed.
var LookupPath = exec.LookPath

// Client runs git commands that do not need an opened repository and opens
// repositories into Engines.
type Client struct {
	gitPath     string
	showIgnored bool
}

// Option configures a Client.
type Option func(*Client)

// WithGitPath sets the git executable. Empty keeps the default.
func WithGitPath(path string) Option {
	return func(c *Client) {
		if path = strings.TrimSpace(path); path != "" {
			c.gitPath = path
		}
	}
}

// WithIgnored makes status report ignored files.
func WithIgnored(show bool) Option {
	return func(c *Client) { c.showIgnored = show }
}

// NewClient constructs a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{gitPath: "git"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Engine is a git working copy. All paths it accepts and returns are
// relative to Root.
type Engine struct {
	client *Client
	root   string
}

// Open resolves the repository containing path.
func (c *Client) Open(ctx context.Context, path string) (*Engine, error) {
	out, err := c.run(ctx, path, nil, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, err
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return nil, &Error{Command: "rev-parse --show-toplevel", Code: ErrorCodeNotAGitRepository}
	}
	return &Engine{client: c, root: filepath.Clean(root)}, nil
}

// Root returns the repository top-level directory.
func (e *Engine) Root() string {
	return e.root
}

func debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// run executes git in cwd and returns stdout. Failures come back as *Error.
func (c *Client) run(ctx context.Context, cwd string, stdin io.Reader, args ...string) (string, error) {
	return c.runAllowing(ctx, cwd, stdin, []int{0}, args...)
}

func (c *Client) runAllowing(ctx context.Context, cwd string, stdin io.Reader, okCodes []int, args ...string) (string, error) {
	command := strings.Join(args, " ")
	debugf("run: git %s (cwd=%s)", command, cwd)

	// #nosec G204 -- arguments come from internal code paths and are not shell interpolated
	cmd := exec.CommandContext(ctx, c.gitPath, args...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	cmd.Env = append(os.Environ(), "LC_ALL=C", "GIT_TERMINAL_PROMPT=0", "GIT_OPTIONAL_LOCKS=0")
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && slices.Contains(okCodes, exitErr.ExitCode()) {
			debugf("ok: git %s (exit %d)", command, exitErr.ExitCode())
			return stdout.String(), nil
		}
		gitErr := newError(command, err, stdout.String(), stderr.String())
		debugf("error: %v: %s", gitErr, strings.TrimSpace(stderr.String()))
		return "", gitErr
	}

	debugf("ok: git %s", command)
	return stdout.String(), nil
}

func (e *Engine) git(ctx context.Context, args ...string) (string, error) {
	return e.client.run(ctx, e.root, nil, args...)
}

// Status reads HEAD, refs, remotes and the porcelain file list.
func (e *Engine) Status(ctx context.Context) (*models.Snapshot, error) {
	args := []string{"status", "--porcelain=v1", "-z", "-uall"}
	if e.client.showIgnored {
		args = append(args, "--ignored")
	}
	raw, err := e.git(ctx, args...)
	if err != nil {
		return nil, err
	}

	snap := &models.Snapshot{Files: parsePorcelainZ(raw)}
	if snap.HEAD, err = e.head(ctx); err != nil {
		return nil, err
	}
	if snap.Refs, err = e.refs(ctx); err != nil {
		return nil, err
	}
	if snap.Remotes, err = e.remotes(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

func (e *Engine) head(ctx context.Context) (*models.Ref, error) {
	name, err := e.client.runAllowing(ctx, e.root, nil, []int{0, 1}, "symbolic-ref", "-q", "--short", "HEAD")
	if err != nil {
		return nil, err
	}
	// An unborn branch has a name but no commit yet.
	commit, _ := e.client.runAllowing(ctx, e.root, nil, []int{0, 1}, "rev-parse", "--verify", "-q", "HEAD")
	head := &models.Ref{Kind: models.RefBranch, Name: strings.TrimSpace(name), Commit: strings.TrimSpace(commit)}
	if head.Name == "" && head.Commit == "" {
		return nil, nil
	}
	return head, nil
}

func (e *Engine) refs(ctx context.Context) ([]models.Ref, error) {
	raw, err := e.git(ctx, "for-each-ref", "--format=%(refname)%00%(objectname)", "refs/heads", "refs/tags", "refs/remotes")
	if err != nil {
		return nil, err
	}
	return parseRefs(raw), nil
}

func (e *Engine) remotes(ctx context.Context) ([]string, error) {
	raw, err := e.git(ctx, "remote")
	if err != nil {
		return nil, err
	}
	var remotes []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			remotes = append(remotes, line)
		}
	}
	return remotes, nil
}

// Stage adds paths to the index, including deletions.
func (e *Engine) Stage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := e.git(ctx, append([]string{"add", "-A", "--"}, paths...)...)
	return err
}

// Unstage removes paths from the index, keeping working tree changes.
func (e *Engine) Unstage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if _, err := e.client.runAllowing(ctx, e.root, nil, []int{0}, "rev-parse", "--verify", "-q", "HEAD"); err != nil {
		// Nothing committed yet: unstaging means dropping from the index.
		_, err = e.git(ctx, append([]string{"rm", "--cached", "-r", "-q", "--"}, paths...)...)
		return err
	}
	_, err := e.git(ctx, append([]string{"reset", "-q", "HEAD", "--"}, paths...)...)
	return err
}

// Clean discards working tree changes. Untracked and ignored resources are
// deleted.
func (e *Engine) Clean(ctx context.Context, resources ...*models.Resource) error {
	var tracked, untracked, ignored []string
	for _, r := range resources {
		switch r.Status {
		case models.StatusUntracked:
			untracked = append(untracked, r.Path)
		case models.StatusIgnored:
			ignored = append(ignored, r.Path)
		default:
			tracked = append(tracked, r.Path)
		}
	}
	if len(untracked) > 0 {
		if _, err := e.git(ctx, append([]string{"clean", "-f", "-q", "--"}, untracked...)...); err != nil {
			return err
		}
	}
	if len(ignored) > 0 {
		if _, err := e.git(ctx, append([]string{"clean", "-f", "-x", "-q", "--"}, ignored...)...); err != nil {
			return err
		}
	}
	if len(tracked) > 0 {
		if _, err := e.git(ctx, append([]string{"checkout", "-q", "--"}, tracked...)...); err != nil {
			return err
		}
	}
	return nil
}

// Commit records a commit with message. With opts.All every working tree
// change, untracked files included, is staged first; the previous index is
// restored when the commit fails.
func (e *Engine) Commit(ctx context.Context, message string, opts models.CommitOptions) error {
	saved := ""
	if opts.All {
		tree, err := e.git(ctx, "write-tree")
		if err != nil {
			// Unmerged entries cannot be written; the add below resolves them.
			debugf("commit: index snapshot unavailable: %v", err)
		}
		saved = strings.TrimSpace(tree)
		if _, err := e.git(ctx, "add", "-A"); err != nil {
			return err
		}
	}
	_, err := e.client.run(ctx, e.root, strings.NewReader(message), "commit", "--quiet", "--allow-empty-message", "--file", "-")
	if err != nil && saved != "" {
		if _, rerr := e.git(ctx, "read-tree", saved); rerr != nil {
			debugf("commit: restoring index: %v", rerr)
		}
	}
	return err
}

// Checkout switches the working copy to ref.
func (e *Engine) Checkout(ctx context.Context, ref string) error {
	_, err := e.git(ctx, "checkout", "-q", ref)
	return err
}

// Branch creates name at HEAD and checks it out.
func (e *Engine) Branch(ctx context.Context, name string) error {
	_, err := e.git(ctx, "checkout", "-q", "-b", name)
	return err
}

// Pull integrates the upstream branch.
func (e *Engine) Pull(ctx context.Context) error {
	_, err := e.git(ctx, "pull")
	return err
}

// Push pushes the current branch. A named remote also sets the upstream.
func (e *Engine) Push(ctx context.Context, remote string) error {
	args := []string{"push"}
	if remote = strings.TrimSpace(remote); remote != "" {
		args = append(args, "-u", remote, "HEAD")
	}
	_, err := e.git(ctx, args...)
	return err
}

// CommitTemplate returns the message git prepared for the next commit: the
// pending merge message, else the configured commit.template, else "".
func (e *Engine) CommitTemplate(ctx context.Context) (string, error) {
	gitDir, err := e.git(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	mergeMsg := filepath.Join(strings.TrimSpace(gitDir), "MERGE_MSG")
	if data, err := os.ReadFile(mergeMsg); err == nil { //nolint:gosec
		return stripCommentLines(string(data)), nil
	}

	templatePath, err := e.client.runAllowing(ctx, e.root, nil, []int{0, 1}, "config", "--path", "commit.template")
	if err != nil {
		return "", err
	}
	templatePath = strings.TrimSpace(templatePath)
	if templatePath == "" {
		return "", nil
	}
	if !filepath.IsAbs(templatePath) {
		templatePath = filepath.Join(e.root, templatePath)
	}
	data, err := os.ReadFile(templatePath) //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("read commit template: %w", err)
	}
	return stripCommentLines(string(data)), nil
}

func stripCommentLines(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
