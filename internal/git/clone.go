package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Clone clones url into a new directory under parentDir and returns its path.
func (c *Client) Clone(ctx context.Context, url, parentDir string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", fmt.Errorf("empty repository URL")
	}
	if err := os.MkdirAll(parentDir, 0o750); err != nil {
		return "", fmt.Errorf("create clone parent: %w", err)
	}
	target := filepath.Join(parentDir, repositoryName(url))
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("directory %s already exists", target)
	}
	if _, err := c.run(ctx, parentDir, nil, "clone", url, target); err != nil {
		return "", err
	}
	return target, nil
}

// Version returns the installed git version.
func (c *Client) Version(ctx context.Context) (*semver.Version, error) {
	out, err := c.run(ctx, "", nil, "--version")
	if err != nil {
		return nil, err
	}
	return parseVersion(out)
}

// MinimumVersion is the oldest git understood by the status parser.
const MinimumVersion = "2.11.0"

// CheckVersion fails when the installed git is older than minimum.
func (c *Client) CheckVersion(ctx context.Context, minimum string) error {
	required, err := semver.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum git version %q: %w", minimum, err)
	}
	current, err := c.Version(ctx)
	if err != nil {
		return err
	}
	if current.LessThan(required) {
		return fmt.Errorf("git %s is too old, %s or newer is required", current, required)
	}
	return nil
}

// parseVersion reads "git version 2.43.0", tolerating vendor suffixes such as
// ".windows.1" or " (Apple Git-146)".
func parseVersion(out string) (*semver.Version, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "version" {
		return nil, fmt.Errorf("unexpected git version output %q", out)
	}
	parts := strings.Split(fields[2], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return semver.NewVersion(strings.Join(parts, "."))
}
