package git

import (
	"strings"

	"github.com/chmouel/lazyscm/internal/models"
)

// parsePorcelainZ parses `git status --porcelain=v1 -z`. Renames and copies
// carry their source path as the following NUL-separated field.
func parsePorcelainZ(raw string) []models.FileStatus {
	var files []models.FileStatus
	fields := strings.Split(raw, "\x00")
	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if len(entry) < 4 {
			continue
		}
		fs := models.FileStatus{X: entry[0], Y: entry[1], Path: entry[3:]}
		if (fs.X == 'R' || fs.X == 'C') && i+1 < len(fields) {
			i++
			fs.OrigPath = fields[i]
		}
		files = append(files, fs)
	}
	return files
}

// parseRefs parses `for-each-ref --format=%(refname)%00%(objectname)`.
func parseRefs(raw string) []models.Ref {
	var refs []models.Ref
	for _, line := range strings.Split(raw, "\n") {
		name, commit, ok := strings.Cut(strings.TrimSpace(line), "\x00")
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(name, "refs/heads/"):
			refs = append(refs, models.Ref{Kind: models.RefBranch, Name: strings.TrimPrefix(name, "refs/heads/"), Commit: commit})
		case strings.HasPrefix(name, "refs/tags/"):
			refs = append(refs, models.Ref{Kind: models.RefTag, Name: strings.TrimPrefix(name, "refs/tags/"), Commit: commit})
		case strings.HasPrefix(name, "refs/remotes/"):
			short := strings.TrimPrefix(name, "refs/remotes/")
			if strings.HasSuffix(short, "/HEAD") {
				continue
			}
			remote, _, _ := strings.Cut(short, "/")
			refs = append(refs, models.Ref{Kind: models.RefRemoteHead, Name: short, Commit: commit, Remote: remote})
		}
	}
	return refs
}

// repositoryName derives a clone directory name from a remote URL.
func repositoryName(url string) string {
	url = strings.TrimSpace(url)
	url = strings.TrimRight(url, "/")
	url = strings.TrimSuffix(url, ".git")
	if idx := strings.LastIndexAny(url, "/:"); idx >= 0 {
		url = url[idx+1:]
	}
	if url == "" {
		return "repository"
	}
	return url
}
