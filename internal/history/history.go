// Package history persists palette usage per repository.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chmouel/lazyscm/internal/models"
)

const (
	defaultDirPerms  = 0o750
	defaultFilePerms = 0o600

	// MaxEntries bounds the stored usage list.
	MaxEntries = 100
)

// Usage tracks usage frequency and recency for one palette action.
type Usage struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Count     int    `json:"count"`
}

// RepoKey derives a stable directory name for a repository root.
func RepoKey(root string) string {
	if root == "" {
		return "_global"
	}
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Base(root) + "-" + hex.EncodeToString(sum[:4])
}

// DefaultDir returns $XDG_STATE_HOME/lazyscm, falling back to
// ~/.local/state/lazyscm.
func DefaultDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lazyscm")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "lazyscm")
	}
	return filepath.Join(home, ".local", "state", "lazyscm")
}

// Load reads the usage list for repoKey. A missing file is an empty list.
func Load(dir, repoKey string) ([]Usage, error) {
	historyPath := filepath.Join(dir, repoKey, models.CommandPaletteHistoryFilename)
	// #nosec G304 -- historyPath is constructed from vetted directory and constant filename
	data, err := os.ReadFile(historyPath)
	if err != nil {
		return []Usage{}, nil
	}

	var payload struct {
		Commands []Usage `json:"commands"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return []Usage{}, err
	}
	if payload.Commands == nil {
		return []Usage{}, nil
	}
	return payload.Commands, nil
}

// Save writes the usage list for repoKey.
func Save(dir, repoKey string, commands []Usage) error {
	historyPath := filepath.Join(dir, repoKey, models.CommandPaletteHistoryFilename)
	if err := os.MkdirAll(filepath.Dir(historyPath), defaultDirPerms); err != nil {
		return err
	}

	historyData := struct {
		Commands []Usage `json:"commands"`
	}{
		Commands: commands,
	}
	data, err := json.Marshal(historyData)
	if err != nil {
		return err
	}
	return os.WriteFile(historyPath, data, defaultFilePerms)
}

// Record moves id to the front of history, bumping its count.
func Record(history []Usage, id string, now time.Time) []Usage {
	id = strings.TrimSpace(id)
	if id == "" {
		return history
	}

	for i, entry := range history {
		if entry.ID == id {
			entry.Timestamp = now.Unix()
			entry.Count++
			rest := append(append([]Usage{}, history[:i]...), history[i+1:]...)
			history = append([]Usage{entry}, rest...)
			return truncate(history)
		}
	}

	history = append([]Usage{{ID: id, Timestamp: now.Unix(), Count: 1}}, history...)
	return truncate(history)
}

func truncate(history []Usage) []Usage {
	if len(history) > MaxEntries {
		return history[:MaxEntries]
	}
	return history
}
