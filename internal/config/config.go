// Package config loads lazyscm configuration from YAML, git config and
// command-line overrides.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	log "github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/theme"
	"gopkg.in/yaml.v3"
)

// AppConfig defines the global lazyscm configuration options.
type AppConfig struct {
	DebugLog        string
	Telemetry       bool
	TelemetryFile   string // Prometheus text exposition written on exit
	DefaultRemote   string // Remote used by push
	CloneDir        string // Parent directory offered by clone
	ConfirmSync     bool
	ConfirmClean    bool
	ShowIcons       bool // Render Nerd Font icons in resource pickers (default: true)
	Pager           string
	PaletteMRU      bool
	PaletteMRULimit int
	GitPath         string
	AutoRefresh     bool // Watch the workspace and refresh on change
	ShowIgnored     bool
	Theme           string // Theme name: see theme.Available
}

// LoadOptions selects the layers LoadConfig reads.
type LoadOptions struct {
	// Path overrides the YAML file; it must live in the lazyscm config dir.
	Path string
	// RepoPath enables the repository-local git config layer.
	RepoPath string
	// Overrides are lazyscm.key=value pairs applied last.
	Overrides []string
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Telemetry:       true,
		DefaultRemote:   "origin",
		ConfirmSync:     true,
		ConfirmClean:    true,
		ShowIcons:       true,
		PaletteMRU:      true,
		PaletteMRULimit: 5,
		GitPath:         "git",
		AutoRefresh:     true,
		Theme:           theme.DraculaName,
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

// coerceString returns the trimmed value, or defaultVal when it is missing
// or blank. Multi-valued git config keys keep their last value.
func coerceString(value any, defaultVal string) string {
	switch v := value.(type) {
	case string:
		if text := strings.TrimSpace(v); text != "" {
			return text
		}
	case []any:
		if len(v) > 0 {
			return coerceString(v[len(v)-1], defaultVal)
		}
	}
	return defaultVal
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()

	cfg.DebugLog = coerceString(data["debug_log"], cfg.DebugLog)
	cfg.Telemetry = coerceBool(data["telemetry"], cfg.Telemetry)
	cfg.TelemetryFile = coerceString(data["telemetry_file"], cfg.TelemetryFile)
	cfg.DefaultRemote = coerceString(data["default_remote"], cfg.DefaultRemote)
	cfg.CloneDir = coerceString(data["clone_dir"], cfg.CloneDir)
	cfg.ConfirmSync = coerceBool(data["confirm_sync"], cfg.ConfirmSync)
	cfg.ConfirmClean = coerceBool(data["confirm_clean"], cfg.ConfirmClean)
	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)
	cfg.Pager = coerceString(data["pager"], cfg.Pager)
	cfg.PaletteMRU = coerceBool(data["palette_mru"], cfg.PaletteMRU)
	cfg.PaletteMRULimit = coerceInt(data["palette_mru_limit"], cfg.PaletteMRULimit)
	cfg.GitPath = coerceString(data["git_path"], cfg.GitPath)
	cfg.AutoRefresh = coerceBool(data["auto_refresh"], cfg.AutoRefresh)
	cfg.ShowIgnored = coerceBool(data["show_ignored"], cfg.ShowIgnored)

	if name := NormalizeThemeName(coerceString(data["theme"], "")); name != "" {
		cfg.Theme = name
	}
	if cfg.PaletteMRULimit < 0 {
		cfg.PaletteMRULimit = 0
	}

	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig merges the YAML file, global then local git config and the
// command-line overrides, later layers winning. Git config that cannot be
// read is skipped.
func LoadConfig(opts LoadOptions) (*AppConfig, error) {
	data, err := loadYAML(opts.Path)
	if err != nil {
		return DefaultConfig(), err
	}

	if global, err := loadGitConfig(true, ""); err != nil {
		log.Printf("config: global git config: %v", err)
	} else {
		maps.Copy(data, global)
	}
	if opts.RepoPath != "" {
		if local, err := loadGitConfig(false, opts.RepoPath); err != nil {
			log.Printf("config: local git config: %v", err)
		} else {
			maps.Copy(data, local)
		}
	}

	overrides, err := parseCLIConfigOverrides(opts.Overrides)
	if err != nil {
		return DefaultConfig(), err
	}
	maps.Copy(data, overrides)

	return parseConfig(data), nil
}

func loadYAML(configPath string) (map[string]any, error) {
	configBase := filepath.Clean(filepath.Join(getConfigDir(), "lazyscm"))

	var paths []string
	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return nil, err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return nil, err
		}
		if !isPathWithin(configBase, absPath) {
			return nil, fmt.Errorf("config path must reside inside %s", configBase)
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	for _, path := range paths {
		// #nosec G304 -- path is constrained to the config directory after validation
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		yamlData := map[string]any{}
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			log.Printf("config: ignoring %s: %v", path, err)
			return map[string]any{}, nil
		}
		if yamlData == nil {
			yamlData = map[string]any{}
		}
		return yamlData, nil
	}
	return map[string]any{}, nil
}

// ExpandPath expands a leading ~ and environment variables in path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

func isPathWithin(base, target string) bool {
	base = filepath.Clean(base)
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if slices.Contains(theme.Available(), name) {
		return name
	}
	return ""
}
