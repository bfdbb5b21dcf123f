// Package completion provides shell completion candidates for lazyscm flags.
package completion

import (
	"sort"
	"strings"

	"github.com/chmouel/lazyscm/internal/theme"
)

// ConfigPrefix namespaces keys passed to --config.
const ConfigPrefix = "lazyscm."

// FlagInfo contains metadata about a command-line flag for completion generation.
type FlagInfo struct {
	Name      string   // Flag name without dashes
	Short     string   // Single-letter alias, if any
	ValueHint string   // Hint for value type (e.g., "DIR", "PATH", "NAME")
	Values    func() []string
}

var boolKeys = []string{
	"telemetry", "confirm_sync", "confirm_clean", "show_icons",
	"palette_mru", "auto_refresh", "show_ignored",
}

var valueKeys = []string{
	"debug_log", "telemetry_file", "default_remote", "clone_dir",
	"pager", "palette_mru_limit", "git_path", "theme",
}

// ValueFlags returns the flags whose values can be completed.
func ValueFlags() []FlagInfo {
	return []FlagInfo{
		{Name: "theme", Short: "t", ValueHint: "NAME", Values: theme.Available},
		{Name: "config", Short: "C", ValueHint: "KEY=VALUE", Values: func() []string { return SuggestConfig("") }},
		{Name: "workspace", Short: "w", ValueHint: "DIR"},
		{Name: "debug-log", ValueHint: "PATH"},
		{Name: "config-file", ValueHint: "FILE"},
		{Name: "file", Short: "f", ValueHint: "PATH"},
	}
}

// LookupFlag finds the value flag matching arg, given as --name or -x.
func LookupFlag(arg string) (FlagInfo, bool) {
	name := strings.TrimLeft(arg, "-")
	if name == "" || name == arg {
		return FlagInfo{}, false
	}
	for _, flag := range ValueFlags() {
		if name == flag.Name || (flag.Short != "" && name == flag.Short) {
			return flag, true
		}
	}
	return FlagInfo{}, false
}

// ConfigKeys returns every configuration key in alphabetical order.
func ConfigKeys() []string {
	keys := append(append([]string{}, boolKeys...), valueKeys...)
	sort.Strings(keys)
	return keys
}

// ConfigValues returns known values for key, or nil when any value goes.
func ConfigValues(key string) []string {
	if key == "theme" {
		return theme.Available()
	}
	for _, k := range boolKeys {
		if k == key {
			return []string{"true", "false"}
		}
	}
	return nil
}

// SuggestConfig completes a --config argument: "lazyscm.key=" entries until
// the key is typed, then its known values.
func SuggestConfig(arg string) []string {
	if key, value, ok := strings.Cut(strings.TrimPrefix(arg, ConfigPrefix), "="); ok {
		var out []string
		for _, v := range ConfigValues(key) {
			if strings.HasPrefix(v, value) {
				out = append(out, ConfigPrefix+key+"="+v)
			}
		}
		return out
	}

	prefix := strings.TrimPrefix(arg, ConfigPrefix)
	var out []string
	for _, key := range ConfigKeys() {
		if strings.HasPrefix(key, prefix) {
			out = append(out, ConfigPrefix+key+"=")
		}
	}
	return out
}
