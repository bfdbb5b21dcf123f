// Package buildinfo holds the lazyscm release metadata. cmd/lazyscm receives
// it from the linker and calls Set; `lazyscm version` prints it and the
// telemetry reporter tags events and the build_info metric with it.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"strings"
)

const shortCommitLen = 7

// Info describes one lazyscm build.
type Info struct {
	Version   string
	Commit    string
	Date      string
	BuiltBy   string
	GoVersion string
}

var current = Info{Version: "dev", Commit: "none", Date: "unknown", BuiltBy: "unknown"}

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Set stores the linker-provided metadata.
func Set(version, commit, date, builtBy string) {
	current = Info{Version: version, Commit: commit, Date: date, BuiltBy: builtBy}
}

// Version returns the release version.
func Version() string { return current.Version }

// Current returns the metadata, filling the commit and toolchain from the
// module build info when the linker left them unset.
func Current() Info {
	info := current
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Commit == "none" {
		for _, setting := range bi.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				info.Commit = setting.Value
			}
		}
	}
	if info.BuiltBy == "unknown" && bi.GoVersion != "" {
		info.BuiltBy = bi.GoVersion
	}
	return info
}

// ShortCommit abbreviates the commit hash the way git does.
func (i Info) ShortCommit() string {
	if len(i.Commit) > shortCommitLen && isHex(i.Commit) {
		return i.Commit[:shortCommitLen]
	}
	return i.Commit
}

// Summary is the one-line form, e.g. "lazyscm 1.2.0 (3f2a9c1)".
func (i Info) Summary() string {
	return fmt.Sprintf("lazyscm %s (%s)", i.Version, i.ShortCommit())
}

// String renders the block printed by `lazyscm version`.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "lazyscm version %s\n", i.Version)
	fmt.Fprintf(&b, "commit: %s\n", i.Commit)
	fmt.Fprintf(&b, "built at: %s\n", i.Date)
	fmt.Fprintf(&b, "built by: %s\n", i.BuiltBy)
	if i.GoVersion != "" && i.GoVersion != i.BuiltBy {
		fmt.Fprintf(&b, "go: %s\n", i.GoVersion)
	}
	return b.String()
}

// Labels returns the metric and event labels for this build.
func (i Info) Labels() map[string]string {
	return map[string]string{"version": i.Version, "commit": i.ShortCommit()}
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
