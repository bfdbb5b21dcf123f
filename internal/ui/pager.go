package ui

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PagerCommand picks the pager: the configured one, then $PAGER, then less,
// more or cat, whichever is found first.
func PagerCommand(configured string) string {
	if pager := strings.TrimSpace(configured); pager != "" {
		return pager
	}
	if pager := strings.TrimSpace(os.Getenv("PAGER")); pager != "" {
		return pager
	}
	if _, err := exec.LookPath("less"); err == nil {
		return "less --use-color -q --wordwrap -qcR -P 'Press q to exit..'"
	}
	if _, err := exec.LookPath("more"); err == nil {
		return "more"
	}
	return "cat"
}

// PagerEnv returns environment variables needed for the pager.
func PagerEnv(pager string) []string {
	if pagerIsLess(pager) {
		return []string{"LESS=", "LESSHISTFILE=-"}
	}
	return nil
}

func pagerIsLess(pager string) bool {
	for field := range strings.FieldsSeq(pager) {
		if strings.Contains(field, "=") && !strings.HasPrefix(field, "-") && !strings.Contains(field, "/") {
			continue
		}
		return filepath.Base(field) == "less"
	}
	return false
}
