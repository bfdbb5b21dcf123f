package ui

import (
	"strings"
	"sync"

	log "github.com/chmouel/lazyscm/internal/log"
)

// LogOutput is the diagnostic panel of the terminal host. Appended entries
// also go to the debug log; Show pages the recent log.
type LogOutput struct {
	mu      sync.Mutex
	entries []string
	show    func(content string)
	limit   int
}

// NewLogOutput returns a panel that hands its content to show.
func NewLogOutput(show func(content string), limit int) *LogOutput {
	return &LogOutput{show: show, limit: limit}
}

// Appendln implements Output.
func (o *LogOutput) Appendln(line string) {
	o.mu.Lock()
	o.entries = append(o.entries, line)
	o.mu.Unlock()
	log.Println("output: " + line)
}

// Entries returns every appended entry.
func (o *LogOutput) Entries() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.entries...)
}

// Content returns the recent debug log lines.
func (o *LogOutput) Content() string {
	lines := log.Recent(o.limit)
	if len(lines) == 0 {
		return "(log is empty)\n"
	}
	return strings.Join(lines, "\n") + "\n"
}

// Show implements Output.
func (o *LogOutput) Show() {
	o.show(o.Content())
}
