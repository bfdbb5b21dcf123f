package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	log "github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/repository"
	"github.com/chmouel/lazyscm/internal/telemetry"
	"github.com/chmouel/lazyscm/internal/ui"
)

// Notifier is the part of the host the dispatcher reports through.
type Notifier interface {
	ShowInformation(ctx context.Context, message string, items ...string) (string, bool)
	ShowError(ctx context.Context, message string, items ...string) (string, bool)
	Output() ui.Output
}

// Dispatcher invokes registered actions against the bound model. It holds
// no per-action lock; concurrent invocations are allowed.
type Dispatcher struct {
	registry  *Registry
	host      Notifier
	telemetry telemetry.Reporter
	model     atomic.Pointer[repository.Model]
}

// New returns a dispatcher over registry. A nil reporter disables telemetry.
func New(registry *Registry, host Notifier, reporter telemetry.Reporter) *Dispatcher {
	if reporter == nil {
		reporter = telemetry.Nop{}
	}
	return &Dispatcher{registry: registry, host: host, telemetry: reporter}
}

// Registry returns the action table.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Bind makes m the model handed to actions.
func (d *Dispatcher) Bind(m *repository.Model) {
	d.model.Store(m)
	if m != nil {
		log.Printf("dispatch: bound %s", m.Root())
	}
}

// Unbind clears the model slot.
func (d *Dispatcher) Unbind() {
	if prev := d.model.Swap(nil); prev != nil {
		log.Printf("dispatch: unbound %s", prev.Root())
	}
}

// Model returns the bound model or nil.
func (d *Dispatcher) Model() *repository.Model {
	return d.model.Load()
}

// Invoke runs the action id with args and reports whether its handler ran.
// Failures are absorbed here and surfaced through the host.
func (d *Dispatcher) Invoke(ctx context.Context, id string, args ...any) bool {
	action, ok := d.registry.Lookup(id)
	if !ok {
		log.Printf("dispatch: unknown action %q", id)
		return false
	}

	model := d.Model()
	if action.RequiresModel && model == nil {
		log.Printf("dispatch: %s needs a repository, none bound", id)
		d.host.ShowInformation(ctx, UnavailableMessage)
		return false
	}

	d.report(id)
	log.Printf("dispatch: run %s", id)
	if err := d.call(ctx, action, model, args); err != nil {
		d.fail(ctx, id, err)
	}
	return true
}

func (d *Dispatcher) report(id string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("dispatch: telemetry for %s: %v", id, r)
		}
	}()
	d.telemetry.SendEvent(id, nil)
}

func (d *Dispatcher) call(ctx context.Context, action Action, model *repository.Model, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action %s panicked: %v", action.ID, r)
		}
	}()
	return action.Handler(ctx, model, args...)
}

func (d *Dispatcher) fail(ctx context.Context, id string, err error) {
	if errors.Is(err, ErrCancelled) {
		log.Printf("dispatch: %s cancelled", id)
		return
	}

	log.Printf("dispatch: %s failed: %v", id, err)
	entry := fmt.Sprintf("[%s] %v", id, err)
	var diag diagnosed
	if errors.As(err, &diag) {
		if text := strings.TrimSpace(diag.Diagnostic()); text != "" {
			entry += "\n" + text
		}
	}
	d.host.Output().Appendln(entry)

	message := Classify(err)
	if message == "" {
		return
	}
	if choice, ok := d.host.ShowError(ctx, message, OpenLogItem); ok && choice == OpenLogItem {
		d.host.Output().Show()
	}
}
