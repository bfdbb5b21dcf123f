// Package dispatch runs named actions: it checks whether a repository is
// bound, reports telemetry, and turns every failure into user feedback.
package dispatch

import (
	"context"
	"fmt"

	"github.com/chmouel/lazyscm/internal/repository"
)

// Handler runs an action. model is nil for actions that do not require one
// and no repository is bound.
type Handler func(ctx context.Context, model *repository.Model, args ...any) error

// Action describes a registered action.
type Action struct {
	ID            string
	Label         string
	Description   string
	Section       string
	Icon          string // Nerd Font glyph
	RequiresModel bool
	Handler       Handler
}

// Registry stores actions by id. It is populated once at startup and only
// read afterwards.
type Registry struct {
	actions []Action
	byID    map[string]Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Action)}
}

// Register adds actions. Empty or duplicate ids and missing handlers are
// rejected and nothing from the call is added.
func (r *Registry) Register(actions ...Action) error {
	seen := make(map[string]bool, len(actions))
	for _, action := range actions {
		if action.ID == "" {
			return fmt.Errorf("action %q: empty id", action.Label)
		}
		if action.Handler == nil {
			return fmt.Errorf("action %q: no handler", action.ID)
		}
		if _, exists := r.byID[action.ID]; exists || seen[action.ID] {
			return fmt.Errorf("action %q: already registered", action.ID)
		}
		seen[action.ID] = true
	}
	for _, action := range actions {
		r.actions = append(r.actions, action)
		r.byID[action.ID] = action
	}
	return nil
}

// MustRegister is Register that panics, for building the catalog at startup.
func (r *Registry) MustRegister(actions ...Action) {
	if err := r.Register(actions...); err != nil {
		panic(err)
	}
}

// Actions returns the registered actions in registration order.
func (r *Registry) Actions() []Action {
	return append([]Action(nil), r.actions...)
}

// Lookup returns the action registered under id.
func (r *Registry) Lookup(id string) (Action, bool) {
	action, ok := r.byID[id]
	return action, ok
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.actions)
}

// MustBuild returns a registry populated by each register function, panicking
// on the first error so a broken catalog fails at startup.
func MustBuild(register ...func(*Registry) error) *Registry {
	r := NewRegistry()
	for _, fn := range register {
		if err := fn(r); err != nil {
			panic(err)
		}
	}
	return r
}
