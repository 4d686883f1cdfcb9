// Package target manages the set of available dispatch targets and the
// persisted choice of a default one.
package target

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/nhle/mailshare/internal/dispatch"
	"github.com/nhle/mailshare/internal/store"
)

// Registry holds the dispatch targets available on this installation,
// in presentation order.
type Registry struct {
	dispatchers []dispatch.Dispatcher
}

// NewRegistry creates a registry over the given dispatchers.
func NewRegistry(dispatchers ...dispatch.Dispatcher) *Registry {
	return &Registry{dispatchers: dispatchers}
}

// All returns the registered dispatchers in order.
func (r *Registry) All() []dispatch.Dispatcher {
	return r.dispatchers
}

// ByID finds a dispatcher by its identifier.
func (r *Registry) ByID(id string) (dispatch.Dispatcher, bool) {
	for _, d := range r.dispatchers {
		if d.ID() == id {
			return d, true
		}
	}
	return nil, false
}

// Resolve picks the dispatcher to use: the explicit id when given, else the
// persisted default, else the first registered target.
func (r *Registry) Resolve(ctx context.Context, s store.Store, id string) (dispatch.Dispatcher, error) {
	if id != "" {
		d, ok := r.ByID(id)
		if !ok {
			return nil, fmt.Errorf("unknown target %q", id)
		}
		return d, nil
	}

	saved, ok, err := s.GetSetting(ctx, store.SettingDefaultTarget)
	if err != nil {
		return nil, fmt.Errorf("reading default target: %w", err)
	}
	if ok {
		if d, found := r.ByID(saved); found {
			return d, nil
		}
	}

	if len(r.dispatchers) == 0 {
		return nil, fmt.Errorf("no dispatch targets registered")
	}
	return r.dispatchers[0], nil
}

// Choose prompts the user to select a target interactively and returns
// the selection.
func (r *Registry) Choose() (dispatch.Dispatcher, error) {
	options := make([]huh.Option[string], 0, len(r.dispatchers))
	for _, d := range r.dispatchers {
		options = append(options, huh.NewOption(d.Name(), d.ID()))
	}

	var chosen string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Mail target").
				Description("Where should shared content be handed off?").
				Options(options...).
				Value(&chosen),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("choosing target: %w", err)
	}

	d, ok := r.ByID(chosen)
	if !ok {
		return nil, fmt.Errorf("unknown target %q", chosen)
	}
	return d, nil
}
