package routine

import (
	"fmt"

	"regimen/pkg/platform/sentinel"
)

// Registry is the read-only routine catalogue. It is built once at startup;
// a malformed definition is a construction error and must abort the process
// before any deadline timer starts.
type Registry struct {
	ordered []Routine
	byName  map[string]Routine
	byEmoji map[string]Routine
}

// NewRegistry validates and indexes the given definitions, preserving
// registration order.
func NewRegistry(routines ...Routine) (*Registry, error) {
	r := &Registry{
		byName:  make(map[string]Routine, len(routines)),
		byEmoji: make(map[string]Routine, len(routines)),
	}
	for _, rt := range routines {
		if err := rt.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byName[rt.Name]; dup {
			return nil, fmt.Errorf("duplicate routine %q", rt.Name)
		}
		if rt.Emoji != "" {
			if _, dup := r.byEmoji[rt.Emoji]; dup {
				return nil, fmt.Errorf("routine %q: emoji %q already in use", rt.Name, rt.Emoji)
			}
			r.byEmoji[rt.Emoji] = rt
		}
		r.byName[rt.Name] = rt
		r.ordered = append(r.ordered, rt)
	}
	return r, nil
}

// List returns all routines in registration order.
func (r *Registry) List() []Routine {
	out := make([]Routine, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Names returns the routine names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.ordered))
	for i, rt := range r.ordered {
		names[i] = rt.Name
	}
	return names
}

// Get looks a routine up by name.
func (r *Registry) Get(name string) (Routine, error) {
	rt, ok := r.byName[name]
	if !ok {
		return Routine{}, fmt.Errorf("routine %q: %w", name, sentinel.ErrNotFound)
	}
	return rt, nil
}

// ByEmoji resolves a reaction emoji to its routine.
func (r *Registry) ByEmoji(emoji string) (Routine, error) {
	rt, ok := r.byEmoji[emoji]
	if !ok {
		return Routine{}, fmt.Errorf("emoji %q: %w", emoji, sentinel.ErrNotFound)
	}
	return rt, nil
}
