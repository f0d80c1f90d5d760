package validator

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry resolves custom check names used in rule specs.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]CustomFunc
}

// NewRegistry returns a registry preloaded with the built-in checks:
// age_range, adult and cpf_digits.
func NewRegistry() *Registry {
	return &Registry{
		funcs: map[string]CustomFunc{
			"age_range":  AgeRange,
			"adult":      Adult,
			"cpf_digits": CPFDigits,
		},
	}
}

// Register adds a named check. Names are unique.
func (r *Registry) Register(name string, fn CustomFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("%w: name and function are required", ErrUnknownCustom)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRule, name)
	}
	r.funcs[name] = fn
	return nil
}

func (r *Registry) Lookup(name string) (CustomFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names lists registered checks in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.funcs))
}
