package writer

import (
	"fmt"
	"regexp"
	"sort"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Reports whether id is usable as a writer identifier
func ValidIdentifier(id string) bool {
	return identifierPattern.MatchString(id)
}

// Creates empty sink factory registry
func NewRegistry() (new *Registry) {
	new = &Registry{
		factories: make(map[string]Factory),
	}
	return
}

// Adds factory under id. Identifier and factory are validated here rather than at attach time.
func (registry *Registry) Register(id string, factory Factory) (err error) {
	if !ValidIdentifier(id) {
		err = fmt.Errorf("invalid writer identifier '%s': must match %s", id, identifierPattern.String())
		return
	}
	if factory == nil {
		err = fmt.Errorf("writer '%s' registered without a factory", id)
		return
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	_, exists := registry.factories[id]
	if exists {
		err = fmt.Errorf("writer '%s' is already registered", id)
		return
	}
	registry.factories[id] = factory
	return
}

// Returns the factory for id, false if none is registered
func (registry *Registry) Lookup(id string) (factory Factory, found bool) {
	if registry == nil {
		return
	}
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	factory, found = registry.factories[id]
	return
}

// Registered identifiers, sorted
func (registry *Registry) Identifiers() (ids []string) {
	if registry == nil {
		return
	}
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	ids = make([]string, 0, len(registry.factories))
	for id := range registry.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return
}
