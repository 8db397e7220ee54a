package plugin

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds one Plugin instance. A factory that returns an error is
// skipped during Discover without aborting the rest.
type Factory func() (Plugin, error)

// Registry holds the set of known remote-type handlers. Plugins register
// explicitly through factories; Discover instantiates them. The instance
// map is replaced atomically on every Discover, so calling it twice is
// safe and the second call fully supersedes the first.
type Registry struct {
	mu        sync.RWMutex
	factories []Factory
	plugins   map[string]Plugin // keyed by lowercased TypeName
	order     []string          // registration order of keys, for stable listing
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin factory. Takes effect on the next Discover.
func (r *Registry) Register(f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = append(r.factories, f)
}

// Discover instantiates every registered factory and swaps in the new
// instance set. Factories that fail are reported and skipped; when two
// plugins claim the same type name the later registration wins.
func (r *Registry) Discover() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	plugins := make(map[string]Plugin, len(r.factories))
	order := make([]string, 0, len(r.factories))
	var errs []error

	for _, f := range r.factories {
		p, err := f()
		if err != nil {
			errs = append(errs, fmt.Errorf("loading plugin: %w", err))
			continue
		}
		key := strings.ToLower(p.TypeName())
		if key == "" {
			errs = append(errs, fmt.Errorf("plugin %T has an empty type name", p))
			continue
		}
		if _, dup := plugins[key]; !dup {
			order = append(order, key)
		}
		plugins[key] = p
	}

	r.plugins = plugins
	r.order = order
	return errs
}

// Available returns the display type names of all loaded plugins, sorted
// case-insensitively.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for _, key := range r.order {
		names = append(names, r.plugins[key].TypeName())
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// Lookup returns the plugin whose TypeName matches name exactly, ignoring
// case. No substring matching: a stored type with no exact handler is
// reported as absent rather than guessed at.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[strings.ToLower(name)]
	return p, ok
}
