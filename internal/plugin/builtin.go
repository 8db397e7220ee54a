package plugin

// RegisterBuiltins adds every built-in remote type to the registry.
func RegisterBuiltins(r *Registry) {
	r.Register(NewSFTP)
	r.Register(NewFTP)
	r.Register(NewWebDAV)
	r.Register(NewLocal)
}

// DefaultRegistry builds a registry with the builtins loaded. Factory
// failures are dropped here; callers that care run Discover themselves.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	r.Discover()
	return r
}
