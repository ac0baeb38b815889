package goinput

import (
	"sort"
	"sync"

	"github.com/reoring/goinput/handlers"
)

// TypeHandler validates and coerces a raw scalar value for one type alias.
type TypeHandler interface {
	Coerce(raw any) (any, error)
}

// HandlerFunc adapts a function to TypeHandler.
type HandlerFunc func(raw any) (any, error)

func (f HandlerFunc) Coerce(raw any) (any, error) { return f(raw) }

// Registry maps type aliases to handlers. A disabled registry resolves every
// alias to a passthrough handler.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]TypeHandler
	disabled bool
}

// NewRegistry returns a registry populated with the built-in handlers.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.Register("string", handlers.String())
	r.Register("int", handlers.Int())
	r.Register("integer", handlers.Int())
	r.Register("float", handlers.Float())
	r.Register("bool", handlers.Bool())
	r.Register("boolean", handlers.Bool())
	r.Register("datetime", handlers.DateTime(nil))
	r.Register("mixed", handlers.Identity())
	return r
}

// NewEmptyRegistry returns a registry without any handler.
func NewEmptyRegistry() *Registry {
	return &Registry{handlers: map[string]TypeHandler{}}
}

// Register binds alias to h, replacing any previous handler. nil handlers
// and empty aliases are ignored.
func (r *Registry) Register(alias string, h TypeHandler) *Registry {
	if alias == "" || h == nil {
		return r
	}
	r.mu.Lock()
	r.handlers[alias] = h
	r.mu.Unlock()
	return r
}

// Resolve returns the handler for alias. Unknown aliases yield a
// *ConfigError wrapping ErrUnresolvedAlias.
func (r *Registry) Resolve(alias string) (TypeHandler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.disabled {
		return handlers.Identity(), nil
	}
	h, ok := r.handlers[alias]
	if !ok {
		return nil, configErr("resolve", alias, ErrUnresolvedAlias)
	}
	return h, nil
}

// Has reports whether alias is registered, regardless of the enable flag.
func (r *Registry) Has(alias string) bool {
	r.mu.RLock()
	_, ok := r.handlers[alias]
	r.mu.RUnlock()
	return ok
}

// Aliases lists registered aliases in sorted order.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.handlers))
	for a := range r.handlers {
		out = append(out, a)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// SetEnabled toggles coercion. When disabled, Resolve returns a passthrough
// handler for every alias.
func (r *Registry) SetEnabled(enabled bool) *Registry {
	r.mu.Lock()
	r.disabled = !enabled
	r.mu.Unlock()
	return r
}

// Enabled reports whether coercion is active.
func (r *Registry) Enabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.disabled
}

// Clone copies the alias table and the enable flag.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := &Registry{handlers: make(map[string]TypeHandler, len(r.handlers)), disabled: r.disabled}
	for a, h := range r.handlers {
		c.handlers[a] = h
	}
	return c
}

// DefaultNamespace names the registry pre-populated with the built-ins.
const DefaultNamespace = "default"

var (
	namespaceMu sync.RWMutex
	namespaces  = map[string]*Registry{DefaultNamespace: NewRegistry()}
)

// RegisterNamespace publishes a registry under name so configuration can
// select it. Registering an existing name replaces it.
func RegisterNamespace(name string, r *Registry) {
	if name == "" || r == nil {
		return
	}
	namespaceMu.Lock()
	namespaces[name] = r
	namespaceMu.Unlock()
}

// LookupNamespace returns the registry published under name.
func LookupNamespace(name string) (*Registry, error) {
	if name == "" {
		return nil, configErr("namespace", "", ErrMissingNamespace)
	}
	namespaceMu.RLock()
	r, ok := namespaces[name]
	namespaceMu.RUnlock()
	if !ok {
		return nil, configErr("namespace", name, ErrUnknownNamespace)
	}
	return r, nil
}
