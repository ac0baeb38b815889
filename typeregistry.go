package goinput

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// TypeRegistry maps target type names used in schema aliases to Go struct
// types, so nested-object fields can be instantiated by name.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]reflect.Type)}
}

// Register associates name with the struct type of sample (a value or a
// pointer). Re-registering the same type under the same name is a no-op.
func (r *TypeRegistry) Register(name string, sample any) error {
	if name == "" {
		return fmt.Errorf("type name cannot be empty")
	}
	t, err := structType(sample)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.types[name]; ok && existing != t {
		return fmt.Errorf("type name %s already registered to %v", name, existing)
	}
	r.types[name] = t
	return nil
}

// RegisterType registers sample under TypeNameOf(sample).
func (r *TypeRegistry) RegisterType(sample any) error {
	name := TypeNameOf(sample)
	if name == "" {
		return fmt.Errorf("cannot determine type name for %T", sample)
	}
	return r.Register(name, sample)
}

// MustRegister is like Register but panics on error.
func (r *TypeRegistry) MustRegister(name string, sample any) *TypeRegistry {
	if err := r.Register(name, sample); err != nil {
		panic(err)
	}
	return r
}

// Get returns the struct type registered under name.
func (r *TypeRegistry) Get(name string) (reflect.Type, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	t, ok := r.types[name]
	r.mu.RUnlock()
	return t, ok
}

// IsRegistered reports whether name is known.
func (r *TypeRegistry) IsRegistered(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names lists registered names in sorted order.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.types))
	for n := range r.types {
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// TypeNameOf returns the package-qualified name of sample's struct type,
// e.g. "github.com/acme/app/model.User".
func TypeNameOf(sample any) string {
	t, err := structType(sample)
	if err != nil || t.Name() == "" {
		return ""
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

func structType(sample any) (reflect.Type, error) {
	if sample == nil {
		return nil, fmt.Errorf("type sample cannot be nil")
	}
	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type must be a struct, got %v", t.Kind())
	}
	return t, nil
}
