package goinput

import (
	"fmt"
	"reflect"
)

// Instantiator constructs a bare instance of a target type for a nested
// object field. It is only called once the field's subtree has validated.
type Instantiator interface {
	Instantiate(typeName string) (any, error)
}

// InstantiatorFunc adapts a function to Instantiator.
type InstantiatorFunc func(typeName string) (any, error)

func (f InstantiatorFunc) Instantiate(typeName string) (any, error) { return f(typeName) }

// ReflectInstantiator builds zero-valued instances of registered types and
// returns them as pointers.
type ReflectInstantiator struct {
	types *TypeRegistry
}

// NewReflectInstantiator returns the default no-argument construction
// strategy backed by types.
func NewReflectInstantiator(types *TypeRegistry) *ReflectInstantiator {
	return &ReflectInstantiator{types: types}
}

func (ri *ReflectInstantiator) Instantiate(typeName string) (any, error) {
	t, ok := ri.types.Get(typeName)
	if !ok {
		return nil, fmt.Errorf("type %s not registered", typeName)
	}
	return reflect.New(t).Interface(), nil
}
