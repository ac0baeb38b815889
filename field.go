package goinput

import (
	"sync"
)

// Kind is the binding strategy of a field, decided once at Build.
type Kind int

const (
	// KindScalar coerces the value through the alias' type handler.
	KindScalar Kind = iota
	// KindOpaqueMap passes the value through unchanged.
	KindOpaqueMap
	// KindScalarArray coerces every element of a list.
	KindScalarArray
	// KindNestedObject binds a mapping against the child fields.
	KindNestedObject
	// KindObjectArray binds every element of a list of mappings.
	KindObjectArray
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindOpaqueMap:
		return "opaque_map"
	case KindScalarArray:
		return "scalar_array"
	case KindNestedObject:
		return "nested_object"
	case KindObjectArray:
		return "object_array"
	}
	return "unknown"
}

// Field is one compiled node of a schema. Fields are immutable once built.
type Field struct {
	name       string
	alias      string
	kind       Kind
	elem       string
	required   bool
	def        any
	hasDefault bool

	handler       TypeHandler
	instantiator  Instantiator
	constructible bool
	children      []*Field

	plans sync.Map // reflect.Type -> *populator
}

func (f *Field) Name() string  { return f.name }
func (f *Field) Alias() string { return f.alias }
func (f *Field) Kind() Kind    { return f.kind }

// Elem is the scalar alias for scalar kinds, the element alias for scalar
// arrays, and the target type name for object kinds.
func (f *Field) Elem() string   { return f.elem }
func (f *Field) Required() bool { return f.required }

// Default returns the default value and whether one was declared.
func (f *Field) Default() (any, bool) { return f.def, f.hasDefault }

// Constructible reports whether a bound object is turned into a host instance
// instead of a map of child values.
func (f *Field) Constructible() bool { return f.constructible }

// Children returns the ordered child fields.
func (f *Field) Children() []*Field {
	out := make([]*Field, len(f.children))
	copy(out, f.children)
	return out
}

// Child returns the child called name.
func (f *Field) Child(name string) (*Field, bool) {
	for _, c := range f.children {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// FieldOption customizes a field declared with Add.
type FieldOption interface {
	applyField(*fieldOptions)
}

type fieldOptions struct {
	required     bool
	def          any
	hasDefault   bool
	instantiator Instantiator
}

type fieldOptionFunc func(*fieldOptions)

func (f fieldOptionFunc) applyField(o *fieldOptions) { f(o) }

// Required sets whether an absent value is an error. Fields are required
// unless told otherwise.
func Required(required bool) FieldOption {
	return fieldOptionFunc(func(o *fieldOptions) { o.required = required })
}

// Optional is shorthand for Required(false).
func Optional() FieldOption { return Required(false) }

// Default supplies the value used when the field is absent. It is stored in
// the result as given, without coercion, and satisfies requiredness.
func Default(v any) FieldOption {
	return fieldOptionFunc(func(o *fieldOptions) {
		o.def = v
		o.hasDefault = true
	})
}

// WithInstantiator overrides instance construction. As a field option it
// applies to that field only; as a build option it replaces the schema-wide
// default.
func WithInstantiator(i Instantiator) interface {
	FieldOption
	BuildOption
} {
	return instantiatorOption{i: i}
}

type instantiatorOption struct{ i Instantiator }

func (o instantiatorOption) applyField(fo *fieldOptions) { fo.instantiator = o.i }
func (o instantiatorOption) applyBuild(c *buildConfig)   { c.instantiator = o.i }

// FieldBuilder declares a field and, for nested aliases, its children.
type FieldBuilder struct {
	name     string
	alias    string
	opts     fieldOptions
	children []*FieldBuilder
}

func newFieldBuilder(name, alias string, opts []FieldOption) *FieldBuilder {
	fb := &FieldBuilder{name: name, alias: alias, opts: fieldOptions{required: true}}
	for _, o := range opts {
		if o != nil {
			o.applyField(&fb.opts)
		}
	}
	return fb
}

// Add declares a child field and returns its builder.
func (fb *FieldBuilder) Add(name, alias string, opts ...FieldOption) *FieldBuilder {
	c := newFieldBuilder(name, alias, opts)
	fb.children = append(fb.children, c)
	return c
}

// With applies further options to this field.
func (fb *FieldBuilder) With(opts ...FieldOption) *FieldBuilder {
	for _, o := range opts {
		if o != nil {
			o.applyField(&fb.opts)
		}
	}
	return fb
}

func (fb *FieldBuilder) Name() string  { return fb.name }
func (fb *FieldBuilder) Alias() string { return fb.alias }
