package goinput

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/reoring/goinput"

// BuildOption configures Build.
type BuildOption interface {
	applyBuild(*buildConfig)
}

type buildOptionFunc func(*buildConfig)

func (f buildOptionFunc) applyBuild(c *buildConfig) { f(c) }

type buildConfig struct {
	registry     *Registry
	types        *TypeRegistry
	instantiator Instantiator
	unknown      UnknownAliasPolicy
	logger       *zap.Logger
	tracer       trace.Tracer
}

// WithRegistry selects the type handler registry. The default is the
// registry published under DefaultNamespace.
func WithRegistry(r *Registry) BuildOption {
	return buildOptionFunc(func(c *buildConfig) { c.registry = r })
}

// WithTypes selects the registry of constructible target types.
func WithTypes(t *TypeRegistry) BuildOption {
	return buildOptionFunc(func(c *buildConfig) { c.types = t })
}

// WithUnknownAliases sets the policy for unrecognized aliases.
func WithUnknownAliases(p UnknownAliasPolicy) BuildOption {
	return buildOptionFunc(func(c *buildConfig) { c.unknown = p })
}

// WithLogger sets the logger used at build and bind time.
func WithLogger(l *zap.Logger) BuildOption {
	return buildOptionFunc(func(c *buildConfig) { c.logger = l })
}

// WithTracer sets the tracer that records one span per Bind.
func WithTracer(t trace.Tracer) BuildOption {
	return buildOptionFunc(func(c *buildConfig) { c.tracer = t })
}

// SchemaBuilder collects root field declarations.
type SchemaBuilder struct {
	fields []*FieldBuilder
}

// Define starts a new schema.
func Define() *SchemaBuilder { return &SchemaBuilder{} }

// Add declares a root field and returns its builder so children can be added.
func (b *SchemaBuilder) Add(name, alias string, opts ...FieldOption) *FieldBuilder {
	fb := newFieldBuilder(name, alias, opts)
	b.fields = append(b.fields, fb)
	return fb
}

// Fields returns the root field builders in declaration order.
func (b *SchemaBuilder) Fields() []*FieldBuilder {
	out := make([]*FieldBuilder, len(b.fields))
	copy(out, b.fields)
	return out
}

// Build resolves every alias and returns an immutable Schema. Configuration
// faults are returned as *ConfigError.
func (b *SchemaBuilder) Build(opts ...BuildOption) (*Schema, error) {
	c := &buildConfig{}
	for _, o := range opts {
		if o != nil {
			o.applyBuild(c)
		}
	}
	if c.registry == nil {
		r, err := LookupNamespace(DefaultNamespace)
		if err != nil {
			return nil, err
		}
		c.registry = r
	}
	if c.types == nil {
		c.types = NewTypeRegistry()
	}
	if c.instantiator == nil {
		c.instantiator = NewReflectInstantiator(c.types)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(instrumentationName)
	}

	fields, err := c.compileAll(b.fields, "")
	if err != nil {
		return nil, err
	}
	c.logger.Debug("schema built", zap.Int("fields", len(fields)), zap.Bool("coercion", c.registry.Enabled()))
	return &Schema{fields: fields, instantiator: c.instantiator, logger: c.logger, tracer: c.tracer}, nil
}

// MustBuild is like Build but panics on error.
func (b *SchemaBuilder) MustBuild(opts ...BuildOption) *Schema {
	s, err := b.Build(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Schema is a compiled, read-only field tree. It is safe for concurrent use.
type Schema struct {
	fields       []*Field
	instantiator Instantiator
	logger       *zap.Logger
	tracer       trace.Tracer
}

// Fields returns the root fields in definition order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the root field called name.
func (s *Schema) Field(name string) (*Field, bool) {
	for _, f := range s.fields {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}
