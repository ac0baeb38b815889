package goinput

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/reoring/goinput/handlers"
)

// UnknownAliasPolicy decides what Build does with an alias that is neither a
// registered scalar nor declared with children.
type UnknownAliasPolicy int

const (
	// UnknownAliasPassthrough keeps the raw value unchanged.
	UnknownAliasPassthrough UnknownAliasPolicy = iota
	// UnknownAliasStrict rejects the schema with ErrUnresolvedAlias.
	UnknownAliasStrict
)

const (
	mapAlias    = "array"
	listSuffix  = "[]"
	pathDivider = "."
)

// compile resolves fb and its subtree into fields. parent is the dotted path
// of the enclosing field, used in configuration errors.
func (c *buildConfig) compile(fb *FieldBuilder, parent string) (*Field, error) {
	path := fb.name
	if parent != "" {
		path = parent + pathDivider + fb.name
	}
	if fb.name == "" {
		return nil, configErr("build", parent, fmt.Errorf("%w: empty field name", ErrInvalidField))
	}
	if fb.alias == "" {
		return nil, configErr("build", path, fmt.Errorf("%w: empty type alias", ErrInvalidField))
	}

	f := &Field{
		name:         fb.name,
		alias:        fb.alias,
		required:     fb.opts.required,
		def:          fb.opts.def,
		hasDefault:   fb.opts.hasDefault,
		instantiator: fb.opts.instantiator,
	}
	base, isList := strings.CutSuffix(fb.alias, listSuffix)
	nested := len(fb.children) > 0

	switch {
	case base == mapAlias && !isList:
		if nested {
			f.kind = KindNestedObject
		} else {
			f.kind = KindOpaqueMap
		}
	case c.registry.Has(base):
		if nested {
			return nil, configErr("build", path, fmt.Errorf("%w: scalar alias %q cannot have children", ErrInvalidField, base))
		}
		h, err := c.registry.Resolve(base)
		if err != nil {
			return nil, err
		}
		f.kind, f.elem, f.handler = KindScalar, base, h
		if isList {
			f.kind = KindScalarArray
		}
	case nested:
		f.kind = KindNestedObject
		if isList {
			f.kind = KindObjectArray
		}
		if base != mapAlias {
			f.elem = base
		}
	case c.unknown == UnknownAliasStrict:
		return nil, configErr("build", path, fmt.Errorf("%w: %q", ErrUnresolvedAlias, fb.alias))
	default:
		c.logger.Debug("unknown alias treated as passthrough", zap.String("field", path), zap.String("alias", fb.alias))
		f.elem = base
		f.kind = KindOpaqueMap
		if isList {
			f.kind, f.handler = KindScalarArray, handlers.Identity()
		}
	}

	if nested {
		children, err := c.compileAll(fb.children, path)
		if err != nil {
			return nil, err
		}
		f.children = children
		if err := c.bindTarget(f, path); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (c *buildConfig) compileAll(fbs []*FieldBuilder, parent string) ([]*Field, error) {
	seen := make(map[string]struct{}, len(fbs))
	out := make([]*Field, 0, len(fbs))
	for _, fb := range fbs {
		if _, dup := seen[fb.name]; dup {
			subject := fb.name
			if parent != "" {
				subject = parent + pathDivider + fb.name
			}
			return nil, configErr("build", subject, ErrDuplicateField)
		}
		seen[fb.name] = struct{}{}
		f, err := c.compile(fb, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// bindTarget decides whether an object field is constructible and, for
// registered types, checks up front that every child can be populated.
func (c *buildConfig) bindTarget(f *Field, path string) error {
	if f.elem == "" {
		return nil
	}
	t, registered := c.types.Get(f.elem)
	f.constructible = registered || f.instantiator != nil
	if !registered {
		return nil
	}
	if _, err := f.plan(reflect.PointerTo(t)); err != nil {
		return configErr("build", path, err)
	}
	return nil
}
