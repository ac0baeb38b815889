package goinput

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/stoewer/go-strcase"
)

// FieldSetter lets a target type take over population of every child field.
// When an instance implements it, setter methods and attributes are ignored.
type FieldSetter interface {
	SetField(name string, value any) error
}

var fieldSetterType = reflect.TypeOf((*FieldSetter)(nil)).Elem()

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// assignFunc writes one child value into inst (a pointer).
type assignFunc func(inst reflect.Value, v any) error

// populator is the population plan for one Go type and one child list.
type populator struct {
	viaSetField bool
	assign      map[string]assignFunc
}

// populateError names the child that could not be written. An empty field
// means the type as a whole cannot be populated.
type populateError struct {
	field string
	err   error
}

func (e *populateError) Error() string {
	if e.field == "" {
		return "populate: " + e.err.Error()
	}
	return "populate " + e.field + ": " + e.err.Error()
}
func (e *populateError) Unwrap() error { return e.err }

// planFor resolves setters and attributes of t for children. t is the
// dynamic type of the instance, normally a pointer to struct.
func planFor(t reflect.Type, children []*Field) (*populator, error) {
	if t.Implements(fieldSetterType) {
		return &populator{viaSetField: true}, nil
	}
	p := &populator{assign: make(map[string]assignFunc, len(children))}
	for _, c := range children {
		if fn := setterMethod(t, c.name); fn != nil {
			p.assign[c.name] = fn
			continue
		}
		if fn := attributeSetter(t, c.name); fn != nil {
			p.assign[c.name] = fn
			continue
		}
		return nil, fmt.Errorf("%v has neither a setter nor a writable attribute for %q: %w", t, c.name, ErrUnpopulatable)
	}
	return p, nil
}

// setterMethod finds Set<Name>(v) or Set<Name>(v) error on t.
func setterMethod(t reflect.Type, name string) assignFunc {
	want := "Set" + strcase.UpperCamelCase(name)
	m, ok := t.MethodByName(want)
	if !ok {
		loose := "set" + strings.ReplaceAll(name, "_", "")
		for i := 0; i < t.NumMethod(); i++ {
			if strings.EqualFold(t.Method(i).Name, loose) {
				m, ok = t.Method(i), true
				break
			}
		}
	}
	if !ok {
		return nil
	}
	mt := m.Type
	if mt.NumIn() != 2 || mt.NumOut() > 1 || (mt.NumOut() == 1 && mt.Out(0) != errorType) {
		return nil
	}
	param := mt.In(1)
	fn := m.Func
	return func(inst reflect.Value, v any) error {
		arg, err := convertValue(v, param)
		if err != nil {
			return err
		}
		out := fn.Call([]reflect.Value{inst, arg})
		if len(out) == 1 && !out[0].IsNil() {
			return out[0].Interface().(error)
		}
		return nil
	}
}

// attributeSetter finds an exported struct field matching name by tag, by
// UpperCamel name, or case-insensitively with underscores removed.
func attributeSetter(t reflect.Type, name string) assignFunc {
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil
	}
	st := t.Elem()
	camel := strcase.UpperCamelCase(name)
	loose := strings.ReplaceAll(name, "_", "")
	var match *reflect.StructField
	for _, sf := range reflect.VisibleFields(st) {
		if !sf.IsExported() || sf.Anonymous || throughPointer(st, sf.Index) {
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		if key == name {
			match = &sf
			break
		}
		if match == nil && (sf.Name == camel || strings.EqualFold(sf.Name, loose)) {
			match = &sf
		}
	}
	if match == nil {
		return nil
	}
	idx, ft := match.Index, match.Type
	return func(inst reflect.Value, v any) error {
		val, err := convertValue(v, ft)
		if err != nil {
			return err
		}
		inst.Elem().FieldByIndex(idx).Set(val)
		return nil
	}
}

func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		t = t.Field(i).Type
		if t.Kind() == reflect.Pointer {
			return true
		}
	}
	return false
}

// ResolveStructKey returns the input key of a struct field.
// Priority: input:"name=..." (or a bare input:"...") > json tag name > field name;
// "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if tag := sf.Tag.Get("input"); tag != "" {
		for _, p := range strings.Split(tag, ",") {
			p = strings.TrimSpace(p)
			if after, ok := strings.CutPrefix(p, "name="); ok {
				return after
			}
			if p != "" && !strings.Contains(p, "=") {
				return p
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if name, _, _ := strings.Cut(jt, ","); name != "" {
			return name
		}
	}
	return sf.Name
}

var errNotAssignable = errors.New("value not assignable")

// convertValue adapts a bound value to the parameter or attribute type to.
func convertValue(v any, to reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(to), nil
	}
	rv := reflect.ValueOf(v)
	rt := rv.Type()
	switch {
	case rt.AssignableTo(to):
		return rv, nil
	case isNumeric(rt.Kind()) && isNumeric(to.Kind()):
		if !fitsNumeric(rv, to) {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit %v", errNotAssignable, v, to)
		}
		return rv.Convert(to), nil
	case rt.Kind() == reflect.String && to.Kind() == reflect.String:
		return rv.Convert(to), nil
	case rt.Kind() == reflect.Pointer && !rv.IsNil() && rt.Elem().AssignableTo(to):
		return rv.Elem(), nil
	case to.Kind() == reflect.Pointer && rt.AssignableTo(to.Elem()):
		p := reflect.New(to.Elem())
		p.Elem().Set(rv)
		return p, nil
	case to.Kind() == reflect.Slice && (rt.Kind() == reflect.Slice || rt.Kind() == reflect.Array):
		out := reflect.MakeSlice(to, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := convertValue(rv.Index(i).Interface(), to.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	case to.Kind() == reflect.Map && rt.Kind() == reflect.Map && to.Key().Kind() == reflect.String && rt.Key().Kind() == reflect.String:
		out := reflect.MakeMapWithSize(to, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			ev, err := convertValue(iter.Value().Interface(), to.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(iter.Key().Convert(to.Key()), ev)
		}
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %v to %v", errNotAssignable, rt, to)
}

// 2^63 and 2^64 as exact float64 values.
const (
	int64Limit  = 1 << 63
	uint64Limit = 1 << 64
)

// fitsNumeric reports whether rv converts to the numeric type to without
// wrapping, truncating a fraction or overflowing.
func fitsNumeric(rv reflect.Value, to reflect.Type) bool {
	dst := reflect.Zero(to)
	switch {
	case rv.CanInt():
		n := rv.Int()
		switch {
		case dst.CanInt():
			return !dst.OverflowInt(n)
		case dst.CanUint():
			return n >= 0 && !dst.OverflowUint(uint64(n))
		}
		return true
	case rv.CanUint():
		u := rv.Uint()
		switch {
		case dst.CanInt():
			return u <= math.MaxInt64 && !dst.OverflowInt(int64(u))
		case dst.CanUint():
			return !dst.OverflowUint(u)
		}
		return true
	}
	f := rv.Float()
	switch {
	case dst.CanInt():
		return f == math.Trunc(f) && f >= -int64Limit && f < int64Limit && !dst.OverflowInt(int64(f))
	case dst.CanUint():
		return f == math.Trunc(f) && f >= 0 && f < uint64Limit && !dst.OverflowUint(uint64(f))
	}
	return !dst.OverflowFloat(f)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// populate writes the bound child values into inst in definition order.
// Children absent from values are left untouched.
func (f *Field) populate(inst any, values map[string]any) error {
	rv := reflect.ValueOf(inst)
	p, err := f.plan(rv.Type())
	if err != nil {
		return &populateError{err: err}
	}
	for _, c := range f.children {
		v, ok := values[c.name]
		if !ok {
			continue
		}
		if p.viaSetField {
			err = inst.(FieldSetter).SetField(c.name, v)
		} else {
			err = p.assign[c.name](rv, v)
		}
		if err != nil {
			return &populateError{field: c.name, err: err}
		}
	}
	return nil
}

// plan returns the cached population plan of t for this field's children.
func (f *Field) plan(t reflect.Type) (*populator, error) {
	if p, ok := f.plans.Load(t); ok {
		return p.(*populator), nil
	}
	p, err := planFor(t, f.children)
	if err != nil {
		return nil, err
	}
	f.plans.Store(t, p)
	return p, nil
}
