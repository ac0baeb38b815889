package goinput

import (
	"context"
	"reflect"
	"strconv"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/reoring/goinput/metrics"
)

// Bind validates raw against the schema and returns a fresh Result. It never
// stops at the first failure: every field is visited in definition order and
// all errors are collected. A nil raw mapping behaves like an empty one.
func (s *Schema) Bind(ctx context.Context, raw map[string]any) *Result {
	id := uuid.NewString()
	_, span := s.tracer.Start(ctx, "goinput.bind", trace.WithAttributes(
		attribute.String("goinput.bind_id", id),
		attribute.Int("goinput.fields", len(s.fields)),
	))
	defer span.End()

	st := &bindState{schema: s}
	values := st.bindFields(s.fields, raw, nil)

	span.SetAttributes(attribute.Int("goinput.errors", len(st.errs)))
	if len(st.errs) > 0 {
		span.SetStatus(codes.Error, "input invalid")
	}
	errCodes := make([]string, len(st.errs))
	for i, e := range st.errs {
		errCodes[i] = e.Code
	}
	metrics.ObserveBind(errCodes, st.instantiations)
	s.logger.Debug("input bound",
		zap.String("bind_id", id),
		zap.Int("values", len(values)),
		zap.Int("errors", len(st.errs)),
		zap.Int("instantiations", st.instantiations),
	)
	return &Result{id: id, values: values, errs: st.errs}
}

// bindState is the per-call accumulator. Nested objects use a child state so
// their errors can gate construction.
type bindState struct {
	schema         *Schema
	errs           Errors
	instantiations int
}

func (st *bindState) add(path []string, code, alias string) {
	st.errs = append(st.errs, newError(path, code, alias))
}

func (st *bindState) bindFields(fields []*Field, m map[string]any, parent []string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := st.bindField(f, m, childPath(parent, f.name)); ok {
			out[f.name] = v
		}
	}
	return out
}

// bindField returns the bound value and whether it belongs in the output.
func (st *bindState) bindField(f *Field, m map[string]any, path []string) (any, bool) {
	raw, present := m[f.name]
	if !present || raw == nil {
		if f.hasDefault {
			return f.def, true
		}
		if f.required {
			st.add(path, CodeRequired, f.alias)
		}
		return nil, false
	}

	switch f.kind {
	case KindScalar:
		v, err := f.handler.Coerce(raw)
		if err != nil {
			st.add(path, CodeInvalidType, f.alias)
			return nil, false
		}
		return v, true
	case KindScalarArray:
		return st.bindScalarList(f, raw, path)
	case KindNestedObject:
		m, ok := raw.(map[string]any)
		if !ok {
			st.add(path, CodeNotAMap, f.alias)
			return nil, false
		}
		return st.bindObject(f, m, path)
	case KindObjectArray:
		return st.bindObjectList(f, raw, path)
	}
	return raw, true
}

func (st *bindState) bindScalarList(f *Field, raw any, path []string) (any, bool) {
	items, ok := asList(raw)
	if !ok {
		st.add(path, CodeNotAList, f.alias)
		return nil, false
	}
	out := make([]any, len(items))
	failed := false
	for i, it := range items {
		v, err := f.handler.Coerce(it)
		if err != nil {
			st.add(childPath(path, strconv.Itoa(i)), CodeInvalidType, f.elem)
			failed = true
			continue
		}
		out[i] = v
	}
	if failed {
		return nil, false
	}
	return out, true
}

func (st *bindState) bindObjectList(f *Field, raw any, path []string) (any, bool) {
	items, ok := asList(raw)
	if !ok {
		st.add(path, CodeNotAList, f.alias)
		return nil, false
	}
	out := make([]any, 0, len(items))
	failed := false
	for i, it := range items {
		ip := childPath(path, strconv.Itoa(i))
		m, ok := it.(map[string]any)
		if !ok {
			st.add(ip, CodeNotAMap, f.elem)
			failed = true
			continue
		}
		v, ok := st.bindObject(f, m, ip)
		if !ok {
			failed = true
			continue
		}
		out = append(out, v)
	}
	if failed {
		return nil, false
	}
	return out, true
}

// bindObject binds the children of f against m and, when the subtree is
// valid and f is constructible, turns the child values into a host instance.
func (st *bindState) bindObject(f *Field, m map[string]any, path []string) (any, bool) {
	sub := &bindState{schema: st.schema}
	values := sub.bindFields(f.children, m, path)
	st.instantiations += sub.instantiations
	if len(sub.errs) > 0 {
		st.errs = append(st.errs, sub.errs...)
		return nil, false
	}
	if !f.constructible {
		return values, true
	}

	in := f.instantiator
	if in == nil {
		in = st.schema.instantiator
	}
	inst, err := in.Instantiate(f.elem)
	if err != nil || inst == nil {
		st.schema.logger.Debug("instantiation failed", zap.String("type", f.elem), zap.Error(err))
		st.add(path, CodeInstantiation, f.elem)
		return nil, false
	}
	st.instantiations++
	if err := f.populate(inst, values); err != nil {
		pe := err.(*populateError)
		st.schema.logger.Debug("population failed", zap.String("type", f.elem), zap.Error(pe.err))
		if pe.field == "" {
			st.add(path, CodePopulation, f.elem)
		} else {
			st.add(childPath(path, pe.field), CodePopulation, f.elem)
		}
		return nil, false
	}
	return inst, true
}

// asList accepts []any and any other Go slice or array.
func asList(raw any) ([]any, bool) {
	if l, ok := raw.([]any); ok {
		return l, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func childPath(parent []string, seg string) []string {
	p := make([]string, len(parent)+1)
	copy(p, parent)
	p[len(parent)] = seg
	return p
}
