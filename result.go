package goinput

import (
	"maps"
	"strings"
)

// Result is the outcome of one Bind. It is never shared between calls.
type Result struct {
	id     string
	values map[string]any
	errs   Errors
}

// ID identifies the bind in logs and traces.
func (r *Result) ID() string { return r.id }

// IsValid reports whether the bind produced no errors.
func (r *Result) IsValid() bool { return len(r.errs) == 0 }

// Data returns the bound value of a root field, or nil when it has none.
func (r *Result) Data(name string) any { return r.values[name] }

// Lookup is like Data but distinguishes an absent value.
func (r *Result) Lookup(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Values returns a copy of every bound root value.
func (r *Result) Values() map[string]any { return maps.Clone(r.values) }

// Errors returns the rendered error messages in traversal order.
func (r *Result) Errors() []string { return r.errs.Strings() }

// ErrorsAsString joins the rendered messages with ErrorsDelimiter.
func (r *Result) ErrorsAsString() string {
	return strings.Join(r.errs.Strings(), ErrorsDelimiter)
}

// Issues returns a copy of the structured errors.
func (r *Result) Issues() Errors {
	if len(r.errs) == 0 {
		return nil
	}
	out := make(Errors, len(r.errs))
	copy(out, r.errs)
	return out
}

// Err returns the errors as an error value, or nil when the bind is valid.
func (r *Result) Err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return r.Issues()
}

// DataAs returns the bound value of name asserted to T.
func DataAs[T any](r *Result, name string) (T, bool) {
	v, ok := r.values[name].(T)
	return v, ok
}
