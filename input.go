package goinput

import (
	"context"
	"sync"

	"github.com/reoring/goinput/source"
)

// Input is a reusable handle around a Schema that remembers the most recent
// bind. Each Bind fully replaces the previous outcome.
type Input struct {
	schema *Schema

	mu   sync.RWMutex
	last *Result
}

// NewInput wraps s.
func NewInput(s *Schema) *Input { return &Input{schema: s} }

// Schema returns the wrapped schema.
func (in *Input) Schema() *Schema { return in.schema }

// Bind binds raw and keeps the result.
func (in *Input) Bind(ctx context.Context, raw map[string]any) *Result {
	r := in.schema.Bind(ctx, raw)
	in.mu.Lock()
	in.last = r
	in.mu.Unlock()
	return r
}

// BindBytes decodes data in the given format ("json" or "yaml") and binds it.
// Decoding failures are returned as errors; validation failures are not.
func (in *Input) BindBytes(ctx context.Context, data []byte, format source.Format) (*Result, error) {
	raw, err := source.Decode(data, format, source.Options{})
	if err != nil {
		return nil, err
	}
	return in.Bind(ctx, raw), nil
}

// Result returns the most recent result, or nil before the first Bind.
func (in *Input) Result() *Result {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.last
}

// IsValid reports whether the last bind succeeded. It is false before any bind.
func (in *Input) IsValid() bool {
	r := in.Result()
	return r != nil && r.IsValid()
}

// Data returns a bound root value of the last bind.
func (in *Input) Data(name string) any {
	if r := in.Result(); r != nil {
		return r.Data(name)
	}
	return nil
}

// Errors returns the rendered messages of the last bind.
func (in *Input) Errors() []string {
	if r := in.Result(); r != nil {
		return r.Errors()
	}
	return nil
}

// ErrorsAsString joins the messages of the last bind with ErrorsDelimiter.
func (in *Input) ErrorsAsString() string {
	if r := in.Result(); r != nil {
		return r.ErrorsAsString()
	}
	return ""
}
