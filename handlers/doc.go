// Package handlers provides the built-in scalar coercions used by the
// goinput handler registry.
//
// Every handler exposes Coerce(raw any) (any, error) and reports a failure by
// returning an error wrapping ErrMismatch. Numeric handlers are loose: they
// accept Go numeric kinds, json.Number and numeric strings, because decoded
// request bodies rarely agree on a single number representation.
//
//	h := handlers.Int()
//	v, err := h.Coerce("35") // 35, nil
//	_, err = h.Coerce("abc") // errors.Is(err, handlers.ErrMismatch)
package handlers
