package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ErrMismatch reports that a raw value cannot be coerced to the handler type.
var ErrMismatch = errors.New("value does not match type")

func mismatch(want string, raw any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrMismatch, want, raw)
}

// StringHandler accepts Go strings only.
type StringHandler struct{}

// String returns the identity handler for strings.
func String() StringHandler { return StringHandler{} }

func (StringHandler) Coerce(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, mismatch("string", raw)
	}
	return s, nil
}

// IntHandler coerces integers, integral floats, json.Number and numeric
// strings to int.
type IntHandler struct{}

// Int returns the loose integer handler.
func Int() IntHandler { return IntHandler{} }

func (IntHandler) Coerce(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case json.Number:
		return intFromString(string(v), raw)
	case string:
		return intFromString(strings.TrimSpace(v), raw)
	case bool, nil:
		return nil, mismatch("int", raw)
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt {
			return nil, mismatch("int", raw)
		}
		return int(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if !integral(f) {
			return nil, mismatch("int", raw)
		}
		return int(f), nil
	}
	return nil, mismatch("int", raw)
}

func intFromString(s string, raw any) (any, error) {
	n, err := strconv.Atoi(s)
	if err == nil {
		return n, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return nil, mismatch("int", raw)
	}
	// "35.0" style integral decimals arrive from float-encoded JSON numbers
	if f, err := strconv.ParseFloat(s, 64); err == nil && integral(f) {
		return int(f), nil
	}
	return nil, mismatch("int", raw)
}

// intLimit is 2^63 (2^31 on 32-bit platforms), exactly representable as a
// float64 unlike math.MaxInt.
const intLimit = -float64(math.MinInt)

// integral reports whether f is a whole number that fits in an int.
func integral(f float64) bool {
	return f == math.Trunc(f) && f >= -intLimit && f < intLimit
}

// FloatHandler coerces numbers and numeric strings to float64.
type FloatHandler struct{}

// Float returns the loose float handler.
func Float() FloatHandler { return FloatHandler{} }

func (FloatHandler) Coerce(raw any) (any, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, mismatch("float", raw)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, mismatch("float", raw)
		}
		return f, nil
	case bool, nil:
		return nil, mismatch("float", raw)
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32:
		return rv.Float(), nil
	}
	return nil, mismatch("float", raw)
}

// BoolHandler accepts booleans and the string forms understood by
// strconv.ParseBool.
type BoolHandler struct{}

// Bool returns the boolean handler.
func Bool() BoolHandler { return BoolHandler{} }

func (BoolHandler) Coerce(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, mismatch("bool", raw)
		}
		return b, nil
	}
	return nil, mismatch("bool", raw)
}

// IdentityHandler returns every value unchanged. It backs opaque aliases and
// the disabled registry.
type IdentityHandler struct{}

// Identity returns the passthrough handler.
func Identity() IdentityHandler { return IdentityHandler{} }

func (IdentityHandler) Coerce(raw any) (any, error) { return raw, nil }
