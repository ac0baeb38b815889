package engine

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token is one streaming token.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
}

// TokenSource is the minimal interface the decoder needs.
type TokenSource interface {
	NextToken() (Token, error)
}

// NumberMode selects the Go type numbers decode into.
type NumberMode int

const (
	// NumberJSON keeps the literal as json.Number.
	NumberJSON NumberMode = iota
	// NumberFloat64 converts to float64.
	NumberFloat64
)

// ErrNotObject is returned when the document root is not an object.
var ErrNotObject = errors.New("document root is not an object")

// ErrTrailingData is returned when tokens follow the root object.
var ErrTrailingData = errors.New("unexpected data after document root")

// DecodeObject reads one value from src, requires it to be an object and
// requires src to end right after it.
func DecodeObject(src TokenSource, mode NumberMode) (map[string]any, error) {
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if tok.Kind != KindBeginObject {
		return nil, ErrNotObject
	}
	d := decoder{src: src, mode: mode}
	m, err := d.object()
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err == nil {
			err = ErrTrailingData
		}
		return nil, err
	}
	return m, nil
}

type decoder struct {
	src  TokenSource
	mode NumberMode
}

func (d decoder) next() (Token, error) {
	tok, err := d.src.NextToken()
	if err == io.EOF {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (d decoder) value(tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return d.object()
	case KindBeginArray:
		return d.array()
	case KindString:
		return tok.String, nil
	case KindNumber:
		if d.mode == NumberFloat64 {
			return strconv.ParseFloat(tok.Number, 64)
		}
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	}
	return nil, io.ErrUnexpectedEOF
}

func (d decoder) object() (map[string]any, error) {
	m := make(map[string]any)
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := d.next()
		if err != nil {
			return nil, err
		}
		v, err := d.value(vt)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func (d decoder) array() ([]any, error) {
	arr := []any{}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.value(tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
