package engine

import (
	"strconv"
	"strings"
)

// EnforceOptions controls streaming enforcement.
type EnforceOptions struct {
	// RejectDuplicates fails on a key repeated within one object.
	RejectDuplicates bool
	// MaxDepth limits container nesting; 0 disables the check.
	MaxDepth int
}

// Violation codes.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeMaxDepth     = "max_depth"
)

// Violation is returned when the input breaks an enforced limit.
type Violation struct {
	Code    string
	Pointer string
	Message string
}

func (v *Violation) Error() string { return v.Message + " at " + v.Pointer }

// Enforce wraps inner so that tokens violating opt fail the decode.
func Enforce(inner TokenSource, opt EnforceOptions) TokenSource {
	if !opt.RejectDuplicates && opt.MaxDepth <= 0 {
		return inner
	}
	return &enforcer{inner: inner, opt: opt}
}

type frame struct {
	object  bool
	keys    map[string]struct{}
	pointer string
	index   int
	key     string
}

type enforcer struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcer) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := frame{object: tok.Kind == KindBeginObject, pointer: e.valuePointer()}
		if f.object {
			f.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, &Violation{Code: CodeMaxDepth, Pointer: pointerOrRoot(f.pointer), Message: "max depth exceeded"}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if _, dup := top.keys[tok.String]; dup && e.opt.RejectDuplicates {
				return Token{}, &Violation{
					Code:    CodeDuplicateKey,
					Pointer: joinPointer(top.pointer, tok.String),
					Message: "key '" + tok.String + "' duplicated",
				}
			}
			top.keys[tok.String] = struct{}{}
			top.key = tok.String
		}
	default:
		e.valuePointer()
	}
	return tok, nil
}

// valuePointer returns the pointer of the value about to be read and
// advances the array index of the enclosing container.
func (e *enforcer) valuePointer() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.object {
		return joinPointer(top.pointer, top.key)
	}
	p := joinPointer(top.pointer, strconv.Itoa(top.index))
	top.index++
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
