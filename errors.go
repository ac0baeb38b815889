package goinput

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/goinput/i18n"
)

// Error codes carried by validation errors.
const (
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeNotAList      = "not_a_list"
	CodeNotAMap       = "not_a_map"
	CodeInstantiation = "instantiation"
	CodePopulation    = "population"
)

// ErrorsDelimiter separates messages in Result.ErrorsAsString. Messages omit
// the root field, so element errors of two root-level lists can read alike
// ("[0] ..."); Result.Issues and Error.Pointer keep the full path.
const ErrorsDelimiter = "\n"

// Error is a single path-qualified validation failure.
type Error struct {
	// Path is the chain from the root field down to the failing node. Array
	// elements contribute their index in decimal form.
	Path    []string
	Code    string
	Message string
	// Alias is the type alias involved, when the failure concerns a type.
	Alias string
}

// String renders the error with the bracketed path below the root field, e.g.
// "[name] Value does not match type: string". Root-level errors carry no prefix.
func (e Error) String() string {
	if len(e.Path) <= 1 {
		return e.Message
	}
	b := &strings.Builder{}
	for _, p := range e.Path[1:] {
		b.WriteByte('[')
		b.WriteString(p)
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(e.Message)
	return b.String()
}

// Pointer renders the full path as a JSON Pointer (e.g. /fans/1/age).
func (e Error) Pointer() string {
	if len(e.Path) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, p := range e.Path {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(p))
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Errors is an ordered collection of validation errors that implements error.
type Errors []Error

// Error summarizes the first few entries.
func (es Errors) Error() string {
	if len(es) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(es), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", es[i].Code, es[i].Pointer())
	}
	if len(es) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(es))
	}
	return b.String()
}

// Strings renders every error with Error.String.
func (es Errors) Strings() []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.String()
	}
	return out
}

// AsErrors extracts Errors from err using errors.As.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var es Errors
	if errors.As(err, &es) {
		return es, true
	}
	return nil, false
}

func newError(path []string, code, alias string) Error {
	data := map[string]string{"type": alias}
	if len(path) > 0 {
		data["field"] = path[len(path)-1]
	}
	return Error{Path: path, Code: code, Message: i18n.T(code, data), Alias: alias}
}

// Configuration errors. They are returned at setup time (Build, Resolve,
// Setup) and never from Bind.
var (
	ErrUnresolvedAlias  = errors.New("unresolved type alias")
	ErrMissingNamespace = errors.New("handler namespace not configured")
	ErrUnknownNamespace = errors.New("unknown handler namespace")
	ErrDuplicateField   = errors.New("duplicate field name")
	ErrInvalidField     = errors.New("invalid field definition")
	ErrUnpopulatable    = errors.New("target type cannot be populated")
)

// ConfigError describes a fatal setup-time fault.
type ConfigError struct {
	Op      string // operation, e.g. "build" or "resolve"
	Subject string // alias, field path or namespace involved
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Subject == "" {
		return "goinput: " + e.Op + ": " + e.Err.Error()
	}
	return "goinput: " + e.Op + " " + e.Subject + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErr(op, subject string, err error) error {
	return &ConfigError{Op: op, Subject: subject, Err: err}
}
