package source

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/goinput/internal/engine"
)

// DecodeJSON decodes a JSON object. Numbers are json.Number unless
// opt.Float64Numbers is set.
func DecodeJSON(data []byte, opt Options) (map[string]any, error) {
	var src eng.TokenSource = newJSONTokens(bytes.NewReader(data))
	src = eng.Enforce(src, eng.EnforceOptions{RejectDuplicates: opt.RejectDuplicateKeys, MaxDepth: opt.MaxDepth})
	mode := eng.NumberJSON
	if opt.Float64Numbers {
		mode = eng.NumberFloat64
	}
	m, err := eng.DecodeObject(src, mode)
	if err != nil {
		return nil, fmt.Errorf("source: decode json: %w", err)
	}
	return m, nil
}

type frame struct {
	object       bool
	expectingKey bool
}

// jsonTokens turns go-json tokens into engine tokens, telling keys apart
// from string values.
type jsonTokens struct {
	dec   *j.Decoder
	stack []frame
}

func newJSONTokens(r io.Reader) *jsonTokens {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &jsonTokens{dec: dec}
}

func (s *jsonTokens) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{object: true, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject}, nil
		case '[':
			s.stack = append(s.stack, frame{})
			return eng.Token{Kind: eng.KindBeginArray}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject}, nil
		case ']':
			s.pop()
			return eng.Token{Kind: eng.KindEndArray}, nil
		}
	case string:
		if n := len(s.stack); n > 0 && s.stack[n-1].object && s.stack[n-1].expectingKey {
			s.stack[n-1].expectingKey = false
			return eng.Token{Kind: eng.KindKey, String: v}, nil
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v}, nil
	case j.Number:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v)}, nil
	case float64:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v}, nil
	}
	s.valueDone()
	return eng.Token{Kind: eng.KindNull}, nil
}

func (s *jsonTokens) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

// valueDone marks the pending key of the enclosing object as consumed.
func (s *jsonTokens) valueDone() {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectingKey = true
	}
}
