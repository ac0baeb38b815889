package source_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/reoring/goinput/internal/engine"
	"github.com/reoring/goinput/source"
)

func TestDecodeJSON(t *testing.T) {
	m, err := source.DecodeJSON([]byte(`{"title":"Hello","tags":["a","b"],"author":{"age":35,"active":true,"note":null}}`), source.Options{})
	require.NoError(t, err)

	assert.Equal(t, "Hello", m["title"])
	assert.Equal(t, []any{"a", "b"}, m["tags"])
	author := m["author"].(map[string]any)
	assert.Equal(t, json.Number("35"), author["age"])
	assert.Equal(t, true, author["active"])
	v, ok := author["note"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestDecodeJSON_Float64Numbers(t *testing.T) {
	m, err := source.DecodeJSON([]byte(`{"n":1.5,"list":[2]}`), source.Options{Float64Numbers: true})
	require.NoError(t, err)
	assert.Equal(t, 1.5, m["n"])
	assert.Equal(t, []any{2.0}, m["list"])
}

func TestDecodeJSON_EmptyArray(t *testing.T) {
	m, err := source.DecodeJSON([]byte(`{"list":[]}`), source.Options{})
	require.NoError(t, err)
	assert.Equal(t, []any{}, m["list"])
}

func TestDecodeJSON_DuplicateKeys(t *testing.T) {
	doc := []byte(`{"a":{"x":1,"x":2}}`)

	m, err := source.DecodeJSON(doc, source.Options{})
	require.NoError(t, err)
	assert.Equal(t, json.Number("2"), m["a"].(map[string]any)["x"])

	_, err = source.DecodeJSON(doc, source.Options{RejectDuplicateKeys: true})
	require.Error(t, err)
	var v *eng.Violation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, eng.CodeDuplicateKey, v.Code)
	assert.Equal(t, "/a/x", v.Pointer)
}

func TestDecodeJSON_SameKeyInSiblingObjectsIsNotDuplicate(t *testing.T) {
	_, err := source.DecodeJSON([]byte(`{"list":[{"x":1},{"x":2}]}`), source.Options{RejectDuplicateKeys: true})
	require.NoError(t, err)
}

func TestDecodeJSON_MaxDepth(t *testing.T) {
	doc := []byte(`{"a":{"b":[{"c":1}]}}`)

	_, err := source.DecodeJSON(doc, source.Options{MaxDepth: 4})
	require.NoError(t, err)

	_, err = source.DecodeJSON(doc, source.Options{MaxDepth: 3})
	var v *eng.Violation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, eng.CodeMaxDepth, v.Code)
	assert.Equal(t, "/a/b/0", v.Pointer)
}

func TestDecodeJSON_Errors(t *testing.T) {
	_, err := source.DecodeJSON([]byte(`[1,2]`), source.Options{})
	assert.ErrorIs(t, err, eng.ErrNotObject)

	_, err = source.DecodeJSON([]byte(`{"a":`), source.Options{})
	assert.Error(t, err)

	_, err = source.DecodeJSON(nil, source.Options{})
	assert.Error(t, err)
}

func TestDecodeJSON_TrailingData(t *testing.T) {
	_, err := source.DecodeJSON([]byte(`{"a":1} {"b":2}`), source.Options{})
	assert.ErrorIs(t, err, eng.ErrTrailingData)

	_, err = source.DecodeJSON([]byte(`{"a":1} {"b":2}`), source.Options{RejectDuplicateKeys: true})
	assert.ErrorIs(t, err, eng.ErrTrailingData)

	_, err = source.DecodeJSON([]byte(`{"a":1} garbage`), source.Options{})
	assert.Error(t, err)

	m, err := source.DecodeJSON([]byte("{\"a\":1}\n\t "), source.Options{})
	require.NoError(t, err)
	assert.Equal(t, json.Number("1"), m["a"])
}

func TestDecodeYAML(t *testing.T) {
	m, err := source.DecodeYAML([]byte("title: Hello\nauthor:\n  name: Alice\n  age: 35\ntags: [a, b]\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", m["title"])
	assert.Equal(t, map[string]any{"name": "Alice", "age": 35}, m["author"])
	assert.Equal(t, []any{"a", "b"}, m["tags"])

	m, err = source.DecodeYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, m)

	_, err = source.DecodeYAML([]byte("- a\n- b\n"))
	assert.Error(t, err)
}

func TestDecodeYAML_NonStringKeys(t *testing.T) {
	m, err := source.DecodeYAML([]byte("codes:\n  1: one\n  2: two\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"1": "one", "2": "two"}, m["codes"])
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]source.Format{"json": source.FormatJSON, ".yml": source.FormatYAML, "YAML": source.FormatYAML} {
		got, err := source.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := source.ParseFormat("toml")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	m, err := source.Decode([]byte(`{"a":1}`), source.FormatJSON, source.Options{})
	require.NoError(t, err)
	assert.Equal(t, json.Number("1"), m["a"])

	m, err = source.Decode([]byte("a: 1\n"), source.FormatYAML, source.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, m["a"])

	_, err = source.Decode(nil, "xml", source.Options{})
	assert.Error(t, err)
}
