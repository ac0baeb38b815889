package goinput_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reoring/goinput"
	"github.com/reoring/goinput/i18n"
)

func TestError_Rendering(t *testing.T) {
	root := goinput.Error{Path: []string{"title"}, Code: goinput.CodeRequired, Message: "Missing required field: title"}
	assert.Equal(t, "Missing required field: title", root.String())
	assert.Equal(t, "/title", root.Pointer())

	deep := goinput.Error{Path: []string{"fans", "1", "a/b~c"}, Message: "m"}
	assert.Equal(t, "[1][a/b~c] m", deep.String())
	assert.Equal(t, "/fans/1/a~1b~0c", deep.Pointer())

	assert.Equal(t, "/", goinput.Error{}.Pointer())
}

func TestError_RootListsDifferOnlyByPointer(t *testing.T) {
	b := goinput.Define()
	b.Add("a", "int[]")
	b.Add("b", "int[]")
	r := b.MustBuild().Bind(t.Context(), map[string]any{"a": []any{"x"}, "b": []any{"y"}})

	assert.Equal(t, []string{"[0] Value does not match type: int", "[0] Value does not match type: int"}, r.Errors())
	issues := r.Issues()
	if assert.Len(t, issues, 2) {
		assert.Equal(t, "/a/0", issues[0].Pointer())
		assert.Equal(t, "/b/0", issues[1].Pointer())
	}
}

func TestErrors_Summary(t *testing.T) {
	es := goinput.Errors{
		{Path: []string{"a"}, Code: "required"},
		{Path: []string{"b"}, Code: "invalid_type"},
		{Path: []string{"c"}, Code: "not_a_list"},
		{Path: []string{"d"}, Code: "not_a_map"},
	}
	assert.Equal(t, "required at /a; invalid_type at /b; not_a_list at /c; ... (total 4)", es.Error())
	assert.Equal(t, "", goinput.Errors{}.Error())

	wrapped := fmt.Errorf("bind: %w", es)
	got, ok := goinput.AsErrors(wrapped)
	assert.True(t, ok)
	assert.Len(t, got, 4)

	_, ok = goinput.AsErrors(errors.New("plain"))
	assert.False(t, ok)
	_, ok = goinput.AsErrors(nil)
	assert.False(t, ok)
}

func TestConfigError(t *testing.T) {
	err := &goinput.ConfigError{Op: "namespace", Err: goinput.ErrMissingNamespace}
	assert.Equal(t, "goinput: namespace: handler namespace not configured", err.Error())
	assert.ErrorIs(t, err, goinput.ErrMissingNamespace)
}

func TestMessagesFollowLanguage(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })
	b := goinput.Define()
	b.Add("title", "string")
	s := b.MustBuild()

	i18n.SetLanguage("ja")
	r := s.Bind(t.Context(), map[string]any{})
	assert.NotEqual(t, "Missing required field: title", r.Errors()[0])
	assert.Contains(t, r.Errors()[0], "title")

	i18n.SetLanguage("en")
	r = s.Bind(t.Context(), map[string]any{})
	assert.Equal(t, "Missing required field: title", r.Errors()[0])
}
