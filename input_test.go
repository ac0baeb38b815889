package goinput_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goinput"
	"github.com/reoring/goinput/source"
)

func TestInput_ReplacesPreviousBind(t *testing.T) {
	in := goinput.NewInput(defineArticle().MustBuild(goinput.WithTypes(testTypes(t))))
	assert.False(t, in.IsValid())
	assert.Nil(t, in.Result())
	assert.Nil(t, in.Data("title"))
	assert.Empty(t, in.Errors())
	assert.Equal(t, "", in.ErrorsAsString())

	bad := articleInput()
	delete(bad, "title")
	in.Bind(t.Context(), bad)
	assert.False(t, in.IsValid())
	assert.Equal(t, []string{"Missing required field: title"}, in.Errors())
	assert.Equal(t, "Missing required field: title", in.ErrorsAsString())

	in.Bind(t.Context(), articleInput())
	assert.True(t, in.IsValid())
	assert.Empty(t, in.Errors())
	assert.Equal(t, "Foobar", in.Data("title"))
	assert.NotNil(t, in.Schema())
}

func TestInput_BindBytes(t *testing.T) {
	b := goinput.Define()
	b.Add("size", "int")
	b.Add("tags", "string[]")
	in := goinput.NewInput(b.MustBuild())

	r, err := in.BindBytes(t.Context(), []byte(`{"size": 35, "tags": ["a"]}`), source.FormatJSON)
	require.NoError(t, err)
	require.True(t, r.IsValid(), r.ErrorsAsString())
	assert.Equal(t, 35, r.Data("size"))

	r, err = in.BindBytes(t.Context(), []byte("size: \"7\"\ntags: [b, c]\n"), source.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 7, r.Data("size"))
	assert.Equal(t, []any{"b", "c"}, in.Data("tags"))

	_, err = in.BindBytes(t.Context(), []byte(`{"size":`), source.FormatJSON)
	assert.Error(t, err)
	assert.Equal(t, 7, in.Data("size"), "a decode failure keeps the previous result")
}

func TestBind_JSONNumbers(t *testing.T) {
	b := goinput.Define()
	b.Add("i", "int")
	b.Add("f", "float")
	b.Add("raw", "mixed")
	r := b.MustBuild().Bind(t.Context(), map[string]any{"i": json.Number("12"), "f": json.Number("1.25"), "raw": json.Number("3")})
	require.True(t, r.IsValid())
	assert.Equal(t, 12, r.Data("i"))
	assert.Equal(t, 1.25, r.Data("f"))
	assert.Equal(t, json.Number("3"), r.Data("raw"))
}
