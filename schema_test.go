package goinput_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reoring/goinput"
)

func TestBuild_KindResolution(t *testing.T) {
	b := goinput.Define()
	b.Add("s", "string")
	b.Add("m", "array")
	b.Add("mixed", "mixed")
	b.Add("ints", "int[]")
	b.Add("opaque", "Unknown")
	obj := b.Add("obj", "array")
	obj.Add("x", "int")
	user := b.Add("user", "TestUser")
	user.Add("name", "string")
	users := b.Add("users", "TestUser[]")
	users.Add("name", "string")
	s, err := b.Build(goinput.WithTypes(testTypes(t)))
	require.NoError(t, err)

	want := map[string]struct {
		kind          goinput.Kind
		elem          string
		constructible bool
	}{
		"s":      {goinput.KindScalar, "string", false},
		"m":      {goinput.KindOpaqueMap, "", false},
		"mixed":  {goinput.KindScalar, "mixed", false},
		"ints":   {goinput.KindScalarArray, "int", false},
		"opaque": {goinput.KindOpaqueMap, "Unknown", false},
		"obj":    {goinput.KindNestedObject, "", false},
		"user":   {goinput.KindNestedObject, "TestUser", true},
		"users":  {goinput.KindObjectArray, "TestUser", true},
	}
	fields := s.Fields()
	require.Len(t, fields, len(want))
	for _, f := range fields {
		w := want[f.Name()]
		assert.Equal(t, w.kind, f.Kind(), f.Name())
		assert.Equal(t, w.elem, f.Elem(), f.Name())
		assert.Equal(t, w.constructible, f.Constructible(), f.Name())
		assert.True(t, f.Required(), f.Name())
	}

	u, ok := s.Field("user")
	require.True(t, ok)
	c, ok := u.Child("name")
	require.True(t, ok)
	assert.Equal(t, "string", c.Alias())
	assert.Len(t, u.Children(), 1)
	_, ok = s.Field("absent")
	assert.False(t, ok)
}

func TestBuild_FieldOptions(t *testing.T) {
	b := goinput.Define()
	b.Add("a", "int", goinput.Optional())
	b.Add("b", "int").With(goinput.Default(3))
	s := b.MustBuild()

	a, _ := s.Field("a")
	assert.False(t, a.Required())
	_, has := a.Default()
	assert.False(t, has)

	bf, _ := s.Field("b")
	assert.True(t, bf.Required())
	def, has := bf.Default()
	assert.True(t, has)
	assert.Equal(t, 3, def)
}

func TestBuild_ConfigurationErrors(t *testing.T) {
	cases := []struct {
		name   string
		define func(b *goinput.SchemaBuilder)
		opts   []goinput.BuildOption
		target error
	}{
		{
			name: "duplicate root",
			define: func(b *goinput.SchemaBuilder) {
				b.Add("a", "string")
				b.Add("a", "int")
			},
			target: goinput.ErrDuplicateField,
		},
		{
			name: "duplicate child",
			define: func(b *goinput.SchemaBuilder) {
				o := b.Add("o", "array")
				o.Add("x", "string")
				o.Add("x", "string")
			},
			target: goinput.ErrDuplicateField,
		},
		{
			name: "children on scalar",
			define: func(b *goinput.SchemaBuilder) {
				b.Add("s", "string").Add("x", "int")
			},
			target: goinput.ErrInvalidField,
		},
		{
			name:   "empty name",
			define: func(b *goinput.SchemaBuilder) { b.Add("", "string") },
			target: goinput.ErrInvalidField,
		},
		{
			name:   "empty alias",
			define: func(b *goinput.SchemaBuilder) { b.Add("a", "") },
			target: goinput.ErrInvalidField,
		},
		{
			name:   "strict unknown alias",
			define: func(b *goinput.SchemaBuilder) { b.Add("a", "Blob") },
			opts:   []goinput.BuildOption{goinput.WithUnknownAliases(goinput.UnknownAliasStrict)},
			target: goinput.ErrUnresolvedAlias,
		},
		{
			name: "unpopulatable registered target",
			define: func(b *goinput.SchemaBuilder) {
				u := b.Add("u", "TestUser")
				u.Add("name", "string")
				u.Add("nickname", "string")
			},
			target: goinput.ErrUnpopulatable,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := goinput.Define()
			tc.define(b)
			opts := append([]goinput.BuildOption{goinput.WithTypes(testTypes(t))}, tc.opts...)
			s, err := b.Build(opts...)
			assert.Nil(t, s)
			require.ErrorIs(t, err, tc.target)
			var ce *goinput.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "build", ce.Op)
		})
	}
}

func TestBuild_ErrorSubjectIsDottedPath(t *testing.T) {
	b := goinput.Define()
	o := b.Add("outer", "array")
	o.Add("inner", "string").Add("leaf", "int")
	_, err := b.Build()
	var ce *goinput.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "outer.inner", ce.Subject)
}

func TestMustBuild_Panics(t *testing.T) {
	b := goinput.Define()
	b.Add("a", "string")
	b.Add("a", "string")
	assert.Panics(t, func() { b.MustBuild() })
}

func TestBuild_LogsUnknownAliasAndBinds(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b := goinput.Define()
	b.Add("blob", "Blob")
	s := b.MustBuild(goinput.WithLogger(zap.New(core)))

	require.Equal(t, 1, logs.FilterMessage("unknown alias treated as passthrough").Len())
	assert.Equal(t, 1, logs.FilterMessage("schema built").Len())

	r := s.Bind(t.Context(), map[string]any{"blob": 1})
	entries := logs.FilterMessage("input bound").All()
	require.Len(t, entries, 1)
	assert.Equal(t, r.ID(), entries[0].ContextMap()["bind_id"])
}
