package goinput_test

import (
	"context"
	"fmt"

	"github.com/reoring/goinput"
)

type Author struct {
	Name string
	Age  int
}

func Example() {
	types := goinput.NewTypeRegistry().MustRegister("Author", Author{})

	b := goinput.Define()
	b.Add("title", "string")
	b.Add("tags", "string[]", goinput.Default([]any{}))
	author := b.Add("author", "Author")
	author.Add("name", "string")
	author.Add("age", "int")
	s := b.MustBuild(goinput.WithTypes(types))

	r := s.Bind(context.Background(), map[string]any{
		"title":  "Hello",
		"author": map[string]any{"name": "Alice", "age": "35"},
	})
	a, _ := goinput.DataAs[*Author](r, "author")
	fmt.Println(r.IsValid(), r.Data("title"), r.Data("tags"), a.Name, a.Age)

	r = s.Bind(context.Background(), map[string]any{
		"author": map[string]any{"name": 7, "age": 1},
	})
	fmt.Println(r.ErrorsAsString())
	// Output:
	// true Hello [] Alice 35
	// Missing required field: title
	// [name] Value does not match type: string
}
