// Package goinput binds untyped input (a decoded request body, a YAML
// document, any map[string]any) against a declarative schema and returns
// validated, type-coerced and optionally object-instantiated values together
// with every path-qualified error found.
//
// Design policy:
//   - Keep public APIs in the root package; put decoding details under
//     internal/ and scalar coercions under handlers/.
//   - Decide each field's binding strategy once at Build; Bind only walks the
//     compiled tree and keeps its state per call, so a Schema is safe for
//     concurrent use.
//   - Configuration faults surface from Build and Setup as *ConfigError;
//     invalid input never does, it is reported through Result.
//
// Typical usage:
//
//	b := goinput.Define()
//	b.Add("title", "string")
//	author := b.Add("author", "Author")
//	author.Add("name", "string")
//	s, err := b.Build(goinput.WithTypes(types))
//
//	r := s.Bind(ctx, raw)
//	if !r.IsValid() {
//		return r.Err()
//	}
//	a, _ := goinput.DataAs[*Author](r, "author")
package goinput
