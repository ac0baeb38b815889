// Package schemafile declares schemas in YAML instead of Go code.
//
// A file lists root fields; nested aliases carry their own field list:
//
//	fields:
//	  - name: title
//	    type: string
//	  - name: author
//	    type: User
//	    fields:
//	      - name: name
//	        type: string
//	      - name: age
//	        type: int
//	        required: false
//	        default: 0
package schemafile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/goinput"
)

// Document mirrors the YAML layout.
type Document struct {
	Fields []FieldDef `yaml:"fields"`
}

// FieldDef describes one field. Required defaults to true when omitted.
type FieldDef struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type"`
	Required *bool      `yaml:"required"`
	Default  any        `yaml:"default"`
	Fields   []FieldDef `yaml:"fields"`

	hasDefault bool
}

// UnmarshalYAML records whether a default key was present, so that an
// explicit "default: null" still counts as a declared default.
func (f *FieldDef) UnmarshalYAML(n *yaml.Node) error {
	type plain FieldDef
	if err := n.Decode((*plain)(f)); err != nil {
		return err
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == "default" {
			f.hasDefault = true
		}
	}
	return nil
}

var errEmptyDocument = errors.New("schema file declares no fields")

// Parse decodes a YAML document into a schema builder.
func Parse(data []byte) (*goinput.SchemaBuilder, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: parse: %w", err)
	}
	if err := validate(doc.Fields, ""); err != nil {
		return nil, err
	}
	b := goinput.Define()
	for _, fd := range doc.Fields {
		addTo(b.Add(fd.Name, fd.Type, options(fd)...), fd.Fields)
	}
	return b, nil
}

// LoadFile reads and parses the schema file at path.
func LoadFile(path string) (*goinput.SchemaBuilder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	b, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func addTo(parent *goinput.FieldBuilder, defs []FieldDef) {
	for _, fd := range defs {
		addTo(parent.Add(fd.Name, fd.Type, options(fd)...), fd.Fields)
	}
}

func options(fd FieldDef) []goinput.FieldOption {
	var opts []goinput.FieldOption
	if fd.Required != nil {
		opts = append(opts, goinput.Required(*fd.Required))
	}
	if fd.hasDefault {
		opts = append(opts, goinput.Default(fd.Default))
	}
	return opts
}

// validate checks structural rules that the builder cannot express, such as
// a missing type. Alias resolution is left to Build.
func validate(defs []FieldDef, parent string) error {
	if parent == "" && len(defs) == 0 {
		return fmt.Errorf("schemafile: %w", errEmptyDocument)
	}
	for i, fd := range defs {
		where := fmt.Sprintf("%sfields[%d]", parent, i)
		if strings.TrimSpace(fd.Name) == "" {
			return fmt.Errorf("schemafile: %s: missing name", where)
		}
		if strings.TrimSpace(fd.Type) == "" {
			return fmt.Errorf("schemafile: %s (%s): missing type", where, fd.Name)
		}
		if err := validate(fd.Fields, where+"."); err != nil {
			return err
		}
	}
	return nil
}
