// Package querydoc reads queries described in YAML documents and turns them
// into SQL or MongoDB queries.
//
//	from: {table: employee, alias: e}
//	joins:
//	  - type: left
//	    table: employee
//	    alias: s
//	    on:
//	      - {path: e.superior_id, op: eq, ref: s.id}
//	select: [e.first_name, s.first_name]
//	where:
//	  - {path: e.last_name, op: eq, value: Doe}
//	  - any:
//	      - {path: e.salary, op: gt, value: 1000}
//	      - {path: e.first_name, op: startsWith, value: J}
//	orderBy:
//	  - {path: e.first_name}
//	limit: 10
package querydoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a query document.
type Document struct {
	Name     string      `yaml:"name"`
	From     Source      `yaml:"from"`
	Joins    []Join      `yaml:"joins"`
	Embedded []Embedded  `yaml:"anyEmbedded"`
	Select   []string    `yaml:"select"`
	Distinct bool        `yaml:"distinct"`
	Where    []Condition `yaml:"where"`
	GroupBy  []string    `yaml:"groupBy"`
	OrderBy  []Order     `yaml:"orderBy"`
	Limit    int64       `yaml:"limit"`
	Offset   int64       `yaml:"offset"`
}

// Source is a table or a collection, referenced by alias.
type Source struct {
	Table      string `yaml:"table"`
	Collection string `yaml:"collection"`
	Alias      string `yaml:"alias"`
}

// Join is a SQL join.
type Join struct {
	Type   string      `yaml:"type"`
	Source `yaml:",inline"`
	On     []Condition `yaml:"on"`
}

// Embedded matches documents where any element of the embedded collection
// at Path satisfies On, whose paths are rooted at Alias.
type Embedded struct {
	Path  string      `yaml:"path"`
	Alias string      `yaml:"alias"`
	On    []Condition `yaml:"on"`
}

// Condition is a comparison, or a group of conditions when one of All, Any
// or Not is set.
type Condition struct {
	Path   string      `yaml:"path"`
	Op     string      `yaml:"op"`
	Value  any         `yaml:"value"`
	Values []any       `yaml:"values"`
	Ref    string      `yaml:"ref"`
	All    []Condition `yaml:"all"`
	Any    []Condition `yaml:"any"`
	Not    *Condition  `yaml:"not"`
}

// Order is an ordering. Nulls is "first" or "last".
type Order struct {
	Path  string `yaml:"path"`
	Desc  bool   `yaml:"desc"`
	Nulls string `yaml:"nulls"`
}

// Parse reads a document from r. Unknown fields are rejected.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	d := &Document{}
	if err := dec.Decode(d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty query document")
		}
		return nil, fmt.Errorf("decode query document: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Unmarshal reads a document from data.
func Unmarshal(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// ReadFile reads a document from the named file.
func ReadFile(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

func (d *Document) validate() error {
	if d.From.Table == "" && d.From.Collection == "" {
		return errors.New("from: table or collection required")
	}
	if d.From.Table != "" && d.From.Collection != "" {
		return errors.New("from: table and collection are exclusive")
	}
	if d.Limit < 0 || d.Offset < 0 {
		return errors.New("limit and offset must not be negative")
	}
	return nil
}

// IsCollection reports whether the document queries a MongoDB collection.
func (d *Document) IsCollection() bool {
	return d.From.Collection != ""
}
