// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema describes the named variables a template may reference.
//
// A Descriptor is the Go stand-in for the C original's
// struct lwan_var_descriptor: instead of a byte offset into a caller-defined
// C struct plus raw append/is_empty function pointers, a Descriptor names a
// struct field (or map/JSON key) and, for iterable variables, the nested
// schema used while inside the loop. Resolving a descriptor's value against
// an actual piece of data is the job of package eval's binder, not this
// package: schema only describes shape, the same way the C descriptor table
// is built once and shared across every render.
package schema

import "fmt"

// MaxNameLen is the longest identifier the lexer/parser accept, matching the
// original's LEXEME_MAX_LEN.
const MaxNameLen = 64

// Kind hints at the Go type a Descriptor's value will have at render time.
// It lets post-processing pick a specialized instruction the same way the
// C original's descriptor table fixed an append_to_strbuf function pointer
// at registration time. KindAny defers that decision to the evaluator's
// reflection-based binder, which is a strict superset of the C behavior:
// Go can discover a value's type at render time, C could not.
type Kind int

const (
	// KindAny leaves the value's type to be discovered via reflection when
	// the template is applied.
	KindAny Kind = iota
	KindString
	KindInt
	KindFloat
)

// Descriptor is one named variable in a Schema.
type Descriptor struct {
	// Name is the identifier as it appears in template actions, e.g.
	// "some_int" or "user.name".
	Name string

	// Kind hints at the value's Go type, enabling fast-path instructions.
	Kind Kind

	// Nested is non-nil when this variable is iterable: it is the schema
	// visible inside {{#Name}}...{{/Name}}.
	Nested Schema
}

// Schema is a named set of variable descriptors visible at one nesting
// level. The zero value is an empty schema.
type Schema []*Descriptor

// Lookup returns the descriptor for name, or nil if it is not declared in s.
func (s Schema) Lookup(name string) *Descriptor {
	for _, d := range s {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Validate reports whether every descriptor in s (recursively) has a
// well-formed name.
func (s Schema) Validate() error {
	for _, d := range s {
		if err := validateName(d.Name); err != nil {
			return err
		}
		if d.Nested != nil {
			if err := d.Nested.Validate(); err != nil {
				return fmt.Errorf("%s: %w", d.Name, err)
			}
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty variable name")
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("variable name %q exceeds %d bytes", name, MaxNameLen)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		ok := c == '_' || c == '.' || c == '/' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !ok {
			return fmt.Errorf("variable name %q contains invalid byte %q", name, c)
		}
	}
	return nil
}

// Of is a convenience constructor for a flat (non-iterable) schema, built
// from field names of unspecified (KindAny) type.
func Of(names ...string) Schema {
	s := make(Schema, len(names))
	for i, n := range names {
		s[i] = &Descriptor{Name: n}
	}
	return s
}

// String returns a string-typed descriptor.
func String(name string) *Descriptor {
	return &Descriptor{Name: name, Kind: KindString}
}

// Int returns an int-typed descriptor.
func Int(name string) *Descriptor {
	return &Descriptor{Name: name, Kind: KindInt}
}

// Float returns a float-typed descriptor.
func Float(name string) *Descriptor {
	return &Descriptor{Name: name, Kind: KindFloat}
}

// Iterable returns a descriptor for a variable that iterates over nested.
func Iterable(name string, nested Schema) *Descriptor {
	return &Descriptor{Name: name, Nested: nested}
}
