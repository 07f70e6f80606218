// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemaconfig loads a schema.Schema from a YAML document, the
// CLI's stand-in for a caller hand-assembling a []*schema.Descriptor in
// library code.
//
// A schema file is a YAML sequence of fields:
//
//	- name: Name
//	  kind: string
//	- name: Bio
//	- name: People
//	  iterable:
//	    - name: Name
//	      kind: string
package schemaconfig

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mohae/tmpl/schema"
)

type field struct {
	Name     string  `yaml:"name"`
	Kind     string  `yaml:"kind"`
	Iterable []field `yaml:"iterable"`
}

// Load reads the schema document at path and builds a schema.Schema
// from it.
func Load(path string) (schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fields []field
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("schemaconfig: %s: %w", path, err)
	}
	return build(fields)
}

func build(fields []field) (schema.Schema, error) {
	sc := make(schema.Schema, len(fields))
	for i, f := range fields {
		switch {
		case len(f.Iterable) > 0:
			nested, err := build(f.Iterable)
			if err != nil {
				return nil, err
			}
			sc[i] = schema.Iterable(f.Name, nested)
		default:
			d, err := descriptor(f)
			if err != nil {
				return nil, err
			}
			sc[i] = d
		}
	}
	return sc, nil
}

func descriptor(f field) (*schema.Descriptor, error) {
	switch f.Kind {
	case "", "any":
		return &schema.Descriptor{Name: f.Name}, nil
	case "string":
		return schema.String(f.Name), nil
	case "int":
		return schema.Int(f.Name), nil
	case "float":
		return schema.Float(f.Name), nil
	}
	return nil, fmt.Errorf("schemaconfig: %s: unknown kind %q", f.Name, f.Kind)
}
