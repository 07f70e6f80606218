// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bind loads and patches the JSON data fixtures the CLI renders
// templates against. It exists so cmd/tmpl never has to hand-roll
// encoding/json plumbing for ad hoc, possibly-partial data files: gjson
// walks a fixture into the same map[string]interface{}/[]interface{} shape
// eval's reflection-based binder already knows how to resolve descriptors
// against, and sjson lets a fixture be patched from the command line
// without round-tripping it through a Go struct.
package bind

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// LoadJSONFile reads the JSON data fixture at path and returns it as a
// plain Go value suitable for tmpl.Template.Apply.
func LoadJSONFile(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return gjson.ParseBytes(data).Value(), nil
}

// ParseJSON decodes raw JSON bytes the same way LoadJSONFile does, for
// callers that already have the fixture in memory (e.g. after Patch).
func ParseJSON(data []byte) interface{} {
	return gjson.ParseBytes(data).Value()
}

// Patch applies a single "path=value" set expression, in sjson's dotted
// path syntax, to the JSON document in data and returns the patched bytes.
func Patch(data []byte, setExpr string) ([]byte, error) {
	path, value, ok := strings.Cut(setExpr, "=")
	if !ok {
		return nil, fmt.Errorf("invalid --set expression %q, want path=value", setExpr)
	}
	return sjson.SetBytes(data, path, value)
}
