// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tmpl compiles and renders logic-less, Mustache-style templates.
// A template is compiled once against a schema.Schema describing the
// variables it may reference, producing a Template that can be applied
// many times to different data values of a shape matching that schema.
package tmpl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mohae/tmpl/eval"
	"github.com/mohae/tmpl/parse"
	"github.com/mohae/tmpl/schema"
)

// Flags alter compilation. It is a direct re-export of parse.CompileFlags
// so callers never need to import the parse package themselves.
type Flags = parse.CompileFlags

// ConstTemplate hints that the source text outlives the returned Template.
const ConstTemplate = parse.ConstTemplate

// CompileError reports a failure to compile a template. Every error
// CompileString/CompileStringFull/CompileFile can return is one of these;
// no panic from the parser ever escapes this package.
type CompileError struct {
	Name string
	Msg  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("tmpl: compile %s: %s", e.Name, e.Msg)
}

// Template is a compiled, immutable template, safe for concurrent use by
// multiple goroutines the way a compiled regexp is: Apply and
// ApplyWithBuffer only read from it.
type Template struct {
	name string
	prog *parse.Program
}

// CompileString compiles text under sc using "string" as the template's
// diagnostic name.
func CompileString(text string, sc schema.Schema) (*Template, error) {
	return CompileStringFull("string", text, sc, 0)
}

// CompileStringFull compiles text under sc, naming it name for
// diagnostics, with flags controlling compilation behavior.
func CompileStringFull(name, text string, sc schema.Schema, flags Flags) (*Template, error) {
	return compile(name, text, sc, flags, "")
}

// CompileFile reads and compiles the template at path under sc. Partials
// referenced with {{>name}} are resolved relative to path's directory.
func CompileFile(path string, sc schema.Schema) (*Template, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, &CompileError{Name: path, Msg: err.Error()}
	}
	return compile(path, string(text), sc, 0, filepath.Dir(path))
}

// compile is shared by every entry point. baseDir, when non-empty, lets
// partials be located on disk relative to the template that referenced
// them; a parse.CompileFileFunc closure is how partial compilation reaches
// back into this package without parse importing tmpl (which would form
// an import cycle, since Template wraps *parse.Program).
func compile(name, text string, sc schema.Schema, flags Flags, baseDir string) (*Template, error) {
	var compileFile parse.CompileFileFunc
	if baseDir != "" {
		compileFile = func(partialName string, partialSchema schema.Schema) (*parse.Program, error) {
			t, err := CompileFile(filepath.Join(baseDir, partialName), partialSchema)
			if err != nil {
				return nil, err
			}
			return t.prog, nil
		}
	}

	prog, err := parse.Parse(name, text, sc, flags, compileFile)
	if err != nil {
		return nil, &CompileError{Name: name, Msg: err.Error()}
	}
	return &Template{name: name, prog: prog}, nil
}

// Apply renders t against data and returns the result.
func (t *Template) Apply(data interface{}) (string, error) {
	return eval.Apply(t.prog, data)
}

// ApplyWithBuffer renders t against data into w, letting a caller reuse
// one strings.Builder across many renders instead of allocating a fresh
// one per call.
func (t *Template) ApplyWithBuffer(data interface{}, w *strings.Builder) error {
	return eval.ApplyWithBuffer(t.prog, data, w)
}

// Name returns the diagnostic name the template was compiled with.
func (t *Template) Name() string {
	return t.name
}

// MinimumSize returns the byte count the compiler estimated the rendered
// output will need, the same hint lwan_tpl used to pre-grow its strbuf.
func (t *Template) MinimumSize() int {
	return t.prog.MinimumSize
}

// Program exposes the compiled instruction stream, for callers that want
// to inspect it (e.g. the CLI's instruction-dump command) the way
// TEMPLATE_DEBUG exposed dump_program in the C original.
func (t *Template) Program() *parse.Program {
	return t.prog
}
