// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"testing"

	"github.com/mohae/tmpl/schema"
)

func mustParse(t *testing.T, text string, sc schema.Schema) *Program {
	t.Helper()
	p, err := Parse("test", text, sc, 0, nil)
	if err != nil {
		t.Fatalf("Parse(%q) = %v", text, err)
	}
	return p
}

func TestParseText(t *testing.T) {
	p := mustParse(t, "hello, world", nil)
	want := []Op{OpAppend, OpLast}
	if len(p.Instructions) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(p.Instructions), len(want))
	}
	if p.Instructions[0].Text != "hello, world" {
		t.Errorf("Text = %q, want %q", p.Instructions[0].Text, "hello, world")
	}
	if p.MinimumSize != len("hello, world") {
		t.Errorf("MinimumSize = %d, want %d", p.MinimumSize, len("hello, world"))
	}
}

func TestParseAppendChar(t *testing.T) {
	p := mustParse(t, "x", nil)
	if p.Instructions[0].Op != OpAppendChar || p.Instructions[0].Char != 'x' {
		t.Errorf("got %+v, want a single AppendChar('x')", p.Instructions[0])
	}
}

func TestParseVariable(t *testing.T) {
	sc := schema.Of("name")
	p := mustParse(t, "hi {{name}}", sc)
	last := p.Instructions[len(p.Instructions)-2]
	if last.Op != OpVariable || last.Descriptor.Name != "name" {
		t.Errorf("got %+v, want a VARIABLE(name)", last)
	}
}

func TestParseEscapedVariable(t *testing.T) {
	sc := schema.Of("name")
	p := mustParse(t, "{{{name}}}", sc)
	ins := p.Instructions[0]
	if ins.Op != OpVariable || ins.Flags&FlagQuote == 0 {
		t.Errorf("got %+v, want a quoted VARIABLE(name)", ins)
	}
}

func TestParseStringVariableSpecialized(t *testing.T) {
	sc := schema.Schema{schema.String("name")}
	p := mustParse(t, "{{{name}}}", sc)
	ins := p.Instructions[0]
	if ins.Op != OpVariableStrEscape {
		t.Errorf("got Op = %s, want VARIABLE_STR_ESCAPE", ins.Op)
	}

	sc = schema.Schema{schema.String("name")}
	p = mustParse(t, "{{name}}", sc)
	if p.Instructions[0].Op != OpVariableStr {
		t.Errorf("got Op = %s, want VARIABLE_STR", p.Instructions[0].Op)
	}
}

func TestParseUnknownVariable(t *testing.T) {
	_, err := Parse("test", "{{missing}}", nil, 0, nil)
	if err == nil {
		t.Fatal("expected an error for an undeclared variable")
	}
}

func TestParseIteration(t *testing.T) {
	sc := schema.Schema{schema.Iterable("items", schema.Of("name"))}
	p := mustParse(t, "{{#items}}{{name}}{{/items}}", sc)

	var start, end *Instruction
	for i := range p.Instructions {
		switch p.Instructions[i].Op {
		case OpStartIter:
			start = &p.Instructions[i]
		case OpEndIter:
			end = &p.Instructions[i]
		}
	}
	if start == nil || end == nil {
		t.Fatal("expected both a StartIter and EndIter instruction")
	}
	if start.Block == nil {
		t.Fatal("StartIter was not linked to a BlockDescriptor during post-processing")
	}
	if start.Flags&FlagNoFree != 0 {
		t.Error("StartIter still carries FlagNoFree after post-processing")
	}
}

func TestParseNegatedIteration(t *testing.T) {
	sc := schema.Schema{schema.Iterable("items", schema.Of("name"))}
	p := mustParse(t, "{{^#items}}empty{{/items}}", sc)
	start := p.Instructions[0]
	if start.Op != OpStartIter || start.Flags&FlagNegate == 0 {
		t.Errorf("got %+v, want a negated StartIter", start)
	}
}

func TestParseNonEmptyBlock(t *testing.T) {
	sc := schema.Of("name")
	p := mustParse(t, "{{name?}}yes{{/name?}}", sc)
	if p.Instructions[0].Op != OpIfNotEmpty {
		t.Fatalf("got %+v, want IfNotEmpty", p.Instructions[0])
	}
	if p.Instructions[0].Block == nil {
		t.Fatal("IfNotEmpty was not linked to a BlockDescriptor")
	}
}

func TestParseIterNotIterable(t *testing.T) {
	sc := schema.Of("name")
	_, err := Parse("test", "{{#name}}x{{/name}}", sc, 0, nil)
	if err == nil {
		t.Fatal("expected an error opening an iteration over a non-iterable variable")
	}
}

func TestParseMismatchedClose(t *testing.T) {
	sc := schema.Schema{
		schema.Iterable("items", schema.Of("x")),
		schema.Iterable("other", schema.Of("x")),
	}
	_, err := Parse("test", "{{#items}}x{{/other}}", sc, 0, nil)
	if err == nil {
		t.Fatal("expected an error for a mismatched block close")
	}
}

func TestParseUnclosedBlock(t *testing.T) {
	sc := schema.Schema{schema.Iterable("items", schema.Of("x"))}
	_, err := Parse("test", "{{#items}}x", sc, 0, nil)
	if err == nil {
		t.Fatal("expected an error for an unclosed block")
	}
}

func TestParsePartial(t *testing.T) {
	var gotName string
	compileFile := func(name string, sc schema.Schema) (*Program, error) {
		gotName = name
		return &Program{Instructions: []Instruction{{Op: OpLast}}}, nil
	}
	p := mustParse2(t, "{{>header}}", nil, compileFile)
	if gotName != "header" {
		t.Errorf("compileFile called with %q, want %q", gotName, "header")
	}
	if p.Instructions[0].Op != OpApplyTpl || p.Instructions[0].Template == nil {
		t.Errorf("got %+v, want an ApplyTpl instruction", p.Instructions[0])
	}
}

func TestParsePartialWithoutCompiler(t *testing.T) {
	_, err := Parse("test", "{{>header}}", nil, 0, nil)
	if err == nil {
		t.Fatal("expected an error when no CompileFileFunc is configured")
	}
}

func mustParse2(t *testing.T, text string, sc schema.Schema, compileFile CompileFileFunc) *Program {
	t.Helper()
	p, err := Parse("test", text, sc, 0, compileFile)
	if err != nil {
		t.Fatalf("Parse(%q) = %v", text, err)
	}
	return p
}
