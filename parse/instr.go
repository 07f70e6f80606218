// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "github.com/mohae/tmpl/schema"

// Op identifies the operation an Instruction performs. It is the Go
// equivalent of the C original's "enum action".
type Op int

const (
	OpAppend Op = iota
	OpAppendChar
	OpVariable
	OpVariableStr
	OpVariableStrEscape
	OpStartIter
	OpEndIter
	OpIfNotEmpty
	OpEndIfNotEmpty
	OpApplyTpl
	OpLast
)

var opStrings = [...]string{
	OpAppend:            "APPEND",
	OpAppendChar:        "APPEND_CHAR",
	OpVariable:          "VARIABLE",
	OpVariableStr:       "VARIABLE_STR",
	OpVariableStrEscape: "VARIABLE_STR_ESCAPE",
	OpStartIter:         "START_ITER",
	OpEndIter:           "END_ITER",
	OpIfNotEmpty:        "IF_NOT_EMPTY",
	OpEndIfNotEmpty:     "END_IF_NOT_EMPTY",
	OpApplyTpl:          "APPLY_TPL",
	OpLast:              "LAST",
}

func (o Op) String() string {
	if int(o) < len(opStrings) {
		return opStrings[o]
	}
	return "UNKNOWN"
}

// Flags are per-instruction modifiers, mirroring "enum flags" in the C
// original.
type Flags int

const (
	// FlagNegate inverts the emptiness/iteration predicate.
	FlagNegate Flags = 1 << iota
	// FlagQuote marks a variable for HTML escaping.
	FlagQuote
	// FlagNoFree is an ownership hint used only during parsing: it marks an
	// opener instruction whose data still points at a schema.Descriptor
	// rather than a finished BlockDescriptor. closeIfNotEmpty clears it on
	// the IfNotEmpty opener it pairs with, so a later close never pairs with
	// an already-closed opener; post-processing always clears it. It has no effect on the Go evaluator (which never frees
	// instructions), but is kept because it documents the same transient
	// ownership window the C parser relies on, and parse_test exercises
	// it directly.
	FlagNoFree
)

// BlockDescriptor links a block-opening Instruction (StartIter,
// IfNotEmpty) to the index of its closing Instruction. It is created by
// post-processing once the matching close is known, replacing the opener's
// raw descriptor pointer.
type BlockDescriptor struct {
	Descriptor *schema.Descriptor
	End        int // index of the first instruction to execute when the block is skipped
}

// Instruction is a single executable step of a compiled template, the Go
// analogue of "struct chunk".
type Instruction struct {
	Op    Op
	Flags Flags

	Text       string             // OpAppend; a template-source substring, never copied
	Char       byte               // OpAppendChar
	Descriptor *schema.Descriptor // OpVariable, OpVariableStr, OpVariableStrEscape, OpStartIter, OpIfNotEmpty; copied onto OpEndIter/OpEndIfNotEmpty by post-processing
	Block      *BlockDescriptor   // OpStartIter/OpIfNotEmpty after post-processing
	StartIdx   int                // OpEndIter/OpEndIfNotEmpty: index of the paired opener (set during parse, resolved during post-processing)
	Template   *Program           // OpApplyTpl
}

// Program is a compiled, immutable instruction stream plus the size hint
// used to pre-grow the render buffer. It is the Go analogue of "struct
// lwan_tpl" stripped of manual memory management (the Go garbage collector
// owns Program, its Instructions, and any partials it holds).
type Program struct {
	Instructions []Instruction
	MinimumSize  int
}
