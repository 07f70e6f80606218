// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"

	"github.com/mohae/tmpl/schema"
)

// CompileFlags alter Parse's behavior.
type CompileFlags int

const (
	// ConstTemplate hints that the source text outlives the returned
	// Program, the same promise the C original required of its caller
	// before it would alias chunk->data.str into the source buffer instead
	// of strdup'ing it. Go's garbage collector keeps a template's backing
	// string alive for as long as any Instruction references it regardless,
	// so this flag has no effect on the emitted Program; it is kept purely
	// for API parity with callers ported from the C convention.
	ConstTemplate CompileFlags = 1 << iota
)

// CompileFileFunc compiles a named partial into a Program, reusing the
// parent schema for lookups inside it. It is supplied by the caller (the
// top-level tmpl package) so this package never has to know how partials
// are located on disk; that keeps parse free of an import cycle with the
// package that wraps Program into a Template.
type CompileFileFunc func(name string, sc schema.Schema) (*Program, error)

// parseError reports a failure to compile a template, naming the template
// whose compilation failed.
type parseError struct {
	name string
	msg  string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.name, e.msg)
}

// parserState is one state of the parser's state machine. Each state
// receives the lexeme the driver loop just pulled and returns the state
// that should handle the next one, or a non-nil error to abort the parse.
// A nil state with a nil error means the parse finished successfully.
type parserState func(*Tree, item) (parserState, error)

// Tree holds the transient state of a single parse. It is the Go analogue
// of the C original's "struct parser".
type Tree struct {
	name        string
	schema      schema.Schema
	compileFile CompileFileFunc

	lex    *lexer
	symtab symtab

	flags Flags // pending Negate/Quote, applied to the next opener or variable

	blockStack []item // open-block identifiers awaiting a matching {{/name}}

	instructions []Instruction
	minimumSize  int
}

// Parse compiles text into a Program under the given schema. name is used
// only for diagnostics.
func Parse(name, text string, sc schema.Schema, flags CompileFlags, compileFile CompileFileFunc) (*Program, error) {
	if err := sc.Validate(); err != nil {
		return nil, &parseError{name, err.Error()}
	}

	t := &Tree{
		name:        name,
		schema:      sc,
		compileFile: compileFile,
	}
	t.symtab.push(sc)
	t.lex = lex(name, text)

	return t.shutdown(t.run())
}

// run drives the state machine until it halts, returning the first error
// encountered (from the lexer or a parser state), or nil on success.
func (t *Tree) run() error {
	var state parserState = stateText
	for state != nil {
		lx := t.lex.nextItem()
		if lx.typ == itemError {
			return &parseError{t.name, lx.val}
		}
		var err error
		state, err = state(t, lx)
		if err != nil {
			return err
		}
	}
	return nil
}

// shutdown validates the invariants that must hold after a clean parse,
// logs every violation it finds, and either runs post-processing or
// reports the first error encountered. This mirrors parser_shutdown in the
// C original: every check still runs (and is logged) even once the parse
// is already known to have failed, so a caller's log shows every problem
// in one pass rather than just the first.
func (t *Tree) shutdown(runErr error) (*Program, error) {
	success := runErr == nil
	if runErr != nil {
		logger.Errorf("%s", runErr)
	}

	if len(t.blockStack) != 0 {
		for _, b := range t.blockStack {
			logger.Errorf("%s: unclosed {{#%s}} or {{%s?}}", t.name, b.val, b.val)
		}
		success = false
	}

	t.symtab.pop() // remove the base schema frame pushed by Parse
	if t.symtab.depth() != 0 {
		logger.Errorf("%s: symbol table not empty at end of parse", t.name)
		success = false
	}

	if t.flags&FlagNegate != 0 {
		logger.Errorf("%s: dangling negation", t.name)
		success = false
	}
	if t.flags&FlagQuote != 0 {
		logger.Errorf("%s: dangling quote", t.name)
		success = false
	}

	if !success {
		if runErr != nil {
			return nil, runErr
		}
		return nil, &parseError{t.name, "parse failed"}
	}

	return postProcess(t.name, t.instructions, t.minimumSize)
}

func (t *Tree) emit(ins Instruction) {
	t.instructions = append(t.instructions, ins)
}

func (t *Tree) errorf(format string, args ...interface{}) error {
	return &parseError{t.name, fmt.Sprintf(format, args...)}
}

func (t *Tree) unexpected(lx item) error {
	return t.errorf("unexpected %s %s", lx.typ, lx)
}

func (t *Tree) pushBlock(lx item) {
	t.blockStack = append(t.blockStack, lx)
}

// popBlock removes and returns the innermost open block, failing if the
// stack is empty or its name doesn't match the closing lexeme.
func (t *Tree) popBlock(lx item) (item, error) {
	if len(t.blockStack) == 0 {
		return item{}, t.errorf("unexpected {{/%s}}: nothing open", lx.val)
	}
	top := t.blockStack[len(t.blockStack)-1]
	if top.val != lx.val {
		return item{}, t.errorf("expecting {{/%s}} but found {{/%s}}", top.val, lx.val)
	}
	t.blockStack = t.blockStack[:len(t.blockStack)-1]
	return top, nil
}

// stateText scans literal text and action openers.
func stateText(t *Tree, lx item) (parserState, error) {
	switch lx.typ {
	case itemLeftMeta:
		return stateMeta, nil
	case itemText:
		if len(lx.val) == 1 {
			t.emit(Instruction{Op: OpAppendChar, Char: lx.val[0]})
		} else {
			t.emit(Instruction{Op: OpAppend, Text: lx.val})
		}
		t.minimumSize += len(lx.val)
		return stateText, nil
	case itemEOF:
		t.emit(Instruction{Op: OpLast})
		return nil, nil
	}
	return nil, t.unexpected(lx)
}

// stateMeta dispatches on the lexeme immediately following "{{".
func stateMeta(t *Tree, lx item) (parserState, error) {
	switch lx.typ {
	case itemOpenCurly:
		if t.flags&FlagQuote != 0 {
			return nil, t.unexpected(lx)
		}
		t.flags |= FlagQuote
		return stateMeta, nil
	case itemIdentifier:
		return stateIdentifier(t, lx)
	case itemGreaterThan:
		return statePartial, nil
	case itemHash:
		return stateIter, nil
	case itemHat:
		return stateNegate, nil
	case itemSlash:
		return stateSlash, nil
	}
	return nil, t.unexpected(lx)
}

// stateNegate handles the lexeme following "^": either another "#" (a
// negated iteration) or an identifier (a negated, i.e. empty-block, test).
func stateNegate(t *Tree, lx item) (parserState, error) {
	switch lx.typ {
	case itemHash:
		t.flags ^= FlagNegate
		return stateIter, nil
	case itemIdentifier:
		t.flags ^= FlagNegate
		return stateIdentifier(t, lx)
	}
	return nil, t.unexpected(lx)
}

// stateIdentifier handles a bare variable reference, {{name}}, its escaped
// form {{{name}}}, and a non-empty-block opener, {{name?}}.
func stateIdentifier(t *Tree, lx item) (parserState, error) {
	name := lx.val

	next := t.lex.nextItem()
	if t.flags&FlagQuote != 0 {
		if next.typ != itemCloseCurly {
			return nil, t.unexpected(next)
		}
		next = t.lex.nextItem()
	}
	if next.typ == itemError {
		return nil, &parseError{t.name, next.val}
	}

	switch next.typ {
	case itemRightMeta:
		d := t.symtab.lookup(name)
		if d == nil {
			return nil, t.errorf("unknown variable: %s", name)
		}
		t.emit(Instruction{Op: OpVariable, Flags: t.flags, Descriptor: d})
		t.minimumSize += len(name) + 1
		t.flags &^= FlagQuote
		return stateText, nil

	case itemQuestionMark:
		if t.flags&FlagQuote != 0 {
			return nil, t.unexpected(next)
		}
		d := t.symtab.lookup(name)
		if d == nil {
			return nil, t.errorf("unknown variable: %s", name)
		}
		t.emit(Instruction{Op: OpIfNotEmpty, Flags: (t.flags & FlagNegate) | FlagNoFree, Descriptor: d})
		t.pushBlock(lx)
		t.flags &^= FlagNegate

		rm := t.lex.nextItem()
		if rm.typ == itemError {
			return nil, &parseError{t.name, rm.val}
		}
		if rm.typ != itemRightMeta {
			return nil, t.unexpected(rm)
		}
		return stateText, nil
	}
	return nil, t.unexpected(next)
}

// stateIter handles the identifier following "{{#", opening an iteration
// block and pushing its nested schema onto the symbol table.
func stateIter(t *Tree, lx item) (parserState, error) {
	if lx.typ != itemIdentifier {
		return nil, t.unexpected(lx)
	}
	d := t.symtab.lookup(lx.val)
	if d == nil {
		return nil, t.errorf("unknown variable: %s", lx.val)
	}
	if d.Nested == nil {
		return nil, t.errorf("not an iterable variable: %s", lx.val)
	}

	t.emit(Instruction{Op: OpStartIter, Flags: (t.flags & FlagNegate) | FlagNoFree, Descriptor: d})
	t.pushBlock(lx)
	t.symtab.push(d.Nested)
	t.flags &^= FlagNegate

	rm := t.lex.nextItem()
	if rm.typ == itemError {
		return nil, &parseError{t.name, rm.val}
	}
	if rm.typ != itemRightMeta {
		return nil, t.unexpected(rm)
	}
	return stateText, nil
}

// statePartial handles the identifier following "{{>", compiling the named
// partial and emitting an instruction that applies it in place.
func statePartial(t *Tree, lx item) (parserState, error) {
	if lx.typ != itemIdentifier {
		return nil, t.unexpected(lx)
	}
	if t.compileFile == nil {
		return nil, t.errorf("partials are not supported in this context: {{>%s}}", lx.val)
	}
	child, err := t.compileFile(lx.val, t.schema)
	if err != nil {
		return nil, t.errorf("could not compile partial %q: %s", lx.val, err)
	}
	t.emit(Instruction{Op: OpApplyTpl, Template: child})
	t.minimumSize += child.MinimumSize

	rm := t.lex.nextItem()
	if rm.typ == itemError {
		return nil, &parseError{t.name, rm.val}
	}
	if rm.typ != itemRightMeta {
		return nil, t.unexpected(rm)
	}
	return stateText, nil
}

// stateSlash handles the identifier following "{{/", closing either an
// iteration block ({{/name}}) or a non-empty-block ({{/name?}}).
func stateSlash(t *Tree, lx item) (parserState, error) {
	if lx.typ != itemIdentifier {
		return nil, t.unexpected(lx)
	}

	next := t.lex.nextItem()
	if next.typ == itemError {
		return nil, &parseError{t.name, next.val}
	}

	switch next.typ {
	case itemRightMeta:
		return t.closeIter(lx)
	case itemQuestionMark:
		return t.closeIfNotEmpty(lx)
	}
	return nil, t.unexpected(next)
}

// closeIter closes a {{/name}} block started by {{#name}}, finding its
// opener by scanning the instruction stream backward for the nearest
// StartIter carrying the same descriptor, just as the C parser scans its
// chunk array in reverse to pair ACTION_START_ITER with ACTION_END_ITER.
func (t *Tree) closeIter(lx item) (parserState, error) {
	if _, err := t.popBlock(lx); err != nil {
		return nil, err
	}
	d := t.symtab.lookup(lx.val)
	if d == nil {
		return nil, t.errorf("unknown variable: %s", lx.val)
	}

	idx := -1
	for i := len(t.instructions) - 1; i >= 0; i-- {
		if t.instructions[i].Op == OpStartIter && t.instructions[i].Descriptor == d {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, t.errorf("could not find opening {{#%s}}", lx.val)
	}

	t.symtab.pop()
	t.emit(Instruction{Op: OpEndIter, StartIdx: idx})
	return stateText, nil
}

// closeIfNotEmpty closes a {{/name?}} block started by {{name?}}, pairing
// it with its opener the same way closeIter does: a reverse scan for the
// nearest still-open (FlagNoFree still set) opener with a matching
// descriptor.
func (t *Tree) closeIfNotEmpty(lx item) (parserState, error) {
	if _, err := t.popBlock(lx); err != nil {
		return nil, err
	}
	d := t.symtab.lookup(lx.val)
	if d == nil {
		return nil, t.errorf("unknown variable: %s", lx.val)
	}

	idx := -1
	for i := len(t.instructions) - 1; i >= 0; i-- {
		in := t.instructions[i]
		if in.Op == OpIfNotEmpty && in.Descriptor == d && in.Flags&FlagNoFree != 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, t.errorf("could not find opening {{%s?}}", lx.val)
	}
	t.instructions[idx].Flags &^= FlagNoFree

	t.emit(Instruction{Op: OpEndIfNotEmpty, StartIdx: idx, Descriptor: d})

	rm := t.lex.nextItem()
	if rm.typ == itemError {
		return nil, &parseError{t.name, rm.val}
	}
	if rm.typ != itemRightMeta {
		return nil, t.unexpected(rm)
	}
	return stateText, nil
}
