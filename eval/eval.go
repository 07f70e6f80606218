// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eval renders a compiled parse.Program against a piece of Go
// data. It is the C6/C7 half of the compiler: parse turns template source
// into an Instruction array, eval walks that array.
package eval

import (
	"reflect"
	"strings"

	"github.com/mohae/tmpl/parse"
)

// Apply renders prog against data and returns the result.
func Apply(prog *parse.Program, data interface{}) (string, error) {
	var w strings.Builder
	if err := ApplyWithBuffer(prog, data, &w); err != nil {
		return "", err
	}
	return w.String(), nil
}

// ApplyWithBuffer renders prog against data into w, letting a caller reuse
// one buffer across many renders the way lwan_tpl_apply_with_buffer lets a
// caller reuse one lwan_strbuf.
func ApplyWithBuffer(prog *parse.Program, data interface{}, w *strings.Builder) error {
	w.Reset()
	w.Grow(prog.MinimumSize)
	return run(prog.Instructions, 0, len(prog.Instructions), w, data)
}

// run walks instrs[start:end], writing output to w and resolving
// variables against data. It recurses once per nested block scope
// (iteration body, partial) and, for iteration, once per element — each
// such call returns before the next one begins, so stack depth tracks
// template nesting depth, not the number of items being rendered.
func run(instrs []parse.Instruction, start, end int, w *strings.Builder, data interface{}) error {
	for i := start; i < end; i++ {
		ins := &instrs[i]

		switch ins.Op {
		case parse.OpAppend:
			w.WriteString(ins.Text)

		case parse.OpAppendChar:
			w.WriteByte(ins.Char)

		case parse.OpVariable:
			v := resolveOrWarn(data, ins.Descriptor.Name)
			appendValue(w, v, ins.Flags&parse.FlagQuote != 0)

		case parse.OpVariableStr:
			v := resolveOrWarn(data, ins.Descriptor.Name)
			StringAdapter(w, v)

		case parse.OpVariableStrEscape:
			v := resolveOrWarn(data, ins.Descriptor.Name)
			EscapedStringAdapter(w, v)

		case parse.OpIfNotEmpty:
			v := resolveOrWarn(data, ins.Descriptor.Name)
			empty := isEmpty(v)
			if ins.Flags&parse.FlagNegate != 0 {
				empty = !empty
			}
			if empty {
				i = ins.Block.End - 1
			}
			// Otherwise fall through: the body is the very next
			// instructions and needs no recursive call, since it shares
			// the same data scope as the IfNotEmpty itself.

		case parse.OpEndIfNotEmpty:
			// Reached only when the block above rendered; nothing to do.

		case parse.OpStartIter:
			bodyStart := i + 1
			bodyEnd := ins.Block.End - 1
			negate := ins.Flags&parse.FlagNegate != 0

			fv := resolveOrWarn(data, ins.Descriptor.Name)
			g := newGenerator(iterValues(fv))
			item, resumed := g.next()

			test := resumed
			if negate {
				test = !test
			}

			switch {
			case !test:
				if negate {
					g.cancel()
				}

			case negate:
				// Negated iteration over an empty source: cancel the
				// generator even though it never yielded — see
				// generator.cancel — then render the body once against
				// the enclosing scope.
				g.cancel()
				if err := run(instrs, bodyStart, bodyEnd, w, data); err != nil {
					return err
				}

			default:
				for {
					if err := run(instrs, bodyStart, bodyEnd, w, item); err != nil {
						return err
					}
					item, resumed = g.next()
					if !resumed {
						break
					}
				}
			}
			i = bodyEnd

		case parse.OpEndIter:
			// Unreachable in a well-formed Program: OpStartIter always
			// jumps straight past its own End marker.

		case parse.OpApplyTpl:
			child := ins.Template.Instructions
			if err := run(child, 0, len(child), w, data); err != nil {
				return err
			}

		case parse.OpLast:
			return nil
		}
	}
	return nil
}

// resolveOrWarn looks up name in data, logging a warning and returning the
// zero Value if it isn't there. A schema promising a variable the actual
// data doesn't carry is never a compile-time problem (the schema is
// checked once, against no particular data value), so by design render
// never fails over it — it renders empty and only a log line marks the
// mismatch, the same way the C original's apply() only ever warns, never
// aborts, over a malformed coroutine state.
func resolveOrWarn(data interface{}, name string) reflect.Value {
	v, ok := resolve(data, name)
	if !ok {
		logger.Warnf("variable %q not found in data", name)
	}
	return v
}
