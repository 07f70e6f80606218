// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "github.com/mohae/tmpl/schema"

// symtab is the symbol table stack (C3): a stack of schema frames reflecting
// the current iteration nesting depth. lookup walks from the top (innermost,
// most recently pushed frame) down to the bottom, returning the first hit —
// the same linear-scan-down-a-linked-list behavior as the C original's
// symtab_lookup.
type symtab struct {
	frames []schema.Schema
}

// push adds a new frame on top of the stack.
func (s *symtab) push(sc schema.Schema) {
	s.frames = append(s.frames, sc)
}

// pop removes the top frame. It panics if the stack is empty, since callers
// are expected to balance every push with a pop (an invariant parser
// shutdown checks).
func (s *symtab) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// depth reports how many frames are currently stacked.
func (s *symtab) depth() int {
	return len(s.frames)
}

// lookup returns the first descriptor named name found scanning from the
// innermost frame outward, or nil if none matches.
func (s *symtab) lookup(name string) *schema.Descriptor {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if d := s.frames[i].Lookup(name); d != nil {
			return d
		}
	}
	return nil
}
