// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "github.com/mohae/tmpl/schema"

// postProcess is the C5 linking pass: it runs once over a finished
// instruction stream, resolving the back-pointers the parser recorded by
// index (StartIdx on OpEndIter/OpEndIfNotEmpty) into BlockDescriptors on
// the matching openers, and specializing generic OpVariable instructions
// into OpVariableStr/OpVariableStrEscape where the descriptor's Kind says
// the value is always a string. It mirrors lwan_tpl_finish's second pass
// over the chunk array.
func postProcess(name string, instrs []Instruction, minimumSize int) (*Program, error) {
	for closerIdx := range instrs {
		closer := &instrs[closerIdx]

		switch closer.Op {
		case OpEndIter, OpEndIfNotEmpty:
			opener := &instrs[closer.StartIdx]
			opener.Block = &BlockDescriptor{
				Descriptor: opener.Descriptor,
				End:        closerIdx + 1,
			}
			opener.Flags &^= FlagNoFree
			closer.Descriptor = opener.Descriptor

		case OpVariable:
			if closer.Descriptor == nil {
				return nil, &parseError{name, "VARIABLE instruction missing descriptor"}
			}
			switch closer.Descriptor.Kind {
			case schema.KindString:
				if closer.Flags&FlagQuote != 0 {
					closer.Op = OpVariableStrEscape
				} else {
					closer.Op = OpVariableStr
				}
			}
		}
	}

	return &Program{Instructions: instrs, MinimumSize: minimumSize}, nil
}
