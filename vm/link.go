// This file is part of tapevm - https://github.com/db47h/tapevm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

// JumpTable links matching brackets of a program. For a '[' at offset i,
// jt[i] is the offset of the matching ']', and for a ']' at offset j, jt[j] is
// the offset of the matching '['. All other entries are -1.
type JumpTable []int

// Link checks the bracket structure of prog and returns its jump table.
//
// On failure, the returned error is a *SyntaxError. An unmatched ']' is
// reported at its own offset. Unclosed brackets are reported at the offset
// of the outermost one. No table is returned in case of error.
func Link(prog []byte) (JumpTable, error) {
	jt := make(JumpTable, len(prog))
	if errs := match(prog, jt, 1); len(errs) > 0 {
		return nil, errs[0]
	}
	return jt, nil
}

// Mismatches returns the bracket mismatches of prog in offset order, at most
// limit of them if limit > 0. The first one is the error returned by Link.
func Mismatches(prog []byte, limit int) []*SyntaxError {
	return match(prog, nil, limit)
}

// match links brackets into jt, if not nil, and collects mismatches. A ']'
// can only be unopened when all brackets before it are closed, so unopened
// brackets always precede unclosed ones and errs is sorted by offset.
func match(prog []byte, jt JumpTable, limit int) (errs []*SyntaxError) {
	var open []int
	full := func() bool { return limit > 0 && len(errs) >= limit }
	for pc, c := range prog {
		if jt != nil {
			jt[pc] = -1
		}
		switch c {
		case OpOpen:
			open = append(open, pc)
		case OpClose:
			if len(open) == 0 {
				if errs = append(errs, &SyntaxError{ErrUnopened, pc}); full() {
					return errs
				}
				continue
			}
			o := open[len(open)-1]
			open = open[:len(open)-1]
			if jt != nil {
				jt[o], jt[pc] = pc, o
			}
		}
	}
	for _, pc := range open {
		if full() {
			break
		}
		errs = append(errs, &SyntaxError{ErrUnclosed, pc})
	}
	return errs
}
