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

package asm

import (
	"bytes"
	"text/scanner"
	"unicode/utf8"

	"github.com/db47h/tapevm/vm"
)

const maxErrors = 10

// Error is a single assembler error.
type Error struct {
	Pos scanner.Position
	Msg string
	Err error // vm.ErrUnopened or vm.ErrUnclosed
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Cause returns the underlying vm error value.
func (e *Error) Cause() error { return e.Err }

// ErrAsm encapsulates errors generated by the assembler.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	var b bytes.Buffer
	for i := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[i].Error())
	}
	return b.String()
}

// position converts an offset in src to a scanner.Position.
func position(name string, src []byte, offset int) scanner.Position {
	line := 1 + bytes.Count(src[:offset], []byte{'\n'})
	start := bytes.LastIndexByte(src[:offset], '\n') + 1
	return scanner.Position{
		Filename: name,
		Offset:   offset,
		Line:     line,
		Column:   1 + utf8.RuneCount(src[start:offset]),
	}
}

// diagnose lists all unmatched brackets in src.
func diagnose(name string, src []byte) ErrAsm {
	var errs ErrAsm
	for _, e := range vm.Mismatches(src, maxErrors) {
		errs = append(errs, Error{position(name, src, e.Pos), e.Err.Error(), e.Err})
	}
	return errs
}
