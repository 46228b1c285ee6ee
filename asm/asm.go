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
	"fmt"
	"io"
	"io/ioutil"
	"strconv"

	"github.com/db47h/tapevm/internal/xio"
	"github.com/db47h/tapevm/vm"
	"github.com/pkg/errors"
)

// Assemble reads a program from the supplied io.Reader, checks that it links
// and returns it.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// Syntax errors are returned as an ErrAsm value that will contain up to 10
// entries.
func Assemble(name string, r io.Reader) ([]byte, error) {
	prog, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	if _, err = vm.Link(prog); err != nil {
		return nil, diagnose(name, prog)
	}
	return prog, nil
}

// next returns the offset of the first instruction at or after pc.
func next(prog []byte, pc int) int {
	for pc < len(prog) && !vm.IsOp(prog[pc]) {
		pc++
	}
	return pc
}

// Disassemble writes a disassembly of the instruction in prog at position pc to
// the specified io.Writer and returns the position of the next instruction,
// skipping comments, and any write error. jt must be the jump table of prog.
func Disassemble(prog []byte, jt vm.JumpTable, pc int, w io.Writer) (n int, err error) {
	ew := xio.NewErrWriter(w)
	op := prog[pc]
	io.WriteString(ew, vm.OpName(op))
	switch op {
	case vm.OpOpen, vm.OpClose:
		ew.Write([]byte{' '})
		io.WriteString(ew, strconv.Itoa(jt[pc]))
	}
	return next(prog, pc+1), ew.Err
}

// DisassembleAll writes a disassembly of all instructions of the given
// program to the specified io.Writer. Each instruction is prefixed with its
// offset in prog. It will return any link or write error.
func DisassembleAll(prog []byte, w io.Writer) error {
	jt, err := vm.Link(prog)
	if err != nil {
		return err
	}
	ew := xio.NewErrWriter(w)
	for pc := next(prog, 0); pc < len(prog); {
		fmt.Fprintf(ew, "% 10d\t", pc)
		pc, _ = Disassemble(prog, jt, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
