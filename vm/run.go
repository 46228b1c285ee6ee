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

import "github.com/pkg/errors"

// stopFunc reports whether execution should stop before the instruction at pc.
// n is the number of instructions executed so far by the current call.
type stopFunc func(pc, n int) bool

func (i *Instance) check() error {
	if !i.ready {
		return errors.Wrap(ErrInvalidState, "no program")
	}
	if i.state == Halted {
		return errors.Wrap(ErrInvalidState, "program halted")
	}
	return nil
}

// exec is the fetch-execute loop shared by all entry points. It returns when
// the program halts, when a ',' finds no input (leaving the instance
// Waiting), or when stop returns true.
//
// If an error occurs, the PC will point to the instruction that triggered
// the error.
func (i *Instance) exec(stop stopFunc) error {
	if err := i.check(); err != nil {
		return err
	}
	for n := 0; ; n++ {
		if i.pc >= len(i.prog) {
			i.state = Halted
			return nil
		}
		if stop(i.pc, n) {
			return nil
		}
		switch i.prog[i.pc] {
		case OpInc:
			i.tape.Increment()
			i.pc++
		case OpDec:
			i.tape.Decrement()
			i.pc++
		case OpRight:
			i.tape.MoveRight()
			i.pc++
		case OpLeft:
			i.tape.MoveLeft()
			i.pc++
		case OpOpen:
			i.loop()
		case OpClose:
			i.pc = i.jumps[i.pc]
			i.loop()
		case OpIn:
			c, ok := i.in.Next()
			if !ok {
				i.state = Waiting
				return nil
			}
			i.tape.Write(c)
			i.state = Running
			i.pc++
		case OpOut:
			if err := i.out.Append(i.tape.Read()); err != nil {
				return errors.Wrapf(err, "output @pc=%d", i.pc)
			}
			i.pc++
		default:
			i.pc++
		}
		i.insCount++
	}
}

// loop applies the '[' test at the current PC.
func (i *Instance) loop() {
	if i.tape.Read() == 0 {
		i.pc = i.jumps[i.pc] + 1
	} else {
		i.pc++
	}
}

// Run starts or resumes execution of the program until it halts or needs
// input. It returns true if the program is waiting for input, in which case
// Run should be called again once more input has been appended.
func (i *Instance) Run() (waiting bool, err error) {
	err = i.exec(func(int, int) bool { return false })
	return i.state == Waiting, err
}

// RunUpTo runs the program until the PC moves past offset k, the program
// halts or it needs input. It returns the PC reached: a value of k+1 or more
// means that the requested range has been executed.
func (i *Instance) RunUpTo(k int) (pc int, err error) {
	err = i.exec(func(pc, _ int) bool { return pc > k })
	return i.pc, err
}

// Step executes a single instruction. A bracket jump counts as one step. It
// returns true if the program is waiting for input.
func (i *Instance) Step() (waiting bool, err error) {
	err = i.exec(func(_, n int) bool { return n > 0 })
	return i.state == Waiting, err
}
