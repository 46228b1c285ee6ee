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

import (
	"github.com/pkg/errors"
)

// Default sizes of the tape and I/O buffers.
const (
	DefaultCellCount  = 32768
	DefaultInputSize  = 32768
	DefaultOutputSize = 32768
)

// State is the run state of an Instance.
type State int

// Run states.
const (
	// Running is the state of a freshly prepared program, and of a program
	// that stopped at the end of a RunUpTo or Step call.
	Running State = iota
	// Waiting means that the program stopped on a ',' instruction with no
	// input available. It is resumed by calling any of the run entry points
	// once input has been appended.
	Waiting
	// Halted means that the program ran to completion. Only Prepare or
	// Restore will leave this state.
	Halted
)

var stateNames = [...]string{"running", "waiting", "halted"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Instance represents a VM instance.
type Instance struct {
	prog     []byte
	jumps    JumpTable
	pc       int
	state    State
	ready    bool
	tape     *Tape
	in       *Buffer
	out      *Buffer
	insCount int64
}

// Option interface
type Option func(*Instance) error

func checkSize(what string, size int) error {
	if size <= 0 {
		return errors.Errorf("invalid %s size %d", what, size)
	}
	return nil
}

// CellCount sets the number of cells of the tape. The default is
// DefaultCellCount.
func CellCount(size int) Option {
	return func(i *Instance) error {
		if err := checkSize("tape", size); err != nil {
			return err
		}
		i.tape = NewTape(size)
		return nil
	}
}

// InputSize sets the capacity of the input buffer. The default is
// DefaultInputSize.
func InputSize(size int) Option {
	return func(i *Instance) error {
		if err := checkSize("input buffer", size); err != nil {
			return err
		}
		i.in = NewBuffer(size)
		return nil
	}
}

// OutputSize sets the capacity of the output buffer. The default is
// DefaultOutputSize.
func OutputSize(size int) Option {
	return func(i *Instance) error {
		if err := checkSize("output buffer", size); err != nil {
			return err
		}
		i.out = NewBuffer(size)
		return nil
	}
}

// New creates a new VM instance. The tape and buffers are allocated once and
// reused by every program prepared on the instance.
func New(opts ...Option) (*Instance, error) {
	i := new(Instance)
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if i.tape == nil {
		i.tape = NewTape(DefaultCellCount)
	}
	if i.in == nil {
		i.in = NewBuffer(DefaultInputSize)
	}
	if i.out == nil {
		i.out = NewBuffer(DefaultOutputSize)
	}
	return i, nil
}

// Prepare loads a new program. The program is linked first; if it contains
// a bracket mismatch, a *SyntaxError is returned and the instance is left
// untouched. Otherwise the tape is zeroed, the input and output buffers are
// emptied and the program counter is set to 0 in the Running state.
func (i *Instance) Prepare(prog []byte) error {
	jt, err := Link(prog)
	if err != nil {
		return err
	}
	i.install(append([]byte(nil), prog...), jt)
	i.tape.Reset()
	i.in.Reset()
	i.out.Reset()
	return nil
}

func (i *Instance) install(prog []byte, jt JumpTable) {
	i.prog = prog
	i.jumps = jt
	i.pc = 0
	i.state = Running
	i.ready = true
	i.insCount = 0
}

// PC returns the program counter: the offset of the next instruction to
// execute. It is equal to len(Program()) once the program has halted.
func (i *Instance) PC() int { return i.pc }

// State returns the run state.
func (i *Instance) State() State { return i.state }

// Program returns the current program. It must not be modified.
func (i *Instance) Program() []byte { return i.prog }

// Jumps returns the jump table of the current program. It must not be
// modified.
func (i *Instance) Jumps() JumpTable { return i.jumps }

// Tape returns the instance tape.
func (i *Instance) Tape() *Tape { return i.tape }

// Input returns the input buffer.
func (i *Instance) Input() *Buffer { return i.in }

// Output returns the output buffer.
func (i *Instance) Output() *Buffer { return i.out }

// InstructionCount returns the number of instructions executed since the
// program was prepared.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

func (i *Instance) resume() {
	if i.state == Waiting && i.in.HasUnread() {
		i.state = Running
	}
}

// AppendInput appends the given bytes to the input buffer. Either all bytes
// are appended or, if they do not fit, none is and the error's cause is
// ErrCapacity.
func (i *Instance) AppendInput(b ...byte) error {
	if err := i.in.AppendAll(b); err != nil {
		return errors.Wrap(err, "input")
	}
	i.resume()
	return nil
}

// Write implements io.Writer on the input buffer. It appends as many bytes as
// will fit; if n < len(p) the error's cause is ErrCapacity.
func (i *Instance) Write(p []byte) (n int, err error) {
	n, err = i.in.Write(p)
	i.resume()
	return n, errors.Wrap(err, "input")
}

// NextOutput returns the next unread output byte. ok is false if no output is
// available.
func (i *Instance) NextOutput() (c byte, ok bool) {
	return i.out.Next()
}

// DrainOutput returns all unread output. The returned slice is empty if no
// new output is available.
func (i *Instance) DrainOutput() []byte {
	return i.out.Drain()
}
