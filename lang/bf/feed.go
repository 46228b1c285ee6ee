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

package bf

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/db47h/tapevm/asm"
	"github.com/db47h/tapevm/internal/xio"
	"github.com/db47h/tapevm/vm"
	"github.com/pkg/errors"
)

// DefaultMaxTokenSize is the default maximum size of an input token.
const DefaultMaxTokenSize = 16 << 20

// Feeder runs a VM instance, feeding it input read from an io.Reader whenever
// it waits for input. The zero value feeds lines followed by '\n'.
type Feeder struct {
	// Split splits the input into tokens. The default is bufio.ScanLines.
	Split bufio.SplitFunc
	// Frame converts tokens to VM input. The default is Lines.
	Frame Frame
	// MaxTokenSize limits the size of input tokens. The default is
	// DefaultMaxTokenSize.
	MaxTokenSize int
	// Logger, if not nil, logs suspensions and termination at debug level.
	Logger *slog.Logger
	// Trace, if not nil, makes the feeder execute the program one
	// instruction at a time and write a disassembly of each instruction to
	// Trace.
	Trace io.Writer
}

func (f *Feeder) debug(msg string, i *vm.Instance, args ...any) {
	if f.Logger == nil {
		return
	}
	f.Logger.Debug(msg, append([]any{"pc", i.PC(), "instructions", i.InstructionCount()}, args...)...)
}

func (f *Feeder) run(i *vm.Instance) (bool, error) {
	if f.Trace == nil {
		return i.Run()
	}
	ew := xio.NewErrWriter(f.Trace)
	for {
		pc, ptr := i.PC(), i.Tape().Pointer()
		if pc < len(i.Program()) && vm.IsOp(i.Program()[pc]) {
			fmt.Fprintf(ew, "% 10d\t", pc)
			asm.Disassemble(i.Program(), i.Jumps(), pc, ew)
			fmt.Fprintf(ew, "\t[%d]=%d\n", ptr, i.Tape().Read())
			if ew.Err != nil {
				return false, errors.Wrap(ew.Err, "trace")
			}
		}
		waiting, err := i.Step()
		if err != nil || waiting || i.State() == vm.Halted {
			return waiting, err
		}
	}
}

func flush(i *vm.Instance, w io.Writer) error {
	if !i.Output().HasUnread() {
		return nil
	}
	_, err := io.Copy(w, i.Output())
	return errors.Wrap(err, "output")
}

// Feed runs the program prepared in i until it halts, writing its output to w.
// When the program waits for input, the next token is read from r, framed and
// appended to the VM input, in several chunks if it does not fit in the input
// buffer. Tokens larger than MaxTokenSize end the feed with an error whose
// cause is bufio.ErrTooLong. When the output buffer is full, it is flushed to w and execution
// resumes.
//
// Feed returns nil if the program halted, and io.EOF if the input ended while
// the program was waiting for more. In the latter case, the instance is left
// in the Waiting state and may be resumed later.
func (f *Feeder) Feed(i *vm.Instance, r io.Reader, w io.Writer) error {
	s := bufio.NewScanner(r)
	size := f.MaxTokenSize
	if size <= 0 {
		size = DefaultMaxTokenSize
	}
	s.Buffer(make([]byte, 0, min(size, 4096)), size)
	if f.Split != nil {
		s.Split(f.Split)
	}
	frame := f.Frame
	if frame == nil {
		frame = Lines
	}
	var pending []byte
	for {
		waiting, err := f.run(i)
		if e := flush(i, w); e != nil {
			return e
		}
		if err != nil {
			if errors.Cause(err) == vm.ErrCapacity {
				f.debug("output buffer full", i)
				continue
			}
			return err
		}
		if !waiting {
			f.debug("halted", i)
			return nil
		}
		if len(pending) == 0 {
			f.debug("waiting for input", i)
			if !s.Scan() {
				if err = s.Err(); err != nil {
					return errors.Wrap(err, "input")
				}
				f.debug("end of input", i)
				return io.EOF
			}
			if pending, err = frame(s.Bytes()); err != nil {
				f.debug("end of input", i)
				return err
			}
		}
		n, _ := i.Write(pending)
		pending = pending[n:]
	}
}
