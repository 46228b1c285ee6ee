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

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/db47h/tapevm/asm"
	"github.com/db47h/tapevm/lang/bf"
	"github.com/db47h/tapevm/vm"
)

func loadProgram(o *options) ([]byte, error) {
	if o.program == "" {
		return asm.Assemble("-e", strings.NewReader(o.code))
	}
	f, err := os.Open(o.program)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return asm.Assemble(o.program, f)
}

func newVM(o *options) (*vm.Instance, error) {
	if o.resume != "" {
		img, err := vm.Load(o.resume)
		if err != nil {
			return nil, err
		}
		i, err := vm.New(img.Options()...)
		if err != nil {
			return nil, err
		}
		return i, i.Restore(img)
	}
	prog, err := loadProgram(o)
	if err != nil {
		return nil, err
	}
	i, err := vm.New(vm.CellCount(o.Cells), vm.InputSize(o.Input), vm.OutputSize(o.Output))
	if err != nil {
		return nil, err
	}
	return i, i.Prepare(prog)
}

// input returns the input stream: -with files in order of appearance on the
// command line, then stdin.
func input(o *options, stdin io.Reader) (io.Reader, func(), error) {
	var rs []io.Reader
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	for _, name := range o.with {
		f, err := os.Open(name)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, f)
		rs = append(rs, f)
	}
	return io.MultiReader(append(rs, stdin)...), closeAll, nil
}

func run(o *options, stdin io.Reader, stdout, stderr io.Writer, rawtty bool, log *slog.Logger) (i *vm.Instance, err error) {
	if o.list {
		prog, err := loadProgram(o)
		if err != nil {
			return nil, err
		}
		return nil, asm.DisassembleAll(prog, stdout)
	}

	if i, err = newVM(o); err != nil {
		return i, err
	}
	log.Debug("machine ready", "pc", i.PC(), "state", i.State(), "cells", i.Tape().Len())

	r, closeFn, err := input(o, stdin)
	if err != nil {
		return i, err
	}
	defer closeFn()

	f := o.feeder(rawtty && len(o.with) == 0)
	f.Logger = log
	if o.trace {
		f.Trace = stderr
	}
	err = f.Feed(i, r, stdout)
	if err == io.EOF {
		err = nil
		if o.Snapshot == "" {
			log.Warn("input ended while waiting for input", "pc", i.PC())
		} else if err = vm.Save(o.Snapshot, i.Image()); err == nil {
			log.Info("snapshot saved", "file", o.Snapshot, "pc", i.PC())
		}
	}
	if err == nil && o.dump {
		err = bf.DumpVM(i, stdout)
	}
	return i, err
}

// atExit reports err on stderr and returns the process exit code.
func atExit(i *vm.Instance, debug bool, err error) int {
	if err == nil {
		return 0
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		fmt.Fprintf(os.Stderr, "PC: %v, State: %v, Pointer: %v, Instructions: %v\n",
			i.PC(), i.State(), i.Tape().Pointer(), i.InstructionCount())
	}
	return 1
}

func tapevm() int {
	o, err := parseArgs(os.Args[1:])
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	level.Set(o.logLevel)
	log, closeLog, err := newLogger(os.Stderr, o.LogFile)
	if err != nil {
		return atExit(nil, o.debug, err)
	}
	defer closeLog()

	// try to switch the terminal to raw mode.
	rawtty := false
	if !o.noRawIO && !o.list && isTerminal() {
		tearDown, err := setRawIO()
		if err != nil {
			log.Debug("raw IO unavailable", "error", err)
		} else {
			rawtty = true
			defer tearDown()
		}
	}

	i, err := run(o, os.Stdin, os.Stdout, os.Stderr, rawtty, log)
	return atExit(i, o.debug, err)
}

func main() {
	os.Exit(tapevm())
}
