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
	"bufio"
	"flag"
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/db47h/tapevm/lang/bf"
	"github.com/db47h/tapevm/vm"
	"github.com/pkg/errors"
)

// config holds the settings that may be read from a TOML file. Command line
// flags override them.
type config struct {
	Cells      int    `toml:"cells"`
	Input      int    `toml:"input"`
	Output     int    `toml:"output"`
	Frame      string `toml:"frame"`
	Terminator string `toml:"terminator"`
	LogFile    string `toml:"log-file"`
	LogLevel   string `toml:"log-level"`
	Snapshot   string `toml:"snapshot"`
}

func defaultConfig() config {
	return config{
		Cells:      vm.DefaultCellCount,
		Input:      vm.DefaultInputSize,
		Output:     vm.DefaultOutputSize,
		Frame:      "lines",
		Terminator: ".",
		LogLevel:   "info",
	}
}

func loadConfig(fileName string, c *config) error {
	md, err := toml.DecodeFile(fileName, c)
	if err != nil {
		return errors.Wrapf(err, "config %s", fileName)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return errors.Errorf("config %s: unknown key %q", fileName, keys[0].String())
	}
	return nil
}

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

// options is the fully resolved command line.
type options struct {
	config
	program  string // program file, empty if code is set
	code     string
	with     fileList
	list     bool
	dump     bool
	resume   string
	noRawIO  bool
	debug    bool
	trace    bool
	logLevel slog.Level
}

func parseArgs(args []string) (*options, error) {
	var (
		o          options
		f          = defaultConfig()
		configFile string
	)
	fs := flag.NewFlagSet("tapevm", flag.ContinueOnError)
	fs.StringVar(&configFile, "config", "", "load settings from TOML file `filename`")
	fs.IntVar(&f.Cells, "cells", f.Cells, "tape size in cells")
	fs.IntVar(&f.Input, "in", f.Input, "input buffer size in bytes")
	fs.IntVar(&f.Output, "out", f.Output, "output buffer size in bytes")
	fs.StringVar(&f.Frame, "frame", f.Frame, "input framing: lines, raw or terminated")
	fs.StringVar(&f.Terminator, "term", f.Terminator, "`char` standing for a 0 byte with -frame terminated")
	fs.StringVar(&f.LogFile, "log", "", "also write JSON logs to `filename`")
	fs.StringVar(&f.Snapshot, "save", "", "save a snapshot of the machine to `filename` if input ends while it waits")
	fs.StringVar(&o.code, "e", "", "run `program` text instead of a program file")
	fs.Var(&o.with, "with", "Add `filename` to the input list (can be specified multiple times)")
	fs.BoolVar(&o.list, "list", false, "print the program listing and exit")
	fs.BoolVar(&o.dump, "dump", false, "dump the machine state upon exit")
	fs.StringVar(&o.resume, "resume", "", "resume the machine saved in `filename`")
	fs.BoolVar(&o.noRawIO, "noraw", false, "disable raw terminal IO")
	fs.BoolVar(&o.debug, "debug", false, "enable debug diagnostics")
	fs.BoolVar(&o.trace, "trace", false, "trace executed instructions on stderr")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o.config = defaultConfig()
	if configFile != "" {
		if err := loadConfig(configFile, &o.config); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "cells":
			o.Cells = f.Cells
		case "in":
			o.Input = f.Input
		case "out":
			o.Output = f.Output
		case "frame":
			o.Frame = f.Frame
		case "term":
			o.Terminator = f.Terminator
		case "log":
			o.LogFile = f.LogFile
		case "save":
			o.Snapshot = f.Snapshot
		}
	})
	if o.debug {
		o.LogLevel = "debug"
	}
	if err := o.logLevel.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return nil, errors.Wrap(err, "log-level")
	}

	switch o.Frame {
	case "lines", "raw":
	case "terminated":
		if len(o.Terminator) != 1 {
			return nil, errors.Errorf("terminator must be a single byte, got %q", o.Terminator)
		}
	default:
		return nil, errors.Errorf("unknown framing %q", o.Frame)
	}

	switch {
	case o.resume != "":
		if fs.NArg() > 0 || o.code != "" {
			return nil, errors.New("-resume cannot be used with a program")
		}
	case o.code != "":
		if fs.NArg() > 0 {
			return nil, errors.New("-e cannot be used with a program file")
		}
	case fs.NArg() == 1:
		o.program = fs.Arg(0)
	default:
		return nil, errors.Errorf("expected exactly one program file, got %d", fs.NArg())
	}
	return &o, nil
}

// feeder returns the feeder settings for the selected framing. On a raw
// terminal, input is fed byte by byte and Ctrl-D ends the input.
func (o *options) feeder(rawtty bool) bf.Feeder {
	var f bf.Feeder
	switch o.Frame {
	case "lines":
		f.Frame = bf.Lines
	case "raw":
		f.Frame = bf.Raw
	case "terminated":
		f.Frame = bf.Terminated(o.Terminator[0])
	}
	if rawtty {
		if o.Frame == "lines" {
			// line feeds come through as input bytes
			f.Frame = bf.Raw
		}
		f.Frame = bf.EOT(f.Frame)
	}
	if rawtty || o.Frame == "raw" {
		f.Split = bufio.ScanBytes
	}
	return f
}
