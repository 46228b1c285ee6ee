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
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/tapevm/lang/bf"
	"github.com/db47h/tapevm/vm"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	name = filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(name, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestParseArgs(t *testing.T) {
	cfg := writeFile(t, "tapevm.toml", `
cells = 100
output = 16
frame = "terminated"
terminator = "!"
log-level = "warn"
`)
	o, err := parseArgs([]string{"-config", cfg, "-cells", "200", "-e", "+"})
	if err != nil {
		t.Fatal(err)
	}
	if o.Cells != 200 {
		t.Errorf("cells: got %d, expected flag value 200", o.Cells)
	}
	if o.Output != 16 || o.Input != vm.DefaultInputSize {
		t.Errorf("buffers: got %d, %d", o.Input, o.Output)
	}
	if o.Frame != "terminated" || o.Terminator != "!" {
		t.Errorf("framing: got %q, %q", o.Frame, o.Terminator)
	}
	if o.logLevel != slog.LevelWarn {
		t.Errorf("log level: got %v", o.logLevel)
	}
	if o.code != "+" || o.program != "" {
		t.Errorf("program: got %q, %q", o.code, o.program)
	}

	o, err = parseArgs([]string{"-debug", "prog.b"})
	if err != nil {
		t.Fatal(err)
	}
	if o.program != "prog.b" || o.logLevel != slog.LevelDebug || o.Frame != "lines" {
		t.Errorf("got %+v", o)
	}
}

func TestParseArgs_errors(t *testing.T) {
	bad := writeFile(t, "bad.toml", "colors = 256\n")
	for _, args := range [][]string{
		{},
		{"a", "b"},
		{"-e", "+", "a"},
		{"-resume", "x.img", "a"},
		{"-frame", "words", "a"},
		{"-frame", "terminated", "-term", "", "a"},
		{"-config", bad, "a"},
		{"-config", "does-not-exist.toml", "a"},
	} {
		if _, err := parseArgs(args); err == nil {
			t.Errorf("%q: expected error", args)
		}
	}
}

func runArgs(t *testing.T, in string, args ...string) (string, error) {
	t.Helper()
	o, err := parseArgs(args)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	_, err = run(o, strings.NewReader(in), &out, io.Discard, false, discard)
	return out.String(), err
}

func TestRun(t *testing.T) {
	out, err := runArgs(t, "", "-e", bf.Alphabet)
	if err != nil {
		t.Fatal(err)
	}
	if out != "abc" {
		t.Errorf("got %q", out)
	}

	prog := writeFile(t, "sort.b", bf.Sort)
	with := writeFile(t, "data.txt", "db\n")
	out, err = runArgs(t, "ca.\n", "-frame", "terminated", "-with", with, prog)
	if err != nil {
		t.Fatal(err)
	}
	if out != "abcd" {
		t.Errorf("got %q", out)
	}

	out, err = runArgs(t, "", "-list", "-e", "x[-]")
	if err != nil {
		t.Fatal(err)
	}
	if expected := "         1\topen 3\n         2\tdec\n         3\tclose 1\n"; out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}

	if _, err = runArgs(t, "", "-e", "[[]"); err == nil {
		t.Error("expected syntax error")
	}
}

func TestRun_snapshot(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "cat.img.zst")
	out, err := runArgs(t, "hello\n", "-save", snap, "-e", bf.Cat)
	if err != nil {
		t.Fatal(err)
	}
	if out != "hello\n" {
		t.Errorf("got %q", out)
	}
	out, err = runArgs(t, "world.", "-frame", "terminated", "-dump", "-resume", snap)
	if err != nil {
		t.Fatal(err)
	}
	// cat halts on the 0 byte, pointer 0, empty tape
	if expected := "world\x1C5 2 0\x1D\x1D"; out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}
