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

package bf_test

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/db47h/tapevm/lang/bf"
	"github.com/db47h/tapevm/vm"
	"github.com/pkg/errors"
)

func prepare(t *testing.T, prog string, opts ...vm.Option) *vm.Instance {
	t.Helper()
	i, err := vm.New(opts...)
	if err != nil {
		t.Fatal(err)
	}
	if err = i.Prepare([]byte(prog)); err != nil {
		t.Fatal(err)
	}
	return i
}

func TestFrames(t *testing.T) {
	tests := []struct {
		name  string
		f     bf.Frame
		in    string
		out   string
		isEOF bool
	}{
		{"lines", bf.Lines, "abc", "abc\n", false},
		{"lines_empty", bf.Lines, "", "\n", false},
		{"raw", bf.Raw, "a", "a", false},
		{"terminated", bf.Terminated('.'), "c.ab.", "c\x00ab\x00", false},
		{"eot", bf.EOT(bf.Raw), "\x04", "", true},
		{"eot_pass", bf.EOT(bf.Lines), "x", "x\n", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in := []byte(test.in)
			out, err := test.f(in)
			if test.isEOF {
				if err != io.EOF {
					t.Fatalf("expected io.EOF, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if string(out) != test.out {
				t.Errorf("expected %q, got %q", test.out, out)
			}
			if string(in) != test.in {
				t.Errorf("token modified: %q", in)
			}
		})
	}
}

func TestFeed_sort(t *testing.T) {
	i := prepare(t, bf.Sort)
	var out bytes.Buffer
	f := bf.Feeder{Frame: bf.Terminated('.')}
	if err := f.Feed(i, strings.NewReader("31\n2.\n"), &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "123" {
		t.Errorf("got %q", out.String())
	}
	if i.State() != vm.Halted {
		t.Errorf("got state %v", i.State())
	}
}

func TestFeed_eof(t *testing.T) {
	i := prepare(t, bf.Cat)
	var out bytes.Buffer
	var f bf.Feeder
	err := f.Feed(i, strings.NewReader("hello\nworld\n"), &out)
	if err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if out.String() != "hello\nworld\n" {
		t.Errorf("got %q", out.String())
	}
	if i.State() != vm.Waiting {
		t.Errorf("got state %v", i.State())
	}
	// resume with more input
	out.Reset()
	f.Frame = bf.Terminated('.')
	if err = f.Feed(i, strings.NewReader("!."), &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "!" {
		t.Errorf("got %q", out.String())
	}
}

func TestFeed_smallBuffers(t *testing.T) {
	i := prepare(t, bf.Cat, vm.InputSize(2), vm.OutputSize(2))
	var out bytes.Buffer
	f := bf.Feeder{Frame: bf.Terminated('.')}
	if err := f.Feed(i, strings.NewReader("abcdefg."), &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "abcdefg" {
		t.Errorf("got %q", out.String())
	}
}

func TestFeed_longLine(t *testing.T) {
	line := strings.Repeat("0123456789", 7000)
	i := prepare(t, bf.Cat, vm.InputSize(1024), vm.OutputSize(1024))
	var out bytes.Buffer
	f := bf.Feeder{Frame: bf.Terminated('.')}
	if err := f.Feed(i, strings.NewReader(line+".\n"), &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != line {
		t.Errorf("got %d bytes of output, expected %d", out.Len(), len(line))
	}

	i = prepare(t, bf.Cat)
	out.Reset()
	f.MaxTokenSize = 16
	if err := f.Feed(i, strings.NewReader(line), &out); errors.Cause(err) != bufio.ErrTooLong {
		t.Errorf("unexpected error %v", err)
	}
}

func TestFeed_raw(t *testing.T) {
	i := prepare(t, bf.Cat)
	var out bytes.Buffer
	f := bf.Feeder{Split: bufio.ScanBytes, Frame: bf.EOT(bf.Raw)}
	if err := f.Feed(i, strings.NewReader("ab\x04cd"), &out); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if out.String() != "ab" {
		t.Errorf("got %q", out.String())
	}
}

func TestFeed_trace(t *testing.T) {
	i := prepare(t, "+ .")
	var out, trace bytes.Buffer
	f := bf.Feeder{Trace: &trace}
	if err := f.Feed(i, strings.NewReader(""), &out); err != nil {
		t.Fatal(err)
	}
	expected := "         0\tinc\t[0]=0\n" +
		"         2\tout\t[0]=1\n"
	if trace.String() != expected {
		t.Errorf("expected %q, got %q", expected, trace.String())
	}
	if out.String() != "\x01" {
		t.Errorf("got output %q", out.String())
	}
	if n := i.InstructionCount(); n != 3 {
		t.Errorf("got %d instructions", n)
	}
}

func TestFeed_logger(t *testing.T) {
	i := prepare(t, ",.")
	var out, log bytes.Buffer
	f := bf.Feeder{
		Logger: slog.New(slog.NewTextHandler(&log, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Frame:  bf.Raw,
	}
	if err := f.Feed(i, strings.NewReader("x"), &out); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"msg=\"waiting for input\" pc=0", "msg=halted pc=2 instructions=2"} {
		if !strings.Contains(log.String(), s) {
			t.Errorf("log does not contain %q:\n%s", s, log.String())
		}
	}
}

func TestDumpVM(t *testing.T) {
	i := prepare(t, "+>++.>", vm.CellCount(8))
	if _, err := i.Run(); err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := bf.DumpVM(i, &b); err != nil {
		t.Fatal(err)
	}
	// halted at pc 6, pointer 2
	expected := "\x1C6 2 2\x1D1 2\x1D2"
	if b.String() != expected {
		t.Errorf("expected %q, got %q", expected, b.String())
	}
}
