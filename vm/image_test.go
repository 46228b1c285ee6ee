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

package vm_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/tapevm/vm"
	"github.com/pkg/errors"
)

// suspended returns an instance running the sort program, suspended halfway
// through its input.
func suspended(t *testing.T) *vm.Instance {
	i := setup(t, sort, vm.CellCount(64), vm.InputSize(16), vm.OutputSize(16))
	i.AppendInput(3, 1)
	if waiting, err := i.Run(); !waiting || err != nil {
		t.Fatalf("Run: %v, %v", waiting, err)
	}
	return i
}

func finish(t *testing.T, testName string, i *vm.Instance) {
	t.Helper()
	i.AppendInput(2, 0)
	if waiting, err := i.Run(); waiting || err != nil {
		t.Fatalf("%s: Run: %v, %v", testName, waiting, err)
	}
	if out := i.DrainOutput(); !bytes.Equal(out, []byte{1, 2, 3}) {
		t.Errorf("%s: unexpected output %v", testName, out)
	}
}

func restore(t *testing.T, img *vm.Image) *vm.Instance {
	t.Helper()
	i, err := vm.New(img.Options()...)
	if err != nil {
		t.Fatal(err)
	}
	if err = i.Restore(img); err != nil {
		t.Fatalf("%+v", err)
	}
	return i
}

func TestImage(t *testing.T) {
	i := suspended(t)
	img := i.Image()
	if img.State != vm.Waiting || img.PC != i.PC() || img.Pointer != i.Tape().Pointer() {
		t.Errorf("bad image: %v @pc=%d ptr=%d", img.State, img.PC, img.Pointer)
	}

	var b bytes.Buffer
	if err := vm.Encode(&b, img); err != nil {
		t.Fatal(err)
	}
	img2, err := vm.Decode(&b)
	if err != nil {
		t.Fatal(err)
	}
	j := restore(t, img2)
	if j.InstructionCount() != i.InstructionCount() {
		t.Errorf("instruction count %d != %d", j.InstructionCount(), i.InstructionCount())
	}
	if !bytes.Equal(j.Tape().Cells(), i.Tape().Cells()) {
		t.Error("tape mismatch")
	}
	// both machines must behave identically
	finish(t, "original", i)
	finish(t, "restored", j)
}

func TestImage_files(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"sort.img", "sort.img.zst"} {
		fileName := filepath.Join(dir, name)
		i := suspended(t)
		if err := vm.Save(fileName, i.Image()); err != nil {
			t.Fatalf("%s: %+v", name, err)
		}
		img, err := vm.Load(fileName)
		if err != nil {
			t.Fatalf("%s: %+v", name, err)
		}
		finish(t, name, restore(t, img))
	}
	if _, err := vm.Load(filepath.Join(dir, "missing")); !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRestore_errors(t *testing.T) {
	good := suspended(t).Image()
	tests := []struct {
		name string
		edit func(img *vm.Image)
	}{
		{"tape size", func(img *vm.Image) { img.Cells = img.Cells[:10] }},
		{"pointer", func(img *vm.Image) { img.Pointer = len(img.Cells) }},
		{"pc", func(img *vm.Image) { img.PC = len(img.Program) + 1 }},
		{"state", func(img *vm.Image) { img.State = 7 }},
		{"input", func(img *vm.Image) { img.Input = make([]byte, 17) }},
		{"output", func(img *vm.Image) { img.Output = make([]byte, 17) }},
		{"program", func(img *vm.Image) { img.Program = []byte("[") }},
		{"halted before end", func(img *vm.Image) { img.State = vm.Halted; img.PC = 0 }},
		{"waiting at end", func(img *vm.Image) { img.PC = len(img.Program) }},
		{"waiting off input", func(img *vm.Image) { img.PC = 0 }},
		{"waiting with input", func(img *vm.Image) { img.Input = []byte{2} }},
		{"running at end", func(img *vm.Image) { img.State = vm.Running; img.PC = len(img.Program) }},
	}
	for _, test := range tests {
		img := *good
		test.edit(&img)
		i := setup(t, "+", vm.CellCount(64), vm.InputSize(16), vm.OutputSize(16))
		if err := i.Restore(&img); err == nil {
			t.Errorf("%s: expected error", test.name)
		}
		// untouched
		if string(i.Program()) != "+" || i.State() != vm.Running {
			t.Errorf("%s: instance modified", test.name)
		}
	}
	// a halted image restores at the end of its program
	img := *good
	img.State, img.PC = vm.Halted, len(img.Program)
	i := restore(t, &img)
	if _, err := i.Run(); errors.Cause(err) != vm.ErrInvalidState {
		t.Errorf("Run after restoring a halted image: %v", err)
	}
	if img := new(vm.Instance).Image(); img != nil {
		t.Error("image of an unprepared instance")
	}
}
