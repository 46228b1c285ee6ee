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

// Package vm implements a resumable virtual machine for the eight instruction
// tape language:
//
//	+	increment the current cell
//	-	decrement the current cell
//	>	move the tape pointer right
//	<	move the tape pointer left
//	[	jump past the matching ] if the current cell is 0
//	]	jump back to the matching [
//	,	read one input byte into the current cell
//	.	write the current cell to the output
//
// Any other byte is a comment. Comments are not stripped: they occupy a slot
// in the program, so positions in errors, jump tables and program counters
// always refer to raw source offsets.
//
// The tape is circular: moving past either end wraps around, and cell values
// wrap modulo 256.
//
// Input and output go through fixed size buffers owned by the Instance. The
// VM never blocks: when a program executes ',' and no input is available, the
// entry point returns with the instance in the Waiting state and the program
// counter still on the ',' instruction. The caller appends more input and
// calls any entry point again to resume:
//
//	i, _ := vm.New()
//	if err := i.Prepare([]byte(",[.,]")); err != nil {
//		// syntax error
//	}
//	for {
//		waiting, err := i.Run()
//		if err != nil {
//			// capacity or state error
//		}
//		os.Stdout.Write(i.DrainOutput())
//		if !waiting {
//			break
//		}
//		i.AppendInput(nextByte())
//	}
//
// A suspended (or halted) machine can be captured in an Image and saved to
// disk with Save, then restored into another instance with the same tape size.
package vm
