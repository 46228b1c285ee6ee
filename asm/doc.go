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

// Package asm provides utility functions to load and disassemble tapevm
// programs.
//
// Mnemonics used in disassembly listings:
//
//	symbol	mnemonic	arg	description
//	------	--------	---	----------------------------------------------------------
//	+	inc			increment the current cell (255 wraps to 0)
//	-	dec			decrement the current cell (0 wraps to 255)
//	>	right			move the tape pointer right, wrapping at the end of the tape
//	<	left			move the tape pointer left, wrapping at the start of the tape
//	[	open	✓	jump past the matching ] (offset in arg) if the current cell is 0
//	]	close	✓	jump back to the matching [ (offset in arg)
//	,	in			read one byte of input, suspend the VM if none is available
//	.	out			write the current cell to the output buffer
//
// Any other character is a comment. Comments are kept in the loaded program
// so that offsets in listings and errors match the source file. Listings skip
// them.
//
// Errors:
//
// Assemble reports bracket mismatches with their line and column in the
// source. Unlike vm.Link, which stops at the first mismatch, Assemble lists
// every unmatched bracket (up to 10) in source order:
//
//	test.b:1:4: unopened bracket
//	test.b:3:1: unclosed bracket
package asm
