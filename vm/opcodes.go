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

// Instruction symbols. Any other byte is a comment.
const (
	OpInc   byte = '+'
	OpDec   byte = '-'
	OpRight byte = '>'
	OpLeft  byte = '<'
	OpOpen  byte = '['
	OpClose byte = ']'
	OpIn    byte = ','
	OpOut   byte = '.'
)

var opcodes = [256]string{
	OpInc:   "inc",
	OpDec:   "dec",
	OpRight: "right",
	OpLeft:  "left",
	OpOpen:  "open",
	OpClose: "close",
	OpIn:    "in",
	OpOut:   "out",
}

// IsOp returns true if c is one of the eight instruction symbols.
func IsOp(c byte) bool {
	return opcodes[c] != ""
}

// OpName returns the mnemonic of the instruction c, or "nop" for comments.
func OpName(c byte) string {
	if s := opcodes[c]; s != "" {
		return s
	}
	return "nop"
}
