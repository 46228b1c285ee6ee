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

// Package bf provides sample programs and helpers to drive a tapevm instance
// from line or byte oriented input, such as a console.
package bf

import (
	"io"
)

// Sample programs.
const (
	// Alphabet prints "abc". It relies on the tape wrapping around: the loop
	// counter is in cell 0 and the result is built in the last cell.
	Alphabet = "++++++++[<++++++++++++>-]<+.+.+."
	// Sort reads bytes until a 0 byte and prints them in ascending order.
	Sort = ">>,[>>,]<<[[-<+<]>[>[>>]<[.[-]<[[>>+<<-]<]>>]>]<<]"
	// Cat copies its input to its output until a 0 byte.
	Cat = ",[.,]"
)

// Frame converts a token read from the input (a line, or a single byte for
// raw input) into the bytes fed to the VM. Returning io.EOF ends the input.
type Frame func(tok []byte) ([]byte, error)

// Lines feeds each line followed by a '\n'.
func Lines(tok []byte) ([]byte, error) {
	return append(tok[:len(tok):len(tok)], '\n'), nil
}

// Raw feeds tokens unchanged.
func Raw(tok []byte) ([]byte, error) {
	return tok, nil
}

// Terminated feeds lines without a trailing '\n', c being replaced by a 0
// byte. This is how the 0 terminator expected by programs like Sort can be
// typed on a keyboard:
//
//	f := bf.Terminated('.')
//	f([]byte("cab.")) // "cab\x00"
func Terminated(c byte) Frame {
	return func(tok []byte) ([]byte, error) {
		p := make([]byte, len(tok))
		for i, v := range tok {
			if v == c {
				v = 0
			}
			p[i] = v
		}
		return p, nil
	}
}

// EOT wraps f so that a token starting with an EOT character (Ctrl-D) ends the
// input. On raw terminals, the tty driver does not translate Ctrl-D into an
// end of file.
func EOT(f Frame) Frame {
	return func(tok []byte) ([]byte, error) {
		if len(tok) > 0 && tok[0] == 4 {
			return nil, io.EOF
		}
		return f(tok)
	}
}
