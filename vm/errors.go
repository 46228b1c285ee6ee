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

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error values returned by the VM. Errors returned by the package carry
// context, use errors.Cause to compare them against these values.
var (
	// ErrUnopened is the cause of a SyntaxError for a ']' without a matching '['.
	ErrUnopened = errors.New("unopened bracket")
	// ErrUnclosed is the cause of a SyntaxError for a '[' that is never closed.
	ErrUnclosed = errors.New("unclosed bracket")
	// ErrCapacity is returned when appending to a full input or output buffer.
	ErrCapacity = errors.New("capacity exceeded")
	// ErrInvalidState is returned by the run entry points when no program has
	// been prepared or when the program has halted.
	ErrInvalidState = errors.New("invalid state")
)

// SyntaxError reports a bracket mismatch found while linking a program.
type SyntaxError struct {
	Err error // ErrUnopened or ErrUnclosed
	Pos int   // offset of the offending bracket in the program
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Pos)
}

// Cause returns the underlying error value.
func (e *SyntaxError) Cause() error { return e.Err }

// Unwrap returns the underlying error value.
func (e *SyntaxError) Unwrap() error { return e.Err }
