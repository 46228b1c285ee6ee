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

package bf

import (
	"io"
	"strconv"

	"github.com/db47h/tapevm/internal/xio"
	"github.com/db47h/tapevm/vm"
)

func dumpSlice(w io.Writer, prefix byte, a []int) error {
	var err error
	l := len(a) - 1
	b := make([]byte, 0, 14)
	b = append(b, prefix)
	if l >= 0 {
		for i := 0; i < l; i++ {
			b = strconv.AppendInt(b, int64(a[i]), 10)
			b = append(b, ' ')
			_, err = w.Write(b)
			if err != nil {
				return err
			}
			b = b[:0]
		}
		b = strconv.AppendInt(b, int64(a[l]), 10)
	}
	_, err = w.Write(b)
	return err
}

// DumpVM dumps the virtual machine registers, tape and unread output to the
// specified io.Writer. Sections are separated by ASCII FS and GS characters:
//
//	FS pc state pointer GS cells... GS output...
//
// The tape is dumped up to its last non-zero cell.
func DumpVM(i *vm.Instance, w io.Writer) error {
	ew := xio.NewErrWriter(w)
	dumpSlice(ew, '\x1C', []int{i.PC(), int(i.State()), i.Tape().Pointer()})
	cells := i.Tape().Cells()
	end := len(cells)
	for end > 0 && cells[end-1] == 0 {
		end--
	}
	dumpSlice(ew, '\x1D', ints(cells[:end]))
	return dumpSlice(ew, '\x1D', ints(i.Output().Unread()))
}

func ints(b []byte) []int {
	a := make([]int, len(b))
	for i, v := range b {
		a[i] = int(v)
	}
	return a
}
