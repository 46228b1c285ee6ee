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
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Image holds the complete state of a VM instance: program, registers, tape
// and unread buffer contents. Images are used to persist a suspended machine
// and resume it later, possibly in another process.
type Image struct {
	Program    []byte `cbor:"1,keyasint"`
	PC         int    `cbor:"2,keyasint"`
	State      State  `cbor:"3,keyasint"`
	Pointer    int    `cbor:"4,keyasint"`
	Cells      []byte `cbor:"5,keyasint"`
	Input      []byte `cbor:"6,keyasint,omitempty"`
	Output     []byte `cbor:"7,keyasint,omitempty"`
	InputSize  int    `cbor:"8,keyasint"`
	OutputSize int    `cbor:"9,keyasint"`
	Count      int64  `cbor:"10,keyasint"`
}

// Options returns the options needed to create an instance able to restore
// the image.
func (img *Image) Options() []Option {
	return []Option{CellCount(len(img.Cells)), InputSize(img.InputSize), OutputSize(img.OutputSize)}
}

// Image returns a snapshot of the instance. The snapshot does not share memory
// with the instance. It returns nil if no program has been prepared.
func (i *Instance) Image() *Image {
	if !i.ready {
		return nil
	}
	return &Image{
		Program:    append([]byte(nil), i.prog...),
		PC:         i.pc,
		State:      i.state,
		Pointer:    i.tape.Pointer(),
		Cells:      append([]byte(nil), i.tape.Cells()...),
		Input:      append([]byte(nil), i.in.Unread()...),
		Output:     append([]byte(nil), i.out.Unread()...),
		InputSize:  i.in.Cap(),
		OutputSize: i.out.Cap(),
		Count:      i.insCount,
	}
}

// Restore replaces the instance state with the contents of img. The tape size
// of img must match the instance's cell count, buffered data must fit in
// the instance buffers and the state must be consistent with the PC: a
// halted image is at the end of its program, a waiting one on a ','. If img is not valid, an error is returned and the
// instance is left untouched.
func (i *Instance) Restore(img *Image) error {
	if len(img.Cells) != i.tape.Len() {
		return errors.Errorf("restore: image has %d cells, tape has %d", len(img.Cells), i.tape.Len())
	}
	if img.Pointer < 0 || img.Pointer >= len(img.Cells) {
		return errors.Errorf("restore: tape pointer %d out of range", img.Pointer)
	}
	if img.PC < 0 || img.PC > len(img.Program) {
		return errors.Errorf("restore: PC %d out of range", img.PC)
	}
	switch end := img.PC == len(img.Program); img.State {
	case Running:
		if end {
			return errors.New("restore: running at end of program")
		}
	case Waiting:
		if end || img.Program[img.PC] != OpIn {
			return errors.Errorf("restore: waiting at PC %d, not on an input instruction", img.PC)
		}
		if len(img.Input) > 0 {
			return errors.Errorf("restore: waiting with %d bytes of unread input", len(img.Input))
		}
	case Halted:
		if !end {
			return errors.Errorf("restore: halted at PC %d of %d", img.PC, len(img.Program))
		}
	default:
		return errors.Errorf("restore: bad state %d", img.State)
	}
	if len(img.Input) > i.in.Cap() {
		return errors.Wrapf(ErrCapacity, "restore: %d bytes of input", len(img.Input))
	}
	if len(img.Output) > i.out.Cap() {
		return errors.Wrapf(ErrCapacity, "restore: %d bytes of output", len(img.Output))
	}
	jt, err := Link(img.Program)
	if err != nil {
		return errors.Wrap(err, "restore")
	}
	i.install(append([]byte(nil), img.Program...), jt)
	i.pc = img.PC
	i.state = img.State
	i.insCount = img.Count
	copy(i.tape.Cells(), img.Cells)
	i.tape.seek(img.Pointer)
	// buffer sizes have been checked above, AppendAll cannot fail.
	i.in.Reset()
	i.in.AppendAll(img.Input)
	i.out.Reset()
	i.out.AppendAll(img.Output)
	return nil
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	encMode = em
}

// Encode writes the CBOR encoding of img to w.
func Encode(w io.Writer, img *Image) error {
	return errors.Wrap(encMode.NewEncoder(w).Encode(img), "encode image")
}

// Decode reads a CBOR encoded image from r.
func Decode(r io.Reader) (*Image, error) {
	img := new(Image)
	if err := cbor.NewDecoder(r).Decode(img); err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return img, nil
}

func compressed(fileName string) bool {
	return strings.HasSuffix(fileName, ".zst")
}

// Save saves img to file fileName. If the file name ends with ".zst", the
// file is compressed with zstd. The file is removed if an error occurs.
func Save(fileName string, img *Image) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	w := bufio.NewWriter(f)
	if compressed(fileName) {
		var zw *zstd.Encoder
		zw, err = zstd.NewWriter(w)
		if err != nil {
			return errors.Wrap(err, "zstd")
		}
		if err = Encode(zw, img); err != nil {
			zw.Close()
			return err
		}
		if err = zw.Close(); err != nil {
			return errors.Wrap(err, "zstd")
		}
	} else if err = Encode(w, img); err != nil {
		return err
	}
	return errors.Wrap(w.Flush(), "write failed")
}

// Load loads an image from file fileName. Files with a ".zst" extension are
// decompressed with zstd.
func Load(fileName string) (*Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	var r io.Reader = bufio.NewReader(f)
	if compressed(fileName) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
		defer zr.Close()
		r = zr
	}
	img, err := Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", fileName)
	}
	return img, nil
}
