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

// The tapevm command line tool runs tape language programs with the
// github.com/db47h/tapevm/vm package, feeding them from stdin and optional
// input files.
//
// Usage:
//
//	tapevm [flags] program-file
//	tapevm [flags] -e program
//	tapevm [flags] -resume snapshot-file
//
// Flags:
//
//	-cells int
//		  tape size in cells (default 32768)
//	-config filename
//		  load settings from TOML file filename
//	-debug
//		  enable debug diagnostics
//	-dump
//		  dump the machine state upon exit
//	-e program
//		  run program text instead of a program file
//	-frame string
//		  input framing: lines, raw or terminated (default "lines")
//	-in int
//		  input buffer size in bytes (default 32768)
//	-list
//		  print the program listing and exit
//	-log filename
//		  also write JSON logs to filename
//	-noraw
//		  disable raw terminal IO
//	-out int
//		  output buffer size in bytes (default 32768)
//	-resume filename
//		  resume the machine saved in filename
//	-save filename
//		  save a snapshot of the machine to filename if input ends while it waits
//	-term char
//		  char standing for a 0 byte with -frame terminated (default ".")
//	-trace
//		  trace executed instructions on stderr
//	-with filename
//		  Add filename to the input list (can be specified multiple times)
//
// -frame: with "lines", each input line is fed to the program followed by a
// line feed. With "raw", input is fed byte by byte, unchanged. With
// "terminated", lines are fed without a line feed and any occurrence of the
// -term character is replaced by a 0 byte, which many programs use as an end
// of data marker:
//
//	echo '3142.' | tapevm -frame terminated sort.b
//
// -noraw: upon startup, tapevm switches the terminal to raw mode unless stdin
// has been redirected or -with files are given. Input is then fed as it is
// typed and Ctrl-D ends the input. This flag disables this behavior.
//
// -save, -resume: when the input ends while the program is waiting for more,
// the machine can be saved to a snapshot file and resumed later with -resume.
// Snapshot files whose name ends in ".zst" are compressed.
//
// -config: settings can be read from a TOML file. Flags given on the command
// line take precedence:
//
//	cells = 30000
//	input = 4096
//	output = 4096
//	frame = "terminated"
//	terminator = "."
//	log-file = "tapevm.log"
//	log-level = "debug"
//	snapshot = "tapevm.img.zst"
//
// -debug: will print a full stacktrace should the VM fail and sets the log
// level to debug.
package main
