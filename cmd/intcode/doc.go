// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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

// The intcode command line tool runs Intcode programs with the package
// github.com/db47h/intcode/vm.
//
// Usage:
//
//	intcode [--config file] [--log-level level] [--log-file file] [--debug] command
//
// Commands:
//
//	run FILE     run a program until it halts and print its output
//	ascii FILE   run a text program interactively
//	disasm FILE  print a program listing
//	chain FILE   run copies of a program in a feedback loop
//	net FILE     run copies of a program as nodes of a network
//
// run: output values are printed one per line. With --ascii, output is
// printed as text and values outside the ASCII range are printed in decimal
// after it. Program input is given with --input as comma separated values;
// once consumed, the program reads --default-input. --dump prints the
// registers and final memory in program file format.
//
// ascii: the program output is copied to stdout and a line is read from
// stdin each time the program waits for input. Lines given with --send are
// queued before reading stdin.
//
// chain: starts one instance per --phases value and connects them in a loop,
// like a chain of amplifiers with feedback. The first instance receives
// --seed after its phase. The last value produced is printed.
//
// net: starts --nodes instances, each receiving its address after which
// messages of --arity values are routed between them. Messages to addresses
// outside the network are printed. Nodes with an empty input queue read
// --poll. The run ends normally once all nodes are idle.
//
// --config: settings are read from a TOML file:
//
//	[vm]
//	default-input = 0
//	max-steps = 0
//
//	[log]
//	level = "warn"
//	file = ""
//
// Command line flags override the file.
//
// --debug: will print a full stacktrace should the VM crash.
package main
