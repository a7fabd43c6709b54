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

// Package vm implements the Intcode VM.
//
// An Instance runs a program loaded from an Image against a sparse memory:
// addresses that were never written to read as 0, and any address, including
// addresses far past the end of the loaded image, can be written to.
//
// Execution is pull based. Each call to Next runs instructions until the
// program outputs a value, halts, or, for instances created with the
// YieldOnEmpty option, tries to read from an empty input queue. In all cases
// the instance keeps its state and the caller decides when to resume it, which
// makes it easy to chain instances or to step many of them in a round robin
// fashion (see package sched).
//
// Input is queued with PushInput at any time. When the queue is empty and the
// instance does not yield, IN instructions read the default input value (see
// DefaultInput and SetDefaultInput), which is 0 unless configured otherwise.
//
// Instances are not safe for concurrent use.
package vm
