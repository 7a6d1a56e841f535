// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package executor

import (
	"os"
	"time"
)

// Executor starts a command somewhere and hands back its TaskHandle.
// Execute does not wait for the command to finish.
type Executor interface {
	Execute(command string) (TaskHandle, error)
	// Name is used in logs and error messages.
	Name() string
}

// TaskState tells whether a task still runs.
type TaskState int

const (
	// RUNNING tasks have not exited yet.
	RUNNING TaskState = iota
	// TERMINATED tasks exited on their own or were stopped.
	TERMINATED
)

func (s TaskState) String() string {
	if s == TERMINATED {
		return "terminated"
	}
	return "running"
}

// TaskHandle controls a started command and gives access to its output.
type TaskHandle interface {
	// Stop kills the task and returns once it is gone.
	Stop() error
	Status() TaskState
	// ExitCode is available for terminated tasks only. Tasks killed by
	// a signal report the negated signal number.
	ExitCode() (int, error)
	// StdoutFile and StderrFile open new read handles; caller closes them.
	StdoutFile() (*os.File, error)
	StderrFile() (*os.File, error)
	// Wait blocks until the task terminates or timeout elapses and tells
	// whether it terminated. Zero timeout waits forever.
	Wait(timeout time.Duration) bool
	// Clean closes files the task writes its output to.
	Clean() error
	// EraseOutput removes the output files from disk.
	EraseOutput() error
	// Address of the host the task runs on.
	Address() string
}
