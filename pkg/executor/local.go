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
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const localAddress = "127.0.0.1"

// Local provisioning is responsible for providing the execution environment
// on local machine via exec.Command.
// It runs command as current user.
type Local struct {
	outputDir string
}

// NewLocal returns a Local instance.
// Output files of executed commands are placed under outputDir
// (system temporary directory when empty).
func NewLocal(outputDir string) Local {
	return Local{outputDir: outputDir}
}

// Name returns user-friendly name of executor.
func (l Local) Name() string {
	return "Local Executor"
}

// Execute runs the command given as input.
// Returned TaskHandle is able to stop & monitor the provisioned process.
func (l Local) Execute(command string) (TaskHandle, error) {
	log.Debug("Starting ", command, " locally")

	stdoutFile, stderrFile, err := createExecutorOutputFiles(command, "local", l.outputDir)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("sh", "-c", command)
	// It is important to set additional Process Group ID for parent process and his children
	// to have ability to kill all the children processes.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile

	if err := cmd.Start(); err != nil {
		output := taskOutput{stdoutFile, stderrFile}
		output.Clean()
		output.EraseOutput()
		return nil, errors.Wrapf(err, "cannot start %q", command)
	}

	log.Debug("Started with pid ", cmd.Process.Pid)

	handle := &localTaskHandle{
		taskOutput:     taskOutput{stdoutFile, stderrFile},
		command:        command,
		pid:            cmd.Process.Pid,
		waitEndChannel: make(chan struct{}),
	}

	// Wait for local task in goroutine.
	go func() {
		// Wait() returns an error for non-zero exits as well. Process state
		// is grabbed in any case below, so only start-up failures matter here.
		err := cmd.Wait()
		if err != nil {
			if _, ok := err.(*exec.ExitError); !ok {
				log.Errorf("waiting for %q failed: %s", command, err)
			}
		}

		exitCode := -1
		if cmd.ProcessState != nil {
			status := cmd.ProcessState.Sys().(syscall.WaitStatus)
			if status.Exited() {
				exitCode = status.ExitStatus()
			} else {
				// Show what signal caused the termination.
				exitCode = -int(status.Signal())
			}
		}

		log.Debugf("Ended %q with output in file %q, status code %d",
			command, stdoutFile.Name(), exitCode)

		handle.complete(exitCode)
	}()

	return handle, nil
}

// localTaskHandle implements TaskHandle interface.
type localTaskHandle struct {
	taskOutput
	command string
	pid     int

	mutex          sync.Mutex
	exitCode       int
	waitEndChannel chan struct{}
}

func (t *localTaskHandle) complete(exitCode int) {
	t.mutex.Lock()
	t.exitCode = exitCode
	t.mutex.Unlock()
	close(t.waitEndChannel)
}

func (t *localTaskHandle) isTerminated() bool {
	select {
	case <-t.waitEndChannel:
		return true
	default:
		return false
	}
}

// Stop terminates the local task.
func (t *localTaskHandle) Stop() error {
	if t.isTerminated() {
		return nil
	}

	// We signal the entire process group.
	// The kill syscall interprets a negated PID N as the process group N belongs to.
	log.Debug("Sending ", syscall.SIGKILL, " to PID ", -t.pid)
	if err := syscall.Kill(-t.pid, syscall.SIGKILL); err != nil {
		if !t.isTerminated() {
			return errors.Wrapf(err, "cannot kill %q (pid %d)", t.command, t.pid)
		}
	}

	<-t.waitEndChannel
	return nil
}

// Status returns a state of the task.
func (t *localTaskHandle) Status() TaskState {
	if t.isTerminated() {
		return TERMINATED
	}
	return RUNNING
}

// ExitCode returns the exit code of a terminated task.
func (t *localTaskHandle) ExitCode() (int, error) {
	if !t.isTerminated() {
		return -1, errors.New("task is not terminated")
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.exitCode, nil
}

// Wait blocks until process is terminated or timeout appeared.
// Returns true when process terminates before timeout, otherwise false.
func (t *localTaskHandle) Wait(timeout time.Duration) bool {
	return waitForChannel(t.waitEndChannel, timeout)
}

// Address returns address where task was located.
func (t *localTaskHandle) Address() string {
	return localAddress
}

func waitForChannel(waitEndChannel chan struct{}, timeout time.Duration) bool {
	if timeout == 0 {
		<-waitEndChannel
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-waitEndChannel:
		return true
	case <-timer.C:
		return false
	}
}
