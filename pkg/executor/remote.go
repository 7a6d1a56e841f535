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
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// Remote provisioning is responsible for providing the execution environment
// on remote machine via ssh.
type Remote struct {
	sshConfig SSHConfig
	outputDir string
}

// NewRemote returns a Remote instance.
// Output of remote commands is streamed into files under local outputDir.
func NewRemote(sshConfig SSHConfig, outputDir string) Remote {
	return Remote{
		sshConfig: sshConfig,
		outputDir: outputDir,
	}
}

// Name returns user-friendly name of executor.
func (r Remote) Name() string {
	return "Remote Executor"
}

// Execute runs the command given as input.
// Returned TaskHandle is able to stop & monitor the provisioned process.
func (r Remote) Execute(command string) (TaskHandle, error) {
	address := net.JoinHostPort(r.sshConfig.Host, strconv.Itoa(r.sshConfig.Port))
	log.Debug("Starting ", command, " on ", address)

	connection, err := ssh.Dial("tcp", address, r.sshConfig.ClientConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot connect to %s", address)
	}

	session, err := connection.NewSession()
	if err != nil {
		connection.Close()
		return nil, errors.Wrapf(err, "cannot open SSH session on %s", address)
	}

	stdoutFile, stderrFile, err := createExecutorOutputFiles(command, "remote", r.outputDir)
	if err != nil {
		session.Close()
		connection.Close()
		return nil, err
	}
	session.Stdout = stdoutFile
	session.Stderr = stderrFile

	if err := session.Start(command); err != nil {
		session.Close()
		connection.Close()
		output := taskOutput{stdoutFile, stderrFile}
		output.Clean()
		output.EraseOutput()
		return nil, errors.Wrapf(err, "cannot start %q on %s", command, address)
	}

	handle := &remoteTaskHandle{
		taskOutput:     taskOutput{stdoutFile, stderrFile},
		command:        command,
		host:           r.sshConfig.Host,
		session:        session,
		waitEndChannel: make(chan struct{}),
	}

	go func() {
		exitCode := 0
		err := session.Wait()
		if err != nil {
			if exitErr, ok := err.(*ssh.ExitError); ok {
				exitCode = exitErr.ExitStatus()
			} else {
				log.Debugf("waiting for %q on %s failed: %s", command, address, err)
				exitCode = -1
			}
		}

		log.Debugf("Ended %q on %s with output in file %q, status code %d",
			command, address, stdoutFile.Name(), exitCode)

		session.Close()
		connection.Close()
		handle.complete(exitCode)
	}()

	return handle, nil
}

// remoteTaskHandle implements TaskHandle interface.
type remoteTaskHandle struct {
	taskOutput
	command string
	host    string
	session *ssh.Session

	mutex          sync.Mutex
	exitCode       int
	waitEndChannel chan struct{}
}

func (t *remoteTaskHandle) complete(exitCode int) {
	t.mutex.Lock()
	t.exitCode = exitCode
	t.mutex.Unlock()
	close(t.waitEndChannel)
}

func (t *remoteTaskHandle) isTerminated() bool {
	select {
	case <-t.waitEndChannel:
		return true
	default:
		return false
	}
}

// Stop terminates the remote task.
func (t *remoteTaskHandle) Stop() error {
	if t.isTerminated() {
		return nil
	}

	// Many SSH servers ignore signal requests, so closing the session is the fallback.
	if err := t.session.Signal(ssh.SIGKILL); err != nil {
		log.Debugf("cannot signal %q on %s: %s", t.command, t.host, err)
	}
	if err := t.session.Close(); err != nil && !t.isTerminated() {
		return errors.Wrapf(err, "cannot close session of %q on %s", t.command, t.host)
	}

	<-t.waitEndChannel
	return nil
}

// Status returns a state of the task.
func (t *remoteTaskHandle) Status() TaskState {
	if t.isTerminated() {
		return TERMINATED
	}
	return RUNNING
}

// ExitCode returns the exit code of a terminated task.
func (t *remoteTaskHandle) ExitCode() (int, error) {
	if !t.isTerminated() {
		return -1, fmt.Errorf("task %q on %s is not terminated", t.command, t.host)
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.exitCode, nil
}

// Wait blocks until process is terminated or timeout appeared.
func (t *remoteTaskHandle) Wait(timeout time.Duration) bool {
	return waitForChannel(t.waitEndChannel, timeout)
}

// Address returns address where task was located.
func (t *remoteTaskHandle) Address() string {
	return t.host
}
