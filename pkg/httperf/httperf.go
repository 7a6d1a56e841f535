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

package httperf

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dowlandaiello/hw4-analysis/pkg/executor"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	defaultPath        = "httperf"
	defaultSampleCount = 10
)

// Config contains all data for running httperf.
type Config struct {
	// Path to httperf binary.
	Path string
	// SampleCount is the number of calls (latency) or connections (throughput) per run.
	SampleCount int
	// Timeout bounds a single run. Zero means no bound.
	Timeout time.Duration
	// ExtraArgs are appended verbatim to every run.
	ExtraArgs []string
	// KeepReports leaves stdout and stderr files of every run on disk.
	KeepReports bool
}

// DefaultConfig is a constructor for Config with default parameters.
func DefaultConfig() Config {
	return Config{
		Path:        defaultPath,
		SampleCount: defaultSampleCount,
	}
}

// InvocationError is returned when httperf could not produce a report.
type InvocationError struct {
	Command string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("httperf invocation %q failed: %s", e.Command, e.Err)
}

// Unwrap returns the underlying cause.
func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying cause.
func (e *InvocationError) Cause() error {
	return e.Err
}

// Httperf runs httperf against HTTP server and returns its report.
// https://github.com/httperf/httperf
type Httperf struct {
	executor executor.Executor
	config   Config
}

// New returns a new httperf invoker which launches runs through given executor.
func New(executor executor.Executor, config Config) Httperf {
	return Httperf{
		executor: executor,
		config:   config,
	}
}

// Config returns configuration of the invoker.
func (h Httperf) Config() Config {
	return h.config
}

// QueryURI returns request path for given query.
func QueryURI(query string) string {
	return "/query?terms=" + query
}

// Command returns command line for a single run.
func (h Httperf) Command(server string, port uint16, query string, kind Kind) string {
	args := []string{
		"--server", server,
		"--port", strconv.Itoa(int(port)),
		"--uri", QueryURI(query),
	}
	args = append(args, kind.Args(h.config.SampleCount)...)
	args = append(args, h.config.ExtraArgs...)
	return executor.JoinCommand(h.config.Path, args...)
}

// Invoke runs httperf once and returns its standard output.
// It blocks until httperf ends, the timeout elapses or ctx is done.
func (h Httperf) Invoke(ctx context.Context, server string, port uint16, query string, kind Kind) (string, error) {
	command := h.Command(server, port, query, kind)

	handle, err := h.executor.Execute(command)
	if err != nil {
		return "", &InvocationError{command, errors.Wrapf(err, "cannot execute on %s", h.executor.Name())}
	}
	defer h.cleanup(handle)

	if err := h.wait(ctx, handle); err != nil {
		return "", &InvocationError{command, err}
	}

	exitCode, err := handle.ExitCode()
	if err != nil {
		return "", &InvocationError{command, err}
	}
	if exitCode != 0 {
		executor.LogUnsuccessfulExecution(command, h.executor.Name(), handle)
		return "", &InvocationError{command, errors.Errorf("exit code %d", exitCode)}
	}

	stdoutFile, err := handle.StdoutFile()
	if err != nil {
		return "", &InvocationError{command, errors.Wrap(err, "cannot open stdout")}
	}
	defer stdoutFile.Close()

	output, err := io.ReadAll(stdoutFile)
	if err != nil {
		return "", &InvocationError{command, errors.Wrap(err, "cannot read stdout")}
	}
	if !utf8.Valid(output) {
		return "", &InvocationError{command, errors.New("output is not valid UTF-8 text")}
	}

	return string(output), nil
}

func (h Httperf) wait(ctx context.Context, handle executor.TaskHandle) error {
	terminated := make(chan bool, 1)
	go func() {
		terminated <- handle.Wait(h.config.Timeout)
	}()

	select {
	case ok := <-terminated:
		if ok {
			return nil
		}
		if err := handle.Stop(); err != nil {
			log.Warnf("cannot stop httperf after timeout: %s", err)
		}
		return errors.Errorf("timed out after %s", h.config.Timeout)
	case <-ctx.Done():
		if err := handle.Stop(); err != nil {
			log.Warnf("cannot stop httperf after cancellation: %s", err)
		}
		<-terminated
		return errors.Wrap(ctx.Err(), "cancelled")
	}
}

func (h Httperf) cleanup(handle executor.TaskHandle) {
	if err := handle.Clean(); err != nil {
		log.Warnf("cannot clean httperf task: %s", err)
	}
	if h.config.KeepReports {
		if file, err := handle.StdoutFile(); err == nil {
			log.Debugf("httperf report kept in %q", file.Name())
			file.Close()
		}
		return
	}
	if err := handle.EraseOutput(); err != nil {
		log.Warnf("cannot erase httperf output: %s", err)
	}
}
