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
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

func getBinaryNameFromCommand(command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", errors.Errorf("failed to extract command name from %q", command)
	}
	return filepath.Base(fields[0]), nil
}

// createExecutorOutputFiles creates a fresh directory under parentDir holding
// stdout and stderr files for the given command.
// Empty parentDir means the system temporary directory.
func createExecutorOutputFiles(command, prefix, parentDir string) (stdout, stderr *os.File, err error) {
	if len(command) == 0 {
		return nil, nil, errors.New("empty command string")
	}

	commandName, err := getBinaryNameFromCommand(command)
	if err != nil {
		return nil, nil, err
	}

	if parentDir == "" {
		parentDir = os.TempDir()
	}
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return nil, nil, errors.Wrapf(err, "cannot create output parent directory %q", parentDir)
	}

	outputDir, err := os.MkdirTemp(parentDir, prefix+"_"+commandName+"_")
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create output directory for %s", commandName)
	}
	return createOutputFilesIn(outputDir)
}

// createOutputFilesIn creates stdout and stderr files in outputDir.
// outputDir is removed when any of them cannot be created.
func createOutputFilesIn(outputDir string) (stdout, stderr *os.File, err error) {
	defer func() {
		if err != nil {
			os.RemoveAll(outputDir)
		}
	}()

	if err = os.Chmod(outputDir, 0755); err != nil {
		return nil, nil, errors.Wrapf(err, "cannot set mode of %q", outputDir)
	}

	stdout, err = os.Create(filepath.Join(outputDir, "stdout"))
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot create stdout file")
	}

	stderr, err = os.Create(filepath.Join(outputDir, "stderr"))
	if err != nil {
		stdout.Close()
		return nil, nil, errors.Wrap(err, "cannot create stderr file")
	}

	return stdout, stderr, nil
}

// taskOutput keeps files that stdout and stderr of a task are written to.
type taskOutput struct {
	stdoutFile *os.File
	stderrFile *os.File
}

// StdoutFile returns a new read handle to the stdout file.
func (o taskOutput) StdoutFile() (*os.File, error) {
	if o.stdoutFile == nil {
		return nil, errors.New("stdout file has not been created")
	}
	return os.Open(o.stdoutFile.Name())
}

// StderrFile returns a new read handle to the stderr file.
func (o taskOutput) StderrFile() (*os.File, error) {
	if o.stderrFile == nil {
		return nil, errors.New("stderr file has not been created")
	}
	return os.Open(o.stderrFile.Name())
}

// Clean closes the files the task was writing to.
func (o taskOutput) Clean() error {
	if err := o.stdoutFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return errors.Wrapf(err, "cannot close %q", o.stdoutFile.Name())
	}
	if err := o.stderrFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return errors.Wrapf(err, "cannot close %q", o.stderrFile.Name())
	}
	return nil
}

// EraseOutput removes the output directory with both files.
func (o taskOutput) EraseOutput() error {
	outputDir := filepath.Dir(o.stdoutFile.Name())
	if err := os.RemoveAll(outputDir); err != nil {
		return errors.Wrapf(err, "cannot remove output directory %q", outputDir)
	}
	return nil
}
