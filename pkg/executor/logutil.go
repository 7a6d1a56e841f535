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
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/dowlandaiello/hw4-analysis/pkg/utils/fs"
	"github.com/sirupsen/logrus"
)

const tailLineCount = 3

// LogUnsuccessfulExecution is helper function for logging standard output and standard error
// of task handles that ended with a failure.
func LogUnsuccessfulExecution(whatWasExecuted string, whereWasExecuted string, handle TaskHandle) {
	stdoutFileName := outputFileName(handle.StdoutFile)
	stderrFileName := outputFileName(handle.StderrFile)

	stdoutTail, err := fs.ReadTail(stdoutFileName, tailLineCount)
	if err != nil {
		stdoutTail = fmt.Sprintf("%v", err)
	}
	stderrTail, err := fs.ReadTail(stderrFileName, tailLineCount)
	if err != nil {
		stderrTail = fmt.Sprintf("%v", err)
	}

	id := rand.Intn(9999)
	logrus.Errorf("%4d Command %q (%s) might have ended prematurely on %q on address %q", id, whatWasExecuted, handle.Status(), whereWasExecuted, handle.Address())
	logrus.Errorf("%4d Last %d lines of stdout", id, tailLineCount)
	ErrorLogLines(strings.NewReader(stdoutTail), id)
	logrus.Errorf("%4d Last %d lines of stderr", id, tailLineCount)
	ErrorLogLines(strings.NewReader(stderrTail), id)

	exitCode, err := handle.ExitCode()
	if err != nil {
		logrus.Errorf("%4d Could not read exit code: %v", id, err)
	} else {
		logrus.Errorf("%4d Exit code: %d", id, exitCode)
	}
}

func outputFileName(open func() (*os.File, error)) string {
	file, err := open()
	if err != nil {
		return fmt.Sprintf("%v", err)
	}
	defer file.Close()
	return file.Name()
}

// ErrorLogLines takes reader and some ID (eg. PID) and prints each line
// from reader in a separate log.Errorf("%4d <line>", pid, line) .
// Rationale behind this function is fact, that logrus does not support multi-line logs.
func ErrorLogLines(r *strings.Reader, logID int) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logrus.Errorf("%4d %s", logID, scanner.Text())
	}
	err := scanner.Err()
	if err != nil {
		logrus.Errorf("%4d Printing from reader failed: %q", logID, err.Error())
	}
}
