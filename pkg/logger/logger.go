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

package logger

import (
	"io"
	"os"
	"path"

	"github.com/dowlandaiello/hw4-analysis/pkg/conf"
	"github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const masterLogFilename = "master.log"

// NewRunID returns identifier for a single invocation of the application.
func NewRunID() (string, error) {
	uid, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "cannot generate run id")
	}
	return uid.String(), nil
}

// Initialize configures logrus format and level. When logDir is not empty
// logs are additionally written to <logDir>/<appName>/<runID>/master.log.
// Returned file is nil when logging to stderr only; caller closes it otherwise.
func Initialize(appName, runID, logDir string) (*os.File, error) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.100"})
	logrus.SetLevel(conf.LogLevel())
	logrus.SetOutput(os.Stderr)

	if logDir == "" {
		logrus.Debugf("Starting %s with run id %s", appName, runID)
		return nil, nil
	}

	runDirectory, logFile, err := createRunDir(logDir, appName, runID)
	if err != nil {
		return nil, err
	}
	logrus.SetOutput(io.MultiWriter(logFile, os.Stderr))
	logrus.Infof("Starting %s with run id %s, logs in %q", appName, runID, runDirectory)

	return logFile, nil
}

func createRunDir(logDir, appName, runID string) (runDirectory string, logFile *os.File, err error) {
	runDirectory = path.Join(logDir, appName, runID)
	err = os.MkdirAll(runDirectory, 0777)
	if err != nil {
		return "", nil, errors.Wrapf(err, "cannot create log directory %q", runDirectory)
	}

	logFilename := path.Join(runDirectory, masterLogFilename)
	logFile, err = os.OpenFile(logFilename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return "", nil, errors.Wrapf(err, "could not open log file %q", logFilename)
	}

	return runDirectory, logFile, nil
}
