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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dowlandaiello/hw4-analysis/pkg/executor"
	"github.com/dowlandaiello/hw4-analysis/pkg/executor/mocks"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	httperfPath = "/usr/local/bin/httperf"
	serverAddr  = "127.0.0.1"
	serverPort  = uint16(8080)
)

type HttperfTestSuite struct {
	suite.Suite
	config Config

	mExecutor *mocks.Executor
	mHandle   *mocks.TaskHandle
}

func (s *HttperfTestSuite) SetupTest() {
	s.config = DefaultConfig()
	s.config.Path = httperfPath
	s.config.Timeout = time.Minute

	s.mExecutor = new(mocks.Executor)
	s.mHandle = new(mocks.TaskHandle)
	s.mExecutor.On("Name").Return("Mock Executor").Maybe()
}

func (s *HttperfTestSuite) stdout(content string) *os.File {
	path := filepath.Join(s.T().TempDir(), "stdout")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0644))
	file, err := os.Open(path)
	s.Require().NoError(err)
	return file
}

func (s *HttperfTestSuite) expectCleanup() {
	s.mHandle.On("Clean").Return(nil).Once()
	s.mHandle.On("EraseOutput").Return(nil).Once()
}

func (s *HttperfTestSuite) TestCommand() {
	httperf := New(s.mExecutor, s.config)

	Convey("When building httperf command line", s.T(), func() {
		Convey("Latency run should pass number of calls", func() {
			So(httperf.Command(serverAddr, serverPort, "cat+dog", Latency), ShouldEqual,
				"/usr/local/bin/httperf --server 127.0.0.1 --port 8080 --uri '/query?terms=cat+dog' --num-calls 10")
		})

		Convey("Throughput runs should pass number of connections", func() {
			So(httperf.Command(serverAddr, serverPort, "cat", ThroughputBytes), ShouldEqual,
				"/usr/local/bin/httperf --server 127.0.0.1 --port 8080 --uri '/query?terms=cat' --num-conns 10")
			So(httperf.Command(serverAddr, serverPort, "cat", ThroughputRequests), ShouldEqual,
				"/usr/local/bin/httperf --server 127.0.0.1 --port 8080 --uri '/query?terms=cat' --num-conns 10")
		})

		Convey("Extra arguments should be appended at the end", func() {
			config := s.config
			config.ExtraArgs = []string{"--hog"}
			So(New(s.mExecutor, config).Command(serverAddr, serverPort, "cat", Latency), ShouldEndWith, "--num-calls 10 --hog")
		})
	})
}

func (s *HttperfTestSuite) TestInvoke() {
	command := "/usr/local/bin/httperf --server 127.0.0.1 --port 8080 --uri '/query?terms=cat' --num-calls 10"

	s.mExecutor.On("Execute", command).Return(s.mHandle, nil).Once()
	s.mHandle.On("Wait", time.Minute).Return(true).Once()
	s.mHandle.On("ExitCode").Return(0, nil).Once()
	s.mHandle.On("StdoutFile").Return(s.stdout(correctHttperfReport), nil).Once()
	s.expectCleanup()

	httperf := New(s.mExecutor, s.config)

	Convey("When invoking httperf", s.T(), func() {
		report, err := httperf.Invoke(context.Background(), serverAddr, serverPort, "cat", Latency)

		So(err, ShouldBeNil)
		So(report, ShouldEqual, correctHttperfReport)
		So(s.mExecutor.AssertExpectations(s.T()), ShouldBeTrue)
		So(s.mHandle.AssertExpectations(s.T()), ShouldBeTrue)
	})
}

func (s *HttperfTestSuite) TestInvokeExecutorError() {
	const errorMsg = "Error in execution"
	s.mExecutor.On("Execute", mock.AnythingOfType("string")).Return(nil, errors.New(errorMsg)).Once()

	httperf := New(s.mExecutor, s.config)

	Convey("When executor returns an error", s.T(), func() {
		_, err := httperf.Invoke(context.Background(), serverAddr, serverPort, "cat", Latency)

		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, errorMsg)

		var invocationErr *InvocationError
		So(errors.As(err, &invocationErr), ShouldBeTrue)
		So(invocationErr.Command, ShouldContainSubstring, "--num-calls 10")
	})
}

func (s *HttperfTestSuite) TestInvokeNonZeroExitCode() {
	s.mExecutor.On("Execute", mock.AnythingOfType("string")).Return(s.mHandle, nil).Once()
	s.mHandle.On("Wait", time.Minute).Return(true).Once()
	s.mHandle.On("ExitCode").Return(127, nil)
	s.mHandle.On("StdoutFile").Return(nil, errors.New("no stdout"))
	s.mHandle.On("StderrFile").Return(nil, errors.New("no stderr"))
	s.mHandle.On("Address").Return("127.0.0.1")
	s.mHandle.On("Status").Return(executor.TERMINATED)
	s.expectCleanup()

	httperf := New(s.mExecutor, s.config)

	Convey("When httperf exits with non zero exit code", s.T(), func() {
		_, err := httperf.Invoke(context.Background(), serverAddr, serverPort, "cat", ThroughputBytes)

		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "exit code 127")
	})
}

func (s *HttperfTestSuite) TestInvokeInvalidUTF8() {
	s.mExecutor.On("Execute", mock.AnythingOfType("string")).Return(s.mHandle, nil).Once()
	s.mHandle.On("Wait", time.Minute).Return(true).Once()
	s.mHandle.On("ExitCode").Return(0, nil).Once()
	s.mHandle.On("StdoutFile").Return(s.stdout("Net I/O: \xff\xfe KB/s"), nil).Once()
	s.expectCleanup()

	httperf := New(s.mExecutor, s.config)

	Convey("When httperf writes bytes which are not UTF-8", s.T(), func() {
		_, err := httperf.Invoke(context.Background(), serverAddr, serverPort, "cat", ThroughputBytes)

		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "UTF-8")
	})
}

func (s *HttperfTestSuite) TestInvokeTimeout() {
	s.mExecutor.On("Execute", mock.AnythingOfType("string")).Return(s.mHandle, nil).Once()
	s.mHandle.On("Wait", time.Minute).Return(false).Once()
	s.mHandle.On("Stop").Return(nil).Once()
	s.expectCleanup()

	httperf := New(s.mExecutor, s.config)

	Convey("When httperf does not end within the timeout", s.T(), func() {
		_, err := httperf.Invoke(context.Background(), serverAddr, serverPort, "cat", Latency)

		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "timed out")
		So(s.mHandle.AssertCalled(s.T(), "Stop"), ShouldBeTrue)
	})
}

func (s *HttperfTestSuite) TestInvokeCancelled() {
	s.mExecutor.On("Execute", mock.AnythingOfType("string")).Return(s.mHandle, nil).Once()
	s.mHandle.On("Wait", time.Minute).After(100 * time.Millisecond).Return(true).Once()
	s.mHandle.On("Stop").Return(nil).Once()
	s.expectCleanup()

	httperf := New(s.mExecutor, s.config)

	Convey("When context is cancelled during the run", s.T(), func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := httperf.Invoke(ctx, serverAddr, serverPort, "cat", Latency)

		So(errors.Is(err, context.Canceled), ShouldBeTrue)
		So(s.mHandle.AssertCalled(s.T(), "Stop"), ShouldBeTrue)
	})
}

func (s *HttperfTestSuite) TestKeepReports() {
	s.config.KeepReports = true
	s.mExecutor.On("Execute", mock.AnythingOfType("string")).Return(s.mHandle, nil).Once()
	s.mHandle.On("Wait", time.Minute).Return(true).Once()
	s.mHandle.On("ExitCode").Return(0, nil).Once()
	s.mHandle.On("StdoutFile").Return(func() *os.File { return s.stdout(correctHttperfReport) }, nil)
	s.mHandle.On("Clean").Return(nil).Once()

	httperf := New(s.mExecutor, s.config)

	Convey("When reports are kept", s.T(), func() {
		_, err := httperf.Invoke(context.Background(), serverAddr, serverPort, "cat", Latency)

		So(err, ShouldBeNil)
		So(s.mHandle.AssertNotCalled(s.T(), "EraseOutput"), ShouldBeTrue)
	})
}

func TestHttperfTestSuite(t *testing.T) {
	suite.Run(t, new(HttperfTestSuite))
}

var _ executor.TaskHandle = (*mocks.TaskHandle)(nil)
var _ executor.Executor = (*mocks.Executor)(nil)
