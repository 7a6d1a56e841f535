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

package executor_test

import (
	"testing"

	"github.com/dowlandaiello/hw4-analysis/pkg/executor"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExecutorFactory(t *testing.T) {
	Convey("Using Executor Factory", t, func() {
		Convey("When we point to the localhost, it should return Local Executor", func() {
			exec, err := executor.CreateExecutor("localhost", executor.RemoteConfig{})
			So(err, ShouldBeNil)

			_, ok := exec.(executor.Local)
			So(ok, ShouldBeTrue)
		})

		Convey("When we point to the 127.0.0.1 IP, it should return Local Executor", func() {
			exec, err := executor.CreateExecutor("127.0.0.1", executor.RemoteConfig{})
			So(err, ShouldBeNil)

			_, ok := exec.(executor.Local)
			So(ok, ShouldBeTrue)
		})

		Convey("When we point to the external IP without a usable key, it should fail", func() {
			_, err := executor.CreateExecutor("10.0.0.1", executor.RemoteConfig{KeyPath: "/not/existing/key"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "/not/existing/key")
		})
	})
}
