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

package conf

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

const testAppName = "testAppName"

var customFlag = NewStringFlag("custom_arg", "custom help", "default")

func clearEnv() {
	// Clear all environment variables in context of that test.
	logLevelFlag.clear()
	customFlag.clear()
}

func TestConf(t *testing.T) {
	Convey("While using Conf pkg", t, func() {
		clearEnv()
		defer clearEnv()

		SetAppName(testAppName)
		SetHelp("Sweeps queries of growing length.")

		Convey("Name and help should match to specified one", func() {
			So(AppName(), ShouldEqual, testAppName)
			So(app.Help, ShouldEqual, "Sweeps queries of growing length.")
		})

		Convey("Log level can be fetched from env", func() {
			err := ParseFlags(nil)
			So(err, ShouldBeNil)
			So(LogLevel(), ShouldEqual, logrus.InfoLevel)

			os.Setenv(logLevelFlag.envName(), "debug")

			err = ParseFlags(nil)
			So(err, ShouldBeNil)
			So(LogLevel(), ShouldEqual, logrus.DebugLevel)
		})

		Convey("Unknown log level falls back to default", func() {
			os.Setenv(logLevelFlag.envName(), "loud")

			err := ParseFlags(nil)
			So(err, ShouldBeNil)
			So(LogLevel(), ShouldEqual, logrus.InfoLevel)
		})

		Convey("Positional arguments should be returned in order", func() {
			err := ParseFlags([]string{"--log", "warn", "127.0.0.1", "8080", "cat", "dog"})
			So(err, ShouldBeNil)
			So(Args(), ShouldResemble, []string{"127.0.0.1", "8080", "cat", "dog"})
			So(LogLevel(), ShouldEqual, logrus.WarnLevel)

			err = ParseFlags([]string{"localhost"})
			So(err, ShouldBeNil)
			So(Args(), ShouldResemble, []string{"localhost"})
		})

		Convey("Arguments after the first positional one should never be taken for flags", func() {
			err := ParseFlags([]string{"127.0.0.1", "8080", "c++", "-1", "--log", "x"})
			So(err, ShouldBeNil)
			So(Args(), ShouldResemble, []string{"127.0.0.1", "8080", "c++", "-1", "--log", "x"})
			So(LogLevel(), ShouldEqual, logrus.InfoLevel)
		})

		Convey("Unknown flag should fail to parse", func() {
			err := ParseFlags([]string{"--no_such_flag"})
			So(err, ShouldNotBeNil)
		})

		Convey("Config dump should contain environment assignments", func() {
			os.Setenv(customFlag.envName(), "fromEnv")
			err := ParseFlags(nil)
			So(err, ShouldBeNil)

			dump := DumpConfig()
			So(dump, ShouldStartWith, "# Export are values.\nset -o allexport\n")
			So(dump, ShouldContainSubstring, "# Log level: debug, info, warn, error, fatal, panic\n# Default: info\nSWEEP_LOG=info\n")
			So(dump, ShouldContainSubstring, "# custom help\n# Default: default\nSWEEP_CUSTOM_ARG=fromEnv\n")
			So(dump, ShouldEndWith, "set +o allexport")
		})

		Convey("GetFlags should return current values", func() {
			err := ParseFlags([]string{"--custom_arg", "value"})
			So(err, ShouldBeNil)

			flags := GetFlags()
			So(flags["custom_arg"], ShouldEqual, "value")
			So(flags["log"], ShouldEqual, "info")
		})
	})
}
