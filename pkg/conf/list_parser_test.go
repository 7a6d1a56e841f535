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
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/alecthomas/kingpin.v2"
)

func TestStringListParser(t *testing.T) {
	Convey("While using StringListVar", t, func() {
		strListValue := &StringListVar{}

		Convey("It should implement kingpin.Value interfaces", func() {
			So(strListValue, ShouldImplement, (*kingpin.Value)(nil))
			So(strListValue, ShouldImplement, (*kingpin.Getter)(nil))
		})

		Convey("When parsing string inputs it should append them to string slice", func() {
			So(strListValue.IsCumulative(), ShouldBeTrue)

			So(strListValue.Set("latency"), ShouldBeNil)
			So(strListValue.Get(), ShouldResemble, []string{"latency"})

			So(strListValue.Set("throughput_bytes, throughput_requests"), ShouldBeNil)
			So(strListValue.Get(), ShouldResemble, []string{"latency", "throughput_bytes", "throughput_requests"})

			So(strListValue.String(), ShouldEqual, "latency,throughput_bytes,throughput_requests")
		})

		Convey("Empty elements should be skipped", func() {
			So(strListValue.Set(",,"), ShouldBeNil)
			So(strListValue.Get(), ShouldResemble, []string{})
		})
	})
}
