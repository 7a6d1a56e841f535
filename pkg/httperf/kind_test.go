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
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestKind(t *testing.T) {
	Convey("When using test kinds", t, func() {
		Convey("There should be exactly three of them in canonical order", func() {
			So(Kinds(), ShouldResemble, []Kind{Latency, ThroughputBytes, ThroughputRequests})
		})

		Convey("Latency should contribute the call count", func() {
			So(Latency.Args(10), ShouldResemble, []string{"--num-calls", "10"})
		})

		Convey("Throughput kinds should contribute the connection count", func() {
			So(ThroughputBytes.Args(7), ShouldResemble, []string{"--num-conns", "7"})
			So(ThroughputRequests.Args(7), ShouldResemble, []string{"--num-conns", "7"})
		})

		Convey("Every kind should have its multi-test output file", func() {
			So(Latency.OutputFile(), ShouldEqual, "multisampled_latency.png")
			So(ThroughputBytes.OutputFile(), ShouldEqual, "multisampled_throughput_bytes.png")
			So(ThroughputRequests.OutputFile(), ShouldEqual, "multisampled_throughput_requests.png")
		})

		Convey("Kinds should be parsed back from their names", func() {
			for _, kind := range Kinds() {
				parsed, err := ParseKind(kind.String())
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, kind)
			}
		})

		Convey("Unknown name should not be parsed", func() {
			_, err := ParseKind("jitter")
			So(err, ShouldNotBeNil)
		})

		Convey("Unknown kind should be printable", func() {
			So(Kind(42).String(), ShouldEqual, "Kind(42)")
		})
	})
}
