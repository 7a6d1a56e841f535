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

package net

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestIsAddrLocal(t *testing.T) {
	Convey("Loopback names should be local", t, func() {
		for _, addr := range []string{"127.0.0.1", "localhost", "::1", ""} {
			So(IsAddrLocal(addr), ShouldBeTrue)
		}
	})

	Convey("Other hosts should be remote", t, func() {
		for _, addr := range []string{"10.0.0.5", "loadgen.example.com", "127.0.0.2"} {
			So(IsAddrLocal(addr), ShouldBeFalse)
		}
	})
}
