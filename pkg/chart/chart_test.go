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

package chart

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dowlandaiello/hw4-analysis/pkg/sweep"
	. "github.com/smartystreets/goconvey/convey"
)

var labels = Labels{
	Metric:      "Avg. Response Time",
	Series:      "Average Response Time (ms)",
	SampleCount: 10,
}

func TestRender(t *testing.T) {
	Convey("When rendering a series", t, func() {
		outDir := t.TempDir()
		series := sweep.Series{{Query: "cat", X: 3, Y: 1.0}, {Query: "cat+dog+fox", X: 11, Y: 5.0}, {Query: "cat+dog", X: 7, Y: 2.0}}
		bounds, err := sweep.ComputeBounds(series)
		So(err, ShouldBeNil)

		Convey("A 640x480 PNG should be written", func() {
			outPath := filepath.Join(outDir, "out.png")
			So(Render(series, bounds, labels, outPath), ShouldBeNil)

			file, err := os.Open(outPath)
			So(err, ShouldBeNil)
			defer file.Close()

			config, err := png.DecodeConfig(file)
			So(err, ShouldBeNil)
			So(config.Width, ShouldEqual, Width)
			So(config.Height, ShouldEqual, Height)
		})

		Convey("Missing directories should be created", func() {
			outPath := filepath.Join(outDir, "charts", "latency", "out.png")
			So(Render(series, bounds, labels, outPath), ShouldBeNil)

			_, err := os.Stat(outPath)
			So(err, ShouldBeNil)
		})

		Convey("Output path below a regular file should fail", func() {
			blocker := filepath.Join(outDir, "blocker")
			So(os.WriteFile(blocker, nil, 0644), ShouldBeNil)

			err := Render(series, bounds, labels, filepath.Join(blocker, "out.png"))
			So(err, ShouldNotBeNil)
		})

		Convey("Degenerate bounds should be widened instead of failing", func() {
			single := sweep.Series{{Query: "cat", X: 3, Y: 1.5}}
			singleBounds, err := sweep.ComputeBounds(single)
			So(err, ShouldBeNil)

			So(Render(single, singleBounds, labels, filepath.Join(outDir, "single.png")), ShouldBeNil)
		})

		Convey("Empty series should not be rendered", func() {
			err := Render(nil, sweep.Bounds{}, labels, filepath.Join(outDir, "empty.png"))
			So(err, ShouldEqual, ErrNothingToRender)

			_, statErr := os.Stat(filepath.Join(outDir, "empty.png"))
			So(os.IsNotExist(statErr), ShouldBeTrue)
		})
	})
}

func TestNewPlot(t *testing.T) {
	Convey("When building a plot", t, func() {
		series := sweep.Series{{X: 3, Y: 1.0}, {X: 7, Y: 5.0}}
		p, err := newPlot(series, sweep.Bounds{MinX: 3, MaxX: 7, MinY: 1.0, MaxY: 5.0}, labels)
		So(err, ShouldBeNil)

		Convey("Title should name the metric", func() {
			So(p.Title.Text, ShouldEqual, "Index Query Word Length vs Avg. Response Time")
		})

		Convey("Axes should follow the bounds", func() {
			So(p.X.Min, ShouldEqual, 3)
			So(p.X.Max, ShouldEqual, 7)
			So(p.Y.Min, ShouldEqual, 1)
			So(p.Y.Max, ShouldEqual, 5)
		})

		Convey("Y axis should be labeled with the metric", func() {
			So(p.Y.Label.Text, ShouldEqual, "Avg. Response Time")
		})
	})

	Convey("Degenerate ranges should be widened by half a unit", t, func() {
		min, max := axisRange(2, 2)
		So(min, ShouldEqual, 1.5)
		So(max, ShouldEqual, 2.5)
	})
}
