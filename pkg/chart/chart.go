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
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/dowlandaiello/hw4-analysis/pkg/sweep"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// Width of the chart in pixels.
	Width = 640
	// Height of the chart in pixels.
	Height = 480
	// Margin around the chart in pixels.
	Margin = 10

	// At 72 DPI one point is one pixel.
	dpi = 72

	titlePrefix      = "Index Query Word Length vs "
	xLabel           = "Query Length [characters]"
	degenerateMargin = 0.5
)

var (
	lineColor = color.RGBA{R: 255, A: 255}
	white     = color.White
)

// ErrNothingToRender is returned for a series without samples.
var ErrNothingToRender = errors.New("nothing to render")

// Labels describe texts drawn on the chart.
type Labels struct {
	// Metric is appended to the title and used as Y axis label.
	Metric string
	// Series is the legend entry.
	Series string
	// SampleCount is noted next to the legend entry.
	SampleCount int
}

// Title returns chart title for given metric label.
func Title(metric string) string {
	return titlePrefix + metric
}

// axisRange widens degenerate ranges so that the axis can still be drawn.
func axisRange(min, max float32) (float64, float64) {
	if min == max {
		return float64(min) - degenerateMargin, float64(max) + degenerateMargin
	}
	return float64(min), float64(max)
}

// newPlot builds the plot of a series without drawing it.
func newPlot(series sweep.Series, bounds sweep.Bounds, labels Labels) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, ErrNothingToRender
	}

	p := plot.New()
	p.Title.Text = Title(labels.Metric)
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = labels.Metric
	p.BackgroundColor = white
	p.Add(plotter.NewGrid())

	points := make(plotter.XYs, len(series))
	for i, sample := range series {
		points[i].X = float64(sample.X)
		points[i].Y = float64(sample.Y)
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, errors.Wrap(err, "cannot build line from series")
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)

	p.Legend.Add(fmt.Sprintf("%s n=%d", labels.Series, labels.SampleCount), line)
	p.Legend.Top = true

	p.X.Min, p.X.Max = axisRange(bounds.MinX, bounds.MaxX)
	p.Y.Min, p.Y.Max = axisRange(bounds.MinY, bounds.MaxY)

	return p, nil
}

// Render draws series as a line chart and writes it as PNG to outPath.
func Render(series sweep.Series, bounds sweep.Bounds, labels Labels, outPath string) error {
	p, err := newPlot(series, bounds, labels)
	if err != nil {
		return err
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(Width), vg.Length(Height)),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(white),
	)
	dc := draw.New(canvas)
	m := vg.Length(Margin)
	p.Draw(draw.Crop(dc, m, -m, m, -m))

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "cannot create directory for %q", outPath)
		}
	}

	file, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "cannot create %q", outPath)
	}

	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "cannot write chart to %q", outPath)
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, "cannot close %q", outPath)
	}

	log.Infof("Chart %q written to %q", p.Title.Text, outPath)
	return nil
}
