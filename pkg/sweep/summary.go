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

package sweep

import (
	"fmt"
	"io"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// WriteSummary draws a table with samples of the result followed by metric statistics and bounds.
func WriteSummary(w io.Writer, result Result) error {
	fmt.Fprintf(w, "%s sweep of %s:%d\n", result.Case.Kind, result.Case.ServerAddr, result.Case.Port)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Query", "Length", result.Case.Kind.SeriesLabel()})
	for _, sample := range result.Series {
		table.Append([]string{
			strconv.Itoa(sample.Index),
			sample.Query,
			strconv.FormatFloat(float64(sample.X), 'f', -1, 32),
			strconv.FormatFloat(float64(sample.Y), 'f', -1, 32),
		})
	}
	table.Render()

	metrics := make(stats.Float64Data, 0, len(result.Series))
	for _, sample := range result.Series {
		metrics = append(metrics, float64(sample.Y))
	}
	mean, err := stats.Mean(metrics)
	if err != nil {
		return errors.Wrap(err, "cannot compute mean of the series")
	}
	median, err := stats.Median(metrics)
	if err != nil {
		return errors.Wrap(err, "cannot compute median of the series")
	}
	stddev, err := stats.StandardDeviation(metrics)
	if err != nil {
		return errors.Wrap(err, "cannot compute standard deviation of the series")
	}
	fmt.Fprintf(w, "mean: %.2f median: %.2f stddev: %.2f\n", mean, median, stddev)

	_, err = fmt.Fprintf(w, "x: [%v, %v] y: [%v, %v] skipped: %d\n",
		result.Bounds.MinX, result.Bounds.MaxX,
		result.Bounds.MinY, result.Bounds.MaxY,
		len(result.Skipped))
	return err
}
