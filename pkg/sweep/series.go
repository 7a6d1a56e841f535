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
	"github.com/pkg/errors"
)

// ErrEmptySeries is returned when bounds are requested for a series without samples.
var ErrEmptySeries = errors.New("series is empty")

// Sample is a single measurement of a sweep.
type Sample struct {
	// Index of the query in the sweep. Skipped queries leave gaps.
	Index int
	// Query the sample was measured for.
	Query string
	// X is the query length in characters.
	X float32
	// Y is the metric extracted from the report.
	Y float32
}

// Series keeps samples in the order they were measured.
type Series []Sample

// Bounds are axis extents of a series.
type Bounds struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

// ComputeBounds scans both projections of the series independently.
// Series does not need to be sorted.
func ComputeBounds(series Series) (Bounds, error) {
	if len(series) == 0 {
		return Bounds{}, ErrEmptySeries
	}

	bounds := Bounds{
		MinX: series[0].X, MaxX: series[0].X,
		MinY: series[0].Y, MaxY: series[0].Y,
	}
	for _, sample := range series[1:] {
		if sample.X < bounds.MinX {
			bounds.MinX = sample.X
		}
		if sample.X > bounds.MaxX {
			bounds.MaxX = sample.X
		}
		if sample.Y < bounds.MinY {
			bounds.MinY = sample.Y
		}
		if sample.Y > bounds.MaxY {
			bounds.MaxY = sample.Y
		}
	}
	return bounds, nil
}
