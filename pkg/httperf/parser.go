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
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrMetricAbsent is returned when report does not contain the metric.
	ErrMetricAbsent = errors.New("metric absent from report")
	// ErrMalformedMetric is returned when captured metric is not a number.
	ErrMalformedMetric = errors.New("malformed metric")
)

func matchNotFound(match []string) bool {
	return match == nil || len(match) < 2 || len(match[1]) == 0
}

// ExtractMetric finds kind specific metric in httperf report.
func ExtractMetric(report string, kind Kind) (float32, error) {
	match := kind.Pattern().FindStringSubmatch(report)
	if matchNotFound(match) {
		return 0, errors.Wrapf(ErrMetricAbsent, "cannot find %s (%q) in report", kind, kind.Pattern())
	}

	value, err := decimal.NewFromString(match[1])
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedMetric, "cannot parse %s value %q: %s", kind, match[1], err)
	}

	metric, _ := value.Float64()
	return float32(metric), nil
}
