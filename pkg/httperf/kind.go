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
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// Kind selects which metric a sweep measures.
type Kind int

const (
	// Latency measures average connection time.
	Latency Kind = iota
	// ThroughputBytes measures network I/O rate.
	ThroughputBytes
	// ThroughputRequests measures request rate.
	ThroughputRequests
)

// descriptor holds everything that differs between kinds.
type descriptor struct {
	name        string
	axisLabel   string
	seriesLabel string
	pattern     *regexp.Regexp
	countFlag   string
	outputFile  string
}

var descriptors = map[Kind]descriptor{
	Latency: {
		name:        "latency",
		axisLabel:   "Avg. Response Time",
		seriesLabel: "Average Response Time (ms)",
		pattern:     regexp.MustCompile(`Connection time.*avg (\S+) max`),
		countFlag:   "--num-calls",
		outputFile:  "multisampled_latency.png",
	},
	ThroughputBytes: {
		name:        "throughput_bytes",
		axisLabel:   "Net I/O",
		seriesLabel: "Net I/O (KB/s)",
		pattern:     regexp.MustCompile(`Net I/O: (\S+) `),
		countFlag:   "--num-conns",
		outputFile:  "multisampled_throughput_bytes.png",
	},
	ThroughputRequests: {
		name:        "throughput_requests",
		axisLabel:   "Request Rate",
		seriesLabel: "Request Rate (req/s)",
		pattern:     regexp.MustCompile(`Request rate: (\S+) req`),
		countFlag:   "--num-conns",
		outputFile:  "multisampled_throughput_requests.png",
	},
}

// Kinds returns all kinds in their canonical order.
func Kinds() []Kind {
	return []Kind{Latency, ThroughputBytes, ThroughputRequests}
}

// ParseKind returns kind for its short name, e.g. "throughput_bytes".
func ParseKind(name string) (Kind, error) {
	for _, kind := range Kinds() {
		if descriptors[kind].name == name {
			return kind, nil
		}
	}
	return 0, errors.Errorf("unknown test kind %q", name)
}

func (k Kind) descriptor() descriptor {
	d, ok := descriptors[k]
	if !ok {
		panic("unknown test kind " + strconv.Itoa(int(k)))
	}
	return d
}

// String returns short name of the kind.
func (k Kind) String() string {
	if d, ok := descriptors[k]; ok {
		return d.name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// AxisLabel is the human readable name of the metric.
func (k Kind) AxisLabel() string {
	return k.descriptor().axisLabel
}

// SeriesLabel is the metric name with its unit, used in chart legends.
func (k Kind) SeriesLabel() string {
	return k.descriptor().seriesLabel
}

// Pattern returns expression capturing the metric from httperf report.
func (k Kind) Pattern() *regexp.Regexp {
	return k.descriptor().pattern
}

// OutputFile is the default chart file name in multi-test mode.
func (k Kind) OutputFile() string {
	return k.descriptor().outputFile
}

// Args returns kind specific httperf arguments for given sample count.
func (k Kind) Args(sampleCount int) []string {
	return []string{k.descriptor().countFlag, strconv.Itoa(sampleCount)}
}
