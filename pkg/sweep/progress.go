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

	"github.com/dowlandaiello/hw4-analysis/pkg/httperf"
	"gopkg.in/cheggaaa/pb.v1"
)

const progressWidth = 80

// progress draws steps of a single sweep on a bar. Zero value draws nothing.
type progress struct {
	bar   *pb.ProgressBar
	kind  httperf.Kind
	total int
}

func newProgress(output io.Writer, kind httperf.Kind, total int) progress {
	if output == nil {
		return progress{}
	}

	bar := pb.New(total)
	bar.Output = output
	bar.ManualUpdate = true
	bar.ShowCounters = true
	bar.ShowTimeLeft = true
	bar.SetWidth(progressWidth)
	bar.Start()

	return progress{bar: bar, kind: kind, total: total}
}

// step redraws the bar before query with given index is measured.
func (p progress) step(index int) {
	if p.bar == nil {
		return
	}
	p.bar.Prefix(fmt.Sprintf("[%02d / %02d] %s ", index+1, p.total, p.kind))
	p.bar.Update()
}

// done advances the bar, skipped queries included.
func (p progress) done() {
	if p.bar == nil {
		return
	}
	p.bar.Increment()
	p.bar.Update()
}

func (p progress) finish() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
}
