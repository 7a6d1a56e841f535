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
	"context"
	"io"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	"github.com/dowlandaiello/hw4-analysis/pkg/httperf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultRetries       = 2
	defaultRetryInterval = time.Second
)

// ErrNoSamples is returned when every step of a sweep was skipped.
var ErrNoSamples = errors.New("sweep produced no samples")

// Invoker runs a single benchmark and returns its textual report.
type Invoker interface {
	Invoke(ctx context.Context, server string, port uint16, query string, kind httperf.Kind) (string, error)
}

// TestCase describes a single sweep.
type TestCase struct {
	ServerAddr string
	Port       uint16
	Dictionary []string
	Kind       httperf.Kind
	// Output is the path of the chart rendered from the sweep.
	Output string
}

// Policy tells what happens when a step cannot produce a sample.
type Policy struct {
	// FailFast aborts the sweep on the first failed step.
	FailFast bool
	// Retries is the number of additional attempts of a failed step.
	Retries int
	// RetryInterval is the pause between attempts.
	RetryInterval time.Duration
}

// DefaultPolicy retries a failed step twice and skips it afterwards.
func DefaultPolicy() Policy {
	return Policy{
		Retries:       defaultRetries,
		RetryInterval: defaultRetryInterval,
	}
}

// Result of a finished sweep.
type Result struct {
	Case   TestCase
	Series Series
	Bounds Bounds
	// Skipped holds indexes of queries which did not produce a sample.
	Skipped []int
}

// Engine runs sweeps. Steps of a sweep never overlap.
type Engine struct {
	invoker  Invoker
	policy   Policy
	progress io.Writer
}

// NewEngine returns Engine running benchmarks through given invoker.
func NewEngine(invoker Invoker, policy Policy) *Engine {
	return &Engine{
		invoker: invoker,
		policy:  policy,
	}
}

// ShowProgress makes the engine draw a progress bar of each sweep on given output.
func (e *Engine) ShowProgress(output io.Writer) {
	e.progress = output
}

// Run measures every query of the test case and returns the series.
func (e *Engine) Run(ctx context.Context, testCase TestCase) (Series, error) {
	series, _, err := e.collect(ctx, testCase)
	return series, err
}

// Sweep runs the test case and computes bounds of the series.
func (e *Engine) Sweep(ctx context.Context, testCase TestCase) (Result, error) {
	series, skipped, err := e.collect(ctx, testCase)
	if err != nil {
		return Result{}, err
	}

	bounds, err := ComputeBounds(series)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Case:    testCase,
		Series:  series,
		Bounds:  bounds,
		Skipped: skipped,
	}, nil
}

func (e *Engine) collect(ctx context.Context, testCase TestCase) (Series, []int, error) {
	queries, err := BuildQueries(testCase.Dictionary)
	if err != nil {
		return nil, nil, err
	}

	log := logrus.WithField("kind", testCase.Kind.String())
	series := make(Series, 0, len(queries))
	var skipped []int

	bar := newProgress(e.progress, testCase.Kind, len(queries))
	defer bar.finish()

	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			return nil, nil, errors.Wrapf(err, "%s sweep interrupted before query #%d", testCase.Kind, i)
		}

		log.Infof("Running query #%d: http://%s:%d%s", i, testCase.ServerAddr, testCase.Port, httperf.QueryURI(query))
		bar.step(i)

		metric, err := e.measure(ctx, testCase, query)
		if err != nil {
			if e.policy.FailFast || ctx.Err() != nil {
				return nil, nil, errors.Wrapf(err, "%s sweep failed at query #%d %q", testCase.Kind, i, query)
			}
			log.Warnf("Skipping query #%d %q: %s", i, query, err)
			skipped = append(skipped, i)
			bar.done()
			continue
		}

		series = append(series, Sample{
			Index: i,
			Query: query,
			X:     float32(utf8.RuneCountInString(query)),
			Y:     metric,
		})
		log.Infof("Query #%d finished: %s - %v", i, testCase.Kind.AxisLabel(), metric)
		bar.done()
	}

	if len(series) == 0 {
		return nil, skipped, errors.Wrapf(ErrNoSamples, "%s sweep skipped all %d queries", testCase.Kind, len(queries))
	}

	return series, skipped, nil
}

// measure invokes the benchmark for a query and extracts the metric from its report.
func (e *Engine) measure(ctx context.Context, testCase TestCase, query string) (metric float32, err error) {
	attempt := func() error {
		report, err := e.invoker.Invoke(ctx, testCase.ServerAddr, testCase.Port, query, testCase.Kind)
		if err != nil {
			return err
		}
		metric, err = httperf.ExtractMetric(report, testCase.Kind)
		return err
	}

	if e.policy.FailFast || e.policy.Retries <= 0 {
		return metric, attempt()
	}

	retries := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(e.policy.RetryInterval), uint64(e.policy.Retries)),
		ctx,
	)
	err = backoff.RetryNotify(func() error {
		err := attempt()
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}, retries, func(err error, next time.Duration) {
		logrus.WithField("kind", testCase.Kind.String()).Warnf("Query %q failed, retrying in %s: %s", query, next, err)
	})
	return metric, err
}
