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

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/dowlandaiello/hw4-analysis/pkg/chart"
	"github.com/dowlandaiello/hw4-analysis/pkg/conf"
	"github.com/dowlandaiello/hw4-analysis/pkg/executor"
	"github.com/dowlandaiello/hw4-analysis/pkg/httperf"
	"github.com/dowlandaiello/hw4-analysis/pkg/logger"
	"github.com/dowlandaiello/hw4-analysis/pkg/sweep"
	"github.com/dowlandaiello/hw4-analysis/pkg/utils/err_collection"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	name = "querysweep"
	help = `Sweeps httperf over queries of growing length and charts the measured metric.

Every query is the prefix of given words joined with '+', sent as /query?terms=<query>.
One chart is rendered per sweep kind.`

	// exUsage follows sysexits(3).
	exUsage   = 64
	exFailure = 1

	legacyOutputFile = "out.png"
)

var (
	logDirFlag = conf.NewStringFlag("log_dir", "Directory for run log files, logs go to stderr only when empty", "")

	// httperf.
	httperfPathFlag        = conf.NewStringFlag("httperf_path", "Path to httperf binary", httperf.DefaultConfig().Path)
	httperfSamplesFlag     = conf.NewIntFlag("httperf_samples", "Number of calls (latency) or connections (throughput) of a single httperf run", httperf.DefaultConfig().SampleCount)
	httperfTimeoutFlag     = conf.NewDurationFlag("httperf_timeout", "Time limit of a single httperf run, 0 disables it", 5*time.Minute)
	httperfExtraArgsFlag   = conf.NewSliceFlag("httperf_extra_args", "Raw arguments appended to every httperf run")
	httperfKeepReportsFlag = conf.NewBoolFlag("httperf_keep_reports", "Keep stdout and stderr of every httperf run on disk", false)

	// Load generator host.
	loadGeneratorAddrFlag    = conf.NewStringFlag("load_generator_addr", "Host running httperf, 127.0.0.1 or localhost runs it locally, any other over SSH", "127.0.0.1")
	loadGeneratorSSHUserFlag = conf.NewStringFlag("load_generator_ssh_user", "SSH user on load generator host, current user when empty", "")
	loadGeneratorSSHPortFlag = conf.NewIntFlag("load_generator_ssh_port", "SSH port of load generator host", executor.DefaultSSHPort)
	loadGeneratorSSHKeyFlag  = conf.NewStringFlag("load_generator_ssh_key", "SSH private key for load generator host, ~/.ssh/id_rsa when empty", "")

	// Sweep.
	sweepKindsFlag         = conf.NewSliceFlag("sweep_kinds", "Sweeps to run: latency, throughput_bytes, throughput_requests", kindNames()...)
	sweepLegacyFlag        = conf.NewBoolFlag("sweep_legacy", "Run latency sweep only and write its chart to out.png", false)
	sweepOutputDirFlag     = conf.NewStringFlag("sweep_output_dir", "Directory for rendered charts", ".")
	sweepFailFastFlag      = conf.NewBoolFlag("sweep_fail_fast", "Abort a sweep on the first failed query instead of skipping it", false)
	sweepRetriesFlag       = conf.NewIntFlag("sweep_retries", "Additional attempts of a failed query", sweep.DefaultPolicy().Retries)
	sweepRetryIntervalFlag = conf.NewDurationFlag("sweep_retry_interval", "Pause between attempts of a failed query", sweep.DefaultPolicy().RetryInterval)
	sweepParallelFlag      = conf.NewBoolFlag("sweep_parallel", "Run sweeps of different kinds concurrently", false)

	configDumpFlag = conf.NewBoolFlag("config-dump", "Dump configuration as environment script and exit", false)

	createExecutor = executor.CreateExecutor
)

func kindNames() []string {
	names := []string{}
	for _, kind := range httperf.Kinds() {
		names = append(names, kind.String())
	}
	return names
}

func main() {
	runID, err := logger.NewRunID()
	if err != nil {
		log.Fatalf("cannot generate run id: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	exitCode := run(ctx, runID, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode)
}

// run executes the application for given command line and returns its exit code.
func run(ctx context.Context, runID string, args []string, stdout, stderr io.Writer) int {
	// ------------------- Bootstrap -------------------------
	conf.SetAppName(name)
	conf.SetHelp(help)
	if err := conf.ParseFlags(args[1:]); err != nil {
		fmt.Fprintln(stderr, err)
		return exUsage
	}

	if configDumpFlag.Value() {
		fmt.Fprintln(stdout, conf.DumpConfig())
		return 0
	}

	positional := conf.Args()
	if len(positional) < 3 {
		fmt.Fprintf(stdout, "./%s <server_addr> <port_number> <query_word1> <query_word2> ...\n", path.Base(args[0]))
		return 0
	}

	port, err := strconv.ParseUint(positional[1], 10, 16)
	if err != nil {
		fmt.Fprintf(stderr, "invalid port number %q: %v\n", positional[1], err)
		return exUsage
	}

	testCases, err := prepareTestCases(positional[0], uint16(port), positional[2:])
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exUsage
	}

	logFile, err := logger.Initialize(conf.AppName(), runID, logDirFlag.Value())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exFailure
	}
	if logFile != nil {
		defer logFile.Close()
	}
	log.Debugf("Configuration: %v", conf.GetFlags())

	// ------------------- Load generator -------------------------
	loadGeneratorExecutor, err := createExecutor(loadGeneratorAddrFlag.Value(), executor.RemoteConfig{
		User:    loadGeneratorSSHUserFlag.Value(),
		Port:    loadGeneratorSSHPortFlag.Value(),
		KeyPath: loadGeneratorSSHKeyFlag.Value(),
	})
	if err != nil {
		log.Errorf("Cannot create executor for load generator %q: %v", loadGeneratorAddrFlag.Value(), err)
		return exFailure
	}

	engine := sweep.NewEngine(httperf.New(loadGeneratorExecutor, httperfConfig()), policy())
	// Bars of parallel sweeps would overwrite each other.
	if conf.LogLevel() == log.ErrorLevel && !sweepParallelFlag.Value() {
		engine.ShowProgress(stderr)
	}

	// ------------------- Sweeps -------------------------
	errs := runSweeps(ctx, engine, testCases, stdout)
	if err := errs.GetErrIfAny(); err != nil {
		log.Errorf("%d of %d sweeps failed: %v", errs.Len(), len(testCases), err)
		return exFailure
	}

	return 0
}

func httperfConfig() httperf.Config {
	config := httperf.DefaultConfig()
	config.Path = httperfPathFlag.Value()
	config.SampleCount = httperfSamplesFlag.Value()
	config.Timeout = httperfTimeoutFlag.Value()
	config.ExtraArgs = httperfExtraArgsFlag.Value()
	config.KeepReports = httperfKeepReportsFlag.Value()
	return config
}

func policy() sweep.Policy {
	return sweep.Policy{
		FailFast:      sweepFailFastFlag.Value(),
		Retries:       sweepRetriesFlag.Value(),
		RetryInterval: sweepRetryIntervalFlag.Value(),
	}
}

// prepareTestCases returns one test case per configured kind. Legacy mode
// runs latency sweep only.
func prepareTestCases(server string, port uint16, dictionary []string) ([]sweep.TestCase, error) {
	outputDir := sweepOutputDirFlag.Value()
	if sweepLegacyFlag.Value() {
		return []sweep.TestCase{{
			ServerAddr: server,
			Port:       port,
			Dictionary: dictionary,
			Kind:       httperf.Latency,
			Output:     path.Join(outputDir, legacyOutputFile),
		}}, nil
	}

	kinds, err := parseKinds(sweepKindsFlag.Value())
	if err != nil {
		return nil, err
	}

	testCases := []sweep.TestCase{}
	for _, kind := range kinds {
		testCases = append(testCases, sweep.TestCase{
			ServerAddr: server,
			Port:       port,
			Dictionary: dictionary,
			Kind:       kind,
			Output:     path.Join(outputDir, kind.OutputFile()),
		})
	}
	return testCases, nil
}

func parseKinds(names []string) ([]httperf.Kind, error) {
	kinds := []httperf.Kind{}
	seen := map[httperf.Kind]bool{}
	for _, kindName := range names {
		kind, err := httperf.ParseKind(kindName)
		if err != nil {
			return nil, errors.Wrap(err, "invalid sweep_kinds")
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true
		kinds = append(kinds, kind)
	}
	if len(kinds) == 0 {
		return nil, errors.New("no sweep kinds configured")
	}
	return kinds, nil
}

// runSweeps runs every test case and gathers failures. Failure of one sweep
// does not stop the others.
func runSweeps(ctx context.Context, engine *sweep.Engine, testCases []sweep.TestCase, stdout io.Writer) *errcollection.ErrorCollection {
	errs := &errcollection.ErrorCollection{}
	outputMutex := &sync.Mutex{}

	runOne := func(testCase sweep.TestCase) error {
		err := runSweep(ctx, engine, testCase, stdout, outputMutex)
		if err != nil {
			err = errors.Wrapf(err, "%s sweep failed", testCase.Kind)
			log.Error(err)
			errs.Add(err)
		}
		return err
	}

	if !sweepParallelFlag.Value() {
		for _, testCase := range testCases {
			runOne(testCase)
		}
		return errs
	}

	var group errgroup.Group
	for _, testCase := range testCases {
		testCase := testCase
		group.Go(func() error {
			return runOne(testCase)
		})
	}
	// Errors are already in the collection.
	group.Wait()
	return errs
}

func runSweep(ctx context.Context, engine *sweep.Engine, testCase sweep.TestCase, stdout io.Writer, outputMutex *sync.Mutex) error {
	result, err := engine.Sweep(ctx, testCase)
	if err != nil {
		return err
	}

	summary := &bytes.Buffer{}
	if err := sweep.WriteSummary(summary, result); err != nil {
		return errors.Wrap(err, "cannot write summary")
	}
	outputMutex.Lock()
	_, err = summary.WriteTo(stdout)
	outputMutex.Unlock()
	if err != nil {
		return errors.Wrap(err, "cannot print summary")
	}

	labels := chart.Labels{
		Metric:      testCase.Kind.AxisLabel(),
		Series:      testCase.Kind.SeriesLabel(),
		SampleCount: httperfSamplesFlag.Value(),
	}
	return chart.Render(result.Series, result.Bounds, labels, testCase.Output)
}
