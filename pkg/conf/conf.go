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

package conf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

const envPrefix = "SWEEP"

var (
	// Flags have to precede positional arguments, query words may look like flags.
	app = kingpin.New("querysweep", "No help available").Interspersed(false)
	// Default flags and values.
	logLevelFlag = NewStringFlag(
		"log",
		"Log level: debug, info, warn, error, fatal, panic",
		"info",
	)
	positionalArgs = app.Arg("args", "<server_addr> <port_number> <query_word1> <query_word2> ...").Strings()
	isEnvParsed    = false
)

// SetHelp sets the help message for the CLI.
func SetHelp(help string) {
	app.Help = help
}

// SetAppName sets application name for CLI output.
func SetAppName(name string) {
	app.Name = name
}

// AppName returns specified app name.
func AppName() string {
	return app.Name
}

// LogLevel returns configured logLevel from input option or env variable.
// If it cannot parse the log level, it returns default value.
func LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(logLevelFlag.Value())
	if err == nil {
		return level
	}

	level, err = logrus.ParseLevel(logLevelFlag.defaultValue)
	if err == nil {
		return level
	}

	// Programmer error.
	panic(errors.Wrap(err, "parsing log level failed"))
}

// Args returns positional arguments given after flags.
func Args() []string {
	if !isEnvParsed {
		return nil
	}
	return *positionalArgs
}

// ParseFlags parses given command line arguments and environment variables.
func ParseFlags(args []string) error {
	resetParsedValues()
	_, err := app.Parse(args)
	if err == nil {
		isEnvParsed = true
		return nil
	}

	return errors.Wrapf(err, "could not parse command line flags")
}

// resetParsedValues drops values accumulated by previous parse.
func resetParsedValues() {
	*positionalArgs = nil
	for _, name := range flagOrder {
		if slice, ok := definedFlags[name].(*SliceFlag); ok {
			*slice.value = nil
		}
	}
}

// DumpConfig dumps environment based configuration with current values of flags.
func DumpConfig() string {
	buffer := &bytes.Buffer{}

	buffer.WriteString("# Export are values.\n")
	buffer.WriteString("set -o allexport\n")

	for _, name := range flagOrder {
		flag := definedFlags[name]
		// Flags with dashes are switches of the binary itself.
		if strings.Contains(name, "-") {
			continue
		}

		fmt.Fprintf(buffer, "\n# %s\n", flag.help())
		if flag.defaultString() != "" {
			fmt.Fprintf(buffer, "# Default: %s\n", flag.defaultString())
		}
		fmt.Fprintf(buffer, "%s=%s\n", flag.envName(), flag.valueString())
	}

	buffer.WriteString("set +o allexport")
	return buffer.String()
}

// GetFlags returns flags as map with current values.
func GetFlags() map[string]string {
	flagsMap := map[string]string{}
	for name, flag := range definedFlags {
		flagsMap[name] = flag.valueString()
	}
	return flagsMap
}
