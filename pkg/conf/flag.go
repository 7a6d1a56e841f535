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
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
)

// flagType is an internal interface for all flags.
// Every flag should have method for creating `envName` from its name and `clear` method
// for clearing corresponding environment variable from env.
type flagType interface {
	envName() string
	clear()
	help() string
	defaultString() string
	valueString() string
}

var (
	// definedFlags stores all the defined flags. It helps to find
	// duplicates when defining flag with the same name.
	definedFlags = map[string]flagType{}
	// flagOrder keeps names in definition order, which logically groups flags.
	flagOrder []string
)

// cliAndEnvFlag represents option's definition from CLI and Environment variable.
// It stores generic data for each defined flag.
type cliAndEnvFlag struct {
	*kingpin.FlagClause
	description string
	defaults    string
}

func newCliAndEnvFlag(flagName string, description string, defaultValues ...string) *cliAndEnvFlag {
	if definedFlags[flagName] != nil {
		panic(fmt.Sprintf("flag %q is already defined", flagName))
	}

	c := &cliAndEnvFlag{
		FlagClause:  app.Flag(flagName, description),
		description: description,
	}
	c.Envar(c.envName())

	nonEmpty := []string{}
	for _, defaultValue := range defaultValues {
		if defaultValue == "" {
			continue
		}
		c.Default(defaultValue)
		nonEmpty = append(nonEmpty, defaultValue)
	}
	c.defaults = strings.Join(nonEmpty, ",")

	return c
}

// lookup returns flag defined before under the same name. Redefinition is
// allowed only with the same type and default.
func lookup[T flagType](flagName string, sameDefault func(T) bool) (T, bool) {
	var zero T
	duplicatedFlag := definedFlags[flagName]
	if duplicatedFlag == nil {
		return zero, false
	}

	flagDef, ok := duplicatedFlag.(T)
	if !ok {
		panic(fmt.Sprintf("flag %q was redefined with different type", flagName))
	}
	if !sameDefault(flagDef) {
		panic(fmt.Sprintf("flag %q was redefined with different default value", flagName))
	}
	return flagDef, true
}

func register(flagName string, flag flagType) {
	definedFlags[flagName] = flag
	flagOrder = append(flagOrder, flagName)
	isEnvParsed = false
}

// envName returns name converted to environment variable name.
// In order to create environment variable name from flag we need to make it uppercase
// and add SWEEP prefix. For instance: "httperf_path" will be "SWEEP_HTTPERF_PATH".
func (f *cliAndEnvFlag) envName() string {
	name := strings.Replace(f.Model().Name, "-", "_", -1)
	return fmt.Sprintf("%s_%s", envPrefix, strings.ToUpper(name))
}

// clear unsets the corresponding environment variable.
func (f *cliAndEnvFlag) clear() {
	os.Unsetenv(f.envName())
}

func (f *cliAndEnvFlag) help() string {
	return f.description
}

func (f *cliAndEnvFlag) defaultString() string {
	return f.defaults
}

// StringFlag represents flag with string value.
type StringFlag struct {
	*cliAndEnvFlag
	defaultValue string
	value        *string
}

// NewStringFlag is a constructor of StringFlag struct.
func NewStringFlag(flagName string, description string, defaultValue string) *StringFlag {
	if flagDef, ok := lookup(flagName, func(f *StringFlag) bool { return f.defaultValue == defaultValue }); ok {
		return flagDef
	}

	flagDef := &StringFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, defaultValue),
		defaultValue:  defaultValue,
	}
	if defaultValue == "" {
		// Clears value left by previous parse.
		flagDef.Default("")
	}
	flagDef.value = flagDef.String()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (s StringFlag) Value() string {
	if !isEnvParsed {
		return s.defaultValue
	}
	return *s.value
}

func (s StringFlag) valueString() string {
	return s.Value()
}

// IntFlag represents flag with int value.
type IntFlag struct {
	*cliAndEnvFlag
	defaultValue int
	value        *int
}

// NewIntFlag is a constructor of IntFlag struct.
func NewIntFlag(flagName string, description string, defaultValue int) *IntFlag {
	if flagDef, ok := lookup(flagName, func(f *IntFlag) bool { return f.defaultValue == defaultValue }); ok {
		return flagDef
	}

	flagDef := &IntFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, fmt.Sprintf("%d", defaultValue)),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Int()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (i IntFlag) Value() int {
	if !isEnvParsed {
		return i.defaultValue
	}
	return *i.value
}

func (i IntFlag) valueString() string {
	return fmt.Sprintf("%d", i.Value())
}

// BoolFlag represents flag with bool value.
type BoolFlag struct {
	*cliAndEnvFlag
	defaultValue bool
	value        *bool
}

// NewBoolFlag is a constructor of BoolFlag struct.
func NewBoolFlag(flagName string, description string, defaultValue bool) *BoolFlag {
	if flagDef, ok := lookup(flagName, func(f *BoolFlag) bool { return f.defaultValue == defaultValue }); ok {
		return flagDef
	}

	flagDef := &BoolFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, fmt.Sprintf("%v", defaultValue)),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Bool()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (b BoolFlag) Value() bool {
	if !isEnvParsed {
		return b.defaultValue
	}
	return *b.value
}

func (b BoolFlag) valueString() string {
	return fmt.Sprintf("%v", b.Value())
}

// DurationFlag represents flag with duration value.
type DurationFlag struct {
	*cliAndEnvFlag
	defaultValue time.Duration
	value        *time.Duration
}

// NewDurationFlag is a constructor of DurationFlag struct.
func NewDurationFlag(flagName string, description string, defaultValue time.Duration) *DurationFlag {
	if flagDef, ok := lookup(flagName, func(f *DurationFlag) bool { return f.defaultValue == defaultValue }); ok {
		return flagDef
	}

	flagDef := &DurationFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, defaultValue.String()),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Duration()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (d DurationFlag) Value() time.Duration {
	if !isEnvParsed {
		return d.defaultValue
	}
	return *d.value
}

func (d DurationFlag) valueString() string {
	return d.Value().String()
}

// SliceFlag represents flag with slice value.
type SliceFlag struct {
	*cliAndEnvFlag
	defaultValue []string
	value        *[]string
}

// NewSliceFlag is a constructor of SliceFlag struct.
func NewSliceFlag(flagName string, description string, elemsInDefaultSlice ...string) *SliceFlag {
	if flagDef, ok := lookup(flagName, func(f *SliceFlag) bool { return strings.Join(f.defaultValue, stringListDelimiter) == strings.Join(elemsInDefaultSlice, stringListDelimiter) }); ok {
		return flagDef
	}

	if elemsInDefaultSlice == nil {
		elemsInDefaultSlice = []string{}
	}
	flagDef := &SliceFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, strings.Join(elemsInDefaultSlice, stringListDelimiter)),
		defaultValue:  elemsInDefaultSlice,
	}
	flagDef.value = StringList(flagDef)
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (s SliceFlag) Value() []string {
	if !isEnvParsed || len(*s.value) == 0 {
		return s.defaultValue
	}
	return *s.value
}

func (s SliceFlag) valueString() string {
	return strings.Join(s.Value(), stringListDelimiter)
}
