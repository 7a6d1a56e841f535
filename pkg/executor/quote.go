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

package executor

import "strings"

// shellSpecialChars are characters which make sh interpret an argument.
const shellSpecialChars = " \t\n\"'\\$`|&;<>()*?[]{}!#~"

// Quote returns arg in a form which sh passes through verbatim.
func Quote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, shellSpecialChars) {
		return arg
	}
	return "'" + strings.Replace(arg, "'", `'\''`, -1) + "'"
}

// JoinCommand builds a command line from binary path and arguments, quoting
// every element that needs it.
func JoinCommand(path string, args ...string) string {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, Quote(path))
	for _, arg := range args {
		quoted = append(quoted, Quote(arg))
	}
	return strings.Join(quoted, " ")
}
