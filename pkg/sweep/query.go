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
	"strings"

	"github.com/pkg/errors"
)

// QuerySeparator joins words of a single query.
const QuerySeparator = "+"

// ErrEmptyDictionary is returned when there are no words to build queries from.
var ErrEmptyDictionary = errors.New("dictionary is empty")

// BuildQueries returns one query per dictionary word, where query i is made
// of the first i+1 words joined with QuerySeparator.
func BuildQueries(dictionary []string) ([]string, error) {
	if len(dictionary) == 0 {
		return nil, ErrEmptyDictionary
	}

	queries := make([]string, 0, len(dictionary))
	for i := range dictionary {
		queries = append(queries, strings.Join(dictionary[:i+1], QuerySeparator))
	}
	return queries, nil
}
