// Copyright 2025 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package datum

import "strings"

// Tuple is a fixed-length row of datums, positionally aligned to a
// Schema/Domain pair.
type Tuple []Datum

// Project returns the datums at the given column positions as a fresh
// tuple.
func (t Tuple) Project(cols []int) Tuple {
	out := make(Tuple, len(cols))
	for i, c := range cols {
		out[i] = t[c]
	}
	return out
}

// Concat returns t ++ other as a fresh tuple.
func (t Tuple) Concat(other Tuple) Tuple {
	out := make(Tuple, 0, len(t)+len(other))
	out = append(out, t...)
	out = append(out, other...)
	return out
}

// Equal reports whether two tuples hold the same datums position by
// position. Tuples of different arity are unequal; positions holding
// datums of different types are unequal (rather than a panic).
func (t Tuple) Equal(other Tuple) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i].Type() != other[i].Type() {
			return false
		}
		if t[i].Compare(other[i]) != 0 {
			return false
		}
	}
	return true
}

// keySep separates datum encodings inside a KeyString. The unit
// separator does not occur in the supported literal syntax.
const keySep = "\x1f"

// KeyString encodes the tuple as a map key.
func (t Tuple) KeyString() string {
	var sb strings.Builder
	for i, d := range t {
		if i > 0 {
			sb.WriteString(keySep)
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}

// Strings renders each datum for display.
func (t Tuple) Strings() []string {
	out := make([]string, len(t))
	for i, d := range t {
		out[i] = d.String()
	}
	return out
}
