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

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Schema is the ordered sequence of attribute names of a table. Names are
// unique within a schema.
type Schema []string

// ParseSchema parses a comma-separated list of attribute names.
func ParseSchema(csv string) (Schema, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, errors.New("empty schema")
	}
	parts := strings.Split(csv, ",")
	s := make(Schema, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, errors.Newf("empty attribute name in %q", csv)
		}
		if _, ok := seen[p]; ok {
			return nil, errors.Newf("duplicate attribute %q", p)
		}
		seen[p] = struct{}{}
		s = append(s, p)
	}
	return s, nil
}

func (s Schema) String() string {
	return strings.Join(s, ",")
}

// IndexOf returns the position of name in s, or -1.
func (s Schema) IndexOf(name string) int {
	for i, a := range s {
		if a == name {
			return i
		}
	}
	return -1
}

// Contains reports whether name is an attribute of s.
func (s Schema) Contains(name string) bool {
	return s.IndexOf(name) >= 0
}

// SubsetOf reports whether every attribute of s appears in other.
func (s Schema) SubsetOf(other Schema) bool {
	for _, a := range s {
		if !other.Contains(a) {
			return false
		}
	}
	return true
}

// Intersect returns the attributes of s that also appear in other,
// preserving s's order.
func (s Schema) Intersect(other Schema) Schema {
	var out Schema
	for _, a := range s {
		if other.Contains(a) {
			out = append(out, a)
		}
	}
	return out
}

// Minus returns the attributes of s not present in other, preserving
// s's order.
func (s Schema) Minus(other Schema) Schema {
	var out Schema
	for _, a := range s {
		if !other.Contains(a) {
			out = append(out, a)
		}
	}
	return out
}

// Positions maps each attribute of sub to its position in s. It returns
// an error naming the first attribute of sub that s lacks.
func (s Schema) Positions(sub Schema) ([]int, error) {
	out := make([]int, len(sub))
	for i, a := range sub {
		j := s.IndexOf(a)
		if j < 0 {
			return nil, errors.Newf("attribute %q not in schema %s", a, s)
		}
		out[i] = j
	}
	return out, nil
}

// Equal reports whether two schemas name the same attributes in the same
// order.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Concat returns a ++ b as a fresh schema. The caller is responsible for
// having disambiguated colliding names first.
func (s Schema) Concat(other Schema) Schema {
	out := make(Schema, 0, len(s)+len(other))
	out = append(out, s...)
	out = append(out, other...)
	return out
}
