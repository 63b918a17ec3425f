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
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Tag is a single-character column type tag. Several tags fold onto one
// Datum representation: I and L both store as DInt, S and X both as
// DString. The tag is retained per column so that parsing and rendering
// can still distinguish them (X renders wider).
type Tag byte

// The legal domain tags.
const (
	Float Tag = 'D' // float64
	Int   Tag = 'I' // int64
	Long  Tag = 'L' // int64
	Str   Tag = 'S' // string
	Text  Tag = 'X' // string, rendered wide
	Time  Tag = 'T' // time.Time
)

// Valid reports whether t is one of the legal domain tags.
func (t Tag) Valid() bool {
	switch t {
	case Float, Int, Long, Str, Text, Time:
		return true
	}
	return false
}

// Domain is the ordered sequence of column type tags, parallel to a
// Schema.
type Domain []Tag

// ParseDomain parses a comma-separated list of single-character tags,
// e.g. "S,I,D".
func ParseDomain(csv string) (Domain, error) {
	parts := strings.Split(csv, ",")
	d := make(Domain, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) != 1 {
			return nil, errors.Newf("domain tag %q is not a single character", p)
		}
		t := Tag(p[0])
		if !t.Valid() {
			return nil, errors.Newf("unknown domain tag %q", p)
		}
		d = append(d, t)
	}
	return d, nil
}

func (d Domain) String() string {
	var sb strings.Builder
	for i, t := range d {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(byte(t))
	}
	return sb.String()
}

// Project returns the domain restricted to the given column positions.
func (d Domain) Project(cols []int) Domain {
	out := make(Domain, len(cols))
	for i, c := range cols {
		out[i] = d[c]
	}
	return out
}

// Concat returns the concatenation of two domains.
func (d Domain) Concat(other Domain) Domain {
	out := make(Domain, 0, len(d)+len(other))
	out = append(out, d...)
	out = append(out, other...)
	return out
}

// Equal reports whether two domains are identical tag for tag.
func (d Domain) Equal(other Domain) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i] != other[i] {
			return false
		}
	}
	return true
}

// timeFormats are tried in order when parsing a T literal.
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseLiteral converts the textual literal s into the Datum type
// declared by tag. String literals may carry single or double quotes,
// which are stripped.
func ParseLiteral(tag Tag, s string) (Datum, error) {
	switch tag {
	case Float:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %q as D", s)
		}
		return DFloat(f), nil
	case Int, Long:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %q as %c", s, tag)
		}
		return DInt(i), nil
	case Str, Text:
		return DString(trimQuotes(s)), nil
	case Time:
		s = trimQuotes(s)
		for _, f := range timeFormats {
			if tm, err := time.Parse(f, s); err == nil {
				return MakeDTime(tm), nil
			}
		}
		return nil, errors.Newf("parsing %q as T", s)
	}
	return nil, errors.Newf("unknown domain tag %q", string(tag))
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
