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

// Package datum implements the typed value layer of the engine: tagged
// scalar values, per-column domain tags, schemas and tuples.
package datum

import (
	"fmt"
	"strconv"
	"time"
)

// A Datum holds either a float64, an int64, a string or a time.Time.
type Datum interface {
	fmt.Stringer
	Type() string
	// Compare returns -1 if the receiver is less than other, 0 if the
	// receiver is equal to other and +1 if the receiver is greater than
	// other. Comparing datums of different types is a programming error
	// and panics.
	Compare(other Datum) int
}

// DFloat is the float Datum (domain tag D).
type DFloat float64

// Type implements the Datum interface.
func (d DFloat) Type() string {
	return "float"
}

// Compare implements the Datum interface.
func (d DFloat) Compare(other Datum) int {
	v, ok := other.(DFloat)
	if !ok {
		panic(fmt.Sprintf("unsupported comparison: %s to %s", d.Type(), other.Type()))
	}
	if d < v {
		return -1
	}
	if d > v {
		return 1
	}
	return 0
}

func (d DFloat) String() string {
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}

// DInt is the integer Datum (domain tags I and L).
type DInt int64

// Type implements the Datum interface.
func (d DInt) Type() string {
	return "int"
}

// Compare implements the Datum interface.
func (d DInt) Compare(other Datum) int {
	v, ok := other.(DInt)
	if !ok {
		panic(fmt.Sprintf("unsupported comparison: %s to %s", d.Type(), other.Type()))
	}
	if d < v {
		return -1
	}
	if d > v {
		return 1
	}
	return 0
}

func (d DInt) String() string {
	return strconv.FormatInt(int64(d), 10)
}

// DString is the string Datum (domain tags S and X).
type DString string

// Type implements the Datum interface.
func (d DString) Type() string {
	return "string"
}

// Compare implements the Datum interface.
func (d DString) Compare(other Datum) int {
	v, ok := other.(DString)
	if !ok {
		panic(fmt.Sprintf("unsupported comparison: %s to %s", d.Type(), other.Type()))
	}
	if d < v {
		return -1
	}
	if d > v {
		return 1
	}
	return 0
}

func (d DString) String() string {
	return string(d)
}

// DTime is the time Datum (domain tag T).
type DTime struct {
	time.Time
}

// MakeDTime constructs a DTime, normalized to UTC so that equal instants
// compare and render identically regardless of source location.
func MakeDTime(t time.Time) DTime {
	return DTime{Time: t.UTC()}
}

// Type implements the Datum interface.
func (d DTime) Type() string {
	return "time"
}

// Compare implements the Datum interface.
func (d DTime) Compare(other Datum) int {
	v, ok := other.(DTime)
	if !ok {
		panic(fmt.Sprintf("unsupported comparison: %s to %s", d.Type(), other.Type()))
	}
	if d.Before(v.Time) {
		return -1
	}
	if v.Before(d.Time) {
		return 1
	}
	return 0
}

func (d DTime) String() string {
	return d.UTC().Format(time.RFC3339)
}

// TypeForTag reports whether d has the Go representation that tag
// declares.
func TypeForTag(tag Tag, d Datum) bool {
	switch tag {
	case Float:
		_, ok := d.(DFloat)
		return ok
	case Int, Long:
		_, ok := d.(DInt)
		return ok
	case Str, Text:
		_, ok := d.(DString)
		return ok
	case Time:
		_, ok := d.(DTime)
		return ok
	}
	return false
}
