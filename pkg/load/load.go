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

// Package load bulk-loads tables from delimited text. The first input
// line is a header and is skipped (attribute names come from the target
// table); each subsequent line yields one tuple, parsed per the table's
// domain tags. A line that fails to parse is a recoverable flaw: logged
// and skipped.
package load

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/cockroachdb/trellis/pkg/graph"
	"github.com/cockroachdb/trellis/pkg/table"
	"github.com/cockroachdb/trellis/pkg/util/log"
)

// Options configures a bulk load.
type Options struct {
	// Sep is the field separator; 0 means comma.
	Sep rune
	// Cols selects a subset of input columns by position, in target-schema
	// order. Nil takes every column in input order.
	Cols []int
}

func reader(r io.Reader, o Options) *csv.Reader {
	cr := csv.NewReader(r)
	if o.Sep != 0 {
		cr.Comma = o.Sep
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// parseRecord converts one delimited record to a tuple of t's domain.
func parseRecord(rec []string, dom datum.Domain, o Options) (datum.Tuple, error) {
	fields := rec
	if o.Cols != nil {
		fields = make([]string, len(o.Cols))
		for i, c := range o.Cols {
			if c < 0 || c >= len(rec) {
				return nil, errors.Newf("column position %d out of range (record has %d fields)", c, len(rec))
			}
			fields[i] = rec[c]
		}
	}
	if len(fields) != len(dom) {
		return nil, errors.Newf("record has %d fields, want %d", len(fields), len(dom))
	}
	tup := make(datum.Tuple, len(fields))
	for i, f := range fields {
		d, err := datum.ParseLiteral(dom[i], f)
		if err != nil {
			return nil, err
		}
		tup[i] = d
	}
	return tup, nil
}

// Tuples loads delimited text into t and returns the number of tuples
// accepted.
func Tuples(r io.Reader, t *table.Table, o Options) (int, error) {
	ctx := log.WithTable(context.Background(), t.Name())
	cr := reader(r, o)
	n := 0
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, errors.Wrapf(err, "reading line %d", line+1)
		}
		if line == 0 {
			// Header.
			continue
		}
		tup, err := parseRecord(rec, t.Domain(), o)
		if err != nil {
			log.Flaw(ctx, "load.Tuples", "line %d: %v", line+1, err)
			continue
		}
		if t.Add(tup) {
			n++
		}
	}
}

// Vertices loads delimited text into a graph table, one vertex per line,
// and returns the number of vertices created.
func Vertices(r io.Reader, g *graph.Table, o Options) (int, error) {
	ctx := log.WithTable(context.Background(), g.Name())
	cr := reader(r, o)
	n := 0
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, errors.Wrapf(err, "reading line %d", line+1)
		}
		if line == 0 {
			continue
		}
		tup, err := parseRecord(rec, g.Domain(), o)
		if err != nil {
			log.Flaw(ctx, "load.Vertices", "line %d: %v", line+1, err)
			continue
		}
		n += len(g.AddV(tup))
	}
}
