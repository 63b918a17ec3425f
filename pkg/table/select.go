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

package table

import (
	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/cockroachdb/trellis/pkg/util/log"
	"github.com/google/btree"
)

// Select returns a new table, with the receiver's schema, domain and key,
// holding the tuples satisfying pred.
func (t *Table) Select(pred func(datum.Tuple) bool) *Table {
	out := t.derive(t.schema, t.domain, t.key)
	for _, tup := range t.tuples {
		if pred(tup) {
			out.tuples = append(out.tuples, tup)
		}
	}
	return out
}

// SelectWhere evaluates the 3-token condition mini-language
// "<attr> <op> <attr-or-literal>", op in {==, !=, <, <=, >, >=}. The
// literal is parsed per the left attribute's domain tag. A malformed
// condition is a recoverable flaw: it is logged and the UNFILTERED tuple
// set is returned so the pipeline stays alive.
//
// When an ordered index has been built on the tested attribute and the
// right side is a literal, range and equality comparisons are answered
// from the index (which, per the build-once contract, may be stale with
// respect to tuples added after BuildOrderedIndex).
func (t *Table) SelectWhere(expr string) *Table {
	c, err := t.parseCond(expr)
	if err != nil {
		log.Flaw(t.ctx(), "SelectWhere", "%v", err)
		out := t.derive(t.schema, t.domain, t.key)
		out.tuples = append(out.tuples, t.tuples...)
		return out
	}
	if c.rightPos < 0 && t.ostate == indexBuilt && t.oattr == t.schema[c.leftPos] && c.op != "!=" {
		return t.selectOrdered(c)
	}
	return t.Select(c.eval)
}

// selectOrdered answers a literal comparison from the ordered index.
func (t *Table) selectOrdered(c cond) *Table {
	out := t.derive(t.schema, t.domain, t.key)
	pivot := &ordItem{d: c.lit}
	emit := func(it btree.Item) bool {
		out.tuples = append(out.tuples, it.(*ordItem).tups...)
		return true
	}
	switch c.op {
	case "==":
		if it := t.oindex.Get(pivot); it != nil {
			emit(it)
		}
	case "<":
		t.oindex.AscendLessThan(pivot, emit)
	case "<=":
		t.oindex.AscendLessThan(pivot, emit)
		if it := t.oindex.Get(pivot); it != nil {
			emit(it)
		}
	case ">=":
		t.oindex.AscendGreaterOrEqual(pivot, emit)
	case ">":
		t.oindex.AscendGreaterOrEqual(pivot, func(it btree.Item) bool {
			if it.(*ordItem).d.Compare(c.lit) == 0 {
				return true
			}
			return emit(it)
		})
	}
	return out
}
