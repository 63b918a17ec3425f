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
	"github.com/cockroachdb/trellis/pkg/util/log"
)

// incompatible reports whether the two tables cannot participate in a set
// operation: the schemas or domains differ. On incompatibility every set
// operator degrades to a no-op returning the receiver unchanged.
func (t *Table) incompatible(method string, other *Table) bool {
	if !t.schema.Equal(other.schema) {
		log.Flaw(t.ctx(), method, "incompatible schemas: %s vs %s", t.schema, other.schema)
		return true
	}
	if !t.domain.Equal(other.domain) {
		log.Flaw(t.ctx(), method, "incompatible domains: %s vs %s", t.domain, other.domain)
		return true
	}
	return false
}

// Union returns the multiset union of the two tables (UNION ALL:
// duplicates are not removed; callers rebuild an index to deduplicate).
// Incompatible operands are a flaw and the receiver is returned
// unchanged.
func (t *Table) Union(other *Table) *Table {
	if t.incompatible("Union", other) {
		return t
	}
	out := t.derive(t.schema, t.domain, t.key)
	out.tuples = append(out.tuples, t.tuples...)
	out.tuples = append(out.tuples, other.tuples...)
	return out
}

// Minus returns the tuples of the receiver that do not appear in other,
// testing membership by full-tuple equality (every copy of a matching
// tuple is removed). Uses other's unique index when built, otherwise an
// O(n*m) scan.
func (t *Table) Minus(other *Table) *Table {
	if t.incompatible("Minus", other) {
		return t
	}
	out := t.derive(t.schema, t.domain, t.key)
	for _, tup := range t.tuples {
		if !other.contains(tup) {
			out.tuples = append(out.tuples, tup)
		}
	}
	return out
}

// Intersect returns the tuples of the receiver that also appear in other,
// testing membership by full-tuple equality. Uses other's unique index
// when built, otherwise an O(n*m) scan.
func (t *Table) Intersect(other *Table) *Table {
	if t.incompatible("Intersect", other) {
		return t
	}
	out := t.derive(t.schema, t.domain, t.key)
	for _, tup := range t.tuples {
		if other.contains(tup) {
			out.tuples = append(out.tuples, tup)
		}
	}
	return out
}
