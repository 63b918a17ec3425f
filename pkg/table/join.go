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
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/cockroachdb/trellis/pkg/util/log"
)

// Disambiguate renames the attributes of right that collide with an
// attribute of left by appending "_2" (repeatedly, until unique). It
// returns the renamed right schema and the old-name -> new-name mapping
// for the attributes that changed.
func Disambiguate(left, right datum.Schema) (datum.Schema, map[string]string) {
	taken := make(map[string]struct{}, len(left)+len(right))
	for _, a := range left {
		taken[a] = struct{}{}
	}
	renamed := make(map[string]string)
	out := make(datum.Schema, 0, len(right))
	for _, a := range right {
		name := a
		for {
			if _, clash := taken[name]; !clash {
				break
			}
			name += "_2"
		}
		if name != a {
			renamed[a] = name
		}
		taken[name] = struct{}{}
		out = append(out, name)
	}
	return out, renamed
}

// concatMeta computes the schema, domain and key of an equi-join result:
// the left schema concatenated with the disambiguated right schema, and
// the concatenation of both keys (right key attributes under their
// disambiguated names).
func (t *Table) concatMeta(other *Table) (datum.Schema, datum.Domain, datum.Schema) {
	rsch, renamed := Disambiguate(t.schema, other.schema)
	schema := t.schema.Concat(rsch)
	domain := t.domain.Concat(other.domain)
	key := make(datum.Schema, 0, len(t.key)+len(other.key))
	key = append(key, t.key...)
	for _, a := range other.key {
		if n, ok := renamed[a]; ok {
			a = n
		}
		key = append(key, a)
	}
	return schema, domain, key
}

// Join is the nested-loop join: for every pair of tuples satisfying pred
// it emits the concatenation of the two (right attributes disambiguated).
// O(n*m), but the only variant supporting arbitrary predicates,
// theta-joins and self-joins.
func (t *Table) Join(other *Table, pred func(l, r datum.Tuple) bool) *Table {
	schema, domain, key := t.concatMeta(other)
	out := t.derive(schema, domain, key)
	for _, l := range t.tuples {
		for _, r := range other.tuples {
			if pred(l, r) {
				out.tuples = append(out.tuples, l.Concat(r))
			}
		}
	}
	return out
}

// fkPositions resolves a (possibly composite) foreign key against the
// receiver's schema and checks its arity against other's primary key.
func (t *Table) fkPositions(method, fkCSV string, other *Table) ([]int, bool) {
	fk, err := datum.ParseSchema(fkCSV)
	if err == nil && len(fk) != len(other.key) {
		err = errors.Newf("foreign key %s has %d attributes, %s key %s has %d",
			fkCSV, len(fk), other.name, other.key, len(other.key))
	}
	var pos []int
	if err == nil {
		pos, err = t.schema.Positions(fk)
	}
	if err != nil {
		log.Flaw(t.ctx(), method, "%v", err)
		return nil, false
	}
	return pos, true
}

// EquiJoin joins the receiver's foreign key (comma-separated attribute
// list, positionally matched against other's primary key) by a nested
// loop. A malformed foreign key is a flaw yielding an empty result.
func (t *Table) EquiJoin(fkCSV string, other *Table) *Table {
	fkPos, ok := t.fkPositions("EquiJoin", fkCSV, other)
	if !ok {
		schema, domain, key := t.concatMeta(other)
		return t.derive(schema, domain, key)
	}
	return t.Join(other, func(l, r datum.Tuple) bool {
		return l.Project(fkPos).KeyString() == r.Project(other.keyPos).KeyString()
	})
}

// IndexJoin joins the receiver's foreign key against other's primary key
// through other's unique index, building the index first if it has not
// been built. Each left tuple probes in O(1) amortized.
func (t *Table) IndexJoin(fkCSV string, other *Table) *Table {
	schema, domain, key := t.concatMeta(other)
	out := t.derive(schema, domain, key)
	fkPos, ok := t.fkPositions("IndexJoin", fkCSV, other)
	if !ok {
		return out
	}
	if other.istate == indexUnbuilt {
		other.BuildIndex()
	}
	for _, l := range t.tuples {
		if r, found := other.lookupUnique(l.Project(fkPos).KeyString()); found {
			out.tuples = append(out.tuples, l.Concat(r))
		}
	}
	return out
}

// MIndexJoin joins the receiver's attribute against other's refAttr
// through other's non-unique secondary index, (re)building it on refAttr
// if needed. Each probe yields zero or more matches.
func (t *Table) MIndexJoin(attr, refAttr string, other *Table) *Table {
	schema, domain, key := t.concatMeta(other)
	out := t.derive(schema, domain, key)
	pos := t.schema.IndexOf(attr)
	if pos < 0 {
		log.Flaw(t.ctx(), "MIndexJoin", "unknown attribute %q", attr)
		return out
	}
	if other.mstate == indexUnbuilt || other.mattr != refAttr {
		if err := other.BuildMIndex(refAttr); err != nil {
			log.Flaw(t.ctx(), "MIndexJoin", "%v", err)
			return out
		}
	}
	for _, l := range t.tuples {
		for _, r := range other.mindex[l[pos].String()] {
			out.tuples = append(out.tuples, l.Concat(r))
		}
	}
	return out
}

// NaturalJoin joins on the set of attribute names common to both schemas.
// The result schema is the receiver's schema followed by other's
// remaining attributes. If the common attributes are a subset of either
// side's key the narrower such key is inherited; otherwise the result key
// is the concatenation of both keys. Disjoint schemas degenerate to the
// cartesian product.
func (t *Table) NaturalJoin(other *Table) *Table {
	common := t.schema.Intersect(other.schema)
	rest := other.schema.Minus(common)
	schema := t.schema.Concat(rest)
	restPos, _ := other.schema.Positions(rest)
	domain := t.domain.Concat(other.domain.Project(restPos))

	var key datum.Schema
	switch {
	case common.SubsetOf(t.key) && common.SubsetOf(other.key):
		key = t.key
		if len(other.key) < len(t.key) {
			key = other.key
		}
	case common.SubsetOf(t.key):
		key = t.key
	case common.SubsetOf(other.key):
		key = other.key
	default:
		key = t.key.Concat(other.key.Minus(t.key))
	}
	// A key attribute dropped by the projection onto the result schema
	// cannot serve; widen to the receiver's key in that case.
	if !key.SubsetOf(schema) {
		key = t.key
	}

	out := t.derive(schema, domain, key)
	lPos, _ := t.schema.Positions(common)
	rPos, _ := other.schema.Positions(common)
	for _, l := range t.tuples {
		for _, r := range other.tuples {
			if l.Project(lPos).KeyString() == r.Project(rPos).KeyString() {
				out.tuples = append(out.tuples, l.Concat(r.Project(restPos)))
			}
		}
	}
	return out
}
