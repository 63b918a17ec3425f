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
)

// Project returns a new table restricted to the attributes named in
// attrsCSV (in the given order). The result keeps the receiver's key if
// the key survives the projection; otherwise projection may have
// destroyed key uniqueness and the key is widened to the full projected
// schema. An unknown attribute is a recoverable flaw yielding an empty
// projection onto the receiver's schema.
func (t *Table) Project(attrsCSV string) *Table {
	target, err := datum.ParseSchema(attrsCSV)
	if err == nil {
		_, err = t.schema.Positions(target)
	}
	if err != nil {
		log.Flaw(t.ctx(), "Project", "%v", err)
		return t.derive(t.schema, t.domain, t.key)
	}
	cols, _ := t.schema.Positions(target)

	key := t.key
	if !t.key.SubsetOf(target) {
		key = target
	}
	out := t.derive(target, t.domain.Project(cols), key)
	for _, tup := range t.tuples {
		out.tuples = append(out.tuples, tup.Project(cols))
	}
	return out
}
