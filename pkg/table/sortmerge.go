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
	"sort"

	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/cockroachdb/trellis/pkg/util/log"
)

// SortMergeJoin equi-joins the receiver's attr against other's refAttr by
// sorting copies of both tuple slices on the join attribute and merging,
// O(n log n + m log m). Runs of equal keys on both sides are replayed as
// a cross product, so duplicate keys are handled correctly. The attribute
// domains must fold to the same datum type; a mismatch is a flaw yielding
// an empty result.
func (t *Table) SortMergeJoin(attr, refAttr string, other *Table) *Table {
	schema, domain, key := t.concatMeta(other)
	out := t.derive(schema, domain, key)

	lp := t.schema.IndexOf(attr)
	rp := other.schema.IndexOf(refAttr)
	switch {
	case lp < 0:
		log.Flaw(t.ctx(), "SortMergeJoin", "unknown attribute %q", attr)
		return out
	case rp < 0:
		log.Flaw(t.ctx(), "SortMergeJoin", "unknown attribute %q in %s", refAttr, other.name)
		return out
	case foldTag(t.domain[lp]) != foldTag(other.domain[rp]):
		log.Flaw(t.ctx(), "SortMergeJoin", "incomparable domains %c and %c",
			t.domain[lp], other.domain[rp])
		return out
	}

	ls := append([]datum.Tuple(nil), t.tuples...)
	rs := append([]datum.Tuple(nil), other.tuples...)
	sort.SliceStable(ls, func(i, j int) bool { return ls[i][lp].Compare(ls[j][lp]) < 0 })
	sort.SliceStable(rs, func(i, j int) bool { return rs[i][rp].Compare(rs[j][rp]) < 0 })

	i, j := 0, 0
	for i < len(ls) && j < len(rs) {
		c := ls[i][lp].Compare(rs[j][rp])
		if c < 0 {
			i++
			continue
		}
		if c > 0 {
			j++
			continue
		}
		// Matching run: find the extent of the equal key on both sides and
		// emit the cross product.
		i2 := i + 1
		for i2 < len(ls) && ls[i2][lp].Compare(ls[i][lp]) == 0 {
			i2++
		}
		j2 := j + 1
		for j2 < len(rs) && rs[j2][rp].Compare(rs[j][rp]) == 0 {
			j2++
		}
		for a := i; a < i2; a++ {
			for b := j; b < j2; b++ {
				out.tuples = append(out.tuples, ls[a].Concat(rs[b]))
			}
		}
		i, j = i2, j2
	}
	return out
}
