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

package graph

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/trellis/pkg/table"
)

// TypedTable is a graph table participating in a single-inheritance type
// hierarchy: a non-root table's effective schema is its parent's schema
// concatenated with its own declared columns, and each table keeps
// back-references to its immediate subtypes. A query over a supertype can
// transparently include every subtype via All.
type TypedTable struct {
	*Table
	parent   *TypedTable
	subtypes []*TypedTable
}

// NewTyped constructs a typed graph table. With a nil parent it is a
// hierarchy root and behaves like a plain graph table. With a parent, the
// declared schemaCSV/domainCSV extend the parent's (the effective schema
// is the concatenation), the receiver is registered as a subtype of the
// parent, and an empty keyCSV inherits the parent's key.
func NewTyped(
	name, schemaCSV, domainCSV, keyCSV string, parent *TypedTable, opts ...table.Option,
) (*TypedTable, error) {
	if parent != nil {
		if strings.TrimSpace(schemaCSV) != "" {
			schemaCSV = parent.Schema().String() + "," + schemaCSV
			domainCSV = parent.Domain().String() + "," + domainCSV
		} else {
			schemaCSV = parent.Schema().String()
			domainCSV = parent.Domain().String()
		}
		if strings.TrimSpace(keyCSV) == "" {
			keyCSV = parent.Key().String()
		}
	} else if strings.TrimSpace(keyCSV) == "" {
		return nil, errors.Newf("typed table %s: root requires a key", name)
	}
	g, err := New(name, schemaCSV, domainCSV, keyCSV, opts...)
	if err != nil {
		return nil, err
	}
	t := &TypedTable{Table: g, parent: parent}
	if parent != nil {
		parent.subtypes = append(parent.subtypes, t)
	}
	return t, nil
}

// Parent returns the supertype, or nil for a root.
func (t *TypedTable) Parent() *TypedTable { return t.parent }

// Subtypes returns the immediate subtypes.
func (t *TypedTable) Subtypes() []*TypedTable { return t.subtypes }

// All aggregates the receiver and its subtype subtree, depth-first, down
// to the given number of levels below the receiver (0 means the receiver
// alone). Every node's vertices are projected onto the receiver's base
// schema, which is a prefix of each descendant's effective schema, so
// heterogeneous subtype columns are dropped; the projected vertex sets
// are unioned into one synthetic typed table. The projected vertices are
// fresh and carry no edges.
func (t *TypedTable) All(levels int) *TypedTable {
	base := t.Schema()
	out := &TypedTable{
		Table: t.derive(base, t.Domain(), t.Key()),
	}
	var walk func(n *TypedTable, depth int)
	walk = func(n *TypedTable, depth int) {
		cols, err := n.Schema().Positions(base)
		if err != nil {
			// Subtype schemas extend their parent's, so the base schema
			// resolves at every depth.
			panic(errors.NewAssertionErrorWithWrappedErrf(err, "subtype schema lost base prefix"))
		}
		for _, v := range n.vertices {
			out.AddV(v.Tuple.Project(cols))
		}
		if depth == levels {
			return
		}
		for _, sub := range n.subtypes {
			walk(sub, depth+1)
		}
	}
	walk(t, 0)
	return out
}
