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

// Package graph implements the property-graph extension of the engine:
// tables whose rows are vertices carrying labeled outgoing edge sets, a
// schema-level edge-type registry with cardinality constraints, and a
// graph algebra (one-hop expansion, edge-join, edge-list extraction) that
// exploits index-free adjacency instead of re-joining by key. A typed
// single-inheritance hierarchy over graph tables lives in typed.go.
package graph

import (
	"context"

	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/cockroachdb/trellis/pkg/table"
	"github.com/cockroachdb/trellis/pkg/util/log"
	"golang.org/x/exp/maps"
)

// EdgeType is the schema-level declaration of an edge label: the table
// its edges may point to, and whether the relationship is many-to-one
// (Unique, at most one outgoing edge per source vertex, analogous to a
// foreign key) or many-to-many.
type EdgeType struct {
	Target *Table
	Unique bool
}

// Table is a relational table whose rows are vertices. The embedded
// table.Table holds one tuple per vertex, so the relational operators
// remain available; the graph operators below work on the vertices and
// their adjacency directly.
type Table struct {
	*table.Table
	vertices  []*Vertex
	edgeTypes map[string]EdgeType
}

// New constructs an empty graph table. The factory surface matches
// table.New.
func New(name, schemaCSV, domainCSV, keyCSV string, opts ...table.Option) (*Table, error) {
	t, err := table.New(name, schemaCSV, domainCSV, keyCSV, opts...)
	if err != nil {
		return nil, err
	}
	return &Table{
		Table:     t,
		edgeTypes: make(map[string]EdgeType),
	}, nil
}

// derive allocates an empty graph table around a derived relational
// table.
func (g *Table) derive(schema datum.Schema, domain datum.Domain, key datum.Schema) *Table {
	return &Table{
		Table:     g.Table.Derive(schema, domain, key),
		edgeTypes: make(map[string]EdgeType),
	}
}

func (g *Table) ctx() context.Context {
	return log.WithTable(context.Background(), g.Name())
}

// Vertices returns the vertex collection. The slice is the table's own
// storage; callers must not mutate it.
func (g *Table) Vertices() []*Vertex { return g.vertices }

// AddV wraps each tuple in a vertex and appends it, mirroring the tuple
// into the embedded relational table. Tuples rejected by the relational
// type check (a flaw, logged there) produce no vertex. It returns the
// created vertices, aligned with the accepted tuples.
func (g *Table) AddV(tups ...datum.Tuple) []*Vertex {
	out := make([]*Vertex, 0, len(tups))
	for _, tup := range tups {
		if !g.Add(tup) {
			continue
		}
		v := NewVertex(tup)
		g.vertices = append(g.vertices, v)
		out = append(out, v)
	}
	return out
}

// addVertex appends an existing vertex (sharing it, not copying),
// mirroring its tuple.
func (g *Table) addVertex(v *Vertex) {
	if !g.Add(v.Tuple) {
		return
	}
	g.vertices = append(g.vertices, v)
}

// EdgeTypes returns the edge-type registry.
func (g *Table) EdgeTypes() map[string]EdgeType { return g.edgeTypes }

// AddEdgeType declares that edges labeled label lead from this table to
// target; unique makes the relationship many-to-one (at most one
// outgoing edge per source vertex). The declaration is symmetric: target
// is given a reverse edge-type under the same label, many-to-many,
// pointing back at the receiver.
func (g *Table) AddEdgeType(label string, target *Table, unique bool) {
	g.edgeTypes[label] = EdgeType{Target: target, Unique: unique}
	target.edgeTypes[label] = EdgeType{Target: g}
}

// checkEdge validates an insertion under label from the given source
// vertex. Violations are recoverable flaws: logged, and the edge is
// rejected.
func (g *Table) checkEdge(method, label string, from *Vertex) bool {
	et, ok := g.edgeTypes[label]
	if !ok {
		log.Flaw(g.ctx(), method, "edge label %q not registered as an edge-type", label)
		return false
	}
	if et.Unique && from.Degree(label) > 0 {
		log.Flaw(g.ctx(), method,
			"unique edge-type %q already has an edge from this vertex", label)
		return false
	}
	return true
}

// AddE inserts an edge from one vertex of this table to another vertex
// under label and reports whether it was accepted. An unregistered label
// or a second edge under a unique label from the same source are flaws.
func (g *Table) AddE(label string, from, to *Vertex) bool {
	if !g.checkEdge("AddE", label, from) {
		return false
	}
	from.addEdge(label, &Edge{From: from, To: to})
	return true
}

// AddEdge inserts a caller-constructed edge (e.g. one carrying an
// attribute tuple) under label.
func (g *Table) AddEdge(label string, e *Edge) bool {
	if !g.checkEdge("AddEdge", label, e.From) {
		return false
	}
	e.From.addEdge(label, e)
	return true
}

// AddEs inserts a batch of edges under label, returning the number
// accepted.
func (g *Table) AddEs(label string, es ...*Edge) int {
	n := 0
	for _, e := range es {
		if g.AddEdge(label, e) {
			n++
		}
	}
	return n
}

// Add2E inserts the forward edge from -> to under label on the receiver
// and, in the same call, the reverse edge to -> from under backLabel on
// ref. Both insertions are validated; a rejected side is a flaw and
// contributes nothing.
func (g *Table) Add2E(label string, from *Vertex, backLabel string, to *Vertex, ref *Table) bool {
	ok := g.AddE(label, from, to)
	if !ref.AddE(backLabel, to, from) {
		ok = false
	}
	return ok
}

// Select returns a graph table holding the vertices whose tuples satisfy
// pred. Vertices are shared with the receiver (their adjacency comes
// along), not copied.
func (g *Table) Select(pred func(datum.Tuple) bool) *Table {
	out := g.derive(g.Schema(), g.Domain(), g.Key())
	out.edgeTypes = maps.Clone(g.edgeTypes)
	for _, v := range g.vertices {
		if pred(v.Tuple) {
			out.addVertex(v)
		}
	}
	return out
}

// SelectWhere is Select with the 3-token condition mini-language; a
// malformed condition degrades to the unfiltered vertex set, as in the
// relational layer.
func (g *Table) SelectWhere(expr string) *Table {
	pred, err := g.Predicate(expr)
	if err != nil {
		log.Flaw(g.ctx(), "SelectWhere", "%v", err)
		pred = func(datum.Tuple) bool { return true }
	}
	return g.Select(pred)
}

// Project projects each vertex tuple onto the attributes named in
// attrsCSV, with the relational key-widening rule. The projected vertices
// are fresh and carry no edges (adjacency is not meaningful once the
// tuple no longer matches the schema the edges were declared against).
func (g *Table) Project(attrsCSV string) *Table {
	rel := g.Table.Project(attrsCSV)
	out := &Table{Table: rel, edgeTypes: make(map[string]EdgeType)}
	for _, tup := range rel.Rows() {
		out.vertices = append(out.vertices, NewVertex(tup))
	}
	return out
}
