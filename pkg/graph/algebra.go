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
	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/cockroachdb/trellis/pkg/table"
	"github.com/cockroachdb/trellis/pkg/util/log"
)

// vertexSet builds a membership set over a table's vertices. The graph
// operators restrict traversal to vertices present in the ref argument,
// which is typically a filtered derivative of the registered target (its
// vertices are shared with the original, so pointer identity holds).
func vertexSet(g *Table) map[*Vertex]struct{} {
	s := make(map[*Vertex]struct{}, len(g.vertices))
	for _, v := range g.vertices {
		s[v] = struct{}{}
	}
	return s
}

// combinedMeta is the concatenated, disambiguated metadata shared by the
// binary graph operators.
func (g *Table) combinedMeta(ref *Table) (datum.Schema, datum.Domain, datum.Schema) {
	rsch, renamed := table.Disambiguate(g.Schema(), ref.Schema())
	schema := g.Schema().Concat(rsch)
	domain := g.Domain().Concat(ref.Domain())
	key := make(datum.Schema, 0, len(g.Key())+len(ref.Key()))
	key = append(key, g.Key()...)
	for _, a := range ref.Key() {
		if n, ok := renamed[a]; ok {
			a = n
		}
		key = append(key, a)
	}
	return schema, domain, key
}

// Expand is a one-hop projection-join: for every vertex u and every
// neighbor v reached via label that is also present in ref, it emits a
// fresh vertex whose tuple is the concatenation of u's and v's tuples
// projected onto the attributes named in attrsCSV (resolved against the
// concatenated, disambiguated schema). No new edges are created; the
// operator exploits the existing adjacency instead of re-joining by key.
// An unregistered label or an unresolvable attribute list is a flaw
// yielding an empty result.
func (g *Table) Expand(attrsCSV, label string, ref *Table) *Table {
	schema, domain, _ := g.combinedMeta(ref)

	attrs, err := datum.ParseSchema(attrsCSV)
	var cols []int
	if err == nil {
		cols, err = schema.Positions(attrs)
	}
	if err != nil {
		log.Flaw(g.ctx(), "Expand", "%v", err)
		return g.derive(g.Schema(), g.Domain(), g.Key())
	}
	out := g.derive(attrs, domain.Project(cols), attrs)
	if _, ok := g.edgeTypes[label]; !ok {
		log.Flaw(g.ctx(), "Expand", "edge label %q not registered as an edge-type", label)
		return out
	}

	members := vertexSet(ref)
	for _, u := range g.vertices {
		for _, v := range u.Neighbors(label) {
			if _, ok := members[v]; !ok {
				continue
			}
			out.AddV(u.Tuple.Concat(v.Tuple).Project(cols))
		}
	}
	return out
}

// EJoin is the graph analogue of an equi-join: for every adjacent pair
// (u, v) under label with v present in ref, it emits a merged vertex
// whose tuple is the concatenation of the endpoints' tuples, and rewires
// adjacency onto the merged vertex: every outgoing edge of u except those
// under label, and every outgoing edge of v except those under backLabel.
// The preserved adjacency lets ejoins chain across multiple hops without
// re-resolving by key. An unregistered label is a flaw yielding an empty
// result.
func (g *Table) EJoin(label string, ref *Table, backLabel string) *Table {
	schema, domain, key := g.combinedMeta(ref)
	out := g.derive(schema, domain, key)
	if _, ok := g.edgeTypes[label]; !ok {
		log.Flaw(g.ctx(), "EJoin", "edge label %q not registered as an edge-type", label)
		return out
	}

	// The merged table can still traverse the labels of both inputs,
	// minus the two that were consumed by the join.
	for lab, et := range g.edgeTypes {
		if lab != label {
			out.edgeTypes[lab] = et
		}
	}
	for lab, et := range ref.edgeTypes {
		if lab == backLabel {
			continue
		}
		if _, dup := out.edgeTypes[lab]; !dup {
			out.edgeTypes[lab] = et
		}
	}

	members := vertexSet(ref)
	for _, u := range g.vertices {
		for _, e := range u.Edges(label) {
			v := e.To
			if _, ok := members[v]; !ok {
				continue
			}
			w := NewVertex(u.Tuple.Concat(v.Tuple))
			for _, lab := range u.Labels() {
				if lab == label {
					continue
				}
				for _, ue := range u.Edges(lab) {
					w.addEdge(lab, &Edge{From: w, To: ue.To, Tuple: ue.Tuple})
				}
			}
			for _, lab := range v.Labels() {
				if lab == backLabel {
					continue
				}
				for _, ve := range v.Edges(lab) {
					w.addEdge(lab, &Edge{From: w, To: ve.To, Tuple: ve.Tuple})
				}
			}
			out.addVertex(w)
		}
	}
	return out
}

// EdgeTable extracts a pure edge-list relation for label: one row
// (pkey(u), pkey(v)) per adjacent pair (u, v) with v present in ref. It
// is the graph-to-relational bridge. An unregistered label is a flaw
// yielding an empty result.
func (g *Table) EdgeTable(label string, ref *Table) *table.Table {
	gKeyPos, _ := g.Schema().Positions(g.Key())
	rKeyPos, _ := ref.Schema().Positions(ref.Key())
	rKey, _ := table.Disambiguate(g.Key(), ref.Key())
	schema := g.Key().Concat(rKey)
	domain := g.Domain().Project(gKeyPos).Concat(ref.Domain().Project(rKeyPos))

	out := g.Table.Derive(schema, domain, schema)
	if _, ok := g.edgeTypes[label]; !ok {
		log.Flaw(g.ctx(), "EdgeTable", "edge label %q not registered as an edge-type", label)
		return out
	}

	members := vertexSet(ref)
	for _, u := range g.vertices {
		for _, v := range u.Neighbors(label) {
			if _, ok := members[v]; !ok {
				continue
			}
			out.Add(u.Tuple.Project(gKeyPos).Concat(v.Tuple.Project(rKeyPos)))
		}
	}
	return out
}
