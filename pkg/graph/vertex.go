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
	"sort"

	"github.com/cockroachdb/trellis/pkg/datum"
	"golang.org/x/exp/maps"
)

// Edge connects two vertices under a label, optionally carrying its own
// attribute tuple. Edges do not own their endpoints: a vertex is owned by
// the vertex collection of exactly one graph table, while edges may
// reference vertices of other tables (cross-table adjacency). A vertex
// referenced from several tables must be treated as immutable once
// linked.
type Edge struct {
	From  *Vertex
	To    *Vertex
	Tuple datum.Tuple
}

// Vertex is a tuple plus its outgoing edges, keyed by edge label. Walking
// the edge map is index-free adjacency: reaching a neighbor needs no join
// or index probe because the vertex owns its outgoing edges.
type Vertex struct {
	Tuple datum.Tuple
	edges map[string][]*Edge
}

// NewVertex wraps a tuple in a vertex with no edges.
func NewVertex(tup datum.Tuple) *Vertex {
	return &Vertex{Tuple: tup}
}

func (v *Vertex) addEdge(label string, e *Edge) {
	if v.edges == nil {
		v.edges = make(map[string][]*Edge)
	}
	v.edges[label] = append(v.edges[label], e)
}

// Edges returns the outgoing edges under label.
func (v *Vertex) Edges(label string) []*Edge {
	return v.edges[label]
}

// Degree returns the number of outgoing edges under label.
func (v *Vertex) Degree(label string) int {
	return len(v.edges[label])
}

// Neighbors returns the bag of target vertices reachable via edges of the
// given label, in O(degree).
func (v *Vertex) Neighbors(label string) []*Vertex {
	es := v.edges[label]
	if len(es) == 0 {
		return nil
	}
	out := make([]*Vertex, len(es))
	for i, e := range es {
		out[i] = e.To
	}
	return out
}

// Labels returns the labels with at least one outgoing edge, sorted.
func (v *Vertex) Labels() []string {
	ls := maps.Keys(v.edges)
	sort.Strings(ls)
	return ls
}
