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

// Package render displays tables: tabular text output and JSON
// serialization. It is a collaborator of the algebra core, not part of
// it; nothing here mutates a table.
package render

import (
	"io"

	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/cockroachdb/trellis/pkg/graph"
	"github.com/cockroachdb/trellis/pkg/table"
	"github.com/olekukonko/tablewriter"
)

// textColMinWidth is the minimum width given to X-tagged (extended text)
// columns; other columns size to their content.
const textColMinWidth = 24

// Show renders the table as aligned text.
func Show(w io.Writer, t *table.Table) {
	show(w, t.Name(), t.Schema(), t.Domain(), t.Rows())
}

// ShowGraph renders the vertex tuples of a graph table as aligned text,
// followed by one adjacency line per vertex that has outgoing edges.
func ShowGraph(w io.Writer, g *graph.Table) {
	show(w, g.Name(), g.Schema(), g.Domain(), g.Rows())
	for _, v := range g.Vertices() {
		for _, label := range v.Labels() {
			io.WriteString(w, v.Tuple.KeyString()+" -"+label+"-> ")
			for i, n := range v.Neighbors(label) {
				if i > 0 {
					io.WriteString(w, ", ")
				}
				io.WriteString(w, n.Tuple.KeyString())
			}
			io.WriteString(w, "\n")
		}
	}
}

func show(w io.Writer, name string, schema datum.Schema, domain datum.Domain, rows []datum.Tuple) {
	io.WriteString(w, name+"\n")
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(schema)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	for i, tag := range domain {
		if tag == datum.Text {
			tw.SetColMinWidth(i, textColMinWidth)
		}
	}
	for _, tup := range rows {
		tw.Append(tup.Strings())
	}
	tw.Render()
}
