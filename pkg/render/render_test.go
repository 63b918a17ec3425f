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

package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/cockroachdb/trellis/pkg/graph"
	"github.com/cockroachdb/trellis/pkg/table"
	"github.com/stretchr/testify/require"
)

func customers(t *testing.T) *table.Table {
	t.Helper()
	c, err := table.New("customer", "cname,ccity", "S,S", "cname")
	require.NoError(t, err)
	c.Add(datum.Tuple{datum.DString("Peter"), datum.DString("Bogart")})
	c.Add(datum.Tuple{datum.DString("Mary"), datum.DString("Athens")})
	return c
}

func TestShow(t *testing.T) {
	var buf bytes.Buffer
	Show(&buf, customers(t))
	out := buf.String()
	require.Contains(t, out, "customer")
	require.Contains(t, out, "cname")
	require.Contains(t, out, "Peter")
	require.Contains(t, out, "Athens")
}

func TestShowGraph(t *testing.T) {
	g, err := graph.New("deposit", "accid,balance", "I,D", "accid")
	require.NoError(t, err)
	b, err := graph.New("branch", "bname,bcity", "S,S", "bname")
	require.NoError(t, err)
	g.AddEdgeType("bname", b, true)
	dv := g.AddV(datum.Tuple{datum.DInt(11), datum.DFloat(1100)})[0]
	bv := b.AddV(datum.Tuple{datum.DString("Lake"), datum.DString("Bogart")})[0]
	require.True(t, g.AddE("bname", dv, bv))

	var buf bytes.Buffer
	ShowGraph(&buf, g)
	out := buf.String()
	require.Contains(t, out, "accid")
	require.Contains(t, out, "-bname->")
	require.Contains(t, out, "Lake")
}

func TestToJSON(t *testing.T) {
	raw, err := ToJSON(customers(t))
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 2)
	require.Equal(t, "Peter", rows[0]["cname"])
	require.Equal(t, "Athens", rows[1]["ccity"])
}
