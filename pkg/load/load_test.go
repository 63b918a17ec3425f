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

package load

import (
	"os"
	"strings"
	"testing"

	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/cockroachdb/trellis/pkg/graph"
	"github.com/cockroachdb/trellis/pkg/table"
	"github.com/cockroachdb/trellis/pkg/util/log"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	log.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}

func TestTuples(t *testing.T) {
	tbl, err := table.New("deposit", "accid,cname,balance", "I,S,D", "accid")
	require.NoError(t, err)

	in := strings.Join([]string{
		"accid,cname,balance",
		"11,Peter,1100.0",
		"12,Paul,1200.5",
	}, "\n")
	n, err := Tuples(strings.NewReader(in), tbl, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 2, tbl.Len())
	require.Equal(t, datum.Tuple{datum.DInt(12), datum.DString("Paul"), datum.DFloat(1200.5)},
		tbl.Rows()[1])
}

func TestTuplesSkipsBadLines(t *testing.T) {
	tbl, err := table.New("deposit", "accid,balance", "I,D", "accid")
	require.NoError(t, err)

	in := strings.Join([]string{
		"accid,balance",
		"11,1100.0",
		"not-a-number,1200.0",
		"13",
		"14,1400.0",
	}, "\n")
	n, err := Tuples(strings.NewReader(in), tbl, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 2, tbl.Len())
}

func TestTuplesSeparatorAndColumnSubset(t *testing.T) {
	tbl, err := table.New("acct", "accid,balance", "I,D", "accid")
	require.NoError(t, err)

	// The input carries extra columns; positions select accid and
	// balance.
	in := strings.Join([]string{
		"accid|cname|bname|balance",
		"11|Peter|Lake|1100.0",
		"12|Paul|Alps|1200.0",
	}, "\n")
	n, err := Tuples(strings.NewReader(in), tbl, Options{Sep: '|', Cols: []int{0, 3}})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, datum.Tuple{datum.DInt(11), datum.DFloat(1100)}, tbl.Rows()[0])

	// An out-of-range position is a per-line flaw.
	n, err = Tuples(strings.NewReader(in), tbl, Options{Sep: '|', Cols: []int{0, 9}})
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestVertices(t *testing.T) {
	g, err := graph.New("branch", "bname,bcity", "S,S", "bname")
	require.NoError(t, err)

	in := strings.Join([]string{
		"bname,bcity",
		"Alps,Athens",
		"Lake,Bogart",
	}, "\n")
	n, err := Vertices(strings.NewReader(in), g, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, g.Vertices(), 2)
	require.Equal(t, 2, g.Len())
}
