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

package datum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	testCases := []struct {
		a, b Datum
		want int
	}{
		{DInt(1), DInt(2), -1},
		{DInt(2), DInt(2), 0},
		{DInt(3), DInt(2), 1},
		{DFloat(1.5), DFloat(2.5), -1},
		{DString("a"), DString("b"), -1},
		{DString("b"), DString("b"), 0},
		{MakeDTime(now), MakeDTime(now.Add(time.Hour)), -1},
		{MakeDTime(now), MakeDTime(now), 0},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.want, tc.a.Compare(tc.b), "%s vs %s", tc.a, tc.b)
	}
}

func TestCompareMixedTypesPanics(t *testing.T) {
	require.Panics(t, func() {
		DInt(1).Compare(DString("1"))
	})
}

func TestParseLiteral(t *testing.T) {
	d, err := ParseLiteral(Float, "1.5")
	require.NoError(t, err)
	require.Equal(t, DFloat(1.5), d)

	d, err = ParseLiteral(Int, "42")
	require.NoError(t, err)
	require.Equal(t, DInt(42), d)

	d, err = ParseLiteral(Long, "9000000000")
	require.NoError(t, err)
	require.Equal(t, DInt(9000000000), d)

	d, err = ParseLiteral(Str, "'Athens'")
	require.NoError(t, err)
	require.Equal(t, DString("Athens"), d)

	d, err = ParseLiteral(Text, `"long text"`)
	require.NoError(t, err)
	require.Equal(t, DString("long text"), d)

	d, err = ParseLiteral(Time, "2024-06-01")
	require.NoError(t, err)
	require.Equal(t, MakeDTime(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)), d)

	_, err = ParseLiteral(Int, "not-a-number")
	require.Error(t, err)
	_, err = ParseLiteral(Time, "not-a-time")
	require.Error(t, err)
}

func TestParseSchema(t *testing.T) {
	s, err := ParseSchema("cname, ccity")
	require.NoError(t, err)
	require.Equal(t, Schema{"cname", "ccity"}, s)

	_, err = ParseSchema("")
	require.Error(t, err)
	_, err = ParseSchema("a,,b")
	require.Error(t, err)
	_, err = ParseSchema("a,b,a")
	require.Error(t, err)
}

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain("S,I,D,X,L,T")
	require.NoError(t, err)
	require.Equal(t, Domain{Str, Int, Float, Text, Long, Time}, d)
	require.Equal(t, "S,I,D,X,L,T", d.String())

	_, err = ParseDomain("S,Q")
	require.Error(t, err)
	_, err = ParseDomain("S,,I")
	require.Error(t, err)
	_, err = ParseDomain("S,IL")
	require.Error(t, err)
}

func TestSchemaOps(t *testing.T) {
	s, err := ParseSchema("a,b,c")
	require.NoError(t, err)
	o, err := ParseSchema("b,c,d")
	require.NoError(t, err)

	require.Equal(t, Schema{"b", "c"}, s.Intersect(o))
	require.Equal(t, Schema{"a"}, s.Minus(o))
	require.True(t, Schema{"b", "c"}.SubsetOf(s))
	require.False(t, o.SubsetOf(s))

	pos, err := s.Positions(Schema{"c", "a"})
	require.NoError(t, err)
	require.Equal(t, []int{2, 0}, pos)
	_, err = s.Positions(Schema{"z"})
	require.Error(t, err)
}

func TestTupleOps(t *testing.T) {
	tup := Tuple{DInt(1), DString("x"), DFloat(2.5)}
	require.Equal(t, Tuple{DFloat(2.5), DInt(1)}, tup.Project([]int{2, 0}))
	require.True(t, tup.Equal(Tuple{DInt(1), DString("x"), DFloat(2.5)}))
	require.False(t, tup.Equal(Tuple{DInt(1), DString("y"), DFloat(2.5)}))
	require.False(t, tup.Equal(Tuple{DInt(1), DString("x")}))
	// Different types at a position are unequal, not a panic.
	require.False(t, tup.Equal(Tuple{DString("1"), DString("x"), DFloat(2.5)}))

	cat := Tuple{DInt(1)}.Concat(Tuple{DInt(2)})
	require.Equal(t, Tuple{DInt(1), DInt(2)}, cat)

	require.Equal(t, "1\x1fx", Tuple{DInt(1), DString("x")}.KeyString())
}
