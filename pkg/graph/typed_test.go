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
	"testing"

	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/stretchr/testify/require"
)

// makePeople builds a three-level hierarchy: person <- student,
// person <- professor <- emeritus.
func makePeople(t *testing.T) (person, student, professor, emeritus *TypedTable) {
	t.Helper()
	var err error
	person, err = NewTyped("person", "name,city", "S,S", "name", nil)
	require.NoError(t, err)
	student, err = NewTyped("student", "major", "S", "", person)
	require.NoError(t, err)
	professor, err = NewTyped("professor", "dept", "S", "", person)
	require.NoError(t, err)
	emeritus, err = NewTyped("emeritus", "retired", "I", "", professor)
	require.NoError(t, err)

	person.AddV(datum.Tuple{s("Ann"), s("Athens")})
	student.AddV(datum.Tuple{s("Bob"), s("Bogart"), s("cs")})
	student.AddV(datum.Tuple{s("Cat"), s("Athens"), s("math")})
	professor.AddV(datum.Tuple{s("Dan"), s("Athens"), s("cs")})
	emeritus.AddV(datum.Tuple{s("Eve"), s("Bogart"), s("physics"), i(2019)})
	return person, student, professor, emeritus
}

func TestTypedSchemaInheritance(t *testing.T) {
	person, student, professor, emeritus := makePeople(t)

	require.Equal(t, datum.Schema{"name", "city"}, person.Schema())
	require.Equal(t, datum.Schema{"name", "city", "major"}, student.Schema())
	require.Equal(t, datum.Domain{datum.Str, datum.Str, datum.Str}, student.Domain())
	require.Equal(t, datum.Schema{"name", "city", "dept", "retired"}, emeritus.Schema())

	// The key is inherited when none is declared.
	require.Equal(t, datum.Schema{"name"}, student.Key())
	require.Equal(t, datum.Schema{"name"}, emeritus.Key())

	require.Nil(t, person.Parent())
	require.Same(t, person, student.Parent())
	require.Len(t, person.Subtypes(), 2)
	require.Len(t, professor.Subtypes(), 1)

	// A root cannot omit its key.
	_, err := NewTyped("bad", "a", "S", "", nil)
	require.Error(t, err)
}

func TestTypedDeclaredKeyReplacesInherited(t *testing.T) {
	person, _, _, _ := makePeople(t)
	course, err := NewTyped("enrolled", "sid", "I", "sid", person)
	require.NoError(t, err)
	require.Equal(t, datum.Schema{"sid"}, course.Key())
}

func names(g *TypedTable) []string {
	var out []string
	for _, v := range g.Vertices() {
		out = append(out, string(v.Tuple[0].(datum.DString)))
	}
	sort.Strings(out)
	return out
}

func TestAllAggregatesSubtypes(t *testing.T) {
	person, _, professor, _ := makePeople(t)

	// Depth 0: the receiver alone.
	require.Equal(t, []string{"Ann"}, names(person.All(0)))

	// Depth 1: immediate subtypes, heterogeneous columns dropped.
	all := person.All(1)
	require.Equal(t, datum.Schema{"name", "city"}, all.Schema())
	require.Equal(t, []string{"Ann", "Bob", "Cat", "Dan"}, names(all))
	for _, v := range all.Vertices() {
		require.Len(t, v.Tuple, 2)
	}

	// Depth 2 reaches the emeritus leaf.
	require.Equal(t, []string{"Ann", "Bob", "Cat", "Dan", "Eve"}, names(person.All(2)))

	// All is relative to the receiver: a professor query sees the
	// emeritus subtype projected onto the professor schema.
	profs := professor.All(1)
	require.Equal(t, datum.Schema{"name", "city", "dept"}, profs.Schema())
	require.Equal(t, []string{"Dan", "Eve"}, names(profs))
}

func TestAllComposesWithRelationalOps(t *testing.T) {
	person, _, _, _ := makePeople(t)
	athens := person.All(2).SelectWhere("city == Athens").Project("name")
	require.Equal(t, []string{"Ann", "Cat", "Dan"}, func() []string {
		var out []string
		for _, tup := range athens.Rows() {
			out = append(out, string(tup[0].(datum.DString)))
		}
		sort.Strings(out)
		return out
	}())
}
