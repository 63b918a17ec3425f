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

// Package table implements the relational core of the engine: typed
// tuple storage with lazily built primary and secondary indices, and the
// classic algebra operators (selection, projection, set operations and
// five join algorithms).
//
// Indices follow a build-once contract: BuildIndex, BuildMIndex and
// BuildOrderedIndex construct their cache from the tuples present at the
// time of the call, and later Add calls do NOT refresh them. Callers that
// mutate a table after building an index must rebuild it before relying
// on index-backed operators.
package table

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/cockroachdb/trellis/pkg/util/log"
	"github.com/google/btree"
)

// NameGen generates the names of derived tables. Every algebra operator
// allocates a fresh result table named <base>_<n> with a counter that is
// monotonic per generator, so derived-table naming is deterministic for a
// fixed sequence of operations. A table shares its generator with all
// tables derived from it.
type NameGen struct {
	n int
}

// Next returns the next derived name for base.
func (g *NameGen) Next(base string) string {
	g.n++
	return fmt.Sprintf("%s_%d", base, g.n)
}

// indexState tracks whether a lazily built index cache exists.
type indexState int

const (
	indexUnbuilt indexState = iota
	indexBuilt
)

// Table is an unordered multiset of typed tuples with a schema, a
// parallel domain, and a designated (possibly composite) primary key.
// Key uniqueness is enforced only by BuildIndex, never on Add.
type Table struct {
	name   string
	schema datum.Schema
	domain datum.Domain
	key    datum.Schema
	keyPos []int

	tuples []datum.Tuple

	// Unique primary index: key projection -> tuple.
	istate indexState
	index  map[string]datum.Tuple

	// Non-unique secondary index on a single attribute.
	mstate indexState
	mattr  string
	mindex map[string][]datum.Tuple

	// Ordered secondary index on a single attribute, backing range
	// selections.
	ostate indexState
	oattr  string
	oindex *btree.BTree

	gen *NameGen
}

// Option configures a Table at construction.
type Option func(*Table)

// WithNameGen makes the table use (and propagate to its derivatives) the
// given name generator instead of a fresh one.
func WithNameGen(g *NameGen) Option {
	return func(t *Table) {
		t.gen = g
	}
}

// New constructs an empty table. schemaCSV and domainCSV are parallel
// comma-separated lists (attribute names and single-character type tags);
// keyCSV names a non-empty subset of the schema as primary key.
func New(name, schemaCSV, domainCSV, keyCSV string, opts ...Option) (*Table, error) {
	schema, err := datum.ParseSchema(schemaCSV)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s", name)
	}
	domain, err := datum.ParseDomain(domainCSV)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s", name)
	}
	if len(schema) != len(domain) {
		return nil, errors.Newf(
			"table %s: schema has %d attributes but domain has %d tags",
			name, len(schema), len(domain))
	}
	key, err := datum.ParseSchema(keyCSV)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s: key", name)
	}
	keyPos, err := schema.Positions(key)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s: key", name)
	}
	t := &Table{
		name:   name,
		schema: schema,
		domain: domain,
		key:    key,
		keyPos: keyPos,
	}
	for _, o := range opts {
		o(t)
	}
	if t.gen == nil {
		t.gen = &NameGen{}
	}
	return t, nil
}

// derive allocates an empty result table carrying the given metadata, a
// generated name and the receiver's name generator.
func (t *Table) derive(schema datum.Schema, domain datum.Domain, key datum.Schema) *Table {
	keyPos, err := schema.Positions(key)
	if err != nil {
		// Operators only pass keys drawn from schema; anything else is an
		// internal invariant violation.
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "derived key not in schema"))
	}
	return &Table{
		name:   t.gen.Next(t.name),
		schema: schema,
		domain: domain,
		key:    key,
		keyPos: keyPos,
		gen:    t.gen,
	}
}

// Derive allocates an empty table that carries the given metadata, a
// generated name and the receiver's name generator. It is the allocation
// path used by layers (such as the graph algebra) that build derived
// results with metadata of their own making; the key must be drawn from
// the schema.
func (t *Table) Derive(schema datum.Schema, domain datum.Domain, key datum.Schema) *Table {
	return t.derive(schema, domain, key)
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Schema returns the attribute names.
func (t *Table) Schema() datum.Schema { return t.schema }

// Domain returns the per-attribute type tags.
func (t *Table) Domain() datum.Domain { return t.domain }

// Key returns the primary key attributes.
func (t *Table) Key() datum.Schema { return t.key }

// Rows returns the tuple multiset. The slice is the table's own storage;
// callers must not mutate it.
func (t *Table) Rows() []datum.Tuple { return t.tuples }

// Len returns the number of tuples.
func (t *Table) Len() int { return len(t.tuples) }

// ctx returns a context tagged with the table name for flaw reporting.
func (t *Table) ctx() context.Context {
	return log.WithTable(context.Background(), t.name)
}

// checkTuple validates arity and per-column datum types against the
// domain.
func (t *Table) checkTuple(tup datum.Tuple) error {
	if len(tup) != len(t.schema) {
		return errors.Newf("tuple arity %d != schema arity %d", len(tup), len(t.schema))
	}
	for i, d := range tup {
		if !datum.TypeForTag(t.domain[i], d) {
			return errors.Newf("column %s: %s datum does not match domain tag %c",
				t.schema[i], d.Type(), t.domain[i])
		}
	}
	return nil
}

// Add appends a tuple and reports whether it was accepted. An arity or
// type mismatch is a recoverable flaw: it is logged and the tuple is
// dropped. Add never refreshes a previously built index.
func (t *Table) Add(tup datum.Tuple) bool {
	if err := t.checkTuple(tup); err != nil {
		log.Flaw(t.ctx(), "Add", "%v", err)
		return false
	}
	t.tuples = append(t.tuples, tup)
	return true
}

// keyString returns the key projection of tup encoded as a map key.
func (t *Table) keyString(tup datum.Tuple) string {
	return tup.Project(t.keyPos).KeyString()
}

// BuildIndex (re)builds the unique primary index from the current tuple
// multiset and deduplicates the table on the way: a tuple whose key
// projection is already indexed is a flaw, dropped from both the index
// and the tuple multiset (first occurrence wins).
func (t *Table) BuildIndex() {
	t.index = make(map[string]datum.Tuple, len(t.tuples))
	kept := t.tuples[:0]
	for _, tup := range t.tuples {
		k := t.keyString(tup)
		if _, dup := t.index[k]; dup {
			log.Flaw(t.ctx(), "BuildIndex", "duplicate key %q", k)
			continue
		}
		t.index[k] = tup
		kept = append(kept, tup)
	}
	t.tuples = kept
	t.istate = indexBuilt
}

// HasIndex reports whether the unique primary index has been built.
func (t *Table) HasIndex() bool { return t.istate == indexBuilt }

// BuildMIndex (re)builds the non-unique secondary index on the given
// attribute.
func (t *Table) BuildMIndex(attr string) error {
	pos := t.schema.IndexOf(attr)
	if pos < 0 {
		return errors.Newf("table %s: no attribute %q to index", t.name, attr)
	}
	t.mattr = attr
	t.mindex = make(map[string][]datum.Tuple, len(t.tuples))
	for _, tup := range t.tuples {
		k := tup[pos].String()
		t.mindex[k] = append(t.mindex[k], tup)
	}
	t.mstate = indexBuilt
	return nil
}

// ordItem is one distinct attribute value in the ordered index, carrying
// every tuple holding that value.
type ordItem struct {
	d    datum.Datum
	tups []datum.Tuple
}

// Less implements btree.Item.
func (a *ordItem) Less(b btree.Item) bool {
	return a.d.Compare(b.(*ordItem).d) < 0
}

const ordIndexDegree = 32

// BuildOrderedIndex (re)builds a btree-backed ordered secondary index on
// the given attribute. SelectWhere uses it for range comparisons against
// a literal when the tested attribute matches.
func (t *Table) BuildOrderedIndex(attr string) error {
	pos := t.schema.IndexOf(attr)
	if pos < 0 {
		return errors.Newf("table %s: no attribute %q to index", t.name, attr)
	}
	t.oattr = attr
	t.oindex = btree.New(ordIndexDegree)
	for _, tup := range t.tuples {
		probe := &ordItem{d: tup[pos]}
		if it := t.oindex.Get(probe); it != nil {
			item := it.(*ordItem)
			item.tups = append(item.tups, tup)
			continue
		}
		probe.tups = []datum.Tuple{tup}
		t.oindex.ReplaceOrInsert(probe)
	}
	t.ostate = indexBuilt
	return nil
}

// lookupUnique probes the unique index, which must be built.
func (t *Table) lookupUnique(key string) (datum.Tuple, bool) {
	tup, ok := t.index[key]
	return tup, ok
}

// contains reports whether the table holds a tuple equal to tup,
// using the unique index (key probe then full comparison) when built.
func (t *Table) contains(tup datum.Tuple) bool {
	if t.istate == indexBuilt && len(tup) == len(t.schema) {
		// Build-once contract: the index is treated as authoritative even
		// if tuples were added after BuildIndex.
		if cand, ok := t.lookupUnique(t.keyString(tup)); ok {
			return cand.Equal(tup)
		}
		return false
	}
	for _, cand := range t.tuples {
		if cand.Equal(tup) {
			return true
		}
	}
	return false
}
