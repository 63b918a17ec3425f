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

package table

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/trellis/pkg/datum"
)

// cond is a parsed 3-token condition "<attr> <op> <attr-or-literal>".
type cond struct {
	leftPos  int
	op       string
	rightPos int         // -1 when the right side is a literal
	lit      datum.Datum // set when rightPos == -1
}

// opSatisfied translates a three-way comparison into the condition
// operators.
func opSatisfied(op string, c int) bool {
	switch op {
	case "==":
		return c == 0
	case "!=":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	}
	return false
}

func validOp(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

// foldTag maps a domain tag onto its datum representation so that
// attr-to-attr conditions can verify comparability.
func foldTag(t datum.Tag) datum.Tag {
	switch t {
	case datum.Long:
		return datum.Int
	case datum.Text:
		return datum.Str
	}
	return t
}

// parseCond parses the condition mini-language against the table schema.
// The literal (if any) is converted to the value type declared by the
// left attribute's domain tag.
func (t *Table) parseCond(expr string) (cond, error) {
	toks := strings.Fields(expr)
	if len(toks) != 3 {
		return cond{}, errors.Newf("condition %q: want 3 tokens, got %d", expr, len(toks))
	}
	c := cond{op: toks[1], rightPos: -1}
	c.leftPos = t.schema.IndexOf(toks[0])
	if c.leftPos < 0 {
		return cond{}, errors.Newf("condition %q: unknown attribute %q", expr, toks[0])
	}
	if !validOp(c.op) {
		return cond{}, errors.Newf("condition %q: unknown operator %q", expr, c.op)
	}
	if p := t.schema.IndexOf(toks[2]); p >= 0 {
		if foldTag(t.domain[c.leftPos]) != foldTag(t.domain[p]) {
			return cond{}, errors.Newf("condition %q: attributes %q and %q have incomparable domains",
				expr, toks[0], toks[2])
		}
		c.rightPos = p
		return c, nil
	}
	lit, err := datum.ParseLiteral(t.domain[c.leftPos], toks[2])
	if err != nil {
		return cond{}, errors.Wrapf(err, "condition %q", expr)
	}
	c.lit = lit
	return c, nil
}

// Predicate compiles the condition mini-language into a tuple predicate.
// Callers layered above the relational core (such as the graph algebra)
// use it to apply the same degradation rules to their own row sets.
func (t *Table) Predicate(expr string) (func(datum.Tuple) bool, error) {
	c, err := t.parseCond(expr)
	if err != nil {
		return nil, err
	}
	return c.eval, nil
}

// eval applies the condition to one tuple.
func (c cond) eval(tup datum.Tuple) bool {
	right := c.lit
	if c.rightPos >= 0 {
		right = tup[c.rightPos]
	}
	return opSatisfied(c.op, tup[c.leftPos].Compare(right))
}
