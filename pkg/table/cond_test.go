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
	"sort"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

// TestCondDataDriven runs the condition mini-language against the bank
// deposit fixture. Each "select" directive holds one condition; the
// expected output is the matching rows, comma-joined and sorted.
func TestCondDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/select_where",
		func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "select":
				tbl := bankDeposit(t)
				out := tbl.SelectWhere(strings.TrimSpace(d.Input))
				rows := make([]string, 0, out.Len())
				for _, tup := range out.Rows() {
					rows = append(rows, strings.Join(tup.Strings(), ","))
				}
				sort.Strings(rows)
				if len(rows) == 0 {
					return ""
				}
				return strings.Join(rows, "\n") + "\n"
			default:
				d.Fatalf(t, "unknown command %q", d.Cmd)
				return ""
			}
		})
}
