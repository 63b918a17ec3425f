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
	"encoding/json"

	"github.com/cockroachdb/trellis/pkg/datum"
	"github.com/cockroachdb/trellis/pkg/table"
)

// native unwraps a datum into the value encoding/json expects.
func native(d datum.Datum) interface{} {
	switch v := d.(type) {
	case datum.DFloat:
		return float64(v)
	case datum.DInt:
		return int64(v)
	case datum.DString:
		return string(v)
	case datum.DTime:
		return v.Time
	}
	return d.String()
}

// ToJSON serializes the table as a JSON array of attribute-name to value
// objects.
func ToJSON(t *table.Table) ([]byte, error) {
	schema := t.Schema()
	rows := make([]map[string]interface{}, 0, t.Len())
	for _, tup := range t.Rows() {
		row := make(map[string]interface{}, len(schema))
		for i, a := range schema {
			row[a] = native(tup[i])
		}
		rows = append(rows, row)
	}
	return json.Marshal(rows)
}
