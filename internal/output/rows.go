// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/staranto/txtctl/internal/textstore"
)

// Row is one key of a table. Null marks a key present with no value.
type Row struct {
	Key   string
	Value string
	Null  bool
}

// Rows flattens a table into rows ordered by key.
func Rows(t textstore.Table) []Row {
	rows := make([]Row, 0, len(t))
	for _, k := range t.Keys() {
		v := t[k]
		if v == nil {
			rows = append(rows, Row{Key: k, Null: true})
			continue
		}
		rows = append(rows, Row{Key: k, Value: *v})
	}
	return rows
}

// Summary describes rows as "<n> keys, <size>".
func Summary(rows []Row) string {
	var size uint64
	for _, r := range rows {
		size += uint64(len(r.Key) + len(r.Value))
	}

	noun := "keys"
	if len(rows) == 1 {
		noun = "key"
	}
	return fmt.Sprintf("%s %s, %s", humanize.Comma(int64(len(rows))), noun, humanize.Bytes(size))
}
