// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"

	"github.com/apex/log"
)

type sortField struct {
	column        string
	descending    bool
	caseSensitive bool
}

// parseSortSpec splits a --sort value such as "-value,!key". A leading '-'
// reverses the order, a leading '!' makes the comparison case sensitive.
func parseSortSpec(spec string) []sortField {
	var fields []sortField
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f := sortField{}
		for len(part) > 0 && (part[0] == '-' || part[0] == '!') {
			if part[0] == '-' {
				f.descending = true
			} else {
				f.caseSensitive = true
			}
			part = part[1:]
		}
		if part != "key" && part != "value" {
			log.Errorf("invalid sort column: %s", part)
			continue
		}
		f.column = part
		fields = append(fields, f)
	}
	return fields
}

// SortRows orders rows in place per spec. Without a usable spec rows are
// ordered by key. Null values sort before any text.
func SortRows(rows []Row, spec string) {
	fields := parseSortSpec(spec)
	if len(fields) == 0 {
		fields = []sortField{{column: "key", caseSensitive: true}}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, f := range fields {
			c := compareRows(rows[i], rows[j], f)
			if c == 0 {
				continue
			}
			if f.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareRows(a, b Row, f sortField) int {
	if f.column == "key" {
		return compareText(a.Key, b.Key, f.caseSensitive)
	}

	switch {
	case a.Null && b.Null:
		return 0
	case a.Null:
		return -1
	case b.Null:
		return 1
	}

	if x, ok := toFloat64(a.Value); ok {
		if y, ok := toFloat64(b.Value); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	return compareText(a.Value, b.Value, f.caseSensitive)
}

func compareText(a, b string, caseSensitive bool) int {
	if !caseSensitive {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}
	return strings.Compare(a, b)
}
