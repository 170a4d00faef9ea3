// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textstore

import "sort"

// Table maps keys to text. A nil value records a key that is present with a
// null value.
type Table map[string]*string

// Text returns a pointer to s, for building tables.
func Text(s string) *string {
	return &s
}

// Clone returns a deep copy of t. A nil table clones to an empty one.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		if v == nil {
			out[k] = nil
			continue
		}
		out[k] = Text(*v)
	}
	return out
}

// Keys returns the table keys in ascending order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Strings flattens t into a plain map. Null values become empty strings.
func (t Table) Strings() map[string]string {
	out := make(map[string]string, len(t))
	for k, v := range t {
		if v != nil {
			out[k] = *v
		} else {
			out[k] = ""
		}
	}
	return out
}
