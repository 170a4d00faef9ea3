// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		delimiter string
		want      []Filter
	}{
		{
			name: "empty spec",
			spec: "",
		},
		{
			name: "single exact match filter",
			spec: "key=menu.open",
			want: []Filter{{Key: "key", Operand: "=", Target: "menu.open"}},
		},
		{
			name: "prefix match filter",
			spec: "key^menu.",
			want: []Filter{{Key: "key", Operand: "^", Target: "menu."}},
		},
		{
			name: "case-insensitive match",
			spec: "value~hello",
			want: []Filter{{Key: "value", Operand: "~", Target: "hello"}},
		},
		{
			name: "negated exact match",
			spec: "key!=title",
			want: []Filter{{Key: "key", Operand: "=", Target: "title", Negate: true}},
		},
		{
			name: "negated prefix match",
			spec: "key!^menu.",
			want: []Filter{{Key: "key", Operand: "^", Target: "menu.", Negate: true}},
		},
		{
			name: "multiple filters",
			spec: "key^menu.,value@Open",
			want: []Filter{
				{Key: "key", Operand: "^", Target: "menu."},
				{Key: "value", Operand: "@", Target: "Open"},
			},
		},
		{
			name: "greater than",
			spec: "value>5",
			want: []Filter{{Key: "value", Operand: ">", Target: "5"}},
		},
		{
			name: "regex operand",
			spec: "key/^btn_[a-z]+$",
			want: []Filter{{Key: "key", Operand: "/", Target: "^btn_[a-z]+$"}},
		},
		{
			name: "invalid filter skipped",
			spec: "key=a,invalid-filter,value^b",
			want: []Filter{
				{Key: "key", Operand: "=", Target: "a"},
				{Key: "value", Operand: "^", Target: "b"},
			},
		},
		{
			name:      "custom delimiter",
			spec:      "value@a,b|key^x",
			delimiter: "|",
			want: []Filter{
				{Key: "value", Operand: "@", Target: "a,b"},
				{Key: "key", Operand: "^", Target: "x"},
			},
		},
		{
			name: "empty target",
			spec: "value=",
			want: []Filter{{Key: "value", Operand: "=", Target: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TXTCTL_FILTER_DELIM", tt.delimiter)

			got := BuildFilters(tt.spec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckStringOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		filter Filter
		want   bool
	}{
		{name: "exact", value: "Open", filter: Filter{Operand: "=", Target: "Open"}, want: true},
		{name: "exact miss", value: "Open", filter: Filter{Operand: "=", Target: "open"}, want: false},
		{name: "negated exact", value: "Open", filter: Filter{Operand: "=", Target: "Close", Negate: true}, want: true},
		{name: "fold", value: "Open", filter: Filter{Operand: "~", Target: "OPEN"}, want: true},
		{name: "prefix", value: "menu.open", filter: Filter{Operand: "^", Target: "menu."}, want: true},
		{name: "negated prefix", value: "menu.open", filter: Filter{Operand: "^", Target: "menu.", Negate: true}, want: false},
		{name: "greater", value: "b", filter: Filter{Operand: ">", Target: "a"}, want: true},
		{name: "less", value: "b", filter: Filter{Operand: "<", Target: "a"}, want: false},
		{name: "contains", value: "Hi there", filter: Filter{Operand: "@", Target: "there"}, want: true},
		{name: "negated contains", value: "Hi there", filter: Filter{Operand: "@", Target: "there", Negate: true}, want: false},
		{name: "regex", value: "btn_ok", filter: Filter{Operand: "/", Target: "^btn_[a-z]+$"}, want: true},
		{name: "invalid regex", value: "x", filter: Filter{Operand: "/", Target: "("}, want: false},
		{name: "unsupported", value: "x", filter: Filter{Operand: "%", Target: "x"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkStringOperand(tt.value, tt.filter))
		})
	}
}

func TestFilterRows(t *testing.T) {
	rows := []Row{
		{Key: "menu.open", Value: "Open"},
		{Key: "menu.close", Value: "Close"},
		{Key: "title", Value: ""},
		{Key: "count", Value: "10"},
		{Key: "legacy", Null: true},
	}

	keys := func(rs []Row) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Key)
		}
		return out
	}

	tests := []struct {
		name string
		spec string
		want []string
	}{
		{name: "no filter", spec: "", want: []string{"menu.open", "menu.close", "title", "count", "legacy"}},
		{name: "key prefix", spec: "key^menu.", want: []string{"menu.open", "menu.close"}},
		{name: "and semantics", spec: "key^menu.,value~open", want: []string{"menu.open"}},
		{name: "empty values", spec: "value=", want: []string{"title"}},
		{name: "null never matches value", spec: "value!=x", want: []string{"menu.open", "menu.close", "title", "count"}},
		{name: "numeric compare", spec: "value>9", want: []string{"count"}},
		{name: "numeric equal", spec: "value=10.0", want: []string{"count"}},
		{name: "unknown column ignored", spec: "colour=red,key=title", want: []string{"title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys(FilterRows(rows, tt.spec)))
		})
	}
}
