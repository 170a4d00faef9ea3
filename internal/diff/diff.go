// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package diff compares two tables, typically the same file under two
// locale directories.
package diff

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/apex/log"
	jsondiff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/staranto/txtctl/internal/textstore"
)

// Options controls rendering of the delta.
type Options struct {
	Color bool
}

// Report lists keys by how the right table differs from the left one.
type Report struct {
	// Missing keys exist on the left only.
	Missing []string `json:"missing" yaml:"missing"`
	// Extra keys exist on the right only.
	Extra []string `json:"extra" yaml:"extra"`
	// Changed keys hold different text on each side.
	Changed []string `json:"changed" yaml:"changed"`
	// Blank keys differ because the right side is null or empty.
	Blank []string `json:"blank" yaml:"blank"`
}

// Empty is true when the tables hold the same keys and values.
func (r Report) Empty() bool {
	return len(r.Missing)+len(r.Extra)+len(r.Changed)+len(r.Blank) == 0
}

// WriteTo prints one "<section> <key>" line per entry, sections in a fixed
// order and keys sorted.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, section := range []struct {
		name string
		keys []string
	}{
		{"missing", r.Missing},
		{"extra", r.Extra},
		{"changed", r.Changed},
		{"blank", r.Blank},
	} {
		for _, k := range section.keys {
			fmt.Fprintf(&b, "%-8s %s\n", section.name, k)
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Result is the outcome of Tables.
type Result struct {
	// Delta is the left table annotated with changes, empty when equal.
	Delta  string
	Report Report
}

// Tables compares left with right.
func Tables(left, right textstore.Table, opts Options) (*Result, error) {
	l, r := objects(left), objects(right)

	d := jsondiff.New().CompareObjects(l, r)
	result := &Result{}
	if !d.Modified() {
		return result, nil
	}

	f := formatter.NewAsciiFormatter(l, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       opts.Color,
	})
	delta, err := f.Format(d)
	if err != nil {
		return nil, fmt.Errorf("failed to format diff: %w", err)
	}
	result.Delta = delta

	for _, delta := range d.Deltas() {
		switch dt := delta.(type) {
		case *jsondiff.Deleted:
			result.Report.Missing = append(result.Report.Missing, dt.PrePosition().String())
		case *jsondiff.Added:
			result.Report.Extra = append(result.Report.Extra, dt.PostPosition().String())
		case *jsondiff.Modified:
			result.Report.add(dt.PostPosition().String(), right)
		case *jsondiff.TextDiff:
			result.Report.add(dt.PostPosition().String(), right)
		default:
			log.Debugf("ignoring delta %T", delta)
		}
	}

	for _, keys := range [][]string{
		result.Report.Missing,
		result.Report.Extra,
		result.Report.Changed,
		result.Report.Blank,
	} {
		sort.Strings(keys)
	}
	return result, nil
}

func (r *Report) add(key string, right textstore.Table) {
	if v := right[key]; v == nil || *v == "" {
		r.Blank = append(r.Blank, key)
		return
	}
	r.Changed = append(r.Changed, key)
}

func objects(t textstore.Table) map[string]interface{} {
	out := make(map[string]interface{}, len(t))
	for k, v := range t {
		if v == nil {
			out[k] = nil
			continue
		}
		out[k] = *v
	}
	return out
}
