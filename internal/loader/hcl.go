// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/staranto/txtctl/internal/textstore"
)

// HCL decodes a body of top-level attributes. Blocks and expressions that
// need variables are rejected.
type HCL struct{}

func (HCL) Name() string      { return "hcl" }
func (HCL) Extension() string { return ".hcl" }

func (HCL) Decode(raw []byte) (textstore.Table, error) {
	file, diags := hclparse.NewParser().ParseHCL(raw, "table.hcl")
	if diags.HasErrors() {
		return nil, diags
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	table := make(textstore.Table, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}

		switch {
		case val.IsNull():
			table[name] = nil
		case !val.IsKnown():
			return nil, fmt.Errorf("value of %q is unknown", name)
		case val.Type() == cty.String:
			table[name] = textstore.Text(val.AsString())
		case val.Type() == cty.Number:
			table[name] = textstore.Text(val.AsBigFloat().Text('f', -1))
		case val.Type() == cty.Bool:
			table[name] = textstore.Text(strconv.FormatBool(val.True()))
		default:
			return nil, fmt.Errorf("value of %q is a %s, not a scalar", name, val.Type().FriendlyName())
		}
	}
	return table, nil
}
