// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/staranto/txtctl/internal/textstore"
)

// JSON decodes a top-level object.
type JSON struct{}

func (JSON) Name() string      { return "json" }
func (JSON) Extension() string { return ".json" }

func (JSON) Decode(raw []byte) (textstore.Table, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("invalid json")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("document is a %s, not an object", doc.Type)
	}

	table := textstore.Table{}
	var err error
	doc.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Null:
			table[key.String()] = nil
		case gjson.String:
			table[key.String()] = textstore.Text(value.Str)
		case gjson.Number, gjson.True, gjson.False:
			table[key.String()] = textstore.Text(value.Raw)
		default:
			err = fmt.Errorf("value of %q is not a scalar", key.String())
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}
