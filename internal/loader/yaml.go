// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/staranto/txtctl/internal/textstore"
)

// YAML decodes a single mapping document.
type YAML struct{}

func (YAML) Name() string      { return "yaml" }
func (YAML) Extension() string { return ".yaml" }

func (YAML) Decode(raw []byte) (textstore.Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("no yaml document")
	}

	root := deref(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: document is not a mapping", root.Line)
	}

	table := make(textstore.Table, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := deref(root.Content[i]), deref(root.Content[i+1])
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: key is not a scalar", k.Line)
		}
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: value of %q is not a scalar", v.Line, k.Value)
		}
		if v.Tag == "!!null" {
			table[k.Value] = nil
			continue
		}
		table[k.Value] = textstore.Text(v.Value)
	}
	return table, nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
