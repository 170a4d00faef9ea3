// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"fmt"
	"sort"

	"github.com/staranto/txtctl/internal/textstore"
)

// Codec decodes raw bytes into a flat table. Decode must reject anything that
// is not a mapping of keys to scalars or nulls.
type Codec interface {
	Name() string
	Extension() string
	Decode(raw []byte) (textstore.Table, error)
}

var codecs = map[string]Codec{
	"yaml": YAML{},
	"json": JSON{},
	"hcl":  HCL{},
}

// CodecByName returns the codec registered under name.
func CodecByName(name string) (Codec, error) {
	if name == "yml" {
		name = "yaml"
	}
	c, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, must be one of %v", ErrUnknownCodec, name, CodecNames())
	}
	return c, nil
}

// CodecNames lists the registered codec names.
func CodecNames() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
