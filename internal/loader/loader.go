// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/apex/log"

	"github.com/staranto/txtctl/internal/textstore"
)

var (
	// ErrUnknownCodec is returned for a format name with no codec.
	ErrUnknownCodec = errors.New("unknown format")
	// ErrUnknownSource is returned for a source kind that cannot be built.
	ErrUnknownSource = errors.New("unknown source")
)

// File loads tables by reading bytes from Source and decoding them with Codec.
type File struct {
	Source Source
	Codec  Codec
}

// New returns a File loader.
func New(source Source, codec Codec) *File {
	return &File{Source: source, Codec: codec}
}

// Extension is the file extension of the codec, used to build path keys.
func (f *File) Extension() string {
	return f.Codec.Extension()
}

// Load implements textstore.Loader. Missing sources map to
// textstore.ErrSourceAbsent, everything else that prevents a table from being
// produced maps to textstore.ErrSourceMalformed.
func (f *File) Load(ctx context.Context, path string) (textstore.Table, error) {
	raw, err := f.Source.Read(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", textstore.ErrSourceAbsent, err)
		}
		return nil, fmt.Errorf("%w: %w", textstore.ErrSourceMalformed, err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", textstore.ErrSourceMalformed, path)
	}

	table, err := f.Codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", textstore.ErrSourceMalformed, path, err)
	}

	log.WithFields(log.Fields{
		"codec": f.Codec.Name(),
		"keys":  len(table),
		"path":  path,
	}).Debug("loaded table")

	return table, nil
}
