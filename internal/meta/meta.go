// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/spf13/afero"

	"github.com/staranto/txtctl/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Fs replaces the OS filesystem behind the fs source when set.
	Fs          afero.Fs
	StartingDir string
}
