// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/staranto/txtctl/internal/config"
	"github.com/staranto/txtctl/internal/meta"
)

// AppOption customizes InitApp.
type AppOption func(*meta.Meta)

// WithFs serves the fs source from fsys instead of the OS filesystem.
func WithFs(fsys afero.Fs) AppOption {
	return func(m *meta.Meta) { m.Fs = fsys }
}

func InitApp(ctx context.Context, args []string, opts ...AppOption) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the txtctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg := config.Config
	cfg.Namespace = ns
	config.Config.Namespace = ns

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}
	for _, opt := range opts {
		opt(&meta)
	}

	app := &cli.Command{
		Name:  "txtctl",
		Usage: "Text table lookups",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "txtctl version info",
				HideDefault: true,
			},
		},
		// Errors are reported by main, which picks the exit status.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	app.Commands = append(app.Commands,
		GetCommandBuilder(meta),
		DumpCommandBuilder(meta),
		DiffCommandBuilder(meta),
		BrowseCommandBuilder(meta),
		CompletionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
