// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/txtctl/internal/browse"
	"github.com/staranto/txtctl/internal/meta"
	"github.com/staranto/txtctl/internal/output"
	"github.com/staranto/txtctl/internal/sink"
)

var browseExamples = [][2]string{
	{"txtctl browse /srv/texts menu", "page through the menu table"},
}

// BrowseCommandAction is the action handler for the "browse" subcommand.
func BrowseCommandAction(ctx context.Context, cmd *cli.Command) error {
	args, err := Positionals(cmd, 2)
	if err != nil {
		return err
	}

	store, err := OpenStore(ctx, cmd)
	if err != nil {
		return err
	}

	rec := &sink.Recorder{}
	path, table := store.Table(ctx, args[0], args[1], sink.Tee(rec, sink.NewLog(nil)))
	if rec.Len() > 0 {
		return fmt.Errorf("%s", rec.Warnings()[0].Message)
	}

	return browse.Run(ctx, path, output.Rows(table))
}

// BrowseCommandBuilder constructs the cli.Command for "browse".
func BrowseCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "browse",
		Usage:     "interactive table viewer",
		UsageText: "txtctl browse <base> <file> [options]",
		Examples:  browseExamples,
		Meta:      meta,
		Action:    BrowseCommandAction,
	}
	return cb.Build()
}
