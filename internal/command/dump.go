// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/txtctl/internal/meta"
	"github.com/staranto/txtctl/internal/output"
	"github.com/staranto/txtctl/internal/sink"
)

var dumpExamples = [][2]string{
	{"txtctl dump /srv/texts greetings", "print every key of greetings"},
	{"txtctl dump /srv/texts menu -f 'key^file.'", "keys starting with file."},
	{"txtctl dump /srv/texts menu -f 'value='", "keys with an empty value"},
	{"txtctl dump /srv/texts menu --sort=-value -o yaml", "sorted by value, descending, as yaml"},
}

// DumpCommandAction is the action handler for the "dump" subcommand. It loads
// one table and emits its rows per the common output flags.
func DumpCommandAction(ctx context.Context, cmd *cli.Command) error {
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

	rows := output.Rows(table)
	log.Debugf("dumping %s: %s", path, output.Summary(rows))

	if err := output.SliceDiceSpit(rows, cmd, stdout(cmd)); err != nil {
		return err
	}

	if cmd.Bool("summary") {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, output.Summary(output.FilterRows(rows, cmd.String("filter"))))
	}
	return nil
}

// DumpCommandBuilder constructs the cli.Command for "dump".
func DumpCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "dump",
		Usage:     "print a table",
		UsageText: "txtctl dump <base> <file> [options]",
		Examples:  dumpExamples,
		Meta:      meta,
		Rows:      true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "print the key count and size to stderr",
			},
		},
		Action: DumpCommandAction,
	}
	return cb.Build()
}
