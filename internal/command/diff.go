// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/txtctl/internal/diff"
	"github.com/staranto/txtctl/internal/meta"
	"github.com/staranto/txtctl/internal/output"
	"github.com/staranto/txtctl/internal/sink"
	"github.com/staranto/txtctl/internal/textstore"
)

var diffExamples = [][2]string{
	{"txtctl diff /srv/texts/en /srv/texts/fr menu", "show how the fr menu differs from en"},
	{"txtctl diff /srv/texts/en /srv/texts/fr menu --report", "list missing, extra, changed and blank keys"},
	{"txtctl diff en fr menu --report -o json --source s3", "the same for tables kept in S3"},
}

// DiffCommandAction is the action handler for the "diff" subcommand. It
// compares the same file under two bases.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 3 { //nolint:mnd
		return fmt.Errorf("diff: expected 3 arguments, got %d\nusage: %s", len(args), cmd.UsageText)
	}
	leftBase, rightBase, file := args[0], args[1], args[2]

	store, err := OpenStore(ctx, cmd)
	if err != nil {
		return err
	}

	load := func(base string) (textstore.Table, error) {
		rec := &sink.Recorder{}
		_, table := store.Table(ctx, base, file, sink.Tee(rec, sink.NewLog(nil)))
		if rec.Len() > 0 {
			return nil, fmt.Errorf("%s", rec.Warnings()[0].Message)
		}
		return table, nil
	}

	left, err := load(leftBase)
	if err != nil {
		return err
	}
	right, err := load(rightBase)
	if err != nil {
		return err
	}

	res, err := diff.Tables(left, right, diff.Options{Color: cmd.Bool("color")})
	if err != nil {
		return err
	}

	w := stdout(cmd)
	if !cmd.Bool("report") {
		_, err := io.WriteString(w, res.Delta)
		return err
	}
	return writeReport(w, res.Report, cmd.String("output"))
}

func writeReport(w io.Writer, r diff.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		b, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	_, err := r.WriteTo(w)
	return err
}

// DiffCommandBuilder constructs the cli.Command for "diff".
func DiffCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "diff",
		Usage:     "compare a table under two bases",
		UsageText: "txtctl diff <left-base> <right-base> <file> [options]",
		Examples:  diffExamples,
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "report",
				Aliases: []string{"r"},
				Usage:   "list keys by kind of difference instead of the delta",
			},
			&cli.BoolWithInverseFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored delta output",
				Sources: configSources("diff", "color", "", meta.Config.Source),
				Value:   output.ColorDefault(os.Stdout),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "report format (text, json, yaml)",
				Value:   "text",
				Validator: func(value string) error {
					return FlagValidators(value, OutputValidator)
				},
			},
		},
		Action: DiffCommandAction,
	}
	return cb.Build()
}
