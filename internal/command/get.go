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
	"github.com/staranto/txtctl/internal/sink"
	"github.com/staranto/txtctl/internal/textstore"
)

var getExamples = [][2]string{
	{"txtctl get /srv/texts greetings hello", "print one text"},
	{"txtctl get /srv/texts greetings bye -d '??'", "fall back to ?? when bye is missing"},
	{"txtctl get greetings hello --base /srv/texts", "take the base from a flag or config"},
	{"txtctl get /srv/texts greetings hello -l warn.log", "append lookup warnings to warn.log"},
	{"txtctl get /srv/texts greetings hello --strict", "exit 3 when the default was used"},
}

// GetCommandAction is the action handler for the "get" subcommand. It
// resolves one key and prints the text, or the default.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
	args, err := Positionals(cmd, 3)
	if err != nil {
		return err
	}
	base, file, key := args[0], args[1], args[2]

	store, err := OpenStore(ctx, cmd)
	if err != nil {
		return err
	}

	rec := &sink.Recorder{}
	var fileSink textstore.Sink
	if path := cmd.String("log"); path != "" {
		f, err := sink.OpenFile(path)
		if err != nil {
			return err
		}
		defer f.Close()
		fileSink = f
	}
	value := store.Get(ctx, base, file, key, cmd.String("default"),
		sink.Tee(rec, fileSink, sink.NewLog(nil)))
	fmt.Fprintln(stdout(cmd), value)

	log.WithFields(log.Fields{
		"loads":    store.LoadCounts(),
		"warnings": rec.Len(),
	}).Debug("get done")

	if cmd.Bool("warn") {
		for _, w := range rec.Warnings() {
			fmt.Fprintln(os.Stderr, w.String())
		}
	}

	if cmd.Bool("strict") && rec.Len() > 0 {
		return fmt.Errorf("%w: %s", ErrStrictFallback, rec.Warnings()[rec.Len()-1].Message)
	}
	return nil
}

// GetCommandBuilder constructs the cli.Command for "get".
func GetCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "get",
		Usage:     "print one text",
		UsageText: "txtctl get <base> <file> <key> [options]",
		Examples:  getExamples,
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "default",
				Aliases: []string{"d"},
				Usage:   "text printed when the key cannot be resolved",
				Sources: configSources("get", "default", "TXTCTL_DEFAULT", meta.Config.Source),
			},
			&cli.StringFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Usage:   "append warnings as JSON lines to this file",
				Sources: configSources("get", "log", "TXTCTL_WARN_LOG", meta.Config.Source),
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.BoolFlag{
				Name:    "warn",
				Aliases: []string{"W"},
				Usage:   "print warnings to stderr",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "exit with status 3 when the default was used",
			},
		},
		Action: GetCommandAction,
	}
	return cb.Build()
}
