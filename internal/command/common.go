// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/txtctl/internal/cacheutil"
	"github.com/staranto/txtctl/internal/config"
	"github.com/staranto/txtctl/internal/loader"
	"github.com/staranto/txtctl/internal/meta"
	"github.com/staranto/txtctl/internal/output"
	"github.com/staranto/txtctl/internal/textstore"
)

// ErrStrictFallback is returned by get --strict when the default was used.
var ErrStrictFallback = errors.New("lookup fell back to the default")

// ShortCircuitTLDR checks the --tldr flag and, if present, runs
// `tldr txtctl-<subcmd>` or prints the built-in examples, and returns true so
// the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string, examples [][2]string) bool {
	if !cmd.Bool("tldr") {
		return false
	}
	if pathHas("tldr") {
		c := exec.CommandContext(ctx, "tldr", "txtctl-"+subcmd)
		c.Stdout = stdout(cmd)
		c.Stderr = os.Stderr
		if err := c.Run(); err == nil {
			return true
		}
	}
	output.DumpExamples(stdout(cmd), examples)
	return true
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// stdout is where command results go.
func stdout(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// Positionals returns exactly want positional args. When one fewer is given
// the --base flag fills the first slot.
func Positionals(cmd *cli.Command, want int) ([]string, error) {
	args := cmd.Args().Slice()
	switch len(args) {
	case want:
		return args, nil
	case want - 1:
		if base := cmd.String("base"); base != "" {
			return append([]string{base}, args...), nil
		}
	}
	return nil, fmt.Errorf("%s: expected %d arguments, got %d\nusage: %s",
		cmd.Name, want, len(args), cmd.UsageText)
}

// OpenStore builds the process store from the source and format flags.
func OpenStore(ctx context.Context, cmd *cli.Command) (*textstore.Store, error) {
	codec, err := loader.CodecByName(cmd.String("format"))
	if err != nil {
		return nil, err
	}

	blank, err := textstore.ParseBlankPolicy(cmd.String("blank"))
	if err != nil {
		return nil, err
	}

	var src loader.Source
	m := GetMeta(cmd)
	if m.Fs != nil && cmd.String("source") == "fs" {
		src = loader.NewFs(m.Fs)
	} else {
		retries, _ := config.GetInt("s3.retries", 0)
		src, err = loader.NewSource(ctx, loader.Settings{
			Kind:        cmd.String("source"),
			Bucket:      cmd.String("bucket"),
			Prefix:      cmd.String("prefix"),
			Region:      cmd.String("region"),
			Profile:     cmd.String("profile"),
			Endpoint:    cmd.String("endpoint"),
			MaxAttempts: retries,
			NoDiskCache: !cacheutil.Enabled(),
		})
		if err != nil {
			return nil, err
		}
	}

	l := loader.New(src, codec)
	log.WithFields(log.Fields{
		"blank":  blank,
		"format": codec.Name(),
		"source": cmd.String("source"),
	}).Debug("opened store")

	return textstore.New(l,
		textstore.WithExtension(l.Extension()),
		textstore.WithBlankPolicy(blank),
	), nil
}

// CommandBuilder constructs a cli.Command for a subcommand using a consistent
// pattern: metadata, store flags, optional output flags and an action.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Examples  [][2]string
	Flags     []cli.Flag
	// Rows adds the --filter, --sort, --output, --titles and --color flags.
	Rows   bool
	Action func(context.Context, *cli.Command) error
	Meta   meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{}, cb.Flags...)
	flags = append(flags, NewStoreFlags(cb.Name, cb.Meta.Config.Source)...)
	if cb.Rows {
		flags = append(flags, NewOutputFlags(cb.Name, cb.Meta.Config.Source)...)
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			m := GetMeta(c)
			if len(m.Args) > 1 {
				log.Debugf("Executing action for %v", m.Args[1:])
			}

			// Bail out early if we're just dumping tldr.
			if ShortCircuitTLDR(ctx, c, cb.Name, cb.Examples) {
				return nil
			}
			return cb.Action(ctx, c)
		},
	}
}
