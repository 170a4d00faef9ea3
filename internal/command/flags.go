// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/txtctl/internal/output"
)

var (
	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		HideDefault: true,
	}
)

// configSources returns the value source chain for a flag: the environment
// variable first, then the command namespaced config key, then the global
// config key.
func configSources(ns, key, env, path string) cli.ValueSourceChain {
	var chain []cli.ValueSource
	if env != "" {
		chain = append(chain, cli.EnvVar(env))
	}
	if path != "" {
		chain = append(chain,
			yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)),
			yaml.YAML(key, altsrc.StringSourcer(path)),
		)
	}
	return cli.NewValueSourceChain(chain...)
}

// NewStoreFlags returns the flags that select where tables come from and how
// they are read. ns is the command name, path the config file.
func NewStoreFlags(ns, path string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "base",
			Aliases: []string{"b"},
			Usage:   "base path used when the positional base is omitted",
			Sources: configSources(ns, "base", "TXTCTL_BASE", path),
		},
		&cli.StringFlag{
			Name:    "format",
			Usage:   "table file format (yaml, json, hcl)",
			Sources: configSources(ns, "format", "TXTCTL_FORMAT", path),
			Value:   "yaml",
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		&cli.StringFlag{
			Name:    "source",
			Usage:   "where tables are read from (fs, s3)",
			Sources: configSources(ns, "source", "TXTCTL_SOURCE", path),
			Value:   "fs",
			Validator: func(value string) error {
				return FlagValidators(value, SourceValidator)
			},
		},
		&cli.StringFlag{
			Name:    "bucket",
			Usage:   "S3 bucket holding the tables",
			Sources: configSources(ns, "s3.bucket", "TXTCTL_BUCKET", path),
		},
		&cli.StringFlag{
			Name:    "prefix",
			Usage:   "S3 key prefix",
			Sources: configSources(ns, "s3.prefix", "", path),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region",
			Sources: configSources(ns, "s3.region", "", path),
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile",
			Sources: configSources(ns, "s3.profile", "", path),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "S3 compatible endpoint URL",
			Sources: configSources(ns, "s3.endpoint", "", path),
		},
		&cli.StringFlag{
			Name:    "blank",
			Usage:   "treatment of empty values (fallback, verbatim)",
			Sources: configSources(ns, "blank", "TXTCTL_BLANK", path),
			Value:   "fallback",
			Validator: func(value string) error {
				return FlagValidators(value, BlankValidator)
			},
		},
		tldrFlag,
	}
}

// NewOutputFlags returns the flags shared by commands that print rows.
func NewOutputFlags(ns, path string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: configSources(ns, "color", "", path),
			Value:   output.ColorDefault(os.Stdout),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: configSources(ns, "output", "", path),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns (key, value) to sort by",
			Sources: configSources(ns, "sort", "", path),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: configSources(ns, "titles", "", path),
			Value:   false,
		},
	}
}

// pathHas checks if target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
