// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/txtctl/internal/cacheutil"
	"github.com/staranto/txtctl/internal/command"
	"github.com/staranto/txtctl/internal/config"
	mylog "github.com/staranto/txtctl/internal/log"
	"github.com/staranto/txtctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args))
}

func realMain(args []string) int {
	mylog.InitLogger()

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	// Best-effort: pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		// Non-fatal: print to stderr and continue.
		fmt.Fprintln(os.Stderr, err)
	}
	hours, _ := config.GetInt("cache.clean", 0)
	if err := cacheutil.Purge(hours); err != nil {
		log.WithError(err).Warn("cache purge failed")
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, command.ErrStrictFallback) {
			return 3
		}
		return 2
	}

	return 0
}

// mangleArguments expands argument sets. "@name" after the command is
// replaced by the list stored under <command>.<name> in the config file when
// that key exists; otherwise it is an ordinary argument. Without a set,
// <command>.defaults is inserted right after the command. Scanning for sets
// stops at "--".
func mangleArguments(args []string) []string {
	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2) //nolint:mnd
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	rest := append([]string{}, args[2:]...)

	// See if there is a configured @set. If so, that becomes our insertion
	// point and the @set entry is removed from args.
	idx := 0
	setArgs, _ := config.GetStringSlice(args[1] + ".defaults")
	set := "defaults"
	for i, a := range rest {
		if a == "--" {
			break
		}
		if !strings.HasPrefix(a, "@") || len(a) < 2 { //nolint:mnd
			continue
		}
		named, err := config.GetStringSlice(args[1] + "." + a[1:])
		if err != nil {
			log.Debugf("%s is not an argument set, keeping it", a)
			continue
		}
		set, setArgs, idx = a[1:], named, i
		rest = append(rest[:i], rest[i+1:]...)
		break
	}

	var expanded []string
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}

	out := append(preamble, rest[:idx]...)
	out = append(out, expanded...)
	out = append(out, rest[idx:]...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}
