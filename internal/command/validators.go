// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/staranto/txtctl/internal/loader"
	"github.com/staranto/txtctl/internal/output"
	"github.com/staranto/txtctl/internal/textstore"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func FormatValidator(value any) error {
	if _, err := loader.CodecByName(value.(string)); err != nil {
		return fmt.Errorf("must be one of %v", loader.CodecNames())
	}
	return nil
}

func SourceValidator(value any) error {
	switch value.(string) {
	case "fs", "s3":
		return nil
	}
	return errors.New("must be one of [fs s3]")
}

func BlankValidator(value any) error {
	if _, err := textstore.ParseBlankPolicy(value.(string)); err != nil {
		return errors.New("must be one of [fallback verbatim]")
	}
	return nil
}
