// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textstore

import "errors"

var (
	// ErrSourceAbsent is returned by a Loader when nothing exists at the path.
	ErrSourceAbsent = errors.New("source does not exist")
	// ErrSourceMalformed is returned by a Loader when the source exists but
	// does not yield a flat key/value table.
	ErrSourceMalformed = errors.New("source is not a valid table")
)
