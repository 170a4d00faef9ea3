// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textstore

import (
	"fmt"
	"time"
)

// LevelWarning is the only severity the store emits.
const LevelWarning = "WARNING"

// Kind tells which lookup step produced a Warning.
type Kind string

const (
	// KindSource marks a path that did not resolve to a valid table.
	KindSource Kind = "source"
	// KindKey marks a key that was missing or empty in its table.
	KindKey Kind = "key"
)

// Warning is the structured record handed to a Sink.
type Warning struct {
	Time    time.Time
	Level   string
	Kind    Kind
	Path    string
	Key     string
	Message string
}

// String renders the warning on one line.
func (w Warning) String() string {
	return fmt.Sprintf("%s %s %s", w.Time.Format("2006-01-02 15:04:05"), w.Level, w.Message)
}

// Sink receives warnings. Implementations must not block for long and have
// no way to report failures back to the lookup.
type Sink interface {
	Record(Warning)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Warning)

// Record calls f(w).
func (f SinkFunc) Record(w Warning) {
	f(w)
}

func sourceWarning(path string) Warning {
	return Warning{
		Kind:    KindSource,
		Path:    path,
		Message: fmt.Sprintf("'%s' does not resolve to a valid table", path),
	}
}

func keyWarning(path, key string) Warning {
	return Warning{
		Kind:    KindKey,
		Path:    path,
		Key:     key,
		Message: fmt.Sprintf("key '%s' is missing or empty in '%s'", key, path),
	}
}
