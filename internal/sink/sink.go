// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"fmt"
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"

	"github.com/staranto/txtctl/internal/textstore"
)

func fields(w textstore.Warning) log.Fields {
	f := log.Fields{
		"kind": string(w.Kind),
		"path": w.Path,
	}
	if w.Key != "" {
		f["key"] = w.Key
	}
	return f
}

// Log forwards warnings to an apex logger at warn level.
type Log struct {
	Logger log.Interface
}

// NewLog returns a Log sink. A nil logger means the package-level apex logger.
func NewLog(logger log.Interface) *Log {
	if logger == nil {
		logger = log.Log
	}
	return &Log{Logger: logger}
}

// Record implements textstore.Sink.
func (l *Log) Record(w textstore.Warning) {
	l.Logger.WithFields(fields(w)).Warn(w.Message)
}

// File appends one JSON object per warning to a file.
type File struct {
	path    string
	f       *os.File
	handler log.Handler
	logger  *log.Logger
}

// OpenFile opens path for appending, creating it if needed.
func OpenFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:mnd
	if err != nil {
		return nil, fmt.Errorf("failed to open warning log %s: %w", path, err)
	}
	h := json.New(f)
	return &File{
		path:    path,
		f:       f,
		handler: h,
		logger:  &log.Logger{Handler: h, Level: log.WarnLevel},
	}, nil
}

// Path is the file being written.
func (s *File) Path() string {
	return s.path
}

// Record implements textstore.Sink. The warning's own timestamp is kept.
func (s *File) Record(w textstore.Warning) {
	entry := &log.Entry{
		Logger:    s.logger,
		Fields:    fields(w),
		Level:     log.WarnLevel,
		Timestamp: w.Time,
		Message:   w.Message,
	}
	_ = s.handler.HandleLog(entry)
}

// Close releases the file.
func (s *File) Close() error {
	return s.f.Close()
}

// Recorder keeps warnings in memory.
type Recorder struct {
	mu       sync.Mutex
	warnings []textstore.Warning
}

// Record implements textstore.Sink.
func (r *Recorder) Record(w textstore.Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, w)
}

// Warnings returns a copy of everything recorded so far, oldest first.
func (r *Recorder) Warnings() []textstore.Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]textstore.Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Len is the number of recorded warnings.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.warnings)
}

// Reset drops all recorded warnings.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = nil
}

type tee []textstore.Sink

func (t tee) Record(w textstore.Warning) {
	for _, s := range t {
		s.Record(w)
	}
}

// Tee hands every warning to each non-nil sink in order. It returns nil when
// no sink remains, so callers can pass the result straight to a lookup.
func Tee(sinks ...textstore.Sink) textstore.Sink {
	var t tee
	for _, s := range sinks {
		if s != nil {
			t = append(t, s)
		}
	}
	switch len(t) {
	case 0:
		return nil
	case 1:
		return t[0]
	}
	return t
}
