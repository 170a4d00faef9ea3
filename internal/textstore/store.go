// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"
)

// DefaultExtension is appended to file names when no WithExtension option is
// given.
const DefaultExtension = ".yaml"

// Loader turns a resolved path into a Table. It reports a missing source with
// ErrSourceAbsent and an unusable one with ErrSourceMalformed; any other error
// is treated as malformed.
type Loader interface {
	Load(ctx context.Context, path string) (Table, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (Table, error)

// Load calls f(ctx, path).
func (f LoaderFunc) Load(ctx context.Context, path string) (Table, error) {
	return f(ctx, path)
}

// BlankPolicy decides what a lookup returns for a key stored as "".
type BlankPolicy int

const (
	// BlankFallback treats "" like a missing key: warn and return the default.
	BlankFallback BlankPolicy = iota
	// BlankVerbatim returns a stored "" as-is.
	BlankVerbatim
)

// ParseBlankPolicy maps "fallback" and "verbatim" to their policies.
func ParseBlankPolicy(s string) (BlankPolicy, error) {
	switch s {
	case "", "fallback":
		return BlankFallback, nil
	case "verbatim":
		return BlankVerbatim, nil
	}
	return BlankFallback, fmt.Errorf("unknown blank policy %q", s)
}

func (p BlankPolicy) String() string {
	if p == BlankVerbatim {
		return "verbatim"
	}
	return "fallback"
}

// Option customizes a Store.
type Option func(*Store)

// WithExtension sets the extension appended to file names in path keys.
func WithExtension(ext string) Option {
	return func(s *Store) { s.ext = normalizeExt(ext) }
}

// WithBlankPolicy sets how empty values are treated.
func WithBlankPolicy(p BlankPolicy) Option {
	return func(s *Store) { s.blank = p }
}

// WithClock replaces time.Now for warning timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store memoizes one Table per path key. A path key moves from unloaded to
// loaded exactly once; failed loads are cached as empty tables and never
// retried. A Store is safe for concurrent use.
type Store struct {
	loader Loader
	ext    string
	blank  BlankPolicy
	now    func() time.Time

	mu     sync.RWMutex
	tables map[string]Table
	loads  map[string]int
	gen    uint64
	group  singleflight.Group
}

// New returns an empty Store backed by loader.
func New(loader Loader, opts ...Option) *Store {
	s := &Store{
		loader: loader,
		ext:    DefaultExtension,
		now:    time.Now,
		tables: make(map[string]Table),
		loads:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extension returns the extension used in path keys.
func (s *Store) Extension() string {
	return s.ext
}

// Get returns the text stored under key in file beneath basePath, or def when
// the source or the key cannot be resolved. When sink is non-nil it receives a
// warning for each failed step. Get never fails.
func (s *Store) Get(ctx context.Context, basePath, file, key, def string, sink Sink) string {
	path := PathKey(basePath, file, s.ext)
	table, warned := s.table(ctx, path, sink)

	if v, ok := table[key]; ok && v != nil {
		if *v != "" || s.blank == BlankVerbatim {
			return *v
		}
	}

	// One warning per call: a failed source already explains the miss.
	if !warned {
		s.warn(sink, keyWarning(path, key))
	}
	return def
}

// Table returns the cached table for file beneath basePath, loading it on
// first use exactly like Get does. The result must not be modified.
func (s *Store) Table(ctx context.Context, basePath, file string, sink Sink) (string, Table) {
	path := PathKey(basePath, file, s.ext)
	t, _ := s.table(ctx, path, sink)
	return path, t
}

// Inspect returns a deep copy of the cache. It exists for debugging and tests.
func (s *Store) Inspect() map[string]Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Table, len(s.tables))
	for path, table := range s.tables {
		out[path] = table.Clone()
	}
	return out
}

// LoadCounts reports how many times the loader ran per path key.
func (s *Store) LoadCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.loads))
	for path, n := range s.loads {
		out[path] = n
	}
	return out
}

// Reset drops every cached table so the next lookup loads again. Loads still
// in flight when Reset is called are returned to their callers but not
// cached. Only tests should need it.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.tables = make(map[string]Table)
	s.loads = make(map[string]int)
}

// table returns the table for path, loading it under a per-path singleflight
// when it is not cached yet. warned reports whether this call handed a source
// warning to sink.
func (s *Store) table(ctx context.Context, path string, sink Sink) (Table, bool) {
	if t, ok := s.cached(path); ok {
		return t, false
	}

	var warned bool
	v, _, _ := s.group.Do(path, func() (any, error) {
		// Another caller may have finished loading between the first check and
		// joining the group.
		if t, ok := s.cached(path); ok {
			return t, nil
		}

		s.mu.RLock()
		gen := s.gen
		s.mu.RUnlock()

		t, err := s.load(ctx, path)
		if err != nil {
			log.WithError(err).Debugf("caching empty table for %s", path)
			t = Table{}
		}

		s.mu.Lock()
		if gen == s.gen {
			s.tables[path] = t
			s.loads[path]++
		} else {
			log.Debugf("store reset while loading %s, not caching", path)
		}
		s.mu.Unlock()

		if err != nil {
			s.warn(sink, sourceWarning(path))
			warned = sink != nil
		}
		return t, nil
	})

	return v.(Table), warned
}

func (s *Store) cached(path string) (Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[path]
	return t, ok
}

// load calls the loader once. Cancellation of the caller's context is not
// propagated to the loader.
func (s *Store) load(ctx context.Context, path string) (t Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("%w: loader panic: %v", ErrSourceMalformed, r)
		}
	}()

	if s.loader == nil {
		return nil, fmt.Errorf("%w: no loader configured", ErrSourceAbsent)
	}

	log.Debugf("loading %s", path)
	t, err = s.loader.Load(context.WithoutCancel(ctx), path)
	switch {
	case err == nil && t == nil:
		return nil, ErrSourceMalformed
	case err == nil:
		return t, nil
	case errors.Is(err, ErrSourceAbsent), errors.Is(err, ErrSourceMalformed):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", ErrSourceMalformed, err)
	}
}

// warn stamps w and hands it to sink. A panicking sink is contained.
func (s *Store) warn(sink Sink, w Warning) {
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Debugf("warning sink panicked: %v", r)
		}
	}()

	w.Time = s.now()
	w.Level = LevelWarning
	sink.Record(w)
}
