// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package textstore resolves (base, file, key) lookups against text tables
// loaded through an injected Loader and memoized for the life of a Store.
package textstore
