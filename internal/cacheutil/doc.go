// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cacheutil keeps remote object bodies on disk so that separate runs
// can skip downloads. It never caches parsed tables.
package cacheutil
