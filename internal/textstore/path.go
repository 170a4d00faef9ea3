// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textstore

import (
	"regexp"
	"strings"
)

var separatorRun = regexp.MustCompile(`/{2,}`)

// PathKey builds the cache key for file under basePath: the base with its
// trailing separators removed, a single "/", the file and ext. Runs of
// separators anywhere in the result are collapsed to one. An empty basePath
// yields a path relative to the working directory.
func PathKey(basePath, file, ext string) string {
	var key string
	if basePath == "" {
		key = file + ext
	} else {
		key = strings.TrimRight(basePath, "/") + "/" + file + ext
	}
	return separatorRun.ReplaceAllString(key, "/")
}

// normalizeExt makes sure a non-empty extension starts with a dot.
func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
