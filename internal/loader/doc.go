// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package loader reads text tables from a Source (local filesystem or S3) and
// decodes them with a Codec (yaml, json or hcl). A File satisfies
// textstore.Loader.
package loader
