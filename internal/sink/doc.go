// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package sink holds the destinations for lookup warnings: the process
// logger, an append-only JSON-lines file, an in-memory recorder and a fan-out.
package sink
