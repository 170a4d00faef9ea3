// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output provides filtering, sorting and emission of table rows used
// by commands to present results in various formats.
package output
