// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "log"

// Logger is the minimal diagnostic sink the interpreter uses for the rare
// case a secondary failure has nowhere better to go than a log line (see
// [Scheduler.ReportFailure] for the normal path). *log.Logger satisfies
// this out of the box; tests typically pass a recording stub instead.
type Logger interface {
	Printf(format string, args ...any)
}

// stdLogger adapts the standard library's default logger to [Logger].
var stdLogger Logger = log.Default()

// DefaultLogger returns the package-wide fallback logger, used by
// schedulers and handlers that were not given one explicitly.
func DefaultLogger() Logger {
	return stdLogger
}
