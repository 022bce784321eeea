// Copyright AFDScan Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package alog provides the logging interface injected into the discovery
// engine, so library code depends on an interface rather than a concrete
// logging framework.
package alog

import (
	log "github.com/sirupsen/logrus"
)

// Logger abstracts the two log levels the search needs: info (each peak,
// each minimal FD) and debug (start of each RHS search, detailed tracing).
// No format is required to be stable.
type Logger interface {
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

// Logrus adapts a *logrus.Logger to the Logger interface. It holds no
// process-wide mutable state of its own; callers own the *logrus.Logger they
// pass in.
type Logrus struct {
	log *log.Logger
}

// NewLogrus wraps an existing *logrus.Logger.
func NewLogrus(logger *log.Logger) *Logrus {
	return &Logrus{logger}
}

// NewDefault constructs a Logrus wrapping a fresh *logrus.Logger at Info
// level, matching the teacher's default verbosity before --verbose is seen.
func NewDefault() *Logrus {
	logger := log.New()
	logger.SetLevel(log.InfoLevel)

	return &Logrus{logger}
}

// SetVerbose raises the wrapped logger to debug level, mirroring the
// teacher's --verbose handling in its debug subcommands.
func (l *Logrus) SetVerbose(verbose bool) {
	if verbose {
		l.log.SetLevel(log.DebugLevel)
	} else {
		l.log.SetLevel(log.InfoLevel)
	}
}

// Infof logs at info level.
func (l *Logrus) Infof(format string, args ...any) {
	l.log.Infof(format, args...)
}

// Debugf logs at debug level.
func (l *Logrus) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

// Noop discards every log message. Useful for tests that want deterministic
// output with no log noise.
type Noop struct{}

// Infof discards the message.
func (Noop) Infof(string, ...any) {}

// Debugf discards the message.
func (Noop) Debugf(string, ...any) {}
