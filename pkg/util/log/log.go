// Copyright 2025 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package log provides leveled, context-aware logging for the engine.
//
// The API mirrors the usual Infof/Warningf/Errorf surface; every entry is
// prefixed with the tags carried by the context (see logtags.AddTag), so a
// caller that tags its context with the table name gets that name on every
// flaw reported while operating on the table.
package log

import (
	"context"
	"fmt"

	"github.com/cockroachdb/logtags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base *zap.SugaredLogger

func init() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	l, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		panic(err)
	}
	base = l.Sugar()
}

// SetLogger replaces the backing logger. Intended for tests and for
// embedders that already own a zap instance.
func SetLogger(l *zap.Logger) {
	base = l.Sugar()
}

func expand(ctx context.Context, format string) string {
	if b := logtags.FromContext(ctx); b != nil {
		if s := b.String(); s != "" {
			return "[" + s + "] " + format
		}
	}
	return format
}

// Infof logs an informational message.
func Infof(ctx context.Context, format string, args ...interface{}) {
	base.Infof(expand(ctx, format), args...)
}

// Warningf logs a warning.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	base.Warnf(expand(ctx, format), args...)
}

// Errorf logs an error.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	base.Errorf(expand(ctx, format), args...)
}

// Fatalf logs and exits the process.
func Fatalf(ctx context.Context, format string, args ...interface{}) {
	base.Fatalf(expand(ctx, format), args...)
}

// WithTable returns a context tagged with a table name; the tag is
// rendered into every entry logged under the returned context.
func WithTable(ctx context.Context, name string) context.Context {
	return logtags.AddTag(ctx, "table", name)
}

// Flaw reports a recoverable degradation in an algebra operator: the
// operator logs here and then returns a safe (possibly empty or partial)
// result instead of failing its caller. method names the operation that
// degraded.
func Flaw(ctx context.Context, method, format string, args ...interface{}) {
	base.Errorf(expand(ctx, "flaw in %s: %s"), method, fmt.Sprintf(format, args...))
}
