// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	runIndent  = 4  // spaces to indent run entries
	nameWidth  = 30 // width for the input name
	modeWidth  = 8  // width for the mode
	keyWidth   = 10 // width for the key pair
	bytesWidth = 12 // width for the byte count
)

// 🎯 RunOperation describes a finished cipher run for display
type RunOperation struct {
	Input     string // input path, "-" for stdin
	Mode      string // encode or decode
	Key       string // key pair as (a, b)
	Bytes     int64  // bytes transformed
	Letters   int64  // bytes that were letters
	LogPath   string // transcript path, empty when disabled
	LogFailed bool   // whether the transcript stopped early
}

// 🎯 Logger prints user-facing messages to the console and mirrors them into zerolog.
// The console is stderr in the CLI: stdout carries cipher output only.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatRunOperation formats a run for display
func (l *Logger) formatRunOperation(op RunOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.LogFailed:
		symbol = '⚠'
		symbolColor = color.FgYellow
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	modeColor := color.FgCyan
	if op.Mode == "decode" {
		modeColor = color.FgMagenta
	}

	line := fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", runIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Input),
		color.New(modeColor).Sprint(fmt.Sprintf("%-*s", modeWidth, op.Mode)),
		fmt.Sprintf("%-*s", keyWidth, op.Key),
		fmt.Sprintf("%-*s", bytesWidth, fmt.Sprintf("%d bytes", op.Bytes)))

	if op.LogPath != "" {
		line += color.New(color.Faint).Sprint("→ " + op.LogPath)
	}
	return line
}

// 📝 LogRunOperation prints a summary of a finished run
func (l *Logger) LogRunOperation(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatRunOperation(op))

	l.zlog.Info().
		Str("input", op.Input).
		Str("mode", op.Mode).
		Str("key", op.Key).
		Int64("bytes", op.Bytes).
		Int64("letters", op.Letters).
		Str("log_path", op.LogPath).
		Bool("log_failed", op.LogFailed).
		Msg("run complete")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("acipher")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
