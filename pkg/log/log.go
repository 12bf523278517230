// Copyright 2025 sentgine
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
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for path
	opWidth    = 12 // Width for operation name
)

// 🎯 FileOperation represents a file operation for logging
type FileOperation struct {
	Path         string // File or directory path
	Op           string // Operation name (create/copy/render/remove/...)
	IsNew        bool   // Whether this created something new
	IsModified   bool   // Whether an existing file was overwritten
	IsRemoved    bool   // Whether the target was removed
	IsSkipped    bool   // Whether the entry was skipped (ignored/no-op)
	Replacements int    // Number of placeholder replacements made
}

// 📦 PlanOperation represents a plan run for logging
type PlanOperation struct {
	PlanPath    string // Path of the plan file
	Destination string // Destination root
	Entries     int    // Number of plan entries
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *PlanOperation
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
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

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsRemoved:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case op.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.FgBlue).Sprint(fmt.Sprintf("%-*s", opWidth, op.Op)))

	if op.Replacements > 0 {
		line += color.New(color.Faint).Sprint(fmt.Sprintf(" %d replacements", op.Replacements))
	}

	return line
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to operations list
	l.operations = append(l.operations, op)

	// Format and print
	fmt.Fprintln(l.console, l.formatFileOperation(op))

	// Log to zerolog
	l.zlog.Info().
		Str("path", op.Path).
		Str("op", op.Op).
		Bool("is_new", op.IsNew).
		Bool("is_modified", op.IsModified).
		Bool("is_removed", op.IsRemoved).
		Bool("is_skipped", op.IsSkipped).
		Int("replacements", op.Replacements).
		Msg("file operation")
}

// 📝 StartPlanOperation starts a new plan run
func (l *Logger) StartPlanOperation(ctx context.Context, op PlanOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	// Print plan header
	fmt.Fprintf(l.console, "[applying %s]\n",
		color.New(color.FgCyan).Sprint(op.PlanPath))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Destination),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(fmt.Sprintf("%d entries", op.Entries)))

	// Log to zerolog
	l.zlog.Info().
		Str("plan", op.PlanPath).
		Str("destination", op.Destination).
		Int("entries", op.Entries).
		Msg("starting plan operation")
}

// 📝 EndPlanOperation ends the current plan run
func (l *Logger) EndPlanOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	// Log summary
	l.zlog.Info().
		Str("plan", l.currentOp.PlanPath).
		Int("operations", len(l.operations)).
		Msg("plan operation complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("filectl")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
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

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
