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
	"github.com/walteh/rewriterc/pkg/text"
)

// 🎨 Display configuration
const (
	passIndent  = 4  // spaces to indent pass entries
	nameWidth   = 35 // Base width for rule name
	kindWidth   = 15 // Width for rule kind
	statusWidth = 15 // Width for status text
)

// 📦 RewriteOperation describes a rewrite run for logging
type RewriteOperation struct {
	Target string // File being rewritten
	Preset string // Preset name, empty for custom rules only
	Rules  int    // Number of rules in the sequence
	DryRun bool   // Whether the file will be left untouched
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *RewriteOperation
	passes    []text.PassResult
}

// 🏭 New creates a new logger writing user output to console and events to zlog
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

// events returns the context logger when one is attached, so run-scoped
// fields like run_id end up on every event
func (l *Logger) events(ctx context.Context) *zerolog.Logger {
	if zl := zerolog.Ctx(ctx); zl.GetLevel() != zerolog.Disabled {
		return zl
	}
	return &l.zlog
}

// 📝 formatPass formats a pass result for display
func (l *Logger) formatPass(pass text.PassResult) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case pass.Skipped:
		symbol = '-'
		symbolColor = color.FgHiBlack
		status = "filtered"
	case pass.Guarded:
		symbol = '•'
		symbolColor = color.FgCyan
		status = "applied"
	case pass.Matches == 0:
		symbol = '!'
		symbolColor = color.FgYellow
		status = "no match"
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
		status = fmt.Sprintf("%d", pass.Matches)
		if pass.Matches == 1 {
			status += " match"
		} else {
			status += " matches"
		}
	}

	var kindColor color.Attribute
	switch pass.Kind {
	case text.KindRegex:
		kindColor = color.FgBlue
	case text.KindInsertAfter:
		kindColor = color.FgMagenta
	default:
		kindColor = color.FgCyan
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", passIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, pass.Name),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, pass.Kind)),
		fmt.Sprintf("%-*s", statusWidth, status))
}

// 📝 LogPass logs the outcome of one rule
func (l *Logger) LogPass(ctx context.Context, pass text.PassResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.passes = append(l.passes, pass)

	fmt.Fprintln(l.console, l.formatPass(pass))

	zl := l.events(ctx)
	ev := zl.Info()
	if !pass.Skipped && !pass.Guarded && pass.Matches == 0 {
		ev = zl.Warn()
	}
	ev.Str("rule", pass.Name).
		Str("kind", string(pass.Kind)).
		Int("matches", pass.Matches).
		Bool("skipped", pass.Skipped).
		Bool("guarded", pass.Guarded).
		Msg("rewrite pass")
}

// 📝 StartRewrite starts a new rewrite run
func (l *Logger) StartRewrite(ctx context.Context, op RewriteOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.passes = nil

	verb := "rewriting"
	if op.DryRun {
		verb = "checking"
	}
	fmt.Fprintf(l.console, "[%s %s]\n", verb, color.New(color.FgCyan).Sprint(op.Target))

	name := op.Preset
	if name == "" {
		name = "custom"
	}
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d rules", op.Rules))

	l.events(ctx).Info().
		Str("target", op.Target).
		Str("preset", op.Preset).
		Int("rules", op.Rules).
		Bool("dry_run", op.DryRun).
		Msg("starting rewrite")
}

// 📝 EndRewrite ends the current rewrite run
func (l *Logger) EndRewrite(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	matches, unmatched := 0, 0
	for _, p := range l.passes {
		matches += p.Matches
		if !p.Skipped && !p.Guarded && p.Matches == 0 {
			unmatched++
		}
	}

	l.events(ctx).Info().
		Str("target", l.currentOp.Target).
		Int("passes", len(l.passes)).
		Int("matches", matches).
		Int("unmatched", unmatched).
		Msg("rewrite complete")

	l.currentOp = nil
	l.passes = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(ctx context.Context, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("rewriterc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.events(ctx).Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(ctx context.Context, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.events(ctx).Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(ctx context.Context, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.events(ctx).Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(ctx context.Context, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.events(ctx).Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(ctx context.Context, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.events(ctx).Info().Msg(msg)
}

// 📝 Print writes msg to the console verbatim, without a prefix
func (l *Logger) Print(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(ctx context.Context, format string, args ...interface{}) {
	l.Info(ctx, fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(ctx context.Context, format string, args ...interface{}) {
	l.Warning(ctx, fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(ctx context.Context, format string, args ...interface{}) {
	l.Error(ctx, fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(ctx context.Context, format string, args ...interface{}) {
	l.Success(ctx, fmt.Sprintf(format, args...))
}
