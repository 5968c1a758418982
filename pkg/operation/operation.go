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

// Package operation provides the rewrite and check operations for rewriterc
package operation

import (
	"bytes"
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/status"
	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a single unit of work executed by the Runner
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🗄️ FileStore is the file access an operation needs; *status.Manager implements it
type FileStore interface {
	status.FileManager
	Track(ctx context.Context, path string, before, after []byte, replacements int) status.FileInfo
	TrackError(ctx context.Context, path string, err error)
	GetFileInfo(ctx context.Context, path string) (status.FileInfo, error)
	Formatter() status.FileFormatter
}

// 🔧 Options contains everything an operation needs
type Options struct {
	// Config is the resolved rewriterc configuration
	Config *config.Config
	// Rules is the ordered rule sequence, usually from Config.ResolveRules
	Rules []text.Rule
	// Rewriter applies the rules
	Rewriter text.Rewriter
	// Files reads and writes the target
	Files FileStore
	// Logger renders progress for the user
	Logger *log.Logger
}

// 🏗️ BaseOperation holds the shared plumbing for all operations
type BaseOperation struct {
	Options
}

func newBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Config == nil {
		return BaseOperation{}, errors.Errorf("config is required")
	}
	if opts.Config.Target == "" {
		return BaseOperation{}, errors.Errorf("target is required")
	}
	if opts.Rewriter == nil {
		return BaseOperation{}, errors.Errorf("rewriter is required")
	}
	if opts.Files == nil {
		return BaseOperation{}, errors.Errorf("file manager is required")
	}
	if opts.Logger == nil {
		return BaseOperation{}, errors.Errorf("logger is required")
	}
	if len(opts.Rules) == 0 {
		rules, err := opts.Config.ResolveRules()
		if err != nil {
			return BaseOperation{}, errors.Errorf("resolving rules: %w", err)
		}
		opts.Rules = rules
	}
	return BaseOperation{Options: opts}, nil
}

// 🔄 rewrite reads the target and runs every rule against it, reporting each pass
func (b *BaseOperation) rewrite(ctx context.Context, dryRun bool) (*text.RewriteResult, error) {
	logger := zerolog.Ctx(ctx)
	target := b.Config.Target

	exists, err := b.Files.FileExists(ctx, target)
	if err != nil {
		b.Files.TrackError(ctx, target, err)
		return nil, errors.Errorf("reading target: %w", err)
	}
	if !exists {
		err := errors.Errorf("target %s not found: %w", target, os.ErrNotExist)
		b.Files.TrackError(ctx, target, err)
		return nil, errors.Errorf("reading target: %w", err)
	}

	content, err := b.Files.ReadFile(ctx, target)
	if err != nil {
		b.Files.TrackError(ctx, target, err)
		return nil, errors.Errorf("reading target: %w", err)
	}

	b.Logger.StartRewrite(ctx, log.RewriteOperation{
		Target: target,
		Preset: b.Config.Preset,
		Rules:  len(b.Rules),
		DryRun: dryRun,
	})

	result, err := b.Rewriter.Rewrite(ctx, target, bytes.NewReader(content), b.Rules)
	if err != nil {
		b.Files.TrackError(ctx, target, err)
		return nil, errors.Errorf("rewriting %s: %w", target, err)
	}

	for _, pass := range result.Passes {
		b.Logger.LogPass(ctx, pass)
	}
	b.Logger.EndRewrite(ctx)
	b.Logger.LogNewline()

	logger.Debug().
		Str("target", target).
		Bool("modified", result.WasModified).
		Int("replacements", result.ReplacementCount).
		Msg("rewrite finished")

	return result, nil
}
