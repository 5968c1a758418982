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

package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// ✍️ RewriteOperation rewrites the target in place
type RewriteOperation struct {
	BaseOperation
}

// 🏭 NewRewriteOperation creates a new rewrite operation
func NewRewriteOperation(opts Options) (*RewriteOperation, error) {
	base, err := newBaseOperation(opts)
	if err != nil {
		return nil, errors.Errorf("creating rewrite operation: %w", err)
	}
	return &RewriteOperation{BaseOperation: base}, nil
}

func (o *RewriteOperation) Name() string {
	return "rewrite"
}

// 🚀 Execute rewrites the target and writes it back atomically. The write
// happens even when no pass changed the content, so an unwritable target
// always fails.
func (o *RewriteOperation) Execute(ctx context.Context) error {
	target := o.Config.Target
	formatter := o.Files.Formatter()

	result, err := o.rewrite(ctx, false)
	if err != nil {
		return err
	}

	o.Logger.Print(formatter.FormatSummary(result) + "\n")
	o.Logger.Success(ctx, "conversion completed")
	o.Logger.Infof(ctx, "writing to %s", target)

	if o.Config.Backup {
		if err := o.Files.BackupFile(ctx, target); err != nil {
			o.Files.TrackError(ctx, target, err)
			return errors.Errorf("backing up %s: %w", target, err)
		}
	}

	if err := o.Files.WriteFileAtomic(ctx, target, result.ModifiedContent); err != nil {
		o.Files.TrackError(ctx, target, err)
		o.Logger.Errorf(ctx, "writing %s failed", target)
		if o.Config.Backup {
			if rerr := o.Files.RestoreFile(ctx, target); rerr != nil {
				return errors.Errorf("writing %s: %w (restoring backup: %v)", target, err, rerr)
			}
			o.Logger.Warningf(ctx, "restored %s from backup", target)
		}
		return errors.Errorf("writing %s: %w", target, err)
	}

	info := o.Files.Track(ctx, target, result.OriginalContent, result.ModifiedContent, result.ReplacementCount)
	o.Logger.Print(formatter.FormatFileOperation(target, info.Status, info.Replacements) + "\n")
	o.Logger.Success(ctx, "done")

	return nil
}
