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
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"
)

// 🔍 CheckOperation computes what a rewrite would change without writing
type CheckOperation struct {
	BaseOperation

	showDiff bool

	pending    bool
	insertions int
	deletions  int
}

// 🏭 NewCheckOperation creates a new check operation. When showDiff is set the
// line diff is printed through the logger.
func NewCheckOperation(opts Options, showDiff bool) (*CheckOperation, error) {
	base, err := newBaseOperation(opts)
	if err != nil {
		return nil, errors.Errorf("creating check operation: %w", err)
	}
	return &CheckOperation{BaseOperation: base, showDiff: showDiff}, nil
}

func (o *CheckOperation) Name() string {
	return "check"
}

// 🚀 Execute runs the rules in memory and reports the difference
func (o *CheckOperation) Execute(ctx context.Context) error {
	target := o.Config.Target

	result, err := o.rewrite(ctx, true)
	if err != nil {
		return err
	}

	o.Logger.Print(o.Files.Formatter().FormatSummary(result) + "\n")

	before, after := string(result.OriginalContent), string(result.ModifiedContent)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	o.insertions, o.deletions = 0, 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			o.insertions += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			o.deletions += utf8.RuneCountInString(d.Text)
		}
	}
	o.pending = result.WasModified

	if !o.pending {
		o.Logger.Successf(ctx, "%s is up to date", target)
		return nil
	}

	o.Logger.Warningf(ctx, "%s needs rewriting (+%d -%d characters)", target, o.insertions, o.deletions)

	if o.showDiff {
		o.Logger.Print(lineDiff(dmp, before, after))
	}

	return nil
}

// ⏳ Pending reports whether the last Execute found changes to write
func (o *CheckOperation) Pending() bool {
	return o.pending
}

// 📊 Changes returns the inserted and deleted character counts of the last Execute
func (o *CheckOperation) Changes() (insertions, deletions int) {
	return o.insertions, o.deletions
}

// 📝 lineDiff renders a unified-style line diff with changed lines only
func lineDiff(dmp *diffmatchpatch.DiffMatchPatch, before, after string) string {
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		var c *color.Color
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, c = "+ ", add
		case diffmatchpatch.DiffDelete:
			prefix, c = "- ", del
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			sb.WriteString(c.Sprint(prefix+line) + "\n")
		}
	}
	return sb.String()
}
