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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// ErrPending is returned by check --exit-code when the target would change
var ErrPending = errors.Base("target needs rewriting")

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		showDiff bool
		exitCode bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report what run would change without writing",
		Long: `Check applies every rule in memory and reports the result.
It will:
1. Read the target
2. Apply each rule in order, reporting matches per rule
3. Count inserted and deleted characters
4. Print the changed lines when --diff is set

The target is never written. With --exit-code the command fails when
the target would change, which is useful in CI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

			log.FromContext(ctx).Header(ctx, opts.Config.String())

			op, err := operation.NewCheckOperation(opts.OperationOptions(ctx), showDiff)
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			if err := operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op); err != nil {
				return errors.Errorf("checking: %w", err)
			}

			if op.Pending() && exitCode {
				return errors.WithStack(ErrPending)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "print the changed lines")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit non-zero when the target would change")

	return cmd
}
