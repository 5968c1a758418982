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
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Rewrite the target file in place",
		Long: `Run applies every rule to the target and writes the result back.
It will:
1. Read the target
2. Apply each rule in order, reporting matches per rule
3. Back up the original when --backup is set
4. Write the result through a temp file and rename

Running rewriterc with no subcommand is the same as run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), opts)
		},
	}

	return cmd
}

// 🚀 Run rewrites the configured target
func Run(ctx context.Context, opts *opts.RootOpts) error {
	ctx = zerolog.Ctx(ctx).With().Str("command", "run").Logger().WithContext(ctx)

	log.FromContext(ctx).Header(ctx, opts.Config.String())

	op, err := operation.NewRewriteOperation(opts.OperationOptions(ctx))
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	if err := operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op); err != nil {
		return errors.Errorf("rewriting: %w", err)
	}

	return nil
}
