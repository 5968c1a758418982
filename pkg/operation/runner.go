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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes operations in order
type Runner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// 🏃 Run executes the operations in order and stops on the first error. Every
// log line written during the run carries the same run_id.
func (r *Runner) Run(ctx context.Context, ops ...Operation) error {
	runID := uuid.NewString()
	logger := r.logger.With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("run cancelled before %s: %w", op.Name(), err)
		}

		logger.Debug().Str("operation", op.Name()).Msg("running operation")
		if err := op.Execute(ctx); err != nil {
			logger.Error().Err(err).Str("operation", op.Name()).Msg("operation failed")
			return errors.Errorf("running %s: %w", op.Name(), err)
		}
	}

	return nil
}
