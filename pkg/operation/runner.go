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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes operations
type Runner struct {
	logger *zerolog.Logger
	async  bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, async bool) *Runner {
	return &Runner{
		logger: logger,
		async:  async,
	}
}

// 🏃 Run executes the given operations in order, or concurrently when the
// runner is async.
func (r *Runner) Run(ctx context.Context, ops ...Operation) error {
	if r.async {
		return r.runAsync(ctx, ops)
	}
	return r.runSync(ctx, ops)
}

// 🔄 runSync runs operations one after another
func (r *Runner) runSync(ctx context.Context, ops []Operation) error {
	for _, op := range ops {
		r.logger.Debug().Str("operation", op.Name()).Msg("executing operation")
		if err := op.Execute(ctx); err != nil {
			return errors.Errorf("executing %s: %w", op.Name(), err)
		}
	}
	return nil
}

// ⚡ runAsync runs operations concurrently and waits for all of them
func (r *Runner) runAsync(ctx context.Context, ops []Operation) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, op := range ops {
		op := op
		r.logger.Debug().Str("operation", op.Name()).Msg("executing operation async")
		g.Go(func() error {
			if err := op.Execute(gctx); err != nil {
				return errors.Errorf("executing %s: %w", op.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
