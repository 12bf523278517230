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

	"github.com/sentgine/file/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🧹 NewCleanOperation creates the operation that removes a plan's output
func NewCleanOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	if opts.Plan.Destination == "" {
		return nil, errors.Errorf("plan has no destination to clean")
	}
	return &cleanOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// 🧹 cleanOperation implements the clean operation
type cleanOperation struct {
	BaseOperation
}

func (op *cleanOperation) Name() string {
	return "clean"
}

// 🏃 Execute recursively removes the plan destination
func (op *cleanOperation) Execute(ctx context.Context) error {
	if err := op.Ops.RemoveDirectory(ctx, op.Plan.Destination); err != nil {
		return errors.Errorf("removing destination %s: %w", op.Plan.Destination, err)
	}

	op.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:      op.Plan.Destination,
		Op:        "remove",
		IsRemoved: true,
	})

	return nil
}
