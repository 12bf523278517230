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

// Package operation executes validated plans against the filesystem.
package operation

import (
	"context"
	"path/filepath"

	"github.com/sentgine/file/pkg/config"
	"github.com/sentgine/file/pkg/fileops"
	"github.com/sentgine/file/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work executed by the runner
type Operation interface {
	// Name returns the operation name for logging
	Name() string
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔧 Options contains the dependencies shared by all operations
type Options struct {
	// Plan is the validated plan to execute
	Plan *config.Plan
	// Ops performs the actual filesystem calls
	Ops *fileops.Operator
	// Logger prints per-entry status lines
	Logger *log.Logger
}

func (opts Options) validate() error {
	if opts.Plan == nil {
		return errors.Errorf("plan is required")
	}
	if opts.Ops == nil {
		return errors.Errorf("operator is required")
	}
	if opts.Logger == nil {
		return errors.Errorf("logger is required")
	}
	return nil
}

// 📦 BaseOperation holds the shared dependencies
type BaseOperation struct {
	Plan   *config.Plan
	Ops    *fileops.Operator
	Logger *log.Logger
}

// 🏭 NewBaseOperation creates a BaseOperation from options
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{
		Plan:   opts.Plan,
		Ops:    opts.Ops,
		Logger: opts.Logger,
	}
}

// resolve joins a relative entry path onto a root. Absolute paths and empty
// roots pass through untouched.
func resolve(root, path string) string {
	if root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
