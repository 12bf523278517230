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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sentgine/file/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

type fakeOperation struct {
	name     string
	err      error
	executed bool
}

func (f *fakeOperation) Name() string {
	return f.name
}

func (f *fakeOperation) Execute(ctx context.Context) error {
	f.executed = true
	return f.err
}

func TestRunner_Sync(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("runs_in_order", func(t *testing.T) {
		first := &fakeOperation{name: "first"}
		second := &fakeOperation{name: "second"}

		runner := NewRunner(&logger, false)
		require.NoError(t, runner.Run(context.Background(), first, second))

		assert.True(t, first.executed)
		assert.True(t, second.executed)
	})

	t.Run("stops_at_first_failure", func(t *testing.T) {
		failing := &fakeOperation{name: "failing", err: errors.New("boom")}
		after := &fakeOperation{name: "after"}

		runner := NewRunner(&logger, false)
		err := runner.Run(context.Background(), failing, after)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "executing failing")
		assert.False(t, after.executed, "later operations must not run after a failure")
	})
}

func TestRunner_Async(t *testing.T) {
	logger := zerolog.Nop()

	ops := []*fakeOperation{
		{name: "a"},
		{name: "b"},
		{name: "c"},
	}

	runner := NewRunner(&logger, true)
	require.NoError(t, runner.Run(context.Background(), ops[0], ops[1], ops[2]))

	for _, op := range ops {
		assert.True(t, op.executed, op.name)
	}
}

func TestCleanOperation(t *testing.T) {
	ctx := context.Background()

	t.Run("removes_destination", func(t *testing.T) {
		dir := t.TempDir()
		destination := filepath.Join(dir, "out")
		require.NoError(t, os.MkdirAll(filepath.Join(destination, "nested"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(destination, "nested", "f.txt"), []byte("x"), 0o644))

		plan := &config.Plan{Destination: destination}
		op, err := NewCleanOperation(newTestOptions(plan))
		require.NoError(t, err)

		require.NoError(t, op.Execute(ctx))

		_, statErr := os.Stat(destination)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("requires_destination", func(t *testing.T) {
		_, err := NewCleanOperation(newTestOptions(&config.Plan{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no destination")
	})
}
