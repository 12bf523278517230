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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sentgine/file/pkg/config"
	"github.com/sentgine/file/pkg/fileops"
	"github.com/sentgine/file/pkg/log"
	"github.com/sentgine/file/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📦 NewApplyOperation creates the operation that executes a plan
func NewApplyOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	return &applyOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// 📦 applyOperation implements the apply operation
type applyOperation struct {
	BaseOperation
}

func (op *applyOperation) Name() string {
	return "apply"
}

// 🏃 Execute runs the plan: directories, then files, then trees, then removals
func (op *applyOperation) Execute(ctx context.Context) error {
	if len(op.Plan.Directories) > 0 {
		if err := op.createDirectories(ctx); err != nil {
			return errors.Errorf("creating directories: %w", err)
		}
	}

	for i, entry := range op.Plan.Files {
		if err := op.processFile(ctx, entry); err != nil {
			return errors.Errorf("processing file %d (%s): %w", i, entry.Destination, err)
		}
	}

	for i, tree := range op.Plan.Trees {
		if err := op.processTree(ctx, tree); err != nil {
			return errors.Errorf("processing tree %d (%s): %w", i, tree.Source, err)
		}
	}

	for _, path := range op.Plan.Removals {
		target := resolve(op.Plan.Destination, path)
		if err := op.Ops.RemoveDirectory(ctx, target); err != nil {
			return errors.Errorf("removing %s: %w", target, err)
		}
		op.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:      target,
			Op:        "remove",
			IsRemoved: true,
		})
	}

	return nil
}

// 📁 createDirectories creates the plan's directory entries in order
func (op *applyOperation) createDirectories(ctx context.Context) error {
	for _, dir := range op.Plan.Directories {
		target := resolve(op.Plan.Destination, dir)
		if err := op.Ops.CreateDirectories(ctx, target); err != nil {
			return err
		}
		op.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:  target,
			Op:    "mkdir",
			IsNew: true,
		})
	}
	return nil
}

// 📄 processFile produces a single file entry
func (op *applyOperation) processFile(ctx context.Context, entry config.FileEntry) error {
	destination := resolve(op.Plan.Destination, entry.Destination)

	// Literal content entry
	if entry.Content != nil {
		content := []byte(*entry.Content)
		replacements := 0
		if len(entry.Replacements) > 0 {
			result := text.NewReplacer(entry.PlaceholderFormat).Replace(content, entry.Replacements)
			content = result.ModifiedContent
			replacements = result.ReplacementCount
		}

		scoped := op.Ops.WithDestinationPath(destination)
		_, statErr := os.Stat(destination)
		exists := statErr == nil

		var err error
		if exists && entry.Overwrite {
			err = scoped.UpdateFile(ctx, content)
		} else {
			// Fails with KindAlreadyExists when the file exists and
			// overwrite was not requested.
			err = scoped.CreateFile(ctx, content)
		}
		if err != nil {
			return errors.Errorf("writing %s: %w", destination, err)
		}

		op.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:         destination,
			Op:           "create",
			IsNew:        !exists,
			IsModified:   exists,
			Replacements: replacements,
		})
		return nil
	}

	// Copied entry, rendered when replacements are present
	source := resolve(op.Plan.Source, entry.Source)
	if len(entry.Replacements) > 0 {
		err := op.Ops.ReplaceContent(ctx, entry.Replacements, fileops.ReplaceOptions{
			PlaceholderFormat: entry.PlaceholderFormat,
			SourcePath:        source,
			DestinationPath:   destination,
		})
		if err != nil {
			return errors.Errorf("rendering %s: %w", source, err)
		}
		op.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:         destination,
			Op:           "render",
			IsNew:        true,
			Replacements: len(entry.Replacements),
		})
		return nil
	}

	if err := op.Ops.CopyFile(ctx, source, destination); err != nil {
		return errors.Errorf("copying %s: %w", source, err)
	}
	op.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:  destination,
		Op:    "copy",
		IsNew: true,
	})
	return nil
}

// 🌲 processTree copies a directory tree, honoring ignore patterns
func (op *applyOperation) processTree(ctx context.Context, tree config.TreeEntry) error {
	source := resolve(op.Plan.Source, tree.Source)
	destination := resolve(op.Plan.Destination, tree.Destination)

	var files []string
	err := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return errors.Errorf("walking tree %s: %w", source, err)
	}

	process := func(ctx context.Context, rel string) error {
		if op.shouldIgnore(ctx, tree, rel) {
			op.Logger.LogFileOperation(ctx, log.FileOperation{
				Path:      rel,
				Op:        "ignore",
				IsSkipped: true,
			})
			return nil
		}
		return op.processTreeFile(ctx, tree, source, destination, rel)
	}

	// Independent files fan out when the plan is async; the per-file calls
	// themselves stay synchronous.
	if op.Plan.Async {
		g, gctx := errgroup.WithContext(ctx)
		for _, rel := range files {
			rel := rel
			g.Go(func() error {
				return process(gctx, rel)
			})
		}
		return g.Wait()
	}

	for _, rel := range files {
		if err := process(ctx, rel); err != nil {
			return err
		}
	}
	return nil
}

// 📄 processTreeFile copies or renders one file of a tree
func (op *applyOperation) processTreeFile(ctx context.Context, tree config.TreeEntry, source, destination, rel string) error {
	src := filepath.Join(source, rel)
	dst := filepath.Join(destination, rel)

	if parent := filepath.Dir(dst); parent != "." {
		if err := op.Ops.CreateDirectories(ctx, parent); err != nil {
			return errors.Errorf("creating parent of %s: %w", dst, err)
		}
	}

	if len(tree.Replacements) > 0 {
		err := op.Ops.ReplaceContent(ctx, tree.Replacements, fileops.ReplaceOptions{
			PlaceholderFormat: tree.PlaceholderFormat,
			SourcePath:        src,
			DestinationPath:   dst,
		})
		if err != nil {
			return errors.Errorf("rendering %s: %w", src, err)
		}
		op.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:         dst,
			Op:           "render",
			IsNew:        true,
			Replacements: len(tree.Replacements),
		})
		return nil
	}

	if err := op.Ops.CopyFile(ctx, src, dst); err != nil {
		return errors.Errorf("copying %s: %w", src, err)
	}
	op.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:  dst,
		Op:    "copy",
		IsNew: true,
	})
	return nil
}

// 🔍 shouldIgnore checks a tree-relative path against the ignore patterns
func (op *applyOperation) shouldIgnore(ctx context.Context, tree config.TreeEntry, rel string) bool {
	if len(tree.IgnorePatterns) == 0 {
		return false
	}

	slashed := filepath.ToSlash(rel)
	for _, pattern := range tree.IgnorePatterns {
		matched, err := doublestar.Match(pattern, slashed)
		if err != nil {
			op.Logger.Warningf("bad ignore pattern %q: %v", pattern, err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
