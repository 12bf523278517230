package fileops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.txt")

	op := New().WithDestinationPath(path).WithSourcePath(path)

	require.NoError(t, op.CreateFile(ctx, []byte("hello world")))

	content, err := op.ReadFile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))
}

func TestCreateFile_AlreadyExists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	op := New().WithDestinationPath(path)

	err := op.CreateFile(ctx, []byte("replacement"))
	require.Error(t, err)
	assert.Equal(t, KindAlreadyExists, KindOf(err))

	// Existing content must be untouched
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "original", string(content))
}

func TestOperations_NotFound(t *testing.T) {
	ctx := context.Background()
	missing := filepath.Join(t.TempDir(), "missing.txt")

	tests := []struct {
		name string
		call func(op *Operator) error
	}{
		{
			name: "read_file",
			call: func(op *Operator) error {
				_, err := op.ReadFile(ctx)
				return err
			},
		},
		{
			name: "update_file",
			call: func(op *Operator) error {
				return op.UpdateFile(ctx, []byte("content"))
			},
		},
		{
			name: "delete_file",
			call: func(op *Operator) error {
				return op.DeleteFile(ctx)
			},
		},
		{
			name: "copy_file_source",
			call: func(op *Operator) error {
				return op.CopyFile(ctx, "", "")
			},
		},
		{
			name: "replace_content_source",
			call: func(op *Operator) error {
				return op.ReplaceContent(ctx, map[string]string{"name": "x"}, ReplaceOptions{})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := New().WithSourcePath(missing).WithDestinationPath(missing)

			err := tt.call(op)
			require.Error(t, err)
			assert.Equal(t, KindNotFound, KindOf(err))

			// No filesystem mutation
			_, statErr := os.Stat(missing)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestUpdateFile_OverwritesContent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("first version with some length"), 0o644))

	op := New().WithDestinationPath(path)
	require.NoError(t, op.UpdateFile(ctx, []byte("v2")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(content), "update should truncate before writing")
}

func TestDeleteFile_RemovesFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "doomed.txt")
	require.NoError(t, os.WriteFile(path, []byte("bye"), 0o644))

	op := New().WithDestinationPath(path)
	require.NoError(t, op.DeleteFile(ctx))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCopyFile(t *testing.T) {
	ctx := context.Background()

	t.Run("copies_byte_for_byte", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.bin")
		dst := filepath.Join(dir, "dst.bin")
		payload := []byte{0x00, 0xFF, 0x10, '\n', 0x7F}
		require.NoError(t, os.WriteFile(src, payload, 0o644))

		require.NoError(t, New().CopyFile(ctx, src, dst))

		content, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, payload, content)
	})

	t.Run("overwrites_existing_destination", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.txt")
		dst := filepath.Join(dir, "dst.txt")
		require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
		require.NoError(t, os.WriteFile(dst, []byte("old content that is longer"), 0o644))

		require.NoError(t, New().CopyFile(ctx, src, dst))

		content, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("defaults_to_configured_paths", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "configured-src.txt")
		dst := filepath.Join(dir, "configured-dst.txt")
		require.NoError(t, os.WriteFile(src, []byte("configured"), 0o644))

		op := New().WithSourcePath(src).WithDestinationPath(dst)
		require.NoError(t, op.CopyFile(ctx, "", ""))

		content, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "configured", string(content))
	})
}

func TestReplaceContent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		content      string
		replacements map[string]string
		opts         ReplaceOptions
		want         string
	}{
		{
			name:         "default_format",
			content:      "Hello {{ name }}!",
			replacements: map[string]string{"name": "World"},
			want:         "Hello World!",
		},
		{
			name:         "empty_replacements_copy_unchanged",
			content:      "Hello {{ name }}!",
			replacements: map[string]string{},
			want:         "Hello {{ name }}!",
		},
		{
			name:         "custom_format",
			content:      "Hello <name>!",
			replacements: map[string]string{"name": "World"},
			opts:         ReplaceOptions{PlaceholderFormat: "<%s>"},
			want:         "Hello World!",
		},
		{
			name:         "every_occurrence_replaced",
			content:      "{{ x }} and {{ x }} and {{ x }}",
			replacements: map[string]string{"x": "y"},
			want:         "y and y and y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "template.txt")
			dst := filepath.Join(dir, "rendered.txt")
			require.NoError(t, os.WriteFile(src, []byte(tt.content), 0o644))

			opts := tt.opts
			opts.SourcePath = src
			opts.DestinationPath = dst

			require.NoError(t, New().ReplaceContent(ctx, tt.replacements, opts))

			content, err := os.ReadFile(dst)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(content))
		})
	}
}

func TestCreateDirectories(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_through_missing_intermediate", func(t *testing.T) {
		dir := t.TempDir()
		a := filepath.Join(dir, "a")
		require.NoError(t, os.Mkdir(a, 0o755))

		target := filepath.Join(a, "b", "c")
		require.NoError(t, New().CreateDirectories(ctx, target))

		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("empty_path_invalid", func(t *testing.T) {
		dir := t.TempDir()

		err := New().CreateDirectories(ctx, "")
		require.Error(t, err)
		assert.Equal(t, KindInvalidPath, KindOf(err))

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries, "nothing should be created")
	})

	t.Run("existing_directory_is_noop", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, New().CreateDirectories(ctx, dir))
	})

	t.Run("stops_at_first_failure", func(t *testing.T) {
		dir := t.TempDir()
		after := filepath.Join(dir, "after")

		err := New().CreateDirectories(ctx, filepath.Join(dir, "before"), "", after)
		require.Error(t, err)
		assert.Equal(t, KindInvalidPath, KindOf(err))

		_, statErr := os.Stat(after)
		assert.True(t, os.IsNotExist(statErr), "paths after the failure must not be created")
	})

	t.Run("parent_chain_blocked_by_file", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o644))

		err := New().CreateDirectories(ctx, filepath.Join(blocker, "child"))
		require.Error(t, err)
		assert.Equal(t, KindMissingParent, KindOf(err))
	})

	t.Run("multiple_paths_in_order", func(t *testing.T) {
		dir := t.TempDir()
		first := filepath.Join(dir, "first")
		second := filepath.Join(dir, "second", "nested")

		require.NoError(t, New().CreateDirectories(ctx, first, second))

		for _, p := range []string{first, second} {
			info, err := os.Stat(p)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		}
	})
}

func TestRemoveDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("removes_nested_tree", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "root")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deeper"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("1"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "mid.txt"), []byte("2"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "deeper", "leaf.txt"), []byte("3"), 0o644))

		require.NoError(t, New().RemoveDirectory(ctx, root))

		_, err := os.Stat(root)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("second_removal_not_directory", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "once")
		require.NoError(t, os.Mkdir(root, 0o755))

		op := New()
		require.NoError(t, op.RemoveDirectory(ctx, root))

		err := op.RemoveDirectory(ctx, root)
		require.Error(t, err)
		assert.Equal(t, KindNotDirectory, KindOf(err))
	})

	t.Run("file_target_not_directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "plain.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		err := New().RemoveDirectory(ctx, path)
		require.Error(t, err)
		assert.Equal(t, KindNotDirectory, KindOf(err))
	})

	t.Run("defaults_to_configured_source", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "configured")
		require.NoError(t, os.Mkdir(root, 0o755))

		require.NoError(t, New().WithSourcePath(root).RemoveDirectory(ctx, ""))

		_, err := os.Stat(root)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestOperator_Immutability(t *testing.T) {
	base := New().WithSourcePath("src").WithDestinationPath("dst")

	scoped := base.WithSourcePath("other")

	assert.Equal(t, "src", base.SourcePath(), "original operator must not change")
	assert.Equal(t, "other", scoped.SourcePath())
	assert.Equal(t, "dst", scoped.DestinationPath(), "destination carries over")
}
