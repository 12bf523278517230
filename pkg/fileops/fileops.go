// Package fileops is a thin wrapper over native file and directory
// primitives: create, read, overwrite, delete and copy files, create
// directories, recursively remove directories, and substitute placeholders
// when copying a text file's content to a destination.
//
// An Operator carries a configured source path, destination path and
// directory-creation mode. Operators are immutable: WithSourcePath and
// WithDestinationPath return copies, so a configured Operator can be shared
// and re-scoped without hidden state. Every operation is a single-shot,
// synchronous call against the filesystem; nothing is held open between
// calls and no locking is performed, so concurrent callers on the same path
// get whatever atomicity the underlying filesystem provides.
package fileops

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/sentgine/file/pkg/text"
)

// DefaultDirMode is the creation mode for directories. Permissive by
// default; the process umask still applies.
const DefaultDirMode os.FileMode = 0o777

// Operator exposes the file and directory operations. The zero value is
// usable with explicit paths on every call.
type Operator struct {
	sourcePath      string
	destinationPath string
	dirMode         os.FileMode
}

// Option configures an Operator at construction time.
type Option func(*Operator)

// WithDirMode overrides the directory-creation mode.
func WithDirMode(mode os.FileMode) Option {
	return func(o *Operator) {
		o.dirMode = mode
	}
}

// New creates an Operator with the default directory mode.
func New(opts ...Option) *Operator {
	o := &Operator{dirMode: DefaultDirMode}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSourcePath returns a copy of the Operator with the given source path.
// The path is stored verbatim: no normalization, no existence check.
func (o *Operator) WithSourcePath(path string) *Operator {
	c := *o
	c.sourcePath = path
	return &c
}

// WithDestinationPath returns a copy of the Operator with the given
// destination path, stored verbatim.
func (o *Operator) WithDestinationPath(path string) *Operator {
	c := *o
	c.destinationPath = path
	return &c
}

// SourcePath returns the configured source path.
func (o *Operator) SourcePath() string {
	return o.sourcePath
}

// DestinationPath returns the configured destination path.
func (o *Operator) DestinationPath() string {
	return o.destinationPath
}

func (o *Operator) mode() os.FileMode {
	if o.dirMode == 0 {
		return DefaultDirMode
	}
	return o.dirMode
}

// CreateDirectories creates each of the given directories, including missing
// intermediate directories. Paths are processed in order; the first failure
// stops processing. An empty path fails with KindInvalidPath. A path whose
// parent chain is blocked by a non-directory fails with KindMissingParent
// before any creation is attempted for it. A path that already exists as a
// directory is skipped.
func (o *Operator) CreateDirectories(ctx context.Context, paths ...string) error {
	logger := zerolog.Ctx(ctx)

	for _, path := range paths {
		if path == "" {
			return newError(KindInvalidPath, "create_directories", path, nil)
		}

		if blocked(path) {
			return newError(KindMissingParent, "create_directories", path, nil)
		}

		if info, err := os.Stat(path); err == nil && info.IsDir() {
			logger.Debug().Str("path", path).Msg("directory already exists, skipping")
			continue
		}

		if err := os.MkdirAll(path, o.mode()); err != nil {
			return newError(KindCreateFailed, "create_directories", path, err)
		}
		logger.Debug().Str("path", path).Msg("directory created")
	}

	return nil
}

// blocked reports whether the parent chain of path cannot come to exist
// because its nearest existing ancestor is not a directory.
func blocked(path string) bool {
	parent := filepath.Dir(path)
	for {
		info, err := os.Stat(parent)
		if err == nil {
			return !info.IsDir()
		}
		next := filepath.Dir(parent)
		if next == parent {
			return false
		}
		parent = next
	}
}

// CreateFile writes content as the full body of the configured destination
// path. The destination must not already exist; use UpdateFile to overwrite.
func (o *Operator) CreateFile(ctx context.Context, content []byte) error {
	path := o.destinationPath

	if _, err := os.Stat(path); err == nil {
		return newError(KindAlreadyExists, "create_file", path, nil)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return newError(KindWriteFailed, "create_file", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("file created")
	return nil
}

// ReadFile returns the full content of the configured source path.
func (o *Operator) ReadFile(ctx context.Context) ([]byte, error) {
	path := o.sourcePath

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(KindNotFound, "read_file", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("file read")
	return content, nil
}

// UpdateFile overwrites the full content of the configured destination path.
// The destination must already exist.
func (o *Operator) UpdateFile(ctx context.Context, content []byte) error {
	path := o.destinationPath

	if _, err := os.Stat(path); err != nil {
		return newError(KindNotFound, "update_file", path, err)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return newError(KindWriteFailed, "update_file", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("file updated")
	return nil
}

// DeleteFile removes the configured destination path.
func (o *Operator) DeleteFile(ctx context.Context) error {
	path := o.destinationPath

	if _, err := os.Stat(path); err != nil {
		return newError(KindNotFound, "delete_file", path, err)
	}

	if err := os.Remove(path); err != nil {
		return newError(KindDeleteFailed, "delete_file", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("file deleted")
	return nil
}

// CopyFile copies source to destination byte for byte. Empty arguments
// default to the configured paths. An existing destination is overwritten
// silently; there is no AlreadyExists check here, unlike CreateFile.
func (o *Operator) CopyFile(ctx context.Context, source, destination string) error {
	if source == "" {
		source = o.sourcePath
	}
	if destination == "" {
		destination = o.destinationPath
	}

	if _, err := os.Stat(source); err != nil {
		return newError(KindNotFound, "copy_file", source, err)
	}

	if err := copyContents(source, destination); err != nil {
		return newError(KindCopyFailed, "copy_file", destination, err)
	}

	zerolog.Ctx(ctx).Debug().Str("source", source).Str("destination", destination).Msg("file copied")
	return nil
}

func copyContents(source, destination string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(destination)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// ReplaceOptions configures ReplaceContent. Zero values mean the defaults:
// the text.DefaultFormat token format and the Operator's configured paths.
type ReplaceOptions struct {
	PlaceholderFormat string
	SourcePath        string
	DestinationPath   string
}

// ReplaceContent reads the source file, replaces every occurrence of each
// placeholder token with its value, and writes the result to the
// destination. Tokens are built by substituting each replacement key into
// the single slot of the placeholder format (default "{{ %s }}").
//
// Replacements apply one after another in map iteration order, which Go
// randomizes. A value that introduces text matching another placeholder's
// token participates in that placeholder's substitution if it happens to be
// applied later; this is input-dependent behavior, not a guarantee.
func (o *Operator) ReplaceContent(ctx context.Context, replacements map[string]string, opts ReplaceOptions) error {
	source := opts.SourcePath
	if source == "" {
		source = o.sourcePath
	}
	destination := opts.DestinationPath
	if destination == "" {
		destination = o.destinationPath
	}

	content, err := os.ReadFile(source)
	if err != nil {
		return newError(KindNotFound, "replace_content", source, err)
	}

	result := text.NewReplacer(opts.PlaceholderFormat).Replace(content, replacements)

	if err := os.WriteFile(destination, result.ModifiedContent, 0o644); err != nil {
		return newError(KindWriteFailed, "replace_content", destination, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", source).
		Str("destination", destination).
		Int("replacements", result.ReplacementCount).
		Msg("content replaced")
	return nil
}

// RemoveDirectory recursively removes the directory at path and everything
// beneath it, bottom-up. An empty path defaults to the configured source
// path. Removal is best-effort on files: a file that cannot be unlinked is
// skipped silently and surfaces only through the containing directory's
// removal failing with KindRemoveFailed. Concurrent modification of the tree
// during removal is undefined behavior.
func (o *Operator) RemoveDirectory(ctx context.Context, path string) error {
	if path == "" {
		path = o.sourcePath
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return newError(KindNotDirectory, "remove_directory", path, err)
	}

	if err := removeTree(path); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("directory removed")
	return nil
}

func removeTree(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return newError(KindRemoveFailed, "remove_directory", dir, err)
	}

	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := removeTree(child); err != nil {
				return err
			}
			continue
		}
		// Best-effort: per-file failures are swallowed, the directory
		// removal below raises instead.
		_ = os.Remove(child)
	}

	if err := os.Remove(dir); err != nil {
		return newError(KindRemoveFailed, "remove_directory", dir, err)
	}
	return nil
}
