package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sentgine/file/cmd/filectl/opts"
	"github.com/sentgine/file/pkg/fileops"
	"github.com/sentgine/file/pkg/log"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewMkdirCmd creates the mkdir command
func NewMkdirCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir PATH...",
		Short: "Create directories, including missing intermediate directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "mkdir").Logger().WithContext(cmd.Context())

			if err := o.Ops.CreateDirectories(ctx, args...); err != nil {
				return errors.Errorf("creating directories: %w", err)
			}
			for _, path := range args {
				o.Console.LogFileOperation(ctx, log.FileOperation{Path: path, Op: "mkdir", IsNew: true})
			}
			return nil
		},
	}
}

// NewCreateCmd creates the create command
func NewCreateCmd(o *opts.RootOpts) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "create [PATH]",
		Short: "Create a new file with the given content",
		Long:  `Create writes content as the full body of a new file. It refuses to touch a file that already exists; use update for that. When PATH is omitted the --destination flag supplies it.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "create").Logger().WithContext(cmd.Context())

			op := destinationScoped(o.Ops, args)
			if err := op.CreateFile(ctx, []byte(content)); err != nil {
				return errors.Errorf("creating file: %w", err)
			}
			o.Console.LogFileOperation(ctx, log.FileOperation{Path: op.DestinationPath(), Op: "create", IsNew: true})
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "file content")
	return cmd
}

// NewCatCmd creates the cat command
func NewCatCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "cat [PATH]",
		Short: "Print the full content of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "cat").Logger().WithContext(cmd.Context())

			content, err := sourceScoped(o.Ops, args).ReadFile(ctx)
			if err != nil {
				return errors.Errorf("reading file: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(content))
			return nil
		},
	}
}

// NewUpdateCmd creates the update command
func NewUpdateCmd(o *opts.RootOpts) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "update [PATH]",
		Short: "Overwrite the full content of an existing file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "update").Logger().WithContext(cmd.Context())

			op := destinationScoped(o.Ops, args)
			if err := op.UpdateFile(ctx, []byte(content)); err != nil {
				return errors.Errorf("updating file: %w", err)
			}
			o.Console.LogFileOperation(ctx, log.FileOperation{Path: op.DestinationPath(), Op: "update", IsModified: true})
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "file content")
	return cmd
}

// NewRmCmd creates the rm command
func NewRmCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [PATH]",
		Short: "Delete a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "rm").Logger().WithContext(cmd.Context())

			op := destinationScoped(o.Ops, args)
			if err := op.DeleteFile(ctx); err != nil {
				return errors.Errorf("deleting file: %w", err)
			}
			o.Console.LogFileOperation(ctx, log.FileOperation{Path: op.DestinationPath(), Op: "rm", IsRemoved: true})
			return nil
		},
	}
}

// NewCpCmd creates the cp command
func NewCpCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "cp [SOURCE [DESTINATION]]",
		Short: "Copy a file byte for byte, overwriting the destination",
		Long:  `Cp copies the source file to the destination. Omitted arguments fall back to the --source and --destination flags.`,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "cp").Logger().WithContext(cmd.Context())

			source, destination := arg(args, 0), arg(args, 1)
			if destination == "" {
				destination = o.Ops.DestinationPath()
			}
			if err := o.Ops.CopyFile(ctx, source, destination); err != nil {
				return errors.Errorf("copying file: %w", err)
			}
			o.Console.LogFileOperation(ctx, log.FileOperation{Path: destination, Op: "copy", IsNew: true})
			return nil
		},
	}
}

// NewRenderCmd creates the render command
func NewRenderCmd(o *opts.RootOpts) *cobra.Command {
	var (
		sets   []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "render [SOURCE [DESTINATION]]",
		Short: "Copy a text file, substituting placeholder tokens",
		Long: `Render reads the source file, replaces every occurrence of each
placeholder token with its value, and writes the result to the destination.
Tokens are built from the placeholder format; with the default format
"{{ %s }}", --set name=World replaces "{{ name }}" with "World". Omitted
arguments fall back to the --source and --destination flags.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "render").Logger().WithContext(cmd.Context())

			replacements, err := parseReplacements(sets)
			if err != nil {
				return err
			}

			destination := arg(args, 1)
			if destination == "" {
				destination = o.Ops.DestinationPath()
			}
			err = o.Ops.ReplaceContent(ctx, replacements, fileops.ReplaceOptions{
				PlaceholderFormat: format,
				SourcePath:        arg(args, 0),
				DestinationPath:   destination,
			})
			if err != nil {
				return errors.Errorf("rendering file: %w", err)
			}
			o.Console.LogFileOperation(ctx, log.FileOperation{
				Path:         destination,
				Op:           "render",
				IsNew:        true,
				Replacements: len(replacements),
			})
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "placeholder value as name=value (repeatable)")
	cmd.Flags().StringVar(&format, "format", "", `placeholder token format (default "{{ %s }}")`)
	return cmd
}

// NewRmdirCmd creates the rmdir command
func NewRmdirCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "rmdir [PATH]",
		Short: "Recursively remove a directory and everything beneath it",
		Long:  `Rmdir removes the directory and everything beneath it. When PATH is omitted the --source flag supplies it.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "rmdir").Logger().WithContext(cmd.Context())

			path := arg(args, 0)
			if path == "" {
				path = o.Ops.SourcePath()
			}
			if err := o.Ops.RemoveDirectory(ctx, path); err != nil {
				return errors.Errorf("removing directory: %w", err)
			}
			o.Console.LogFileOperation(ctx, log.FileOperation{Path: path, Op: "remove", IsRemoved: true})
			return nil
		},
	}
}

// arg returns the i-th positional argument or "" when it was omitted
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// sourceScoped returns the operator scoped to an explicit source path when
// one was given
func sourceScoped(op *fileops.Operator, args []string) *fileops.Operator {
	if len(args) > 0 {
		return op.WithSourcePath(args[0])
	}
	return op
}

// destinationScoped returns the operator scoped to an explicit destination
// path when one was given
func destinationScoped(op *fileops.Operator, args []string) *fileops.Operator {
	if len(args) > 0 {
		return op.WithDestinationPath(args[0])
	}
	return op
}

// parseReplacements parses repeated name=value flags into a replacement map
func parseReplacements(sets []string) (map[string]string, error) {
	replacements := make(map[string]string, len(sets))
	for _, set := range sets {
		name, value, ok := strings.Cut(set, "=")
		if !ok || name == "" {
			return nil, errors.Errorf("invalid --set %q: expected name=value", set)
		}
		replacements[name] = value
	}
	return replacements, nil
}
