package commands

import (
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/sentgine/file/cmd/filectl/opts"
	"github.com/sentgine/file/pkg/config"
	"github.com/sentgine/file/pkg/operation"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewCleanCmd creates the clean command
func NewCleanCmd(o *opts.RootOpts) *cobra.Command {
	var planFile string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Recursively remove a plan's destination directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "clean").Logger().WithContext(cmd.Context())

			plan, err := config.Load(ctx, planFile)
			if err != nil {
				return errors.Errorf("loading plan: %w", err)
			}

			op, err := operation.NewCleanOperation(operation.Options{
				Plan:   plan,
				Ops:    o.Ops,
				Logger: o.Console,
			})
			if err != nil {
				return errors.Errorf("creating clean operation: %w", err)
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx), false)
			if err := runner.Run(ctx, op); err != nil {
				return errors.Errorf("cleaning destination: %w", err)
			}

			pterm.Success.WithPrefix(pterm.Prefix{Text: "✔"}).Printfln("removed %s", plan.Destination)
			return nil
		},
	}

	cmd.Flags().StringVarP(&planFile, "plan", "p", "fileplan.yaml", "plan file path")
	return cmd
}
