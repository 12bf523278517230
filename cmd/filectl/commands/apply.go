package commands

import (
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/sentgine/file/cmd/filectl/opts"
	"github.com/sentgine/file/pkg/config"
	"github.com/sentgine/file/pkg/log"
	"github.com/sentgine/file/pkg/operation"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates the apply command
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	var planFile string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Execute a plan file against the filesystem",
		Long: `Apply loads a plan file and executes it in order:
1. Create the plan's directories
2. Produce its file entries (literal content, copies, rendered copies)
3. Copy its directory trees, honoring ignore patterns
4. Run its recursive removals`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())

			plan, err := config.Load(ctx, planFile)
			if err != nil {
				return errors.Errorf("loading plan: %w", err)
			}

			o.Console.StartPlanOperation(ctx, log.PlanOperation{
				PlanPath:    planFile,
				Destination: plan.Destination,
				Entries:     plan.EntryCount(),
			})
			defer o.Console.EndPlanOperation(ctx)

			op, err := operation.NewApplyOperation(operation.Options{
				Plan:   plan,
				Ops:    o.Ops,
				Logger: o.Console,
			})
			if err != nil {
				return errors.Errorf("creating apply operation: %w", err)
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx), plan.Async)
			if err := runner.Run(ctx, op); err != nil {
				pterm.Error.WithPrefix(pterm.Prefix{Text: "✖"}).Println("plan failed")
				return errors.Errorf("applying plan: %w", err)
			}

			pterm.Success.WithPrefix(pterm.Prefix{Text: "✔"}).Printfln("applied %s", plan.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&planFile, "plan", "p", "fileplan.yaml", "plan file path")
	return cmd
}
