package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/systmms/gwconfig/internal/config"
	dserrors "github.com/systmms/gwconfig/internal/errors"
	"github.com/systmms/gwconfig/internal/workflow"
)

func NewApplyCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Run the update script now",
		Long: `Run the gateway update script without prompting, for example after
changing parameters with another tool. Script output is written to the run
log only, with sensitive parameter values redacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := newRuntime(cmd, cfg, true)
			if err != nil {
				return err
			}
			defer rt.close()

			cat, err := rt.catalog()
			if err != nil {
				return err
			}
			st, err := rt.store(ctx)
			if err != nil {
				return err
			}

			trigger := rt.trigger(rt.console(cmd), workflow.SensitiveValues(cat, st))
			if _, err := trigger.Apply(ctx); err != nil {
				var cmdErr dserrors.CommandError
				if !errors.As(err, &cmdErr) {
					return err
				}
				cmdErr.Suggestion = "Check the run log for the script output"
				if rt.logPath != "" {
					cmdErr.Suggestion += ": " + rt.logPath
				}
				return cmdErr
			}
			return nil
		},
	}
}
