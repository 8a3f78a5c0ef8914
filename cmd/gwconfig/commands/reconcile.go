package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/gwconfig/internal/config"
	"github.com/systmms/gwconfig/internal/store"
	"github.com/systmms/gwconfig/internal/workflow"
)

func NewReconcileCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Create missing parameters from their defaults",
		Long: `Create every cataloged parameter that is missing from the store and has a
default value. Existing values are never changed.

Parameters that are missing and have no default are reported so they can be
filled in with 'gwconfig configure'.`,
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

			report, err := workflow.NewReconciler(cat, st, rt.logger, rt.metrics).Reconcile(ctx)
			if err != nil {
				rt.logger.Error("Reconciliation failed: %v", err)
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range report.Created {
				def, _ := cat.Lookup(name)
				value, _ := def.DefaultValue()
				_, _ = fmt.Fprintf(out, "Created %s = %s\n", name, store.Display(name, value))
			}
			for _, name := range report.Missing {
				_, _ = fmt.Fprintf(out, "Missing %s (no default)\n", name)
			}
			_, _ = fmt.Fprintf(out, "%d created, %d existing, %d missing\n",
				len(report.Created), len(report.Existing), len(report.Missing))
			return nil
		},
	}
}
