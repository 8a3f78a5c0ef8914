package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/gwconfig/internal/config"
	"github.com/systmms/gwconfig/internal/workflow"
)

func NewConfigureCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Review and update gateway parameters interactively",
		Long: `Run an interactive configuration pass.

Missing parameters that have a default are created first. You are then
walked through the main settings (credentials, trading mode), optionally the
advanced settings, and can add custom variables. If anything changed you can
apply it straight away with the update script or leave it for the next build.

Sensitive values (names containing "password" or "token") are shown masked.
Every run writes a log file to the log directory.

Examples:
  # Configure the default namespace
  gwconfig configure

  # Configure a paper-trading gateway in another region
  gwconfig configure --namespace /Paper_Gateway/ --region eu-west-1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunConfigure(cmd, cfg)
		},
	}
}

// RunConfigure runs one interactive session. The root command uses it too.
func RunConfigure(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()

	rt, err := newRuntime(cmd, cfg, true)
	if err != nil {
		return err
	}
	defer rt.close()

	cat, err := rt.catalog()
	if err != nil {
		rt.logger.Error("Catalog error: %v", err)
		return err
	}
	st, err := rt.store(ctx)
	if err != nil {
		rt.logger.Error("Store error: %v", err)
		return err
	}
	con := rt.console(cmd)

	session := &workflow.Session{
		Catalog: cat,
		Store:   st,
		Console: con,
		Logger:  rt.logger,
		Metrics: rt.metrics,
		Trigger: rt.trigger(con, workflow.SensitiveValues(cat, st)),
	}

	summary, err := session.Run(ctx)
	if err != nil {
		rt.logger.Error("Configuration run failed: %v", err)
		return err
	}

	rt.logger.Info("Run finished: %d defaults created, changed=%t, update=%s",
		len(summary.Reconcile.Created), summary.Changed, outcomeName(summary))
	return nil
}

func outcomeName(summary workflow.Summary) string {
	if summary.Update == "" {
		return "none"
	}
	return string(summary.Update)
}
