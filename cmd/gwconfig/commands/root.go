package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/systmms/gwconfig/internal/config"
)

// flagKeys maps persistent flags to their settings keys
var flagKeys = map[string]string{
	"region":           "region",
	"profile":          "profile",
	"assume-role":      "assume_role",
	"endpoint-url":     "endpoint_url",
	"namespace":        "namespace",
	"catalog":          "catalog",
	"log-dir":          "log_dir",
	"update-script":    "update_script",
	"metrics-textfile": "metrics_textfile",
	"debug":            "debug",
}

// NewRootCommand builds the gwconfig command tree. Settings are loaded
// through v before any subcommand runs.
func NewRootCommand(cfg *config.Config, v *viper.Viper, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gwconfig",
		Short: "Manage IB Gateway parameters in AWS SSM Parameter Store",
		Long: `gwconfig keeps the IB Gateway deployment parameters in AWS SSM Parameter
Store up to date. Run without a subcommand to start the interactive session.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Load(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunConfigure(cmd, cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.Path, "config", "", "Settings file (default $HOME/.gwconfig.yaml)")
	flags.String("region", "", "AWS region (default us-east-1)")
	flags.String("profile", "", "AWS shared config profile")
	flags.String("assume-role", "", "IAM role ARN to assume before calling SSM")
	flags.String("endpoint-url", "", "Override the SSM endpoint, e.g. for LocalStack")
	flags.String("namespace", "", "Parameter path prefix (default /IB_Gateway/)")
	flags.String("catalog", "", "YAML file with extra parameter definitions")
	flags.String("log-dir", "", "Directory for run logs (default ~/.ib_gateway/logs)")
	flags.String("update-script", "", "Script that rebuilds the gateway (default ./update_ib_gateway.sh)")
	flags.String("metrics-textfile", "", "Write run metrics to this node-exporter textfile")
	flags.Bool("debug", false, "Enable debug logging")

	for flag, key := range flagKeys {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		NewConfigureCommand(cfg),
		NewReconcileCommand(cfg),
		NewListCommand(cfg),
		NewApplyCommand(cfg),
		NewCompletionCommand(cfg),
	)

	return rootCmd
}
