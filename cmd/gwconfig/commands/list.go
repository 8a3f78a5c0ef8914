package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/systmms/gwconfig/internal/catalog"
	"github.com/systmms/gwconfig/internal/config"
	dserrors "github.com/systmms/gwconfig/internal/errors"
	"github.com/systmms/gwconfig/internal/store"
)

const notSet = "<not set>"

func NewListCommand(cfg *config.Config) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged parameters with their current values",
		Long: `List the parameter catalog together with the values currently held in the
store. Sensitive values are masked.

Examples:
  # Everything
  gwconfig list

  # Only the main settings
  gwconfig list --category main`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *catalog.Category
			switch strings.ToLower(strings.TrimSpace(category)) {
			case "":
			case "main":
				c := catalog.Main
				filter = &c
			case "advanced":
				c := catalog.Advanced
				filter = &c
			default:
				return dserrors.UserError{
					Message:    fmt.Sprintf("Unknown category '%s'", category),
					Suggestion: "Use --category main or --category advanced",
				}
			}

			ctx := cmd.Context()
			rt, err := newRuntime(cmd, cfg, false)
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

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "NAME\tCATEGORY\tVALUE\tDEFAULT\n")
			_, _ = fmt.Fprintf(w, "----\t--------\t-----\t-------\n")

			for _, def := range cat.Definitions() {
				if filter != nil && def.Category != *filter {
					continue
				}

				value, found, err := st.Fetch(ctx, def.Name)
				if err != nil {
					_ = w.Flush()
					return err
				}
				shown := notSet
				if found {
					shown = store.Display(def.Name, value)
				}

				defaultValue := "-"
				if d, ok := def.DefaultValue(); ok {
					defaultValue = store.Display(def.Name, d)
				}

				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.Name, def.Category, shown, defaultValue)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list one category (main or advanced)")

	return cmd
}
