package workflow

import (
	"context"

	"github.com/systmms/gwconfig/internal/catalog"
	"github.com/systmms/gwconfig/internal/console"
	"github.com/systmms/gwconfig/internal/logging"
	"github.com/systmms/gwconfig/internal/metrics"
	"github.com/systmms/gwconfig/internal/store"
	"github.com/systmms/gwconfig/internal/update"
)

// Summary describes a finished session
type Summary struct {
	Reconcile ReconcileReport
	Changed   bool
	// Update is empty when nothing changed
	Update update.Outcome
}

// Session runs one interactive configuration pass
type Session struct {
	Catalog *catalog.Catalog
	Store   store.Store
	Console console.Console
	Logger  *logging.Logger
	Metrics *metrics.Recorder
	Trigger *update.Trigger
}

// Run reconciles defaults, lets the operator edit the Main and Advanced
// parameters and add custom ones, then offers to apply any changes.
//
// When no Main parameter holds an operator-set value, the Main settings are
// requested directly instead of being skipped, so a first run always asks for
// credentials. Defaults written by this run's reconciliation do not count.
func (s *Session) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	report, err := NewReconciler(s.Catalog, s.Store, s.Logger, s.Metrics).Reconcile(ctx)
	if err != nil {
		return summary, err
	}
	summary.Reconcile = report

	editor := NewEditor(s.Catalog, s.Store, s.Console, s.Logger, s.Metrics)

	mainNames := s.Catalog.Names(catalog.Main)
	mainExists, err := s.anyValue(ctx, mainNames, report.Created)
	if err != nil {
		return summary, err
	}

	editMain := true
	if mainExists {
		editMain, err = console.Confirm(s.Console,
			"Main config exists. Would you like to change any main settings (username, password, etc.)? (yes/no): ")
		if err != nil {
			return summary, err
		}
	} else {
		s.Logger.Info("No main config found, prompting for main settings")
		s.Console.Say("No main config found. Please enter the main settings.")
	}
	if editMain {
		changed, err := editor.Edit(ctx, mainNames, catalog.Main)
		summary.Changed = summary.Changed || changed
		if err != nil {
			return summary, err
		}
	}

	editAdvanced, err := console.Confirm(s.Console, "Would you like to add or change advanced settings? (yes/no): ")
	if err != nil {
		return summary, err
	}
	if editAdvanced {
		changed, err := editor.Edit(ctx, s.Catalog.Names(catalog.Advanced), catalog.Advanced)
		summary.Changed = summary.Changed || changed
		if err != nil {
			return summary, err
		}
	}

	addCustom, err := console.Confirm(s.Console, "Would you like to add custom variables? (yes/no): ")
	if err != nil {
		return summary, err
	}
	if addCustom {
		added, err := NewIntake(s.Catalog, s.Store, s.Console, s.Logger, s.Metrics).Run(ctx)
		summary.Changed = summary.Changed || added
		if err != nil {
			return summary, err
		}
	}

	if !summary.Changed {
		s.Logger.Info("No changes were made")
		s.Console.Say("No changes were made.")
		return summary, nil
	}

	outcome, err := s.Trigger.Offer(ctx)
	if err != nil {
		return summary, err
	}
	summary.Update = outcome
	return summary, nil
}

// anyValue reports whether any of names has a non-empty value. Names in
// skip, the defaults written by this run, do not count.
func (s *Session) anyValue(ctx context.Context, names, skip []string) (bool, error) {
	skipped := make(map[string]bool, len(skip))
	for _, name := range skip {
		skipped[name] = true
	}

	for _, name := range names {
		if skipped[name] {
			continue
		}
		value, found, err := s.Store.Fetch(ctx, name)
		if err != nil {
			return false, err
		}
		if found && value != "" {
			return true, nil
		}
	}
	return false, nil
}
