// Package workflow implements the interactive configuration run: default
// reconciliation, the per-category editor, custom parameter intake and the
// session that strings them together.
package workflow

import (
	"context"

	"github.com/systmms/gwconfig/internal/catalog"
	"github.com/systmms/gwconfig/internal/logging"
	"github.com/systmms/gwconfig/internal/metrics"
	"github.com/systmms/gwconfig/internal/store"
)

// ReconcileReport lists what a reconciliation pass found
type ReconcileReport struct {
	// Created holds parameters that were absent and got their default
	Created []string
	// Existing holds parameters that already had a value
	Existing []string
	// Missing holds parameters that are absent and have no default
	Missing []string
}

// Reconciler makes sure every cataloged parameter exists, writing defaults
// where they are defined. Existing values are never overwritten.
type Reconciler struct {
	catalog *catalog.Catalog
	store   store.Store
	logger  *logging.Logger
	metrics *metrics.Recorder
}

// NewReconciler creates a Reconciler
func NewReconciler(cat *catalog.Catalog, st store.Store, logger *logging.Logger, rec *metrics.Recorder) *Reconciler {
	return &Reconciler{
		catalog: cat,
		store:   st,
		logger:  logger,
		metrics: rec,
	}
}

// Reconcile walks the catalog in order. A store failure aborts the pass.
func (r *Reconciler) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	for _, def := range r.catalog.Definitions() {
		_, found, err := r.store.Fetch(ctx, def.Name)
		if err != nil {
			return report, err
		}
		if found {
			report.Existing = append(report.Existing, def.Name)
			continue
		}

		value, ok := def.DefaultValue()
		if !ok {
			r.logger.Info("Parameter %s does not exist and has no default value", def.Name)
			report.Missing = append(report.Missing, def.Name)
			continue
		}

		if err := r.store.Put(ctx, def.Name, value); err != nil {
			return report, err
		}
		r.metrics.ParameterWritten(metrics.SourceReconcile, string(def.Category))
		r.logger.Info("Created parameter %s with default value: %s", def.Name, store.Display(def.Name, value))
		report.Created = append(report.Created, def.Name)
	}

	return report, nil
}
