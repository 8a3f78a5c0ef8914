package workflow

import (
	"context"
	"strings"

	"github.com/systmms/gwconfig/internal/catalog"
	"github.com/systmms/gwconfig/internal/console"
	"github.com/systmms/gwconfig/internal/logging"
	"github.com/systmms/gwconfig/internal/metrics"
	"github.com/systmms/gwconfig/internal/store"
)

// Intake lets the operator define parameters that are not in the catalog.
// Each new definition is added to the catalog and its value is written.
type Intake struct {
	catalog *catalog.Catalog
	store   store.Store
	console console.Console
	logger  *logging.Logger
	metrics *metrics.Recorder
}

// NewIntake creates an Intake
func NewIntake(cat *catalog.Catalog, st store.Store, con console.Console, logger *logging.Logger, rec *metrics.Recorder) *Intake {
	return &Intake{
		catalog: cat,
		store:   st,
		console: con,
		logger:  logger,
		metrics: rec,
	}
}

// Run loops until the operator enters an empty name and reports whether any
// parameter was added. Names are always placed under the catalog namespace;
// absolute names are refused. Unlike the Editor, the value of a new parameter is
// written even when it is empty.
func (in *Intake) Run(ctx context.Context) (bool, error) {
	added := false

	for {
		short, err := in.console.Ask("Enter the name of the new variable (leave empty to finish): ")
		if err != nil {
			return added, err
		}
		if short == "" {
			return added, nil
		}

		if strings.HasPrefix(short, "/") {
			in.logger.Warn("Rejected custom variable %s outside namespace %s", short, in.catalog.Namespace())
			in.console.Say("Variable names are relative to %s and must not start with '/'. Skipping.", in.catalog.Namespace())
			continue
		}

		name := in.catalog.Namespace() + short
		if in.catalog.Has(name) {
			in.logger.Info("Variable %s already exists, skipping", name)
			in.console.Say("Variable %s already exists. Skipping.", name)
			continue
		}

		description, err := in.console.Ask("Enter a description for the variable: ")
		if err != nil {
			return added, err
		}
		defaultValue, err := in.console.Ask("Enter a default value (leave empty for none): ")
		if err != nil {
			return added, err
		}
		categoryAnswer, err := in.console.Ask("Enter the category (Main/Advanced): ")
		if err != nil {
			return added, err
		}

		def := catalog.Definition{
			Name:        name,
			Category:    catalog.ParseCategory(categoryAnswer),
			Description: description,
		}
		if defaultValue != "" {
			def.Default = &defaultValue
		}
		if err := in.catalog.Add(def); err != nil {
			return added, err
		}

		value, err := in.console.Ask("Enter value for " + name + ": ")
		if err != nil {
			return added, err
		}
		if err := in.store.Put(ctx, name, value); err != nil {
			return added, err
		}
		in.metrics.ParameterWritten(metrics.SourceIntake, string(def.Category))
		in.logger.Info("Added custom parameter %s (%s)", name, def.Category)
		in.console.Say("Parameter %s added.", name)
		added = true
	}
}
