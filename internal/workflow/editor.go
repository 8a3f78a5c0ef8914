package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/systmms/gwconfig/internal/catalog"
	"github.com/systmms/gwconfig/internal/console"
	"github.com/systmms/gwconfig/internal/logging"
	"github.com/systmms/gwconfig/internal/metrics"
	"github.com/systmms/gwconfig/internal/store"
)

// Editor walks the operator through a list of parameters, showing the
// current value and offering to replace it
type Editor struct {
	catalog *catalog.Catalog
	store   store.Store
	console console.Console
	logger  *logging.Logger
	metrics *metrics.Recorder
}

// NewEditor creates an Editor
func NewEditor(cat *catalog.Catalog, st store.Store, con console.Console, logger *logging.Logger, rec *metrics.Recorder) *Editor {
	return &Editor{
		catalog: cat,
		store:   st,
		console: con,
		logger:  logger,
		metrics: rec,
	}
}

// Edit prompts for each name in order and reports whether any value was
// written. Empty answers never write.
func (e *Editor) Edit(ctx context.Context, names []string, category catalog.Category) (bool, error) {
	changed := false
	e.logger.Info("Managing %s parameters", category)

	for _, name := range names {
		def, ok := e.catalog.Lookup(name)
		if !ok {
			return changed, fmt.Errorf("parameter %s is not in the catalog", name)
		}

		current, found, err := e.store.Fetch(ctx, name)
		if err != nil {
			return changed, err
		}

		prompt := describe(def, current, found)

		if found {
			change, err := console.Confirm(e.console, prompt+"Would you like to change it? (yes/no): ")
			if err != nil {
				return changed, err
			}
			if !change {
				continue
			}
			value, err := e.console.Ask("Enter new value: ")
			if err != nil {
				return changed, err
			}
			if value == "" {
				e.logger.Info("No new value entered for %s, keeping current value", name)
				continue
			}
			if err := e.store.Put(ctx, name, value); err != nil {
				return changed, err
			}
			e.metrics.ParameterWritten(metrics.SourceEditor, string(def.Category))
			e.logger.Info("Parameter %s updated", name)
			e.console.Say("Parameter %s updated.", name)
			changed = true
			continue
		}

		value, err := e.console.Ask(prompt + "Enter value: ")
		if err != nil {
			return changed, err
		}
		if value == "" {
			e.logger.Info("No value entered for %s, leaving it unset", name)
			continue
		}
		if err := e.store.Put(ctx, name, value); err != nil {
			return changed, err
		}
		e.metrics.ParameterWritten(metrics.SourceEditor, string(def.Category))
		e.logger.Info("Parameter %s created", name)
		e.console.Say("Parameter %s created.", name)
		changed = true
	}

	return changed, nil
}

// describe builds the block shown before each question. The current value
// line appears only when the parameter exists.
func describe(def catalog.Definition, current string, found bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", def.Name, def.Category)
	fmt.Fprintf(&b, "Description: %s\n", def.Description)
	if value, ok := def.DefaultValue(); ok {
		fmt.Fprintf(&b, "Default: %s\n", value)
	}
	if found {
		fmt.Fprintf(&b, "Current value: %s\n", store.Display(def.Name, current))
	}
	return b.String()
}
