package workflow

import (
	"context"

	"github.com/systmms/gwconfig/internal/catalog"
	"github.com/systmms/gwconfig/internal/store"
)

// SensitiveValues returns the current values of every sensitive cataloged
// parameter. It is read when needed, so values changed earlier in the run
// are included.
func SensitiveValues(cat *catalog.Catalog, st store.Store) func(ctx context.Context) ([]string, error) {
	return func(ctx context.Context) ([]string, error) {
		var values []string
		for _, def := range cat.Definitions() {
			if !store.IsSensitive(def.Name) {
				continue
			}
			value, found, err := st.Fetch(ctx, def.Name)
			if err != nil {
				return nil, err
			}
			if found && value != "" {
				values = append(values, value)
			}
		}
		return values, nil
	}
}
