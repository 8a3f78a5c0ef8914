package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/gwconfig/internal/errors"
)

// fileSchema validates catalog extension documents before decoding
const fileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["parameters"],
  "additionalProperties": false,
  "properties": {
    "parameters": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "description"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1, "pattern": "^[A-Za-z0-9_.\\-/]+$"},
          "category": {"type": "string", "enum": ["Main", "Advanced", "main", "advanced"]},
          "description": {"type": "string"},
          "default": {"type": "string"}
        }
      }
    }
  }
}`

// File is the on-disk format of a catalog extension
type File struct {
	Parameters []FileParameter `yaml:"parameters" json:"parameters"`
}

// FileParameter is one definition in a catalog extension file
type FileParameter struct {
	Name        string  `yaml:"name" json:"name"`
	Category    string  `yaml:"category,omitempty" json:"category,omitempty"`
	Description string  `yaml:"description" json:"description"`
	Default     *string `yaml:"default,omitempty" json:"default,omitempty"`
}

// LoadFile reads a catalog extension file and adds its definitions to c.
// Short names are placed under the catalog namespace.
func (c *Catalog) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, dserrors.ConfigError{
				Field:      "catalog",
				Value:      path,
				Message:    "catalog file not found",
				Suggestion: "Check the --catalog path or remove the flag to use the built-in catalog",
			}
		}
		return 0, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return 0, dserrors.ConfigError{
			Field:      "catalog",
			Value:      path,
			Message:    "invalid YAML syntax in catalog file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
		}
	}
	if err := validateFile(raw); err != nil {
		return 0, dserrors.ConfigError{
			Field:      "catalog",
			Value:      path,
			Message:    err.Error(),
			Suggestion: "Each entry needs a name and a description; quote numeric defaults",
		}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}

	for _, p := range f.Parameters {
		def := Definition{
			Name:        c.FullName(p.Name),
			Category:    ParseCategory(p.Category),
			Description: p.Description,
			Default:     p.Default,
		}
		if err := c.Add(def); err != nil {
			return 0, dserrors.ConfigError{
				Field:      "catalog.parameters",
				Value:      def.Name,
				Message:    err.Error(),
				Suggestion: "Remove the duplicate entry from the catalog file",
			}
		}
	}

	return len(f.Parameters), nil
}

// validateFile checks a decoded YAML document against fileSchema
func validateFile(doc interface{}) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(fileSchema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var errorMessages []string
		for _, desc := range result.Errors() {
			errorMessages = append(errorMessages, desc.String())
		}
		return fmt.Errorf("schema validation failed:\n  - %s", strings.Join(errorMessages, "\n  - "))
	}

	return nil
}
