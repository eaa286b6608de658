package dataset

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// SchemaError reports the individual violations found while validating a
// raw export file against its schema.
type SchemaError struct {
	Path   string
	Issues []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s failed schema validation: %s", e.Path, strings.Join(e.Issues, "; "))
}

// ValidateExport validates the raw export at path against the named
// embedded schema (applicants, vagas or prospects). It catches structural
// corruption before normalization starts dropping fields silently.
func ValidateExport(schema, path string) error {
	schemaBytes, err := schemaFS.ReadFile("schemas/" + schema + ".schema.json")
	if err != nil {
		return fmt.Errorf("unknown export schema %q: %w", schema, err)
	}
	docBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(docBytes),
	)
	if err != nil {
		return fmt.Errorf("schema validation of %s failed to run: %w", path, err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return &SchemaError{Path: path, Issues: issues}
}
