// Package schemas provides JSON Schema validation for the job and candidate
// documents fed to the CLI.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema file names under the repository's schemas/ directory.
const (
	NormalizedJobSchema    = "schemas/normalized_job.schema.json"
	CandidateProfileSchema = "schemas/candidate_profile.schema.json"
)

// ResolveSchemaPath attempts to find a schema file by trying multiple common
// path resolutions, since the CLI and tests may run from different working
// directories. Returns the first path that exists, or empty string.
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}

	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}

	return ""
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// DocumentError reports every schema violation found in one document.
type DocumentError struct {
	Errors []FieldError
}

func (e *DocumentError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:")
	for _, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("\n  - %s: %s", fe.Field, fe.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateDocument validates raw JSON against the schema at relativePath.
// A nil return means the document conforms.
func ValidateDocument(relativePath string, document []byte) error {
	schemaPath := ResolveSchemaPath(relativePath)
	if schemaPath == "" {
		return &SchemaLoadError{Path: relativePath, Message: "schema file not found"}
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaPath)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Message: "validation could not run", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	docErr := &DocumentError{}
	for _, resultErr := range result.Errors() {
		docErr.Errors = append(docErr.Errors, FieldError{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
		})
	}
	return docErr
}
