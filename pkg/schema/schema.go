// Package schema defines the fixed extraction schema for document records.
//
// The field set is part of the product contract: every extraction produces
// exactly applicantName, documentId and issueDate. The schema is a value,
// not configuration, and is serialized verbatim into the remote prompt.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldType identifies the kind of a schema field.
type FieldType string

// TypeString is the only field type the document schema uses.
const TypeString FieldType = "STRING"

// Field describes one output field of the extraction schema.
type Field struct {
	Field       string    `json:"field"`
	Type        FieldType `json:"type"`
	Format      string    `json:"format,omitempty"`
	Description string    `json:"description"`
}

// Schema is an ordered set of output fields.
type Schema struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`

	validate *validator.Validate
}

// Document returns the fixed document-record schema.
func Document() Schema {
	return Schema{
		Name: "DocumentRecord",
		Fields: []Field{
			{
				Field:       "applicantName",
				Type:        TypeString,
				Description: "Full name of the applicant as printed on the document",
			},
			{
				Field:       "documentId",
				Type:        TypeString,
				Description: "Passport number or document identifier",
			},
			{
				Field:       "issueDate",
				Type:        TypeString,
				Format:      "YYYY-MM-DD",
				Description: "Date the document was issued, in ISO format",
			},
		},
		validate: validator.New(),
	}
}

// PromptDescription renders the field list as JSON for embedding in the
// remote prompt. The output is deterministic.
func (s Schema) PromptDescription() string {
	out, err := json.MarshalIndent(s.Fields, "", "  ")
	if err != nil {
		// Fields contain only plain strings; marshaling cannot fail.
		return "[]"
	}
	return string(out)
}

// JSONSchema renders the schema as a JSON Schema object for providers with
// native structured-output support.
func (s Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s.Fields))
	required := make([]string, 0, len(s.Fields))

	for _, f := range s.Fields {
		prop := map[string]any{
			"type":        strings.ToLower(string(f.Type)),
			"description": f.Description,
		}
		if f.Format != "" {
			prop["description"] = fmt.Sprintf("%s (format %s)", f.Description, f.Format)
		}
		properties[f.Field] = prop
		required = append(required, f.Field)
	}

	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

// FieldNames returns the field names in schema order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Field
	}
	return names
}

// ValidationError describes a single failed check on an extraction payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("field %q %s", e.Field, e.Message)
}

// Validate checks a decoded extraction payload against the schema's
// validation tags. A nil return means the payload is acceptable.
func (s Schema) Validate(payload any) []ValidationError {
	if s.validate == nil {
		return nil
	}

	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationError{{Field: "", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, ValidationError{
			Field:   e.Field(),
			Message: formatValidationError(e),
		})
	}
	return out
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return fmt.Sprintf("must match date layout %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
