// Package output renders extraction artifacts for the CLI.
package output

import (
	"fmt"
	"io"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Writer serializes values to an output stream.
type Writer interface {
	// Write emits a single value.
	Write(data any) error

	// Close flushes buffered output.
	Close() error
}

// NewWriter creates a writer for the given format.
func NewWriter(format Format, w io.Writer) (Writer, error) {
	switch format {
	case FormatJSON:
		return newJSONWriter(w, true), nil
	case FormatJSONL:
		return newJSONLWriter(w), nil
	case FormatYAML:
		return newYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: json, jsonl, yaml)", format)
	}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatJSONL, FormatYAML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (supported: json, jsonl, yaml)", name)
	}
}
