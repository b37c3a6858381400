package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// jsonWriter emits values as JSON documents.
type jsonWriter struct {
	w      *bufio.Writer
	pretty bool
}

func newJSONWriter(w io.Writer, pretty bool) *jsonWriter {
	return &jsonWriter{w: bufio.NewWriter(w), pretty: pretty}
}

func (w *jsonWriter) Write(data any) error {
	var out []byte
	var err error

	if w.pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(out); err != nil {
		return err
	}
	_, err = w.w.WriteString("\n")
	return err
}

func (w *jsonWriter) Close() error {
	return w.w.Flush()
}

// jsonlWriter emits newline-delimited JSON.
type jsonlWriter struct {
	w *bufio.Writer
}

func newJSONLWriter(w io.Writer) *jsonlWriter {
	return &jsonlWriter{w: bufio.NewWriter(w)}
}

func (w *jsonlWriter) Write(data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *jsonlWriter) Close() error {
	return w.w.Flush()
}
