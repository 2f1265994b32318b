// Package output renders command results as text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format represents an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Names returns the accepted values for the --output flag.
func Names() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// Writer renders values to an io.Writer in one fixed format.
type Writer struct {
	format Format
	w      io.Writer
}

// NewWriter returns a Writer rendering in the given format.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{format: format, w: w}
}

// Format returns the format the writer renders in.
func (w *Writer) Format() Format {
	return w.format
}

// Write renders v in the configured format. Text mode prefers the
// value's Stringer form.
func (w *Writer) Write(v interface{}) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w.w)
		enc.SetIndent(2)
		return enc.Encode(v)
	default:
		if s, ok := v.(fmt.Stringer); ok {
			_, err := fmt.Fprintln(w.w, s.String())
			return err
		}
		_, err := fmt.Fprintf(w.w, "%+v\n", v)
		return err
	}
}

// Textf prints a formatted line in text mode only. Structured formats
// stay machine readable, so transient messages such as download progress
// are dropped there.
func (w *Writer) Textf(format string, args ...interface{}) error {
	if w.format != FormatText {
		return nil
	}
	_, err := fmt.Fprintf(w.w, format, args...)
	return err
}

// ParseFormat maps a --output flag value to a Format. The empty string
// selects text.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}
