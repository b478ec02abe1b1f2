package report

import (
	"encoding/json"
	"io"

	"github.com/plantrack/plantrack/internal/model"
)

// JSONWriter outputs findings reports in JSON format.
// This format is designed for tool integration and automation.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output with two-space indentation.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables or disables pretty-printing. Enabled by default.
func WithIndent(indent bool) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = indent
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		indent:     true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the findings report as a JSON document followed by a newline.
func (w *JSONWriter) Write(report *model.FindingsReport) (int, error) {
	var (
		data []byte
		err  error
	)

	if w.indent {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
