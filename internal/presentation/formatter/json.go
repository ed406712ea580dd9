package formatter

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
)

// JSONFormatter renders the full report as indented JSON.
type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{w: os.Stdout}
}

// SetWriter redirects output, used by tests.
func (f *JSONFormatter) SetWriter(w io.Writer) {
	f.w = w
}

func (f *JSONFormatter) Format(report *Report) error {
	data, err := sonic.ConfigDefault.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(f.w, string(data))
	return err
}
