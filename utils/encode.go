package utils

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// ErrNotTabular is returned when CSV output is requested for rows that do not
// implement Tabular.
var ErrNotTabular = errors.New("rows cannot be written as csv")

// Tabular rows can be flattened into a CSV table.
type Tabular interface {
	Header() []string
	Records() [][]string
}

// Encode writes v to w in the given format. CSV requires v to be Tabular.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		t, ok := v.(Tabular)
		if !ok {
			return fmt.Errorf("%w: %T", ErrNotTabular, v)
		}
		cw := csv.NewWriter(w)
		if err := cw.Write(t.Header()); err != nil {
			return err
		}
		if err := cw.WriteAll(t.Records()); err != nil {
			return err
		}
		return cw.Error()
	}
	return fmt.Errorf("unknown output format %q", format)
}
