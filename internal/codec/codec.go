// Package codec renders check-run reports in exportable formats.
//
// A report is one run plus its verdict records. The JSON codec feeds
// machine consumers; the YAML codec is for operators who want a readable
// artifact of a run.
package codec

import (
	"fmt"
	"io"

	"netaudit/internal/domain"
)

// Report is the exportable view of a finished run
type Report struct {
	Run     domain.Run      `json:"run" yaml:"run"`
	Records []domain.Record `json:"records" yaml:"records"`
}

// Codec writes a run report to a stream
type Codec interface {
	// Format returns the codec format identifier
	Format() string
	// Write renders the report
	Write(w io.Writer, report Report) error
}

// ForFormat returns the codec for a format name
func ForFormat(format string) (Codec, error) {
	switch format {
	case "", "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (valid: json, yaml)", format)
	}
}
