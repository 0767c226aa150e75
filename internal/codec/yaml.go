package codec

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLCodec renders reports as YAML
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlReport mirrors Report with YAML field names
type yamlReport struct {
	Run     yamlRun      `yaml:"run"`
	Records []yamlRecord `yaml:"records"`
}

type yamlRun struct {
	ID          string     `yaml:"id"`
	Check       string     `yaml:"check"`
	Params      string     `yaml:"params,omitempty"`
	Status      string     `yaml:"status"`
	StartedAt   time.Time  `yaml:"started_at"`
	FinishedAt  *time.Time `yaml:"finished_at,omitempty"`
	RecordCount int        `yaml:"record_count"`
	Error       string     `yaml:"error,omitempty"`
}

type yamlRecord struct {
	Seq      int    `yaml:"seq"`
	Subject  string `yaml:"subject"`
	Kind     string `yaml:"kind"`
	Verdict  string `yaml:"verdict"`
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`
}

// Write renders the report as YAML
func (c *YAMLCodec) Write(w io.Writer, report Report) error {
	out := yamlReport{
		Run: yamlRun{
			ID:          report.Run.ID,
			Check:       report.Run.Check,
			Params:      report.Run.Params,
			Status:      string(report.Run.Status),
			StartedAt:   report.Run.StartedAt,
			FinishedAt:  report.Run.FinishedAt,
			RecordCount: report.Run.RecordCount,
			Error:       report.Run.Error,
		},
		Records: make([]yamlRecord, 0, len(report.Records)),
	}
	for _, rec := range report.Records {
		out.Records = append(out.Records, yamlRecord{
			Seq:      rec.Seq,
			Subject:  rec.Subject.Name,
			Kind:     string(rec.Subject.Kind),
			Verdict:  string(rec.Verdict),
			Severity: string(rec.Severity),
			Message:  rec.Message,
		})
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode YAML report: %w", err)
	}
	return nil
}
