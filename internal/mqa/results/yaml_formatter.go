package results

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/berlinonline/mqa/internal/mqa/batch"
)

// RunConfig records how a run was invoked, for the YAML summary header.
type RunConfig struct {
	Snapshot     string `yaml:"snapshot"`
	SampleSize   int    `yaml:"sample_size,omitempty"`
	Concurrency  int    `yaml:"concurrency"`
	Offline      bool   `yaml:"offline"`
	ProbeTimeout string `yaml:"probe_timeout,omitempty"`
}

// RunReport is the YAML document written after each assessment run.
type RunReport struct {
	Config  RunConfig     `yaml:"config"`
	Summary batch.Summary `yaml:"summary"`
}

// WriteSummaryYAML writes the run report as YAML.
func WriteSummaryYAML(path string, report RunReport) error {
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}
