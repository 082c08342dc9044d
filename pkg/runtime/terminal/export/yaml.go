package export

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"gopkg.in/yaml.v3"
)

type yamlReport struct {
	Title    string        `yaml:"title"`
	Filter   yamlFilter    `yaml:"filter"`
	Sections []yamlSection `yaml:"sections"`
}

type yamlFilter struct {
	Continent string   `yaml:"continent,omitempty"`
	Beverages []string `yaml:"beverages"`
	Strength  string   `yaml:"strength"`
	Year      int      `yaml:"year"`
}

type yamlSection struct {
	Title   string                 `yaml:"title"`
	Summary map[string]interface{} `yaml:"summary,omitempty"`
	Details []yamlDetail           `yaml:"details,omitempty"`
}

type yamlDetail struct {
	Name        string      `yaml:"name"`
	Value       interface{} `yaml:"value"`
	Unit        string      `yaml:"unit,omitempty"`
	Description string      `yaml:"description,omitempty"`
}

// YAMLReporter writes a report as a YAML document for scripts.
type YAMLReporter struct {
	writer io.Writer
}

func NewYAMLReporter(writer io.Writer) *YAMLReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &YAMLReporter{writer: writer}
}

func (c *YAMLReporter) Handle(report *domain.Report) error {
	out := yamlReport{
		Title: report.Title,
		Filter: yamlFilter{
			Continent: report.Filter.Continent,
			Beverages: report.Filter.Beverages,
			Strength:  report.Filter.Strength,
			Year:      report.Filter.Year,
		},
	}
	if out.Filter.Beverages == nil {
		out.Filter.Beverages = []string{}
	}
	for _, s := range report.Sections {
		section := yamlSection{Title: s.Title, Summary: s.Summary}
		for _, d := range s.Details {
			section.Details = append(section.Details, yamlDetail(d))
		}
		out.Sections = append(out.Sections, section)
	}

	enc := yaml.NewEncoder(c.writer)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
