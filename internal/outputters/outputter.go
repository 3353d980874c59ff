// Package outputters picks the formatter for the configured output format.
package outputters

import (
	"fmt"

	"github.com/dotcommander/aeoscore/internal/config"
	"github.com/dotcommander/aeoscore/internal/output"
	"github.com/dotcommander/aeoscore/internal/report"
)

// Formatter renders a batch of reports.
type Formatter interface {
	Format(reports []*report.Report) error
}

// FormatterFactory creates the Formatter for a format name.
type FormatterFactory interface {
	CreateFormatter(format string) (Formatter, error)
}

// DefaultFormatterFactory builds the output package formatters from config.
type DefaultFormatterFactory struct {
	config *config.Config
}

// CreateFormatter implements FormatterFactory.
func (f *DefaultFormatterFactory) CreateFormatter(format string) (Formatter, error) {
	switch format {
	case "console":
		return output.NewConsoleFormatter(f.config.Quiet, f.config.Verbose), nil
	case "compact":
		return output.NewCompactFormatter(f.config.Quiet), nil
	case "json":
		return output.NewJSONFormatter(true, f.config.Output), nil
	case "markdown":
		return output.NewMarkdownFormatter(f.config.Verbose, f.config.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Outputter handles output formatting
type Outputter struct {
	config  *config.Config
	factory FormatterFactory
}

// NewOutputter creates a new Outputter
func NewOutputter(config *config.Config) *Outputter {
	return NewOutputterWithFactory(config, &DefaultFormatterFactory{config: config})
}

// NewOutputterWithFactory creates an Outputter with a custom factory.
func NewOutputterWithFactory(config *config.Config, factory FormatterFactory) *Outputter {
	return &Outputter{
		config:  config,
		factory: factory,
	}
}

// Format renders reports in format, falling back to the configured format
// when format is empty.
func (o *Outputter) Format(reports []*report.Report, format string) error {
	if format == "" {
		format = o.config.Format
	}

	formatter, err := o.factory.CreateFormatter(format)
	if err != nil {
		return err
	}
	return formatter.Format(reports)
}
