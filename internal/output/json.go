package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dotcommander/aeoscore/internal/evidence"
	"github.com/dotcommander/aeoscore/internal/report"
)

// ToolName and ToolVersion identify reports.
const (
	ToolName    = "aeoscore"
	ToolVersion = "0.1.0"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	indent     bool
	outputFile string
	out        io.Writer
	now        func() time.Time
}

// NewJSONFormatter creates a new JSONFormatter
func NewJSONFormatter(indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		indent:     indent,
		outputFile: outputFile,
		out:        os.Stdout,
		now:        time.Now,
	}
}

// JSONReport represents the complete JSON report structure
type JSONReport struct {
	Header  JSONHeader   `json:"header"`
	Results []JSONResult `json:"results"`
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONResult is one analyzed document
type JSONResult struct {
	*report.Report
	Overall *int     `json:"overall"`
	Diff    JSONDiff `json:"diff"`
}

// JSONDiff adds the interpretation to the raw diff
type JSONDiff struct {
	evidence.Diff
	Interpretation evidence.Interpretation `json:"interpretation"`
}

// Format writes reports as one JSON document
func (f *JSONFormatter) Format(reports []*report.Report) error {
	doc := JSONReport{
		Header: JSONHeader{
			Tool:      ToolName,
			Version:   ToolVersion,
			Timestamp: f.now().UTC().Format(time.RFC3339),
		},
		Results: make([]JSONResult, len(reports)),
	}

	for i, r := range reports {
		res := JSONResult{
			Report: r,
			Diff:   JSONDiff{Diff: r.Diff, Interpretation: r.Diff.Interpretation()},
		}
		if score, ok := r.Overall(); ok {
			res.Overall = &score
		}
		doc.Results[i] = res
	}

	var jsonBytes []byte
	var err error
	if f.indent {
		jsonBytes, err = json.MarshalIndent(doc, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	return writeOutput(f.out, f.outputFile, append(jsonBytes, '\n'))
}

// writeOutput writes to outputFile when set, otherwise to w.
func writeOutput(w io.Writer, outputFile string, data []byte) error {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", outputFile, err)
		}
		return nil
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}
