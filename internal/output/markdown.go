package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dotcommander/aeoscore/internal/report"
	"github.com/dotcommander/aeoscore/internal/scoring"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	verbose    bool
	outputFile string
	out        io.Writer
	now        func() time.Time
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(verbose bool, outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{
		verbose:    verbose,
		outputFile: outputFile,
		out:        os.Stdout,
		now:        time.Now,
	}
}

// Format writes reports as a Markdown document
func (f *MarkdownFormatter) Format(reports []*report.Report) error {
	var b strings.Builder

	b.WriteString("# AEO Score Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", f.now().Format("2006-01-02 15:04:05")))
	b.WriteString(strings.Repeat("-", 50) + "\n\n")

	b.WriteString("## Summary\n\n")
	b.WriteString("| File | Overall | BRAND | CONTENT | URL | Reliability |\n")
	b.WriteString("|------|---------|-------|---------|-----|-------------|\n")
	for _, r := range reports {
		overall := "-"
		if score, ok := r.Overall(); ok {
			overall = fmt.Sprintf("%d (%s)", score, scoring.GradeFromScore(score))
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			escapeCell(displayName(r)), overall,
			scoreCell(r.Scores.Branding), scoreCell(r.Scores.ContentStructureV2), scoreCell(r.Scores.URLStructureV1),
			r.Reliability.Level))
	}
	b.WriteString("\n")

	if len(reports) == 0 {
		b.WriteString("*No documents analyzed.*\n")
	}

	for _, r := range reports {
		f.writeDetails(&b, r)
	}

	return writeOutput(f.out, f.outputFile, []byte(b.String()))
}

func (f *MarkdownFormatter) writeDetails(b *strings.Builder, r *report.Report) {
	b.WriteString(fmt.Sprintf("## %s\n\n", displayName(r)))
	b.WriteString(fmt.Sprintf("**Reliability:** %s (%s)\n\n", r.Reliability.Level, r.Reliability.ReasonText))

	if len(r.Why.Reasons) > 0 {
		b.WriteString("### Why not higher\n\n")
		for _, reason := range r.Why.Reasons {
			b.WriteString(fmt.Sprintf("- **%s** - %s\n", reason.Title, reason.Detail))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("**Next step:** %s\n\n", r.ActionLine))

	if f.verbose {
		b.WriteString("### Evidence\n\n")
		for _, slot := range scoring.AllSlots {
			score := r.Scores.Get(slot)
			if score == nil {
				continue
			}
			for _, ev := range score.Evidence {
				b.WriteString(fmt.Sprintf("- `%s` %s\n", slot.Label(), ev.String()))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("### Changes: %s\n\n", r.Diff.Interpretation()))
	for _, s := range r.Diff.Added {
		b.WriteString(fmt.Sprintf("- ➕ %s\n", s))
	}
	for _, s := range r.Diff.Removed {
		b.WriteString(fmt.Sprintf("- ➖ %s\n", s))
	}
	if len(r.Diff.Added)+len(r.Diff.Removed) > 0 {
		b.WriteString("\n")
	}

	if len(r.Checklist) > 0 {
		b.WriteString("### Improvement checklist\n\n")
		for i, item := range r.Checklist {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
		}
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
}

func scoreCell(s *scoring.Score) string {
	points, ok := s.Points()
	if !ok {
		return "unmeasured"
	}
	return fmt.Sprintf("%d (%s)", points, s.Grade)
}

// escapeCell keeps pipes in file names from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
