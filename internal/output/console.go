package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/aeoscore/internal/evidence"
	"github.com/dotcommander/aeoscore/internal/reliability"
	"github.com/dotcommander/aeoscore/internal/report"
	"github.com/dotcommander/aeoscore/internal/scoring"
)

// ConsoleFormatter formats reports for terminal display
type ConsoleFormatter struct {
	quiet   bool
	verbose bool
	out     io.Writer
	styles  consoleStyles
}

type consoleStyles struct {
	file   lipgloss.Style
	label  lipgloss.Style
	dim    lipgloss.Style
	added  lipgloss.Style
	remove lipgloss.Style
}

// NewConsoleFormatter creates a new ConsoleFormatter
func NewConsoleFormatter(quiet, verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		quiet:   quiet,
		verbose: verbose,
		out:     os.Stdout,
		styles: consoleStyles{
			file:   lipgloss.NewStyle().Bold(true),
			label:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			added:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			remove: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		},
	}
}

// Format prints every report. Quiet mode prints only the one-line verdicts.
func (f *ConsoleFormatter) Format(reports []*report.Report) error {
	for i, r := range reports {
		if i > 0 && !f.quiet {
			fmt.Fprintln(f.out)
		}
		if f.quiet {
			f.printVerdict(r)
			continue
		}
		f.printHeader(r)
		f.printScores(r)
		f.printReliability(r)
		f.printDiff(r.Diff)
		f.printChecklist(r.Checklist)
	}
	return nil
}

func (f *ConsoleFormatter) printVerdict(r *report.Report) {
	overall := "-"
	if score, ok := r.Overall(); ok {
		overall = fmt.Sprintf("%d %s", score, scoring.GradeFromScore(score))
	}
	fmt.Fprintf(f.out, "%s\t%s\t%s\n", displayName(r), overall, r.Reliability.Level)
}

func (f *ConsoleFormatter) printHeader(r *report.Report) {
	fmt.Fprintln(f.out, f.styles.file.Render(displayName(r)))
	if f.verbose && r.EntryID != "" {
		saved := "not saved"
		if r.Saved {
			saved = "saved"
		}
		fmt.Fprintln(f.out, f.styles.dim.Render(fmt.Sprintf("  snapshot %s (%s)", r.EntryID, saved)))
	}
}

func (f *ConsoleFormatter) printScores(r *report.Report) {
	for _, slot := range scoring.AllSlots {
		score := r.Scores.Get(slot)
		points, ok := score.Points()
		if !ok {
			fmt.Fprintf(f.out, "  %-8s %s\n", slot.Label(), f.styles.dim.Render("unmeasured"))
			continue
		}
		fmt.Fprintf(f.out, "  %-8s %3d  %s\n", slot.Label(), points, gradeStyle(score.Grade).Render(score.Grade))
		if f.verbose {
			for _, ev := range score.Evidence {
				fmt.Fprintf(f.out, "           %s\n", f.styles.dim.Render(ev.String()))
			}
		}
	}
}

func (f *ConsoleFormatter) printReliability(r *report.Report) {
	fmt.Fprintf(f.out, "\n  %s %s  %s\n",
		f.styles.label.Render("Reliability:"),
		levelStyle(r.Reliability.Level).Render(string(r.Reliability.Level)),
		f.styles.dim.Render(r.Reliability.ReasonText))
	for _, reason := range r.Why.Reasons {
		fmt.Fprintf(f.out, "    - %s: %s\n", reason.Title, reason.Detail)
	}
	if r.ActionLine != "" {
		fmt.Fprintf(f.out, "  %s %s\n", f.styles.label.Render("Next:"), r.ActionLine)
	}
}

func (f *ConsoleFormatter) printDiff(d evidence.Diff) {
	fmt.Fprintf(f.out, "\n  %s %s\n", f.styles.label.Render("Changes:"), d.Interpretation())
	for _, b := range d.Added {
		fmt.Fprintf(f.out, "    %s %s\n", f.styles.added.Render("+"), b)
	}
	for _, b := range d.Removed {
		fmt.Fprintf(f.out, "    %s %s\n", f.styles.remove.Render("-"), b)
	}
}

func (f *ConsoleFormatter) printChecklist(items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(f.out, "\n  %s\n", f.styles.label.Render("Checklist:"))
	for i, item := range items {
		fmt.Fprintf(f.out, "    %2d. %s\n", i+1, item)
	}
}

func displayName(r *report.Report) string {
	if r.File == "" {
		return "<stdin>"
	}
	return r.File
}

// gradeStyle colors A grades green, B blue, C yellow and the rest red.
func gradeStyle(grade string) lipgloss.Style {
	color := "9"
	switch strings.TrimSuffix(grade, "+") {
	case "A":
		color = "10"
	case "B":
		color = "12"
	case "C":
		color = "3"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func levelStyle(level reliability.Level) lipgloss.Style {
	switch level {
	case reliability.LevelHigh:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	case reliability.LevelMid:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	}
}
