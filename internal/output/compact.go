package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/aeoscore/internal/reliability"
	"github.com/dotcommander/aeoscore/internal/report"
	"github.com/dotcommander/aeoscore/internal/scoring"
)

// CompactFormatter prints one aligned line per report followed by a
// reliability tally.
type CompactFormatter struct {
	quiet bool
	out   io.Writer
}

// NewCompactFormatter creates a new CompactFormatter.
func NewCompactFormatter(quiet bool) *CompactFormatter {
	return &CompactFormatter{quiet: quiet, out: os.Stdout}
}

// Format prints the table and the summary line.
func (f *CompactFormatter) Format(reports []*report.Report) error {
	if f.quiet {
		return nil
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle := lipgloss.NewStyle().Bold(true)

	maxNameLen := f.calculateColumnWidth(reports)
	levels := make(map[reliability.Level]int)

	for _, r := range reports {
		levels[r.Reliability.Level]++

		cells := make([]string, 0, len(scoring.AllSlots))
		for _, slot := range scoring.AllSlots {
			cells = append(cells, slotCell(slot, r.Scores.Get(slot)))
		}

		overall := dimStyle.Render("  -")
		if score, ok := r.Overall(); ok {
			overall = gradeStyle(scoring.GradeFromScore(score)).Render(fmt.Sprintf("%3d", score))
		}

		fmt.Fprintf(f.out, "%-*s  %s  %s  %s\n",
			maxNameLen, displayName(r), overall,
			strings.Join(cells, "  "),
			levelStyle(r.Reliability.Level).Render(string(r.Reliability.Level)))
	}

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, boldStyle.Render(fmt.Sprintf("%s analyzed: %d high, %d mid, %d low",
		pluralizeCount("document", len(reports)),
		levels[reliability.LevelHigh], levels[reliability.LevelMid], levels[reliability.LevelLow])))
	return nil
}

func (f *CompactFormatter) calculateColumnWidth(reports []*report.Report) int {
	maxNameLen := len("<stdin>")
	for _, r := range reports {
		if n := len(displayName(r)); n > maxNameLen {
			maxNameLen = n
		}
	}
	return maxNameLen
}

func slotCell(slot scoring.Slot, score *scoring.Score) string {
	points, ok := score.Points()
	if !ok {
		return fmt.Sprintf("%s --", slot.Label())
	}
	return fmt.Sprintf("%s %3d", slot.Label(), points)
}

func pluralizeCount(s string, count int) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", s)
	}
	return fmt.Sprintf("%d %ss", count, s)
}
