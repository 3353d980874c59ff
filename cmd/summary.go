package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/aeoscore/internal/discovery"
	"github.com/dotcommander/aeoscore/internal/reliability"
	"github.com/dotcommander/aeoscore/internal/report"
	"github.com/dotcommander/aeoscore/internal/scoring"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file|glob>...",
	Short: "Show a score summary across many documents",
	Long: `Scores every matched document without touching the evidence history and
prints the grade distribution, reliability levels, the most common structural
deficiencies and the lowest-scoring documents.`,
	Args: cobra.MinimumNArgs(1),
	Run: runE(func(cmd *cobra.Command, args []string) error {
		return runSummary(args, os.Stdout)
	}),
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

// DocumentSummary holds aggregated data for the summary report
type DocumentSummary struct {
	TotalDocuments int
	GradeCounts    map[string]int
	LevelCounts    map[reliability.Level]int
	TopIssues      map[string]int
	LowestScoring  []ScoredDocument
}

// ScoredDocument is a document with its overall score for sorting
type ScoredDocument struct {
	File  string
	Score int
	Grade string
}

func newDocumentSummary() *DocumentSummary {
	return &DocumentSummary{
		GradeCounts: make(map[string]int),
		LevelCounts: make(map[reliability.Level]int),
		TopIssues:   make(map[string]int),
	}
}

func runSummary(patterns []string, w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := discovery.Discover(patterns)
	if err != nil {
		return fmt.Errorf("error discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched %s", strings.Join(patterns, ", "))
	}

	builder := newBuilder(cfg)
	reports := make([]*report.Report, 0, len(files))
	for _, f := range files {
		in, err := buildInput(source{name: f.Path, content: f.Contents}, "", "")
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", f.Path, err)
		}
		reports = append(reports, builder.Build(f.Path, in, false))
	}

	summary := newDocumentSummary()
	aggregateReports(summary, reports)
	printSummaryReport(w, summary)
	return nil
}

func aggregateReports(summary *DocumentSummary, reports []*report.Report) {
	for _, r := range reports {
		summary.TotalDocuments++
		summary.LevelCounts[r.Reliability.Level]++

		if score, ok := r.Overall(); ok {
			grade := scoring.GradeFromScore(score)
			summary.GradeCounts[grade]++
			summary.LowestScoring = append(summary.LowestScoring, ScoredDocument{
				File:  r.File,
				Score: score,
				Grade: grade,
			})
		}

		// Diff.Added holds every deficiency bullet when there is no previous snapshot.
		for _, bullet := range r.Diff.Added {
			summary.TopIssues[categorizeIssue(bullet)]++
		}
	}

	sort.SliceStable(summary.LowestScoring, func(i, j int) bool {
		return summary.LowestScoring[i].Score < summary.LowestScoring[j].Score
	})
}

func categorizeIssue(bullet string) string {
	switch {
	case contains(bullet, "H1"):
		return "Missing H1 heading"
	case contains(bullet, "H2"):
		return "Missing H2 headings"
	case contains(bullet, "paragraph structure", "paragraphs missing"):
		return "No paragraphs"
	case contains(bullet, "list"):
		return "No lists"
	case contains(bullet, "emphasis"):
		return "Too little keyword emphasis"
	case contains(bullet, "empty paragraph"):
		return "Empty paragraphs"
	case contains(bullet, "duplicate"):
		return "Duplicate paragraphs"
	default:
		return "Other issues"
	}
}

func contains(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// printStyles holds all the styles used in the summary report.
type printStyles struct {
	header  lipgloss.Style
	gradeA  lipgloss.Style
	gradeB  lipgloss.Style
	gradeC  lipgloss.Style
	gradeDF lipgloss.Style
	dim     lipgloss.Style
}

// newPrintStyles creates a new set of print styles.
func newPrintStyles() printStyles {
	return printStyles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		gradeA:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		gradeB:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		gradeC:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		gradeDF: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func printSummaryReport(w io.Writer, summary *DocumentSummary) {
	styles := newPrintStyles()

	printReportHeader(w, styles)
	fmt.Fprintf(w, "║ Documents Analyzed: %-38d ║\n", summary.TotalDocuments)
	printGradeDistribution(w, summary, styles)
	printReliability(w, summary, styles)
	printTopIssues(w, summary, styles)
	printLowestScoring(w, summary, styles)
	fmt.Fprintln(w, styles.header.Render("╚═══════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(w)
}

func printReportHeader(w io.Writer, styles printStyles) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.header.Render("╔═══════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(w, styles.header.Render("║                  AEO SCORE SUMMARY                        ║"))
	fmt.Fprintln(w, styles.header.Render("╠═══════════════════════════════════════════════════════════╣"))
}

func printGradeDistribution(w io.Writer, summary *DocumentSummary, styles printStyles) {
	fmt.Fprintln(w, styles.header.Render("╠───────────────────────────────────────────────────────────╣"))
	fmt.Fprintln(w, "║ GRADE DISTRIBUTION                                        ║")

	total := float64(summary.TotalDocuments)
	if total == 0 {
		total = 1
	}

	rows := []struct {
		label string
		count int
		style lipgloss.Style
		color string
	}{
		{"A  (80-100)", summary.GradeCounts["A+"] + summary.GradeCounts["A"], styles.gradeA, "10"},
		{"B  (60-79) ", summary.GradeCounts["B+"] + summary.GradeCounts["B"], styles.gradeB, "12"},
		{"C  (40-59) ", summary.GradeCounts["C+"] + summary.GradeCounts["C"], styles.gradeC, "3"},
		{"D/F (<40)  ", summary.GradeCounts["D"] + summary.GradeCounts["F"], styles.gradeDF, "9"},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "║   %s: %-4d (%5.1f%%)  %s                      ║\n",
			row.style.Render(row.label), row.count, float64(row.count)/total*100,
			renderBar(row.count, summary.TotalDocuments, row.color))
	}
}

func printReliability(w io.Writer, summary *DocumentSummary, styles printStyles) {
	fmt.Fprintln(w, styles.header.Render("╠───────────────────────────────────────────────────────────╣"))
	fmt.Fprintf(w, "║ RELIABILITY   high: %-4d  mid: %-4d  low: %-13d ║\n",
		summary.LevelCounts[reliability.LevelHigh],
		summary.LevelCounts[reliability.LevelMid],
		summary.LevelCounts[reliability.LevelLow])
}

type issueCount struct {
	issue string
	count int
}

func printTopIssues(w io.Writer, summary *DocumentSummary, styles printStyles) {
	fmt.Fprintln(w, styles.header.Render("╠───────────────────────────────────────────────────────────╣"))
	fmt.Fprintln(w, "║ TOP ISSUES                                                ║")

	var issues []issueCount
	for issue, count := range summary.TopIssues {
		issues = append(issues, issueCount{issue, count})
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].count != issues[j].count {
			return issues[i].count > issues[j].count
		}
		return issues[i].issue < issues[j].issue
	})

	for i, ic := range issues {
		if i >= 5 {
			break
		}
		fmt.Fprintf(w, "║   %s %-49s %3d ║\n", styles.dim.Render(fmt.Sprintf("%d.", i+1)), ic.issue, ic.count)
	}
}

func printLowestScoring(w io.Writer, summary *DocumentSummary, styles printStyles) {
	fmt.Fprintln(w, styles.header.Render("╠───────────────────────────────────────────────────────────╣"))
	fmt.Fprintln(w, "║ LOWEST SCORING DOCUMENTS                                  ║")

	for i, doc := range summary.LowestScoring {
		if i >= 5 {
			break
		}
		gradeStyle := styles.gradeDF
		switch strings.TrimSuffix(doc.Grade, "+") {
		case "A":
			gradeStyle = styles.gradeA
		case "B":
			gradeStyle = styles.gradeB
		case "C":
			gradeStyle = styles.gradeC
		}
		truncated := doc.File
		if len(truncated) > 40 {
			truncated = "..." + truncated[len(truncated)-37:]
		}
		fmt.Fprintf(w, "║   %s %-40s %-2s %3d ║\n",
			styles.dim.Render(fmt.Sprintf("%d.", i+1)),
			truncated,
			gradeStyle.Render(doc.Grade),
			doc.Score)
	}
}

func renderBar(count, total int, color string) string {
	if total == 0 {
		return ""
	}
	barWidth := 10
	filled := (count * barWidth) / total
	if count > 0 && filled == 0 {
		filled = 1
	}
	var bar strings.Builder
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	for i := 0; i < filled; i++ {
		bar.WriteString(style.Render("█"))
	}
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	for i := filled; i < barWidth; i++ {
		bar.WriteString(dimStyle.Render("░"))
	}
	return bar.String()
}
