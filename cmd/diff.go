package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/aeoscore/internal/evidence"
	"github.com/dotcommander/aeoscore/internal/report"
	"github.com/spf13/cobra"
)

var (
	diffFile     string
	diffCurrent  string
	diffPrevious string
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare two evidence snapshots",
	Long: `Compares the structural deficiencies of two stored snapshots.

Without flags the current snapshot is compared with the one recorded just
before it. --current picks another snapshot; --previous picks the baseline.
--file selects the document whose history is compared.`,
	Args: cobra.NoArgs,
	Run: runE(func(cmd *cobra.Command, args []string) error {
		return runDiff(diffFile, diffCurrent, diffPrevious, os.Stdout)
	}),
}

func init() {
	diffCmd.Flags().StringVar(&diffFile, "file", "", "Document whose history to compare")
	diffCmd.Flags().StringVar(&diffCurrent, "current", "", "Snapshot id to inspect (default: current)")
	diffCmd.Flags().StringVar(&diffPrevious, "previous", "", "Snapshot id to compare against (default: the one before --current)")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(file, currentID, previousID string, w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	h := store.For(historyDocument(file)).Load()
	if h.Len() == 0 {
		return fmt.Errorf("evidence history is empty")
	}
	for _, id := range []string{currentID, previousID} {
		if id != "" && h.Find(id) == nil {
			return fmt.Errorf("no snapshot with id %s", id)
		}
	}

	current, d := report.FromHistory(h, currentID, previousID)
	printDiff(w, current, d)
	return nil
}

func printDiff(w io.Writer, current *evidence.Entry, d evidence.Diff) {
	bold := lipgloss.NewStyle().Bold(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	fmt.Fprintf(w, "%s %s (%s)\n", bold.Render("Snapshot:"), current.Meta.ID, current.Meta.CreatedAt)
	fmt.Fprintf(w, "%s %s\n", bold.Render("Interpretation:"), d.Interpretation())
	for _, b := range d.Added {
		fmt.Fprintf(w, "  %s %s\n", red.Render("+"), b)
	}
	for _, b := range d.Removed {
		fmt.Fprintf(w, "  %s %s\n", green.Render("-"), b)
	}
}
