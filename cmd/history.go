package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/aeoscore/internal/evidence"
	"github.com/spf13/cobra"
)

var historyFile string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or select evidence snapshots",
	Long: `Shows the stored evidence history, newest last. The current snapshot is
marked with '*'; it is the baseline the next analysis is compared against.

Each analyzed file keeps its own history; select it with --file. Without
--file the history shared by --text and stdin analyses is shown.`,
	Run: runE(func(cmd *cobra.Command, args []string) error {
		return runHistoryList(historyFile, os.Stdout)
	}),
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List evidence snapshots",
	Args:  cobra.NoArgs,
	Run: runE(func(cmd *cobra.Command, args []string) error {
		return runHistoryList(historyFile, os.Stdout)
	}),
}

var historyUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Make a snapshot the current one",
	Args:  cobra.ExactArgs(1),
	Run: runE(func(cmd *cobra.Command, args []string) error {
		return runHistoryUse(historyFile, args[0], os.Stdout)
	}),
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyFile, "file", "", "Document whose history to use")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyUseCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(file string, w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	printHistory(w, store.For(historyDocument(file)).Load())
	return nil
}

func printHistory(w io.Writer, h *evidence.History) {
	if h.Len() == 0 {
		fmt.Fprintln(w, "No evidence history yet. Run 'aeoscore analyze' to record a snapshot.")
		return
	}

	current := h.CurrentEntry()
	mark := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	for i := range h.Entries {
		e := &h.Entries[i]
		prefix := " "
		if current != nil && e.Meta.ID == current.Meta.ID {
			prefix = mark.Render("*")
		}
		fmt.Fprintf(w, "%s %s  %s  %d items  %d deficiencies\n",
			prefix, e.Meta.ID, dim.Render(e.Meta.CreatedAt), e.Count(), len(evidence.Bullets(e)))
	}
}

func runHistoryUse(file, id string, w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if !store.For(historyDocument(file)).Select(id) {
		return fmt.Errorf("no snapshot with id %s", id)
	}
	fmt.Fprintf(w, "Current snapshot is now %s\n", id)
	return nil
}
