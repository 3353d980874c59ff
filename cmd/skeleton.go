package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/dotcommander/aeoscore/internal/improve"
	"github.com/spf13/cobra"
)

var skeletonCmd = &cobra.Command{
	Use:   "skeleton [product name]",
	Short: "Print a well-structured page template",
	Long: `Prints an HTML page skeleton covering every content-structure check:
H1, summary block, feature and spec lists, FAQ with H3 questions and a CTA.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(os.Stdout, improve.Skeleton(strings.Join(args, " ")))
	},
}

func init() {
	rootCmd.AddCommand(skeletonCmd)
}
