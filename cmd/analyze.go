package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dotcommander/aeoscore/internal/config"
	"github.com/dotcommander/aeoscore/internal/discovery"
	"github.com/dotcommander/aeoscore/internal/frontend"
	"github.com/dotcommander/aeoscore/internal/git"
	"github.com/dotcommander/aeoscore/internal/logging"
	"github.com/dotcommander/aeoscore/internal/outputters"
	"github.com/dotcommander/aeoscore/internal/report"
	"github.com/dotcommander/aeoscore/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	analyzeBrand   string
	analyzeURL     string
	analyzeText    string
	analyzeNoSave  bool
	analyzeStaged  bool
	analyzeChanged bool
)

// stdin is swapped out by tests.
var stdin io.Reader = os.Stdin

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|dir|glob]...",
	Short: "Score documents and record an evidence snapshot",
	Long: `Scores each document's content structure, brand presence and URL structure.

Input comes from file or directory arguments (globs allowed), --staged or --changed
documents in the current git repository, --text, or stdin. Brand and
URL are read from YAML front matter (brand:, url:) unless the flags are set.
Every analysis is saved to the evidence history unless --no-save is given,
and compared against the snapshot that was current before it.`,
	Example: `  aeoscore analyze page.html --brand Acme --url https://acme.com/widgets
  aeoscore analyze 'content/**/*.html' --format json -o report.json
  cat page.html | aeoscore analyze --brand Acme
  aeoscore analyze --staged --format compact`,
	Run: runE(func(cmd *cobra.Command, args []string) error {
		return runAnalyze(args)
	}),
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeBrand, "brand", "b", "", "Brand name to measure (overrides front matter)")
	analyzeCmd.Flags().StringVarP(&analyzeURL, "url", "u", "", "Page URL to measure (overrides front matter)")
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "Analyze this markup instead of files or stdin")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Do not record the analysis in the evidence history")
	analyzeCmd.Flags().BoolVar(&analyzeStaged, "staged", false, "Analyze only git-staged documents")
	analyzeCmd.Flags().BoolVar(&analyzeChanged, "changed", false, "Analyze all documents with uncommitted changes")
	analyzeCmd.MarkFlagsMutuallyExclusive("staged", "changed")
	rootCmd.AddCommand(analyzeCmd)
}

// source is one unit of input before front matter is applied.
type source struct {
	name    string
	content string
}

func runAnalyze(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var sources []source
	if analyzeStaged || analyzeChanged {
		if len(args) > 0 {
			return fmt.Errorf("file arguments cannot be combined with --staged or --changed")
		}
		sources, err = gitSources(".", analyzeStaged)
	} else {
		sources, err = collectSources(args, analyzeText, stdin)
	}
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		logging.Log.Info("no changed documents to analyze")
		return nil
	}

	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	builder := newBuilder(cfg)
	builder.Store = store

	reports := make([]*report.Report, 0, len(sources))
	for _, src := range sources {
		in, err := buildInput(src, analyzeBrand, analyzeURL)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", displaySource(src), err)
		}
		logging.Log.WithField("source", displaySource(src)).Debug("analyzing")
		reports = append(reports, builder.Build(src.name, in, !analyzeNoSave))
	}

	outputter := outputters.NewOutputter(cfg)
	if err := outputter.Format(reports, cfg.Format); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}

// newBuilder creates a report builder with the configured keyword sets.
func newBuilder(cfg *config.Config) *report.Builder {
	b := report.NewBuilder(nil)
	if len(cfg.Keywords.Summary) > 0 {
		b.Analyzer.Content.SummaryKeywords = cfg.Keywords.Summary
	}
	if len(cfg.Keywords.CTA) > 0 {
		b.Analyzer.Content.CTAKeywords = cfg.Keywords.CTA
	}
	return b
}

// collectSources resolves the input: files win, then --text, then stdin.
func collectSources(args []string, text string, in io.Reader) ([]source, error) {
	if len(args) > 0 {
		files, err := discovery.Discover(args)
		if err != nil {
			return nil, fmt.Errorf("error discovering files: %w", err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no files matched %s", strings.Join(args, ", "))
		}
		sources := make([]source, len(files))
		for i, f := range files {
			sources[i] = source{name: f.Path, content: f.Contents}
		}
		return sources, nil
	}

	if text != "" {
		return []source{{name: "<text>", content: text}}, nil
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("error reading stdin: %w", err)
	}
	return []source{{content: string(data)}}, nil
}

// gitSources reads the staged or changed content documents under root.
func gitSources(root string, staged bool) ([]source, error) {
	if !git.IsGitRepo(root) {
		return nil, fmt.Errorf("--staged and --changed require a git repository")
	}

	var paths []string
	var err error
	if staged {
		paths, err = git.GetStagedFiles(root)
	} else {
		paths, err = git.GetChangedFiles(root)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing git files: %w", err)
	}

	sources := make([]source, 0, len(paths))
	for _, p := range paths {
		f, err := discovery.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", p, err)
		}
		sources = append(sources, source{name: f.Path, content: f.Contents})
	}
	return sources, nil
}

// buildInput applies front matter, letting non-empty flags win.
func buildInput(src source, brand, url string) (scoring.Input, error) {
	doc, err := frontend.ParseDocument(src.content)
	if err != nil {
		return scoring.Input{}, err
	}
	in := scoring.Input{Text: doc.Body, Brand: doc.Brand, URL: doc.URL}
	if brand != "" {
		in.Brand = brand
	}
	if url != "" {
		in.URL = url
	}
	return in, nil
}

func displaySource(src source) string {
	if src.name == "" {
		return "<stdin>"
	}
	return src.name
}
