package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VictorHarbo/historiography-urls/internal/extractor"
)

var (
	lenientFlag bool
	shapeFlag   string
	suffixFlag  string
	workersFlag int
	indentFlag  int
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [input-dir] [output-file]",
	Short: "Extract URLs from text files into an inventory",
	Long: `Extract URL-like substrings from all text files in a directory and
write an inventory of them.

Two matchers are available: the default strict matcher only accepts URLs
with an explicit http://, https://, or www. prefix; --lenient also accepts
bare domain-like tokens (example.org/docs) at the cost of false positives
on anything dotted (version strings, "node.js", and the like).

The output shape follows the output file name: a .json target produces a
sorted table of {url, file} occurrence records with provenance per source
file, anything else produces a sorted list of unique URLs, one per line.
Use --shape to override the convention.

Examples:
  historiography-urls extract
  historiography-urls extract texts/ extracted_urls.txt
  historiography-urls extract --lenient texts/ urls.json
  historiography-urls extract --shape occurrence-table texts/ urls.dat`,
	Args: cobra.MaximumNArgs(2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&lenientFlag, "lenient", false, "use the lenient URL matcher (catches scheme-less URLs)")
	extractCmd.Flags().StringVar(&shapeFlag, "shape", "", "output shape (unique-list, occurrence-table); default inferred from output suffix")
	extractCmd.Flags().StringVar(&suffixFlag, "suffix", extractor.DefaultSuffix, "file name suffix of eligible input files")
	extractCmd.Flags().IntVar(&workersFlag, "workers", runtime.NumCPU(), "number of parallel workers for scanning (1 = sequential)")
	extractCmd.Flags().IntVar(&indentFlag, "indent", 2, "JSON indentation for occurrence-table output")

	cobra.CheckErr(viper.BindPFlag("extract.suffix", extractCmd.Flags().Lookup("suffix")))
	cobra.CheckErr(viper.BindPFlag("extract.workers", extractCmd.Flags().Lookup("workers")))
	cobra.CheckErr(viper.BindPFlag("extract.indent", extractCmd.Flags().Lookup("indent")))
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputDir := "texts"
	outputFile := "extracted_urls.txt"

	if len(args) > 0 {
		inputDir = args[0]
	}

	if len(args) > 1 {
		outputFile = args[1]
	}

	pattern := extractor.PatternStrict
	if lenientFlag {
		pattern = extractor.PatternLenient
	}

	shape := extractor.ShapeForPath(outputFile)

	if shapeFlag != "" {
		parsed, err := extractor.ParseShape(shapeFlag)
		if err != nil {
			return err
		}

		shape = parsed
	}

	suffix := viper.GetString("extract.suffix")
	workers := viper.GetInt("extract.workers")
	indent := viper.GetInt("extract.indent")

	paths, err := extractor.ListTextFiles(inputDir, suffix)
	if err != nil {
		return err
	}

	if len(paths) == 0 && !quiet {
		fmt.Fprintf(os.Stderr, "No files with suffix %q found in %s\n", suffix, inputDir)
	}

	warn := func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}

	index := extractor.BuildIndexParallel(paths, pattern, workers, warn)

	rendered, err := extractor.Render(index, shape, indent)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputFile, rendered, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
	}

	switch shape {
	case extractor.ShapeOccurrenceTable:
		fmt.Printf("Extracted %d URL occurrences to %s\n", index.OccurrenceCount(), outputFile)
	default:
		fmt.Printf("Extracted %d unique URLs to %s\n", index.UniqueCount(), outputFile)
	}

	return nil
}
