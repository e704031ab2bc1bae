package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/VictorHarbo/historiography-urls/internal/extractor"
)

var (
	searchCaseSensitive bool
	searchFilesToo      bool
	searchNoShowFiles   bool
	searchOutput        string
	searchIndent        int
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [file] [term]",
	Short: "Search occurrence-table records for a substring",
	Long: `Search an occurrence-table JSON file for records whose URL contains a
term. Matching is case-insensitive unless --case-sensitive is given, and
--search-files extends the match to the source file field.

The command exits with a nonzero status when nothing matches, so it can
gate shell pipelines.

Examples:
  historiography-urls search combined_urls.json doi
  historiography-urls search urls.json cambridge --case-sensitive
  historiography-urls search urls.json spain --search-files -o results.json`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "perform a case-sensitive search")
	searchCmd.Flags().BoolVar(&searchFilesToo, "search-files", false, "also search the file path field")
	searchCmd.Flags().BoolVar(&searchNoShowFiles, "no-show-files", false, "do not display file paths in the listing")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "save matches to a JSON file")
	searchCmd.Flags().IntVar(&searchIndent, "indent", 2, "JSON indentation level when saving")
}

func runSearch(cmd *cobra.Command, args []string) error {
	inputFile := args[0]
	term := args[1]

	records, err := loadOccurrences(inputFile)
	if err != nil {
		return err
	}

	matches := searchOccurrences(records, term, searchCaseSensitive, searchFilesToo)

	if len(matches) == 0 {
		fmt.Println("No matches found.")
		return fmt.Errorf("no matches for %q in %s", term, inputFile)
	}

	fmt.Printf("Found %d matching record(s):\n\n", len(matches))
	printOccurrenceTable(matches, !searchNoShowFiles)

	if searchOutput != "" {
		data, err := encodeJSONIndent(matches, searchIndent)
		if err != nil {
			return err
		}

		if err := os.WriteFile(searchOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", searchOutput, err)
		}

		if !quiet {
			fmt.Fprintf(os.Stderr, "Results saved to %s\n", searchOutput)
		}
	}

	return nil
}

// loadOccurrences decodes an occurrence table. Entries that are not
// objects are skipped rather than failing the search, since merged files
// may carry foreign records.
func loadOccurrences(path string) ([]extractor.Occurrence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: JSON data must be a list of objects: %w", path, err)
	}

	records := make([]extractor.Occurrence, 0, len(raw))

	for _, entry := range raw {
		var record extractor.Occurrence
		if err := json.Unmarshal(entry, &record); err != nil {
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// searchOccurrences returns the records whose URL (and optionally file)
// contains term.
func searchOccurrences(records []extractor.Occurrence, term string, caseSensitive, searchFiles bool) []extractor.Occurrence {
	needle := term
	if !caseSensitive {
		needle = strings.ToLower(term)
	}

	var matches []extractor.Occurrence

	for _, record := range records {
		url := record.URL
		file := record.File

		if !caseSensitive {
			url = strings.ToLower(url)
			file = strings.ToLower(file)
		}

		if strings.Contains(url, needle) || (searchFiles && strings.Contains(file, needle)) {
			matches = append(matches, record)
		}
	}

	return matches
}

// printOccurrenceTable renders the matches as a table on stdout.
func printOccurrenceTable(matches []extractor.Occurrence, showFiles bool) {
	table := tablewriter.NewWriter(os.Stdout)

	if showFiles {
		table.SetHeader([]string{"#", "URL", "File"})
	} else {
		table.SetHeader([]string{"#", "URL"})
	}

	table.SetAutoWrapText(false)

	for i, match := range matches {
		if showFiles {
			table.Append([]string{strconv.Itoa(i + 1), match.URL, match.File})
		} else {
			table.Append([]string{strconv.Itoa(i + 1), match.URL})
		}
	}

	table.Render()
}
