package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/spf13/cobra"
)

var (
	convertInputDir  string
	convertOutputDir string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Batch convert PDF documents to plain text",
	Long: `Convert every PDF in a directory to a plain-text file, ready for the
extract command.

Each input.pdf becomes input.txt in the output directory. A PDF that
cannot be converted is reported and skipped; the batch continues and a
summary of successes and failures is printed at the end.

Examples:
  historiography-urls convert
  historiography-urls convert -i papers/ -o texts/`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertInputDir, "input", "i", "pdfs", "directory containing PDF files")
	convertCmd.Flags().StringVarP(&convertOutputDir, "output", "o", "texts", "directory for extracted text files")
}

func runConvert(cmd *cobra.Command, args []string) error {
	entries, err := os.ReadDir(convertInputDir)
	if err != nil {
		return fmt.Errorf("failed to read input directory %s: %w", convertInputDir, err)
	}

	var pdfs []string

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			pdfs = append(pdfs, entry.Name())
		}
	}

	sort.Strings(pdfs)

	if len(pdfs) == 0 {
		fmt.Printf("No PDF files found in %s\n", convertInputDir)
		return nil
	}

	if err := os.MkdirAll(convertOutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", convertOutputDir, err)
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Found %d PDF files to process\n", len(pdfs))
	}

	successful := 0
	failed := 0

	for i, name := range pdfs {
		if !quiet {
			fmt.Fprintf(os.Stderr, "[%d/%d] Processing: %s\n", i+1, len(pdfs), name)
		}

		text, err := convertPDF(filepath.Join(convertInputDir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "  failed: %v\n", err)

			failed++

			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		outPath := filepath.Join(convertOutputDir, stem+".txt")

		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", outPath, err)
		}

		if !quiet {
			fmt.Fprintf(os.Stderr, "  %d characters, %d lines -> %s\n",
				len(text), strings.Count(text, "\n"), filepath.Base(outPath))
		}

		successful++
	}

	fmt.Printf("Processing complete: %d successful, %d failed, %d total\n",
		successful, failed, len(pdfs))

	return nil
}

func convertPDF(path string) (string, error) {
	response, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert PDF file '%s': %w", path, err)
	}

	if strings.TrimSpace(response.Body) == "" {
		return "", fmt.Errorf("no readable text found in PDF file '%s'", path)
	}

	return response.Body, nil
}
