package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	mergeOutput string
	mergeIndent int
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge [file...]",
	Short: "Combine multiple JSON files into one",
	Long: `Combine several JSON files into a single JSON file.

If every input holds a list (such as occurrence tables written by extract),
the lists are concatenated. If every input holds an object, the objects are
merged, with later files overriding earlier ones. Mixed inputs produce a
list of the documents, with a warning.

Examples:
  historiography-urls merge a.json b.json -o combined.json
  historiography-urls merge batch_*.json -o all.json --indent 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output JSON file path (required)")
	mergeCmd.Flags().IntVar(&mergeIndent, "indent", 2, "JSON indentation level")

	cobra.CheckErr(mergeCmd.MarkFlagRequired("output"))
}

func runMerge(cmd *cobra.Command, args []string) error {
	docs := make([]any, 0, len(args))

	for _, path := range args {
		doc, err := loadJSONFile(path)
		if err != nil {
			return err
		}

		docs = append(docs, doc)
	}

	combined, mixed := combineJSON(docs)
	if mixed {
		fmt.Fprintln(os.Stderr, "Warning: mixed data types detected, combining as a list")
	}

	if dir := filepath.Dir(mergeOutput); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	data, err := encodeJSONIndent(combined, mergeIndent)
	if err != nil {
		return err
	}

	if err := os.WriteFile(mergeOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", mergeOutput, err)
	}

	switch v := combined.(type) {
	case []any:
		fmt.Printf("Combined %d files into a list with %d items: %s\n", len(args), len(v), mergeOutput)
	case map[string]any:
		fmt.Printf("Combined %d files into an object with %d keys: %s\n", len(args), len(v), mergeOutput)
	default:
		fmt.Printf("Combined %d files: %s\n", len(args), mergeOutput)
	}

	return nil
}

// loadJSONFile reads and parses one JSON document. Unreadable or invalid
// inputs are fatal for the merge; a partial merge would silently drop data.
func loadJSONFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	return doc, nil
}

// combineJSON merges documents: all lists concatenate, all objects merge
// with later keys overriding, anything else becomes a list of the raw
// documents (mixed is true in that case).
func combineJSON(docs []any) (combined any, mixed bool) {
	allLists := true
	allMaps := true

	for _, doc := range docs {
		if _, ok := doc.([]any); !ok {
			allLists = false
		}

		if _, ok := doc.(map[string]any); !ok {
			allMaps = false
		}
	}

	switch {
	case allLists:
		var out []any
		for _, doc := range docs {
			out = append(out, doc.([]any)...)
		}

		if out == nil {
			out = []any{}
		}

		return out, false

	case allMaps:
		out := make(map[string]any)
		for _, doc := range docs {
			for k, v := range doc.(map[string]any) {
				out[k] = v
			}
		}

		return out, false

	default:
		return docs, true
	}
}

// encodeJSONIndent renders v the way the occurrence-table writer does:
// indented, HTML escaping off, trailing newline.
func encodeJSONIndent(v any, indent int) ([]byte, error) {
	if indent <= 0 {
		indent = 2
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	return buf.Bytes(), nil
}
