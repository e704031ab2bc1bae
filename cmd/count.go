package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var countDetailed bool

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count [file...]",
	Short: "Count the items in JSON output files",
	Long: `Count the number of items in one or more JSON files.

A list (occurrence table) counts its records, an object counts its keys,
and any other document counts as one item. With several inputs a grand
total is printed as well.

Examples:
  historiography-urls count combined_urls.json
  historiography-urls count --detailed urls.json
  historiography-urls count batch_*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)

	countCmd.Flags().BoolVarP(&countDetailed, "detailed", "d", false, "show detailed information about the JSON structure")
}

func runCount(cmd *cobra.Command, args []string) error {
	total := int64(0)

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		if !gjson.ValidBytes(data) {
			return fmt.Errorf("invalid JSON in %s", path)
		}

		doc := gjson.ParseBytes(data)

		if len(args) > 1 {
			fmt.Printf("\n%s:\n", path)
		}

		total += reportCount(doc)
	}

	if len(args) > 1 {
		fmt.Printf("\nTotal items across all files: %d\n", total)
	}

	return nil
}

// reportCount prints the count (and optional structure details) for one
// parsed document and returns the count.
func reportCount(doc gjson.Result) int64 {
	switch {
	case doc.IsArray():
		items := doc.Array()
		fmt.Printf("  Count: %d list items\n", len(items))

		if countDetailed {
			fmt.Println("  Type: list")

			if len(items) > 0 && items[0].IsObject() {
				fmt.Println("  Item type: objects")

				var keys []string
				items[0].ForEach(func(key, _ gjson.Result) bool {
					keys = append(keys, key.String())
					return true
				})
				fmt.Printf("  Sample keys: %s\n", strings.Join(keys, ", "))

				if items[0].Get("url").Exists() {
					fmt.Println("  Contains URL entries: yes")
				}
			}
		}

		return int64(len(items))

	case doc.IsObject():
		object := doc.Map()
		fmt.Printf("  Count: %d object keys\n", len(object))

		if countDetailed {
			fmt.Println("  Type: object")

			keys := make([]string, 0, len(object))
			doc.ForEach(func(key, _ gjson.Result) bool {
				keys = append(keys, key.String())
				return true
			})
			fmt.Printf("  Keys: %s\n", strings.Join(keys, ", "))
		}

		return int64(len(object))

	default:
		fmt.Println("  Count: 1 value")

		if countDetailed {
			fmt.Printf("  Type: %s\n", doc.Type)
		}

		return 1
	}
}
