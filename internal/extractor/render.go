package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Shape selects the serialized form of an index.
type Shape string

const (
	// ShapeUniqueList is one distinct URL per line, sorted ascending.
	ShapeUniqueList Shape = "unique-list"
	// ShapeOccurrenceTable is a JSON array of {url, file} records sorted
	// by URL, then file.
	ShapeOccurrenceTable Shape = "occurrence-table"
)

// ShapeForPath infers the output shape from an output file name: a .json
// suffix selects the occurrence table, anything else the unique list.
// Downstream tools rely on this convention, so it is preserved at the
// boundary; Render itself takes the shape explicitly.
func ShapeForPath(path string) Shape {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return ShapeOccurrenceTable
	}

	return ShapeUniqueList
}

// ParseShape converts a user-supplied name into a Shape.
func ParseShape(name string) (Shape, error) {
	switch Shape(name) {
	case ShapeUniqueList, ShapeOccurrenceTable:
		return Shape(name), nil
	default:
		return "", fmt.Errorf("unknown shape %q (expected %q or %q)", name, ShapeUniqueList, ShapeOccurrenceTable)
	}
}

// Occurrence is one URL's presence in one file. It exists only at output
// time; the index itself stores sets, not records.
type Occurrence struct {
	URL  string `json:"url"`
	File string `json:"file"`
}

// Occurrences flattens the index into records sorted by (url, file).
func (ix Index) Occurrences() []Occurrence {
	records := make([]Occurrence, 0, ix.OccurrenceCount())

	for _, url := range ix.URLs() {
		for _, file := range ix.FilesFor(url) {
			records = append(records, Occurrence{URL: url, File: file})
		}
	}

	return records
}

// Render serializes the index into the requested shape.
//
// unique-list: each distinct URL once, one per line, sorted, every line
// newline-terminated; an empty index renders as an empty file.
//
// occurrence-table: the flattened records as indented JSON with HTML
// escaping off, so URLs round-trip byte-identically through the merge,
// count, and search tools.
func Render(ix Index, shape Shape, indent int) ([]byte, error) {
	switch shape {
	case ShapeUniqueList:
		var buf bytes.Buffer
		for _, url := range ix.URLs() {
			buf.WriteString(url)
			buf.WriteByte('\n')
		}

		return buf.Bytes(), nil

	case ShapeOccurrenceTable:
		if indent <= 0 {
			indent = 2
		}

		var buf bytes.Buffer

		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", strings.Repeat(" ", indent))

		if err := enc.Encode(ix.Occurrences()); err != nil {
			return nil, fmt.Errorf("failed to encode occurrence table: %w", err)
		}

		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
}
