package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeJSONFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}

	return path
}

func TestCombineJSONLists(t *testing.T) {
	docs := []any{
		[]any{map[string]any{"url": "http://a.com", "file": "a.txt"}},
		[]any{map[string]any{"url": "http://b.com", "file": "b.txt"}},
		[]any{},
	}

	combined, mixed := combineJSON(docs)
	if mixed {
		t.Error("lists should not be reported as mixed")
	}

	list, ok := combined.([]any)
	if !ok {
		t.Fatalf("expected a list, got %T", combined)
	}

	if len(list) != 2 {
		t.Errorf("expected 2 concatenated items, got %d", len(list))
	}
}

func TestCombineJSONObjectsLaterOverrides(t *testing.T) {
	docs := []any{
		map[string]any{"a": float64(1), "b": float64(2)},
		map[string]any{"a": float64(9), "c": float64(3)},
	}

	combined, mixed := combineJSON(docs)
	if mixed {
		t.Error("objects should not be reported as mixed")
	}

	object, ok := combined.(map[string]any)
	if !ok {
		t.Fatalf("expected an object, got %T", combined)
	}

	expected := map[string]any{"a": float64(9), "b": float64(2), "c": float64(3)}
	if !reflect.DeepEqual(object, expected) {
		t.Errorf("merged object = %v, expected %v", object, expected)
	}
}

func TestCombineJSONMixed(t *testing.T) {
	docs := []any{
		[]any{"x"},
		map[string]any{"a": float64(1)},
	}

	combined, mixed := combineJSON(docs)
	if !mixed {
		t.Error("mixed inputs must be flagged")
	}

	list, ok := combined.([]any)
	if !ok || len(list) != 2 {
		t.Errorf("mixed inputs should combine as a list of documents, got %v", combined)
	}
}

func TestEncodeJSONIndent(t *testing.T) {
	out, err := encodeJSONIndent(map[string]any{"url": "http://a.com/?x=1&y=<2>"}, 2)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(out), "http://a.com/?x=1&y=<2>") {
		t.Errorf("HTML characters must not be escaped, got %q", out)
	}

	if !strings.Contains(string(out), "\n  \"url\"") {
		t.Errorf("expected two-space indentation, got %q", out)
	}
}

func TestRunMerge(t *testing.T) {
	dir := t.TempDir()
	a := writeJSONFixture(t, dir, "a.json", `[{"url": "http://a.com", "file": "f1.txt"}]`)
	b := writeJSONFixture(t, dir, "b.json", `[{"url": "http://b.com", "file": "f2.txt"}]`)

	mergeOutput = filepath.Join(dir, "out", "combined.json")
	mergeIndent = 2

	defer func() { mergeOutput = "" }()

	if err := runMerge(mergeCmd, []string{a, b}); err != nil {
		t.Fatalf("runMerge returned error: %v", err)
	}

	data, err := os.ReadFile(mergeOutput)
	if err != nil {
		t.Fatalf("merge did not create parent directories: %v", err)
	}

	var records []map[string]string
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatal(err)
	}

	if len(records) != 2 {
		t.Errorf("expected 2 combined records, got %d", len(records))
	}
}

func TestRunMergeInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	bad := writeJSONFixture(t, dir, "bad.json", `{not json`)

	mergeOutput = filepath.Join(dir, "out.json")

	defer func() { mergeOutput = "" }()

	if err := runMerge(mergeCmd, []string{bad}); err == nil {
		t.Error("expected error for invalid JSON input")
	}
}

func TestLoadJSONFileMissing(t *testing.T) {
	if _, err := loadJSONFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
