package cmd

import (
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

func TestReportCount(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected int64
	}{
		{"occurrence table", `[{"url": "http://a.com", "file": "f.txt"}, {"url": "http://b.com", "file": "f.txt"}]`, 2},
		{"empty list", `[]`, 0},
		{"object keys", `{"a": 1, "b": 2, "c": 3}`, 3},
		{"scalar", `42`, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := reportCount(gjson.Parse(tc.json)); got != tc.expected {
				t.Errorf("reportCount = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestRunCount(t *testing.T) {
	dir := t.TempDir()
	path := writeJSONFixture(t, dir, "urls.json", `[{"url": "http://a.com", "file": "f.txt"}]`)

	if err := runCount(countCmd, []string{path}); err != nil {
		t.Fatalf("runCount returned error: %v", err)
	}
}

func TestRunCountInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	bad := writeJSONFixture(t, dir, "bad.json", `[truncated`)

	if err := runCount(countCmd, []string{bad}); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestRunCountMissingFile(t *testing.T) {
	if err := runCount(countCmd, []string{filepath.Join(t.TempDir(), "absent.json")}); err == nil {
		t.Error("expected error for missing file")
	}
}
