package extractor

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBuildIndexParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()

	var paths []string

	for i := 0; i < 20; i++ {
		content := fmt.Sprintf("doc %d links https://example.com/%d and http://shared.org\n", i, i%5)
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("doc%02d.txt", i), content))
	}

	sequential := BuildIndex(paths, PatternStrict, nil)
	parallel := BuildIndexParallel(paths, PatternStrict, 4, nil)

	if !reflect.DeepEqual(sequential.Occurrences(), parallel.Occurrences()) {
		t.Errorf("parallel build differs from sequential build")
	}
}

func TestBuildIndexParallelSingleWorker(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "https://example.com")

	ix := BuildIndexParallel([]string{path}, PatternStrict, 1, nil)

	if ix.UniqueCount() != 1 {
		t.Errorf("expected 1 URL, got %d", ix.UniqueCount())
	}
}

func TestBuildIndexParallelIsolatesReadErrors(t *testing.T) {
	dir := t.TempDir()

	paths := []string{
		filepath.Join(dir, "absent1.txt"),
		writeFile(t, dir, "good.txt", "https://example.com/ok"),
		filepath.Join(dir, "absent2.txt"),
		writeFile(t, dir, "also.txt", "https://example.com/ok https://example.com/more"),
	}

	var warnings int
	warn := func(format string, args ...any) {
		warnings++
	}

	ix := BuildIndexParallel(paths, PatternStrict, 3, warn)

	if warnings != 2 {
		t.Errorf("expected 2 warnings, got %d", warnings)
	}

	if ix.UniqueCount() != 2 {
		t.Errorf("readable files should still be indexed, got %d URLs", ix.UniqueCount())
	}

	files := ix.FilesFor("https://example.com/ok")
	if len(files) != 2 {
		t.Errorf("expected https://example.com/ok in 2 files, got %v", files)
	}
}

func TestWorkerPoolStats(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 3; i++ {
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("s%d.txt", i), "http://a.com"))
	}

	pool := NewWorkerPool(2)
	pool.Start()

	go func() {
		for _, path := range paths {
			pool.SubmitTask(ScanTask{Path: path, Pattern: PatternStrict})
		}

		pool.Wait()
	}()

	seen := 0
	for range pool.Results() {
		seen++
	}

	if seen != 3 {
		t.Errorf("expected 3 results, got %d", seen)
	}

	completed, total := pool.Stats()
	if completed != 3 || total != 3 {
		t.Errorf("Stats() = %d/%d, expected 3/3", completed, total)
	}
}
