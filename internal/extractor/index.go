package extractor

import "sort"

// Index maps each matched URL string to the set of files it occurred in.
// Keys are exact matched substrings, case preserved; a key exists iff the
// URL was matched in at least one file, and its set is never empty. The
// same URL matched several times within one file contributes the file
// only once.
type Index map[string]map[string]struct{}

// NewIndex returns an empty index.
func NewIndex() Index {
	return make(Index)
}

// Add records that url occurred in file.
func (ix Index) Add(url, file string) {
	files, ok := ix[url]
	if !ok {
		files = make(map[string]struct{})
		ix[url] = files
	}

	files[file] = struct{}{}
}

// Merge folds other into ix (set union per URL).
func (ix Index) Merge(other Index) {
	for url, files := range other {
		for file := range files {
			ix.Add(url, file)
		}
	}
}

// URLs returns the distinct URLs in ascending lexical order.
func (ix Index) URLs() []string {
	urls := make([]string, 0, len(ix))
	for url := range ix {
		urls = append(urls, url)
	}

	sort.Strings(urls)

	return urls
}

// FilesFor returns the files containing url in ascending lexical order.
func (ix Index) FilesFor(url string) []string {
	files := make([]string, 0, len(ix[url]))
	for file := range ix[url] {
		files = append(files, file)
	}

	sort.Strings(files)

	return files
}

// UniqueCount returns the number of distinct URLs.
func (ix Index) UniqueCount() int {
	return len(ix)
}

// OccurrenceCount returns the total number of (url, file) pairs, which is
// at least UniqueCount and exceeds it when a URL appears in several files.
func (ix Index) OccurrenceCount() int {
	n := 0
	for _, files := range ix {
		n += len(files)
	}

	return n
}

// BuildIndex scans each file with the pattern and accumulates an index.
// Matching is purely textual and stateless between files, so building
// twice from the same content yields an identical index. A file that
// cannot be read is reported through warn (if non-nil) and skipped; it
// never aborts the remaining files.
func BuildIndex(paths []string, pattern Pattern, warn func(format string, args ...any)) Index {
	ix := NewIndex()

	for _, path := range paths {
		text, err := ReadTextFile(path)
		if err != nil {
			if warn != nil {
				warn("could not read %s: %v", path, err)
			}

			continue
		}

		for _, url := range pattern.Find(text) {
			ix.Add(url, path)
		}
	}

	return ix
}
