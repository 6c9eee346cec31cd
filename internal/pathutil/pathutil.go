// Package pathutil expands input file patterns and derives output paths.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExts are the file extensions accepted as image input.
var imageExts = []string{"jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp"}

// FileExtension returns the lower-case file extension without the dot.
func FileExtension(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 {
		return strings.ToLower(ext[1:])
	}
	return ""
}

// IsImageFile checks if a file has an image extension.
func IsImageFile(path string) bool {
	ext := FileExtension(path)
	for _, imgExt := range imageExts {
		if ext == imgExt {
			return true
		}
	}
	return false
}

// ExpandPatterns expands input patterns into a sorted, duplicate-free list
// of image files. A pattern may be a glob, a plain file path, or a
// directory, which is taken to mean every image file directly inside it.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("input pattern %q matches no files", pattern)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				sub, err := filepath.Glob(filepath.Join(m, "*"))
				if err != nil {
					return nil, err
				}
				for _, s := range sub {
					addImageFile(s, seen, &files)
				}
				continue
			}
			addImageFile(m, seen, &files)
		}
	}

	sort.Strings(files)
	return files, nil
}

func addImageFile(path string, seen map[string]bool, files *[]string) {
	if !IsImageFile(path) || seen[path] {
		return
	}
	seen[path] = true
	*files = append(*files, path)
}

// OutPath derives the output path for an input file from an output
// pattern. A `*` in the pattern is replaced by the input base file name
// without its extension; the pattern's own extension selects the output
// image format.
//
//	OutPath("shots/img-001.jpg", "prints/*-print.png")
//	  -> "prints/img-001-print.png"
//
// A pattern without `*` that names a directory (or ends in a path
// separator) keeps the input file name inside that directory.
func OutPath(input, pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("empty output pattern")
	}

	if strings.Contains(pattern, "*") {
		base := filepath.Base(input)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		return strings.Replace(pattern, "*", base, 1), nil
	}

	if strings.HasSuffix(pattern, string(filepath.Separator)) || strings.HasSuffix(pattern, "/") || DirExists(pattern) {
		return filepath.Join(pattern, filepath.Base(input)), nil
	}

	return pattern, nil
}

// EnsureDir creates the parent directory of a file path if it does not exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
