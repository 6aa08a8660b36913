package library

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const invalidNameChars = `<>:"/\|?*`

var trackPrefixPattern = regexp.MustCompile(`^\d+[.\-\s]+\s*`)

// Sanitize strips characters that are illegal in path segments on common filesystems
// and trims surrounding whitespace. Length is left alone.
func Sanitize(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidNameChars, r) {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(cleaned)
}

// StripTrackPrefix removes a leading track number such as "01. ", "3 - " or "12 ".
func StripTrackPrefix(stem string) string {
	return trackPrefixPattern.ReplaceAllString(stem, "")
}

// UniquePath returns path unchanged when exists reports it free, otherwise the first
// "stem (N)ext" sibling that is free, counting N up from 1.
func UniquePath(path string, exists func(string) bool) string {
	if !exists(path) {
		return path
	}
	for n := 1; ; n++ {
		candidate := SuffixedPath(path, n)
		if !exists(candidate) {
			return candidate
		}
	}
}

// SuffixedPath inserts " (n)" between the stem and the extension of path.
func SuffixedPath(path string, n int) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	return filepath.Join(filepath.Dir(path), fmt.Sprintf("%s (%d)%s", stem, n, ext))
}
