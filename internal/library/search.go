package library

import (
	"path/filepath"
	"strings"

	"github.com/hbollon/go-edlib"

	"music-organizer/internal/shared"
)

// FuzzyThreshold is the minimum Jaro-Winkler similarity for a fuzzy match.
const FuzzyThreshold float32 = 0.85

// Search returns the records whose filename, artist or album contains query, ignoring
// case. With fuzzy set, a field (or one of its words) that is close enough to the query
// also matches, which catches typos like "beatels". Scan order is kept.
func Search(records []shared.AudioFileRecord, query string, fuzzy bool) []shared.AudioFileRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []shared.AudioFileRecord
	for _, rec := range records {
		stem := strings.TrimSuffix(rec.Filename, filepath.Ext(rec.Filename))
		fields := []string{strings.ToLower(rec.Filename), strings.ToLower(rec.Artist), strings.ToLower(rec.Album)}

		if containsAny(fields, q) {
			matches = append(matches, rec)
			continue
		}
		if fuzzy && fuzzyMatch(q, strings.ToLower(StripTrackPrefix(stem)), fields[1], fields[2]) {
			matches = append(matches, rec)
		}
	}
	return matches
}

func containsAny(fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(f, q) {
			return true
		}
	}
	return false
}

func fuzzyMatch(q string, fields ...string) bool {
	for _, f := range fields {
		candidates := append([]string{f}, strings.FieldsFunc(f, isWordSeparator)...)
		for _, c := range candidates {
			sim, err := edlib.StringsSimilarity(q, c, edlib.JaroWinkler)
			if err == nil && sim >= FuzzyThreshold {
				return true
			}
		}
	}
	return false
}

func isWordSeparator(r rune) bool {
	switch r {
	case ' ', '-', '_', '.', '(', ')', '[', ']':
		return true
	}
	return false
}
