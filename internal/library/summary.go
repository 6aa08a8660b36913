package library

import (
	"sort"
	"strings"

	"music-organizer/internal/shared"
)

// Summarize aggregates records per artist: distinct albums, tracks and bytes.
// Rows are ordered by track count, largest first, then by artist name.
func Summarize(records []shared.AudioFileRecord) shared.LibrarySummary {
	type acc struct {
		row    shared.ArtistSummary
		albums map[string]struct{}
	}
	byArtist := make(map[string]*acc)

	var summary shared.LibrarySummary
	for _, rec := range records {
		a, ok := byArtist[rec.Artist]
		if !ok {
			a = &acc{row: shared.ArtistSummary{Artist: rec.Artist}, albums: make(map[string]struct{})}
			byArtist[rec.Artist] = a
		}
		a.albums[rec.Album] = struct{}{}
		a.row.Tracks++
		a.row.Bytes += rec.Size
		summary.TotalTracks++
		summary.TotalBytes += rec.Size
	}

	for _, a := range byArtist {
		a.row.Albums = len(a.albums)
		summary.TotalAlbums += a.row.Albums
		summary.Artists = append(summary.Artists, a.row)
	}
	sort.Slice(summary.Artists, func(i, j int) bool {
		ai, aj := summary.Artists[i], summary.Artists[j]
		if ai.Tracks != aj.Tracks {
			return ai.Tracks > aj.Tracks
		}
		return strings.ToLower(ai.Artist) < strings.ToLower(aj.Artist)
	})
	return summary
}

// Artists returns the distinct artists of a scan, sorted case-insensitively.
func Artists(records []shared.AudioFileRecord) []string {
	seen := make(map[string]struct{})
	var artists []string
	for _, rec := range records {
		if _, ok := seen[rec.Artist]; ok {
			continue
		}
		seen[rec.Artist] = struct{}{}
		artists = append(artists, rec.Artist)
	}
	sort.Slice(artists, func(i, j int) bool {
		return strings.ToLower(artists[i]) < strings.ToLower(artists[j])
	})
	return artists
}

// FilterByArtists keeps the records whose artist matches one of names, ignoring case.
func FilterByArtists(records []shared.AudioFileRecord, names []string) []shared.AudioFileRecord {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	var out []shared.AudioFileRecord
	for _, rec := range records {
		if _, ok := wanted[strings.ToLower(rec.Artist)]; ok {
			out = append(out, rec)
		}
	}
	return out
}
