package library

import (
	"path/filepath"
	"strings"

	"music-organizer/internal/shared"
)

// Classify infers artist and album from a path relative to the scan root.
//
//	Artist/Album/.../song.mp3 -> (Artist, Album)
//	Artist/song.mp3           -> (Artist, "Singles")
//	song.mp3                  -> ("Desconhecido", "Singles")
//
// Segments below the album folder do not take part in classification.
func Classify(relPath string) (artist, album string) {
	segments := splitSegments(relPath)
	switch {
	case len(segments) >= 3:
		return segments[0], segments[1]
	case len(segments) == 2:
		return segments[0], shared.SinglesAlbum
	default:
		return shared.UnknownArtist, shared.SinglesAlbum
	}
}

func splitSegments(relPath string) []string {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(relPath)), "/")
	segments := parts[:0]
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		segments = append(segments, p)
	}
	return segments
}
