package library

import (
	"context"

	"github.com/cheggaaa/pb/v3"

	"music-organizer/internal/shared"
)

// DedupOptions tunes how hashes are computed before grouping.
type DedupOptions struct {
	Workers  int
	Progress *pb.ProgressBar
}

// DedupResult partitions scanned records by content.
type DedupResult struct {
	Unique     []shared.AudioFileRecord // canonical copies, scan order
	Duplicates []shared.DuplicateRecord
	Errors     []shared.FileError // files that could not be hashed
}

// ResolveDuplicates hashes the records and keeps the first record of each hash as the
// canonical copy. Later records with the same hash become duplicates of it. Records whose
// hash fails are reported in Errors and appear in neither list. Only byte-identical files
// are grouped.
func ResolveDuplicates(ctx context.Context, records []shared.AudioFileRecord, opts DedupOptions) (*DedupResult, error) {
	hashErrs, err := HashRecords(ctx, records, opts.Workers, opts.Progress)
	if err != nil {
		return nil, err
	}

	result := &DedupResult{}
	canonical := make(map[string]string, len(records))
	for i, rec := range records {
		if hashErrs[i] != nil {
			result.Errors = append(result.Errors, shared.FileError{Path: rec.AbsPath, Err: hashErrs[i], Kind: shared.HashFailureWarning})
			continue
		}
		if first, seen := canonical[rec.Hash]; seen {
			result.Duplicates = append(result.Duplicates, shared.DuplicateRecord{
				Record:        rec,
				CanonicalPath: first,
			})
			continue
		}
		canonical[rec.Hash] = rec.AbsPath
		result.Unique = append(result.Unique, rec)
	}
	return result, nil
}
