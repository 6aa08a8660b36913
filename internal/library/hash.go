package library

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/semaphore"

	"music-organizer/internal/shared"
)

// HashChunkSize is the read size used while streaming a file through the digest.
const HashChunkSize = 8 * 1024

// HashFile returns the lowercase hex SHA-256 of the file's content, read in 8 KiB chunks.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, HashChunkSize)
	if _, err := io.CopyBuffer(h, onlyReader{f}, buf); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// onlyReader hides *os.File's WriterTo so io.CopyBuffer really uses the fixed buffer.
type onlyReader struct{ r io.Reader }

func (o onlyReader) Read(p []byte) (int, error) { return o.r.Read(p) }

// HashRecords fills Hash on every record that does not have one yet.
//
// The returned slice is index-aligned with records and holds the per-file error (or nil).
// With workers > 1 files are hashed concurrently, but each result lands at its own index,
// so callers still see the records in scan order. The error return is non-nil only when
// ctx is cancelled.
func HashRecords(ctx context.Context, records []shared.AudioFileRecord, workers int, bar *pb.ProgressBar) ([]error, error) {
	errs := make([]error, len(records))

	if workers <= 1 {
		for i := range records {
			if err := ctx.Err(); err != nil {
				return errs, err
			}
			hashOne(&records[i], &errs[i], bar)
		}
		return errs, nil
	}

	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(int64(workers))
	for i := range records {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return errs, err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			hashOne(&records[i], &errs[i], bar)
		}(i)
	}
	wg.Wait()
	return errs, ctx.Err()
}

func hashOne(rec *shared.AudioFileRecord, errOut *error, bar *pb.ProgressBar) {
	if bar != nil {
		defer bar.Increment()
	}
	if rec.HasHash() {
		return
	}
	sum, err := HashFile(rec.AbsPath)
	if err != nil {
		*errOut = err
		return
	}
	rec.Hash = sum
}
