package library

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flac "github.com/go-flac/go-flac"

	"music-organizer/internal/shared"
)

// VerifyFLAC checks the container of every .flac record: the fLaC marker, a readable
// STREAMINFO block and a frame sync code right after the metadata. No tags are read.
// Records in other formats are skipped.
func VerifyFLAC(records []shared.AudioFileRecord) []shared.FLACCheck {
	var checks []shared.FLACCheck
	for _, rec := range records {
		if strings.ToLower(filepath.Ext(rec.Filename)) != ".flac" {
			continue
		}
		checks = append(checks, checkFLAC(rec))
	}
	return checks
}

func checkFLAC(rec shared.AudioFileRecord) shared.FLACCheck {
	check := shared.FLACCheck{Record: rec}

	f, err := os.Open(rec.AbsPath)
	if err != nil {
		check.Err = fmt.Errorf("failed to open: %w", err)
		return check
	}
	defer f.Close()

	r := bufio.NewReader(f)
	meta, err := flac.ParseMetadata(r)
	if err != nil {
		check.Err = fmt.Errorf("failed to parse metadata blocks: %w", err)
		return check
	}
	if len(meta.Meta) == 0 {
		check.Err = flac.ErrorNoStreamInfo
		return check
	}
	info, err := meta.GetStreamInfo()
	if err != nil {
		check.Err = err
		return check
	}
	check.SampleRate = info.SampleRate
	check.BitDepth = info.BitDepth
	check.Channels = info.ChannelCount

	syncCode := make([]byte, 2)
	if _, err := io.ReadFull(r, syncCode); err != nil || syncCode[0] != 0xFF || syncCode[1]>>2 != 0x3E {
		check.Err = flac.ErrorNoSyncCode
	}
	return check
}
