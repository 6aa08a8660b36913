package shared

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestClassifyOutcome(t *testing.T) {
	tests := []struct {
		moved, errors int
		want          string
	}{
		{moved: 3, errors: 0, want: "complete success"},
		{moved: 3, errors: 1, want: "partial"},
		{moved: 0, errors: 2, want: "total failure"},
		{moved: 0, errors: 0, want: "total failure"},
	}
	for _, tt := range tests {
		if got := ClassifyOutcome(tt.moved, tt.errors); got != tt.want {
			t.Errorf("ClassifyOutcome(%d, %d) = %q, want %q", tt.moved, tt.errors, got, tt.want)
		}
	}
}

func TestOrganizeResultOutcome(t *testing.T) {
	r := &OrganizeResult{Moved: 2}
	if r.Outcome() != OutcomeCompleteSuccess {
		t.Errorf("expected complete success, got %q", r.Outcome())
	}
	r.AddError("a.mp3", errors.New("permission denied"))
	if r.Outcome() != OutcomePartial {
		t.Errorf("expected partial, got %q", r.Outcome())
	}
}

func TestFileErrorUnwrap(t *testing.T) {
	fe := FileError{Path: "x.flac", Err: ErrSourceNotFound}
	if !errors.Is(fe, ErrSourceNotFound) {
		t.Error("FileError should unwrap to its cause")
	}
	if !strings.Contains(fe.Error(), "x.flac") {
		t.Errorf("error text should name the file, got %q", fe.Error())
	}
}

func TestParseSelectionInput(t *testing.T) {
	got, err := ParseSelectionInput("3-1, 5, 5, 9", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ParseSelectionInput("1-x", 5); err == nil {
		t.Error("expected an error for a malformed range")
	}
}

func TestGetYesNoInput(t *testing.T) {
	SetInput(strings.NewReader("maybe\ny\n"))
	if !GetYesNoInput("continue?", "n") {
		t.Error("expected yes after one invalid answer")
	}

	SetInput(strings.NewReader("\n"))
	if GetYesNoInput("continue?", "n") {
		t.Error("empty answer should fall back to the default")
	}
}

func TestPathHelpers(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := CreateDirIfNotExists(nested); err != nil {
		t.Fatalf("CreateDirIfNotExists: %v", err)
	}
	if !DirExists(nested) {
		t.Error("directory should exist")
	}
	if FileExists(nested) {
		t.Error("FileExists must be false for directories")
	}
	if !PathExists(nested) {
		t.Error("PathExists should see directories")
	}
}

func TestFormatBytesAndTruncate(t *testing.T) {
	if got := FormatBytes(2 * 1024 * 1024); got != "2.0 MiB" {
		t.Errorf("FormatBytes = %q", got)
	}
	if got := TruncateString("Músicas do Brasil", 8); got != "Músic..." {
		t.Errorf("TruncateString = %q", got)
	}
}

func TestWarningCollector(t *testing.T) {
	wc := NewWarningCollector(true)
	if wc.HasWarnings() {
		t.Error("new collector should be empty")
	}

	wc.AddFileErrors(MoveFailureWarning, []FileError{
		{Path: "a.mp3", Err: errors.New("boom")},
		{Path: "b.mp3", Err: errors.New("boom")},
	})
	wc.AddRollbackWarning("c.mp3", "rename failed")

	if got := wc.GetWarningCount(); got != 3 {
		t.Errorf("expected 3 warnings, got %d", got)
	}
	grouped := wc.GetWarningsByType()
	if len(grouped[MoveFailureWarning]) != 2 || len(grouped[RollbackWarning]) != 1 {
		t.Errorf("unexpected grouping: %+v", grouped)
	}

	wc.AddFileErrors(MoveFailureWarning, []FileError{
		{Path: "d.mp3", Err: errors.New("unreadable"), Kind: HashFailureWarning},
		{Path: "e.mp3", Err: errors.New("busy"), Kind: DeleteFailureWarning},
	})
	grouped = wc.GetWarningsByType()
	if len(grouped[MoveFailureWarning]) != 2 || len(grouped[HashFailureWarning]) != 1 || len(grouped[DeleteFailureWarning]) != 1 {
		t.Errorf("errors with a kind should be filed under it: %+v", grouped)
	}

	wc.Reset()
	if wc.HasWarnings() {
		t.Error("Reset should drop all warnings")
	}

	disabled := NewWarningCollector(false)
	disabled.AddFLACIntegrityWarning("x.flac", "bad header")
	if disabled.HasWarnings() {
		t.Error("disabled collector must not record")
	}
}
