package commands

import (
	"reflect"
	"testing"
)

func TestPickArtists(t *testing.T) {
	available := []string{"ABBA", "Beatles", "Cartola", "Djavan", "Elis Regina"}

	tests := []struct {
		selection string
		want      []string
		wantErr   bool
	}{
		{"1-3, 5", []string{"ABBA", "Beatles", "Cartola", "Elis Regina"}, false},
		{"4,4", []string{"Djavan"}, false},
		{"all", available, false},
		{"Todas", available, false},
		{"9", []string{}, false},
		{"", nil, false},
		{"2-x", nil, true},
	}
	for _, tt := range tests {
		got, err := pickArtists(available, tt.selection)
		if (err != nil) != tt.wantErr {
			t.Errorf("pickArtists(%q) error = %v, wantErr %v", tt.selection, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("pickArtists(%q) = %v, want %v", tt.selection, got, tt.want)
		}
	}
}
