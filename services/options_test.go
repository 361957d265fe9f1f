package services

import (
	"reflect"
	"testing"
)

func TestMergeHouseOptions(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		added    []string
		expected []string
	}{
		{"both empty", nil, nil, []string{}},
		{"add to empty", nil, []string{"pool", "garden"}, []string{"pool", "garden"}},
		{"skip existing", []string{"pool"}, []string{"pool", "gym"}, []string{"pool", "gym"}},
		{"dedupe added", []string{}, []string{"gym", "gym"}, []string{"gym"}},
		{"dedupe existing", []string{"a", "a", "b"}, nil, []string{"a", "b"}},
		{"empty array is a no-op", []string{"pool"}, []string{}, []string{"pool"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeHouseOptions(tt.existing, tt.added)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("MergeHouseOptions(%v, %v) = %v, want %v", tt.existing, tt.added, got, tt.expected)
			}
		})
	}
}

func TestRemoveHouseOption(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		option   string
		expected []string
	}{
		{"remove present", []string{"pool", "gym"}, "pool", []string{"gym"}},
		{"remove absent", []string{"pool"}, "sauna", []string{"pool"}},
		{"remove from empty", nil, "pool", []string{}},
		{"remove every occurrence", []string{"a", "b", "a"}, "a", []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveHouseOption(tt.existing, tt.option)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("RemoveHouseOption(%v, %q) = %v, want %v", tt.existing, tt.option, got, tt.expected)
			}
		})
	}
}
