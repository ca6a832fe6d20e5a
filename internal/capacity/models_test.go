package capacity_test

import (
	"testing"

	"teamcap/internal/capacity"
)

func TestSectorForTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Frontend Developer", "FE"},
		{"Backend Developer", "BE"},
		{"QA Automation Engineer", "QA"},
		{"Java Developer", "SMG"},
		{"SMG Lead", "SMG"},
		{"DevOps Engineer", "DVPS"},
		{"Ops Technician", "DVPS"},
		// Matching is case-sensitive substring: "BE" alone is not "Backend".
		{"Senior BE Manager", "-"},
		{"Unknown Title", "-"},
		{"", "-"},
		// A title matching several rules keeps the last matching rule.
		{"QA Ops Specialist", "DVPS"},
		{"Frontend QA Engineer", "QA"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := capacity.SectorForTitle(tt.title); got != tt.want {
				t.Errorf("SectorForTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
