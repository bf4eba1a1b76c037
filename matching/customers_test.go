package matching_test

import (
	"testing"

	"brickbill-backend/matching"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ABC Limited", "abc ltd"},
		{"ABC Ltd", "abc ltd"},
		{"ABC Ltd.", "abc ltd"},
		{"  Smith & Sons  ", "smith and sons"},
		{"Smith and Sons", "smith and sons"},
		{"J.B. Plastering, LLP", "j b plastering llp"},
		{"ACME   Company", "acme co"},
		{"Acme Co", "acme co"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := matching.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []matching.Duplicate
	}{
		{
			name:  "same name different formatting",
			names: []string{"ABC Limited", "ABC Ltd", "XYZ Co"},
			want: []matching.Duplicate{
				{NameA: "ABC Limited", NameB: "ABC Ltd", Reason: matching.ReasonSameName},
			},
		},
		{
			name:  "ampersand folds to and",
			names: []string{"Smith & Sons", "Smith and Sons"},
			want: []matching.Duplicate{
				{NameA: "Smith & Sons", NameB: "Smith and Sons", Reason: matching.ReasonSameName},
			},
		},
		{
			name:  "substring similarity",
			names: []string{"Brown Roofing Ltd", "Brown Roofing"},
			want: []matching.Duplicate{
				{NameA: "Brown Roofing Ltd", NameB: "Brown Roofing", Reason: matching.ReasonSimilarName},
			},
		},
		{
			name:  "short names are not similar",
			names: []string{"AB", "ABC"},
			want:  nil,
		},
		{
			name:  "distinct names report nothing",
			names: []string{"Alpha Builders", "Omega Scaffolding"},
			want:  nil,
		},
		{
			name:  "repeated input collapses to one pair",
			names: []string{"ABC Ltd", "ABC Limited", "ABC Ltd"},
			want: []matching.Duplicate{
				{NameA: "ABC Ltd", NameB: "ABC Limited", Reason: matching.ReasonSameName},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matching.FindDuplicates(tt.names)
			if len(got) != len(tt.want) {
				t.Fatalf("FindDuplicates = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pair %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
