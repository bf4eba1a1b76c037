package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseIntDefault(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"42", 0, 42},
		{" 7 ", 0, 7},
		{"0", 9, 0},
		{"", 9, 9},
		{"abc", 9, 9},
		{"-3", 9, 9},
	}
	for _, tt := range tests {
		if got := ParseIntDefault(tt.in, tt.def); got != tt.want {
			t.Errorf("ParseIntDefault(%q, %d) = %d, want %d", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestNormalizeDTO(t *testing.T) {
	type dto struct {
		Pattern string
		Series  string
		Amount  decimal.Decimal
	}
	d := dto{
		Pattern: "  {PREFIX}-{SEQ}  ",
		Series:  "invoice",
		Amount:  decimal.RequireFromString("1.239"),
	}
	NormalizeDTO(&d)

	if d.Pattern != "{PREFIX}-{SEQ}" {
		t.Errorf("Pattern = %q, want trimmed", d.Pattern)
	}
	if d.Series != "invoice" {
		t.Errorf("Series = %q, want unchanged", d.Series)
	}
	if want := decimal.RequireFromString("1.24"); !d.Amount.Equal(want) {
		t.Errorf("Amount = %s, want %s", d.Amount, want)
	}
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	type dto struct {
		Name    *string `json:"name"`
		Terms   *int    `json:"terms"`
		Skipped *string `json:"-"`
		NoTag   *string
	}
	name := "ABC Ltd"
	skipped := "never"
	d := dto{Name: &name, Skipped: &skipped}

	got := UpdatesFromPtrDTO(&d, nil)
	if len(got) != 1 || got["name"] != "ABC Ltd" {
		t.Errorf("updates = %v, want only name", got)
	}

	renamed := UpdatesFromPtrDTO(&d, map[string]string{"name": "business_name"})
	if renamed["business_name"] != "ABC Ltd" {
		t.Errorf("renamed updates = %v, want business_name key", renamed)
	}
}
