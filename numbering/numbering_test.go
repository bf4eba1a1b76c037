package numbering_test

import (
	"testing"
	"time"

	"brickbill-backend/numbering"
)

func baseConfig() numbering.Config {
	return numbering.Config{
		Prefix:          "INV",
		Pattern:         "{PREFIX}-{YEAR}-{SEQ:4}",
		SequenceDigits:  4,
		CurrentSequence: 0,
		ResetPeriod:     numbering.ResetNever,
	}
}

var jan15 = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(numbering.Config) numbering.Config
		date time.Time
		want string
	}{
		{
			name: "fresh series",
			cfg:  func(c numbering.Config) numbering.Config { return c },
			date: jan15,
			want: "INV-2026-0001",
		},
		{
			name: "advanced counter",
			cfg: func(c numbering.Config) numbering.Config {
				c.CurrentSequence = 41
				return c
			},
			date: jan15,
			want: "INV-2026-0042",
		},
		{
			name: "short year and month tokens",
			cfg: func(c numbering.Config) numbering.Config {
				c.Pattern = "{PREFIX}/{YY}{MONTH}/{SEQ}"
				return c
			},
			date: jan15,
			want: "INV/2601/0001",
		},
		{
			name: "default sequence width from config",
			cfg: func(c numbering.Config) numbering.Config {
				c.Pattern = "{PREFIX}-{SEQ}"
				c.SequenceDigits = 6
				return c
			},
			date: jan15,
			want: "INV-000001",
		},
		{
			name: "explicit width overrides config",
			cfg: func(c numbering.Config) numbering.Config {
				c.Pattern = "{PREFIX}-{SEQ:2}"
				c.SequenceDigits = 6
				return c
			},
			date: jan15,
			want: "INV-01",
		},
		{
			name: "unknown token passes through verbatim",
			cfg: func(c numbering.Config) numbering.Config {
				c.Pattern = "{PREFIX}-{SITE}-{SEQ:3}"
				return c
			},
			date: jan15,
			want: "INV-{SITE}-001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := numbering.Generate(tt.cfg(baseConfig()), tt.date); got != tt.want {
				t.Errorf("Generate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerate_IsPure(t *testing.T) {
	cfg := baseConfig()
	first := numbering.Generate(cfg, jan15)
	second := numbering.Generate(cfg, jan15)
	if first != second {
		t.Errorf("repeated Generate differs: %q then %q", first, second)
	}
	if cfg.CurrentSequence != 0 {
		t.Errorf("Generate mutated the counter to %d", cfg.CurrentSequence)
	}
}

func TestIncrement(t *testing.T) {
	cfg := baseConfig()

	cfg = numbering.Increment(cfg, jan15)
	if cfg.CurrentSequence != 1 {
		t.Fatalf("CurrentSequence = %d, want 1", cfg.CurrentSequence)
	}
	if got, want := numbering.Generate(cfg, jan15), "INV-2026-0002"; got != want {
		t.Errorf("next number = %q, want %q", got, want)
	}
}

func TestIncrement_YearlyReset(t *testing.T) {
	cfg := baseConfig()
	cfg.ResetPeriod = numbering.ResetYearly
	cfg.CurrentSequence = 41
	cfg.LastPeriod = "2025"

	// Crossing into 2026 restarts the series.
	if got, want := numbering.Generate(cfg, jan15), "INV-2026-0001"; got != want {
		t.Errorf("Generate after year change = %q, want %q", got, want)
	}

	cfg = numbering.Increment(cfg, jan15)
	if cfg.CurrentSequence != 1 {
		t.Errorf("CurrentSequence = %d, want 1 after reset+increment", cfg.CurrentSequence)
	}
	if cfg.LastPeriod != "2026" {
		t.Errorf("LastPeriod = %q, want %q", cfg.LastPeriod, "2026")
	}

	// Same period: no further reset.
	cfg = numbering.Increment(cfg, jan15.AddDate(0, 2, 0))
	if cfg.ResetPeriod == numbering.ResetYearly && cfg.CurrentSequence != 2 {
		t.Errorf("CurrentSequence = %d, want 2 within the same year", cfg.CurrentSequence)
	}
}

func TestIncrement_MonthlyReset(t *testing.T) {
	cfg := baseConfig()
	cfg.ResetPeriod = numbering.ResetMonthly
	cfg.CurrentSequence = 7
	cfg.LastPeriod = "2025-12"

	cfg = numbering.Increment(cfg, jan15)
	if cfg.CurrentSequence != 1 {
		t.Errorf("CurrentSequence = %d, want 1 after month change", cfg.CurrentSequence)
	}
	if cfg.LastPeriod != "2026-01" {
		t.Errorf("LastPeriod = %q, want %q", cfg.LastPeriod, "2026-01")
	}
}

func TestExtractSequence(t *testing.T) {
	cfg := baseConfig()

	tests := []struct {
		number string
		want   int
		wantOK bool
	}{
		{"INV-2026-0001", 1, true},
		{"INV-2026-0042", 42, true},
		{"INV-2026-12345", 12345, true},
		{"CN-2026-0001", 0, false},
		{"INV-2026", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := numbering.ExtractSequence(tt.number, cfg)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ExtractSequence(%q) = %d,%v; want %d,%v", tt.number, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPreview(t *testing.T) {
	cfg := baseConfig()
	cfg.CurrentSequence = 9

	got := numbering.Preview("{PREFIX}/{YY}/{SEQ:3}", cfg, jan15)
	if want := "INV/26/010"; got != want {
		t.Errorf("Preview = %q, want %q", got, want)
	}
	// Idempotent: no intervening consume, identical output.
	if again := numbering.Preview("{PREFIX}/{YY}/{SEQ:3}", cfg, jan15); again != got {
		t.Errorf("repeated Preview differs: %q then %q", got, again)
	}
}

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"typical pattern", "{PREFIX}-{YEAR}-{SEQ:4}", false},
		{"all known tokens", "{PREFIX}{YEAR}{YY}{MONTH}{SEQ}", false},
		{"literal text allowed", "REF {SEQ} of {YEAR}", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"missing sequence", "{PREFIX}-{YEAR}", true},
		{"unknown token", "{PREFIX}-{QUARTER}-{SEQ}", true},
		{"lowercase token", "{seq}", true},
		{"zero width", "{SEQ:0}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := numbering.ValidatePattern(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePattern(%q) error = %v, wantErr %v", tt.pattern, err, tt.wantErr)
			}
		})
	}
}
