// Package numbering turns a numbering configuration and a sequence counter
// into human-readable document numbers like "INV-2026-0001". Generation and
// preview are pure; only Increment advances the counter, so previewing a
// number can never consume it.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ResetPeriod controls when the sequence counter starts over.
type ResetPeriod string

const (
	ResetNever   ResetPeriod = "never"
	ResetYearly  ResetPeriod = "yearly"
	ResetMonthly ResetPeriod = "monthly"
)

// Config is one numbering series. Invoices and credit notes each carry their
// own Config with an independently advancing CurrentSequence.
type Config struct {
	Prefix          string      `json:"prefix"`
	Pattern         string      `json:"pattern"`
	SequenceDigits  int         `json:"sequence_digits"`
	CurrentSequence int         `json:"current_sequence"`
	ResetPeriod     ResetPeriod `json:"reset_period"`
	// LastPeriod is the period stamp ("2026" or "2026-01") of the last
	// consumed number; empty until the first consume.
	LastPeriod string `json:"last_period,omitempty"`
}

var (
	tokenRe = regexp.MustCompile(`\{([A-Z]+)(?::([0-9]+))?\}`)
	braceRe = regexp.MustCompile(`\{[^{}]*\}`)
)

func periodKey(p ResetPeriod, date time.Time) string {
	switch p {
	case ResetYearly:
		return date.Format("2006")
	case ResetMonthly:
		return date.Format("2006-01")
	default:
		return ""
	}
}

// applyReset zeroes the counter when the date has crossed into a new period.
func applyReset(cfg Config, date time.Time) Config {
	if cfg.ResetPeriod == ResetNever || cfg.ResetPeriod == "" {
		return cfg
	}
	period := periodKey(cfg.ResetPeriod, date)
	if cfg.LastPeriod != "" && cfg.LastPeriod != period {
		cfg.CurrentSequence = 0
	}
	cfg.LastPeriod = period
	return cfg
}

func expand(pattern string, cfg Config, seq int, date time.Time) string {
	return tokenRe.ReplaceAllStringFunc(pattern, func(tok string) string {
		m := tokenRe.FindStringSubmatch(tok)
		name, widthArg := m[1], m[2]
		switch name {
		case "PREFIX":
			return cfg.Prefix
		case "YEAR":
			return date.Format("2006")
		case "YY":
			return date.Format("06")
		case "MONTH":
			return date.Format("01")
		case "SEQ":
			width := cfg.SequenceDigits
			if widthArg != "" {
				width, _ = strconv.Atoi(widthArg)
			}
			if width < 1 {
				width = 1
			}
			return fmt.Sprintf("%0*d", width, seq)
		}
		// Unknown tokens pass through verbatim; ValidatePattern flags them,
		// generation must not fail on them.
		return tok
	})
}

// Generate formats the next number in the series (the one a consume at this
// date would emit) without mutating anything.
func Generate(cfg Config, date time.Time) string {
	cfg = applyReset(cfg, date)
	return expand(cfg.Pattern, cfg, cfg.CurrentSequence+1, date)
}

// Increment returns a new Config with the counter advanced, applying any
// period reset first. This is the only operation that moves the sequence.
func Increment(cfg Config, date time.Time) Config {
	cfg = applyReset(cfg, date)
	cfg.CurrentSequence++
	return cfg
}

// Preview formats an arbitrary pattern with the series' counter, for showing
// the effect of a pattern edit before saving it.
func Preview(pattern string, cfg Config, date time.Time) string {
	cfg = applyReset(cfg, date)
	return expand(pattern, cfg, cfg.CurrentSequence+1, date)
}

// ExtractSequence recovers the sequence value from a previously generated
// number by matching it against the config's pattern. The second return is
// false when the number does not match the pattern.
func ExtractSequence(number string, cfg Config) (int, bool) {
	var b strings.Builder
	last := 0
	seqGroup := 0
	groups := 0
	for _, loc := range tokenRe.FindAllStringSubmatchIndex(cfg.Pattern, -1) {
		b.WriteString(regexp.QuoteMeta(cfg.Pattern[last:loc[0]]))
		name := cfg.Pattern[loc[2]:loc[3]]
		switch name {
		case "PREFIX":
			b.WriteString(regexp.QuoteMeta(cfg.Prefix))
		case "YEAR":
			b.WriteString(`[0-9]{4}`)
		case "YY", "MONTH":
			b.WriteString(`[0-9]{2}`)
		case "SEQ":
			groups++
			seqGroup = groups
			b.WriteString(`([0-9]+)`)
		default:
			b.WriteString(regexp.QuoteMeta(cfg.Pattern[loc[0]:loc[1]]))
		}
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(cfg.Pattern[last:]))

	if seqGroup == 0 {
		return 0, false
	}
	re, err := regexp.Compile("^" + b.String() + "$")
	if err != nil {
		return 0, false
	}
	m := re.FindStringSubmatch(number)
	if m == nil {
		return 0, false
	}
	seq, err := strconv.Atoi(m[seqGroup])
	if err != nil {
		return 0, false
	}
	return seq, true
}

// ValidatePattern checks a pattern for use in a series: it must contain a
// {SEQ} token, any explicit width must be positive, and every {...} token must
// be one this engine knows how to expand.
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("pattern is empty")
	}
	for _, tok := range braceRe.FindAllString(pattern, -1) {
		if tokenRe.FindString(tok) != tok {
			return fmt.Errorf("unknown token %s", tok)
		}
	}
	hasSeq := false
	for _, m := range tokenRe.FindAllStringSubmatch(pattern, -1) {
		switch m[1] {
		case "PREFIX", "YEAR", "YY", "MONTH":
		case "SEQ":
			hasSeq = true
			if m[2] != "" {
				if w, err := strconv.Atoi(m[2]); err != nil || w < 1 {
					return fmt.Errorf("sequence width must be at least 1: %s", m[0])
				}
			}
		default:
			return fmt.Errorf("unknown token %s", m[0])
		}
	}
	if !hasSeq {
		return fmt.Errorf("pattern must contain a {SEQ} token")
	}
	return nil
}
