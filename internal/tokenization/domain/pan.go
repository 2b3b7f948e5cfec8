package domain

import (
	"log/slog"
	"strings"
)

const (
	// MinPANLength is the shortest accepted PAN after separators are stripped.
	MinPANLength = 13
	// MaxPANLength is the longest accepted PAN after separators are stripped.
	MaxPANLength = 19

	maskPrefixLen = 6
	maskSuffixLen = 4
	maskChar      = 'X'
)

// PAN is a validated primary account number holding only decimal digits.
//
// The plaintext is reachable through string(pan). Formatting a PAN with fmt or slog
// renders its mask, so it is safe to pass to a logger by mistake.
type PAN string

// MaskedPAN is the display form of a PAN: first six and last four digits kept,
// everything in between replaced with 'X'.
type MaskedPAN string

// String returns the masked form.
func (p PAN) String() string {
	return string(MaskPAN(p))
}

// GoString returns the masked form for %#v.
func (p PAN) GoString() string {
	return p.String()
}

// LogValue implements slog.LogValuer.
func (p PAN) LogValue() slog.Value {
	return slog.StringValue(p.String())
}

// PANOptions controls optional PAN checks.
type PANOptions struct {
	// SkipLuhn disables the mod-10 checksum. Only meant for test card ranges.
	SkipLuhn bool
}

// ParsePAN validates candidate and returns its canonical digit string. Spaces and
// hyphens are stripped first; the result must be 13 to 19 digits and pass the Luhn check.
//
// Errors never quote the candidate.
func ParsePAN(candidate string) (PAN, error) {
	return ParsePANWithOptions(candidate, PANOptions{})
}

// ParsePANWithOptions is ParsePAN with configurable checks.
func ParsePANWithOptions(candidate string, opts PANOptions) (PAN, error) {
	digits := stripSeparators(candidate)

	if len(digits) < MinPANLength || len(digits) > MaxPANLength {
		return "", ErrInvalidPAN
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", ErrInvalidPAN
		}
	}
	if !opts.SkipLuhn && !ValidLuhn(digits) {
		return "", ErrInvalidPAN
	}

	return PAN(digits), nil
}

// MaskPAN derives the masked display form from the PAN itself. The result has the same
// length as pan. Inputs shorter than ten digits, which ParsePAN never produces, are masked
// entirely.
func MaskPAN(pan PAN) MaskedPAN {
	n := len(pan)
	if n < maskPrefixLen+maskSuffixLen {
		return MaskedPAN(strings.Repeat(string(maskChar), n))
	}

	var b strings.Builder
	b.Grow(n)
	b.WriteString(string(pan[:maskPrefixLen]))
	for range n - maskPrefixLen - maskSuffixLen {
		b.WriteByte(maskChar)
	}
	b.WriteString(string(pan[n-maskSuffixLen:]))
	return MaskedPAN(b.String())
}

func stripSeparators(s string) string {
	if !strings.ContainsAny(s, " -") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
