// Package money holds the fixed-point helpers shared by every monetary
// computation. All amounts are shopspring decimals at 2 fractional digits;
// values entering the system as text are parsed exactly and never travel
// through a binary float.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	Zero    = decimal.Zero
	Hundred = decimal.NewFromInt(100)
	Twelve  = decimal.NewFromInt(12)
)

// Round normalizes d to 2 fractional digits, ties going away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Parse converts a decimal string into a rounded amount. The empty string is
// rejected rather than treated as zero.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Round(d), nil
}

// MustParse is Parse for trusted inputs such as store columns and tests.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Format renders an amount with exactly 2 fractional digits, the form used
// on payslips, in CSV exports and across the JSON surface.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
