package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "tie rounds to larger magnitude", in: "2.005", want: "2.01"},
		{name: "negative tie rounds away from zero", in: "-2.005", want: "-2.01"},
		{name: "below tie rounds down", in: "2.004", want: "2.00"},
		{name: "above tie rounds up", in: "2.006", want: "2.01"},
		{name: "already two places", in: "36000.00", want: "36000.00"},
		{name: "integer", in: "550", want: "550.00"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tc.in)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.in, err)
			}
			if got := Format(Round(d)); got != tc.want {
				t.Fatalf("Round(%s) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestRoundIdempotent(t *testing.T) {
	for _, raw := range []string{"2.005", "0.004999", "31850.004", "-0.005", "123456789.995"} {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		once := Round(d)
		twice := Round(once)
		if !once.Equal(twice) {
			t.Fatalf("Round not idempotent for %s: %s != %s", raw, once, twice)
		}
	}
}

func TestParseIsExact(t *testing.T) {
	// 0.1 has no exact binary representation; a float64 round trip would
	// surface as drift here.
	d, err := Parse("0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(decimal.New(1, -1)) {
		t.Fatalf("Parse(0.1) = %s", d)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	for _, raw := range []string{"", "  ", "abc", "12,5"} {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseRounds(t *testing.T) {
	d, err := Parse("30000.005")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Format(d); got != "30000.01" {
		t.Fatalf("Parse(30000.005) = %s, want 30000.01", got)
	}
}
