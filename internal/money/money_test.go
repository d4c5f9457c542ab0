package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		in   string
		want Cents
	}{
		{"0", 0},
		{"1", 100},
		{"12.34", 1234},
		{"12.345", 1235},  // half rounds away from zero
		{"-12.345", -1235},
		{"0.004", 0},
		{"0.005", 1},
		{"33.333333", 3333},
		{"-50", -5000},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", tt.in, err)
		}
		if got := ToCents(d); got != tt.want {
			t.Errorf("ToCents(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, c := range []Cents{0, 1, -1, 100, -5000, 123456789} {
		if got := ToCents(c.Decimal()); got != c {
			t.Errorf("round trip of %d cents = %d", c, got)
		}
	}
	if s := Cents(1234).Decimal().String(); s != "12.34" {
		t.Errorf("Decimal() = %s, want 12.34", s)
	}
}

func TestAbs(t *testing.T) {
	if Cents(-5).Abs() != 5 || Cents(5).Abs() != 5 || Cents(0).Abs() != 0 {
		t.Error("Abs is broken")
	}
}
