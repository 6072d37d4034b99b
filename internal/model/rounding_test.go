package model

import (
	"math"
	"testing"
)

func TestBarsNeeded(t *testing.T) {
	cases := []struct {
		name   string
		length float64
		want   float64
	}{
		{"exact bars", 504, 2},
		{"short remainder billed fractionally", 252 + 126, 1.5},
		{"long remainder rounds up", 252 + 230, 2},
		{"remainder under threshold stays fractional", 200, 200.0 / 252.0},
	}
	for _, c := range cases {
		got := BarsNeeded("798 Sash", c.length)
		if math.Abs(got.Bars-c.want) > 1e-9 {
			t.Errorf("%s: bars = %v, want %v", c.name, got.Bars, c.want)
		}
	}
}

func TestBarsNeededGlassClipExact(t *testing.T) {
	got := BarsNeeded("SOBC Glass Clip (Fixed)", 250)
	if math.Abs(got.Bars-250.0/252.0) > 1e-9 {
		t.Errorf("expected exact decimal bars, got %v", got.Bars)
	}
	if got.Notes == "" {
		t.Error("expected a note for exact clip billing")
	}
}

func TestApplyBillingRounding(t *testing.T) {
	cases := map[float64]float64{
		4.0:  4.0,
		4.25: 4.25,
		4.3:  4.5,
		4.6:  5.0,
		4.1:  4.1,
	}
	for in, want := range cases {
		if got := ApplyBillingRounding(in); got != want {
			t.Errorf("ApplyBillingRounding(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestDecimalToFraction(t *testing.T) {
	cases := map[float64]string{
		48:      "48",
		48.5:    "48 1/2",
		47.875:  "47 7/8",
		0.0625:  "1/16",
		23.999:  "24",
		10.3125: "10 5/16",
	}
	for in, want := range cases {
		if got := DecimalToFraction(in); got != want {
			t.Errorf("DecimalToFraction(%v) = %q, want %q", in, got, want)
		}
	}
	if DecimalToFraction(math.NaN()) != "" {
		t.Error("expected empty string for NaN")
	}
}

func TestParseDimension(t *testing.T) {
	cases := map[string]float64{
		"47.875":  47.875,
		"47 7/8":  47.875,
		`47 7/8"`: 47.875,
		"3/4":     0.75,
		" 24 ":    24,
	}
	for in, want := range cases {
		got, err := ParseDimension(in)
		if err != nil {
			t.Errorf("ParseDimension(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDimension(%q) = %v, want %v", in, got, want)
		}
	}
	for _, bad := range []string{"", "abc", "1/0", "1 2 3"} {
		if _, err := ParseDimension(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[float64]string{
		0:         "0.00",
		12.5:      "12.50",
		1234.567:  "1,234.57",
		1234567.1: "1,234,567.10",
		-9876.5:   "-9,876.50",
	}
	for in, want := range cases {
		if got := FormatMoney(in); got != want {
			t.Errorf("FormatMoney(%v) = %q, want %q", in, got, want)
		}
	}
}
