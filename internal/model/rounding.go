package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Aluminum profiles are bought in 21' bars.
const (
	AluminumBarLength = 252.0
	// A remainder longer than this buys a whole extra bar; shorter remainders
	// are billed as a fraction of a bar.
	AluminumOptimizationThreshold = AluminumBarLength * 0.9
)

// BarEstimate is the bar count for a profile's total cut length.
type BarEstimate struct {
	TotalLength float64 `json:"total_length"`
	Bars        float64 `json:"bars"`
	Notes       string  `json:"notes,omitempty"`
}

// BarsNeeded computes how many aluminum bars a profile consumes. Glass clip
// profiles are billed by exact length.
func BarsNeeded(profile string, totalLength float64) BarEstimate {
	if strings.Contains(profile, "SOBC Glass Clip") {
		return BarEstimate{
			TotalLength: totalLength,
			Bars:        totalLength / AluminumBarLength,
			Notes:       "Calculated using exact decimals.",
		}
	}

	full := math.Floor(totalLength / AluminumBarLength)
	remainder := math.Mod(totalLength, AluminumBarLength)
	est := BarEstimate{TotalLength: totalLength, Bars: full}
	if remainder > 0 {
		if remainder > AluminumOptimizationThreshold {
			est.Bars++
			est.Notes = fmt.Sprintf("Rounded up. Remainder %.2f\" > %.1f\".", remainder, AluminumOptimizationThreshold)
		} else {
			est.Bars += remainder / AluminumBarLength
		}
	}
	return est
}

// ApplyBillingRounding rounds a length in feet for billing: a fractional part
// over 0.25 (3") rounds up to the next half foot, otherwise the value is kept.
func ApplyBillingRounding(feet float64) float64 {
	whole := math.Floor(feet)
	if feet-whole > 0.25 {
		return math.Ceil(feet*2) / 2
	}
	return feet
}

// DecimalToFraction renders inches as a mixed fraction to the nearest 1/16,
// e.g. 48.5 -> "48 1/2".
func DecimalToFraction(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}
	v := math.Round(value*10000) / 10000
	whole := math.Floor(v)
	if v == whole {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	const denominator = 16
	numerator := int(math.Round((v - whole) * denominator))
	switch numerator {
	case 0:
		return strconv.FormatFloat(whole, 'f', -1, 64)
	case denominator:
		return strconv.FormatFloat(whole+1, 'f', -1, 64)
	}

	d := gcd(numerator, denominator)
	frac := fmt.Sprintf("%d/%d", numerator/d, denominator/d)
	if whole > 0 {
		return fmt.Sprintf("%s %s", strconv.FormatFloat(whole, 'f', -1, 64), frac)
	}
	return frac
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ParseDimension parses an inch measurement written as a decimal ("47.875"),
// a fraction ("7/8") or a mixed fraction ("47 7/8"). A trailing inch mark is
// ignored.
func ParseDimension(s string) (float64, error) {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "\""))
	if cleaned == "" {
		return 0, fmt.Errorf("empty dimension")
	}

	fields := strings.Fields(cleaned)
	switch len(fields) {
	case 1:
		if strings.Contains(fields[0], "/") {
			return parseFraction(fields[0])
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid dimension %q: %w", s, err)
		}
		return v, nil
	case 2:
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid dimension %q: %w", s, err)
		}
		frac, err := parseFraction(fields[1])
		if err != nil {
			return 0, err
		}
		return whole + frac, nil
	default:
		return 0, fmt.Errorf("invalid dimension %q", s)
	}
}

func parseFraction(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, fmt.Errorf("invalid fraction %q", s)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid fraction %q: %w", s, err)
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid fraction %q: %w", s, err)
	}
	if d == 0 {
		return 0, fmt.Errorf("invalid fraction %q: zero denominator", s)
	}
	return n / d, nil
}

// FormatMoney formats an amount with thousands separators and two decimals,
// e.g. 1234.5 -> "1,234.50".
func FormatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0.00"
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, decPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + decPart
}
