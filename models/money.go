package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in paise (1/100 rupee). All arithmetic happens on the
// integer value; the rupee symbol is applied only when formatting for display.
type Money int64

// MoneyFromRupees converts a rupee amount (as received from the upstream API,
// which serves floats) to paise, rounding half away from zero.
func MoneyFromRupees(r float64) Money {
	return Money(math.Round(r * 100))
}

// Rupees returns the amount as a float rupee value for upstream requests.
func (m Money) Rupees() float64 {
	return float64(m) / 100
}

// Mul returns the amount multiplied by a quantity.
func (m Money) Mul(quantity int) Money {
	return m * Money(quantity)
}

// String formats the amount as ₹123.45.
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, v/100, v%100)
}

// ParseMoney parses a display-formatted price such as "319₹", "₹319",
// "1,299.50" or "279" into paise. The upstream size chart serves prices as
// currency-suffixed strings, so this is the only place such strings are read.
func ParseMoney(s string) (Money, error) {
	t := strings.TrimSpace(s)
	t = strings.ReplaceAll(t, "₹", "")
	t = strings.ReplaceAll(t, "Rs.", "")
	t = strings.ReplaceAll(t, ",", "")
	t = strings.TrimSpace(t)
	if t == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	neg := strings.HasPrefix(t, "-")
	t = strings.TrimPrefix(t, "-")
	whole, frac, _ := strings.Cut(t, ".")
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	p := w * 100
	if frac != "" {
		if _, err := strconv.ParseInt(frac, 10, 64); err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		// digits beyond paise precision round half away from zero, same as
		// MoneyFromRupees
		roundUp := len(frac) > 2 && frac[2] >= '5'
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		f, _ := strconv.ParseInt(frac, 10, 64)
		if roundUp {
			f++
		}
		p += f
	}
	if neg {
		p = -p
	}
	return Money(p), nil
}
