package models

import "testing"

func TestMoneyFromRupees(t *testing.T) {
	cases := []struct {
		in   float64
		want Money
	}{
		{319, 31900},
		{279.5, 27950},
		{0, 0},
		{0.005, 1},
		{-12.34, -1234},
	}
	for _, tc := range cases {
		if got := MoneyFromRupees(tc.in); got != tc.want {
			t.Fatalf("MoneyFromRupees(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := Money(31900).String(); got != "₹319.00" {
		t.Fatalf("String() = %q, want ₹319.00", got)
	}
	if got := Money(27950).String(); got != "₹279.50" {
		t.Fatalf("String() = %q, want ₹279.50", got)
	}
	if got := Money(-5).String(); got != "-₹0.05" {
		t.Fatalf("String() = %q, want -₹0.05", got)
	}
}

func TestMoneyMul(t *testing.T) {
	// 16 pieces at ₹175.00 must be exactly ₹2800.00, no float drift
	if got := Money(17500).Mul(16); got != 280000 {
		t.Fatalf("Mul(16) = %d, want 280000", got)
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"319₹", 31900},
		{"₹319", 31900},
		{"279", 27900},
		{"1,299.50", 129950},
		{"Rs. 99", 9900},
		{" 210.5 ", 21050},
		{"12.345", 1235}, // extra digits round half away from zero
		{"12.344", 1234},
		{"1.999", 200},
		{"-1.999", -200},
		{"-50", -5000},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if err != nil {
			t.Fatalf("ParseMoney(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMoney(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseMoneyInvalid(t *testing.T) {
	for _, in := range []string{"", "₹", "abc", "12a", "1.2x"} {
		if _, err := ParseMoney(in); err == nil {
			t.Fatalf("ParseMoney(%q) expected error", in)
		}
	}
}

func TestStockStatus(t *testing.T) {
	cases := []struct {
		quantity int
		want     string
	}{
		{0, StockStatusOut},
		{-1, StockStatusOut},
		{1, StockStatusLow},
		{10, StockStatusLow},
		{11, StockStatusIn},
	}
	for _, tc := range cases {
		if got := StockStatus(tc.quantity); got != tc.want {
			t.Fatalf("StockStatus(%d) = %q, want %q", tc.quantity, got, tc.want)
		}
	}
}
