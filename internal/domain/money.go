package domain

import (
	"fmt"
	"math"
)

// Money is an amount in integer cents.
//
// Prices are snapshotted onto orders at placement time; integer cents keep
// repeated totalling exact with no float drift.
type Money int64

// MoneyFromDollars converts a decimal dollar amount (as read from the menu
// YAML) to cents, rounding half away from zero.
func MoneyFromDollars(d float64) Money {
	return Money(math.Round(d * 100))
}

// Dollars returns the amount as a float64 dollar value. Display only;
// arithmetic stays in cents.
func (m Money) Dollars() float64 {
	return float64(m) / 100
}

// String formats the amount as "$12.34".
func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s$%d.%02d", sign, m/100, m%100)
}
