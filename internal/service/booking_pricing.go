package service

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	msgCheckoutBeforeCheckin = "checkout must be after checkin"
	msgPastCheckin           = "cannot book past dates"
)

// DateOnly drops the clock part of t in t's own location and returns the
// calendar date as midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights is the whole-day difference between the two calendar dates.
func Nights(checkIn, checkOut time.Time) int {
	return int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
}

// CalculateTotalPrice returns rate × nights, or zero for an empty or reversed stay.
func CalculateTotalPrice(rate decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return decimal.Zero
	}
	return rate.Mul(decimal.NewFromInt(int64(nights)))
}

// ValidateStay checks date ordering first, then the lower bound against today.
func ValidateStay(checkIn, checkOut, today time.Time) error {
	in, out := DateOnly(checkIn), DateOnly(checkOut)
	if !in.Before(out) {
		return newValidationError("check_out", msgCheckoutBeforeCheckin)
	}
	if in.Before(DateOnly(today)) {
		return newValidationError("check_in", msgPastCheckin)
	}
	return nil
}
