package domain

import (
	"time"
)

// Relative arrival tokens accepted from the customer intake form.
// "today-*" tokens resolve to the named hour on the current day even when
// that hour has already passed, which then surfaces as an overdue ticket.
const (
	ArrivalIn30Min     = "30min"
	ArrivalIn1Hour     = "1hour"
	ArrivalIn2Hours    = "2hours"
	ArrivalToday7PM    = "today-7pm"
	ArrivalToday8PM    = "today-8pm"
	ArrivalTomorrow7PM = "tomorrow-7pm"
)

// ResolveArrival converts a requested-arrival value into a timestamp
// against now. The value is either one of the relative tokens above or an
// RFC 3339 timestamp. Unknown values fail with INVALID_RESERVATION.
func ResolveArrival(value string, now time.Time) (time.Time, error) {
	switch value {
	case ArrivalIn30Min:
		return now.Add(30 * time.Minute), nil
	case ArrivalIn1Hour:
		return now.Add(time.Hour), nil
	case ArrivalIn2Hours:
		return now.Add(2 * time.Hour), nil
	case ArrivalToday7PM:
		return atHour(now, 19), nil
	case ArrivalToday8PM:
		return atHour(now, 20), nil
	case ArrivalTomorrow7PM:
		return atHour(now.AddDate(0, 0, 1), 19), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, NewInvalidReservation("unrecognized arrival time " + value)
}

func atHour(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}
