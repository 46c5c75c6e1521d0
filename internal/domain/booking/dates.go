package booking

import "time"

// StayDateLayout is the wire format for check-in/check-out calendar dates.
const StayDateLayout = "2006-01-02"

// DateOf truncates a time to its UTC calendar date (midnight UTC).
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseStayDate parses an ISO calendar date into a UTC midnight time.
func ParseStayDate(s string) (time.Time, error) {
	t, err := time.Parse(StayDateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [cStart, cEnd) intersect. Bounds are exclusive on the end, so a checkout
// on day N never conflicts with a check-in on day N.
func Overlaps(aStart, aEnd, cStart, cEnd time.Time) bool {
	return aStart.Before(cEnd) && cStart.Before(aEnd)
}

// NightsBetween returns the number of nights between two UTC midnight dates.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}
