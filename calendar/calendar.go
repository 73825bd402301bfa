// Package calendar maps calendar dates of the covered year to ledger day
// indexes. January 1 is day 1.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDate = errors.New("calendar: invalid date")
	ErrOutOfYear   = errors.New("calendar: date outside covered year")
)

// Layout is the accepted date form, month/day/year.
const Layout = "MM/DD/YYYY"

// DayIndex returns the 1-based day-of-year index of date within year.
// Only the date's calendar fields are used; its clock and location are ignored.
func DayIndex(year int, date time.Time) (int, error) {
	if date.Year() != year {
		return 0, fmt.Errorf("%w: %s not in %d", ErrOutOfYear, date.Format(time.DateOnly), year)
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	return int(day.Sub(start).Hours()/24) + 1, nil
}

// Date returns the date of day index day in year.
func Date(year, day int) time.Time {
	return time.Date(year, time.January, day, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in year.
func DaysIn(year int) int {
	return Date(year+1, 0).YearDay()
}

// Parse reads a MM/DD/YYYY date that must fall in year. Month and day may
// omit leading zeros; out-of-range fields are rejected rather than
// normalized into a neighbouring month.
func Parse(s string, year int) (time.Time, error) {
	fields := strings.Split(s, "/")
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q is not %s", ErrInvalidDate, s, Layout)
	}

	var parts [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not %s", ErrInvalidDate, s, Layout)
		}
		parts[i] = n
	}
	month, day, y := parts[0], parts[1], parts[2]

	if y != year {
		return time.Time{}, fmt.Errorf("%w: %q not in %d", ErrOutOfYear, s, year)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month %d in %q", ErrInvalidDate, month, s)
	}
	if day < 1 || day > daysInMonth(y, time.Month(month)) {
		return time.Time{}, fmt.Errorf("%w: day %d in %q", ErrInvalidDate, day, s)
	}

	return time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
