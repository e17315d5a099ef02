package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DayBoundaryHour is the hour at which a new working day begins. Anything
// logged before 05:00 belongs to the previous day's session.
const DayBoundaryHour = 5

// WorkDate is the calendar date a task belongs to: the date of its start
// time, shifted back one day for starts before the 05:00 boundary.
type WorkDate struct {
	year  int
	month time.Month
	day   int
}

// WorkDateOf derives the working date of a task time.
func WorkDateOf(t TaskTime) WorkDate {
	day := t.Time()
	if day.Hour() < DayBoundaryHour {
		day = day.AddDate(0, 0, -1)
	}
	return WorkDate{day.Year(), day.Month(), day.Day()}
}

// Today returns the working date of the current local time.
func Today() WorkDate {
	return WorkDateOf(Now())
}

var dateRe = regexp.MustCompile(`^([0-9]{4})-?([0-9]{2})-?([0-9]{2})$`)

// ParseWorkDate accepts YYYY-MM-DD and YYYYMMDD date strings. Months are
// validated 1-12 and days 1-31; days 29-31 are accepted for every month and
// normalize forward through time.Date.
func ParseWorkDate(s string) (WorkDate, error) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return WorkDate{}, &ParseError{Input: s, Kind: "date"}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return WorkDate{}, &ParseError{Input: s, Kind: "date"}
	}
	norm := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	return WorkDate{norm.Year(), norm.Month(), norm.Day()}, nil
}

// String formats the date as YYYY-MM-DD.
func (d WorkDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// AddDays returns the date n calendar days away, normalizing across month
// and year boundaries.
func (d WorkDate) AddDays(n int) WorkDate {
	norm := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.Local).AddDate(0, 0, n)
	return WorkDate{norm.Year(), norm.Month(), norm.Day()}
}

// Before reports whether d falls before other.
func (d WorkDate) Before(other WorkDate) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}
