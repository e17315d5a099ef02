package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// TimeLayout is the fixed storage format for task times.
	TimeLayout = "2006-01-02T15:04:05"
	// ClockLayout is the short display format.
	ClockLayout = "15:04"
)

// ParseError reports input that does not match one of the accepted time or
// date grammars.
type ParseError struct {
	Input string
	Kind  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Kind, e.Input)
}

// TaskTime is a point in time with minute granularity. Seconds are always
// zero and the zone is the local clock.
type TaskTime struct {
	t time.Time
}

// Now returns the current local time truncated to the minute.
func Now() TaskTime {
	return TaskTimeOf(time.Now())
}

// TaskTimeOf truncates t to whole minutes.
func TaskTimeOf(t time.Time) TaskTime {
	return TaskTime{time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())}
}

// ClockToday combines an hour/minute pair with today's calendar date.
func ClockToday(hour, minute int) TaskTime {
	now := time.Now()
	return TaskTime{time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())}
}

var clockRe = regexp.MustCompile(`^([0-2][0-9]|[0-9]):?([0-5][0-9])$`)

// ParseClock parses an "HHMM" or "HH:MM" style string (single-digit hours
// allowed) into a TaskTime on today's date.
func ParseClock(s string) (TaskTime, error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return TaskTime{}, &ParseError{Input: s, Kind: "time"}
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour >= 24 || minute >= 60 {
		return TaskTime{}, &ParseError{Input: s, Kind: "time"}
	}
	return ClockToday(hour, minute), nil
}

// ParseTaskTime parses the fixed YYYY-MM-DDTHH:MM:SS storage format.
// Seconds are accepted and discarded.
func ParseTaskTime(s string) (TaskTime, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return TaskTime{}, &ParseError{Input: s, Kind: "time"}
	}
	return TaskTimeOf(t), nil
}

// String formats the time in the storage format, seconds always 00.
func (t TaskTime) String() string {
	return t.t.Format(TimeLayout)
}

// Clock formats the time as HH:MM.
func (t TaskTime) Clock() string {
	return t.t.Format(ClockLayout)
}

// Sub returns the signed difference t - other.
func (t TaskTime) Sub(other TaskTime) time.Duration {
	return t.t.Sub(other.t)
}

func (t TaskTime) Before(other TaskTime) bool { return t.t.Before(other.t) }
func (t TaskTime) After(other TaskTime) bool  { return t.t.After(other.t) }
func (t TaskTime) Equal(other TaskTime) bool  { return t.t.Equal(other.t) }

// Time exposes the underlying time value.
func (t TaskTime) Time() time.Time {
	return t.t
}

// FormatDurationHHMM renders a duration as HH:MM, with a leading minus for
// negative values.
func FormatDurationHHMM(d time.Duration) string {
	minutes := int(d.Minutes())
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}
