package models

import (
	"errors"
	"testing"
	"time"
)

func mustTime(t *testing.T, s string) TaskTime {
	t.Helper()
	tt, err := ParseTaskTime(s)
	if err != nil {
		t.Fatalf("failed to parse time %q: %v", s, err)
	}
	return tt
}

func TestTaskTimeTruncatesSeconds(t *testing.T) {
	raw := time.Date(2021, 1, 1, 12, 34, 56, 789, time.Local)
	tt := TaskTimeOf(raw)

	if got := tt.String(); got != "2021-01-01T12:34:00" {
		t.Errorf("expected seconds truncated, got %s", got)
	}
}

func TestTaskTimeRoundTrip(t *testing.T) {
	tt := mustTime(t, "2021-01-01T12:34:56")

	if got := tt.String(); got != "2021-01-01T12:34:00" {
		t.Errorf("expected 2021-01-01T12:34:00, got %s", got)
	}

	again, err := ParseTaskTime(tt.String())
	if err != nil {
		t.Fatalf("failed to re-parse formatted time: %v", err)
	}
	if !again.Equal(tt) {
		t.Errorf("round trip changed the value: %s vs %s", again, tt)
	}
}

func TestTaskTimeClock(t *testing.T) {
	tt := mustTime(t, "2015-09-18T23:56:00")
	if got := tt.Clock(); got != "23:56" {
		t.Errorf("expected 23:56, got %s", got)
	}
}

func TestTaskTimeSub(t *testing.T) {
	t1 := mustTime(t, "2015-09-18T23:56:00")
	t2 := mustTime(t, "2015-09-19T01:10:00")

	if got := t2.Sub(t1); got != 74*time.Minute {
		t.Errorf("expected 74m, got %v", got)
	}
	if got := t1.Sub(t2); got != -74*time.Minute {
		t.Errorf("expected -74m, got %v", got)
	}
}

func TestTaskTimeOrdering(t *testing.T) {
	t1 := mustTime(t, "2021-01-01T12:30:00")
	t2 := mustTime(t, "2021-01-01T12:45:00")

	if !t1.Before(t2) || t2.Before(t1) {
		t.Error("expected t1 < t2")
	}
	if !t2.After(t1) {
		t.Error("expected t2 > t1")
	}
	if !t1.Equal(t1) {
		t.Error("expected t1 == t1")
	}
}

func TestParseClockAccepted(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
	}{
		{"2310", 23, 10},
		{"0559", 5, 59},
		{"0605", 6, 5},
		{"23:10", 23, 10},
		{"05:59", 5, 59},
		{"6:05", 6, 5},
	}

	for _, c := range cases {
		tt, err := ParseClock(c.in)
		if err != nil {
			t.Errorf("ParseClock(%q) failed: %v", c.in, err)
			continue
		}
		if tt.Time().Hour() != c.hour || tt.Time().Minute() != c.minute {
			t.Errorf("ParseClock(%q) = %02d:%02d, expected %02d:%02d",
				c.in, tt.Time().Hour(), tt.Time().Minute(), c.hour, c.minute)
		}
	}
}

func TestParseClockRejected(t *testing.T) {
	for _, in := range []string{"aaa", "2410", "0560", "24:10", "05:60", "5:60", ""} {
		if _, err := ParseClock(in); err == nil {
			t.Errorf("ParseClock(%q) should have failed", in)
		}
	}
}

func TestParseClockReportsInput(t *testing.T) {
	_, err := ParseClock("2410")

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a ParseError, got %T", err)
	}
	if perr.Input != "2410" {
		t.Errorf("expected offending input in error, got %q", perr.Input)
	}
}

func TestParseTaskTimeRejectsMalformed(t *testing.T) {
	for _, in := range []string{"2021-01-01", "2021-01-01 12:34:56", "not a time"} {
		if _, err := ParseTaskTime(in); err == nil {
			t.Errorf("ParseTaskTime(%q) should have failed", in)
		}
	}
}

func TestFormatDurationHHMM(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{74 * time.Minute, "01:14"},
		{-74 * time.Minute, "-01:14"},
		{0, "00:00"},
		{10*time.Hour + 5*time.Minute, "10:05"},
	}

	for _, c := range cases {
		if got := FormatDurationHHMM(c.d); got != c.want {
			t.Errorf("FormatDurationHHMM(%v) = %q, expected %q", c.d, got, c.want)
		}
	}
}
