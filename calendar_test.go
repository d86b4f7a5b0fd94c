// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex_test

import (
	"testing"
	"time"

	"cloudeng.io/timex"
	"github.com/google/go-cmp/cmp"
)

func TestTomorrowYesterday(t *testing.T) {
	for _, tc := range []struct {
		day, tomorrow time.Time
	}{
		{newDate(2016, 2, 28), newDate(2016, 2, 29)},
		{newDate(2016, 2, 29), newDate(2016, 3, 1)},
		{newDate(2017, 2, 28), newDate(2017, 3, 1)},
		{newDate(2016, 12, 31), newDate(2017, 1, 1)},
		{newDate(2017, 4, 30), newDate(2017, 5, 1)},
	} {
		before := tc.day
		if got, want := timex.Tomorrow(tc.day), tc.tomorrow; !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
		if got, want := timex.Yesterday(tc.tomorrow), tc.day; !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
		if !before.Equal(tc.day) {
			t.Errorf("argument was modified: %v != %v", before, tc.day)
		}
	}
}

func TestDatePartEquals(t *testing.T) {
	if !timex.DatePartEquals(newDateTime(2017, 9, 27, 1, 0, 0), newDateTime(2017, 9, 27, 23, 59, 59)) {
		t.Errorf("expected dates to be equal")
	}
	if timex.DatePartEquals(newDate(2017, 9, 27), newDate(2016, 9, 27)) {
		t.Errorf("expected dates to differ")
	}
}

func TestWeekOfYear(t *testing.T) {
	for _, tc := range []struct {
		day  time.Time
		week int
	}{
		{newDate(2017, 1, 1), 52},
		{newDate(2017, 1, 2), 1},
		{newDate(2017, 9, 26), 39},
		{newDate(2014, 12, 28), 52},
		{newDate(2014, 12, 29), 1},
		{newDate(2018, 12, 31), 1},
		{newDate(2020, 12, 31), 53},
		{newDate(2021, 1, 3), 53},
		{newDate(2021, 1, 4), 1},
		{newDate(2015, 12, 31), 53},
		{newDate(2016, 1, 1), 53},
	} {
		if got, want := timex.WeekOfYear(tc.day), tc.week; got != want {
			t.Errorf("%v: got %v, want %v", timex.DateValue(tc.day), got, want)
		}
	}
}

func TestNextLastWeek(t *testing.T) {
	ref := newDate(2017, 9, 26)
	for _, tc := range []struct {
		day                  time.Time
		this, next, previous bool
	}{
		{newDate(2017, 9, 25), true, false, false},
		{newDate(2017, 10, 1), true, false, false},
		{newDate(2017, 10, 2), false, true, false},
		{newDate(2017, 10, 8), false, true, false},
		{newDate(2017, 10, 9), false, false, false},
		{newDate(2017, 9, 24), false, false, true},
		{newDate(2017, 9, 18), false, false, true},
		{newDate(2017, 9, 17), false, false, false},
	} {
		if got, want := timex.IsThisWeek(tc.day, ref), tc.this; got != want {
			t.Errorf("%v: this week: got %v, want %v", timex.DateValue(tc.day), got, want)
		}
		if got, want := timex.IsNextWeek(tc.day, ref), tc.next; got != want {
			t.Errorf("%v: next week: got %v, want %v", timex.DateValue(tc.day), got, want)
		}
		if got, want := timex.IsLastWeek(tc.day, ref), tc.previous; got != want {
			t.Errorf("%v: last week: got %v, want %v", timex.DateValue(tc.day), got, want)
		}
	}
	// Across a year boundary.
	if !timex.IsNextWeek(newDate(2018, 1, 1), newDate(2017, 12, 27)) {
		t.Errorf("expected 2018-01-01 to be the week after 2017-12-27")
	}
	if !timex.IsLastWeek(newDate(2015, 12, 31), newDate(2016, 1, 4)) {
		t.Errorf("expected 2015-12-31 to be the week before 2016-01-04")
	}
}

func TestDateOfDay(t *testing.T) {
	thursday := newDate(2017, 9, 28)
	before := thursday
	for _, tc := range []struct {
		day        time.Weekday
		last, next time.Time
	}{
		{time.Friday, newDate(2017, 9, 22), newDate(2017, 9, 29)},
		{time.Thursday, newDate(2017, 9, 21), newDate(2017, 10, 5)},
		{time.Wednesday, newDate(2017, 9, 27), newDate(2017, 10, 4)},
		{time.Sunday, newDate(2017, 9, 24), newDate(2017, 10, 1)},
	} {
		if got, want := timex.DateOfLastDay(tc.day, thursday), tc.last; !got.Equal(want) {
			t.Errorf("%v: got %v, want %v", tc.day, got, want)
		}
		if got, want := timex.DateOfNextDay(tc.day, thursday), tc.next; !got.Equal(want) {
			t.Errorf("%v: got %v, want %v", tc.day, got, want)
		}
	}
	if !before.Equal(thursday) {
		t.Errorf("argument was modified: %v != %v", before, thursday)
	}
}

func TestDatesMatchingDay(t *testing.T) {
	dateStrings := func(dates []time.Time) []string {
		r := []string{}
		for _, d := range dates {
			r = append(r, timex.DateValue(d))
		}
		return r
	}
	start, end := newDate(2017, 3, 1), newDate(2017, 4, 1)
	got := dateStrings(timex.DatesMatchingDay(time.Thursday, start, end))
	want := []string{"2017-03-02", "2017-03-09", "2017-03-16", "2017-03-23", "2017-03-30"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dates mismatch (-want +got):\n%s", diff)
	}
	if !start.Equal(newDate(2017, 3, 1)) || !end.Equal(newDate(2017, 4, 1)) {
		t.Errorf("arguments were modified")
	}

	got = dateStrings(timex.DatesMatchingDay(time.Saturday, newDate(2017, 9, 2), newDate(2017, 9, 9)))
	if diff := cmp.Diff([]string{"2017-09-02"}, got); diff != "" {
		t.Errorf("dates mismatch (-want +got):\n%s", diff)
	}
	got = dateStrings(timex.DatesMatchingDay(time.Saturday, newDate(2017, 9, 3), newDate(2017, 9, 9)))
	if diff := cmp.Diff([]string{}, got); diff != "" {
		t.Errorf("dates mismatch (-want +got):\n%s", diff)
	}
}

func TestCalendar(t *testing.T) {
	for _, tc := range []struct {
		year  int
		month time.Month
		days  int
	}{
		{2016, time.February, 29},
		{2017, time.February, 28},
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2017, time.April, 30},
		{2017, time.December, 31},
		{2017, time.September, 30},
		{2017, time.January, 31},
		{2400, time.February, 29},
	} {
		if got, want := timex.DaysInMonth(tc.year, tc.month), tc.days; got != want {
			t.Errorf("%v-%v: got %v, want %v", tc.year, tc.month, got, want)
		}
	}
	for iso := 1; iso <= 7; iso++ {
		if got, want := timex.ISOWeekday(timex.Weekday(iso)), iso; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	if got, want := timex.Weekday(7), time.Sunday; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTimeOfDay(t *testing.T) {
	if got, want := timex.NewTimeOfDay(23, 45, 32).Milliseconds(), int64(85532000); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	tod := timex.NewTimeOfDay(8, 5, 0)
	if got, want := tod.String(), "08:05:00"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := timex.TimeValue(timex.NewTimeOfDay(24, 0, 0)), "24:00:00"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if !tod.Before(timex.NewTimeOfDay(8, 5, 1)) || tod.Before(tod) {
		t.Errorf("before is incorrect")
	}
	if got, want := tod.Duration(), 8*time.Hour+5*time.Minute; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := tod.On(newDateTime(2017, 9, 27, 23, 0, 0)), newDateTime(2017, 9, 27, 8, 5, 0); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
