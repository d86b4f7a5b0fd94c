// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex

import (
	"iter"
	"time"
)

// leapReferenceYear is used to validate month/day combinations
// that have no year so that Feb 29 is accepted.
const leapReferenceYear = 2000

// IsLeap returns true if the given year is a leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && year%100 != 0 || year%400 == 0
}

// DaysInMonth returns the number of days in the given month for the given year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

// ISOWeekday returns the ISO-8601 number of a weekday, 1 for Monday
// through to 7 for Sunday.
func ISOWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// Weekday returns the time.Weekday for an ISO-8601 weekday number.
func Weekday(iso int) time.Weekday {
	return time.Weekday(iso % 7)
}

// dateOf returns midnight, UTC, for the calendar date of t in its own
// location. Times are naive so no timezone conversion is performed.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Naive returns the wall clock date and time of t in UTC. Times are
// naive, so this is used to compare instants created in different
// locations.
func Naive(t time.Time) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return time.Date(y, m, d, hh, mm, ss, t.Nanosecond(), time.UTC)
}

func newDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Tomorrow returns the following calendar day.
func Tomorrow(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// Yesterday returns the previous calendar day.
func Yesterday(d time.Time) time.Time {
	return d.AddDate(0, 0, -1)
}

// DatePartEquals returns true if d1 and d2 have the same year, month
// and day.
func DatePartEquals(d1, d2 time.Time) bool {
	y1, m1, dd1 := d1.Date()
	y2, m2, dd2 := d2.Date()
	return y1 == y2 && m1 == m2 && dd1 == dd2
}

// WeekOfYear returns the ISO-8601 week number of d. Dates at the end of
// December may be in week 1 of the following year and dates at the start
// of January may be in week 52 or 53 of the previous year.
func WeekOfYear(d time.Time) int {
	_, week := d.ISOWeek()
	return week
}

// isoWeeksInYear returns 52 or 53. Dec 28 is always in the last ISO week
// of its year.
func isoWeeksInYear(year int) int {
	_, week := newDate(year, time.December, 28).ISOWeek()
	return week
}

// isoWeekStart returns the Monday of the specified ISO week.
func isoWeekStart(year, week int) time.Time {
	// Jan 4 is always in week 1.
	jan4 := newDate(year, time.January, 4)
	return startOfWeek(jan4).AddDate(0, 0, (week-1)*7)
}

// startOfWeek returns the Monday of the ISO week containing d.
func startOfWeek(d time.Time) time.Time {
	d = dateOf(d)
	return d.AddDate(0, 0, 1-ISOWeekday(d.Weekday()))
}

func inWeek(d, weekStart time.Time) bool {
	d = dateOf(d)
	return !d.Before(weekStart) && d.Before(weekStart.AddDate(0, 0, 7))
}

// IsThisWeek returns true if d is in the same ISO week as ref.
func IsThisWeek(d, ref time.Time) bool {
	return inWeek(d, startOfWeek(ref))
}

// IsNextWeek returns true if d is in the ISO week immediately following
// that of ref.
func IsNextWeek(d, ref time.Time) bool {
	return inWeek(d, startOfWeek(ref).AddDate(0, 0, 7))
}

// IsLastWeek returns true if d is in the ISO week immediately preceding
// that of ref.
func IsLastWeek(d, ref time.Time) bool {
	return inWeek(d, startOfWeek(ref).AddDate(0, 0, -7))
}

// DateOfLastDay returns the most recent date strictly before d that
// falls on the specified weekday.
func DateOfLastDay(day time.Weekday, d time.Time) time.Time {
	r := Yesterday(d)
	for r.Weekday() != day {
		r = Yesterday(r)
	}
	return r
}

// DateOfNextDay returns the nearest date strictly after d that falls
// on the specified weekday.
func DateOfNextDay(day time.Weekday, d time.Time) time.Time {
	r := Tomorrow(d)
	for r.Weekday() != day {
		r = Tomorrow(r)
	}
	return r
}

// DatesMatchingDay returns all of the dates in [start, end) that fall
// on the specified weekday in ascending order.
func DatesMatchingDay(day time.Weekday, start, end time.Time) []time.Time {
	var dates []time.Time
	for d := range daysIn(start, end) {
		if d.Weekday() == day {
			dates = append(dates, d)
		}
	}
	return dates
}

// daysIn returns an iterator over each day in [start, end).
func daysIn(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := start; d.Before(end); d = Tomorrow(d) {
			if !yield(d) {
				return
			}
		}
	}
}
