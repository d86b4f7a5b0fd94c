// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex

import (
	"fmt"
	"iter"
	"time"
)

// Occurrence is a concrete instance of a, possibly recurring, expression.
// End is exclusive and is equal to Start for points in time.
type Occurrence struct {
	Start, End time.Time
}

// Horizon is how far from a reference date Bracket will search. It is a
// full cycle of the Gregorian calendar's weekdays.
const Horizon = 28

var seasonMonths = map[Season][3]time.Month{
	Spring: {time.March, time.April, time.May},
	Summer: {time.June, time.July, time.August},
	Fall:   {time.September, time.October, time.November},
	Winter: {time.December, time.January, time.February},
}

// weekOfMonth returns the week of the month for d where week 1 is the
// Monday-started week that contains the first of the month.
func weekOfMonth(d time.Time) int {
	first := newDate(d.Year(), d.Month(), 1)
	return (d.Day()-1+ISOWeekday(first.Weekday())-1)/7 + 1
}

// MatchesDate returns true if the date fields of p are consistent with d.
// An expression without date fields matches every date.
func (p Property) MatchesDate(d time.Time) bool {
	if p.now {
		return false
	}
	if p.has(fieldWeekOfYear) {
		year, week := d.ISOWeek()
		if week != p.weekOfYear || (p.has(fieldYear) && year != p.year) {
			return false
		}
	} else if p.has(fieldYear) && d.Year() != p.year {
		return false
	}
	if p.has(fieldMonth) && int(d.Month()) != p.month {
		return false
	}
	if p.has(fieldDayOfMonth) && d.Day() != p.dayOfMonth {
		return false
	}
	if p.has(fieldDayOfWeek) && ISOWeekday(d.Weekday()) != p.dayOfWeek {
		return false
	}
	if p.has(fieldWeekOfMonth) {
		wom := weekOfMonth(d)
		if p.has(fieldDayOfWeek) {
			wom = (d.Day()-1)/7 + 1
		}
		if wom != p.weekOfMonth {
			return false
		}
	}
	if p.weekend && d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
		return false
	}
	if p.season != "" {
		m := seasonMonths[p.season]
		if d.Month() != m[0] && d.Month() != m[1] && d.Month() != m[2] {
			return false
		}
	}
	return true
}

// isStart returns true if an occurrence of p starts on date d.
func (p Property) isStart(d time.Time) bool {
	if !p.MatchesDate(d) {
		return false
	}
	switch {
	case p.season != "":
		// Seasons have no fixed boundaries.
		return false
	case p.has(fieldDayOfMonth) || p.has(fieldDayOfWeek) || !p.hasDateFields():
		return true
	case p.weekend:
		return d.Weekday() == time.Saturday
	case p.has(fieldWeekOfYear):
		return d.Weekday() == time.Monday
	case p.has(fieldWeekOfMonth):
		return d.Weekday() == time.Monday || d.Day() == 1
	case p.has(fieldMonth):
		return d.Day() == 1
	}
	return d.Day() == 1 && d.Month() == time.January
}

// occurrenceAt returns the occurrence of p that starts on date d.
func (p Property) occurrenceAt(d time.Time) Occurrence {
	var end time.Time
	switch {
	case p.has(fieldDayOfMonth) || p.has(fieldDayOfWeek) || !p.hasDateFields():
		end = Tomorrow(d)
	case p.weekend:
		end = d.AddDate(0, 0, 2)
	case p.has(fieldWeekOfYear):
		end = d.AddDate(0, 0, 7)
	case p.has(fieldWeekOfMonth):
		end = DateOfNextDay(time.Monday, d)
		if next := newDate(d.Year(), d.Month()+1, 1); next.Before(end) {
			end = next
		}
	case p.has(fieldMonth):
		end = d.AddDate(0, 1, 0)
	default:
		end = d.AddDate(1, 0, 0)
	}
	occ := Occurrence{Start: d, End: end}
	if p.partOfDay != "" {
		tr := p.partOfDay.Range()
		occ = Occurrence{Start: tr.Start.On(d), End: tr.End.On(d)}
	} else if tod, ok := p.TimeOfDay(); ok {
		occ = Occurrence{Start: tod.On(d), End: tod.On(d)}
	}
	if p.duration.IsSet() {
		occ.End = p.duration.AddTo(occ.Start)
	}
	return occ
}

// Occurrences returns an iterator over the occurrences of p that start in
// [from, to) in ascending order.
func (p Property) Occurrences(from, to time.Time) iter.Seq[Occurrence] {
	from, to = Naive(from), Naive(to)
	return func(yield func(Occurrence) bool) {
		for d := range daysIn(dateOf(from), Tomorrow(dateOf(to))) {
			if !p.isStart(d) {
				continue
			}
			occ := p.occurrenceAt(d)
			if occ.Start.Before(from) || !occ.Start.Before(to) {
				continue
			}
			if !yield(occ) {
				return
			}
		}
	}
}

// Bracket returns the latest occurrence of p that starts at or before ref
// and the earliest that starts strictly after it. It returns an error
// wrapping ErrUnderspecified if either cannot be found within Horizon
// years of ref.
func (p Property) Bracket(ref time.Time) (past, future Occurrence, err error) {
	ref = Naive(ref)
	day := dateOf(ref)
	limit := day.AddDate(-Horizon, 0, 0)
	found := false
	for d := day; !d.Before(limit); d = Yesterday(d) {
		if !p.isStart(d) {
			continue
		}
		if occ := p.occurrenceAt(d); !occ.Start.After(ref) {
			past, found = occ, true
			break
		}
	}
	if !found {
		return Occurrence{}, Occurrence{}, fmt.Errorf("no occurrence of %v at or before %v: %w", p, ref, ErrUnderspecified)
	}
	for occ := range p.Occurrences(ref, day.AddDate(Horizon, 0, 0)) {
		if occ.Start.After(ref) {
			return past, occ, nil
		}
	}
	return Occurrence{}, Occurrence{}, fmt.Errorf("no occurrence of %v after %v: %w", p, ref, ErrUnderspecified)
}
