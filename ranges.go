// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex

import (
	"fmt"
	"time"
)

// Range is an explicit range with start and end expressions and the
// duration between them.
type Range struct {
	Start, End Property
	Duration   Duration
}

// DateRange is a range of calendar dates, End is exclusive.
type DateRange struct {
	Start, End time.Time
}

// Contains returns true if d is in [Start, End).
func (dr DateRange) Contains(d time.Time) bool {
	return !d.Before(dr.Start) && d.Before(dr.End)
}

// Empty returns true if the range contains no dates.
func (dr DateRange) Empty() bool {
	return !dr.Start.Before(dr.End)
}

// TimeRange is a range of wall clock times, End is exclusive. A range
// whose End is before its Start wraps past midnight.
type TimeRange struct {
	Start, End TimeOfDay
}

// Wraps returns true if the range wraps past midnight.
func (tr TimeRange) Wraps() bool {
	return tr.End.Before(tr.Start)
}

// Contains returns true if t is in [Start, End) allowing for ranges
// that wrap past midnight.
func (tr TimeRange) Contains(t TimeOfDay) bool {
	if tr.Wraps() {
		return !t.Before(tr.Start) || t.Before(tr.End)
	}
	return !t.Before(tr.Start) && t.Before(tr.End)
}

func (tr TimeRange) String() string {
	return tr.Start.String() + "-" + tr.End.String()
}

// ExpandDateTimeRange returns the explicit form of a date or date-time
// range. Explicit (start,end,duration) expressions expand to start and
// start+duration. Years, months, ISO weeks and ISO week weekends expand
// to their first day and the first day of the following period. Any
// other expression results in an error wrapping ErrUnderspecified.
func ExpandDateTimeRange(p Property) (Range, error) {
	if p.duration.IsSet() && (p.hasDateFields() || p.hasTimeFields()) {
		start := p.withoutDuration()
		end, err := start.Add(p.duration)
		if err != nil {
			return Range{}, err
		}
		return Range{Start: start, End: end, Duration: p.duration}, nil
	}
	if p.season != "" || p.set&^(fieldYear|fieldMonth|fieldWeekOfYear) != 0 || !p.has(fieldYear) {
		return Range{}, fmt.Errorf("%v cannot be expanded to an explicit range: %w", p, ErrUnderspecified)
	}
	var start, end time.Time
	switch {
	case p.has(fieldWeekOfYear) && p.has(fieldMonth):
		return Range{}, fmt.Errorf("%v cannot be expanded to an explicit range: %w", p, ErrUnderspecified)
	case p.has(fieldWeekOfYear) && p.weekend:
		start = isoWeekStart(p.year, p.weekOfYear).AddDate(0, 0, 5)
		end = start.AddDate(0, 0, 2)
	case p.has(fieldWeekOfYear):
		start = isoWeekStart(p.year, p.weekOfYear)
		end = start.AddDate(0, 0, 7)
	case p.has(fieldMonth):
		start = newDate(p.year, time.Month(p.month), 1)
		end = start.AddDate(0, 1, 0)
	default:
		start = newDate(p.year, time.January, 1)
		end = start.AddDate(1, 0, 0)
	}
	days := int64(end.Sub(start) / (24 * time.Hour))
	return Range{Start: FromDate(start), End: FromDate(end), Duration: Days(days)}, nil
}

// ExpandTimeRange returns the explicit form of a time range, ie. a part
// of day or a time with a duration. The end of a time with a duration
// wraps past midnight.
func ExpandTimeRange(p Property) (Range, error) {
	if p.partOfDay != "" {
		tr := p.partOfDay.Range()
		hours := int64(tr.End.Hour - tr.Start.Hour)
		return Range{
			Start:    Property{}.withTimeOfDay(tr.Start),
			End:      Property{}.withTimeOfDay(tr.End),
			Duration: Hours(hours),
		}, nil
	}
	if !p.has(fieldHour) || !p.duration.IsSet() {
		return Range{}, fmt.Errorf("%v is not a time range: %w", p, ErrUnderspecified)
	}
	start := p.timeOnly()
	end, err := start.Add(p.duration)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end, Duration: p.duration}, nil
}

// DateRangeFromTimex returns the concrete dates of a date range, the
// start of the range must be a definite date.
func DateRangeFromTimex(p Property) (DateRange, error) {
	r, err := ExpandDateTimeRange(p)
	if err != nil {
		return DateRange{}, err
	}
	start, sok := r.Start.Date()
	end, eok := r.End.Date()
	if !sok || !eok {
		return DateRange{}, fmt.Errorf("%v does not have a definite start date: %w", p, ErrUnderspecified)
	}
	return DateRange{Start: start, End: end}, nil
}

// TimeRangeFromTimex returns the wall clock bounds of a time range.
func TimeRangeFromTimex(p Property) (TimeRange, error) {
	r, err := ExpandTimeRange(p)
	if err != nil {
		return TimeRange{}, err
	}
	start, _ := r.Start.TimeOfDay()
	end, _ := r.End.TimeOfDay()
	return TimeRange{Start: start, End: end}, nil
}
