// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package timex provides support for Timex expressions, the ISO-8601 derived
// notation for partially specified dates, times, durations and ranges such
// as "every Wednesday" (XXXX-WXX-3), "next April" (XXXX-04) or "5 minutes"
// (PT5M).
//
// A Property is the parsed, immutable form of an expression. Its canonical
// string form, as returned by Property.String, is the source of truth for
// comparison and deduplication.
package timex

import (
	"fmt"
	"time"
)

// Season is a season code.
type Season string

const (
	Spring Season = "SP"
	Summer Season = "SU"
	Fall   Season = "FA"
	Winter Season = "WI"
)

func (s Season) valid() bool {
	switch s {
	case Spring, Summer, Fall, Winter:
		return true
	}
	return false
}

// PartOfDay is a named, date independent, range of clock time.
type PartOfDay string

const (
	Morning   PartOfDay = "MO"
	Afternoon PartOfDay = "AF"
	Evening   PartOfDay = "EV"
	Night     PartOfDay = "NI"
	Daytime   PartOfDay = "DT"
)

var partOfDayRanges = map[PartOfDay]TimeRange{
	Morning:   {Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 12}},
	Afternoon: {Start: TimeOfDay{Hour: 12}, End: TimeOfDay{Hour: 16}},
	Evening:   {Start: TimeOfDay{Hour: 16}, End: TimeOfDay{Hour: 20}},
	Night:     {Start: TimeOfDay{Hour: 20}, End: TimeOfDay{Hour: 24}},
	Daytime:   {Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 18}},
}

// Range returns the fixed clock bounds of the part of day. The end is
// exclusive, Night ends at 24:00.
func (p PartOfDay) Range() TimeRange {
	return partOfDayRanges[p]
}

func (p PartOfDay) valid() bool {
	_, ok := partOfDayRanges[p]
	return ok
}

type field uint16

const (
	fieldYear field = 1 << iota
	fieldMonth
	fieldDayOfMonth
	fieldDayOfWeek
	fieldWeekOfYear
	fieldWeekOfMonth
	fieldHour
	fieldMinute
	fieldSecond
)

const dateFields = fieldYear | fieldMonth | fieldDayOfMonth | fieldDayOfWeek | fieldWeekOfYear | fieldWeekOfMonth

const timeFields = fieldHour | fieldMinute | fieldSecond

// Property represents a, possibly partial, Timex expression. Every field
// is optional and present independently of the others. The zero value
// is an empty expression.
type Property struct {
	set         field
	year        int
	month       int
	dayOfMonth  int
	dayOfWeek   int // ISO, 1 = Monday .. 7 = Sunday
	weekOfYear  int
	weekOfMonth int
	hour        int
	minute      int
	second      int
	season      Season
	partOfDay   PartOfDay
	weekend     bool
	now         bool
	duration    Duration
	end         string // end of a parsed range, used if it cannot be computed.
}

func (p Property) get(f field, v int) (int, bool) {
	if p.set&f == 0 {
		return 0, false
	}
	return v, true
}

func (p Property) has(f field) bool {
	return p.set&f == f
}

// Year returns the year, if set.
func (p Property) Year() (int, bool) { return p.get(fieldYear, p.year) }

// Month returns the month (1-12), if set.
func (p Property) Month() (int, bool) { return p.get(fieldMonth, p.month) }

// DayOfMonth returns the day of the month (1-31), if set.
func (p Property) DayOfMonth() (int, bool) { return p.get(fieldDayOfMonth, p.dayOfMonth) }

// DayOfWeek returns the ISO day of the week (1=Monday..7=Sunday), if set.
func (p Property) DayOfWeek() (int, bool) { return p.get(fieldDayOfWeek, p.dayOfWeek) }

// WeekOfYear returns the ISO week of the year (1-53), if set.
func (p Property) WeekOfYear() (int, bool) { return p.get(fieldWeekOfYear, p.weekOfYear) }

// WeekOfMonth returns the week of the month (1-5), if set. When DayOfWeek
// is also set it is the occurrence of that weekday within the month.
func (p Property) WeekOfMonth() (int, bool) { return p.get(fieldWeekOfMonth, p.weekOfMonth) }

// Hour returns the hour (0-23), if set.
func (p Property) Hour() (int, bool) { return p.get(fieldHour, p.hour) }

// Minute returns the minute (0-59), if set.
func (p Property) Minute() (int, bool) { return p.get(fieldMinute, p.minute) }

// Second returns the second (0-59), if set.
func (p Property) Second() (int, bool) { return p.get(fieldSecond, p.second) }

// Season returns the season, if set.
func (p Property) Season() (Season, bool) { return p.season, p.season != "" }

// PartOfDay returns the part of day, if set.
func (p Property) PartOfDay() (PartOfDay, bool) { return p.partOfDay, p.partOfDay != "" }

// Weekend returns true for weekend week expressions such as 2017-W37-WE.
func (p Property) Weekend() bool { return p.weekend }

// Now returns true for the PRESENT_REF expression.
func (p Property) Now() bool { return p.now }

// Duration returns the duration fields.
func (p Property) Duration() Duration { return p.duration }

// TimeOfDay returns the time of day with unset minutes and seconds
// treated as zero. It returns false if no hour is set.
func (p Property) TimeOfDay() (TimeOfDay, bool) {
	if !p.has(fieldHour) {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: p.hour, Minute: p.minute, Second: p.second}, true
}

// Date returns the calendar date for a definite date expression, ie. one with
// year, month and day of month all set.
func (p Property) Date() (time.Time, bool) {
	if !p.has(fieldYear | fieldMonth | fieldDayOfMonth) {
		return time.Time{}, false
	}
	return time.Date(p.year, time.Month(p.month), p.dayOfMonth, 0, 0, 0, 0, time.UTC), true
}

// DateTime returns the date and time of day for a definite expression.
// A missing time of day is treated as midnight.
func (p Property) DateTime() (time.Time, bool) {
	d, ok := p.Date()
	if !ok {
		return d, false
	}
	tod, _ := p.TimeOfDay()
	return d.Add(tod.Duration()), true
}

// Equal returns true if p and o have the same canonical form.
func (p Property) Equal(o Property) bool {
	return p.String() == o.String()
}

// IsZero returns true for an empty expression.
func (p Property) IsZero() bool {
	return p == (Property{})
}

func (p Property) hasDateFields() bool {
	return p.set&dateFields != 0 || p.season != "" || p.weekend
}

func (p Property) hasTimeFields() bool {
	return p.set&timeFields != 0 || p.partOfDay != ""
}

// Option represents an option to New.
type Option func(p *Property)

// WithYear sets the year.
func WithYear(year int) Option {
	return func(p *Property) { p.year, p.set = year, p.set|fieldYear }
}

// WithMonth sets the month.
func WithMonth(month int) Option {
	return func(p *Property) { p.month, p.set = month, p.set|fieldMonth }
}

// WithDayOfMonth sets the day of the month.
func WithDayOfMonth(day int) Option {
	return func(p *Property) { p.dayOfMonth, p.set = day, p.set|fieldDayOfMonth }
}

// WithDayOfWeek sets the ISO day of the week.
func WithDayOfWeek(day int) Option {
	return func(p *Property) { p.dayOfWeek, p.set = day, p.set|fieldDayOfWeek }
}

// WithWeekOfYear sets the ISO week of the year.
func WithWeekOfYear(week int) Option {
	return func(p *Property) { p.weekOfYear, p.set = week, p.set|fieldWeekOfYear }
}

// WithWeekOfMonth sets the week of the month.
func WithWeekOfMonth(week int) Option {
	return func(p *Property) { p.weekOfMonth, p.set = week, p.set|fieldWeekOfMonth }
}

// WithWeekend marks a week expression as referring to its weekend.
func WithWeekend() Option {
	return func(p *Property) { p.weekend = true }
}

// WithSeason sets the season.
func WithSeason(s Season) Option {
	return func(p *Property) { p.season = s }
}

// WithHour sets the hour only.
func WithHour(hour int) Option {
	return func(p *Property) { p.hour, p.set = hour, p.set|fieldHour }
}

// WithTime sets the hour, minute and second.
func WithTime(hour, minute, second int) Option {
	return func(p *Property) {
		p.hour, p.minute, p.second = hour, minute, second
		p.set |= timeFields
	}
}

// WithPartOfDay sets the part of day.
func WithPartOfDay(pod PartOfDay) Option {
	return func(p *Property) { p.partOfDay = pod }
}

// WithDuration sets the duration fields.
func WithDuration(d Duration) Option {
	return func(p *Property) { p.duration = d }
}

// WithNow creates the PRESENT_REF expression.
func WithNow() Option {
	return func(p *Property) { p.now = true }
}

// New creates a Property from the supplied options. It returns an error
// wrapping ErrMalformed if the values are out of range or the combination
// of fields is not permitted.
func New(opts ...Option) (Property, error) {
	var p Property
	for _, fn := range opts {
		fn(&p)
	}
	if err := p.validate(); err != nil {
		return Property{}, err
	}
	return p, nil
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s %d out of range %d..%d: %w", name, v, lo, hi, ErrMalformed)
	}
	return nil
}

func (p Property) validate() error {
	if p.now {
		if p.set != 0 || p.hasDateFields() || p.hasTimeFields() || p.duration.IsSet() {
			return fmt.Errorf("PRESENT_REF cannot be combined with other fields: %w", ErrMalformed)
		}
		return nil
	}
	if p.partOfDay != "" && p.set&timeFields != 0 {
		return fmt.Errorf("part of day %v cannot be combined with a clock time: %w", p.partOfDay, ErrMalformed)
	}
	if p.partOfDay != "" && !p.partOfDay.valid() {
		return fmt.Errorf("unknown part of day %q: %w", p.partOfDay, ErrMalformed)
	}
	if p.season != "" && !p.season.valid() {
		return fmt.Errorf("unknown season %q: %w", p.season, ErrMalformed)
	}
	if p.set&(fieldMinute|fieldSecond) != 0 && !p.has(fieldHour) {
		return fmt.Errorf("minutes or seconds require an hour: %w", ErrMalformed)
	}
	checks := []struct {
		f      field
		name   string
		v      int
		lo, hi int
	}{
		{fieldYear, "year", p.year, 0, 9999},
		{fieldMonth, "month", p.month, 1, 12},
		{fieldDayOfMonth, "day of month", p.dayOfMonth, 1, 31},
		{fieldDayOfWeek, "day of week", p.dayOfWeek, 1, 7},
		{fieldWeekOfYear, "week of year", p.weekOfYear, 1, 53},
		{fieldWeekOfMonth, "week of month", p.weekOfMonth, 1, 5},
		{fieldHour, "hour", p.hour, 0, 23},
		{fieldMinute, "minute", p.minute, 0, 59},
		{fieldSecond, "second", p.second, 0, 59},
	}
	for _, c := range checks {
		if p.set&c.f == 0 {
			continue
		}
		if err := checkRange(c.name, c.v, c.lo, c.hi); err != nil {
			return err
		}
	}
	if p.has(fieldMonth | fieldDayOfMonth) {
		year := leapReferenceYear
		if p.has(fieldYear) {
			year = p.year
		}
		if dim := DaysInMonth(year, time.Month(p.month)); p.dayOfMonth > dim {
			return fmt.Errorf("day %d does not exist in month %d of %d: %w", p.dayOfMonth, p.month, year, ErrMalformed)
		}
	}
	if p.has(fieldYear|fieldWeekOfYear) && p.weekOfYear > isoWeeksInYear(p.year) {
		return fmt.Errorf("week %d does not exist in %d: %w", p.weekOfYear, p.year, ErrMalformed)
	}
	if p.has(fieldYear|fieldMonth|fieldDayOfMonth|fieldDayOfWeek) {
		if d, _ := p.Date(); ISOWeekday(d.Weekday()) != p.dayOfWeek {
			return fmt.Errorf("%v is not day %d of the week: %w", DateValue(d), p.dayOfWeek, ErrMalformed)
		}
	}
	return p.duration.validate()
}

// FromDate returns a definite date expression for the date of t.
func FromDate(t time.Time) Property {
	return Property{
		set:        fieldYear | fieldMonth | fieldDayOfMonth,
		year:       t.Year(),
		month:      int(t.Month()),
		dayOfMonth: t.Day(),
	}
}

// FromTime returns a time expression for the clock time of t.
func FromTime(t time.Time) Property {
	return Property{}.withTimeOfDay(TimeOfDayFromTime(t))
}

// FromDateTime returns a definite date and time expression for t.
func FromDateTime(t time.Time) Property {
	return FromDate(t).withTimeOfDay(TimeOfDayFromTime(t))
}

// On returns p with its date fields replaced by the calendar date of d.
// Time and duration fields are retained.
func (p Property) On(d time.Time) Property {
	return p.withDate(d)
}

// At returns p with its time fields replaced by t.
func (p Property) At(t TimeOfDay) Property {
	return p.withTimeOfDay(t)
}

// Lasting returns p with its duration fields replaced by d.
func (p Property) Lasting(d Duration) Property {
	p.duration, p.end = d, ""
	return p
}

func (p Property) withDate(t time.Time) Property {
	p.set &^= fieldDayOfWeek | fieldWeekOfYear | fieldWeekOfMonth
	p.set |= fieldYear | fieldMonth | fieldDayOfMonth
	p.year, p.month, p.dayOfMonth = t.Year(), int(t.Month()), t.Day()
	p.season, p.weekend = "", false
	p.end = ""
	return p
}

func (p Property) withTimeOfDay(tod TimeOfDay) Property {
	p.partOfDay, p.end = "", ""
	p.set |= timeFields
	p.hour, p.minute, p.second = tod.Hour, tod.Minute, tod.Second
	return p
}

// dateOnly returns p with all time and duration fields cleared.
func (p Property) dateOnly() Property {
	p.set &^= timeFields
	p.hour, p.minute, p.second = 0, 0, 0
	p.partOfDay = ""
	p.duration = Duration{}
	return p
}

// timeOnly returns p with all date and duration fields cleared.
func (p Property) timeOnly() Property {
	return Property{
		set:       p.set & timeFields,
		hour:      p.hour,
		minute:    p.minute,
		second:    p.second,
		partOfDay: p.partOfDay,
	}
}

// withoutDuration returns p with its duration fields cleared.
func (p Property) withoutDuration() Property {
	p.duration, p.end = Duration{}, ""
	return p
}
