// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Add returns p advanced by d. Time carries into days and days carry into
// calendar dates, into weekdays (wrapping Sunday to Monday and carrying into
// the week number if one is set) or are discarded for bare times. The
// duration fields of p are preserved. It returns an error wrapping
// ErrUnderspecified if d cannot be applied to the units present in p.
func (p Property) Add(d Duration) (Property, error) {
	if p.now {
		return Property{}, fmt.Errorf("cannot add to %v: %w", PresentRef, ErrUnderspecified)
	}
	p.end = ""
	if p.partOfDay != "" && (d.Hours.Valid || d.Minutes.Valid || d.Seconds.Valid) {
		return Property{}, fmt.Errorf("cannot add clock time to a part of day: %w", ErrUnderspecified)
	}
	switch {
	case p.has(fieldYear | fieldMonth | fieldDayOfMonth):
		t, _ := p.DateTime()
		return p.withInstant(d.AddTo(t)), nil
	case p.has(fieldMonth | fieldDayOfMonth):
		t := p.withYear(leapReferenceYear)
		r, _ := t.DateTime()
		r = d.AddTo(r)
		res := p.withInstant(r)
		res.set &^= fieldYear
		res.year = 0
		return res, nil
	case p.has(fieldDayOfWeek):
		return p.addToWeekday(d)
	case !p.hasDateFields():
		return p.addToTime(d)
	case p.set&dateFields == fieldDayOfMonth && p.season == "" && !p.weekend:
		return p.addToDayOfMonth(d)
	case p.set&dateFields == fieldMonth && p.season == "" && !p.weekend:
		return p.addToMonth(d)
	case p.has(fieldYear) && p.set&^(fieldYear|fieldMonth|timeFields) == 0 && p.season == "" && !p.weekend:
		return p.addToYearMonth(d)
	}
	return Property{}, fmt.Errorf("cannot add %v to %v: %w", d, p, ErrUnderspecified)
}

func (p Property) withYear(year int) Property {
	p.year = year
	p.set |= fieldYear
	return p
}

// withInstant sets the date of p from t and its time of day if p
// already has one or t is not at midnight.
func (p Property) withInstant(t time.Time) Property {
	r := p.withDate(t)
	tod := TimeOfDayFromTime(t)
	if p.has(fieldHour) || tod != (TimeOfDay{}) {
		r = r.withTimeOfDay(tod)
	}
	r.partOfDay = p.partOfDay
	if r.partOfDay != "" {
		r.set &^= timeFields
	}
	return r
}

// splitDays splits seconds into whole days and the remaining seconds.
func splitDays(secs decimal.Decimal) (int64, int64) {
	days := secs.Div(secondsPerDay).Floor()
	rem := secs.Sub(days.Mul(secondsPerDay))
	return days.IntPart(), rem.IntPart()
}

func (p Property) addToTime(d Duration) (Property, error) {
	tod, ok := p.TimeOfDay()
	if !ok {
		return Property{}, fmt.Errorf("cannot add %v to %v: %w", d, p, ErrUnderspecified)
	}
	_, secs := splitDays(decimal.NewFromInt(tod.seconds()).Add(d.TotalSeconds()))
	return p.withTimeOfDay(timeOfDayFromSeconds(secs)), nil
}

func (p Property) addToWeekday(d Duration) (Property, error) {
	if d.hasCalendarUnits() {
		return Property{}, fmt.Errorf("cannot add years or months to a weekday: %w", ErrUnderspecified)
	}
	tod, hasTime := p.TimeOfDay()
	days, secs := splitDays(decimal.NewFromInt(tod.seconds()).Add(d.TotalSeconds()))
	idx := int64(p.dayOfWeek-1) + days
	weeks := idx / 7
	if idx < 0 && idx%7 != 0 {
		weeks--
	}
	r := p
	r.dayOfWeek = int(idx-weeks*7) + 1
	switch {
	case r.has(fieldWeekOfYear):
		r.weekOfYear += int(weeks)
		if r.weekOfYear < 1 || r.weekOfYear > 53 {
			return Property{}, fmt.Errorf("week %d out of range: %w", r.weekOfYear, ErrUnderspecified)
		}
	case r.has(fieldWeekOfMonth):
		r.weekOfMonth += int(weeks)
		if r.weekOfMonth < 1 || r.weekOfMonth > 5 {
			return Property{}, fmt.Errorf("week of month %d out of range: %w", r.weekOfMonth, ErrUnderspecified)
		}
	}
	if hasTime || secs != 0 {
		r = r.withTimeOfDay(timeOfDayFromSeconds(secs))
	}
	return r, nil
}

// calendarMonths returns the whole years and months of d, it returns an
// error if d has any other units or fractional years or months.
func (p Property) calendarMonths(d Duration) (int64, int64, error) {
	for _, v := range []decimal.NullDecimal{d.Weeks, d.Days, d.Hours, d.Minutes, d.Seconds} {
		if v.Valid && !v.Decimal.IsZero() {
			return 0, 0, fmt.Errorf("cannot add %v to %v: %w", d, p, ErrUnderspecified)
		}
	}
	y, m := valueOrZero(d.Years), valueOrZero(d.Months)
	if !y.IsInteger() || !m.IsInteger() {
		return 0, 0, fmt.Errorf("cannot add fractional years or months to %v: %w", p, ErrUnderspecified)
	}
	return y.IntPart(), m.IntPart(), nil
}

func (p Property) addToYearMonth(d Duration) (Property, error) {
	y, m, err := p.calendarMonths(d)
	if err != nil {
		return Property{}, err
	}
	r := p
	if !p.has(fieldMonth) {
		if m != 0 {
			return Property{}, fmt.Errorf("cannot add months to a year: %w", ErrUnderspecified)
		}
		r.year += int(y)
		return r, nil
	}
	months := int64(p.year)*12 + int64(p.month-1) + y*12 + m
	r.year, r.month = int(months/12), int(months%12)+1
	return r, nil
}

// addToMonth adds to a month without a year, months wrap from December
// to January and years leave the month unchanged.
func (p Property) addToMonth(d Duration) (Property, error) {
	_, m, err := p.calendarMonths(d)
	if err != nil {
		return Property{}, err
	}
	r := p
	r.month = int(((int64(p.month-1)+m)%12+12)%12) + 1
	return r, nil
}

// addToDayOfMonth adds to a day of month without a month. Whole years and
// months leave the day unchanged, weeks, days and clock time carry into
// the day which must remain within 1..31 since the length of the month
// is unknown.
func (p Property) addToDayOfMonth(d Duration) (Property, error) {
	y, m := valueOrZero(d.Years), valueOrZero(d.Months)
	if !y.IsInteger() || !m.IsInteger() {
		return Property{}, fmt.Errorf("cannot add fractional years or months to %v: %w", p, ErrUnderspecified)
	}
	clock := d
	clock.Years, clock.Months = decimal.NullDecimal{}, decimal.NullDecimal{}
	tod, hasTime := p.TimeOfDay()
	days, secs := splitDays(decimal.NewFromInt(tod.seconds()).Add(clock.TotalSeconds()))
	day := int64(p.dayOfMonth) + days
	if day < 1 || day > 31 {
		return Property{}, fmt.Errorf("day of month %d cannot be determined without a month: %w", day, ErrUnderspecified)
	}
	r := p
	r.dayOfMonth = int(day)
	if hasTime || secs != 0 {
		r = r.withTimeOfDay(timeOfDayFromSeconds(secs))
	}
	return r, nil
}
