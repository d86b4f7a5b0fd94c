// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex

import (
	"fmt"
	"time"
)

// String returns the canonical form of p, ie. the most specific literal
// that parses to the same fields. Expressions with both a date or time and
// a duration are formatted as (start,end,duration) with the end computed
// as start+duration. If the end cannot be computed the end of a parsed
// range is used, failing that the start.
func (p Property) String() string {
	if p.now {
		return PresentRef
	}
	point := p.formatDate() + p.formatTime()
	dur := p.duration.String()
	switch {
	case len(dur) > 0 && len(point) > 0:
		end := p.end
		if e, err := p.withoutDuration().Add(p.duration); err == nil {
			end = e.formatDate() + e.formatTime()
		} else if len(end) == 0 {
			end = point
		}
		return "(" + point + "," + end + "," + dur + ")"
	case len(dur) > 0:
		return dur
	}
	return point
}

// Format is the same as String.
func Format(p Property) string {
	return p.String()
}

func (p Property) formatDate() string {
	switch {
	case p.has(fieldYear | fieldMonth | fieldDayOfMonth):
		return fmt.Sprintf("%04d-%02d-%02d", p.year, p.month, p.dayOfMonth)
	case p.has(fieldMonth | fieldDayOfMonth):
		return fmt.Sprintf("XXXX-%02d-%02d", p.month, p.dayOfMonth)
	case p.has(fieldDayOfMonth):
		return fmt.Sprintf("XXXX-XX-%02d", p.dayOfMonth)
	case p.has(fieldMonth | fieldWeekOfMonth | fieldDayOfWeek):
		return fmt.Sprintf("XXXX-%02d-WXX-%d-#%d", p.month, p.dayOfWeek, p.weekOfMonth)
	case p.has(fieldYear | fieldWeekOfYear | fieldDayOfWeek):
		return fmt.Sprintf("%04d-W%02d-%d", p.year, p.weekOfYear, p.dayOfWeek)
	case p.has(fieldWeekOfYear | fieldDayOfWeek):
		return fmt.Sprintf("XXXX-W%02d-%d", p.weekOfYear, p.dayOfWeek)
	case p.has(fieldDayOfWeek):
		return fmt.Sprintf("XXXX-WXX-%d", p.dayOfWeek)
	case p.has(fieldYear|fieldWeekOfYear) && p.weekend:
		return fmt.Sprintf("%04d-W%02d-WE", p.year, p.weekOfYear)
	case p.has(fieldYear | fieldWeekOfYear):
		return fmt.Sprintf("%04d-W%02d", p.year, p.weekOfYear)
	case p.has(fieldYear) && p.season != "":
		return fmt.Sprintf("%04d-%s", p.year, p.season)
	case p.season != "":
		return string(p.season)
	case p.has(fieldMonth | fieldWeekOfMonth):
		return fmt.Sprintf("XXXX-%02d-W%02d", p.month, p.weekOfMonth)
	case p.has(fieldYear | fieldMonth):
		return fmt.Sprintf("%04d-%02d", p.year, p.month)
	case p.has(fieldMonth):
		return fmt.Sprintf("XXXX-%02d", p.month)
	case p.has(fieldYear):
		return fmt.Sprintf("%04d", p.year)
	}
	return ""
}

// formatTime shows minutes only if minutes or seconds are non-zero and
// seconds only if they are non-zero.
func (p Property) formatTime() string {
	if p.partOfDay != "" {
		return "T" + string(p.partOfDay)
	}
	hour, ok := p.Hour()
	if !ok {
		return ""
	}
	minute, _ := p.Minute()
	second, _ := p.Second()
	switch {
	case minute == 0 && second == 0:
		return fmt.Sprintf("T%02d", hour)
	case second == 0:
		return fmt.Sprintf("T%02d:%02d", hour, minute)
	}
	return fmt.Sprintf("T%02d:%02d:%02d", hour, minute, second)
}

// DateValue returns the date of t as 2006-01-02.
func DateValue(t time.Time) string {
	return t.Format(time.DateOnly)
}

// TimeValue returns t as 15:04:05, an hour of 24 is preserved.
func TimeValue(t TimeOfDay) string {
	return t.String()
}

// DateTimeValue returns t as 2006-01-02 15:04:05.
func DateTimeValue(t time.Time) string {
	return t.Format(time.DateTime)
}
