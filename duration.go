// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Duration represents the duration axis of a Timex expression. Each
// magnitude is an independent, optional, decimal value.
type Duration struct {
	Years, Months, Weeks, Days decimal.NullDecimal
	Hours, Minutes, Seconds    decimal.NullDecimal
}

var (
	secondsPerDay    = decimal.NewFromInt(86400)
	secondsPerHour   = decimal.NewFromInt(3600)
	secondsPerMinute = decimal.NewFromInt(60)
	daysPerYear      = decimal.NewFromInt(365)
	daysPerMonth     = decimal.NewFromInt(30)
	daysPerWeek      = decimal.NewFromInt(7)
	nanosPerSecond   = decimal.NewFromInt(int64(time.Second))
)

type durationUnit struct {
	designator byte
	time       bool
	value      func(d *Duration) *decimal.NullDecimal
}

// units are in the order they must appear in the ISO-8601 form.
var units = []durationUnit{
	{'Y', false, func(d *Duration) *decimal.NullDecimal { return &d.Years }},
	{'M', false, func(d *Duration) *decimal.NullDecimal { return &d.Months }},
	{'W', false, func(d *Duration) *decimal.NullDecimal { return &d.Weeks }},
	{'D', false, func(d *Duration) *decimal.NullDecimal { return &d.Days }},
	{'H', true, func(d *Duration) *decimal.NullDecimal { return &d.Hours }},
	{'M', true, func(d *Duration) *decimal.NullDecimal { return &d.Minutes }},
	{'S', true, func(d *Duration) *decimal.NullDecimal { return &d.Seconds }},
}

// Years returns a Duration of n years, Months, Weeks etc. are similar.
func Years(n int64) Duration { return Duration{Years: nullInt(n)} }
func Months(n int64) Duration { return Duration{Months: nullInt(n)} }
func Weeks(n int64) Duration { return Duration{Weeks: nullInt(n)} }
func Days(n int64) Duration { return Duration{Days: nullInt(n)} }
func Hours(n int64) Duration { return Duration{Hours: nullInt(n)} }
func Minutes(n int64) Duration { return Duration{Minutes: nullInt(n)} }
func Seconds(n int64) Duration { return Duration{Seconds: nullInt(n)} }

func nullInt(n int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(n))
}

func isAmount(s string) bool {
	digits, dots := 0, 0
	for i := range s {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1 && s[len(s)-1] != '.'
}

func consumeN(dur string) (decimal.Decimal, byte, int, error) {
	for i := range dur {
		c := dur[i]
		if (c >= '0' && c <= '9') || c == '.' {
			continue
		}
		switch c {
		case 'Y', 'M', 'W', 'D', 'H', 'S':
			if !isAmount(dur[:i]) {
				return decimal.Decimal{}, 0, 0, fmt.Errorf("invalid number: %q: %w", dur[:i], ErrMalformed)
			}
			n, err := decimal.NewFromString(dur[:i])
			if err != nil {
				return decimal.Decimal{}, 0, 0, fmt.Errorf("invalid number: %q: %v: %w", dur[:i], err, ErrMalformed)
			}
			return n, c, i + 1, nil
		}
		break
	}
	return decimal.Decimal{}, 0, 0, fmt.Errorf("invalid number or duration designator: %q: %w", dur, ErrMalformed)
}

// ParseDuration parses a duration of the form PnYnMnWnDTnHnMnS where
// any ordered subset of the components may be present and each
// magnitude may contain a decimal point.
func ParseDuration(dur string) (Duration, error) {
	orig := dur
	if len(dur) < 2 || dur[0] != 'P' {
		return Duration{}, fmt.Errorf("duration must start with P and have at least one component: %q: %w", orig, ErrMalformed)
	}
	dur = dur[1:]
	var result Duration
	inTime, next := false, 0
	for len(dur) > 0 {
		if dur[0] == 'T' {
			if inTime || len(dur) == 1 {
				return Duration{}, fmt.Errorf("misplaced T in duration: %q: %w", orig, ErrMalformed)
			}
			inTime = true
			dur = dur[1:]
			continue
		}
		n, designator, idx, err := consumeN(dur)
		if err != nil {
			return Duration{}, fmt.Errorf("%q: %w", orig, err)
		}
		dur = dur[idx:]
		found := false
		for i := next; i < len(units); i++ {
			if units[i].designator == designator && units[i].time == inTime {
				*units[i].value(&result) = decimal.NewNullDecimal(n)
				next, found = i+1, true
				break
			}
		}
		if !found {
			return Duration{}, fmt.Errorf("unexpected or out of order duration designator %c: %q: %w", designator, orig, ErrMalformed)
		}
	}
	return result, nil
}

// IsSet returns true if any of the magnitudes is present.
func (d Duration) IsSet() bool {
	for _, u := range units {
		if u.value(&d).Valid {
			return true
		}
	}
	return false
}

func (d Duration) hasCalendarUnits() bool {
	return d.Years.Valid || d.Months.Valid
}

func (d Duration) validate() error {
	for _, u := range units {
		if v := u.value(&d); v.Valid && v.Decimal.IsNegative() {
			return fmt.Errorf("negative duration component %v%c: %w", v.Decimal, u.designator, ErrMalformed)
		}
	}
	return nil
}

// formatDecimal prints d with the precision it was created with.
func formatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// String returns the ISO-8601 form of the duration. Only non-zero
// magnitudes are included unless all of the present magnitudes are zero,
// in which case the first of them is. An unset Duration is the empty string.
func (d Duration) String() string {
	var selected []int
	first := -1
	for i, u := range units {
		v := u.value(&d)
		if !v.Valid {
			continue
		}
		if first < 0 {
			first = i
		}
		if !v.Decimal.IsZero() {
			selected = append(selected, i)
		}
	}
	if first < 0 {
		return ""
	}
	if len(selected) == 0 {
		selected = []int{first}
	}
	var out strings.Builder
	out.WriteByte('P')
	inTime := false
	for _, i := range selected {
		u := units[i]
		if u.time && !inTime {
			out.WriteByte('T')
			inTime = true
		}
		out.WriteString(formatDecimal(u.value(&d).Decimal))
		out.WriteByte(u.designator)
	}
	return out.String()
}

func valueOrZero(v decimal.NullDecimal) decimal.Decimal {
	if v.Valid {
		return v.Decimal
	}
	return decimal.Zero
}

// TotalSeconds returns the calendar naive length of the duration in seconds,
// a year is 365 days and a month is 30 days.
func (d Duration) TotalSeconds() decimal.Decimal {
	days := valueOrZero(d.Years).Mul(daysPerYear).
		Add(valueOrZero(d.Months).Mul(daysPerMonth)).
		Add(valueOrZero(d.Weeks).Mul(daysPerWeek)).
		Add(valueOrZero(d.Days))
	return days.Mul(secondsPerDay).
		Add(valueOrZero(d.Hours).Mul(secondsPerHour)).
		Add(valueOrZero(d.Minutes).Mul(secondsPerMinute)).
		Add(valueOrZero(d.Seconds))
}

// clockSeconds returns the length of the duration in seconds excluding
// whole years and months, which are calendar dependent.
func (d Duration) clockSeconds() decimal.Decimal {
	y, m := valueOrZero(d.Years), valueOrZero(d.Months)
	fy, fm := y.Sub(y.Truncate(0)), m.Sub(m.Truncate(0))
	rest := d
	rest.Years = decimal.NewNullDecimal(fy)
	rest.Months = decimal.NewNullDecimal(fm)
	return rest.TotalSeconds()
}

// AddTo returns t advanced by the duration. Whole years and months
// are added as calendar units, everything else as elapsed time.
func (d Duration) AddTo(t time.Time) time.Time {
	y, m := valueOrZero(d.Years).IntPart(), valueOrZero(d.Months).IntPart()
	if y != 0 || m != 0 {
		t = t.AddDate(int(y), int(m), 0)
	}
	return t.Add(time.Duration(d.clockSeconds().Mul(nanosPerSecond).IntPart()))
}

// Elapsed returns the duration as a time.Duration using the calendar
// naive lengths of TotalSeconds.
func (d Duration) Elapsed() time.Duration {
	return time.Duration(d.TotalSeconds().Mul(nanosPerSecond).IntPart())
}

// ClockDuration returns a Duration of hours, minutes and seconds for d,
// zero components are omitted and a zero d is PT0S. Fractions of a
// second are discarded.
func ClockDuration(d time.Duration) Duration {
	secs := int64(d / time.Second)
	var r Duration
	if h := secs / 3600; h > 0 {
		r.Hours = nullInt(h)
	}
	if m := secs / 60 % 60; m > 0 {
		r.Minutes = nullInt(m)
	}
	if s := secs % 60; s > 0 || !r.IsSet() {
		r.Seconds = nullInt(s)
	}
	return r
}
