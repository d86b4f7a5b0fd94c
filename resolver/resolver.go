// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package resolver resolves Timex expressions to concrete values relative
// to a single reference instant. Definite expressions resolve to a single
// value, expressions that are missing a date unit resolve to the nearest
// occurrences at or before and strictly after the reference.
package resolver

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"time"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/timex"
)

// Resolution types.
const (
	Date          = "date"
	DateRange     = "daterange"
	Time          = "time"
	TimeRange     = "timerange"
	DateTime      = "datetime"
	DateTimeRange = "datetimerange"
	Duration      = "duration"
)

// NotResolved is the Value of a Resolution for expressions, such as a
// season, that cannot be anchored to a concrete range.
const NotResolved = "not resolved"

// Resolution is a concrete value for a Timex expression. Points in time
// are returned as Value and intervals as Start and End.
type Resolution struct {
	Timex string `yaml:"timex"`
	Type  string `yaml:"type"`
	Value string `yaml:"value,omitempty"`
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`
}

func (r Resolution) String() string {
	if len(r.Value) > 0 {
		return r.Timex + ": " + r.Type + ": " + r.Value
	}
	return r.Timex + ": " + r.Type + ": " + r.Start + " - " + r.End
}

// ResolveNow is like Resolve with time.Now() as the reference.
func ResolveNow(ctx context.Context, timexes ...string) ([]Resolution, error) {
	return Resolve(ctx, time.Now(), timexes...)
}

// Resolve returns the resolutions for each of the supplied expressions in
// the order they are supplied. The wall clock date and time of ref are used,
// no timezone conversion is performed. All expressions that can be parsed
// are resolved, errors for those that cannot be are returned as an
// errors.M.
func Resolve(ctx context.Context, ref time.Time, timexes ...string) ([]Resolution, error) {
	logger := ctxlog.Logger(ctx)
	ref = timex.Naive(ref)
	var errs errors.M
	var resolutions []Resolution
	for _, s := range timexes {
		p, err := timex.Parse(s)
		if err != nil {
			errs.Append(err)
			continue
		}
		logger.Debug("resolve", "timex", s, "canonical", p.String(), "types", p.Types().String())
		rs := resolve(logger, s, p, ref)
		resolutions = append(resolutions, rs...)
	}
	return resolutions, errs.Err()
}

// classify extends the types of p to day of month patterns, which have
// no month and hence are not dates, so that they resolve as dates.
func classify(p timex.Property) timex.Types {
	types := p.Types()
	_, month := p.Month()
	if _, day := p.DayOfMonth(); !day || month {
		return types
	}
	types |= timex.NewTypes(timex.TypeDate)
	if types.Has(timex.TypeTime) {
		types |= timex.NewTypes(timex.TypeDateTime)
	}
	if types.Has(timex.TypeTimeRange) {
		types |= timex.NewTypes(timex.TypeDateTimeRange)
	}
	if types.Has(timex.TypeDuration) {
		types |= timex.NewTypes(timex.TypeDateRange)
	}
	return types
}

func resolve(logger *slog.Logger, s string, p timex.Property, ref time.Time) []Resolution {
	types := classify(p)
	switch {
	case types.Has(timex.TypePresent):
		return []Resolution{{Timex: s, Type: DateTime, Value: timex.DateTimeValue(ref)}}
	case types.Has(timex.TypeDateTimeRange):
		return resolveRange(logger, s, p, ref, DateTimeRange, timex.DateTimeValue)
	case types.Has(timex.TypeDefinite) && isDay(p) && types.Has(timex.TypeTime):
		return resolveDefinite(logger, s, p, DateTime, timex.DateTimeValue)
	case types.Has(timex.TypeDefinite) && isDay(p):
		return resolveDefinite(logger, s, p, Date, timex.DateValue)
	case types.Has(timex.TypeDefinite) && types.Has(timex.TypeDateRange):
		return resolveRange(logger, s, p, ref, DateRange, timex.DateValue)
	case types.Has(timex.TypeDefinite) && types.Has(timex.TypeTime):
		return resolveDefinite(logger, s, p, DateTime, timex.DateTimeValue)
	case types.Has(timex.TypeDefinite):
		return resolveDefinite(logger, s, p, Date, timex.DateValue)
	case types.Has(timex.TypeDateTime):
		return resolvePoints(logger, s, p, ref, DateTime, timex.DateTimeValue)
	case types.Has(timex.TypeDate) && !types.Has(timex.TypeDuration):
		return resolvePoints(logger, s, p, ref, Date, timex.DateValue)
	case types.Has(timex.TypeDateRange):
		return resolveRange(logger, s, p, ref, DateRange, timex.DateValue)
	case types.Has(timex.TypeTimeRange):
		return resolveTimeRange(logger, s, p)
	case types.Has(timex.TypeDuration):
		secs := p.Duration().TotalSeconds()
		return []Resolution{{Timex: s, Type: Duration, Value: strconv.FormatInt(secs.IntPart(), 10)}}
	case types.Has(timex.TypeTime):
		tod, _ := p.TimeOfDay()
		return []Resolution{{Timex: s, Type: Time, Value: timex.TimeValue(tod)}}
	}
	return notResolved(s, Date)
}

// isDay returns true for expressions that denote a single day, ie. that
// have a day of month or day of week and no duration.
func isDay(p timex.Property) bool {
	_, dom := p.DayOfMonth()
	_, dow := p.DayOfWeek()
	return (dom || dow) && !p.Duration().IsSet()
}

func notResolved(s, typ string) []Resolution {
	return []Resolution{{Timex: s, Type: typ, Value: NotResolved}}
}

// resolvePoints returns the occurrences of p either side of ref.
func resolvePoints(logger *slog.Logger, s string, p timex.Property, ref time.Time, typ string, format func(time.Time) string) []Resolution {
	past, future, err := p.Bracket(ref)
	if err != nil {
		logger.Debug("resolve", "timex", s, "error", err)
		return notResolved(s, typ)
	}
	return []Resolution{
		{Timex: s, Type: typ, Value: format(past.Start)},
		{Timex: s, Type: typ, Value: format(future.Start)},
	}
}

func rangeResolution(s, typ string, occ timex.Occurrence, format func(time.Time) string) Resolution {
	return Resolution{Timex: s, Type: typ, Start: format(occ.Start), End: format(occ.End)}
}

// resolveRange returns the single occurrence of a range with a year, or
// the occurrences either side of ref for a range without one.
func resolveRange(logger *slog.Logger, s string, p timex.Property, ref time.Time, typ string, format func(time.Time) string) []Resolution {
	if _, ok := p.Season(); ok {
		return notResolved(s, typ)
	}
	if _, ok := p.Year(); ok {
		occ, err := definiteOccurrence(p)
		if err != nil {
			logger.Debug("resolve", "timex", s, "error", err)
			return notResolved(s, typ)
		}
		return []Resolution{rangeResolution(s, typ, occ, format)}
	}
	past, future, err := p.Bracket(ref)
	if err != nil {
		logger.Debug("resolve", "timex", s, "error", err)
		return notResolved(s, typ)
	}
	return []Resolution{
		rangeResolution(s, typ, past, format),
		rangeResolution(s, typ, future, format),
	}
}

// definiteOccurrence returns the one occurrence of an expression that
// has a year. The search extends into the adjacent years since ISO weeks
// may start in the previous year.
func definiteOccurrence(p timex.Property) (timex.Occurrence, error) {
	year, _ := p.Year()
	from := time.Date(year-1, time.December, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year+1, time.February, 1, 0, 0, 0, 0, time.UTC)
	next, stop := iter.Pull(p.Occurrences(from, to))
	defer stop()
	if occ, ok := next(); ok {
		return occ, nil
	}
	return timex.Occurrence{}, fmt.Errorf("no occurrence of %v: %w", p, timex.ErrUnderspecified)
}

func resolveDefinite(logger *slog.Logger, s string, p timex.Property, typ string, format func(time.Time) string) []Resolution {
	occ, err := definiteOccurrence(p)
	if err != nil {
		logger.Debug("resolve", "timex", s, "error", err)
		return notResolved(s, typ)
	}
	return []Resolution{{Timex: s, Type: typ, Value: format(occ.Start)}}
}

func resolveTimeRange(logger *slog.Logger, s string, p timex.Property) []Resolution {
	tr, err := timex.TimeRangeFromTimex(p)
	if err != nil {
		logger.Debug("resolve", "timex", s, "error", err)
		return notResolved(s, TimeRange)
	}
	return []Resolution{{Timex: s, Type: TimeRange, Start: timex.TimeValue(tr.Start), End: timex.TimeValue(tr.End)}}
}
