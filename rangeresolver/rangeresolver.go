// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package rangeresolver finds all of the concrete values of a set of,
// typically recurring, candidate Timex expressions that satisfy a set of
// constraint expressions. For example, the Saturdays (XXXX-WXX-6) in
// September 2017 (2017-09).
//
// Constraints are reduced to a single date range and a set of time ranges
// by intersecting all of the date ranges and all of the time ranges they
// denote. Definite dates and times given as constraints serve as the
// anchors for duration candidates and times, including those of definite
// date-times, given as constraints are attached to the dates found for
// date candidates.
//
// The cost of evaluation is proportional to the number of days in the
// intersected date range, callers should bound the constraints they
// supply.
package rangeresolver

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/timex"
)

// constraints is the reduced form of a set of constraint expressions.
type constraints struct {
	hasDates  bool
	dates     timex.DateRange
	datesOK   bool
	timeSpans []timex.TimeRange // as supplied.
	times     []timex.TimeRange // intersection of timeSpans.
	points    []timex.TimeOfDay
	anchors   []timex.Property
}

func (c constraints) hasTimes() bool {
	return len(c.timeSpans) > 0
}

// Evaluate returns the values of the candidates that satisfy all of the
// constraints, sorted and deduplicated by their canonical form. An error
// is returned if any candidate or constraint cannot be parsed.
func Evaluate(ctx context.Context, candidates, constraintExprs []string) ([]timex.Property, error) {
	logger := ctxlog.Logger(ctx)
	cs, err := parseAll(constraintExprs)
	if err != nil {
		return nil, err
	}
	cands, err := parseAll(candidates)
	if err != nil {
		return nil, err
	}
	c := reduce(logger, cs)
	seen := map[string]timex.Property{}
	for _, cand := range cands {
		for _, r := range c.evaluate(logger, cand) {
			seen[r.String()] = r
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	results := make([]timex.Property, len(keys))
	for i, k := range keys {
		results[i] = seen[k]
	}
	return results, nil
}

// Strings returns the canonical forms of the supplied values.
func Strings(values []timex.Property) []string {
	r := make([]string, len(values))
	for i, v := range values {
		r[i] = v.String()
	}
	return r
}

func parseAll(exprs []string) ([]timex.Property, error) {
	r := make([]timex.Property, 0, len(exprs))
	for _, e := range exprs {
		p, err := timex.Parse(e)
		if err != nil {
			return nil, err
		}
		r = append(r, p)
	}
	return r, nil
}

// daySpan returns the range of days covered by a date or date-time range
// with a definite start.
func daySpan(p timex.Property) (timex.DateRange, error) {
	if _, ok := p.PartOfDay(); ok {
		if d, ok := p.Date(); ok {
			return timex.DateRange{Start: d, End: timex.Tomorrow(d)}, nil
		}
	}
	r, err := timex.ExpandDateTimeRange(p)
	if err != nil {
		return timex.DateRange{}, err
	}
	start, sok := r.Start.Date()
	end, eok := r.End.DateTime()
	if !sok || !eok {
		return timex.DateRange{}, fmt.Errorf("%v does not have a definite start: %w", p, timex.ErrUnderspecified)
	}
	if day := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC); end.After(day) {
		end = timex.Tomorrow(day)
	}
	return timex.DateRange{Start: start, End: end}, nil
}

// timeSpan returns the clock time range of a time or date-time range.
// Ranges of a day or more do not constrain the time of day.
func timeSpan(p timex.Property) (timex.TimeRange, bool) {
	if p.Duration().Elapsed() >= 24*time.Hour {
		return timex.TimeRange{}, false
	}
	tr, err := timex.TimeRangeFromTimex(p)
	return tr, err == nil
}

func reduce(logger *slog.Logger, cs []timex.Property) constraints {
	var c constraints
	var dates []timex.DateRange
	for _, p := range cs {
		types := p.Types()
		switch {
		case types.Has(timex.TypeDateRange) || types.Has(timex.TypeDateTimeRange):
			if dr, err := daySpan(p); err == nil {
				dates = append(dates, dr)
			} else {
				logger.Debug("evaluate: ignoring date range", "constraint", p.String(), "error", err)
			}
		case types.HasAll(timex.TypeDefinite, timex.TypeDate):
			c.anchors = append(c.anchors, p)
			if types.Has(timex.TypeTime) {
				tod, _ := p.TimeOfDay()
				c.points = append(c.points, tod)
			}
		case types.Has(timex.TypeTime) && !types.Has(timex.TypeTimeRange):
			tod, _ := p.TimeOfDay()
			c.points = append(c.points, tod)
			c.anchors = append(c.anchors, p)
		}
		if types.Has(timex.TypeTimeRange) {
			if tr, ok := timeSpan(p); ok {
				c.timeSpans = append(c.timeSpans, tr)
			}
		}
	}
	if len(dates) > 0 {
		c.hasDates = true
		c.dates, c.datesOK = intersectDates(dates)
		logger.Debug("evaluate: dates", "start", timex.DateValue(c.dates.Start), "end", timex.DateValue(c.dates.End), "empty", !c.datesOK)
	}
	if c.hasTimes() {
		c.times = intersectTimes(c.timeSpans)
		logger.Debug("evaluate: times", "ranges", fmt.Sprintf("%v", c.times))
	}
	return c
}

func isDayPattern(p timex.Property) bool {
	_, dom := p.DayOfMonth()
	_, dow := p.DayOfWeek()
	return dom || dow
}

func hasDateFields(p timex.Property) bool {
	_, year := p.Year()
	_, month := p.Month()
	_, woy := p.WeekOfYear()
	_, wom := p.WeekOfMonth()
	_, season := p.Season()
	return isDayPattern(p) || year || month || woy || wom || season || p.Weekend()
}

func (c constraints) evaluate(logger *slog.Logger, cand timex.Property) []timex.Property {
	types := cand.Types()
	switch {
	case cand.Now():
		return []timex.Property{cand}
	case types == timex.NewTypes(timex.TypeDuration):
		return c.evaluateDuration(logger, cand)
	case !hasDateFields(cand):
		return c.attachTimes(cand, cand)
	}
	if !c.hasDates {
		return c.attachTimes(cand, cand)
	}
	if !c.datesOK {
		return nil
	}
	var r []timex.Property
	for occ := range cand.Occurrences(c.dates.Start, c.dates.End) {
		r = append(r, c.attachTimes(cand, atOccurrence(cand, occ))...)
	}
	if len(r) == 0 {
		logger.Debug("evaluate: no occurrences", "candidate", cand.String())
	}
	return r
}

// atOccurrence returns the concrete value of cand for occ. Day patterns
// become dates, months become year-months and all other ranges become
// explicit ranges.
func atOccurrence(cand timex.Property, occ timex.Occurrence) timex.Property {
	_, month := cand.Month()
	_, wom := cand.WeekOfMonth()
	_, year := cand.Year()
	switch {
	case isDayPattern(cand):
		return cand.On(occ.Start)
	case month && !wom:
		p, _ := timex.New(timex.WithYear(occ.Start.Year()), timex.WithMonth(int(occ.Start.Month())))
		return p
	case year && !month && !cand.Weekend():
		if _, woy := cand.WeekOfYear(); !woy {
			return cand
		}
	}
	days := int64(occ.End.Sub(occ.Start) / (24 * time.Hour))
	return timex.FromDate(occ.Start).Lasting(timex.Days(days))
}

func (c constraints) evaluateDuration(logger *slog.Logger, cand timex.Property) []timex.Property {
	if len(c.anchors) != 1 {
		logger.Debug("evaluate: duration requires a single anchor", "candidate", cand.String(), "anchors", len(c.anchors))
		return nil
	}
	r, err := c.anchors[0].Add(cand.Duration())
	if err != nil {
		logger.Debug("evaluate: duration", "candidate", cand.String(), "error", err)
		return nil
	}
	return []timex.Property{r}
}

// attachTimes applies the time constraints to v, the value of cand. A
// time of day in v must be within the constraints, a part of day or time
// range in v is intersected with them. A day without a time is given each
// of the constraining times, or failing that each of the constraining
// time ranges.
func (c constraints) attachTimes(cand, v timex.Property) []timex.Property {
	if !c.hasTimes() && len(c.points) == 0 {
		return []timex.Property{v}
	}
	_, pod := v.PartOfDay()
	tod, hasTime := v.TimeOfDay()
	switch {
	case pod || (hasTime && v.Duration().IsSet()):
		return c.intersectRange(v)
	case hasTime:
		if c.hasTimes() && !containedIn(c.times, tod) {
			return nil
		}
		return []timex.Property{v}
	case v.Duration().IsSet() || !isDayPattern(cand):
		// Months, weeks and other ranges of days are not given times.
		return []timex.Property{v}
	}
	var r []timex.Property
	for _, pt := range c.points {
		if !c.hasTimes() || containedIn(c.times, pt) {
			r = append(r, v.At(pt))
		}
	}
	if len(r) > 0 || !c.hasTimes() {
		return r
	}
	for _, tr := range c.times {
		r = append(r, v.At(tr.Start).Lasting(timex.ClockDuration(length(tr))))
	}
	return r
}

// intersectRange intersects the time range of v with the time constraints.
func (c constraints) intersectRange(v timex.Property) []timex.Property {
	span, ok := timeSpan(v)
	if !ok || !c.hasTimes() {
		return []timex.Property{v}
	}
	var r []timex.Property
	for _, tr := range intersectTimes(append(slices.Clone(c.timeSpans), span)) {
		r = append(r, v.At(tr.Start).Lasting(timex.ClockDuration(length(tr))))
	}
	return r
}
