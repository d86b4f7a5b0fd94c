// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex

import "strings"

// Type is a semantic type of a Timex expression.
type Type uint16

const (
	TypePresent Type = 1 << iota
	TypeDefinite
	TypeDate
	TypeDateRange
	TypeDuration
	TypeTime
	TypeTimeRange
	TypeDateTime
	TypeDateTimeRange
)

var typeNames = []struct {
	t    Type
	name string
}{
	{TypePresent, "present"},
	{TypeDefinite, "definite"},
	{TypeDate, "date"},
	{TypeDateRange, "daterange"},
	{TypeDuration, "duration"},
	{TypeTime, "time"},
	{TypeTimeRange, "timerange"},
	{TypeDateTime, "datetime"},
	{TypeDateTimeRange, "datetimerange"},
}

func (t Type) String() string {
	for _, tn := range typeNames {
		if tn.t == t {
			return tn.name
		}
	}
	return "unknown"
}

// Types is a set of Type values.
type Types uint16

// NewTypes returns a Types containing the specified types.
func NewTypes(types ...Type) Types {
	var ts Types
	for _, t := range types {
		ts |= Types(t)
	}
	return ts
}

// Has returns true if t is in the set.
func (ts Types) Has(t Type) bool {
	return ts&Types(t) != 0
}

// HasAll returns true if all of types are in the set.
func (ts Types) HasAll(types ...Type) bool {
	for _, t := range types {
		if !ts.Has(t) {
			return false
		}
	}
	return true
}

// Slice returns the members of the set in a fixed order.
func (ts Types) Slice() []Type {
	var r []Type
	for _, tn := range typeNames {
		if ts.Has(tn.t) {
			r = append(r, tn.t)
		}
	}
	return r
}

func (ts Types) String() string {
	var out strings.Builder
	for i, t := range ts.Slice() {
		if i > 0 {
			out.WriteString(",")
		}
		out.WriteString(t.String())
	}
	return out.String()
}

// Classify parses s and returns its types.
func Classify(s string) (Types, error) {
	p, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return p.Types(), nil
}

// Types returns the semantic types of p. The set is the union of a
// number of independent predicates over the fields of p.
func (p Property) Types() Types {
	if p.now {
		return NewTypes(TypePresent, TypeDate, TypeTime, TypeDateTime)
	}
	var ts Types
	date, tm := p.isDate(), p.isTime()
	if date {
		ts |= Types(TypeDate)
	}
	if date && p.isDefinite() {
		ts |= Types(TypeDefinite)
	}
	if p.isDateRange(date) {
		ts |= Types(TypeDateRange)
	}
	if tm {
		ts |= Types(TypeTime)
	}
	timeRange := p.isTimeRange(tm)
	if timeRange {
		ts |= Types(TypeTimeRange)
	}
	if date && tm {
		ts |= Types(TypeDateTime)
	}
	if date && timeRange {
		ts |= Types(TypeDateTimeRange)
	}
	if p.duration.IsSet() {
		ts |= Types(TypeDuration)
	}
	return ts
}

func (p Property) isDate() bool {
	return p.has(fieldDayOfWeek) || p.has(fieldMonth|fieldDayOfMonth)
}

func (p Property) isDefinite() bool {
	return p.has(fieldYear)
}

func (p Property) isDateRange(date bool) bool {
	switch {
	case p.has(fieldYear) && !p.has(fieldMonth) && !p.has(fieldDayOfMonth):
	case p.season != "":
	case p.has(fieldYear | fieldWeekOfYear):
	case p.has(fieldMonth) && !p.has(fieldDayOfMonth):
	case p.has(fieldWeekOfMonth):
	case date && p.duration.IsSet():
	default:
		return false
	}
	return true
}

func (p Property) isTime() bool {
	return p.has(fieldHour) && p.partOfDay == ""
}

func (p Property) isTimeRange(tm bool) bool {
	return p.partOfDay != "" || (tm && p.duration.IsSet())
}
