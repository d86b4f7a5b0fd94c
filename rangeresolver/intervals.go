// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rangeresolver

import (
	"slices"
	"time"

	"cloudeng.io/timex"
)

const secondsInDay = 24 * 60 * 60

// segment is a non-wrapping interval of seconds since midnight, end is
// exclusive and at most secondsInDay.
type segment struct {
	start, end int64
}

func seconds(t timex.TimeOfDay) int64 {
	return t.Milliseconds() / 1000
}

func timeOfDay(secs int64) timex.TimeOfDay {
	return timex.NewTimeOfDay(int(secs/3600), int(secs/60%60), int(secs%60))
}

// segments splits a time range into non-wrapping segments. A range whose
// start and end are the same is the whole day.
func segments(tr timex.TimeRange) []segment {
	start, end := seconds(tr.Start), seconds(tr.End)
	switch {
	case start == end:
		return []segment{{0, secondsInDay}}
	case end < start:
		return []segment{{start, secondsInDay}, {0, end}}
	}
	return []segment{{start, end}}
}

// intersectTimes returns the intersection of all of the supplied time
// ranges on the 24 hour circle. Pieces of the intersection that meet at
// midnight are rejoined into a single wrapping range. The result is
// empty if the ranges do not overlap.
func intersectTimes(ranges []timex.TimeRange) []timex.TimeRange {
	if len(ranges) == 0 {
		return nil
	}
	acc := segments(ranges[0])
	for _, tr := range ranges[1:] {
		var next []segment
		for _, a := range acc {
			for _, b := range segments(tr) {
				s, e := max(a.start, b.start), min(a.end, b.end)
				if s < e {
					next = append(next, segment{s, e})
				}
			}
		}
		acc = next
	}
	slices.SortFunc(acc, func(a, b segment) int {
		return int(a.start - b.start)
	})
	var wrap *timex.TimeRange
	if n := len(acc); n > 1 && acc[0].start == 0 && acc[n-1].end == secondsInDay {
		wrap = &timex.TimeRange{Start: timeOfDay(acc[n-1].start), End: timeOfDay(acc[0].end)}
		acc = acc[1 : n-1]
	}
	r := make([]timex.TimeRange, 0, len(acc)+1)
	for _, s := range acc {
		r = append(r, timex.TimeRange{Start: timeOfDay(s.start), End: timeOfDay(s.end)})
	}
	if wrap != nil {
		r = append(r, *wrap)
	}
	return r
}

// length returns the length of a time range allowing for wrapping.
func length(tr timex.TimeRange) time.Duration {
	secs := seconds(tr.End) - seconds(tr.Start)
	if secs <= 0 {
		secs += secondsInDay
	}
	return time.Duration(secs) * time.Second
}

func containedIn(ranges []timex.TimeRange, t timex.TimeOfDay) bool {
	for _, tr := range ranges {
		if tr.Contains(t) {
			return true
		}
	}
	return false
}

// intersectDates returns the intersection of all of the supplied date
// ranges, false is returned if there is none.
func intersectDates(ranges []timex.DateRange) (timex.DateRange, bool) {
	r := ranges[0]
	for _, dr := range ranges[1:] {
		if dr.Start.After(r.Start) {
			r.Start = dr.Start
		}
		if dr.End.Before(r.End) {
			r.End = dr.End
		}
	}
	return r, !r.Empty()
}
