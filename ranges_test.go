// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex_test

import (
	"errors"
	"testing"

	"cloudeng.io/timex"
)

func TestExpandDateTimeRange(t *testing.T) {
	for _, tc := range []struct {
		input           string
		start, end, dur string
	}{
		{"2017", "2017-01-01", "2018-01-01", "P365D"},
		{"2016", "2016-01-01", "2017-01-01", "P366D"},
		{"2016-02", "2016-02-01", "2016-03-01", "P29D"},
		{"2017-12", "2017-12-01", "2018-01-01", "P31D"},
		{"2017-W37", "2017-09-11", "2017-09-18", "P7D"},
		{"2017-W37-WE", "2017-09-16", "2017-09-18", "P2D"},
		{"2015-W01", "2014-12-29", "2015-01-05", "P7D"},
		{"(2017-09-27,2017-09-29,P2D)", "2017-09-27", "2017-09-29", "P2D"},
		{"(2017-09-27T16,2017-09-27T18,PT2H)", "2017-09-27T16", "2017-09-27T18", "PT2H"},
		{"(2017-09-27T22,2017-09-28T01,PT3H)", "2017-09-27T22", "2017-09-28T01", "PT3H"},
		{"(XXXX-WXX-3T16,XXXX-WXX-6T15,PT71H)", "XXXX-WXX-3T16", "XXXX-WXX-6T15", "PT71H"},
	} {
		r, err := timex.ExpandDateTimeRange(timex.MustParse(tc.input))
		if err != nil {
			t.Errorf("%v: %v", tc.input, err)
			continue
		}
		if got, want := r.Start.String(), tc.start; got != want {
			t.Errorf("%v: got %v, want %v", tc.input, got, want)
		}
		if got, want := r.End.String(), tc.end; got != want {
			t.Errorf("%v: got %v, want %v", tc.input, got, want)
		}
		if got, want := r.Duration.String(), tc.dur; got != want {
			t.Errorf("%v: got %v, want %v", tc.input, got, want)
		}
	}

	for _, tc := range []string{"XXXX-WXX-3", "2017-WI", "SU", "XXXX-04", "T16", "P2D", "2017-09-27"} {
		if _, err := timex.ExpandDateTimeRange(timex.MustParse(tc)); !errors.Is(err, timex.ErrUnderspecified) {
			t.Errorf("%v: expected ErrUnderspecified: %v", tc, err)
		}
	}
}

func TestExpandTimeRange(t *testing.T) {
	for _, tc := range []struct {
		input           string
		start, end, dur string
	}{
		{"TMO", "T08", "T12", "PT4H"},
		{"TAF", "T12", "T16", "PT4H"},
		{"TEV", "T16", "T20", "PT4H"},
		{"TNI", "T20", "T24", "PT4H"},
		{"TDT", "T08", "T18", "PT10H"},
		{"(T16,T18,PT2H)", "T16", "T18", "PT2H"},
		{"(2017-09-27T22,2017-09-28T01,PT3H)", "T22", "T01", "PT3H"},
	} {
		r, err := timex.ExpandTimeRange(timex.MustParse(tc.input))
		if err != nil {
			t.Errorf("%v: %v", tc.input, err)
			continue
		}
		if got, want := r.Start.String(), tc.start; got != want {
			t.Errorf("%v: got %v, want %v", tc.input, got, want)
		}
		if got, want := r.End.String(), tc.end; got != want {
			t.Errorf("%v: got %v, want %v", tc.input, got, want)
		}
		if got, want := r.Duration.String(), tc.dur; got != want {
			t.Errorf("%v: got %v, want %v", tc.input, got, want)
		}
	}
	for _, tc := range []string{"T16", "2017-09-27", "P2D"} {
		if _, err := timex.ExpandTimeRange(timex.MustParse(tc)); !errors.Is(err, timex.ErrUnderspecified) {
			t.Errorf("%v: expected ErrUnderspecified: %v", tc, err)
		}
	}
}

func TestRangeFromTimex(t *testing.T) {
	dr, err := timex.DateRangeFromTimex(timex.MustParse("2017-09"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := dr, (timex.DateRange{Start: newDate(2017, 9, 1), End: newDate(2017, 10, 1)}); !got.Start.Equal(want.Start) || !got.End.Equal(want.End) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !dr.Contains(newDate(2017, 9, 30)) || dr.Contains(newDate(2017, 10, 1)) || dr.Empty() {
		t.Errorf("incorrect containment for %v", dr)
	}
	if _, err := timex.DateRangeFromTimex(timex.MustParse("(XXXX-WXX-3T16,XXXX-WXX-6T15,PT71H)")); !errors.Is(err, timex.ErrUnderspecified) {
		t.Errorf("expected ErrUnderspecified: %v", err)
	}

	for _, tc := range []struct {
		input string
		want  timex.TimeRange
	}{
		{"TEV", timex.TimeRange{Start: timex.NewTimeOfDay(16, 0, 0), End: timex.NewTimeOfDay(20, 0, 0)}},
		{"TNI", timex.TimeRange{Start: timex.NewTimeOfDay(20, 0, 0), End: timex.NewTimeOfDay(24, 0, 0)}},
		{"(T16:30,T18,PT1.5H)", timex.TimeRange{Start: timex.NewTimeOfDay(16, 30, 0), End: timex.NewTimeOfDay(18, 0, 0)}},
	} {
		tr, err := timex.TimeRangeFromTimex(timex.MustParse(tc.input))
		if err != nil {
			t.Errorf("%v: %v", tc.input, err)
			continue
		}
		if got, want := tr, tc.want; got != want {
			t.Errorf("%v: got %v, want %v", tc.input, got, want)
		}
	}

	if got, want := timex.Evening.Range().End.Milliseconds(), int64(20*3600000); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	wrap := timex.TimeRange{Start: timex.NewTimeOfDay(22, 0, 0), End: timex.NewTimeOfDay(2, 0, 0)}
	if !wrap.Wraps() || !wrap.Contains(timex.NewTimeOfDay(23, 0, 0)) || !wrap.Contains(timex.NewTimeOfDay(1, 0, 0)) || wrap.Contains(timex.NewTimeOfDay(2, 0, 0)) {
		t.Errorf("incorrect containment for %v", wrap)
	}
}
