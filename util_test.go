// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex_test

import (
	"time"

	"cloudeng.io/timex"
)

func newDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newDateTime(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, time.UTC)
}

func occurrenceStarts(occs []timex.Occurrence) []string {
	r := make([]string, 0, len(occs))
	for _, o := range occs {
		r = append(r, timex.DateTimeValue(o.Start))
	}
	return r
}
