// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex

import (
	"fmt"
	"time"
)

// TimeOfDay represents a wall clock time. An Hour of 24 is used
// for the exclusive end of a range that runs until midnight.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay returns a TimeOfDay for the specified hour, minute and second.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}
}

// TimeOfDayFromTime returns the TimeOfDay for the specified time.Time.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Milliseconds returns the number of milliseconds since midnight.
func (t TimeOfDay) Milliseconds() int64 {
	return int64(t.Hour)*3600000 + int64(t.Minute)*60000 + int64(t.Second)*1000
}

// Duration returns the time since midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute + time.Duration(t.Second)*time.Second
}

// Before returns true if t is before t2.
func (t TimeOfDay) Before(t2 TimeOfDay) bool {
	return t.Milliseconds() < t2.Milliseconds()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// timeOfDayFromSeconds returns the TimeOfDay for secs seconds after
// midnight, secs must be in the range [0, 86400].
func timeOfDayFromSeconds(secs int64) TimeOfDay {
	return TimeOfDay{Hour: int(secs / 3600), Minute: int(secs / 60 % 60), Second: int(secs % 60)}
}

const secondsInDay = 24 * 60 * 60

func (t TimeOfDay) seconds() int64 {
	return t.Milliseconds() / 1000
}

// On returns the instant on the date of d at time of day t.
func (t TimeOfDay) On(d time.Time) time.Time {
	return dateOf(d).Add(t.Duration())
}
