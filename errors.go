// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex

import "cloudeng.io/errors"

var (
	// ErrMalformed is returned for text that does not match the Timex
	// grammar and for values that are out of range, including dates
	// that do not exist.
	ErrMalformed = errors.New("malformed timex expression")

	// ErrUnderspecified is returned when an expression lacks the units
	// required by an operation, for example expanding a range that has
	// no year.
	ErrUnderspecified = errors.New("underspecified timex expression")
)
