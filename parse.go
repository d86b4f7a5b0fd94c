// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PresentRef is the Timex literal for the present moment.
const PresentRef = "PRESENT_REF"

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<dayOfMonth>\d{2})$`),
	regexp.MustCompile(`^XXXX-(?P<month>\d{2})-(?P<dayOfMonth>\d{2})$`),
	regexp.MustCompile(`^XXXX-XX-(?P<dayOfMonth>\d{2})$`),
	regexp.MustCompile(`^XXXX-WXX-(?P<dayOfWeek>\d)$`),
	regexp.MustCompile(`^XXXX-W(?P<weekOfYear>\d{2})-(?P<dayOfWeek>\d)$`),
	regexp.MustCompile(`^(?P<year>\d{4})-W(?P<weekOfYear>\d{2})-(?P<dayOfWeek>\d)$`),
	regexp.MustCompile(`^(?P<year>\d{4})-W(?P<weekOfYear>\d{2})$`),
	regexp.MustCompile(`^(?P<year>\d{4})-W(?P<weekOfYear>\d{2})-(?P<weekend>WE)$`),
	regexp.MustCompile(`^XXXX-(?P<month>\d{2})-WXX-(?P<dayOfWeek>\d)-#?(?P<weekOfMonth>\d)$`),
	regexp.MustCompile(`^XXXX-(?P<month>\d{2})-W(?P<weekOfMonth>\d{2})$`),
	regexp.MustCompile(`^XXXX-(?P<month>\d{2})$`),
	regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})$`),
	regexp.MustCompile(`^(?P<year>\d{4})-(?P<season>SP|SU|FA|WI)$`),
	regexp.MustCompile(`^(?P<season>SP|SU|FA|WI)$`),
	regexp.MustCompile(`^(?P<year>\d{4})$`),
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^T(?P<hour>\d{2})$`),
	regexp.MustCompile(`^T(?P<hour>\d{2}):(?P<minute>\d{2})$`),
	regexp.MustCompile(`^T(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})$`),
	regexp.MustCompile(`^T(?P<partOfDay>MO|AF|EV|NI|DT)$`),
}

var intFields = map[string]field{
	"year":        fieldYear,
	"month":       fieldMonth,
	"dayOfMonth":  fieldDayOfMonth,
	"dayOfWeek":   fieldDayOfWeek,
	"weekOfYear":  fieldWeekOfYear,
	"weekOfMonth": fieldWeekOfMonth,
	"hour":        fieldHour,
	"minute":      fieldMinute,
	"second":      fieldSecond,
}

func (p *Property) setInt(f field, v int) {
	switch f {
	case fieldYear:
		p.year = v
	case fieldMonth:
		p.month = v
	case fieldDayOfMonth:
		p.dayOfMonth = v
	case fieldDayOfWeek:
		p.dayOfWeek = v
	case fieldWeekOfYear:
		p.weekOfYear = v
	case fieldWeekOfMonth:
		p.weekOfMonth = v
	case fieldHour:
		p.hour = v
	case fieldMinute:
		p.minute = v
	case fieldSecond:
		p.second = v
	}
	p.set |= f
}

// extract matches s against the first matching pattern and assigns
// the named groups to p.
func (p *Property) extract(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		for i, name := range re.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}
			switch name {
			case "season":
				p.season = Season(m[i])
			case "partOfDay":
				p.partOfDay = PartOfDay(m[i])
			case "weekend":
				p.weekend = true
			default:
				// The patterns only allow digits for these groups.
				v, _ := strconv.Atoi(m[i])
				p.setInt(intFields[name], v)
			}
		}
		return true
	}
	return false
}

// Parse parses a Timex expression. It returns an error wrapping
// ErrMalformed if s does not match the grammar or contains out of range
// values.
func Parse(s string) (Property, error) {
	p, err := parse(s)
	if err != nil {
		return Property{}, fmt.Errorf("%q: %w", s, err)
	}
	if err := p.validate(); err != nil {
		return Property{}, fmt.Errorf("%q: %w", s, err)
	}
	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Property {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parse(s string) (Property, error) {
	switch {
	case len(s) == 0:
		return Property{}, fmt.Errorf("empty expression: %w", ErrMalformed)
	case s == PresentRef:
		return Property{now: true}, nil
	case s[0] == '(' || strings.IndexByte(s, ',') >= 0:
		return parseRange(s)
	case s[0] == 'P':
		d, err := ParseDuration(s)
		return Property{duration: d}, err
	}
	return parseDateTime(s)
}

// parseRange parses the (start,end,duration) form, the parentheses are
// optional. The end is implied by start+duration, it is checked for being
// well formed and retained for formatting ranges whose end cannot be
// computed.
func parseRange(s string) (Property, error) {
	if s[0] == '(' {
		if !strings.HasSuffix(s, ")") {
			return Property{}, fmt.Errorf("missing closing parenthesis: %w", ErrMalformed)
		}
		s = s[1 : len(s)-1]
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Property{}, fmt.Errorf("expected (start,end,duration): %w", ErrMalformed)
	}
	p, err := parseDateTime(parts[0])
	if err != nil {
		return Property{}, fmt.Errorf("start %q: %w", parts[0], err)
	}
	end, err := parseDateTime(parts[1])
	if err != nil {
		return Property{}, fmt.Errorf("end %q: %w", parts[1], err)
	}
	p.end = end.formatDate() + end.formatTime()
	if p.duration, err = ParseDuration(parts[2]); err != nil {
		return Property{}, err
	}
	return p, nil
}

func parseDateTime(s string) (Property, error) {
	var p Property
	date, tm := s, ""
	if idx := strings.IndexByte(s, 'T'); idx >= 0 {
		date, tm = s[:idx], s[idx:]
	}
	if len(date) > 0 && !p.extract(datePatterns, date) {
		return Property{}, fmt.Errorf("unrecognised date %q: %w", date, ErrMalformed)
	}
	if len(tm) > 0 && !p.extract(timePatterns, tm) {
		return Property{}, fmt.Errorf("unrecognised time %q: %w", tm, ErrMalformed)
	}
	if len(date) == 0 && len(tm) == 0 {
		return Property{}, fmt.Errorf("empty date and time: %w", ErrMalformed)
	}
	return p, nil
}
