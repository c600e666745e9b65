// Package dateparse turns informal date phrases ("today", "tomorrow",
// "in 3 days") into YYYY-MM-DD day keys for the task ledger.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Class identifies the unit of a duration phrase.
type Class int

const (
	Second Class = iota
	Minute
	Hour
	Day
	Week
	Month
	Year
)

// String returns the singular unit name.
func (c Class) String() string {
	switch c {
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	}
	return "unknown"
}

// spans holds the fixed-length offset of each unit. A month is four weeks and
// a year is twelve such months; never calendar arithmetic.
var spans = map[Class]time.Duration{
	Second: time.Second,
	Minute: time.Minute,
	Hour:   time.Hour,
	Day:    24 * time.Hour,
	Week:   7 * 24 * time.Hour,
	Month:  28 * 24 * time.Hour,
	Year:   336 * 24 * time.Hour,
}

// durationRe recognizes an "<amount> <unit>" phrase. Every unit alternative
// carries its own end anchor, so trailing garbage after a recognized unit
// invalidates the whole match.
var durationRe = regexp.MustCompile(
	`(?i)^([0-9]+)\s?(s(ec)?(ond)?s?$|mo(nth)?s?$|m(in)?s?(ute)?s?$|h[r]?[s]?(our)?s?$|d(ay)?s?$|w(eek)?s?$|y[r]?(ear)?s?$)`)

// Duration is a parsed amount + unit phrase.
type Duration struct {
	Amount int
	Class  Class
}

// Match reports whether the two tokens form a valid duration phrase
// ("2 days", "5 w", "10 mins", "1 mo").
func Match(amount, unit string) (Duration, bool) {
	m := durationRe.FindStringSubmatch(amount + " " + unit)
	if m == nil {
		return Duration{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Duration{}, false
	}
	return Duration{Amount: n, Class: classOf(m[2])}, true
}

// Offset returns the fixed-length time offset the phrase stands for.
func (d Duration) Offset() time.Duration {
	return time.Duration(d.Amount) * spans[d.Class]
}

// classOf picks the unit class from a matched unit token. The first character
// decides, except a "mo" prefix, which always means month; a bare "m" belongs
// to minutes.
func classOf(unit string) Class {
	unit = strings.ToLower(unit)
	if strings.HasPrefix(unit, "mo") {
		return Month
	}
	switch unit[0] {
	case 's':
		return Second
	case 'm':
		return Minute
	case 'h':
		return Hour
	case 'd':
		return Day
	case 'w':
		return Week
	case 'y':
		return Year
	}
	return Day
}
