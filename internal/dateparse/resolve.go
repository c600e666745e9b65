package dateparse

import (
	"errors"
	"strings"
	"time"
)

// DayKey is the canonical day format used as a ledger key. Lexicographic
// order of keys equals calendar order, which multi-day listings rely on.
const DayKey = "2006-01-02"

var (
	// ErrNotADigit reports an expected numeric token that was not a
	// non-negative integer.
	ErrNotADigit = errors.New("not a digit")

	// ErrBadDuration reports a phrase that matches no recognized keyword or
	// duration grammar.
	ErrBadDuration = errors.New("timeperiod not found")
)

// keywordOffsets are the relative day keywords, matched case-sensitively.
var keywordOffsets = map[string]int{
	"today":    0,
	"tomorrow": 1,
	"tmr":      1,
}

// Resolve extracts a target day from the front of tokens and returns it with
// the remaining free text joined by single spaces.
//
// Recognized forms: a leading keyword (today/tomorrow/tmr), or "in N <unit>"
// where N <unit> follows the duration grammar. Anything else leaves the
// tokens untouched and targets the reference day.
func Resolve(tokens []string, ref time.Time) (day, remaining string, err error) {
	if len(tokens) == 0 {
		return ref.Format(DayKey), "", nil
	}

	target := ref
	used := 0
	switch {
	case hasKeyword(tokens[0]):
		target = ref.AddDate(0, 0, keywordOffsets[tokens[0]])
		used = 1
	case tokens[0] == "in":
		if len(tokens) < 2 || !IsDigits(tokens[1]) {
			return "", "", ErrNotADigit
		}
		if len(tokens) < 3 {
			return "", "", ErrBadDuration
		}
		d, ok := Match(tokens[1], tokens[2])
		if !ok {
			return "", "", ErrBadDuration
		}
		target = ref.Add(d.Offset())
		used = 3
	}

	return target.Format(DayKey), strings.Join(tokens[used:], " "), nil
}

// ResolveDayToken resolves a single token that must name a day outright:
// one of the relative keywords or a literal YYYY-MM-DD date.
func ResolveDayToken(token string, ref time.Time) (string, bool) {
	if hasKeyword(token) {
		return ref.AddDate(0, 0, keywordOffsets[token]).Format(DayKey), true
	}
	if t, err := time.Parse(DayKey, token); err == nil {
		return t.Format(DayKey), true
	}
	return "", false
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasKeyword(token string) bool {
	_, ok := keywordOffsets[token]
	return ok
}
