package dateparse

import (
	"errors"
	"testing"
	"time"
)

// ref is a fixed reference instant for deterministic resolution.
var ref = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		wantDay   string
		wantText  string
	}{
		{"today keyword", []string{"today", "buy", "milk"}, "2024-01-15", "buy milk"},
		{"tomorrow keyword", []string{"tomorrow", "call", "mom"}, "2024-01-16", "call mom"},
		{"tmr keyword", []string{"tmr", "pack"}, "2024-01-16", "pack"},
		{"in days", []string{"in", "2", "days", "call", "mom"}, "2024-01-17", "call mom"},
		{"in weeks", []string{"in", "1", "week", "dentist"}, "2024-01-22", "dentist"},
		{"in months", []string{"in", "2", "months", "renew"}, "2024-03-11", "renew"},
		{"no date prefix", []string{"buy", "milk"}, "2024-01-15", "buy milk"},
		{"keyword only", []string{"today"}, "2024-01-15", ""},
		{"empty tokens", nil, "2024-01-15", ""},
		{"uppercase keyword not matched", []string{"Today", "x"}, "2024-01-15", "Today x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, text, err := Resolve(tt.tokens, ref)
			if err != nil {
				t.Fatalf("Resolve(%v) error = %v", tt.tokens, err)
			}
			if day != tt.wantDay {
				t.Errorf("day = %q, want %q", day, tt.wantDay)
			}
			if text != tt.wantText {
				t.Errorf("remaining = %q, want %q", text, tt.wantText)
			}
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		wantErr error
	}{
		{"amount not a digit", []string{"in", "x", "days", "foo"}, ErrNotADigit},
		{"missing amount", []string{"in"}, ErrNotADigit},
		{"missing unit", []string{"in", "2"}, ErrBadDuration},
		{"unknown unit", []string{"in", "2", "parsecs"}, ErrBadDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Resolve(tt.tokens, ref)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve(%v) error = %v, want %v", tt.tokens, err, tt.wantErr)
			}
		})
	}
}

func TestResolve_HourOffsetStaysOnSameDay(t *testing.T) {
	// 10:30 + 2 hours is still the reference day.
	day, _, err := Resolve([]string{"in", "2", "hours", "standup"}, ref)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if day != "2024-01-15" {
		t.Errorf("day = %q, want 2024-01-15", day)
	}
}

func TestResolveDayToken(t *testing.T) {
	tests := []struct {
		token   string
		wantDay string
		wantOK  bool
	}{
		{"today", "2024-01-15", true},
		{"tomorrow", "2024-01-16", true},
		{"tmr", "2024-01-16", true},
		{"2024-02-01", "2024-02-01", true},
		{"yesterday", "", false},
		{"3", "", false},
		{"not-a-date", "", false},
	}

	for _, tt := range tests {
		day, ok := ResolveDayToken(tt.token, ref)
		if ok != tt.wantOK || day != tt.wantDay {
			t.Errorf("ResolveDayToken(%q) = %q, %v; want %q, %v", tt.token, day, ok, tt.wantDay, tt.wantOK)
		}
	}
}

func TestIsDigits(t *testing.T) {
	valid := []string{"0", "7", "42", "007"}
	invalid := []string{"", "-1", "1.5", "x", "2x"}

	for _, s := range valid {
		if !IsDigits(s) {
			t.Errorf("IsDigits(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsDigits(s) {
			t.Errorf("IsDigits(%q) = true, want false", s)
		}
	}
}
