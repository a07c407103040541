// Package date provides a Date type that marshals as YYYY-MM-DD.
// The zero Date means "no date" and marshals as an empty string.
package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

const format = "2006-01-02"

const hoursPerDay = 24

// Date represents a calendar date without time or timezone.
type Date struct {
	time.Time
}

// New creates a Date from year, month, day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the calendar date of now in now's own location, i.e. now
// stripped to local midnight.
func Today(now time.Time) Date {
	return New(now.Year(), now.Month(), now.Day())
}

// Parse parses a YYYY-MM-DD string into a Date. An RFC 3339 timestamp is
// accepted too; only its calendar date is kept.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(format, s)
	if err == nil {
		return Date{t}, nil
	}
	if ts, tsErr := time.Parse(time.RFC3339, s); tsErr == nil {
		return New(ts.Year(), ts.Month(), ts.Day()), nil
	}
	return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// DaysBetween returns the signed number of whole calendar days from "from"
// to "to". It is positive when to is after from.
func DaysBetween(from, to Date) int {
	a := New(from.Year(), from.Month(), from.Day())
	b := New(to.Year(), to.Month(), to.Day())
	return int(b.Time.Sub(a.Time).Hours()) / hoursPerDay
}

// Before reports whether d is a strictly earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return DaysBetween(d, other) > 0
}

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool {
	if d.IsZero() || other.IsZero() {
		return d.IsZero() == other.IsZero()
	}
	return DaysBetween(d, other) == 0
}

// String returns the date as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(format)
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler. Both null and "" decode to the
// zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
