package core

import (
	"time"
)

// ISOLayout is the canonical timestamp rendering: millisecond precision, UTC "Z" suffix
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp represents a point in time with timezone awareness
type Timestamp time.Time

// Time returns the underlying time.Time
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// IsZero checks if the timestamp is zero
func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

// ISO renders the timestamp in UTC using ISOLayout
func (t Timestamp) ISO() string {
	return time.Time(t).UTC().Format(ISOLayout)
}

// ParseISO is the inverse of Timestamp.ISO
func ParseISO(s string) (Timestamp, error) {
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp(t.UTC()), nil
}

// CalendarDate is a date without clock time, anchored at midnight UTC
type CalendarDate Timestamp

// NewCalendarDate builds the date at midnight UTC
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func (d CalendarDate) Time() time.Time { return time.Time(d) }
func (d CalendarDate) ISO() string     { return Timestamp(d).ISO() }
func (d CalendarDate) String() string  { return time.Time(d).Format("2006-01-02") }

// Equal compares calendar dates regardless of location
func (d CalendarDate) Equal(o CalendarDate) bool {
	return time.Time(d).Equal(time.Time(o))
}
