package types

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Date is an input timestamp that accepts RFC 3339 or a bare calendar date.
type Date struct {
	time.Time
}

// ParseDate parses s using the accepted input layouts. Values without a zone
// are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: reflect.TypeOf(Date{})}
	}
	t, ok := ParseDate(s)
	if !ok {
		return &json.UnmarshalTypeError{Value: "string " + s, Type: reflect.TypeOf(Date{})}
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

// TimePtr converts an optional Date to an optional time.
func TimePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// DayRange returns the half-open [start, end) interval of the UTC day containing t.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
