package analyzer

import "time"

// TimestampLayout is the UTC, millisecond precision layout used in every response
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Record is an analyzed value together with its derived properties
type Record struct {
	ID         string
	Value      string
	Properties Properties
	CreatedAt  time.Time
}

// NewRecord derives a record for a value created at the given time
func NewRecord(value string, createdAt time.Time) *Record {
	props := Derive(value)

	return &Record{
		ID:         props.SHA256Hash,
		Value:      value,
		Properties: props,
		CreatedAt:  createdAt.UTC().Truncate(time.Millisecond),
	}
}

// FormatTimestamp renders a time with TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
