package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Timestamp decodes the date formats the backend emits: full RFC 3339
// timestamps, bare YYYY-MM-DD dates and Unix milliseconds. Null, empty and
// unrecognized values decode to the zero time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses s using the accepted layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// UnmarshalJSON implements json.Unmarshaler. Numbers are read as Unix
// milliseconds. A value in no known format decodes to the zero time so one
// odd record never fails a whole listing.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if ms, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*t = Timestamp{Time: time.UnixMilli(ms).UTC()}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Warn("ignoring undecodable timestamp", "value", string(data))
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		slog.Warn("ignoring unrecognized timestamp", "value", s)
		*t = Timestamp{}
		return nil
	}
	*t = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// Date formats the timestamp as e.g. "March 1, 2024", or "" when unset.
func (t Timestamp) Date() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// DateTime formats the timestamp with a time of day, or "" when unset.
func (t Timestamp) DateTime() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}
