package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"2024-03-01T08:30:00Z", time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC), false},
		{"2024-03-01T08:30:00.250Z", time.Date(2024, 3, 1, 8, 30, 0, 250e6, time.UTC), false},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got.Time, tt.want)
		}
	}
}

func TestTimestampNull(t *testing.T) {
	var n Notification
	if err := json.Unmarshal([]byte(`{"_id":"n1","createdAt":null}`), &n); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !n.CreatedAt.IsZero() {
		t.Errorf("expected zero time, got %v", n.CreatedAt.Time)
	}
	if n.CreatedAt.Date() != "" {
		t.Errorf("expected empty date for zero time, got %q", n.CreatedAt.Date())
	}
}

func TestTimestampDate(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	if got := ts.Date(); got != "March 1, 2024" {
		t.Errorf("Date() = %q", got)
	}
}

func TestTimestampLenientDecode(t *testing.T) {
	body := `[
		{"_id": "a", "title": "Spaced", "date": "2024-03-01 10:00:00"},
		{"_id": "b", "title": "Epoch", "date": 1709251200000},
		{"_id": "c", "title": "Odd", "date": "sometime last week"},
		{"_id": "d", "title": "Object", "date": {"$date": "2024"}}
	]`

	var items []Item
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}

	if want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC); !items[0].Date.Equal(want) {
		t.Errorf("spaced date = %v, want %v", items[0].Date.Time, want)
	}
	if want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC); !items[1].Date.Equal(want) {
		t.Errorf("epoch date = %v, want %v", items[1].Date.Time, want)
	}
	for _, it := range items[2:] {
		if !it.Date.IsZero() || it.Date.Date() != "" {
			t.Errorf("%s: expected zero date, got %v", it.Title, it.Date.Time)
		}
	}
}
