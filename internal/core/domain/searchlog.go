package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SearchLogEntry records one query received by the search service.
type SearchLogEntry struct {
	ID        int64     `json:"id"`
	Query     string    `json:"query"`
	Timestamp Timestamp `json:"timestamp"`
	Category  string    `json:"category,omitempty"`
}

// LogPage bounds a search log listing. Zero values defer to the service defaults.
type LogPage struct {
	Skip  int
	Limit int
}

// MaxLogLimit is the largest page the log service accepts.
const MaxLogLimit = 100

// Clamp returns the page with Skip >= 0 and Limit within 0..MaxLogLimit.
func (p LogPage) Clamp() LogPage {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > MaxLogLimit {
		p.Limit = MaxLogLimit
	}
	return p
}

// Timestamp is an ISO-8601 instant. The log service emits naive UTC
// datetimes ("2024-05-01T10:20:30.123456") as well as zoned ones.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses the formats emitted by the log service.
// Values without a zone are taken as UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
