package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_Formats(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)

	tests := []string{
		"2024-05-01T10:20:30Z",
		"2024-05-01T10:20:30",
		"2024-05-01 10:20:30",
		"2024-05-01T12:20:30+02:00",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			ts, err := ParseTimestamp(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestParseTimestamp_Fractional(t *testing.T) {
	ts, err := ParseTimestamp("2024-05-01T10:20:30.123456")

	require.NoError(t, err)
	assert.Equal(t, 123456000, ts.Nanosecond())
}

func TestParseTimestamp_Invalid(t *testing.T) {
	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestSearchLogEntry_UnmarshalJSON(t *testing.T) {
	body := `[{"id":7,"query":"mobile repair","timestamp":"2024-05-01T10:20:30.5"},
	          {"id":8,"query":"tailor","timestamp":null,"category":"textiles"}]`

	var entries []SearchLogEntry
	require.NoError(t, json.Unmarshal([]byte(body), &entries))

	require.Len(t, entries, 2)
	assert.Equal(t, int64(7), entries[0].ID)
	assert.Equal(t, "mobile repair", entries[0].Query)
	assert.Equal(t, 2024, entries[0].Timestamp.Year())
	assert.True(t, entries[1].Timestamp.IsZero())
	assert.Equal(t, "textiles", entries[1].Category)
}

func TestTimestamp_UnmarshalJSON_BadValue(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"not a time"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)}

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01T10:20:30Z"`, string(data))

	data, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestLogPage_Clamp(t *testing.T) {
	assert.Equal(t, LogPage{}, LogPage{Skip: -3, Limit: -1}.Clamp())
	assert.Equal(t, LogPage{Skip: 10, Limit: MaxLogLimit}, LogPage{Skip: 10, Limit: 500}.Clamp())
	assert.Equal(t, LogPage{Limit: 50}, LogPage{Limit: 50}.Clamp())
}
